package scrape

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type mapLookup map[string]string

func (m mapLookup) Lookup(flagID string) (string, bool) {
	v, ok := m[flagID]
	return v, ok
}

func TestNormalize(t *testing.T) {
	n := NewNormalizer("https://hamariweb.com/", nil)

	cases := []struct {
		in, want string
	}{
		{"", ""},
		{"   ", ""},
		{"//x/y.png", "https://x/y.png"},
		{"/a/b", "https://hamariweb.com/a/b"},
		{"data:image/gif;base64,R0lGOD", ""},
		{"https://already/abs", "https://already/abs"},
		{"scorecard.aspx?id=1", "scorecard.aspx?id=1"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, n.Normalize(tc.in), "input %q", tc.in)
	}
}

func TestNormalize_PrefersLocalFlag(t *testing.T) {
	n := NewNormalizer("https://hamariweb.com", mapLookup{"182": "/static/flags/by-name/oman.gif"})

	assert.Equal(t, "/static/flags/by-name/oman.gif", n.Normalize("//hamariweb.com/cricket/cricflag/182.png"))
	assert.Equal(t, "/static/flags/by-name/oman.gif", n.Normalize("/cricket/flags/182.gif"))
	assert.Equal(t, "https://hamariweb.com/cricket/flags/183.gif", n.Normalize("/cricket/flags/183.gif"))
}

func TestFlagID(t *testing.T) {
	id, ok := FlagID("https://hamariweb.com/cricket/cricflag/42.png")
	assert.True(t, ok)
	assert.Equal(t, "42", id)

	id, ok = FlagID("/images/flags/7.gif?v=2")
	assert.True(t, ok)
	assert.Equal(t, "7", id)

	_, ok = FlagID("/images/logo.png")
	assert.False(t, ok)
}
