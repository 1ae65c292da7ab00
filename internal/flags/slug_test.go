package flags

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Pakistan":             "pakistan",
		"  Sri Lanka ":         "sri-lanka",
		"Sri--Lanka":           "sri-lanka",
		"U.A.E.":               "u-a-e",
		"Papua New Guinea (W)": "papua-new-guinea-w",
		"":                     UnknownSlug,
		"!!!":                  UnknownSlug,
		"---":                  UnknownSlug,
		"Côte d'Ivoire":        "c-te-d-ivoire",
	}
	for in, want := range cases {
		assert.Equal(t, want, Slugify(in), "input %q", in)
	}
}

func TestSlugify_IdempotentAndWellFormed(t *testing.T) {
	wellFormed := regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)
	inputs := []string{"", " ", "A", "Team A", "New Zealand Women", "***x***", "42 Club", "a_b_c", "ÅÄÖ"}
	for _, in := range inputs {
		once := Slugify(in)
		assert.Equal(t, once, Slugify(once), "input %q", in)
		assert.NotEmpty(t, once)
		assert.Regexp(t, wellFormed, once)
	}
}
