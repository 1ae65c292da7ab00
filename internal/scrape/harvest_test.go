package scrape

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHarvestFlagNames(t *testing.T) {
	page := `<body>
	<table><tr><td>
		<a class="team_name"><img data-src="/cricket/flags/182.gif"><span>Oman</span></a>
		<a class="team_name"><img src="/cricket/flags/7.gif" alt="Pakistan"><span></span></a>
		<a class="team_name"><img src="/images/logo.png"><span>Nobody</span></a>
	</td></tr></table>
	<div class="match_update">
		<div class="teamname"><img src="//hamariweb.com/cricket/cricflag/182.png">Oman Women  120/4</div>
		<div class="teamname"><img src="//hamariweb.com/cricket/cricflag/9.png">Nepal 98/10</div>
		<div class="teamname"><img src="//hamariweb.com/cricket/cricflag/10.png" alt="Kenya"></div>
	</div>
	</body>`

	got := HarvestFlagNames(page)
	assert.Equal(t, map[string]string{
		"182": "Oman",
		"7":   "Pakistan",
		"9":   "Nepal",
		"10":  "Kenya",
	}, got)
}

func TestHarvestFlagNames_CardScoreInSeparateSpan(t *testing.T) {
	page := `<div class="match_update">
		<div class="teamname"><img src="//hamariweb.com/cricket/cricflag/7.png"><span>Pakistan</span><span class="score">245/6</span></div>
		<div class="teamname"><img src="//hamariweb.com/cricket/cricflag/8.png"><span>Sri Lanka</span><span class="score">(48.2) 246/4</span></div>
	</div>`

	assert.Equal(t, map[string]string{"7": "Pakistan", "8": "Sri Lanka"}, HarvestFlagNames(page))
}
