package scrape

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// cardScoreSplit cuts a card's team text at the score, e.g.
// "Pakistan 245/6 (50)" → "Pakistan".
var cardScoreSplit = regexp.MustCompile(`\s{2,}|\s+\d+/?\d*`)

// HarvestFlagNames collects flag identifier → team name pairs from a
// schedules page. Table links are read first as they carry clean labels;
// the first name seen for an identifier wins.
func HarvestFlagNames(markup string) map[string]string {
	names := make(map[string]string)
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return names
	}

	record := func(src, name string) {
		name = strings.TrimSpace(name)
		if src == "" || name == "" {
			return
		}
		id, ok := FlagID(src)
		if !ok {
			return
		}
		if _, seen := names[id]; !seen {
			names[id] = name
		}
	}

	doc.Find("a.team_name").Each(func(_ int, a *goquery.Selection) {
		img := a.Find("img").First()
		name := linkTeamName(a)
		if name == "" {
			name = attr(img, "alt")
		}
		record(attr(img, "data-src", "src"), name)
	})

	doc.Find(".match_update .teamname").Each(func(_ int, tn *goquery.Selection) {
		img := tn.Find("img").First()
		name := ""
		if txt := text(tn); txt != "" {
			name = strings.TrimSpace(cardScoreSplit.Split(txt, 2)[0])
		}
		if name == "" {
			name = attr(img, "alt")
		}
		record(attr(img, "src"), name)
	})

	return names
}
