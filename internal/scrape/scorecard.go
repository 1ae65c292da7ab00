package scrape

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// ExtractScorecard parses a single match page. It always reports OK; missing
// sections come back as empty collections.
func ExtractScorecard(markup string) ScorecardResult {
	result := ScorecardResult{
		OK:      true,
		Teams:   []string{},
		Info:    map[string]string{},
		Innings: []Innings{},
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return result
	}

	title := text(doc.Find("title").First())
	result.Title = optional(title)
	result.Teams = splitTeams(title)

	var batting, bowling []*goquery.Selection
	doc.Find("table").Each(func(_ int, t *goquery.Selection) {
		thead := t.Find("thead").First()
		if thead.Length() == 0 {
			return
		}
		head := strings.ToLower(text(thead))
		switch {
		case strings.Contains(head, "batting"):
			batting = append(batting, t)
		case strings.Contains(head, "bowling"):
			bowling = append(bowling, t)
		}
	})

	for i, bt := range batting {
		inn := parseBattingTable(bt)
		if i < len(bowling) {
			inn.Bowling = parseBowlingTable(bowling[i])
		}
		if len(result.Teams) > 0 {
			inn.Team = optional(result.Teams[i%len(result.Teams)])
		}
		result.Innings = append(result.Innings, inn)
	}

	result.Info = parseMatchInfo(doc.Selection)
	result.Source = ScorecardSource{BattingCount: len(batting), BowlingCount: len(bowling)}
	return result
}

// splitTeams reads "Team A VS Team B, 3rd ODI ..." page titles.
func splitTeams(title string) []string {
	left, right, ok := strings.Cut(title, " VS ")
	if !ok {
		return []string{}
	}
	left = strings.TrimSpace(left)
	right, _, _ = strings.Cut(right, ",")
	right = strings.TrimSpace(right)
	if left == "" || right == "" {
		return []string{}
	}
	return []string{left, right}
}

func rowsOf(table *goquery.Selection) *goquery.Selection {
	if tbody := table.Find("tbody").First(); tbody.Length() > 0 {
		return tbody.Find("tr")
	}
	return table.Find("tr")
}

func parseBattingTable(table *goquery.Selection) Innings {
	inn := Innings{Batting: []BattingEntry{}}

	rowsOf(table).Each(func(_ int, tr *goquery.Selection) {
		tds := tr.Find("td")
		if tds.Length() == 0 {
			return
		}
		first := tds.Eq(0)
		label := strings.ToLower(text(first))

		switch {
		case strings.HasPrefix(label, "extras"):
			inn.Extras = optional(joinCells(tds.Slice(1, tds.Length())))
			return
		case strings.HasPrefix(label, "total"):
			inn.Total = optional(joinCells(tds.Slice(1, tds.Length())))
			return
		case strings.HasPrefix(label, "did not bat"):
			return
		}

		name := text(first.Find("b").First())
		if name == "" {
			name = text(first)
		}
		entry := BattingEntry{
			Name:      name,
			Dismissal: optional(text(first.Find("small").First())),
			Runs:      cellText(tds, 1),
			Balls:     cellText(tds, 2),
			Fours:     cellText(tds, 3),
			Sixes:     cellText(tds, 4),
			SR:        cellText(tds, 5),
		}
		if name == "" || !anyStat(entry.Runs, entry.Balls, entry.Fours, entry.Sixes, entry.SR) {
			return
		}
		inn.Batting = append(inn.Batting, entry)
	})
	return inn
}

func anyStat(stats ...*string) bool {
	for _, s := range stats {
		if s != nil && *s != "" {
			return true
		}
	}
	return false
}

func joinCells(cells *goquery.Selection) string {
	parts := make([]string, 0, cells.Length())
	cells.Each(func(_ int, td *goquery.Selection) {
		parts = append(parts, text(td))
	})
	return strings.TrimSpace(strings.Join(parts, " "))
}

func parseBowlingTable(table *goquery.Selection) []BowlingEntry {
	bowlers := []BowlingEntry{}
	rowsOf(table).Each(func(_ int, tr *goquery.Selection) {
		tds := tr.Find("td")
		if tds.Length() < 6 {
			return
		}
		name := text(tds.Eq(0))
		if name == "" {
			return
		}
		bowlers = append(bowlers, BowlingEntry{
			Name: name,
			Ov:   text(tds.Eq(1)),
			M:    text(tds.Eq(2)),
			R:    text(tds.Eq(3)),
			W:    text(tds.Eq(4)),
			Econ: text(tds.Eq(5)),
		})
	})
	return bowlers
}

// parseMatchInfo reads the key/value table under the "Match Information"
// section title, falling back to the first table on the page.
func parseMatchInfo(doc *goquery.Selection) map[string]string {
	info := map[string]string{}

	table := doc.Slice(0, 0)
	heading := headingContaining(doc, ".section_title .title, .section_title h1, .section_title h2", "match information")
	if heading.Length() > 0 {
		table = tableAfter(heading.Parent())
	}
	if table.Length() == 0 {
		table = doc.Find("table").First()
	}
	if table.Length() == 0 {
		return info
	}

	table.Find("tr").Each(func(_ int, tr *goquery.Selection) {
		key := text(tr.Find("th").First())
		val := text(tr.Find("td").First())
		if key != "" && val != "" {
			info[key] = val
		}
	})
	return info
}
