// Package scrape turns hamariweb.com schedule and scorecard markup into
// structured records.
//
// Extraction is heuristic and never fails: a missing element is treated as
// absent and yields empty collections or nil optionals.
package scrape

// MatchRecord is one match listing from the schedules page.
type MatchRecord struct {
	Title       string    `json:"title"`
	Teams       []string  `json:"teams"`
	TeamImages  []*string `json:"team_images"`
	Status      *string   `json:"status"`
	TimeOrVenue *string   `json:"time_or_venue"`
	Link        *string   `json:"link"`
}

// empty reports whether the record carries none of title, teams or
// time/venue. Such records are discarded.
func (m MatchRecord) empty() bool {
	return m.Title == "" && len(m.Teams) == 0 && (m.TimeOrVenue == nil || *m.TimeOrVenue == "")
}

// ScheduleResult is the merged output of both schedule passes plus
// diagnostics that tell an empty schedule apart from a layout change.
type ScheduleResult struct {
	Items      []MatchRecord `json:"items"`
	Cards      int           `json:"cards"`
	TableRows  int           `json:"table_rows"`
	TableFound bool          `json:"table_found"`
}

// BattingEntry is one batter's line in an innings.
type BattingEntry struct {
	Name      string  `json:"name"`
	Dismissal *string `json:"dismissal"`
	Runs      *string `json:"runs"`
	Balls     *string `json:"balls"`
	Fours     *string `json:"fours"`
	Sixes     *string `json:"sixes"`
	SR        *string `json:"sr"`
}

// BowlingEntry is one bowler's figures, copied verbatim from the source.
type BowlingEntry struct {
	Name string `json:"name"`
	Ov   string `json:"ov"`
	M    string `json:"m"`
	R    string `json:"r"`
	W    string `json:"w"`
	Econ string `json:"econ"`
}

// Innings pairs a batting card with the bowling figures at the same index.
type Innings struct {
	Batting []BattingEntry `json:"batting"`
	Extras  *string        `json:"extras"`
	Total   *string        `json:"total"`
	Team    *string        `json:"team,omitempty"`
	Bowling []BowlingEntry `json:"bowling,omitempty"`
}

// ScorecardSource counts the classified tables.
type ScorecardSource struct {
	BattingCount int `json:"batting_count"`
	BowlingCount int `json:"bowling_count"`
}

// ScorecardResult is the parsed match page.
type ScorecardResult struct {
	OK      bool              `json:"ok"`
	Title   *string           `json:"title"`
	Teams   []string          `json:"teams"`
	Info    map[string]string `json:"info"`
	Innings []Innings         `json:"innings"`
	Source  ScorecardSource   `json:"source"`
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
