package scrape

import (
	"context"
	"log/slog"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// FlagResolver caches a flag image locally and returns its reference.
type FlagResolver interface {
	FlagLookup
	Resolve(ctx context.Context, flagID, teamName string) (string, bool)
}

// timeMarker decides whether a table row's date carries a clock time.
var timeMarker = regexp.MustCompile(`(?i)(?:\d|\b)(?:AM|PM)\b|\b(?:PST|PKT|GMT|UTC|IST|BST|EST|EDT|AEST|AEDT)\b`)

const statusUpcoming = "Upcoming"

// ScheduleExtractor pulls match listings out of the schedules page.
type ScheduleExtractor struct {
	norm   *Normalizer
	flags  FlagResolver
	logger *slog.Logger
}

// NewScheduleExtractor creates an extractor. flags may be nil, in which case
// images are only normalized.
func NewScheduleExtractor(origin string, flags FlagResolver, logger *slog.Logger) *ScheduleExtractor {
	if logger == nil {
		logger = slog.Default()
	}
	var lookup FlagLookup
	if flags != nil {
		lookup = flags
	}
	return &ScheduleExtractor{
		norm:   NewNormalizer(origin, lookup),
		flags:  flags,
		logger: logger,
	}
}

// Extract parses markup into match records: card matches first, then
// schedule table rows, deduplicated on (title, teams, time/venue).
func (e *ScheduleExtractor) Extract(ctx context.Context, markup string) ScheduleResult {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		e.logger.Warn("Failed to parse schedule markup", "error", err)
		return ScheduleResult{Items: []MatchRecord{}}
	}
	root := firstMatch(doc.Selection, contentRootLocators...)

	cards, cardCount := e.cardPass(ctx, root)
	rows, rowCount, tableFound := e.tablePass(ctx, root)

	result := ScheduleResult{
		Items:      mergeRecords(cards, rows),
		Cards:      cardCount,
		TableRows:  rowCount,
		TableFound: tableFound,
	}
	if len(result.Items) == 0 {
		e.logger.Warn("Schedule markup yielded no matches",
			"cards", cardCount, "table_found", tableFound, "table_rows", rowCount)
	}
	return result
}

// --------------------------------------------------------------------------
// Card pass: .match_update blocks
// --------------------------------------------------------------------------

func (e *ScheduleExtractor) cardPass(ctx context.Context, root *goquery.Selection) ([]MatchRecord, int) {
	cards := root.Find(".match_update")
	items := make([]MatchRecord, 0, cards.Length())

	cards.Each(func(_ int, mu *goquery.Selection) {
		p := mu.Find("p").First()
		title := text(p)
		var status *string
		if small := p.Find("small").First(); small.Length() > 0 {
			s := tightText(small)
			status = &s
			// The status badge sits inside the title paragraph.
			bare := p.Clone()
			bare.Find("small").First().Remove()
			title = text(bare)
		}

		rec := MatchRecord{Title: title, Teams: []string{}, TeamImages: []*string{}, Status: status}

		mu.Find(".teamname").Each(func(_ int, tn *goquery.Selection) {
			name := cardTeamName(tn)
			if name == "" {
				return
			}
			rec.Teams = append(rec.Teams, name)
			rec.TeamImages = append(rec.TeamImages, optional(e.teamImage(ctx, attr(tn.Find("img").First(), "src"), name)))
		})
		truncateTeams(&rec)

		if a := mu.Find("a[href]").First(); a.Length() > 0 {
			rec.Link = optional(e.norm.Normalize(attr(a, "href")))
		}
		if res := mu.Find(".match_result").First(); res.Length() > 0 {
			rec.TimeOrVenue = optional(text(res))
		}

		if rec.empty() {
			return
		}
		items = append(items, rec)
	})
	return items, cards.Length()
}

// cardTeamName prefers the first span that is not a score.
func cardTeamName(tn *goquery.Selection) string {
	span := tn.Find("span").FilterFunction(func(_ int, s *goquery.Selection) bool {
		return !s.HasClass("score")
	}).First()
	if span.Length() > 0 {
		return tightText(span)
	}
	return text(tn)
}

// linkTeamName reads the label of an a.team_name link.
func linkTeamName(a *goquery.Selection) string {
	if span := a.Find("span").First(); span.Length() > 0 {
		return tightText(span)
	}
	return text(a)
}

// --------------------------------------------------------------------------
// Table pass: the "Schedule" table
// --------------------------------------------------------------------------

func (e *ScheduleExtractor) tablePass(ctx context.Context, root *goquery.Selection) ([]MatchRecord, int, bool) {
	table := scheduleTable(root)
	if table.Length() == 0 {
		return nil, 0, false
	}

	var items []MatchRecord
	rows := 0
	table.Find("tr").Each(func(_ int, tr *goquery.Selection) {
		tds := tr.Find("td")
		if tds.Length() == 0 {
			return
		}
		rows++
		first := tds.Eq(0)

		rec := MatchRecord{Teams: []string{}, TeamImages: []*string{}}
		var link string

		teamLinks := first.Find("a.team_name")
		teamLinks.Slice(0, min(2, teamLinks.Length())).Each(func(_ int, a *goquery.Selection) {
			name := linkTeamName(a)
			if name != "" {
				img := a.Find("img").First()
				rec.Teams = append(rec.Teams, name)
				rec.TeamImages = append(rec.TeamImages, optional(e.teamImage(ctx, attr(img, "data-src", "src"), name)))
			}
			if link == "" {
				if href := attr(a, "href"); href != "" {
					link = e.norm.Normalize(href)
				}
			}
		})
		if link == "" {
			if a := first.Find("a[href]").First(); a.Length() > 0 {
				link = e.norm.Normalize(attr(a, "href"))
			}
		}
		rec.Link = optional(link)

		var matchType, dateTime string
		if tds.Length() >= 2 {
			matchType = text(tds.Eq(1))
		}
		if tds.Length() >= 3 {
			dateTime = text(tds.Eq(2))
		}

		var parts []string
		if len(rec.Teams) > 0 {
			parts = append(parts, strings.Join(rec.Teams, " vs "))
		}
		if matchType != "" {
			parts = append(parts, matchType)
		}
		rec.Title = strings.Join(parts, ", ")
		rec.TimeOrVenue = optional(dateTime)
		if dateTime != "" && timeMarker.MatchString(dateTime) {
			rec.Status = optional(statusUpcoming)
		}

		if rec.empty() {
			return
		}
		items = append(items, rec)
	})
	return items, rows, true
}

// scheduleTable locates the schedule table: after a "schedule" heading when
// there is one, otherwise the first classed table.
func scheduleTable(root *goquery.Selection) *goquery.Selection {
	heading := headingContaining(root, "h1, h2, h3", "schedule")
	if heading.Length() > 0 {
		if wrap := findNext(heading, isResponsiveWrapper); wrap.Length() > 0 {
			return wrap.Find("table").First()
		}
		return findNext(heading, isTag("table"))
	}
	return firstMatch(root,
		bySelector(".table-responsive table.table"),
		bySelector("table.table"),
	)
}

// --------------------------------------------------------------------------
// Shared helpers
// --------------------------------------------------------------------------

// teamImage resolves a team's flag image. A recognizable identifier plus a
// name goes through the resolver; anything else is only normalized.
func (e *ScheduleExtractor) teamImage(ctx context.Context, raw, name string) string {
	if raw == "" {
		return ""
	}
	if e.flags != nil && name != "" {
		if id, ok := FlagID(raw); ok {
			if ref, ok := e.flags.Resolve(ctx, id, name); ok {
				return ref
			}
		}
	}
	return e.norm.Normalize(raw)
}

func truncateTeams(rec *MatchRecord) {
	if len(rec.Teams) > 2 {
		rec.Teams = rec.Teams[:2]
	}
	if len(rec.TeamImages) > 2 {
		rec.TeamImages = rec.TeamImages[:2]
	}
}

// mergeRecords concatenates the passes and keeps the first record for every
// (title, teams, time/venue) key.
func mergeRecords(passes ...[]MatchRecord) []MatchRecord {
	merged := []MatchRecord{}
	seen := make(map[string]struct{})
	for _, pass := range passes {
		for _, rec := range pass {
			k := recordKey(rec)
			if _, dup := seen[k]; dup {
				continue
			}
			seen[k] = struct{}{}
			merged = append(merged, rec)
		}
	}
	return merged
}

func recordKey(rec MatchRecord) string {
	tv := ""
	if rec.TimeOrVenue != nil {
		tv = *rec.TimeOrVenue
	}
	return rec.Title + "|" + strings.Join(rec.Teams, "-") + "|" + tv
}
