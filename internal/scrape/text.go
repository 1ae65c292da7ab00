package scrape

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// flagIDPattern matches the numeric flag identifier in an image URL.
var flagIDPattern = regexp.MustCompile(`(?:cricflag|flags)/([0-9]+)\.(?:png|gif)`)

// FlagID extracts the flag identifier from an image reference.
func FlagID(ref string) (string, bool) {
	m := flagIDPattern.FindStringSubmatch(ref)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// text returns the visible text of the first node in sel: every text node
// trimmed, empties dropped, joined by single spaces.
func text(sel *goquery.Selection) string {
	if sel.Length() == 0 {
		return ""
	}
	var parts []string
	collectText(sel.Nodes[0], &parts)
	return strings.Join(parts, " ")
}

// tightText is text without separators between nodes, for short labels
// such as "Live<b>!</b>" that the site splits across inline elements.
func tightText(sel *goquery.Selection) string {
	if sel.Length() == 0 {
		return ""
	}
	var parts []string
	collectText(sel.Nodes[0], &parts)
	return strings.Join(parts, "")
}

func collectText(n *html.Node, parts *[]string) {
	switch n.Type {
	case html.TextNode:
		if t := strings.TrimSpace(n.Data); t != "" {
			*parts = append(*parts, t)
		}
		return
	case html.CommentNode:
		return
	case html.ElementNode:
		if n.DataAtom == atom.Script || n.DataAtom == atom.Style {
			return
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(c, parts)
	}
}

// attr returns the first non-empty value among the named attributes.
func attr(sel *goquery.Selection, names ...string) string {
	for _, name := range names {
		if v, ok := sel.Attr(name); ok && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return ""
}

// containsFold is a case-insensitive substring test.
func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

// cellText returns a pointer to the text of the i-th cell, nil when the row
// has fewer cells.
func cellText(cells *goquery.Selection, i int) *string {
	if i >= cells.Length() {
		return nil
	}
	s := text(cells.Eq(i))
	return &s
}
