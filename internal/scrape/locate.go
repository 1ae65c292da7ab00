package scrape

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// locator finds one candidate region in a document. An empty selection means
// "not here, try the next one".
type locator func(doc *goquery.Selection) *goquery.Selection

// firstMatch runs locators in order and returns the first non-empty result.
func firstMatch(doc *goquery.Selection, locators ...locator) *goquery.Selection {
	for _, loc := range locators {
		if sel := loc(doc); sel != nil && sel.Length() > 0 {
			return sel.First()
		}
	}
	return doc.Slice(0, 0)
}

func bySelector(selector string) locator {
	return func(doc *goquery.Selection) *goquery.Selection {
		return doc.Find(selector).First()
	}
}

func self() locator {
	return func(doc *goquery.Selection) *goquery.Selection { return doc }
}

// contentRootLocators mirror the site's layouts: ASP.NET placeholders first,
// then semantic containers.
var contentRootLocators = []locator{
	bySelector("#main"),
	bySelector("#content"),
	bySelector("#mainContent"),
	bySelector("#ContentPlaceHolder1"),
	bySelector("main"),
	bySelector("body"),
	self(),
}

// headingContaining finds the first element matched by selector whose text
// contains needle (case-insensitive).
func headingContaining(scope *goquery.Selection, selector, needle string) *goquery.Selection {
	return scope.Find(selector).FilterFunction(func(_ int, s *goquery.Selection) bool {
		return containsFold(text(s), needle)
	}).First()
}

// findNext returns the first element after the start of sel, in document
// order, that satisfies match. Descendants of sel come first, as they follow
// its opening tag.
func findNext(sel *goquery.Selection, match func(*html.Node) bool) *goquery.Selection {
	empty := sel.Slice(0, 0)
	if sel.Length() == 0 {
		return empty
	}
	for n := nextNode(sel.Nodes[0]); n != nil; n = nextNode(n) {
		if n.Type == html.ElementNode && match(n) {
			return empty.AddNodes(n)
		}
	}
	return empty
}

func nextNode(n *html.Node) *html.Node {
	if n.FirstChild != nil {
		return n.FirstChild
	}
	for n != nil {
		if n.NextSibling != nil {
			return n.NextSibling
		}
		n = n.Parent
	}
	return nil
}

func isTag(tag string) func(*html.Node) bool {
	return func(n *html.Node) bool { return n.Data == tag }
}

// isResponsiveWrapper matches <div> elements whose class list mentions
// table-responsive.
func isResponsiveWrapper(n *html.Node) bool {
	if n.Data != "div" {
		return false
	}
	for _, a := range n.Attr {
		if a.Key == "class" {
			for _, c := range strings.Fields(a.Val) {
				if strings.Contains(c, "table-responsive") {
					return true
				}
			}
		}
	}
	return false
}

// tableAfter returns the table inside the nearest responsive wrapper that
// follows anchor, or nothing when no wrapper exists.
func tableAfter(anchor *goquery.Selection) *goquery.Selection {
	wrap := findNext(anchor, isResponsiveWrapper)
	return wrap.Find("table").First()
}
