package extract

import (
	"net/url"
	"sort"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// LinkSet is a set of link targets.
type LinkSet map[string]struct{}

func (s LinkSet) Add(link string) {
	s[link] = struct{}{}
}

func (s LinkSet) Contains(link string) bool {
	_, ok := s[link]
	return ok
}

func (s LinkSet) Len() int {
	return len(s)
}

// Sorted returns the links in lexical order.
func (s LinkSet) Sorted() []string {
	ret := make([]string, 0, len(s))
	for link := range s {
		ret = append(ret, link)
	}
	sort.Strings(ret)
	return ret
}

// Links returns the distinct href targets of every anchor in the document. If base is not nil,
// relative targets are resolved against it; otherwise they are returned as written.
// Fragment-only, javascript: and mailto: targets are not outbound links and are left out.
func Links(doc *html.Node, base *url.URL) LinkSet {
	links := make(LinkSet)
	goquery.NewDocumentFromNode(doc).Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		href = strings.TrimSpace(href)
		if href == "" || strings.HasPrefix(href, "#") {
			return
		}
		target, err := url.Parse(href)
		if err != nil {
			links.Add(href)
			return
		}
		switch strings.ToLower(target.Scheme) {
		case "javascript", "mailto", "tel":
			return
		}
		if base != nil && !target.IsAbs() {
			target = base.ResolveReference(target)
			links.Add(target.String())
			return
		}
		links.Add(href)
	})
	return links
}
