package extract

import (
	"strings"

	"github.com/antchfx/xmlquery"
)

// XMLLocate is the XML counterpart of Locate.
func XMLLocate(doc *xmlquery.Node, locator string) ([]*xmlquery.Node, error) {
	expr, err := CompileLocator(locator)
	if err != nil {
		return nil, err
	}
	return xmlquery.QuerySelectorAll(doc, expr), nil
}

const sitemapLocator = "//*[local-name()='url']/*[local-name()='loc']"

// XMLLinks returns the distinct page URLs listed in a sitemap document.
func XMLLinks(doc *xmlquery.Node) LinkSet {
	links := make(LinkSet)
	nodes, _ := XMLLocate(doc, sitemapLocator) // the locator is a constant known to be valid
	for _, n := range nodes {
		if loc := strings.TrimSpace(n.InnerText()); loc != "" {
			links.Add(loc)
		}
	}
	return links
}
