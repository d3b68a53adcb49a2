// Package extract pulls values out of loaded pages: nodes located by XPath, integers shown in
// page text, outbound links, and numbers from JSON API responses. The functions are pure; they
// never modify the documents they are given and never make network requests.
package extract

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/antchfx/htmlquery"
	"golang.org/x/net/html"
)

// Locate returns the nodes matching an XPath expression, in document order. Finding nothing is
// not an error.
func Locate(doc *html.Node, locator string) ([]*html.Node, error) {
	expr, err := CompileLocator(locator)
	if err != nil {
		return nil, err
	}
	return htmlquery.QuerySelectorAll(doc, expr), nil
}

// Count returns the number of nodes matching an XPath expression.
func Count(doc *html.Node, locator string) (int, error) {
	nodes, err := Locate(doc, locator)
	if err != nil {
		return 0, err
	}
	return len(nodes), nil
}

// SingleInt locates exactly one node and reads its text as an integer, ignoring every
// character that is not a decimal digit. "1,234 items" is read as 1234.
func SingleInt(doc *html.Node, locator string) (int, error) {
	nodes, err := Locate(doc, locator)
	if err != nil {
		return 0, err
	}
	switch len(nodes) {
	case 0:
		return 0, &ExtractionError{Locator: locator, Err: ErrNoMatch}
	case 1:
	default:
		return 0, &ExtractionError{Locator: locator, Matches: len(nodes), Err: ErrMultipleMatches}
	}

	text := htmlquery.InnerText(nodes[0])
	n, err := parseDigits(text)
	if err != nil {
		return 0, &ExtractionError{Locator: locator, Matches: 1, Text: NodeText(nodes[0]), Err: err}
	}
	return n, nil
}

func parseDigits(text string) (int, error) {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, text)
	if digits == "" {
		return 0, ErrNotNumeric
	}
	n, err := strconv.Atoi(digits)
	if err != nil {
		return 0, fmt.Errorf("%w: %s", ErrNotNumeric, err)
	}
	return n, nil
}

// NodeText returns the whitespace-normalized text of a node.
func NodeText(n *html.Node) string {
	return strings.Join(strings.FieldsFunc(htmlquery.InnerText(n), unicode.IsSpace), " ")
}
