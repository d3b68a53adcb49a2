package extract

import (
	"errors"
	"net/url"
	"strings"
	"testing"

	"github.com/antchfx/htmlquery"
	"github.com/antchfx/xmlquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

func parseHTML(t *testing.T, s string) *html.Node {
	doc, err := htmlquery.Parse(strings.NewReader(s))
	require.NoError(t, err)
	return doc
}

const dashboardHome = `<html><body><table>
<tr><td id="activities-count"><a href="activities.html">1,017,432</a></td></tr>
<tr><td id="unique-activities-count"><a href="activities.html">850,000</a></td></tr>
<tr><td id="publishers-count"><a href="publishers.html"> 1,234 items </a></td></tr>
<tr><td id="empty"><a href="#">n/a</a></td></tr>
</table><span class="stat">1</span><span class="stat">2</span></body></html>`

func TestLocate(t *testing.T) {
	doc := parseHTML(t, dashboardHome)

	nodes, err := Locate(doc, `//td/a`)
	require.NoError(t, err)
	assert.Len(t, nodes, 4)

	nodes, err = Locate(doc, `//div[@id="nothing"]`)
	require.NoError(t, err)
	assert.Empty(t, nodes)

	_, err = Locate(doc, `//td[`)
	assert.True(t, errors.Is(err, ErrInvalidLocator))
}

func TestCount(t *testing.T) {
	doc := parseHTML(t, dashboardHome)

	n, err := Count(doc, `//span[@class="stat"]`)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestSingleInt(t *testing.T) {
	doc := parseHTML(t, dashboardHome)

	tests := []struct {
		locator  string
		expected int
	}{
		{`//td[@id="activities-count"]/a`, 1017432},
		{`//td[@id="unique-activities-count"]/a`, 850000},
		{`//td[@id="publishers-count"]/a`, 1234},
	}
	for _, tt := range tests {
		t.Run(tt.locator, func(t *testing.T) {
			n, err := SingleInt(doc, tt.locator)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, n)
		})
	}
}

func TestSingleIntErrors(t *testing.T) {
	doc := parseHTML(t, dashboardHome)

	tests := []struct {
		name     string
		locator  string
		expected error
		matches  int
	}{
		{"no match", `//td[@id="missing"]/a`, ErrNoMatch, 0},
		{"two matches", `//span[@class="stat"]`, ErrMultipleMatches, 2},
		{"no digits", `//td[@id="empty"]/a`, ErrNotNumeric, 1},
		{"bad locator", `//td[`, ErrInvalidLocator, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := SingleInt(doc, tt.locator)
			require.Error(t, err)
			var extractionErr *ExtractionError
			require.True(t, errors.As(err, &extractionErr))
			assert.True(t, errors.Is(err, tt.expected), "got %s", err)
			assert.Equal(t, tt.matches, extractionErr.Matches)
			assert.Equal(t, tt.locator, extractionErr.Locator)
		})
	}
}

func TestSingleIntOverflow(t *testing.T) {
	doc := parseHTML(t, `<p id="big">99999999999999999999999999</p>`)
	_, err := SingleInt(doc, `//p[@id="big"]`)
	assert.True(t, errors.Is(err, ErrNotNumeric))
}

func TestLinks(t *testing.T) {
	doc := parseHTML(t, `<html><body>
<a href="https://iatistandard.org/">Standard</a>
<a href="https://iatistandard.org/">Standard again</a>
<a href=" /en/using-data/ ">Relative</a>
<a href="#top">Top</a>
<a href="mailto:support@iatistandard.org">Mail</a>
<a href="javascript:void(0)">Script</a>
<a>No target</a>
</body></html>`)

	t.Run("without base", func(t *testing.T) {
		links := Links(doc, nil)
		assert.Equal(t, []string{"/en/using-data/", "https://iatistandard.org/"}, links.Sorted())
		assert.True(t, links.Contains("https://iatistandard.org/"))
	})

	t.Run("with base", func(t *testing.T) {
		base, err := url.Parse("https://iatistandard.org/en/")
		require.NoError(t, err)
		links := Links(doc, base)
		assert.Equal(t, 2, links.Len())
		assert.True(t, links.Contains("https://iatistandard.org/en/using-data/"))
		assert.True(t, links.Contains("https://iatistandard.org/"))
	})
}

func TestJSONInt(t *testing.T) {
	v := ldvalue.Parse([]byte(`{"count": 900000, "next": null, "meta": {"total": 12}, "ratio": 1.5}`))

	n, err := JSONInt(v, "count")
	require.NoError(t, err)
	assert.Equal(t, 900000, n)

	n, err = JSONInt(v, "meta", "total")
	require.NoError(t, err)
	assert.Equal(t, 12, n)

	_, err = JSONInt(v, "missing")
	assert.True(t, errors.Is(err, ErrNoMatch))

	_, err = JSONInt(v, "next")
	assert.True(t, errors.Is(err, ErrNotNumeric))

	_, err = JSONInt(v, "ratio")
	assert.True(t, errors.Is(err, ErrNotNumeric))

	_, err = JSONInt(v, "count", "deeper")
	assert.True(t, errors.Is(err, ErrNoMatch))
}

func TestJSONWeightedSum(t *testing.T) {
	v := ldvalue.Parse([]byte(`{"result": {"facets": {"extras_activity_count": {"10": 3, "250": 2, "0": 7}}}}`))

	total, err := JSONWeightedSum(v, "result", "facets", "extras_activity_count")
	require.NoError(t, err)
	assert.Equal(t, 10*3+250*2, total)

	_, err = JSONWeightedSum(v, "result", "missing")
	assert.True(t, errors.Is(err, ErrNoMatch))

	bad := ldvalue.Parse([]byte(`{"facet": {"ten": 1}}`))
	_, err = JSONWeightedSum(bad, "facet")
	assert.True(t, errors.Is(err, ErrNotNumeric))
}

func TestXMLLinks(t *testing.T) {
	doc, err := xmlquery.Parse(strings.NewReader(`<?xml version="1.0" encoding="UTF-8"?>
<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">
  <url><loc>https://iatistandard.org/en/</loc></url>
  <url><loc> https://iatistandard.org/en/about/ </loc></url>
  <url><loc>https://iatistandard.org/en/</loc></url>
</urlset>`))
	require.NoError(t, err)

	links := XMLLinks(doc)
	assert.Equal(t, []string{"https://iatistandard.org/en/", "https://iatistandard.org/en/about/"}, links.Sorted())

	nodes, err := XMLLocate(doc, "//*[local-name()='url']")
	require.NoError(t, err)
	assert.Len(t, nodes, 3)

	_, err = XMLLocate(doc, "//url[")
	assert.True(t, errors.Is(err, ErrInvalidLocator))
}

func TestCompileLocatorIsCached(t *testing.T) {
	first, err := CompileLocator(`//span[@id="publishers"]`)
	require.NoError(t, err)
	second, err := CompileLocator(`//span[@id="publishers"]`)
	require.NoError(t, err)
	assert.Same(t, first, second)

	_, err = CompileLocator(`//span[`)
	var extractionErr *ExtractionError
	require.True(t, errors.As(err, &extractionErr))
	assert.Equal(t, `//span[`, extractionErr.Locator)
	assert.True(t, errors.Is(err, ErrInvalidLocator))
}
