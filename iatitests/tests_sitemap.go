package iatitests

import (
	"net/url"

	"github.com/IATI/website-tests/config"
	"github.com/IATI/website-tests/loader"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const standardSitemap = "IATI Standard - Sitemap"

// StandardSitemapSuite checks that the standard website publishes a usable sitemap.
func StandardSitemapSuite() Suite {
	return Suite{
		Name: "standard sitemap",
		Requests: func(sites config.Sites) loader.RequestSet {
			return loader.MustNewRequestSet(loader.Get(standardSitemap, sites.Standard+"/sitemap.xml"))
		},
		Checks: []Check{
			{Name: "has pages", Run: func(t *T) {
				AssertAtLeast(t, t.LinksInSitemap(standardSitemap).Len(), 1, "sitemap page count")
			}},
			{Name: "pages are on the standard site", Run: func(t *T) {
				base, err := url.Parse(t.Sites().Standard)
				require.NoError(t, err)
				for _, link := range t.LinksInSitemap(standardSitemap).Sorted() {
					u, err := url.Parse(link)
					if assert.NoError(t, err, "sitemap entry %q", link) {
						assert.Equal(t, base.Hostname(), u.Hostname(), "sitemap entry %q is on another host", link)
					}
				}
			}},
		},
	}
}
