package iatitests

import (
	"net/url"

	"github.com/IATI/website-tests/config"
	"github.com/IATI/website-tests/loader"
)

const (
	queryBuilderForm        = "Query Builder - Form"
	queryBuilderPOSTExample = "POST Example"
	queryBuilderPublishers  = "Publisher Information"
)

const datastoreInformationLink = "https://iatistandard.org/en/using-data/IATI-tools-and-resources/IATI-datastore/"

func queryBuilderRequests(sites config.Sites) loader.RequestSet {
	return loader.MustNewRequestSet(
		loader.Get(queryBuilderForm, sites.QueryBuilder+"/query/"),
		loader.Post(queryBuilderPOSTExample, sites.QueryBuilder+"/query/index.php", url.Values{
			"format":             {"activity"},
			"grouping":           {"summary"},
			"sample-size":        {"50 rows"},
			"reporting-org[]":    {"XM-DAC-3-1"},
			"sector[]":           {"12181"},
			"recipient-region[]": {"298"},
			"submit":             {"Submit"},
		}),
		loader.Get(queryBuilderPublishers, sites.QueryBuilder+"/query/helpers/groups_cache_dc.json").
			WithMinResponseSize(1500000),
	)
}

// QueryBuilderSuite checks the datastore query builder form and what it produces.
func QueryBuilderSuite() Suite {
	checks := parametrize("locate links", []string{queryBuilderForm, queryBuilderPOSTExample},
		func(t *T, page string) {
			AssertLink(t, t.LinksOnPage(page), datastoreInformationLink, page)
		})
	checks = append(checks, Check{
		Name: "form present",
		Run: func(t *T) {
			AssertAtLeast(t, t.CountOnPage(queryBuilderForm, `//form`), 1, "forms on the query builder page")
		},
	}, Check{
		Name: "form submit link",
		Run: func(t *T) {
			target := t.Sites().QueryBuilder +
				"/api/1/access/activity.csv?reporting-org=XM-DAC-3-1&sector=12181&recipient-region=298"
			AssertLink(t, t.LinksOnPage(queryBuilderPOSTExample), target, queryBuilderPOSTExample)
		},
	})
	return Suite{
		Name:     "query builder",
		Requests: queryBuilderRequests,
		Checks:   checks,
	}
}
