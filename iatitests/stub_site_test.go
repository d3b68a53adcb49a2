package iatitests

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/IATI/website-tests/config"

	"github.com/launchdarkly/go-test-helpers/v2/httphelpers"
)

// stubSite serves minimal versions of every page the suites read, with the figures taken from
// its fields. The zero value is not useful; start from consistentSite.
type stubSite struct {
	activities, uniqueActivities     int
	datastoreActivities              int
	registryActivities               int
	activityFiles, registryActFiles  int
	homeActivityFiles                int
	orgFiles, registryOrgFiles       int
	publishers, registryPublishers   int
	queryBuilderPublishers           int
	standardActivities, standardPubs int
	validatorLink                    string
	failingPaths                     map[string]int
}

func consistentSite() *stubSite {
	return &stubSite{
		activities:             950000,
		uniqueActivities:       900000,
		datastoreActivities:    900000,
		registryActivities:     900000,
		activityFiles:          5000,
		homeActivityFiles:      5000,
		registryActFiles:       5000,
		orgFiles:               500,
		registryOrgFiles:       500,
		publishers:             700,
		registryPublishers:     700,
		queryBuilderPublishers: 700,
		standardActivities:     900000,
		standardPubs:           700,
		validatorLink:          "http://iatistandard.org/",
	}
}

// sites returns base URLs that route every site to a prefix of the one stub server.
func (s *stubSite) sites(serverURL string) config.Sites {
	return config.Sites{
		Registry:     serverURL + "/registry",
		RegistryAPI:  serverURL + "/registry-api",
		Dashboard:    serverURL + "/dashboard",
		Standard:     serverURL + "/standard",
		DatastoreAPI: serverURL + "/datastore",
		QueryBuilder: serverURL + "/qb",
		Validator:    serverURL + "/validator",
	}
}

func htmlPage(body string) http.Handler {
	headers := make(http.Header)
	headers.Set("Content-Type", "text/html; charset=utf-8")
	return httphelpers.HandlerWithResponse(200, headers,
		[]byte("<!DOCTYPE html><html><head><title>stub</title></head><body>"+body+"</body></html>"))
}

func jsonBody(body string) http.Handler {
	headers := make(http.Header)
	headers.Set("Content-Type", "application/json")
	return httphelpers.HandlerWithResponse(200, headers, []byte(body))
}

// countJSON looks like a paged API result, padded past the minimum response size.
func countJSON(count int) http.Handler {
	return jsonBody(fmt.Sprintf(`{"count":%d,"next":null,"previous":null,"results":[{"id":1,"title":"%s"}]}`,
		count, strings.Repeat("x", 300)))
}

func datasetSearchPage(count int) http.Handler {
	return htmlPage(fmt.Sprintf(`<div id="content"><div></div><div></div><div><div><section><div>`+
		`<form><h2>%s datasets found</h2></form></div></section></div></div></div>`, thousands(count)))
}

func (s *stubSite) handler(serverURL string) http.Handler {
	sites := s.sites(serverURL)
	mux := http.NewServeMux()

	mux.Handle("/registry/", htmlPage(fmt.Sprintf(`<div id="home-icons"><div><div><a href="/dataset">`+
		`<strong>1</strong></a></div><div><div><a href="/publisher"><strong>%s</strong></a></div></div>`+
		`</div></div>`, thousands(s.registryPublishers))))
	mux.Handle("/registry/dataset", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("filetype") == "Organisation" {
			datasetSearchPage(s.registryOrgFiles).ServeHTTP(w, r)
		} else {
			datasetSearchPage(s.registryActFiles).ServeHTTP(w, r)
		}
	}))
	// facet keys are activities per dataset, values are how many datasets have that many
	mux.Handle("/registry-api/api/3/action/package_search", jsonBody(fmt.Sprintf(
		`{"success":true,"result":{"count":0,"facets":{"extras_activity_count":{"1":%d,"100":%d}},"results":[]}}`,
		s.registryActivities%100, s.registryActivities/100)))

	mux.Handle("/standard/", htmlPage(fmt.Sprintf(`<p><span id="stat-activities">%s</span> activities from `+
		`<span id="stat-publishers">%s</span> publishers</p>`, thousands(s.standardActivities), thousands(s.standardPubs))))
	mux.Handle("/standard/sitemap.xml", httphelpers.HandlerWithResponse(200, nil, []byte(fmt.Sprintf(
		`<?xml version="1.0" encoding="UTF-8"?>`+
			`<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">`+
			`<url><loc>%[1]s/en/</loc></url><url><loc>%[1]s/en/about/</loc></url></urlset>`, sites.Standard))))

	mux.Handle("/dashboard/", htmlPage(fmt.Sprintf(`<table><tbody>`+
		`<tr><td id="activities-count"><a href="activities.html">%s</a></td></tr>`+
		`<tr><td id="unique-activities-count"><a href="activities.html">%s</a></td></tr>`+
		`<tr><td id="activity-files-count"><a href="files.html">%s</a></td></tr>`+
		`<tr><td id="organisation-files-count"><a href="files.html">%s</a></td></tr>`+
		`<tr><td id="publishers-count"><a href="publishers.html">%s</a></td></tr>`+
		`</tbody></table>`,
		thousands(s.activities), thousands(s.uniqueActivities), thousands(s.homeActivityFiles),
		thousands(s.orgFiles), thousands(s.publishers))))
	mux.Handle("/dashboard/activities.html", htmlPage(fmt.Sprintf(
		`<p><span id="total-activities">%s</span> (<span id="unique-activities">%s</span> unique)</p>`,
		thousands(s.activities), thousands(s.uniqueActivities))))
	mux.Handle("/dashboard/files.html", htmlPage(fmt.Sprintf(
		`<p><span id="total-activity-files">%s</span> and <span id="total-organisation-files">%s</span></p>`,
		thousands(s.activityFiles), thousands(s.orgFiles))))
	mux.Handle("/dashboard/publishers.html", htmlPage(fmt.Sprintf(
		`<p><span id="publishers">%s</span></p>`, thousands(s.publishers))))

	mux.Handle("/datastore/api/activities/", countJSON(s.datastoreActivities))
	mux.Handle("/datastore/api/publishers/", countJSON(s.queryBuilderPublishers))

	mux.Handle("/qb/query/", htmlPage(fmt.Sprintf(`<form method="post" action="index.php"></form>`+
		`<a href="%s">About the datastore</a>`, datastoreInformationLink)))
	mux.Handle("/qb/query/index.php", htmlPage(fmt.Sprintf(`<a href="%s">About the datastore</a>`+
		`<a href="%s/api/1/access/activity.csv?reporting-org=XM-DAC-3-1&amp;sector=12181&amp;recipient-region=298">CSV</a>`,
		datastoreInformationLink, sites.QueryBuilder)))
	mux.Handle("/qb/query/helpers/groups_cache_dc.json",
		jsonBody(`{"groups":"`+strings.Repeat("a", 1500000)+`"}`))

	mux.Handle("/validator/", htmlPage(fmt.Sprintf(`<a href="%s">IATI Standard</a>`, s.validatorLink)))

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if status, ok := s.failingPaths[r.URL.Path]; ok {
			httphelpers.HandlerWithStatus(status).ServeHTTP(w, r)
			return
		}
		mux.ServeHTTP(w, r)
	})
}

// withStubSite starts a server for the site and passes the matching Sites to action, along
// with a channel that receives every request the server handles.
func withStubSite(s *stubSite, action func(sites config.Sites, requestsCh <-chan httphelpers.HTTPRequestInfo)) {
	var h http.Handler
	lazy := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { h.ServeHTTP(w, r) })
	recording, requestsCh := httphelpers.RecordingHandler(lazy)
	httphelpers.WithServer(recording, func(server *httptest.Server) {
		h = s.handler(server.URL)
		action(s.sites(server.URL), requestsCh)
	})
}

// thousands formats n the way the sites do, with comma separators.
func thousands(n int) string {
	s := fmt.Sprint(n)
	var b strings.Builder
	for i, c := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(c)
	}
	return b.String()
}
