package iatitests

import (
	"context"
	"errors"

	"github.com/IATI/website-tests/config"
	"github.com/IATI/website-tests/extract"
	"github.com/IATI/website-tests/framework"
	"github.com/IATI/website-tests/loader"

	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

// T represents a check, or a group of checks, within a suite.
//
// It implements the same basic functionality as Go's testing.T, but in an environment that is
// outside of the Go test runner. Those features are provided by our lower-level framework
// package. To make test assertions, pass the *T to the assert and require packages as if it
// were a *testing.T.
//
// It also provides access to the pages the suite declared. Pages are loaded through a shared
// loader.Loader, so the first check that needs a page causes it to be requested and every later
// check reuses the result. If a page cannot be loaded, every check that needs it fails
// immediately with the same *loader.LoadError.
type T struct {
	context *framework.Context
	env     *environment
}

type environment struct {
	ctx    context.Context
	loader *loader.Loader
	sites  config.Sites
}

func newT(c *framework.Context, env *environment) *T {
	return &T{context: c, env: env}
}

// Errorf is called by assertions to log a test failure. It does not cause an immediate exit.
func (t *T) Errorf(format string, args ...interface{}) {
	t.context.Errorf(format, args...)
}

// FailNow is called by assertions when a test should fail and immediately exit. The methods in
// the require package call FailNow.
func (t *T) FailNow() {
	t.context.FailNow()
}

// Run runs a subtest. This is equivalent to the Run method of testing.T.
func (t *T) Run(name string, action func(*T)) {
	t.context.Run(name, func(c *framework.Context) {
		action(newT(c, t.env))
	})
}

// Debug logs some debug output for the test. The output will be passed to the test logger at
// the end of the test.
func (t *T) Debug(format string, args ...interface{}) {
	t.context.Debug(format, args...)
}

// Quarantine marks the test as known to be unreliable; see framework.Context.Quarantine.
func (t *T) Quarantine(reason string) {
	t.context.Quarantine(reason)
}

// Sites returns the base URLs the suite is running against.
func (t *T) Sites() config.Sites {
	return t.env.sites
}

// LoadedRequest returns the response for a request declared by the suite, loading it if no
// other check has done so yet. The test fails and exits if the request cannot be loaded.
func (t *T) LoadedRequest(name string) *loader.Response {
	var lookupErr *loader.LookupError
	if _, err := t.env.loader.Get(name); errors.As(err, &lookupErr) {
		t.Debug("first use of %q, loading it", name)
	}
	resp, err := t.env.loader.Locate(t.env.ctx, name)
	if loader.IsLoadError(err) {
		t.Debug("%q failed to load after %d request(s); not retrying", name, t.env.loader.FetchCount(name))
	}
	require.NoError(t, err)
	t.Debug("using %q (%s, %d bytes)", name, resp.URL, resp.Size())
	return resp
}

// Document returns the parsed HTML of a declared request.
func (t *T) Document(name string) *html.Node {
	doc, err := t.LoadedRequest(name).Document()
	require.NoError(t, err)
	return doc
}

// JSON returns the decoded JSON body of a declared request.
func (t *T) JSON(name string) ldvalue.Value {
	v, err := t.LoadedRequest(name).JSON()
	require.NoError(t, err)
	return v
}

// IntOnPage reads the single integer shown by the node that the locator selects.
func (t *T) IntOnPage(name, locator string) int {
	n, err := extract.SingleInt(t.Document(name), locator)
	require.NoError(t, err, "on page %q", name)
	t.Debug("%s on %q = %d", locator, name, n)
	return n
}

// CountOnPage counts the nodes that the locator selects.
func (t *T) CountOnPage(name, locator string) int {
	n, err := extract.Count(t.Document(name), locator)
	require.NoError(t, err, "on page %q", name)
	return n
}

// IntFromJSON reads an integer from a declared JSON response.
func (t *T) IntFromJSON(name string, path ...string) int {
	n, err := extract.JSONInt(t.JSON(name), path...)
	require.NoError(t, err, "in response %q", name)
	t.Debug("%v in %q = %d", path, name, n)
	return n
}

// LinksOnPage returns every outbound link on a page, with relative links resolved against the
// address the page was loaded from.
func (t *T) LinksOnPage(name string) extract.LinkSet {
	resp := t.LoadedRequest(name)
	doc, err := resp.Document()
	require.NoError(t, err)
	return extract.Links(doc, resp.URL)
}

// LinksInSitemap returns the page URLs listed by an XML sitemap.
func (t *T) LinksInSitemap(name string) extract.LinkSet {
	doc, err := t.LoadedRequest(name).XML()
	require.NoError(t, err)
	return extract.XMLLinks(doc)
}

var _ require.TestingT = (*T)(nil)
