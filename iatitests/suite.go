package iatitests

import (
	"context"
	"fmt"
	"net/http"

	"github.com/IATI/website-tests/config"
	"github.com/IATI/website-tests/framework"
	"github.com/IATI/website-tests/loader"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldlog"
)

// Suite is a group of checks that share a set of declared requests.
type Suite struct {
	Name string
	// Requests builds the request declarations for the given sites.
	Requests func(config.Sites) loader.RequestSet
	Checks   []Check
}

// Check is one named consistency check.
type Check struct {
	Name string
	// Quarantine, if not empty, marks the check as known to be unreliable and says why.
	Quarantine string
	Run        func(t *T)
}

// requestsLoadName is the name of the group of checks, added to every suite, that verifies each
// declared request can be loaded on its own.
const requestsLoadName = "requests load"

// AllSuites returns every suite, in the order they are run.
func AllSuites() []Suite {
	return []Suite{
		GlobalConsistencySuite(),
		QueryBuilderSuite(),
		ValidatorSuite(),
		StandardSitemapSuite(),
	}
}

// Params holds what the suites need to run.
type Params struct {
	Sites     config.Sites
	Client    *http.Client
	UserAgent string
	Loggers   ldlog.Loggers
	// Context bounds every request; if nil, context.Background() is used.
	Context context.Context
}

// NewParams derives Params from a run configuration.
func NewParams(cfg *config.Config, loggers ldlog.Loggers) Params {
	return Params{
		Sites:     cfg.Sites,
		Client:    loader.NewHTTPClient(cfg.Timeout),
		UserAgent: cfg.UserAgent,
		Loggers:   loggers,
	}
}

// RunTestSuite runs the given suites and returns the results. Each suite gets its own loader,
// so a page is requested at most once per suite.
func RunTestSuite(
	params Params,
	suites []Suite,
	filter framework.Filter,
	testLogger framework.TestLogger,
) framework.Results {
	ctx := params.Context
	if ctx == nil {
		ctx = context.Background()
	}
	return framework.Run(filter, testLogger, func(c *framework.Context) {
		for _, suite := range suites {
			suite := suite
			env := &environment{
				ctx:   ctx,
				sites: params.Sites,
				loader: loader.New(suite.Requests(params.Sites), loader.Options{
					Client:    params.Client,
					UserAgent: params.UserAgent,
					Loggers:   params.Loggers,
				}),
			}
			c.Run(suite.Name, func(c *framework.Context) {
				t := newT(c, env)
				t.Run(requestsLoadName, doRequestsLoadChecks)
				for _, check := range suite.Checks {
					check := check
					t.Run(check.Name, func(t *T) {
						if check.Quarantine != "" {
							t.Quarantine(check.Quarantine)
						}
						check.Run(t)
					})
				}
			})
		}
	})
}

func doRequestsLoadChecks(t *T) {
	for _, name := range t.env.loader.Requests().Names() {
		name := name
		t.Run(name, func(t *T) {
			t.LoadedRequest(name)
		})
	}
}

// ListTests returns the IDs of every test that RunTestSuite would run for the given suites,
// without loading anything.
func ListTests(suites []Suite, sites config.Sites) []framework.TestID {
	var ids []framework.TestID
	add := func(path ...string) {
		ids = append(ids, framework.TestID{Path: path})
	}
	for _, suite := range suites {
		add(suite.Name)
		add(suite.Name, requestsLoadName)
		for _, name := range suite.Requests(sites).Names() {
			add(suite.Name, requestsLoadName, name)
		}
		for _, check := range suite.Checks {
			add(suite.Name, check.Name)
		}
	}
	return ids
}

// parametrize expands one check body into a check per parameter, named "name[param]".
func parametrize(name string, params []string, run func(t *T, param string)) []Check {
	var checks []Check
	for _, p := range params {
		p := p
		checks = append(checks, Check{
			Name: fmt.Sprintf("%s[%s]", name, p),
			Run:  func(t *T) { run(t, p) },
		})
	}
	return checks
}
