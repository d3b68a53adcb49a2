package iatitests

import (
	"github.com/IATI/website-tests/config"
	"github.com/IATI/website-tests/loader"
)

const validatorHome = "IATI Validator"

// ValidatorSuite checks the public validator site.
func ValidatorSuite() Suite {
	return Suite{
		Name: "validator",
		Requests: func(sites config.Sites) loader.RequestSet {
			return loader.MustNewRequestSet(loader.Get(validatorHome, sites.Validator+"/"))
		},
		Checks: []Check{
			{Name: "locate links", Run: func(t *T) {
				AssertLink(t, t.LinksOnPage(validatorHome), "http://iatistandard.org/", validatorHome)
			}},
		},
	}
}
