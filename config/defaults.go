package config

import "time"

const (
	// DefaultTimeout bounds each HTTP request made by the loader
	DefaultTimeout = 30 * time.Second
	// DefaultUserAgent is sent with every request
	DefaultUserAgent = "iati-website-tests/1.0"
)

// Default base URLs of the sites under test. Paths are appended by the test suites.
const (
	DefaultRegistryURL     = "https://iatiregistry.org"
	DefaultDashboardURL    = "http://dashboard.iatistandard.org"
	DefaultStandardURL     = "https://iatistandard.org"
	DefaultDatastoreAPIURL = "https://iatidatastore.iatistandard.org"
	DefaultQueryBuilderURL = "http://datastore.iatistandard.org"
	DefaultValidatorURL    = "http://validator.iatistandard.org"
)
