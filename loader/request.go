package loader

import (
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strings"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

// Request describes one named HTTP request that tests can refer to.
type Request struct {
	// Name identifies the request within its RequestSet. It is also how tests refer to it.
	Name string
	URL  string
	// Method is GET or POST; empty means GET.
	Method string
	// Data is sent form-encoded as the body of a POST request. It is ignored for GET.
	Data url.Values
	// MinResponseSize, if defined, is the smallest acceptable body length in bytes.
	MinResponseSize ldvalue.OptionalInt
	// ExpectedStatus, if defined, is the only acceptable status code. Otherwise any 2xx is.
	ExpectedStatus ldvalue.OptionalInt
}

// Get is a shortcut for a GET request with no size constraint.
func Get(name, url string) Request {
	return Request{Name: name, URL: url}
}

// Post is a shortcut for a form-encoded POST request.
func Post(name, url string, data url.Values) Request {
	return Request{Name: name, URL: url, Method: http.MethodPost, Data: data}
}

// WithMinResponseSize returns a copy of the request that fails to load if the body is shorter
// than size bytes.
func (r Request) WithMinResponseSize(size int) Request {
	r.MinResponseSize = ldvalue.NewOptionalInt(size)
	return r
}

// WithExpectedStatus returns a copy of the request that fails to load unless the server
// responds with exactly the given status.
func (r Request) WithExpectedStatus(status int) Request {
	r.ExpectedStatus = ldvalue.NewOptionalInt(status)
	return r
}

// statusOK reports whether a response status is acceptable for this request.
func (r Request) statusOK(status int) bool {
	if expected, ok := r.ExpectedStatus.Get(); ok {
		return status == expected
	}
	return status >= 200 && status < 300
}

func (r Request) method() string {
	if r.Method == "" {
		return http.MethodGet
	}
	return strings.ToUpper(r.Method)
}

func (r Request) validate() error {
	if r.Name == "" {
		return fmt.Errorf("request for %q has no name", r.URL)
	}
	if r.URL == "" {
		return fmt.Errorf("request %q has no URL", r.Name)
	}
	if _, err := url.Parse(r.URL); err != nil {
		return fmt.Errorf("request %q has an invalid URL: %w", r.Name, err)
	}
	switch r.method() {
	case http.MethodGet, http.MethodPost:
	default:
		return fmt.Errorf("request %q has unsupported method %q", r.Name, r.Method)
	}
	if size, ok := r.MinResponseSize.Get(); ok && size < 0 {
		return fmt.Errorf("request %q has a negative minimum response size", r.Name)
	}
	return nil
}

// RequestSet is an immutable collection of requests keyed by name.
type RequestSet struct {
	requests map[string]Request
}

// NewRequestSet validates the requests and builds a set from them. Names must be unique.
func NewRequestSet(requests ...Request) (RequestSet, error) {
	set := RequestSet{requests: make(map[string]Request, len(requests))}
	for _, r := range requests {
		if err := r.validate(); err != nil {
			return RequestSet{}, err
		}
		if _, exists := set.requests[r.Name]; exists {
			return RequestSet{}, fmt.Errorf("request name %q is declared more than once", r.Name)
		}
		if r.Data != nil {
			r.Data = cloneValues(r.Data)
		}
		set.requests[r.Name] = r
	}
	return set, nil
}

// MustNewRequestSet is like NewRequestSet but panics on an invalid declaration. It is meant
// for request sets that are written out in code.
func MustNewRequestSet(requests ...Request) RequestSet {
	set, err := NewRequestSet(requests...)
	if err != nil {
		panic(err)
	}
	return set
}

// Lookup returns the request with the given name.
func (s RequestSet) Lookup(name string) (Request, bool) {
	r, ok := s.requests[name]
	if ok && r.Data != nil {
		r.Data = cloneValues(r.Data)
	}
	return r, ok
}

// Names returns the request names in sorted order.
func (s RequestSet) Names() []string {
	names := make([]string, 0, len(s.requests))
	for name := range s.requests {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (s RequestSet) Len() int {
	return len(s.requests)
}

func cloneValues(v url.Values) url.Values {
	ret := make(url.Values, len(v))
	for k, vs := range v {
		ret[k] = append([]string(nil), vs...)
	}
	return ret
}
