// Package loader performs the HTTP requests that the website checks depend on. Each named
// request is made at most once per Loader, no matter how many tests refer to it, and the
// outcome (success or failure) is kept for the life of the Loader.
package loader

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldlog"
)

const maxRedirects = 10

// Options configures a Loader. The zero value is usable.
type Options struct {
	// Client is used for all requests. If nil, NewHTTPClient(DefaultTimeout) is used.
	Client *http.Client
	// UserAgent is sent with every request if non-empty.
	UserAgent string
	// Loggers receives diagnostic output. The zero value logs at Info level to stderr.
	Loggers ldlog.Loggers
}

// DefaultTimeout is the client timeout used when Options.Client is nil.
const DefaultTimeout = 30 * time.Second

// NewHTTPClient returns a client with the given timeout that gives up after 10 redirects.
func NewHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{
		Timeout: timeout,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) >= maxRedirects {
				return fmt.Errorf("stopped after %d redirects", maxRedirects)
			}
			return nil
		},
	}
}

type entry struct {
	once sync.Once
	resp *Response
	err  error
	done bool
}

// Loader loads named requests on demand and caches the results. It is safe for concurrent
// use; concurrent first accesses to the same name result in a single request.
type Loader struct {
	requests  RequestSet
	client    *http.Client
	userAgent string
	loggers   ldlog.Loggers

	lock    sync.Mutex
	entries map[string]*entry
	fetches map[string]int
}

// New creates a Loader for the given set of requests. Nothing is loaded until it is asked for.
func New(requests RequestSet, options Options) *Loader {
	client := options.Client
	if client == nil {
		client = NewHTTPClient(DefaultTimeout)
	}
	return &Loader{
		requests:  requests,
		client:    client,
		userAgent: options.UserAgent,
		loggers:   options.Loggers,
		entries:   make(map[string]*entry),
		fetches:   make(map[string]int),
	}
}

// Requests returns the set of requests the Loader knows about.
func (l *Loader) Requests() RequestSet {
	return l.requests
}

// Locate returns the response for the named request, loading it first if this is the first
// time it has been asked for. If loading fails, the same *LoadError is returned for this and
// every later call with that name.
func (l *Loader) Locate(ctx context.Context, name string) (*Response, error) {
	req, ok := l.requests.Lookup(name)
	if !ok {
		return nil, &LookupError{Name: name, Reason: "not declared"}
	}

	l.lock.Lock()
	e := l.entries[name]
	if e == nil {
		e = &entry{}
		l.entries[name] = e
	}
	l.lock.Unlock()

	e.once.Do(func() {
		e.resp, e.err = l.Load(ctx, req)
		l.lock.Lock()
		e.done = true
		l.lock.Unlock()
	})
	return e.resp, e.err
}

// Get returns the outcome of a request that has already been loaded, without loading it. It
// returns a *LookupError if the name is not declared or has not been loaded yet.
func (l *Loader) Get(name string) (*Response, error) {
	if _, ok := l.requests.Lookup(name); !ok {
		return nil, &LookupError{Name: name, Reason: "not declared"}
	}
	l.lock.Lock()
	e := l.entries[name]
	loaded := e != nil && e.done
	l.lock.Unlock()
	if !loaded {
		return nil, &LookupError{Name: name, Reason: "not loaded yet"}
	}
	return e.resp, e.err
}

// FetchCount returns how many times a network request has been made for the given name.
func (l *Loader) FetchCount(name string) int {
	l.lock.Lock()
	defer l.lock.Unlock()
	return l.fetches[name]
}

// Load performs a request without consulting or updating the cache.
func (l *Loader) Load(ctx context.Context, req Request) (*Response, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}

	l.lock.Lock()
	l.fetches[req.Name]++
	l.lock.Unlock()

	fail := func(err error, status, size int) (*Response, error) {
		loadErr := &LoadError{
			Name:       req.Name,
			URL:        req.URL,
			StatusCode: status,
			Size:       size,
			MinSize:    req.MinResponseSize.OrElse(0),
			Err:        err,
		}
		l.loggers.Warnf("%s", loadErr)
		return nil, loadErr
	}

	httpReq, err := l.buildRequest(ctx, req)
	if err != nil {
		return fail(err, 0, 0)
	}

	l.loggers.Debugf("Loading %q: %s %s", req.Name, httpReq.Method, req.URL)
	startTime := time.Now()
	resp, err := l.client.Do(httpReq)
	if err != nil {
		return fail(err, 0, 0)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fail(fmt.Errorf("failed to read response body: %w", err), resp.StatusCode, len(body))
	}
	l.loggers.Infof("Loaded %q: status %d, %d bytes in %s",
		req.Name, resp.StatusCode, len(body), time.Since(startTime).Round(time.Millisecond))

	if !req.statusOK(resp.StatusCode) {
		return fail(ErrBadStatus, resp.StatusCode, len(body))
	}
	if minSize, ok := req.MinResponseSize.Get(); ok && len(body) < minSize {
		return fail(ErrTooSmall, resp.StatusCode, len(body))
	}

	return &Response{
		Name:       req.Name,
		URL:        resp.Request.URL,
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       body,
	}, nil
}

func (l *Loader) buildRequest(ctx context.Context, req Request) (*http.Request, error) {
	var body io.Reader
	method := req.method()
	if method == http.MethodPost && req.Data != nil {
		body = strings.NewReader(req.Data.Encode())
	}
	httpReq, err := http.NewRequestWithContext(ctx, method, req.URL, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create HTTP request: %w", err)
	}
	if body != nil {
		httpReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	if l.userAgent != "" {
		httpReq.Header.Set("User-Agent", l.userAgent)
	}
	return httpReq, nil
}

// IsLoadError reports whether err is, or wraps, a *LoadError.
func IsLoadError(err error) bool {
	var loadErr *LoadError
	return errors.As(err, &loadErr)
}
