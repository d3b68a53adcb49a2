package loader

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sync"

	"github.com/antchfx/htmlquery"
	"github.com/antchfx/xmlquery"
	"golang.org/x/net/html"
	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

// Response is the result of successfully loading a Request. It is shared by every test that
// refers to the request, so it must be treated as read-only.
type Response struct {
	Name       string
	URL        *url.URL
	StatusCode int
	Header     http.Header
	Body       []byte

	docOnce sync.Once
	doc     *html.Node
	docErr  error
}

// Size is the length of the body in bytes.
func (r *Response) Size() int {
	return len(r.Body)
}

// Document parses the body as HTML. The parsed tree is kept, so repeated calls are cheap and
// return the same tree.
func (r *Response) Document() (*html.Node, error) {
	r.docOnce.Do(func() {
		r.doc, r.docErr = htmlquery.Parse(bytes.NewReader(r.Body))
		if r.docErr != nil {
			r.docErr = fmt.Errorf("response for %q is not valid HTML: %w", r.Name, r.docErr)
		}
	})
	return r.doc, r.docErr
}

// JSON decodes the body as a JSON value.
func (r *Response) JSON() (ldvalue.Value, error) {
	var v ldvalue.Value
	if err := json.Unmarshal(r.Body, &v); err != nil {
		return ldvalue.Null(), fmt.Errorf("response for %q is not valid JSON: %w", r.Name, err)
	}
	return v, nil
}

// XML parses the body as an XML document.
func (r *Response) XML() (*xmlquery.Node, error) {
	doc, err := xmlquery.Parse(bytes.NewReader(r.Body))
	if err != nil {
		return nil, fmt.Errorf("response for %q is not valid XML: %w", r.Name, err)
	}
	return doc, nil
}
