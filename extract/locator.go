package extract

import (
	"fmt"
	"sync"

	"github.com/antchfx/xpath"
)

// Locators are compiled once and shared, since the same few expressions are evaluated against
// every page that a suite checks.
var compiled sync.Map // string => *xpath.Expr

// CompileLocator parses an XPath expression, returning an *ExtractionError wrapping
// ErrInvalidLocator if it is not valid.
func CompileLocator(locator string) (*xpath.Expr, error) {
	if expr, ok := compiled.Load(locator); ok {
		return expr.(*xpath.Expr), nil
	}
	expr, err := xpath.Compile(locator)
	if err != nil {
		return nil, &ExtractionError{Locator: locator, Err: fmt.Errorf("%w: %s", ErrInvalidLocator, err)}
	}
	actual, _ := compiled.LoadOrStore(locator, expr)
	return actual.(*xpath.Expr), nil
}
