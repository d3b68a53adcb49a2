// Package framework contains the low-level implementation of the test harness infrastructure
// that the IATI website checks run on.
//
// The general model is:
//
// 1. There is a notion of a test context which is similar to Go's testing.T, allowing pieces of
// test logic to be associated with a test identifier and to accumulate success/failure results.
// It is used instead of "go test" so that the checks can run as an ordinary program against live
// sites, on a schedule, with their own filtering and reporting.
//
// 2. A test can be quarantined, meaning it is known to fail intermittently for reasons outside
// the control of the sites being checked (for instance, data propagation delays between
// independently regenerated systems). Quarantined tests still run and report their failures,
// but do not fail the run unless strict mode is requested.
//
// The domain-specific code that knows what is being tested is responsible for loading pages
// and providing a domain-specific test API on top of the test context.
package framework
