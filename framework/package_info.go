// Package framework contains the low-level implementation of test runner infrastructure
// that is not specific to the PetFriends API.
//
// The general model is:
//
// 1. The runner is pointed at the base URL of a service under test, and checks that the
// service is reachable before running anything.
//
// 2. There is a general notion of a test context which is similar to Go's *testing.T,
// allowing pieces of test logic to be associated with a test identifier and to accumulate
// success/failure results, debug output, and cleanup actions.
//
// 3. Tests can be selected or excluded by name with regex filters.
//
// The domain-specific code that knows what is being tested is responsible for talking to the
// service and for providing a domain-specific test API on top of the test context.
package framework
