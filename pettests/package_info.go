// Package pettests contains the PetFriends contract tests themselves and their supporting API.
//
// Test harness infrastructure that is not specific to the PetFriends domain, such as subtests,
// failure tracking, and captured debug output, is in the lower-level framework package. The HTTP
// operations are in the client package.
package pettests
