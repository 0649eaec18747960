package main

import (
	"regexp"
	"testing"

	"github.com/petfriends/api-contract-tests/framework"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadParams(t *testing.T) {
	var params commandParams
	ok := params.Read([]string{"prog", "-url", "http://localhost:8080", "-run", "photo", "-skip", "delete",
		"-cleanup", "-debug", "-wait-timeout", "3s"})
	require.True(t, ok)

	assert.Equal(t, "http://localhost:8080", params.serviceURL)
	assert.True(t, params.cleanup)
	assert.True(t, params.debug)
	assert.False(t, params.debugAll)
	assert.Equal(t, "3s", params.waitTimeout.String())
	assert.True(t, params.filters.AsFilter(framework.TestID{Path: []string{"photo"}}))
	assert.False(t, params.filters.AsFilter(framework.TestID{Path: []string{"update"}}))
}

func TestReadParamsDefaults(t *testing.T) {
	var params commandParams
	require.True(t, params.Read([]string{"prog"}))
	assert.Equal(t, "", params.serviceURL)
	assert.Equal(t, defaultWaitTimeout, params.waitTimeout)
	assert.False(t, params.filters.MustMatch.IsDefined())
}

func TestExactTestPatternSelectsOnlyThatTest(t *testing.T) {
	id := framework.TestID{Path: []string{"field validation", "name=255 symbols", "animal_type=specials", "age=int_max + 1"}}
	pattern := exactTestPattern(id)
	assert.Equal(t, `^field validation$/^name=255 symbols$/^animal_type=specials$/^age=int_max \+ 1$`, pattern)

	var filters framework.RegexFilters
	require.NoError(t, filters.MustMatch.Set(pattern))
	assert.True(t, filters.AsFilter(id))
	assert.False(t, filters.AsFilter(framework.TestID{Path: []string{"field validation", "name=255 symbols",
		"animal_type=specials", "age=int_max"}}))
	_, err := regexp.Compile(pattern)
	assert.NoError(t, err)
}

func TestRerunCommand(t *testing.T) {
	params := commandParams{serviceURL: "http://localhost:8080", cleanup: true}
	results := framework.Results{Failures: []framework.TestResult{
		{TestID: framework.TestID{Path: []string{"photo", "valid image"}}},
	}}
	assert.Equal(t,
		`petfriends -url http://localhost:8080 -cleanup -debug -run '^photo$/^valid image$'`,
		params.rerunCommand("petfriends", results))

	assert.Equal(t, "", params.rerunCommand("petfriends", framework.Results{}))

	many := framework.Results{}
	for i := 0; i <= maxRerunPatterns; i++ {
		many.Failures = append(many.Failures, results.Failures[0])
	}
	assert.Equal(t, "", params.rerunCommand("petfriends", many))
}
