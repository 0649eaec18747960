package framework

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pathID(path ...string) TestID {
	return TestID{Path: path}
}

func TestEmptyFiltersMatchEverything(t *testing.T) {
	var filters RegexFilters
	assert.True(t, filters.AsFilter(pathID("a")))
	assert.True(t, filters.AsFilter(pathID("a", "b")))
}

func TestMustMatchIsAppliedPerLevel(t *testing.T) {
	var filters RegexFilters
	require.NoError(t, filters.MustMatch.Set("create/simple"))

	assert.True(t, filters.AsFilter(pathID("create pet")))
	assert.True(t, filters.AsFilter(pathID("create pet", "simple with valid data")))
	assert.True(t, filters.AsFilter(pathID("create pet", "simple with valid data", "deeper")))
	assert.False(t, filters.AsFilter(pathID("create pet", "with photo")))
	assert.False(t, filters.AsFilter(pathID("photo")))
}

func TestMustMatchAcceptsAnyPattern(t *testing.T) {
	var filters RegexFilters
	require.NoError(t, filters.MustMatch.Set("^photo$"))
	require.NoError(t, filters.MustMatch.Set("^update$"))

	assert.True(t, filters.AsFilter(pathID("photo")))
	assert.True(t, filters.AsFilter(pathID("update", "own pet")))
	assert.False(t, filters.AsFilter(pathID("delete")))
}

func TestMustNotMatchUsesFullName(t *testing.T) {
	var filters RegexFilters
	require.NoError(t, filters.MustNotMatch.Set("field validation/name=empty"))

	assert.True(t, filters.AsFilter(pathID("field validation")))
	assert.False(t, filters.AsFilter(pathID("field validation", "name=empty")))
	assert.False(t, filters.AsFilter(pathID("field validation", "name=empty", "animal_type=digit")))
	assert.True(t, filters.AsFilter(pathID("field validation", "name=digit")))
}

func TestInvalidRegex(t *testing.T) {
	var list RegexList
	assert.Error(t, list.Set("("))
	assert.False(t, list.IsDefined())
}

func TestRegexListString(t *testing.T) {
	var list RegexList
	require.NoError(t, list.Set("a"))
	require.NoError(t, list.Set("b/c"))
	assert.Equal(t, `"a" or "b/c"`, list.String())
}
