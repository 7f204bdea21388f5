package framework

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func id(path ...string) TestID {
	return TestID{Path: path}
}

func TestRegexFilters(t *testing.T) {
	t.Run("no patterns", func(t *testing.T) {
		var f RegexFilters
		assert.True(t, f.AsFilter(id("users", "create user")))
	})

	t.Run("must match", func(t *testing.T) {
		var f RegexFilters
		require.NoError(t, f.MustMatch.Set("users/create"))
		assert.True(t, f.AsFilter(id("users", "create user")))
		assert.False(t, f.AsFilter(id("users", "update user")))
		assert.False(t, f.AsFilter(id("registration")))
	})

	t.Run("parent of a matching test is allowed", func(t *testing.T) {
		var f RegexFilters
		require.NoError(t, f.MustMatch.Set("users/create user"))
		assert.True(t, f.AsFilter(id("users")))
		assert.True(t, f.AsFilter(id("users", "create user")))
		assert.False(t, f.AsFilter(id("registration")))
	})

	t.Run("must not match wins", func(t *testing.T) {
		var f RegexFilters
		require.NoError(t, f.MustMatch.Set("users"))
		require.NoError(t, f.MustNotMatch.Set("update"))
		assert.True(t, f.AsFilter(id("users", "create user")))
		assert.False(t, f.AsFilter(id("users", "update user")))
	})

	t.Run("invalid pattern", func(t *testing.T) {
		var f RegexFilters
		assert.Error(t, f.MustMatch.Set("("))
	})
}

func TestRegexListPatterns(t *testing.T) {
	var r RegexList
	assert.Empty(t, r.Patterns())
	require.NoError(t, r.Set("users/.*"))
	require.NoError(t, r.Set("not found$"))
	assert.Equal(t, []string{"users/.*", "not found$"}, r.Patterns())
}

func TestPrintFilterDescription(t *testing.T) {
	var buf bytes.Buffer
	PrintFilterDescription(&buf, RegexFilters{})
	assert.Equal(t, "", buf.String())

	var f RegexFilters
	require.NoError(t, f.MustMatch.Set("a"))
	require.NoError(t, f.MustNotMatch.Set("b"))
	PrintFilterDescription(&buf, f)
	assert.Contains(t, buf.String(), `skip any not matching "a"`)
	assert.Contains(t, buf.String(), `skip any matching "b"`)
}

func TestTestIDPlusDoesNotShareStorage(t *testing.T) {
	parent := TestID{Path: make([]string, 1, 10)}
	parent.Path[0] = "p"
	a, b := parent.Plus("a"), parent.Plus("b")
	assert.Equal(t, "p/a", a.String())
	assert.Equal(t, "p/b", b.String())
}

func TestPrintResults(t *testing.T) {
	var buf bytes.Buffer
	PrintResults(&buf, Results{Tests: []TestResult{{TestID: id("a")}, {TestID: id("b"), Skipped: true}}})
	assert.Contains(t, buf.String(), "All tests passed")
	assert.Contains(t, buf.String(), "(1 run, 1 skipped)")

	buf.Reset()
	failure := TestResult{TestID: id("a", "b"), Errors: []error{assertErr("line1\nline2")}}
	PrintResults(&buf, Results{Tests: []TestResult{failure}, Failures: []TestResult{failure}})
	assert.Contains(t, buf.String(), "FAILED TESTS (1)")
	assert.Contains(t, buf.String(), "  * a/b\n      line1\n      line2\n")
}

type assertErr string

func (e assertErr) Error() string { return string(e) }
