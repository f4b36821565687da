package http1

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseURIAbsoluteForm(t *testing.T) {
	u, err := ParseURI("http://example.com/widgets?id=1")
	require.NoError(t, err)
	require.Equal(t, "http", u.Scheme)
	require.Equal(t, "example.com", u.Authority)
	require.Equal(t, "/widgets", u.Path)
	require.Equal(t, "id=1", u.RawQuery)
	require.Equal(t, "/widgets?id=1", u.PathAndQuery())
}

func TestParseURIOriginForm(t *testing.T) {
	u, err := ParseURI("/widgets")
	require.NoError(t, err)
	require.Empty(t, u.Scheme)
	require.Empty(t, u.Authority)
	require.Equal(t, "/widgets", u.Path)
}

func TestParseURIAsteriskForm(t *testing.T) {
	u, err := ParseURI("*")
	require.NoError(t, err)
	require.Equal(t, "*", u.Path)
}

func TestParseURIAuthorityOnlyDefaultsToRootPath(t *testing.T) {
	u, err := ParseURI("https://example.com")
	require.NoError(t, err)
	require.Equal(t, "/", u.Path)
}

func TestParseURIRejectsWhitespace(t *testing.T) {
	_, err := ParseURI("http://example.com/a b")
	require.Error(t, err)
}

func TestParseURIRejectsEmpty(t *testing.T) {
	_, err := ParseURI("")
	require.Error(t, err)
}

func TestMergeRedirectAbsoluteLocationReplacesEverything(t *testing.T) {
	base, err := ParseURI("http://example.com/old?x=1")
	require.NoError(t, err)
	loc, err := ParseURI("https://other.example/new")
	require.NoError(t, err)

	merged := MergeRedirect(base, loc)
	require.Equal(t, "https", merged.Scheme)
	require.Equal(t, "other.example", merged.Authority)
	require.Equal(t, "/new", merged.Path)
	require.Empty(t, merged.RawQuery)
}

func TestMergeRedirectRelativeLocationKeepsOrigin(t *testing.T) {
	base, err := ParseURI("http://example.com/old?x=1")
	require.NoError(t, err)
	loc, err := ParseURI("/new?y=2")
	require.NoError(t, err)

	merged := MergeRedirect(base, loc)
	require.Equal(t, "http", merged.Scheme)
	require.Equal(t, "example.com", merged.Authority)
	require.Equal(t, "/new", merged.Path)
	require.Equal(t, "y=2", merged.RawQuery)
}

func TestSameOrigin(t *testing.T) {
	a, err := ParseURI("http://example.com/a")
	require.NoError(t, err)
	b, err := ParseURI("http://example.com/b")
	require.NoError(t, err)
	c, err := ParseURI("https://example.com/a")
	require.NoError(t, err)
	d, err := ParseURI("http://other.example/a")
	require.NoError(t, err)

	require.True(t, SameOrigin(a, b), "same scheme+authority, differing paths")
	require.False(t, SameOrigin(a, c), "differing scheme")
	require.False(t, SameOrigin(a, d), "differing authority")
}
