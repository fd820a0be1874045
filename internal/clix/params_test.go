package clix

import (
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func windowFlags(t *testing.T, args ...string) *pflag.FlagSet {
	t.Helper()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	AddWindowFlags(fs)
	require.NoError(t, fs.Parse(args))
	return fs
}

func TestParseWindow(t *testing.T) {
	fs := windowFlags(t,
		"--search", "generics",
		"--status", "unread, read,,",
		"--starred",
		"--published-after", "2024-01-01",
		"--before-entry-id", "50",
		"--limit", "5",
		"--offset", "-3",
		"--order", "published_at",
	)

	f, err := ParseWindow(fs)
	require.NoError(t, err)
	assert.Equal(t, "generics", f.Search)
	assert.Equal(t, []string{"unread", "read"}, f.Statuses)
	require.NotNil(t, f.Starred)
	assert.True(t, *f.Starred)
	assert.Equal(t, "2024-01-01", f.PublishedAfter)
	assert.Nil(t, f.Before)
	assert.Equal(t, int64(50), f.BeforeEntryID)
	assert.Equal(t, 5, f.Limit)
	assert.Equal(t, 0, f.Offset)
	assert.Equal(t, "published_at", f.Order)
}

func TestParseWindow_Defaults(t *testing.T) {
	f, err := ParseWindow(windowFlags(t))
	require.NoError(t, err)
	assert.Nil(t, f.Starred)
	assert.Empty(t, f.Statuses)
	assert.Zero(t, f.Limit)
}

func TestParseOptionalBool_ExplicitFalse(t *testing.T) {
	v, err := ParseOptionalBool(windowFlags(t, "--starred=false"), "starred")
	require.NoError(t, err)
	require.NotNil(t, v)
	assert.False(t, *v)
}

func TestParsePagination_NegativeLimit(t *testing.T) {
	_, err := ParsePagination(windowFlags(t, "--limit", "-1"))
	assert.Error(t, err)
}
