package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"feedscout/internal/app"
	"feedscout/internal/config"
	"feedscout/internal/models"
	mock_store "feedscout/internal/tests/mocks/store"
)

func runCommand(t *testing.T, m *mock_store.CatalogReader, args ...string) (string, error) {
	t.Helper()
	color.NoColor = true
	jsonOutput = false

	a, err := app.NewAppWithCatalog(&config.Config{}, m)
	require.NoError(t, err)

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	ctx := WithApp(context.Background(), a)
	// Subcommands keep the context of their first run; reset it per call.
	if sub, _, findErr := rootCmd.Find(args); findErr == nil {
		sub.SetContext(ctx)
	}
	err = rootCmd.ExecuteContext(ctx)
	return out.String(), err
}

func TestCategoriesCommand(t *testing.T) {
	m := new(mock_store.CatalogReader)
	m.On("ListCategories", mock.Anything, false).Return([]models.Category{
		{ID: 1, Title: "Tech"},
		{ID: 2, Title: "Science"},
	}, nil)

	out, err := runCommand(t, m, "categories")
	require.NoError(t, err)
	assert.Contains(t, out, "Tech")
	assert.Contains(t, out, "Science")
	assert.Contains(t, out, "2 categories")
}

func TestResolveCommand(t *testing.T) {
	m := new(mock_store.CatalogReader)
	m.On("ListFeeds", mock.Anything).Return([]models.Feed{
		{ID: 7, Title: "AI Code King"},
		{ID: 8, Title: "Code Review Weekly"},
		{ID: 9, Title: "Code Golf"},
	}, nil)

	out, err := runCommand(t, m, "resolve", "feed", "aicodeking")
	require.NoError(t, err)
	assert.Contains(t, out, `OK feed 7 "AI Code King" (matched by collapsed)`)

	out, err = runCommand(t, m, "resolve", "feeds", "code")
	require.Error(t, err)
	assert.Contains(t, out, `AMBIGUOUS feed "code" matches 3 candidates`)

	_, err = runCommand(t, m, "resolve", "tag", "x")
	assert.ErrorContains(t, err, "unknown kind")
}

func TestToolsCallCommand(t *testing.T) {
	m := new(mock_store.CatalogReader)
	m.On("GetEntry", mock.Anything, int64(3)).Return(json.RawMessage(`{"id":3}`), nil)

	out, err := runCommand(t, m, "tools", "call", "get_entry", `{"entry_id":3}`)
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":3}`, out)

	_, err = runCommand(t, m, "tools", "call", "get_entry", `{"entry_id":`)
	assert.ErrorContains(t, err, "JSON object")
}

func TestEntryCommand(t *testing.T) {
	m := new(mock_store.CatalogReader)
	m.On("GetEntry", mock.Anything, int64(4)).Return(json.RawMessage(`{
		"id": 4,
		"title": "Generics in practice",
		"status": "unread",
		"content": "<p>Type parameters landed in Go 1.18.</p><p>They are useful.</p>",
		"feed": {"id": 8, "title": "Go Weekly"}
	}`), nil)

	out, err := runCommand(t, m, "entry", "4")
	require.NoError(t, err)
	assert.Contains(t, out, "Title: Generics in practice")
	assert.Contains(t, out, "Feed: Go Weekly")
	assert.Contains(t, out, "Type parameters landed in Go 1.18. They are useful.")
}
