package feed_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/okian/tianwen/internal/adapters/feed"
	"github.com/okian/tianwen/internal/domain/analyzer"
	"github.com/okian/tianwen/internal/domain/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBundled(t *testing.T) {
	ds, err := feed.Bundled(context.Background())
	require.NoError(t, err)

	assert.Equal(t, feed.BundledSource, ds.Source)
	assert.Equal(t, 0, ds.Dropped)
	assert.Len(t, ds.Records, 30)

	ids := make(map[string]bool, len(ds.Records))
	for _, r := range ds.Records {
		assert.NotEmpty(t, r.ID)
		assert.False(t, ids[r.ID], "duplicate id %s", r.ID)
		ids[r.ID] = true
		assert.True(t, r.Type.Known(), "unknown type %q", r.Type)
		assert.NotEmpty(t, r.Location)
		assert.NotEmpty(t, r.Region)
	}

	first := ds.Records[0]
	assert.Equal(t, model.TypeNova, first.Type)
	assert.Equal(t, "殷", first.Location)
}

func TestBundledIsStable(t *testing.T) {
	a, err := feed.Bundled(context.Background())
	require.NoError(t, err)
	a.Records[0].Location = "changed"

	b, err := feed.Bundled(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "殷", b.Records[0].Location)
}

func TestLoadDropsDuplicateIDs(t *testing.T) {
	data := []byte(`[
		{"id": "a", "location": "长安"},
		{"id": "b", "location": "洛阳"},
		{"id": "a", "location": "开封"},
		{"id": "", "location": "敦煌"},
		{"location": "敦煌"}
	]`)

	ds, err := feed.Load(context.Background(), data, feed.FormatJSON, "inline")
	require.NoError(t, err)

	assert.Equal(t, 1, ds.Dropped)
	require.Len(t, ds.Records, 4)
	assert.Equal(t, "长安", ds.Records[0].Location)
	assert.Equal(t, "洛阳", ds.Records[1].Location)
	assert.Equal(t, "敦煌", ds.Records[3].Location)
}

func TestLoadPropagatesInvalidInput(t *testing.T) {
	_, err := feed.Load(context.Background(), []byte("null"), feed.FormatJSON, "inline")
	require.Error(t, err)
	assert.ErrorIs(t, err, analyzer.ErrInvalidInput)
	assert.Contains(t, err.Error(), "inline")
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()

	yamlPath := filepath.Join(dir, "records.yaml")
	require.NoError(t, os.WriteFile(yamlPath, []byte("- id: a\n  location: 长安\n"), 0o600))

	ds, err := feed.LoadFile(context.Background(), yamlPath, "")
	require.NoError(t, err)
	assert.Equal(t, yamlPath, ds.Source)
	require.Len(t, ds.Records, 1)

	// explicit format overrides the extension
	txtPath := filepath.Join(dir, "records.txt")
	require.NoError(t, os.WriteFile(txtPath, []byte(`[{"id":"b"}]`), 0o600))
	ds, err = feed.LoadFile(context.Background(), txtPath, feed.FormatJSON)
	require.NoError(t, err)
	assert.Equal(t, "b", ds.Records[0].ID)

	_, err = feed.LoadFile(context.Background(), txtPath, "")
	assert.ErrorIs(t, err, feed.ErrUnsupportedFormat)

	_, err = feed.LoadFile(context.Background(), filepath.Join(dir, "missing.json"), "")
	assert.ErrorIs(t, err, feed.ErrRead)
}
