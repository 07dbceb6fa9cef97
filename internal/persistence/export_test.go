package persistence

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talgya/hexcolony/internal/engine"
)

func TestExportChronicle(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "chronicle.jsonl.zst")
	entries := []engine.Entry{
		{Day: 1, Message: "Your expedition has arrived.", Severity: engine.SeverityInfo},
		{Day: 4, Message: "Food supplies depleted.", Severity: engine.SeverityDanger},
	}

	require.NoError(t, ExportChronicle(path, entries))
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Positive(t, info.Size())

	got, err := ReadChronicle(path)
	require.NoError(t, err)
	assert.Equal(t, entries, got)
}

func TestExportEmptyChronicle(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.jsonl.zst")
	require.NoError(t, ExportChronicle(path, nil))
	got, err := ReadChronicle(path)
	require.NoError(t, err)
	assert.Empty(t, got)
}
