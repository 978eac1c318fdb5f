package persistence

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dsridhar11/mbot123/internal/domain"
)

func TestFileReportStore_SaveAndRead(t *testing.T) {
	store, err := NewFileReportStore(t.TempDir())
	require.NoError(t, err)

	name, err := store.Save("Symptoms Mentioned:\n- headache\n")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(name, "summary_"))
	assert.True(t, strings.HasSuffix(name, ".txt"))

	content, err := store.Read(name)
	require.NoError(t, err)

	ts := strings.TrimSuffix(strings.TrimPrefix(name, "summary_"), ".txt")
	assert.Equal(t, "🗓 Report Generated: "+ts+"\n\nSymptoms Mentioned:\n- headache\n", content)
}

func TestFileReportStore_ListNewestFirst(t *testing.T) {
	store, err := NewFileReportStore(t.TempDir())
	require.NoError(t, err)

	// Filenames embed second-resolution timestamps, so write them directly
	// instead of racing the clock.
	names := []string{
		"summary_2025-01-01_10-00-00.txt",
		"summary_2025-01-02_09-30-00.txt",
		"summary_2025-01-01_23-59-59.txt",
	}
	for _, n := range names {
		writeReportFile(t, store, n)
	}

	got, err := store.List()
	require.NoError(t, err)
	assert.Equal(t, []string{
		"summary_2025-01-02_09-30-00.txt",
		"summary_2025-01-01_23-59-59.txt",
		"summary_2025-01-01_10-00-00.txt",
	}, got)
}

func TestFileReportStore_ListEmptyDir(t *testing.T) {
	store, err := NewFileReportStore(t.TempDir())
	require.NoError(t, err)

	got, err := store.List()
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestFileReportStore_PathRejectsTraversal(t *testing.T) {
	store, err := NewFileReportStore(t.TempDir())
	require.NoError(t, err)

	for _, name := range []string{"", "..", "../etc/passwd", "a/b.txt", `a\b.txt`, "..\\secret"} {
		_, err := store.Path(name)
		assert.ErrorIs(t, err, domain.ErrInvalidName, "name %q", name)
	}
}

func TestFileReportStore_ReadMissing(t *testing.T) {
	store, err := NewFileReportStore(t.TempDir())
	require.NoError(t, err)

	_, err = store.Read("summary_2025-01-01_00-00-00.txt")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func writeReportFile(t *testing.T, store *FileReportStore, name string) {
	t.Helper()
	path := filepath.Join(store.dir, name)
	require.NoError(t, os.WriteFile(path, []byte("🗓 Report Generated: x\n\nbody"), 0644))
}
