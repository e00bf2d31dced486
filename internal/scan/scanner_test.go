package scan_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Zuo-Peng/chatstat/internal/scan"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func write(t *testing.T, path, content string, mtime time.Time) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	require.NoError(t, os.Chtimes(path, mtime, mtime))
}

func TestScanDir(t *testing.T) {
	root := t.TempDir()
	now := time.Now()
	write(t, filepath.Join(root, "WhatsApp Chat with Trip.txt"), "1/1/23, 09:00 - A: hi\n", now.Add(-time.Hour))
	write(t, filepath.Join(root, "nested", "WhatsApp Chat with Team.TXT"), "2/1/23, 10:00 - B: yo\n", now)
	write(t, filepath.Join(root, "notes.txt"), "shopping list\n", now)
	write(t, filepath.Join(root, "photo.jpg"), "1/1/23, 09:00 - A: hi\n", now)

	files, err := scan.ScanDir(root)
	require.NoError(t, err)
	require.Len(t, files, 2)
	assert.Equal(t, "WhatsApp Chat with Team.TXT", filepath.Base(files[0].Path))
	assert.Equal(t, "WhatsApp Chat with Trip.txt", filepath.Base(files[1].Path))

	latest, err := scan.Latest(root)
	require.NoError(t, err)
	assert.Equal(t, files[0].Path, latest)
}

func TestScanDir_Missing(t *testing.T) {
	files, err := scan.ScanDir(filepath.Join(t.TempDir(), "absent"))
	require.NoError(t, err)
	assert.Empty(t, files)

	latest, err := scan.Latest("")
	require.NoError(t, err)
	assert.Empty(t, latest)
}
