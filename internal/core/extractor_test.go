package core_test

import (
	"archive/zip"
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"samm/internal/core"
	"samm/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// zipBytes builds an in-memory zip holding files
func zipBytes(t *testing.T, files map[string]string) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	for name, content := range files {
		fw, err := w.Create(name)
		require.NoError(t, err)
		_, err = fw.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return buf.Bytes()
}

func writeZip(t *testing.T, dir, name string, files map[string]string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, zipBytes(t, files), 0644))
	return path
}

func TestExtractor_Extract_Zip(t *testing.T) {
	destDir := t.TempDir()
	archive := writeZip(t, t.TempDir(), "SADXModLoader.zip", map[string]string{
		"SADXModLoader.dll":  "loader",
		"extlib/BASS/x.dll":  "bass",
		"Border_Default.png": "png",
	})

	require.NoError(t, core.NewExtractor().Extract(archive, destDir))

	data, err := os.ReadFile(filepath.Join(destDir, "SADXModLoader.dll"))
	require.NoError(t, err)
	assert.Equal(t, "loader", string(data))

	data, err = os.ReadFile(filepath.Join(destDir, "extlib", "BASS", "x.dll"))
	require.NoError(t, err)
	assert.Equal(t, "bass", string(data))
}

func TestExtractor_Extract_OverwritesExisting(t *testing.T) {
	destDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(destDir, "SADXModLoader.dll"), []byte("old build"), 0644))
	archive := writeZip(t, t.TempDir(), "loader.zip", map[string]string{"SADXModLoader.dll": "new"})

	require.NoError(t, core.NewExtractor().Extract(archive, destDir))

	data, err := os.ReadFile(filepath.Join(destDir, "SADXModLoader.dll"))
	require.NoError(t, err)
	assert.Equal(t, "new", string(data))
}

func TestExtractor_Extract_CreatesDestDir(t *testing.T) {
	archive := writeZip(t, t.TempDir(), "bass24.zip", map[string]string{"bass.dll": "bass"})
	destDir := filepath.Join(t.TempDir(), "extlib", "BASS")

	require.NoError(t, core.NewExtractor().Extract(archive, destDir))
	assert.FileExists(t, filepath.Join(destDir, "bass.dll"))
}

func TestExtractor_Extract_ZipSlipPrevention(t *testing.T) {
	destDir := t.TempDir()
	archive := writeZip(t, t.TempDir(), "evil.zip", map[string]string{"../../escaped.txt": "nope"})

	err := core.NewExtractor().Extract(archive, destDir)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrExtractFailed)
	assert.NoFileExists(t, filepath.Join(filepath.Dir(filepath.Dir(destDir)), "escaped.txt"))
}

func TestExtractor_Extract_Failures(t *testing.T) {
	dir := t.TempDir()
	corrupt := filepath.Join(dir, "corrupt.zip")
	require.NoError(t, os.WriteFile(corrupt, []byte("PK\x03\x04 but not really"), 0644))

	tests := []struct {
		name    string
		archive string
	}{
		{"missing file", filepath.Join(dir, "missing.zip")},
		{"corrupt zip", corrupt},
		{"unknown format", filepath.Join(dir, "Codes.lst")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := core.NewExtractor().Extract(tt.archive, t.TempDir())
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrExtractFailed)
			assert.Equal(t, domain.FailureExtraction, domain.Classify(err))
		})
	}
}

func TestExtractor_CanExtract(t *testing.T) {
	e := core.NewExtractor()

	tests := []struct {
		filename string
		want     bool
	}{
		{"SADXModLoader.7z", true},
		{"bass24.zip", true},
		{"SDL2.ZIP", true},
		{"mod.rar", true},
		{"d3d8.dll", false},
		{"Patches.json", false},
	}

	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			assert.Equal(t, tt.want, e.CanExtract(tt.filename))
		})
	}
}

func TestSniffFormat(t *testing.T) {
	assert.Equal(t, "zip", core.SniffFormat(zipBytes(t, map[string]string{"a": "b"})))
	assert.Equal(t, "7z", core.SniffFormat([]byte{'7', 'z', 0xBC, 0xAF, 0x27, 0x1C, 0, 4}))
	assert.Equal(t, "", core.SniffFormat([]byte("MZ\x90\x00")))
	assert.Equal(t, "", core.SniffFormat(nil))
}
