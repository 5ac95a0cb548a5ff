package updater

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeArchive(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func TestExtract_Zip(t *testing.T) {
	archive := writeArchive(t, "pkg.zip", buildZip(t,
		entry{name: "BitFighters/", mode: int64(os.ModeDir | 0o755)},
		entry{name: "BitFighters/BitFighters", body: "#!/bin/sh\n", mode: 0o755},
		entry{name: "BitFighters/data/level1.dat", body: "level"},
	))
	dest := t.TempDir()

	require.NoError(t, Extract(context.Background(), archive, dest))

	data, err := os.ReadFile(filepath.Join(dest, "BitFighters", "data", "level1.dat"))
	require.NoError(t, err)
	assert.Equal(t, "level", string(data))

	if runtime.GOOS != "windows" {
		info, err := os.Stat(filepath.Join(dest, "BitFighters", "BitFighters"))
		require.NoError(t, err)
		assert.NotZero(t, info.Mode()&0o100, "exec bit from archive kept")
	}
}

func TestExtract_TarGz(t *testing.T) {
	archive := writeArchive(t, "pkg.tar.gz", buildTarGz(t,
		entry{name: "game/BitFighters", body: "bin", mode: 0o755},
		entry{name: "game/readme.txt", body: "hi"},
	))
	dest := t.TempDir()

	require.NoError(t, Extract(context.Background(), archive, dest))

	data, err := os.ReadFile(filepath.Join(dest, "game", "readme.txt"))
	require.NoError(t, err)
	assert.Equal(t, "hi", string(data))
}

func TestExtract_Overwrites(t *testing.T) {
	dest := t.TempDir()
	target := filepath.Join(dest, "readme.txt")
	require.NoError(t, os.WriteFile(target, []byte("old contents that are longer"), 0o444))

	archive := writeArchive(t, "pkg.zip", buildZip(t, entry{name: "readme.txt", body: "new"}))
	require.NoError(t, Extract(context.Background(), archive, dest))

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "new", string(data))
}

func TestExtract_RejectsTraversal(t *testing.T) {
	parent := t.TempDir()
	dest := filepath.Join(parent, "root")

	archive := writeArchive(t, "evil.zip", buildZip(t, entry{name: "../escape.txt", body: "x"}))
	err := Extract(context.Background(), archive, dest)

	require.Error(t, err)
	_, statErr := os.Stat(filepath.Join(parent, "escape.txt"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestExtract_Corrupt(t *testing.T) {
	archive := writeArchive(t, "pkg.zip", []byte("PK\x03\x04 this is not really a zip"))
	err := Extract(context.Background(), archive, t.TempDir())
	assert.Error(t, err)
}

func TestExtract_UnknownFormat(t *testing.T) {
	archive := writeArchive(t, "pkg.bin", []byte("plain bytes"))
	err := Extract(context.Background(), archive, t.TempDir())
	assert.ErrorContains(t, err, "unrecognized archive format")
}

func TestExtract_HonorsCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	archive := writeArchive(t, "pkg.zip", buildZip(t, entry{name: "a.txt", body: "a"}))
	err := Extract(ctx, archive, t.TempDir())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestEntryPath(t *testing.T) {
	dest := filepath.Join("tmp", "root")

	p, err := entryPath(dest, "a/b.txt")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dest, "a", "b.txt"), p)

	p, err = entryPath(dest, "./")
	require.NoError(t, err)
	assert.Empty(t, p)

	p, err = entryPath(dest, `dir\file.txt`)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dest, "dir", "file.txt"), p)

	_, err = entryPath(dest, "a/../../b")
	assert.ErrorIs(t, err, ErrUnsafePath)
}
