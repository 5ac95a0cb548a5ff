package updater

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		name string
		file string
		data []byte
		want Format
	}{
		{"zip magic", "pkg.bin", buildZip(t, entry{name: "a", body: "a"}), FormatZip},
		{"gzip magic", "pkg.bin", buildTarGz(t, entry{name: "a", body: "a"}), FormatTarGz},
		{"zip by name", "pkg.zip", []byte("garbage"), FormatZip},
		{"tgz by name", "pkg.tgz", []byte("garbage"), FormatTarGz},
		{"unknown", "pkg.bin", []byte("garbage"), FormatUnknown},
		{"short file", "pkg.bin", []byte("P"), FormatUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DetectFormat(writeArchive(t, tt.file, tt.data))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDetectFormat_EmptyFile(t *testing.T) {
	_, err := DetectFormat(writeArchive(t, "empty.zip", nil))
	assert.Error(t, err)
}

func TestFormatString(t *testing.T) {
	assert.Equal(t, "zip", FormatZip.String())
	assert.Equal(t, "tar.gz", FormatTarGz.String())
	assert.Equal(t, "unknown", FormatUnknown.String())
}

func TestArchiveExt(t *testing.T) {
	assert.Equal(t, ".zip", archiveExt("https://bitfighters.net/BitFighters.zip"))
	assert.Equal(t, ".tar.gz", archiveExt("https://host/pkg.TAR.GZ?x=1"))
	assert.Equal(t, ".zip", archiveExt("https://host/download"))
}
