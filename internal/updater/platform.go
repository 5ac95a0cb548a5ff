package updater

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"
)

// Format is an archive container the pipeline can unpack.
type Format int

const (
	FormatUnknown Format = iota
	FormatZip
	FormatTarGz
)

func (f Format) String() string {
	switch f {
	case FormatZip:
		return "zip"
	case FormatTarGz:
		return "tar.gz"
	default:
		return "unknown"
	}
}

var (
	zipMagic  = []byte("PK\x03\x04")
	zipEmpty  = []byte("PK\x05\x06")
	gzipMagic = []byte{0x1f, 0x8b}
)

// DetectFormat sniffs the archive header and falls back to the file name.
func DetectFormat(archivePath string) (Format, error) {
	f, err := os.Open(archivePath)
	if err != nil {
		return FormatUnknown, fmt.Errorf("opening archive: %w", err)
	}
	defer f.Close()

	head := make([]byte, 4)
	n, err := io.ReadFull(f, head)
	if err != nil && n == 0 {
		return FormatUnknown, fmt.Errorf("reading archive header: %w", err)
	}
	head = head[:n]

	switch {
	case bytes.HasPrefix(head, zipMagic), bytes.HasPrefix(head, zipEmpty):
		return FormatZip, nil
	case bytes.HasPrefix(head, gzipMagic):
		return FormatTarGz, nil
	}

	lower := strings.ToLower(archivePath)
	switch {
	case strings.HasSuffix(lower, ".zip"):
		return FormatZip, nil
	case strings.HasSuffix(lower, ".tar.gz"), strings.HasSuffix(lower, ".tgz"):
		return FormatTarGz, nil
	}
	return FormatUnknown, nil
}
