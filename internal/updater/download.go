package updater

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path"
	"strings"
)

// download streams url into a fresh temp file and returns its path. The
// file is removed on any failure.
func (u *Updater) download(ctx context.Context, url string, onProgress ProgressFunc) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("creating download request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := u.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("downloading %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("download returned status %d", resp.StatusCode)
	}

	f, err := os.CreateTemp(u.tempDir, "bitfighters-*"+archiveExt(url))
	if err != nil {
		return "", fmt.Errorf("creating download file: %w", err)
	}
	tmp := f.Name()

	if err := u.stream(ctx, f, resp.Body, resp.ContentLength, onProgress); err != nil {
		f.Close()
		os.Remove(tmp)
		return "", err
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return "", fmt.Errorf("closing download file: %w", err)
	}

	u.log.Debug("package downloaded", "path", tmp)
	return tmp, nil
}

// stream copies body to w in chunks, feeding the progress meter.
func (u *Updater) stream(ctx context.Context, w io.Writer, body io.Reader, total int64, onProgress ProgressFunc) error {
	if total <= 0 {
		total = -1
	}
	m := newMeter(total, onProgress, u.now, u.progressInterval, u.sampleWindow)

	buf := make([]byte, u.chunkSize)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		n, readErr := body.Read(buf)
		if n > 0 {
			if _, err := w.Write(buf[:n]); err != nil {
				return fmt.Errorf("writing download: %w", err)
			}
			m.add(n)
		}
		if errors.Is(readErr, io.EOF) {
			break
		}
		if readErr != nil {
			return fmt.Errorf("reading download stream: %w", readErr)
		}
	}

	if total > 0 && m.received != total {
		return fmt.Errorf("short download: got %d of %d bytes", m.received, total)
	}
	m.finish()
	return nil
}

// archiveExt keeps the URL's archive suffix on the temp file.
func archiveExt(url string) string {
	name := path.Base(strings.SplitN(url, "?", 2)[0])
	lower := strings.ToLower(name)
	switch {
	case strings.HasSuffix(lower, ".tar.gz"):
		return ".tar.gz"
	case strings.HasSuffix(lower, ".tgz"):
		return ".tgz"
	case strings.HasSuffix(lower, ".zip"):
		return ".zip"
	}
	return ".zip"
}
