package updater

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/bitfighters/launcher/internal/install"
	"github.com/bitfighters/launcher/internal/logging"
	"golang.org/x/sync/semaphore"
)

const (
	// DefaultChunkSize is the read buffer used while streaming the package.
	DefaultChunkSize = 80 * 1024
	// DefaultProgressInterval is the minimum gap between progress callbacks.
	DefaultProgressInterval = 100 * time.Millisecond
	// DefaultSampleWindow is the minimum span of a throughput sample.
	DefaultSampleWindow = 500 * time.Millisecond

	userAgent = "bitfighters-launcher"
)

// Updater runs the download-then-install pipeline. At most one run is in
// flight per Updater.
type Updater struct {
	manager          *install.Manager
	httpClient       *http.Client
	tempDir          string
	chunkSize        int
	progressInterval time.Duration
	sampleWindow     time.Duration
	now              func() time.Time
	log              *slog.Logger

	slot *semaphore.Weighted
}

// Option configures an Updater.
type Option func(*Updater)

// WithHTTPClient sets a custom HTTP client (useful for testing).
func WithHTTPClient(c *http.Client) Option {
	return func(u *Updater) {
		u.httpClient = c
	}
}

// WithTempDir sets where the archive is downloaded. Defaults to os.TempDir.
func WithTempDir(dir string) Option {
	return func(u *Updater) {
		u.tempDir = dir
	}
}

// WithChunkSize sets the streaming buffer size.
func WithChunkSize(n int) Option {
	return func(u *Updater) {
		if n > 0 {
			u.chunkSize = n
		}
	}
}

// WithProgressInterval sets the minimum gap between progress callbacks.
func WithProgressInterval(d time.Duration) Option {
	return func(u *Updater) {
		u.progressInterval = d
	}
}

// WithSampleWindow sets the minimum span of a throughput sample.
func WithSampleWindow(d time.Duration) Option {
	return func(u *Updater) {
		if d > 0 {
			u.sampleWindow = d
		}
	}
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(u *Updater) {
		u.now = now
	}
}

// WithLogger sets the pipeline logger.
func WithLogger(l *slog.Logger) Option {
	return func(u *Updater) {
		u.log = l
	}
}

// New creates an Updater that installs through manager.
func New(manager *install.Manager, opts ...Option) *Updater {
	u := &Updater{
		manager:          manager,
		httpClient:       http.DefaultClient,
		chunkSize:        DefaultChunkSize,
		progressInterval: DefaultProgressInterval,
		sampleWindow:     DefaultSampleWindow,
		now:              time.Now,
		slot:             semaphore.NewWeighted(1),
	}
	for _, opt := range opts {
		opt(u)
	}
	u.log = logging.OrDiscard(u.log)
	return u
}
