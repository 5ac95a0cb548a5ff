package release

import (
	"context"
	"fmt"
	"strings"
)

// UnknownVersion is returned when the remote version cannot be determined.
// It is a displayable state, not an error.
const UnknownVersion = "unknown"

// Version returns the current remote version. The request carries the Unix
// time as a query parameter so proxies never serve a stale answer.
func (c *Client) Version(ctx context.Context) string {
	url := fmt.Sprintf("%s%s?t=%d", c.baseURL, versionPath, c.now().Unix())
	body, err := c.get(ctx, url)
	if err != nil {
		c.log.Warn("fetching remote version", "error", err)
		return UnknownVersion
	}

	v := strings.TrimSpace(strings.TrimPrefix(string(body), "\ufeff"))
	if v == "" || strings.ContainsAny(v, "\n<") {
		c.log.Warn("unexpected version payload", "bytes", len(body))
		return UnknownVersion
	}
	return v
}

// IsKnown reports whether v is a real version rather than UnknownVersion.
func IsKnown(v string) bool {
	return v != "" && v != UnknownVersion
}
