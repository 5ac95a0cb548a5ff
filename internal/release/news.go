package release

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"
)

// DefaultNewsLimit is used when News is called with a non-positive limit.
const DefaultNewsLimit = 10

// Welcome entry shown when the feed is empty or unreachable.
const (
	WelcomeTitle = "Welcome to BitFighters!"
	WelcomeBody  = "Patch notes and announcements will show up here."
)

// NewsEntry is one item of the news feed.
type NewsEntry struct {
	Title     string
	Body      string
	CreatedAt time.Time
}

// timestampLayouts are tried in order when parsing created_at.
var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

// wrapperKeys are checked first when the feed is an object wrapping an array.
var wrapperKeys = []string{"news", "data", "items", "entries", "results"}

// News returns at most limit entries in server order. It never returns an
// empty slice.
func (c *Client) News(ctx context.Context, limit int) []NewsEntry {
	if limit <= 0 {
		limit = DefaultNewsLimit
	}
	now := c.now()

	body, err := c.get(ctx, c.baseURL+newsPath)
	if err != nil {
		c.log.Warn("fetching news", "error", err)
		return []NewsEntry{welcome(now)}
	}

	entries, err := parseNews(body, now)
	if err != nil {
		c.log.Warn("parsing news", "error", err)
	}
	if len(entries) == 0 {
		return []NewsEntry{welcome(now)}
	}
	if len(entries) > limit {
		entries = entries[:limit]
	}
	return entries
}

func welcome(now time.Time) NewsEntry {
	return NewsEntry{Title: WelcomeTitle, Body: WelcomeBody, CreatedAt: now}
}

// parseNews accepts a JSON array of objects or an object wrapping one.
// Keys are matched case-insensitively and elements that are not objects
// are skipped.
func parseNews(data []byte, now time.Time) ([]NewsEntry, error) {
	items, err := newsArray(data)
	if err != nil {
		return nil, err
	}

	entries := make([]NewsEntry, 0, len(items))
	for _, raw := range items {
		var obj map[string]any
		if err := json.Unmarshal(raw, &obj); err != nil {
			continue
		}
		fields := make(map[string]any, len(obj))
		for k, v := range obj {
			fields[strings.ToLower(k)] = v
		}

		entry := NewsEntry{
			Title:     stringField(fields, "title"),
			Body:      stringField(fields, "content", "body", "text"),
			CreatedAt: parseTimestamp(fields, now, "created_at", "createdat", "date"),
		}
		if entry.Title == "" && entry.Body == "" {
			continue
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func newsArray(data []byte) ([]json.RawMessage, error) {
	var items []json.RawMessage
	if err := json.Unmarshal(data, &items); err == nil {
		return items, nil
	}

	var wrapper map[string]json.RawMessage
	if err := json.Unmarshal(data, &wrapper); err != nil {
		return nil, fmt.Errorf("news is neither an array nor an object: %w", err)
	}

	lowered := make(map[string]json.RawMessage, len(wrapper))
	keys := make([]string, 0, len(wrapper))
	for k, v := range wrapper {
		lk := strings.ToLower(k)
		lowered[lk] = v
		keys = append(keys, lk)
	}
	sort.Strings(keys)

	for _, k := range append(append([]string{}, wrapperKeys...), keys...) {
		v, ok := lowered[k]
		if !ok {
			continue
		}
		items = nil
		if err := json.Unmarshal(v, &items); err == nil && items != nil {
			return items, nil
		}
	}
	return nil, fmt.Errorf("news object holds no array")
}

func stringField(fields map[string]any, keys ...string) string {
	for _, k := range keys {
		switch v := fields[k].(type) {
		case string:
			if s := strings.TrimSpace(v); s != "" {
				return s
			}
		case float64:
			return strconv.FormatFloat(v, 'f', -1, 64)
		}
	}
	return ""
}

func parseTimestamp(fields map[string]any, now time.Time, keys ...string) time.Time {
	for _, k := range keys {
		switch v := fields[k].(type) {
		case string:
			s := strings.TrimSpace(v)
			for _, layout := range timestampLayouts {
				if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
					return t
				}
			}
		case float64:
			if v > 0 {
				return time.Unix(int64(v), 0)
			}
		}
	}
	return now
}
