package util

import "time"

// FormatMillis renders a millisecond count using Go duration notation
// (e.g. 600000 -> "10m0s").
func FormatMillis(ms int64) string {
	return (time.Duration(ms) * time.Millisecond).String()
}

// FormatUnix renders a Unix timestamp for display. Zero renders as "-"
// so never-updated entries stay readable in tables.
func FormatUnix(ts int64) string {
	if ts == 0 {
		return "-"
	}
	return time.Unix(ts, 0).Format("2006-01-02 15:04:05")
}
