package market

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// UnixTime is a point in time carried as integer epoch seconds, UTC.
// Everything downstream of the ingestion boundary works in epoch
// seconds; wall-clock formats exist only at the JSON edges.
type UnixTime int64

// Accepted string layouts, tried in order. Layouts without a zone are
// interpreted as UTC.
var timeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseTime converts an ISO-8601 string or a bare epoch number into
// epoch seconds.
func ParseTime(s string) (UnixTime, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty timestamp")
	}
	for _, layout := range timeLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return UnixTime(t.UTC().Unix()), nil
		}
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return UnixTime(n), nil
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return UnixTime(int64(f)), nil
	}
	return 0, fmt.Errorf("unrecognized timestamp: %q", s)
}

// UnmarshalJSON accepts either a quoted ISO-8601 string or a numeric
// epoch value (seconds, fractional part discarded).
func (u *UnixTime) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "null" {
		return nil
	}
	if strings.HasPrefix(s, `"`) {
		unquoted, err := strconv.Unquote(s)
		if err != nil {
			return fmt.Errorf("malformed timestamp %s: %w", s, err)
		}
		parsed, err := ParseTime(unquoted)
		if err != nil {
			return err
		}
		*u = parsed
		return nil
	}
	parsed, err := ParseTime(s)
	if err != nil {
		return err
	}
	*u = parsed
	return nil
}

// MarshalJSON emits a bare epoch-seconds number, the form the chart
// frontend consumes directly.
func (u UnixTime) MarshalJSON() ([]byte, error) {
	return strconv.AppendInt(nil, int64(u), 10), nil
}

// Time converts to the standard library representation (UTC).
func (u UnixTime) Time() time.Time {
	return time.Unix(int64(u), 0).UTC()
}

func (u UnixTime) String() string {
	return u.Time().Format(time.RFC3339)
}
