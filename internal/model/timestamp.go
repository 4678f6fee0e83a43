package model

import (
	"bytes"
	"strconv"
	"time"

	json "github.com/goccy/go-json"
)

// looseTime decodes a creation timestamp without failing the document.
// RFC 3339 strings and Unix milliseconds are read; anything else is the
// zero time.
type looseTime time.Time

func (t *looseTime) UnmarshalJSON(data []byte) error {
	*t = looseTime{}
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return nil
		}
		if parsed, err := time.Parse(time.RFC3339Nano, s); err == nil {
			*t = looseTime(parsed)
		}
		return nil
	}
	if ms, err := strconv.ParseInt(string(data), 10, 64); err == nil {
		*t = looseTime(time.UnixMilli(ms).UTC())
	}
	return nil
}
