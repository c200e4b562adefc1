package types

import (
	"encoding/json"
	"strings"
	"time"
)

// Date is a calendar date carried as YYYY-MM-DD in JSON. Full RFC 3339
// timestamps are accepted on input and truncated to the date.
type Date struct {
	time.Time
}

const dateLayout = "2006-01-02"

// MarshalJSON implements json.Marshaler
func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.Format(dateLayout))
}

// UnmarshalJSON implements json.Unmarshaler
func (d *Date) UnmarshalJSON(data []byte) error {
	str := string(data)
	if str == "null" || str == `""` {
		d.Time = time.Time{}
		return nil
	}
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	str = strings.TrimSpace(str)

	t, err := time.Parse(dateLayout, str)
	if err != nil {
		ts, tsErr := time.Parse(time.RFC3339, str)
		if tsErr != nil {
			return err
		}
		t = time.Date(ts.Year(), ts.Month(), ts.Day(), 0, 0, 0, 0, time.UTC)
	}
	d.Time = t
	return nil
}
