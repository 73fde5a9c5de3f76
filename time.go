package magento

import (
	"encoding/json"
	"time"
)

// DateTimeLayout is the datetime format used by the Magento API.
const DateTimeLayout = "2006-01-02 15:04:05"

// FormatDateTime formats t the way the API expects datetime strings, e.g.
// for special price ranges.
func FormatDateTime(t time.Time) string {
	return t.Format(DateTimeLayout)
}

// Time supports (un)marshalling datetimes in the API's format.
type Time struct {
	time.Time
}

// UnmarshalJSON implements the [json.Unmarshaler] interface.
func (t *Time) UnmarshalJSON(data []byte) error {
	if string(data) == "null" || string(data) == `""` {
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}

	parsed, err := time.Parse(DateTimeLayout, s)
	if err != nil {
		return err
	}

	t.Time = parsed
	return nil
}

// MarshalJSON implements the [json.Marshaler] interface.
func (t Time) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte(`""`), nil
	}

	return json.Marshal(FormatDateTime(t.Time))
}
