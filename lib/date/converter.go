package date

import (
	"time"
)

// ToUnixNano converts a datetime string of the given format to Unix nano
// seconds. Used to turn RFC 3339 datetimes into orderable index terms.
func ToUnixNano(format string, dateStr string) (int64, error) {
	t, err := time.Parse(format, dateStr)
	if err != nil {
		return 0, err
	}
	return t.UnixNano(), nil
}
