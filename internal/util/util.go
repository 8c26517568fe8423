package util

import (
	"time"
)

// DisplayTimeLayout is the day-first timestamp format used by API
// serializations, e.g. "27-03-2026 14:05".
const DisplayTimeLayout = "02-01-2006 15:04"

// FormatDisplayTime renders a timestamp in the API's display format.
func FormatDisplayTime(t time.Time) string {
	return t.Format(DisplayTimeLayout)
}
