package table

import "time"

// Stored timestamps are JST wall-clock strings; the admin UI and the
// date-prefixed queries both depend on this exact layout.
const (
	timestampLayout = "2006-01-02 15:04:05"
	dateLayout      = "2006-01-02"
)

var jst = time.FixedZone("JST", 9*60*60)

// Timestamp returns the current time as a stored audit timestamp.
func Timestamp() string {
	return time.Now().In(jst).Format(timestampLayout)
}

// Today returns the current date prefix used by "today only" queries.
func Today() string {
	return time.Now().In(jst).Format(dateLayout)
}
