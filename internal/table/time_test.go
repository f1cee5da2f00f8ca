package table

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimestampParsesInJST(t *testing.T) {
	ts := Timestamp()

	parsed, err := time.ParseInLocation(timestampLayout, ts, jst)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now(), parsed, time.Minute)
}

func TestTimestampIsAPlannerClock(t *testing.T) {
	// The planner stores its clock as a func() string field.
	var clock func() string = Timestamp
	assert.Len(t, clock(), 19)
}

func TestTodayIsDateOnly(t *testing.T) {
	today := Today()

	parsed, err := time.ParseInLocation(dateLayout, today, jst)
	require.NoError(t, err)
	assert.Equal(t, 0, parsed.Hour())
	assert.Equal(t, 0, parsed.Minute())
}
