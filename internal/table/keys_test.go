package table

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeyFor(t *testing.T) {
	key := KeyFor("T-1a2b3c4d")
	assert.Equal(t, key.PK, key.SK)
	assert.Equal(t, "T-1a2b3c4d", key.PK)
}

func TestOrderKey(t *testing.T) {
	key := OrderKey("L-11112222", "/videos/123")
	assert.Equal(t, "L-11112222", key.PK)
	assert.Equal(t, "/videos/123", key.SK)
}

func TestNewID(t *testing.T) {
	id := NewID("T")
	assert.True(t, strings.HasPrefix(id, "T-"))
	assert.Len(t, id, 10)

	other := NewID("T")
	assert.NotEqual(t, id, other)
}

func TestVideoURI(t *testing.T) {
	assert.Equal(t, "/videos/123456", VideoURI("123456"))
}

func TestThreadToken(t *testing.T) {
	t.Run("new thread doubles its timestamp", func(t *testing.T) {
		token := ThreadToken("", "2026-08-31 10:00:00")
		assert.Equal(t, "2026-08-31 10:00:00_2026-08-31 10:00:00", token)
	})

	t.Run("reply sorts under its parent", func(t *testing.T) {
		token := ThreadToken("2026-08-30 09:00:00", "2026-08-31 10:00:00")
		assert.Equal(t, "2026-08-30 09:00:00_2026-08-31 10:00:00", token)
		assert.True(t, strings.HasPrefix(token, "2026-08-30 09:00:00"))
	})
}

func TestTimestampFormat(t *testing.T) {
	ts := Timestamp()
	assert.Len(t, ts, 19)
	assert.True(t, strings.HasPrefix(ts, Today()))
}
