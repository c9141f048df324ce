package worker

import (
	"testing"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeEvent(t *testing.T) {
	msg := redis.XMessage{
		ID: "1-0",
		Values: map[string]interface{}{
			payloadField: `{"type":"user.follow","actor_id":"1","user_id":"2"}`,
		},
	}

	ev, err := decodeEvent(msg)
	require.NoError(t, err)
	assert.Equal(t, EventUserFollow, ev.Type)
	assert.Equal(t, "1", ev.ActorID)
	assert.Equal(t, "2", ev.UserID)
}

func TestDecodeEvent_Malformed(t *testing.T) {
	cases := []struct {
		name   string
		values map[string]interface{}
	}{
		{"missing payload", map[string]interface{}{"other": "x"}},
		{"non-string payload", map[string]interface{}{payloadField: 42}},
		{"invalid json", map[string]interface{}{payloadField: "{"}},
		{"missing type", map[string]interface{}{payloadField: `{"post_id":"p1"}`}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := decodeEvent(redis.XMessage{ID: "1-0", Values: tc.values})
			assert.Error(t, err)
		})
	}
}
