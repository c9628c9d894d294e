package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLifecycleEvent_Decode(t *testing.T) {
	tests := []struct {
		name   string
		raw    string
		action string
		ids    []uint64
	}{
		{
			name:   "create with numeric key",
			raw:    `{"event":"memes.items.create","key":1,"payload":{"status":"draft"}}`,
			action: EventCreate,
			ids:    []uint64{1},
		},
		{
			name:   "update with string keys",
			raw:    `{"event":"memes.items.update","keys":["2","3"],"payload":{"status":"published"}}`,
			action: EventUpdate,
			ids:    []uint64{2, 3},
		},
		{
			name:   "short event name",
			raw:    `{"event":"delete","keys":[4]}`,
			action: EventDelete,
			ids:    []uint64{4},
		},
		{
			name:   "other collection",
			raw:    `{"event":"tags.items.create","key":5}`,
			action: "",
			ids:    []uint64{5},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var ev LifecycleEvent
			require.NoError(t, json.Unmarshal([]byte(tt.raw), &ev))
			assert.Equal(t, tt.action, ev.Action())
			assert.Equal(t, tt.ids, ev.IDs())
		})
	}
}

func TestID_RejectsGarbage(t *testing.T) {
	var id ID
	assert.Error(t, json.Unmarshal([]byte(`"abc"`), &id))
	assert.Error(t, json.Unmarshal([]byte(`-1`), &id))
	require.NoError(t, json.Unmarshal([]byte(`null`), &id))
	assert.Zero(t, id)
}
