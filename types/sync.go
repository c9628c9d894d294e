package types

import (
	"encoding/json"
	"strings"
)

const (
	EventCreate = "create"
	EventUpdate = "update"
	EventDelete = "delete"

	lifecyclePrefix = "memes.items."
)

// LifecycleEvent 平台的 memes.items.create/update/delete 事件
// create 使用 key，update/delete 使用 keys
type LifecycleEvent struct {
	Event   string          `json:"event"`
	Key     ID              `json:"key"`
	Keys    []ID            `json:"keys"`
	Payload json.RawMessage `json:"payload"`
}

// Action create/update/delete，非 memes 集合的事件返回空
func (e *LifecycleEvent) Action() string {
	name := e.Event
	if strings.Contains(name, ".") {
		if !strings.HasPrefix(name, lifecyclePrefix) {
			return ""
		}
		name = strings.TrimPrefix(name, lifecyclePrefix)
	}
	switch name {
	case EventCreate, EventUpdate, EventDelete:
		return name
	}
	return ""
}

// IDs 事件涉及的 meme id，去掉 0
func (e *LifecycleEvent) IDs() []uint64 {
	var out []uint64
	if e.Key != 0 {
		out = append(out, uint64(e.Key))
	}
	for _, k := range e.Keys {
		if k != 0 && uint64(k) != uint64(e.Key) {
			out = append(out, uint64(k))
		}
	}
	return out
}

// HookResp POST /hooks/memes
type HookResp struct {
	Queued int `json:"queued"`
}
