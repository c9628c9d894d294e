package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"Memehub/dao/daotest"
	"Memehub/pkg/meili/meilitest"
	"Memehub/pkg/socket"
	"Memehub/types"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLike_Toggle(t *testing.T) {
	f := newFixture(t, meilitest.New())
	daotest.SeedMeme(t, f.db, 1, "cat", "")
	user := bearer(token(t, "u1", "user"))

	tests := []struct {
		name    string
		body    string
		headers []string
		status  int
		msg     string
	}{
		{name: "anonymous", body: `{"meme_id":1}`, status: http.StatusBadRequest, msg: "meme_id and user_id are required"},
		{name: "bad token", body: `{"meme_id":1}`, headers: bearer("garbage"), status: http.StatusBadRequest, msg: "meme_id and user_id are required"},
		{name: "missing meme_id", body: `{}`, headers: user, status: http.StatusBadRequest, msg: "meme_id and user_id are required"},
		{name: "empty body", body: ``, headers: user, status: http.StatusBadRequest, msg: "meme_id and user_id are required"},
		{name: "unknown meme", body: `{"meme_id":404}`, headers: user, status: http.StatusNotFound, msg: "meme not found"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, env := f.do(t, http.MethodPost, "/like-manager/toggle", tt.body, tt.headers...)
			assert.Equal(t, tt.status, w.Code)
			assert.Equal(t, tt.status, env.Code)
			assert.Equal(t, tt.msg, env.Msg)
		})
	}

	w, env := f.do(t, http.MethodPost, "/like-manager/toggle", `{"meme_id":"1"}`, user...)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var res types.ToggleLikeResponse
	require.NoError(t, json.Unmarshal(env.Data, &res))
	assert.Equal(t, types.ActionLiked, res.Action)
	assert.Equal(t, uint64(1), res.Data.MemeID)
	assert.Equal(t, "u1", res.Data.UserID)
	assert.Equal(t, int64(1), res.Data.LikesCount)

	w, env = f.do(t, http.MethodPost, "/like-manager/toggle", `{"meme_id":1}`, user...)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(env.Data, &res))
	assert.Equal(t, types.ActionUnliked, res.Action)
	assert.Zero(t, res.Data.LikesCount)
}

func TestLike_Status(t *testing.T) {
	f := newFixture(t, meilitest.New())
	daotest.SeedMeme(t, f.db, 1, "cat", "")
	user := bearer(token(t, "u1", "user"))

	w, _ := f.do(t, http.MethodGet, "/like-manager/status/1", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w, _ = f.do(t, http.MethodGet, "/like-manager/status/abc", "", user...)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = f.do(t, http.MethodGet, "/like-manager/status/404", "", user...)
	assert.Equal(t, http.StatusNotFound, w.Code)

	_, _ = f.do(t, http.MethodPost, "/like-manager/toggle", `{"meme_id":1}`, user...)
	w, env := f.do(t, http.MethodGet, "/like-manager/status/1", "", user...)
	require.Equal(t, http.StatusOK, w.Code)
	var res types.LikeStatusResponse
	require.NoError(t, json.Unmarshal(env.Data, &res))
	assert.Equal(t, uint64(1), res.MemeID)
	assert.True(t, res.UserHasLiked)
	assert.Equal(t, int64(1), res.TotalLikes)
}

// 点赞后 websocket 订阅者收到通知
func TestLike_NotifiesWebsocket(t *testing.T) {
	f := newFixture(t, meilitest.New())
	daotest.SeedUser(t, f.db, "u1", "Grace", "Hopper")
	daotest.SeedMeme(t, f.db, 1, "cat", "")

	srv := httptest.NewServer(f.router)
	defer srv.Close()

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http")+"/ws", nil)
	require.NoError(t, err)
	defer conn.Close()
	require.Eventually(t, func() bool { return f.hub.Online() == 1 }, time.Second, 10*time.Millisecond)

	_, _ = f.do(t, http.MethodPost, "/like-manager/toggle", `{"meme_id":1}`, bearer(token(t, "u1", "user"))...)

	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, p, err := conn.ReadMessage()
	require.NoError(t, err)
	var msg struct {
		socket.Message
		Payload types.LikeNotification `json:"payload"`
	}
	require.NoError(t, json.Unmarshal(p, &msg))
	assert.Equal(t, "like_notification", msg.Event)
	assert.Equal(t, types.ActionLiked, msg.Payload.Action)
	assert.Equal(t, "cat", msg.Payload.Meme.Title)
	assert.Equal(t, "Grace Hopper", msg.Payload.User.Name)
}
