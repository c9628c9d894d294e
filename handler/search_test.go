package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"Memehub/dao/daotest"
	"Memehub/models"
	"Memehub/pkg/meili"
	"Memehub/pkg/meili/meilitest"
	"Memehub/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchSetup_Auth(t *testing.T) {
	f := newFixture(t, meilitest.NewMissing())

	w, _ := f.do(t, http.MethodPost, "/search-setup/meilisearch", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w, env := f.do(t, http.MethodPost, "/search-setup/meilisearch", "", bearer(token(t, "u1", "user"))...)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "forbidden", env.Msg)

	w, _ = f.do(t, http.MethodPost, "/search-setup/meilisearch/outbox/retry", "", bearer(token(t, "u1", "user"))...)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

// 未初始化前搜索返回 503 与提示，setup 后可以搜索
func TestSearch_SetupThenQuery(t *testing.T) {
	f := newFixture(t, meilitest.NewMissing())
	admin := bearer(token(t, "admin-1", "admin"))
	daotest.SeedMeme(t, f.db, 1, "Monday cat", "coffee")
	daotest.SeedMeme(t, f.db, 2, "Friday dog", "weekend")
	daotest.SeedMeme(t, f.db, 3, "secret cat", "", daotest.WithStatus(models.MemeStatusDraft))

	w, env := f.do(t, http.MethodGet, "/search/memes?q=cat", "")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, env.Msg, "POST /search-setup/meilisearch")

	w, env = f.do(t, http.MethodGet, "/search-setup/meilisearch/status", "")
	require.Equal(t, http.StatusOK, w.Code)
	var status types.SetupStatusResp
	require.NoError(t, json.Unmarshal(env.Data, &status))
	assert.False(t, status.Index.Exists)
	assert.Equal(t, "available", status.Meilisearch.Status)

	w, env = f.do(t, http.MethodPost, "/search-setup/meilisearch", "", admin...)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var setup types.SetupResp
	require.NoError(t, json.Unmarshal(env.Data, &setup))
	assert.Equal(t, 2, setup.DocumentsCount)

	w, env = f.do(t, http.MethodGet, "/search/memes?q=cat&limit=500&sort=likes_desc", "")
	require.Equal(t, http.StatusOK, w.Code)
	var res types.SearchResp
	require.NoError(t, json.Unmarshal(env.Data, &res))
	assert.Equal(t, "cat", res.Query)
	assert.Equal(t, int64(1), res.TotalHits)
	require.Len(t, res.Hits, 1)
	assert.Equal(t, 100, res.Pagination.Limit)
	assert.False(t, res.Pagination.HasNext)

	w, env = f.do(t, http.MethodGet, "/search/memes?limit=1", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(env.Data, &res))
	assert.Len(t, res.Hits, 1)
	assert.True(t, res.Pagination.HasNext)
}

func TestSearch_Suggest(t *testing.T) {
	f := newFixture(t, meilitest.New())
	daotest.SeedMeme(t, f.db, 7, "Monday cat", "")
	_, err := f.engine.AddDocuments(t.Context(), []map[string]any{{"id": 7, "title": "Monday cat"}})
	require.NoError(t, err)

	w, env := f.do(t, http.MethodGet, "/search/memes/suggest", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"suggestions":[]}`, string(env.Data))

	w, env = f.do(t, http.MethodGet, "/search/memes/suggest?q=mon", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"suggestions":[{"id":7,"title":"Monday cat","highlighted":"Monday cat"}]}`, string(env.Data))

	f.engine.Down = true
	w, _ = f.do(t, http.MethodGet, "/search/memes/suggest?q=mon", "")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestSearch_InvalidSort(t *testing.T) {
	engine := meilitest.New()
	engine.SearchErr = fmt.Errorf("%w: Attribute `title` is not sortable.", meili.ErrInvalidRequest)
	f := newFixture(t, engine)

	w, env := f.do(t, http.MethodGet, "/search/memes?q=cat&sort=title_asc", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, env.Msg, "not sortable")

	w, _ = f.do(t, http.MethodGet, "/search/memes/suggest?q=cat", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSearchSetup_EngineDown(t *testing.T) {
	engine := meilitest.New()
	engine.Down = true
	f := newFixture(t, engine)

	w, env := f.do(t, http.MethodGet, "/search-setup/meilisearch/status", "")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.NotEmpty(t, env.Details)

	w, _ = f.do(t, http.MethodPost, "/search-setup/meilisearch", "", bearer(token(t, "admin-1", "admin"))...)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestSearchSetup_RetryDead(t *testing.T) {
	f := newFixture(t, meilitest.New())
	require.NoError(t, f.outbox.Enqueue(t.Context(), &models.IndexOutbox{MemeID: 1, Op: models.OutboxOpUpsert, Source: models.SourceUpdate}))
	require.NoError(t, f.db.Model(&models.IndexOutbox{}).Where("meme_id = ?", 1).Update("status", models.OutboxDead).Error)

	w, env := f.do(t, http.MethodPost, "/search-setup/meilisearch/outbox/retry", "", bearer(token(t, "admin-1", "admin"))...)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"requeued":1}`, string(env.Data))
}

func TestSearchSetup_StatusMessage(t *testing.T) {
	engine := meilitest.New()
	engine.Down = true
	f := newFixture(t, engine)

	_, env := f.do(t, http.MethodGet, "/search-setup/meilisearch/status", "")
	assert.Equal(t, "cannot reach search engine", env.Msg)
}
