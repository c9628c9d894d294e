package service

import (
	"context"
	"errors"
	"testing"

	"Memehub/config"
	"Memehub/dao"
	"Memehub/dao/daotest"
	"Memehub/models"
	"Memehub/pkg/meili"
	"Memehub/pkg/meili/meilitest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (e *testEnv) setupService(engine meili.Engine, batch int) *SetupService {
	return &SetupService{
		Config:    &config.Meilisearch{BackfillBatch: batch},
		Engine:    engine,
		Builder:   e.builder,
		MemeDAO:   dao.NewMemeDAO(e.db),
		OutboxDAO: e.outbox,
	}
}

func TestSetupService_SetupBackfillsPublished(t *testing.T) {
	env := newTestEnv(t)
	engine := meilitest.NewMissing()
	for i := uint64(1); i <= 5; i++ {
		daotest.SeedMeme(t, env.db, i, "meme", "")
	}
	daotest.SeedMeme(t, env.db, 6, "draft", "", daotest.WithStatus(models.MemeStatusDraft))
	daotest.SeedMeme(t, env.db, 7, "old", "", daotest.WithStatus(models.MemeStatusArchived))

	resp, err := env.setupService(engine, 2).Setup(context.Background())
	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.Equal(t, "test_memes", resp.IndexName)
	assert.Equal(t, 5, resp.DocumentsCount)
	assert.Equal(t, 5, engine.Len())
	// 4 个配置任务加 3 批导入
	assert.Len(t, resp.TaskIDs, 7)
	assert.Equal(t, searchableAttributes, resp.Configuration.SearchableAttributes)

	_, ok := engine.Doc("6")
	assert.False(t, ok)
	require.NotNil(t, engine.Settings())
	assert.Equal(t, sortableAttributes, engine.Settings().Sortable)
}

func TestSetupService_SetupEmpty(t *testing.T) {
	env := newTestEnv(t)
	resp, err := env.setupService(env.engine, 100).Setup(context.Background())
	require.NoError(t, err)
	assert.Zero(t, resp.DocumentsCount)
	assert.Equal(t, "index configured, no published meme found", resp.Message)
}

func TestSetupService_SetupEngineDown(t *testing.T) {
	env := newTestEnv(t)
	env.engine.Down = true
	_, err := env.setupService(env.engine, 100).Setup(context.Background())
	assert.ErrorIs(t, err, meili.ErrUnavailable)
}

func TestSetupService_Status(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	missing := meilitest.NewMissing()
	st, err := env.setupService(missing, 100).Status(ctx)
	require.NoError(t, err)
	assert.Equal(t, meili.StatusAvailable, st.Meilisearch.Status)
	assert.False(t, st.Index.Exists)

	daotest.SeedMeme(t, env.db, 1, "cat", "")
	_, err = env.sync.Handle(ctx, event(t, `{"event":"memes.items.update","keys":[1]}`))
	require.NoError(t, err)
	_, err = env.setupService(env.engine, 100).Setup(ctx)
	require.NoError(t, err)

	st, err = env.setupService(env.engine, 100).Status(ctx)
	require.NoError(t, err)
	assert.True(t, st.Index.Exists)
	assert.Equal(t, int64(1), st.Index.DocumentsCount)
	assert.Equal(t, int64(1), st.Outbox.Pending)

	env.engine.Down = true
	_, err = env.setupService(env.engine, 100).Status(ctx)
	assert.True(t, errors.Is(err, meili.ErrUnavailable))
}

func TestSetupService_RetryDead(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	require.NoError(t, env.outbox.Enqueue(ctx,
		&models.IndexOutbox{MemeID: 1, Op: models.OutboxOpUpsert, Source: models.SourceUpdate},
		&models.IndexOutbox{MemeID: 2, Op: models.OutboxOpUpsert, Source: models.SourceUpdate},
	))
	var rows []models.IndexOutbox
	require.NoError(t, env.db.Order("id").Find(&rows).Error)
	require.NoError(t, env.outbox.MarkDead(ctx, []int64{rows[0].ID}, 8, "boom"))

	n, err := env.setupService(env.engine, 100).RetryDead(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	counts, err := env.outbox.Counts(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), counts[models.OutboxPending])
	assert.Zero(t, counts[models.OutboxDead])
}
