package service

import (
	"context"
	"errors"
	"fmt"

	"Memehub/config"
	"Memehub/dao"
	"Memehub/models"
	"Memehub/pkg/log"
	"Memehub/pkg/meili"
	"Memehub/types"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var (
	searchableAttributes = []string{"title", "searchable_content", "tags", "creator"}
	filterableAttributes = []string{"tags", "creator_id", "date_created", "status"}
	sortableAttributes   = []string{"likes", "views", "date_created"}
	synonyms             = map[string][]string{
		"drole": {"amusant", "marrant", "comique"},
		"bug":   {"erreur", "bogue", "probleme"},
		"dev":   {"developpeur", "programmeur", "codeur"},
	}
)

// IndexSettings memes 索引的固定配置
func IndexSettings() *meili.Settings {
	return &meili.Settings{
		Searchable: searchableAttributes,
		Filterable: filterableAttributes,
		Sortable:   sortableAttributes,
		Synonyms:   synonyms,
	}
}

var _ ISetupService = (*SetupService)(nil)

type ISetupService interface {
	// Setup 写入索引配置并全量导入已发布的 meme
	Setup(ctx context.Context) (*types.SetupResp, error)
	Status(ctx context.Context) (*types.SetupStatusResp, error)
	RetryDead(ctx context.Context) (int64, error)
}

type SetupService struct {
	Config    *config.Meilisearch
	Engine    meili.Engine
	Builder   *DocumentBuilder
	MemeDAO   *dao.MemeDAO
	OutboxDAO *dao.IndexOutboxDAO
}

func (s *SetupService) Setup(ctx context.Context) (*types.SetupResp, error) {
	settings := IndexSettings()
	taskIDs, err := s.Engine.Configure(ctx, settings)
	if err != nil {
		return nil, fmt.Errorf("configure index: %w", err)
	}

	count, backfillTasks, err := s.backfill(ctx)
	if err != nil {
		return nil, fmt.Errorf("backfill: %w", err)
	}
	taskIDs = append(taskIDs, backfillTasks...)

	message := "index configured"
	if count == 0 {
		message = "index configured, no published meme found"
	}
	log.L.Info("search index configured", zap.String("index", s.Engine.IndexName()), zap.Int("documents", count))

	return &types.SetupResp{
		Success:        true,
		Message:        message,
		IndexName:      s.Engine.IndexName(),
		DocumentsCount: count,
		TaskIDs:        taskIDs,
		Configuration: types.SetupConfiguration{
			SearchableAttributes: settings.Searchable,
			FilterableAttributes: settings.Filterable,
			SortableAttributes:   settings.Sortable,
			Synonyms:             settings.Synonyms,
		},
	}, nil
}

// backfill 按 id 游标分批读取，只导入已发布的 meme
func (s *SetupService) backfill(ctx context.Context) (int, []int64, error) {
	var (
		after   uint64
		total   int
		taskIDs []int64
		batch   = max(s.Config.BackfillBatch, 1)
	)
	for {
		memes, err := s.MemeDAO.FindPage(ctx, after, batch)
		if err != nil {
			return total, taskIDs, err
		}
		if len(memes) == 0 {
			break
		}
		after = memes[len(memes)-1].ID

		docs, err := s.Builder.BuildDocuments(ctx, memes)
		if err != nil {
			return total, taskIDs, err
		}
		if len(docs) > 0 {
			task, err := s.Engine.AddDocuments(ctx, docs)
			if err != nil {
				return total, taskIDs, err
			}
			taskIDs = append(taskIDs, task)
			total += len(docs)
		}
		if len(memes) < batch {
			break
		}
	}
	return total, taskIDs, nil
}

func (s *SetupService) Status(ctx context.Context) (*types.SetupStatusResp, error) {
	resp := &types.SetupStatusResp{
		Meilisearch: types.EngineStatus{Host: s.Engine.Host()},
		Index:       types.IndexStatus{Name: s.Engine.IndexName()},
	}

	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		status, err := s.Engine.Health(egCtx)
		if err != nil {
			return err
		}
		resp.Meilisearch.Status = status
		return nil
	})
	eg.Go(func() error {
		stats, err := s.Engine.Stats(egCtx)
		if errors.Is(err, meili.ErrIndexNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		resp.Index.Exists = true
		resp.Index.DocumentsCount = stats.NumberOfDocuments
		resp.Index.IsIndexing = stats.IsIndexing
		return nil
	})
	eg.Go(func() error {
		counts, err := s.OutboxDAO.Counts(egCtx)
		if err != nil {
			// outbox 统计失败不影响引擎状态
			log.L.Warn("outbox counts", zap.Error(err))
			return nil
		}
		resp.Outbox = types.OutboxStatus{
			Pending:    counts[models.OutboxPending],
			Processing: counts[models.OutboxProcessing],
			Dead:       counts[models.OutboxDead],
		}
		return nil
	})
	if err := eg.Wait(); err != nil {
		if errors.Is(err, meili.ErrUnavailable) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", meili.ErrUnavailable, err)
	}
	return resp, nil
}

func (s *SetupService) RetryDead(ctx context.Context) (int64, error) {
	n, err := s.OutboxDAO.RequeueDead(ctx)
	if err != nil {
		return 0, err
	}
	log.L.Info("dead outbox entries requeued", zap.Int64("count", n))
	return n, nil
}
