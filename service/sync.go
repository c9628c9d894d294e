package service

import (
	"context"
	"encoding/json"
	"strconv"

	"Memehub/dao"
	"Memehub/models"
	"Memehub/pkg/log"
	"Memehub/pkg/meili"
	"Memehub/types"

	"github.com/tidwall/gjson"
	"go.uber.org/zap"
	"gorm.io/datatypes"
)

var _ ISynchronizer = (*Synchronizer)(nil)

type ISynchronizer interface {
	// Handle 把生命周期事件写入 outbox，返回入队条数
	Handle(ctx context.Context, ev *types.LifecycleEvent) (int, error)
	// Apply 立即同步到索引，错误只记录日志
	Apply(ctx context.Context, ev *types.LifecycleEvent)
	// Reconcile 以数据库为准刷新单个 meme 的索引文档
	Reconcile(ctx context.Context, memeID uint64, op string, source string) error
}

type Synchronizer struct {
	OutboxDAO *dao.IndexOutboxDAO
	Builder   *DocumentBuilder
	Engine    meili.Engine
}

// payloadPublished create 事件只看 payload 里的 status
func payloadPublished(ev *types.LifecycleEvent) bool {
	return gjson.GetBytes(ev.Payload, "status").String() == models.MemeStatusPublished
}

func (s *Synchronizer) Handle(ctx context.Context, ev *types.LifecycleEvent) (int, error) {
	action := ev.Action()
	ids := ev.IDs()
	if action == "" || len(ids) == 0 {
		log.L.Debug("ignore lifecycle event", zap.String("event", ev.Event))
		return 0, nil
	}
	if action == types.EventCreate && !payloadPublished(ev) {
		log.L.Debug("skip unpublished meme", zap.Uint64s("ids", ids))
		return 0, nil
	}

	raw, err := json.Marshal(ev)
	if err != nil {
		return 0, err
	}

	op := models.OutboxOpUpsert
	if action == types.EventDelete {
		op = models.OutboxOpDelete
	}
	rows := make([]*models.IndexOutbox, 0, len(ids))
	for _, id := range ids {
		rows = append(rows, &models.IndexOutbox{
			MemeID:  id,
			Op:      op,
			Source:  action,
			Payload: datatypes.JSON(raw),
		})
	}
	if err := s.OutboxDAO.Enqueue(ctx, rows...); err != nil {
		return 0, err
	}
	log.L.Info("lifecycle event queued", zap.String("event", action), zap.Uint64s("ids", ids))
	return len(rows), nil
}

func (s *Synchronizer) Apply(ctx context.Context, ev *types.LifecycleEvent) {
	ids := ev.IDs()
	switch ev.Action() {
	case types.EventCreate:
		if !payloadPublished(ev) {
			return
		}
		for _, id := range ids {
			if err := s.Reconcile(ctx, id, models.OutboxOpUpsert, models.SourceCreate); err != nil {
				log.L.Error("sync create meme", zap.Uint64("id", id), zap.Error(err))
			}
		}
	case types.EventUpdate:
		for _, id := range ids {
			if err := s.Reconcile(ctx, id, models.OutboxOpUpsert, models.SourceUpdate); err != nil {
				log.L.Error("sync update meme", zap.Uint64("id", id), zap.Error(err))
			}
		}
	case types.EventDelete:
		if len(ids) == 0 {
			return
		}
		if _, err := s.Engine.DeleteDocuments(ctx, toDocIDs(ids)); err != nil {
			log.L.Error("sync delete memes", zap.Uint64s("ids", ids), zap.Error(err))
			return
		}
		log.L.Info("memes removed from index", zap.Uint64s("ids", ids))
	}
}

func (s *Synchronizer) Reconcile(ctx context.Context, memeID uint64, op string, source string) error {
	if op == models.OutboxOpDelete {
		_, err := s.Engine.DeleteDocuments(ctx, toDocIDs([]uint64{memeID}))
		return err
	}

	doc, err := s.Builder.BuildDocument(ctx, memeID)
	if err != nil {
		return err
	}
	if doc == nil {
		// 未发布或已删除，从索引移除
		_, err := s.Engine.DeleteDocuments(ctx, toDocIDs([]uint64{memeID}))
		if err == nil {
			log.L.Info("meme removed from index", zap.Uint64("id", memeID), zap.String("source", source))
		}
		return err
	}

	docs := []SearchDocument{*doc}
	if source == models.SourceCreate {
		_, err = s.Engine.AddDocuments(ctx, docs)
	} else {
		_, err = s.Engine.UpdateDocuments(ctx, docs)
	}
	if err == nil {
		log.L.Info("meme indexed", zap.Uint64("id", memeID), zap.String("source", source))
	}
	return err
}

func toDocIDs(ids []uint64) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, strconv.FormatUint(id, 10))
	}
	return out
}
