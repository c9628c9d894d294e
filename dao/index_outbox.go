package dao

import (
	"Memehub/models"
	"Memehub/pkg/snowflake"
	"context"
	"time"

	"gorm.io/gorm"
)

type IndexOutboxDAO struct {
	Repo[models.IndexOutbox]
}

func NewIndexOutboxDAO(db *gorm.DB) *IndexOutboxDAO {
	return &IndexOutboxDAO{Repo: NewRepo[models.IndexOutbox](db)}
}

// Enqueue 写入待处理变更，id 与状态在这里填充
func (d *IndexOutboxDAO) Enqueue(ctx context.Context, items ...*models.IndexOutbox) error {
	if len(items) == 0 {
		return nil
	}
	now := time.Now()
	for _, item := range items {
		if item.ID == 0 {
			item.ID = snowflake.GenID()
		}
		item.Status = models.OutboxPending
		if item.NextAttemptAt.IsZero() {
			item.NextAttemptAt = now
		}
	}
	return d.Conn(ctx).Create(&items).Error
}

// Claim 领取到期的 pending 记录并置为 processing
// 超过 lease 仍在 processing 的记录视为处理节点崩溃，先放回 pending
func (d *IndexOutboxDAO) Claim(ctx context.Context, limit int, lease time.Duration) ([]models.IndexOutbox, error) {
	db := d.Conn(ctx)
	now := time.Now()

	err := db.Model(&models.IndexOutbox{}).
		Where("status = ? AND updated_at < ?", models.OutboxProcessing, now.Add(-lease)).
		Updates(map[string]any{"status": models.OutboxPending, "updated_at": now}).Error
	if err != nil {
		return nil, err
	}

	var candidates []models.IndexOutbox
	err = db.Where("status = ? AND next_attempt_at <= ?", models.OutboxPending, now).
		Order("id").Limit(limit).Find(&candidates).Error
	if err != nil {
		return nil, err
	}

	claimed := make([]models.IndexOutbox, 0, len(candidates))
	for _, item := range candidates {
		// 条件更新，多个 worker 同时领取时只有一个成功
		res := db.Model(&models.IndexOutbox{}).
			Where("id = ? AND status = ?", item.ID, models.OutboxPending).
			Updates(map[string]any{"status": models.OutboxProcessing, "updated_at": now})
		if res.Error != nil {
			return claimed, res.Error
		}
		if res.RowsAffected == 1 {
			item.Status = models.OutboxProcessing
			claimed = append(claimed, item)
		}
	}
	return claimed, nil
}

// MarkRetry 放回队列，next 之后再处理
func (d *IndexOutboxDAO) MarkRetry(ctx context.Context, ids []int64, attempts int, lastErr string, next time.Time) error {
	return d.Model(ctx).Where("id IN ?", ids).Updates(map[string]any{
		"status":          models.OutboxPending,
		"attempts":        attempts,
		"last_error":      lastErr,
		"next_attempt_at": next,
	}).Error
}

func (d *IndexOutboxDAO) MarkDead(ctx context.Context, ids []int64, attempts int, lastErr string) error {
	return d.Model(ctx).Where("id IN ?", ids).Updates(map[string]any{
		"status":     models.OutboxDead,
		"attempts":   attempts,
		"last_error": lastErr,
	}).Error
}

func (d *IndexOutboxDAO) Delete(ctx context.Context, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}
	return d.Conn(ctx).Where("id IN ?", ids).Delete(&models.IndexOutbox{}).Error
}

type statusCount struct {
	Status string
	Total  int64
}

// Counts 各状态的记录数
func (d *IndexOutboxDAO) Counts(ctx context.Context) (map[string]int64, error) {
	var rows []statusCount
	err := d.Model(ctx).Select("status, COUNT(*) AS total").Group("status").Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	out := map[string]int64{
		models.OutboxPending:    0,
		models.OutboxProcessing: 0,
		models.OutboxDead:       0,
	}
	for _, r := range rows {
		out[r.Status] = r.Total
	}
	return out, nil
}

// RequeueDead 死信重新入队，尝试次数清零
func (d *IndexOutboxDAO) RequeueDead(ctx context.Context) (int64, error) {
	res := d.Model(ctx).Where("status = ?", models.OutboxDead).Updates(map[string]any{
		"status":          models.OutboxPending,
		"attempts":        0,
		"next_attempt_at": time.Now(),
	})
	return res.RowsAffected, res.Error
}
