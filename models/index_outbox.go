package models

import (
	"time"

	"gorm.io/datatypes"
)

const (
	OutboxOpUpsert = "upsert"
	OutboxOpDelete = "delete"

	OutboxPending    = "pending"
	OutboxProcessing = "processing"
	OutboxDead       = "dead"
)

// 变更来源
const (
	SourceCreate   = "create"
	SourceUpdate   = "update"
	SourceDelete   = "delete"
	SourceLike     = "like"
	SourceBackfill = "backfill"
)

// IndexOutbox 待同步到搜索索引的变更，处理成功后删除
type IndexOutbox struct {
	ID            int64          `gorm:"column:id;primaryKey;autoIncrement:false" json:"id"`
	MemeID        uint64         `gorm:"column:meme_id;not null;index" json:"meme_id"`
	Op            string         `gorm:"column:op;size:16;not null" json:"op"`
	Source        string         `gorm:"column:source;size:16;not null" json:"source"`
	Payload       datatypes.JSON `gorm:"column:payload" json:"payload"`
	Status        string         `gorm:"column:status;size:16;not null;default:pending;index:idx_status_next,priority:1" json:"status"`
	Attempts      int            `gorm:"column:attempts;not null;default:0" json:"attempts"`
	LastError     string         `gorm:"column:last_error;type:text" json:"last_error"`
	NextAttemptAt time.Time      `gorm:"column:next_attempt_at;index:idx_status_next,priority:2" json:"next_attempt_at"`
	CreatedAt     time.Time      `gorm:"column:created_at" json:"created_at"`
	UpdatedAt     time.Time      `gorm:"column:updated_at" json:"updated_at"`
}

func (IndexOutbox) TableName() string { return "search_index_outbox" }
