package meili

import (
	"context"
	"encoding/json"
	"errors"
)

//go:generate mockgen -destination=mocks/mock_engine.go -package=mocks -source=engine.go Engine

var (
	// ErrIndexNotFound 索引尚未创建
	ErrIndexNotFound = errors.New("index not found")
	// ErrUnavailable 引擎不可达或健康检查未通过
	ErrUnavailable = errors.New("search engine unavailable")
	// ErrInvalidRequest 引擎拒绝的请求，如对不可排序字段排序
	ErrInvalidRequest = errors.New("invalid search request")
)

const StatusAvailable = "available"

// Settings 索引配置
type Settings struct {
	Searchable []string            `json:"searchableAttributes"`
	Filterable []string            `json:"filterableAttributes"`
	Sortable   []string            `json:"sortableAttributes"`
	Synonyms   map[string][]string `json:"synonyms"`
}

type Stats struct {
	NumberOfDocuments int64 `json:"numberOfDocuments"`
	IsIndexing        bool  `json:"isIndexing"`
}

type Query struct {
	Q                     string
	Offset                int64
	Limit                 int64
	Filter                string
	Sort                  []string
	AttributesToRetrieve  []string
	AttributesToHighlight []string
	AttributesToCrop      []string
	CropLength            int64
	HighlightPreTag       string
	HighlightPostTag      string
}

// Result hits 保持原始 JSON，调用方按需读取字段
type Result struct {
	Hits               []json.RawMessage
	EstimatedTotalHits int64
	ProcessingTimeMs   int64
}

// Engine 单个索引上的操作，进程内只构造一次
type Engine interface {
	Host() string
	IndexName() string
	Health(ctx context.Context) (string, error)
	Stats(ctx context.Context) (*Stats, error)
	// Configure 依次提交 searchable/filterable/sortable/synonyms，返回任务 id
	Configure(ctx context.Context, s *Settings) ([]int64, error)
	AddDocuments(ctx context.Context, docs any) (int64, error)
	UpdateDocuments(ctx context.Context, docs any) (int64, error)
	DeleteDocuments(ctx context.Context, ids []string) (int64, error)
	Search(ctx context.Context, q *Query) (*Result, error)
}
