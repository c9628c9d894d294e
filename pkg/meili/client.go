package meili

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"Memehub/config"
	"Memehub/pkg/log"

	"github.com/meilisearch/meilisearch-go"
	"go.uber.org/zap"
)

const primaryKey = "id"

type Client struct {
	host      string
	indexName string
	sm        meilisearch.ServiceManager
	index     meilisearch.IndexManager
}

var _ Engine = (*Client)(nil)

// NewClient 进程启动时构造一次，所有 handler 共享
func NewClient(cfg *config.Meilisearch) *Client {
	opts := []meilisearch.Option{
		meilisearch.WithCustomClient(&http.Client{Timeout: cfg.Timeout}),
	}
	if cfg.ApiKey != "" {
		opts = append(opts, meilisearch.WithAPIKey(cfg.ApiKey))
	}
	sm := meilisearch.New(cfg.Host, opts...)
	log.L.Info("meilisearch client ready", zap.String("host", cfg.Host), zap.String("index", cfg.IndexName()))

	return &Client{
		host:      cfg.Host,
		indexName: cfg.IndexName(),
		sm:        sm,
		index:     sm.Index(cfg.IndexName()),
	}
}

func (c *Client) Host() string      { return c.host }
func (c *Client) IndexName() string { return c.indexName }

func (c *Client) Health(ctx context.Context) (string, error) {
	h, err := c.sm.HealthWithContext(ctx)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return h.Status, nil
}

func (c *Client) Stats(ctx context.Context) (*Stats, error) {
	st, err := c.index.GetStatsWithContext(ctx)
	if err != nil {
		return nil, translate(err)
	}
	return &Stats{NumberOfDocuments: st.NumberOfDocuments, IsIndexing: st.IsIndexing}, nil
}

func (c *Client) Configure(ctx context.Context, s *Settings) ([]int64, error) {
	steps := []func() (*meilisearch.TaskInfo, error){
		func() (*meilisearch.TaskInfo, error) {
			return c.index.UpdateSearchableAttributesWithContext(ctx, &s.Searchable)
		},
		func() (*meilisearch.TaskInfo, error) {
			return c.index.UpdateFilterableAttributesWithContext(ctx, &s.Filterable)
		},
		func() (*meilisearch.TaskInfo, error) {
			return c.index.UpdateSortableAttributesWithContext(ctx, &s.Sortable)
		},
		func() (*meilisearch.TaskInfo, error) {
			return c.index.UpdateSynonymsWithContext(ctx, &s.Synonyms)
		},
	}

	// 同一索引上的任务按提交顺序执行，这里保持串行提交
	ids := make([]int64, 0, len(steps))
	for _, step := range steps {
		task, err := step()
		if err != nil {
			return ids, translate(err)
		}
		ids = append(ids, task.TaskUID)
	}
	return ids, nil
}

func (c *Client) AddDocuments(ctx context.Context, docs any) (int64, error) {
	task, err := c.index.AddDocumentsWithContext(ctx, docs, primaryKey)
	if err != nil {
		return 0, translate(err)
	}
	return task.TaskUID, nil
}

func (c *Client) UpdateDocuments(ctx context.Context, docs any) (int64, error) {
	task, err := c.index.UpdateDocumentsWithContext(ctx, docs, primaryKey)
	if err != nil {
		return 0, translate(err)
	}
	return task.TaskUID, nil
}

// DeleteDocuments 不存在的 id 由引擎忽略
func (c *Client) DeleteDocuments(ctx context.Context, ids []string) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	task, err := c.index.DeleteDocumentsWithContext(ctx, ids)
	if err != nil {
		return 0, translate(err)
	}
	return task.TaskUID, nil
}

func (c *Client) Search(ctx context.Context, q *Query) (*Result, error) {
	req := &meilisearch.SearchRequest{
		Offset:                q.Offset,
		Limit:                 q.Limit,
		Sort:                  q.Sort,
		AttributesToRetrieve:  q.AttributesToRetrieve,
		AttributesToHighlight: q.AttributesToHighlight,
		AttributesToCrop:      q.AttributesToCrop,
		CropLength:            q.CropLength,
		HighlightPreTag:       q.HighlightPreTag,
		HighlightPostTag:      q.HighlightPostTag,
	}
	if q.Filter != "" {
		req.Filter = q.Filter
	}

	resp, err := c.index.SearchWithContext(ctx, q.Q, req)
	if err != nil {
		return nil, translate(err)
	}

	raw, err := json.Marshal(resp.Hits)
	if err != nil {
		return nil, err
	}
	var hits []json.RawMessage
	if err := json.Unmarshal(raw, &hits); err != nil {
		return nil, err
	}
	if hits == nil {
		hits = []json.RawMessage{}
	}
	return &Result{
		Hits:               hits,
		EstimatedTotalHits: resp.EstimatedTotalHits,
		ProcessingTimeMs:   resp.ProcessingTimeMs,
	}, nil
}

// translate 把引擎错误归类为 ErrIndexNotFound / ErrUnavailable / ErrInvalidRequest
func translate(err error) error {
	var me *meilisearch.Error
	if errors.As(err, &me) {
		if me.MeilisearchApiError.Code == "index_not_found" || me.StatusCode == http.StatusNotFound {
			return fmt.Errorf("%w: %v", ErrIndexNotFound, err)
		}
		if me.StatusCode == 0 || me.StatusCode >= http.StatusInternalServerError {
			return fmt.Errorf("%w: %v", ErrUnavailable, err)
		}
		if me.StatusCode >= http.StatusBadRequest && me.MeilisearchApiError.Message != "" {
			return fmt.Errorf("%w: %s", ErrInvalidRequest, me.MeilisearchApiError.Message)
		}
		return err
	}
	return fmt.Errorf("%w: %v", ErrUnavailable, err)
}
