// Package meilitest 内存版搜索引擎，供同步与接口测试使用
package meilitest

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"sync"

	"Memehub/pkg/meili"
)

type Engine struct {
	mu       sync.Mutex
	docs     map[string]map[string]any
	settings *meili.Settings
	created  bool
	task     int64

	// Err 非空时所有写操作返回该错误
	Err error
	// Down 模拟引擎不可达
	Down bool
	// SearchErr 非空时 Search 返回该错误
	SearchErr error
	// Calls 写操作计数，按方法名
	Calls map[string]int
}

var _ meili.Engine = (*Engine)(nil)

func New() *Engine {
	return &Engine{
		docs:    make(map[string]map[string]any),
		created: true,
		Calls:   make(map[string]int),
	}
}

// NewMissing 索引尚未创建，首次写入后自动创建
func NewMissing() *Engine {
	e := New()
	e.created = false
	return e
}

func (e *Engine) Host() string      { return "http://meilitest" }
func (e *Engine) IndexName() string { return "test_memes" }

func (e *Engine) Health(context.Context) (string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.Down {
		return "", meili.ErrUnavailable
	}
	return meili.StatusAvailable, nil
}

func (e *Engine) Stats(context.Context) (*meili.Stats, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.Down {
		return nil, meili.ErrUnavailable
	}
	if !e.created {
		return nil, meili.ErrIndexNotFound
	}
	return &meili.Stats{NumberOfDocuments: int64(len(e.docs))}, nil
}

func (e *Engine) Configure(_ context.Context, s *meili.Settings) ([]int64, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.writeErr("Configure"); err != nil {
		return nil, err
	}
	e.created = true
	e.settings = s
	ids := make([]int64, 0, 4)
	for i := 0; i < 4; i++ {
		ids = append(ids, e.nextTask())
	}
	return ids, nil
}

func (e *Engine) AddDocuments(_ context.Context, docs any) (int64, error) {
	return e.put("AddDocuments", docs, false)
}

func (e *Engine) UpdateDocuments(_ context.Context, docs any) (int64, error) {
	return e.put("UpdateDocuments", docs, true)
}

func (e *Engine) DeleteDocuments(_ context.Context, ids []string) (int64, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.writeErr("DeleteDocuments"); err != nil {
		return 0, err
	}
	for _, id := range ids {
		delete(e.docs, id)
	}
	return e.nextTask(), nil
}

// Search 按 id 排序，q 做大小写不敏感的子串匹配
func (e *Engine) Search(_ context.Context, q *meili.Query) (*meili.Result, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.Down {
		return nil, meili.ErrUnavailable
	}
	if !e.created {
		return nil, meili.ErrIndexNotFound
	}
	if e.SearchErr != nil {
		return nil, e.SearchErr
	}

	keys := make([]string, 0, len(e.docs))
	for k := range e.docs {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	needle := strings.ToLower(q.Q)
	var matched []map[string]any
	for _, k := range keys {
		doc := e.docs[k]
		if needle != "" {
			text := strings.ToLower(fmt.Sprint(doc["title"], " ", doc["searchable_content"]))
			if !strings.Contains(text, needle) {
				continue
			}
		}
		matched = append(matched, doc)
	}

	total := int64(len(matched))
	start := min(q.Offset, total)
	end := total
	if q.Limit > 0 {
		end = min(start+q.Limit, total)
	}

	hits := make([]json.RawMessage, 0, end-start)
	for _, doc := range matched[start:end] {
		hit := make(map[string]any, len(doc)+1)
		for k, v := range doc {
			hit[k] = v
		}
		if title, ok := doc["title"]; ok {
			hit["_formatted"] = map[string]any{"title": title}
		}
		raw, err := json.Marshal(hit)
		if err != nil {
			return nil, err
		}
		hits = append(hits, raw)
	}
	return &meili.Result{Hits: hits, EstimatedTotalHits: total}, nil
}

// Doc 读取已索引文档
func (e *Engine) Doc(id string) (map[string]any, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	d, ok := e.docs[id]
	return d, ok
}

func (e *Engine) Len() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.docs)
}

func (e *Engine) Settings() *meili.Settings {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.settings
}

func (e *Engine) SetErr(err error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.Err = err
}

func (e *Engine) CallCount(method string) int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.Calls[method]
}

func (e *Engine) put(method string, docs any, merge bool) (int64, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.writeErr(method); err != nil {
		return 0, err
	}

	raw, err := json.Marshal(docs)
	if err != nil {
		return 0, err
	}
	var list []map[string]any
	if err := json.Unmarshal(raw, &list); err != nil {
		return 0, err
	}
	e.created = true
	for _, d := range list {
		id := fmt.Sprint(d["id"])
		if old, ok := e.docs[id]; ok && merge {
			for k, v := range d {
				old[k] = v
			}
			continue
		}
		e.docs[id] = d
	}
	return e.nextTask(), nil
}

func (e *Engine) writeErr(method string) error {
	e.Calls[method]++
	if e.Down {
		return meili.ErrUnavailable
	}
	return e.Err
}

func (e *Engine) nextTask() int64 {
	e.task++
	return e.task
}
