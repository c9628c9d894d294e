package service

import (
	"context"
	"fmt"
	"strings"

	"Memehub/pkg/meili"
	"Memehub/types"

	"github.com/tidwall/gjson"
)

const (
	highlightPreTag  = "<em>"
	highlightPostTag = "</em>"
	cropLength       = 100
)

var _ ISearchService = (*SearchService)(nil)

type ISearchService interface {
	Search(ctx context.Context, req *types.SearchReq) (*types.SearchResp, error)
	Suggest(ctx context.Context, q string, limit int) ([]types.Suggestion, error)
}

type SearchService struct {
	Engine meili.Engine
}

// ClampLimit nil 取默认值，超出范围截断到 [1, upper]
func ClampLimit(v *int, def, upper int) int {
	if v == nil {
		return def
	}
	return min(max(*v, 1), upper)
}

func quote(v string) string {
	v = strings.ReplaceAll(v, `\`, `\\`)
	return `"` + strings.ReplaceAll(v, `"`, `\"`) + `"`
}

// BuildFilter tags IN [...] 与 creator_id = "..." 用 AND 连接
func BuildFilter(tags []string, creator string) string {
	var filters []string

	quoted := make([]string, 0, len(tags))
	for _, t := range tags {
		if t = strings.TrimSpace(t); t != "" {
			quoted = append(quoted, quote(t))
		}
	}
	if len(quoted) > 0 {
		filters = append(filters, fmt.Sprintf("tags IN [%s]", strings.Join(quoted, ",")))
	}
	if creator = strings.TrimSpace(creator); creator != "" {
		filters = append(filters, "creator_id = "+quote(creator))
	}
	return strings.Join(filters, " AND ")
}

// ParseSort likes_desc,date_created_asc -> [likes:desc date_created:asc]
// 后缀不是 _asc/_desc 的项直接丢弃
func ParseSort(sort string) []string {
	var out []string
	for _, s := range strings.Split(sort, ",") {
		s = strings.TrimSpace(s)
		switch {
		case strings.HasSuffix(s, "_asc") && len(s) > len("_asc"):
			out = append(out, strings.TrimSuffix(s, "_asc")+":asc")
		case strings.HasSuffix(s, "_desc") && len(s) > len("_desc"):
			out = append(out, strings.TrimSuffix(s, "_desc")+":desc")
		}
	}
	return out
}

// ready 引擎健康且索引已创建
func (s *SearchService) ready(ctx context.Context) error {
	status, err := s.Engine.Health(ctx)
	if err != nil {
		return err
	}
	if status != meili.StatusAvailable {
		return fmt.Errorf("%w: status %s", meili.ErrUnavailable, status)
	}
	_, err = s.Engine.Stats(ctx)
	return err
}

func (s *SearchService) Search(ctx context.Context, req *types.SearchReq) (*types.SearchResp, error) {
	if err := s.ready(ctx); err != nil {
		return nil, err
	}

	limit := ClampLimit(req.Limit, types.DefaultSearchLimit, types.MaxSearchLimit)
	offset := 0
	if req.Offset != nil && *req.Offset > 0 {
		offset = *req.Offset
	}

	res, err := s.Engine.Search(ctx, &meili.Query{
		Q:                     req.Q,
		Offset:                int64(offset),
		Limit:                 int64(limit),
		Filter:                BuildFilter(req.Tags, req.Creator),
		Sort:                  ParseSort(req.Sort),
		AttributesToRetrieve:  []string{"*"},
		AttributesToHighlight: []string{"title", "searchable_content"},
		AttributesToCrop:      []string{"searchable_content"},
		CropLength:            cropLength,
		HighlightPreTag:       highlightPreTag,
		HighlightPostTag:      highlightPostTag,
	})
	if err != nil {
		return nil, err
	}

	return &types.SearchResp{
		Hits:             res.Hits,
		Query:            req.Q,
		TotalHits:        res.EstimatedTotalHits,
		ProcessingTimeMs: res.ProcessingTimeMs,
		Pagination: types.Pagination{
			Offset: offset,
			Limit:  limit,
			// 近似值：本页取满即认为还有下一页
			HasNext: len(res.Hits) == limit,
		},
	}, nil
}

func (s *SearchService) Suggest(ctx context.Context, q string, limit int) ([]types.Suggestion, error) {
	out := []types.Suggestion{}
	if strings.TrimSpace(q) == "" {
		return out, nil
	}

	res, err := s.Engine.Search(ctx, &meili.Query{
		Q:                     q,
		Limit:                 int64(limit),
		AttributesToRetrieve:  []string{"id", "title"},
		AttributesToHighlight: []string{"title"},
		HighlightPreTag:       highlightPreTag,
		HighlightPostTag:      highlightPostTag,
	})
	if err != nil {
		return nil, err
	}

	for _, hit := range res.Hits {
		title := gjson.GetBytes(hit, "title").String()
		highlighted := gjson.GetBytes(hit, "_formatted.title").String()
		if highlighted == "" {
			highlighted = title
		}
		id := gjson.GetBytes(hit, "id").Raw
		if id == "" {
			id = "null"
		}
		out = append(out, types.Suggestion{
			ID:          []byte(id),
			Title:       title,
			Highlighted: highlighted,
		})
	}
	return out, nil
}
