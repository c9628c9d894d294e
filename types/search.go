package types

import "encoding/json"

const (
	DefaultSearchLimit  = 20
	MaxSearchLimit      = 100
	DefaultSuggestLimit = 5
	MaxSuggestLimit     = 20
)

// SearchReq GET /search/memes
type SearchReq struct {
	Q       string   `form:"q"`
	Limit   *int     `form:"limit"`
	Offset  *int     `form:"offset"`
	Tags    []string `form:"tags"`
	Creator string   `form:"creator"`
	Sort    string   `form:"sort"`
}

type Pagination struct {
	Offset  int  `json:"offset"`
	Limit   int  `json:"limit"`
	HasNext bool `json:"has_next"`
}

// SearchResp hits 原样透传引擎返回的文档，包含 _formatted
type SearchResp struct {
	Hits             []json.RawMessage `json:"hits"`
	Query            string            `json:"query"`
	TotalHits        int64             `json:"total_hits"`
	ProcessingTimeMs int64             `json:"processing_time_ms"`
	Pagination       Pagination        `json:"pagination"`
}

type SuggestReq struct {
	Q     string `form:"q"`
	Limit *int   `form:"limit"`
}

type Suggestion struct {
	ID          json.RawMessage `json:"id"`
	Title       string          `json:"title"`
	Highlighted string          `json:"highlighted"`
}

type SuggestResp struct {
	Suggestions []Suggestion `json:"suggestions"`
}
