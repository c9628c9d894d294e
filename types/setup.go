package types

type SetupConfiguration struct {
	SearchableAttributes []string            `json:"searchable_attributes"`
	FilterableAttributes []string            `json:"filterable_attributes"`
	SortableAttributes   []string            `json:"sortable_attributes"`
	Synonyms             map[string][]string `json:"synonyms"`
}

// SetupResp POST /search-setup/meilisearch
type SetupResp struct {
	Success        bool               `json:"success"`
	Message        string             `json:"message"`
	IndexName      string             `json:"index_name"`
	DocumentsCount int                `json:"documents_count"`
	TaskIDs        []int64            `json:"task_ids"`
	Configuration  SetupConfiguration `json:"configuration"`
}

type EngineStatus struct {
	Status string `json:"status"`
	Host   string `json:"host"`
}

type IndexStatus struct {
	Name           string `json:"name"`
	Exists         bool   `json:"exists"`
	DocumentsCount int64  `json:"documents_count"`
	IsIndexing     bool   `json:"is_indexing"`
}

type OutboxStatus struct {
	Pending    int64 `json:"pending"`
	Processing int64 `json:"processing"`
	Dead       int64 `json:"dead"`
}

// SetupStatusResp GET /search-setup/meilisearch/status
type SetupStatusResp struct {
	Meilisearch EngineStatus `json:"meilisearch"`
	Index       IndexStatus  `json:"index"`
	Outbox      OutboxStatus `json:"outbox"`
}

type RetryDeadResp struct {
	Requeued int64 `json:"requeued"`
}
