package config

import "time"

const (
	defaultMeiliHost   = "http://localhost:7700"
	defaultIndexPrefix = "directus_"
)

type Meilisearch struct {
	Host        string `json:"host" yaml:"host"`
	ApiKey      string `json:"api_key" yaml:"api_key"`
	IndexPrefix string `json:"index_prefix" yaml:"index_prefix"`
	// Timeout 单次请求超时，0 表示使用默认值
	Timeout time.Duration `json:"timeout" yaml:"timeout"`
	// BackfillBatch 全量导入时每批读取的 meme 数
	BackfillBatch int `json:"backfill_batch" yaml:"backfill_batch"`
}

// IndexName memes 索引名: <prefix>memes
func (m *Meilisearch) IndexName() string {
	return m.IndexPrefix + "memes"
}

func ProvideMeilisearchConfig(cfg *Config) *Meilisearch {
	return cfg.Meilisearch
}
