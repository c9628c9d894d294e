//go:build wireinject
// +build wireinject

package main

import (
	"Memehub/config"
	"Memehub/dao"
	"Memehub/indexer"
	"Memehub/pkg/database"
	"Memehub/pkg/meili"
	"Memehub/pkg/rocketmq"
	"Memehub/service"

	"github.com/google/wire"
)

func InitIndexer(cfg *config.Config) *indexer.AppProvider {
	wire.Build(
		database.NewDB,
		config.ProvideMeilisearchConfig,
		config.ProvideRocketMQConfig,
		config.ProvideOutboxConfig,

		meili.NewClient,
		wire.Bind(new(meili.Engine), new(*meili.Client)),
		rocketmq.InitProducer,
		wire.Bind(new(rocketmq.Sender), new(*rocketmq.Rocketmq)),

		dao.ProviderSet,
		service.ProviderSet,
		indexer.ProviderSet,
	)
	return nil
}
