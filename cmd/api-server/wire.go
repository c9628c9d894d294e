//go:build wireinject
// +build wireinject

package main

import (
	"Memehub/config"
	"Memehub/dao"
	"Memehub/handler"
	"Memehub/pkg/client"
	"Memehub/pkg/database"
	"Memehub/pkg/meili"
	"Memehub/pkg/rocketmq"
	"Memehub/pkg/server"
	"Memehub/pkg/socket"
	"Memehub/service"

	"github.com/google/wire"
)

func InitServer(cfg *config.Config) *server.AppProvider {
	wire.Build(
		database.NewDB,
		client.NewRedisClient,
		config.ProvideMeilisearchConfig,
		config.ProvideRocketMQConfig,

		meili.NewClient,
		wire.Bind(new(meili.Engine), new(*meili.Client)),
		rocketmq.InitProducer,
		wire.Bind(new(rocketmq.Sender), new(*rocketmq.Rocketmq)),
		socket.NewHub,

		dao.ProviderSet,
		service.ProviderSet,

		wire.Struct(new(handler.Like), "*"),
		wire.Struct(new(handler.SearchSetup), "*"),
		wire.Struct(new(handler.Search), "*"),
		wire.Struct(new(handler.Hook), "*"),
		wire.Struct(new(handler.WebSocket), "*"),

		server.NewGinEngine,
		wire.Struct(new(server.Handlers), "*"),
		wire.Struct(new(server.AppProvider), "*"),
	)
	return nil
}
