//go:build wireinject

package indexer

import (
	"Memehub/indexer/process"
	"Memehub/pkg/rocketmq"

	"github.com/google/wire"
)

var ProviderSet = wire.NewSet(
	rocketmq.InitConsumer,
	NewGinEngine,

	// process
	wire.Struct(new(process.SubServers), "*"),
	process.NewServer,
	wire.Struct(new(process.OutboxSubscribe), "*"),
	wire.Struct(new(process.LifecycleSubscribe), "*"),
	wire.Struct(new(process.HealthSubscribe), "*"),

	// AppProvider
	wire.Struct(new(AppProvider), "*"),
)
