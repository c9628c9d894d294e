package database

import (
	"Memehub/config"
	"Memehub/models"
	"Memehub/pkg/log"

	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDB 初始化数据库连接
func NewDB(conf *config.Config) *gorm.DB {
	db, err := gorm.Open(mysql.Open(conf.MySQL.Dsn()), gormConfig(conf.Debug()))
	if err != nil {
		log.L.Fatal("failed to connect database", zap.Error(err))
	}
	log.L.Info("connect database success", zap.String("host", conf.MySQL.Host))
	return db
}

// OpenSQLite 打开本地 sqlite 文件，导出工具与测试使用
func OpenSQLite(path string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(path), gormConfig(false))
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	// sqlite 单连接，避免 :memory: 每个连接各自一份库
	sqlDB.SetMaxOpenConns(1)
	return db, nil
}

func gormConfig(debug bool) *gorm.Config {
	level := logger.Warn
	if debug {
		level = logger.Info
	}
	return &gorm.Config{
		// 唯一键冲突统一翻译为 gorm.ErrDuplicatedKey
		TranslateError: true,
		Logger:         logger.Default.LogMode(level),
	}
}

// MigrateOutbox 只迁移本服务自有的表，CMS 的表结构由平台维护
func MigrateOutbox(db *gorm.DB) error {
	return db.AutoMigrate(&models.IndexOutbox{})
}
