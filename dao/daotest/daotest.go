// Package daotest 内存 sqlite 与测试数据
package daotest

import (
	"fmt"
	"testing"
	"time"

	"Memehub/models"
	"Memehub/pkg/database"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// NewDB 每个测试一份独立的内存库，包含全部表
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := database.OpenSQLite(dsn)
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.Meme{},
		&models.User{},
		&models.Tag{},
		&models.MemeTag{},
		&models.MemeLike{},
		&models.IndexOutbox{},
	))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

type MemeOption func(*models.Meme)

func WithStatus(status string) MemeOption {
	return func(m *models.Meme) { m.Status = status }
}

func WithCreator(userID string) MemeOption {
	return func(m *models.Meme) { m.UserCreated = &userID }
}

func WithLikes(n int64) MemeOption {
	return func(m *models.Meme) { m.Likes = models.Counter(n) }
}

// SeedMeme 默认已发布
func SeedMeme(t *testing.T, db *gorm.DB, id uint64, title, description string, opts ...MemeOption) *models.Meme {
	t.Helper()
	created := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	m := &models.Meme{
		ID:          id,
		Status:      models.MemeStatusPublished,
		Title:       title,
		Description: description,
		DateCreated: &created,
	}
	for _, opt := range opts {
		opt(m)
	}
	require.NoError(t, db.Create(m).Error)
	return m
}

func SeedUser(t *testing.T, db *gorm.DB, id, first, last string) *models.User {
	t.Helper()
	u := &models.User{ID: id, FirstName: first, LastName: last, Email: id + "@example.com"}
	require.NoError(t, db.Create(u).Error)
	return u
}

// SeedTags 为 meme 关联标签，标签不存在时创建
func SeedTags(t *testing.T, db *gorm.DB, memeID uint64, names ...string) {
	t.Helper()
	for _, name := range names {
		var tag models.Tag
		require.NoError(t, db.Where(models.Tag{Name: name}).FirstOrCreate(&tag).Error)
		require.NoError(t, db.Create(&models.MemeTag{MemeID: memeID, TagID: tag.ID}).Error)
	}
}

// SetRaw 直接写列值，用于构造脏数据
func SetRaw(t *testing.T, db *gorm.DB, table string, id uint64, column string, value any) {
	t.Helper()
	require.NoError(t, db.Exec(fmt.Sprintf("UPDATE %s SET %s = ? WHERE id = ?", table, column), value, id).Error)
}
