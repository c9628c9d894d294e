package dao

import (
	"Memehub/models"
	"context"

	"gorm.io/gorm"
)

type MemeLikeDAO struct {
	Repo[models.MemeLike]
}

func NewMemeLikeDAO(db *gorm.DB) *MemeLikeDAO {
	return &MemeLikeDAO{Repo: NewRepo[models.MemeLike](db)}
}

// Remove 删除点赞记录，返回删除行数
func (d *MemeLikeDAO) Remove(ctx context.Context, memeID uint64, userID string) (int64, error) {
	res := d.Conn(ctx).Where("meme_id = ? AND user_id = ?", memeID, userID).Delete(&models.MemeLike{})
	return res.RowsAffected, res.Error
}

// Add 并发插入同一对 (meme, user) 时返回 gorm.ErrDuplicatedKey
func (d *MemeLikeDAO) Add(ctx context.Context, memeID uint64, userID string) error {
	return d.Create(ctx, &models.MemeLike{MemeID: memeID, UserID: userID})
}

func (d *MemeLikeDAO) IsLiked(ctx context.Context, memeID uint64, userID string) (bool, error) {
	return d.IsExist(ctx, "meme_id = ? AND user_id = ?", memeID, userID)
}

func (d *MemeLikeDAO) Count(ctx context.Context, memeID uint64) (int64, error) {
	return d.FindCount(ctx, "meme_id = ?", memeID)
}
