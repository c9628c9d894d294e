package dao

import (
	"Memehub/models"
	"context"

	"gorm.io/gorm"
)

type MemeDAO struct {
	Repo[models.Meme]
}

func NewMemeDAO(db *gorm.DB) *MemeDAO {
	return &MemeDAO{Repo: NewRepo[models.Meme](db)}
}

// FindByID 不存在返回 nil, nil
func (d *MemeDAO) FindByID(ctx context.Context, id uint64) (*models.Meme, error) {
	var item models.Meme
	err := d.Conn(ctx).Where("id = ?", id).Limit(1).Find(&item).Error
	if err != nil {
		return nil, err
	}
	if item.ID == 0 {
		return nil, nil
	}
	return &item, nil
}

// FindByIDs 按 id 批量读取，缺失的 id 不出现在结果中
func (d *MemeDAO) FindByIDs(ctx context.Context, ids []uint64) ([]models.Meme, error) {
	var items []models.Meme
	if len(ids) == 0 {
		return items, nil
	}
	err := d.Conn(ctx).Where("id IN ?", ids).Order("id").Find(&items).Error
	return items, err
}

// FindPage 游标分页，返回 id > afterID 的前 limit 条
func (d *MemeDAO) FindPage(ctx context.Context, afterID uint64, limit int) ([]models.Meme, error) {
	var items []models.Meme
	err := d.Conn(ctx).Where("id > ?", afterID).Order("id").Limit(limit).Find(&items).Error
	return items, err
}

// RecomputeLikes 用点赞表的真实数量覆盖 memes.likes，返回最新值
func (d *MemeDAO) RecomputeLikes(ctx context.Context, memeID uint64) (int64, error) {
	db := d.Conn(ctx)
	err := db.Exec(
		"UPDATE memes SET likes = (SELECT COUNT(*) FROM memes_likes WHERE meme_id = ?) WHERE id = ?",
		memeID, memeID,
	).Error
	if err != nil {
		return 0, err
	}

	var likes int64
	if err := db.Model(&models.Meme{}).Select("likes").Where("id = ?", memeID).Scan(&likes).Error; err != nil {
		return 0, err
	}
	return likes, nil
}
