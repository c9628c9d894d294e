package models

import "time"

// MemeLike 点赞记录
// 对应表 memes_likes
// 唯一键: meme_id + user_id，存在即已点赞
type MemeLike struct {
	ID          uint64    `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	MemeID      uint64    `gorm:"column:meme_id;not null;uniqueIndex:uk_meme_user,priority:1" json:"meme_id"`
	UserID      string    `gorm:"column:user_id;size:36;not null;uniqueIndex:uk_meme_user,priority:2" json:"user_id"`
	DateCreated time.Time `gorm:"column:date_created;autoCreateTime" json:"date_created"`
}

func (MemeLike) TableName() string { return "memes_likes" }
