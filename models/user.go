package models

import "strings"

// User 平台用户表 directus_users
type User struct {
	ID        string `gorm:"column:id;primaryKey;size:36" json:"id"`
	FirstName string `gorm:"column:first_name;size:50" json:"first_name"`
	LastName  string `gorm:"column:last_name;size:50" json:"last_name"`
	Email     string `gorm:"column:email;size:128" json:"email"`
}

func (User) TableName() string { return "directus_users" }

// DisplayName "first last"，缺失部分省略
func (u *User) DisplayName() string {
	if u == nil {
		return ""
	}
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}
