package model

import "time"

// User 用户模型
type User struct {
	ID           int64     `gorm:"primaryKey;autoIncrement;comment:用户标识" json:"id"`
	UserName     string    `gorm:"size:64;not null;uniqueIndex:uq_users_user_name;comment:用户名(小写)" json:"userName"`
	Email        string    `gorm:"size:255;not null;uniqueIndex:uq_users_email;comment:邮箱(小写)" json:"email"`
	FullName     string    `gorm:"size:255;not null;index:idx_users_full_name;comment:全名" json:"fullName"`
	Password     string    `gorm:"size:255;not null;comment:密码哈希" json:"-"`
	Avatar       Asset     `gorm:"embedded;embeddedPrefix:avatar_" json:"avatar"`
	CoverImage   Asset     `gorm:"embedded;embeddedPrefix:cover_" json:"coverImage"`
	RefreshToken *string   `gorm:"size:1000;comment:当前刷新令牌" json:"-"`
	CreatedAt    time.Time `gorm:"autoCreateTime;comment:创建时间" json:"createdAt"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime;comment:更新时间" json:"updatedAt"`
}

func (User) TableName() string {
	return "users"
}
