package db

import "gorm.io/gorm"

// User 定义了后台管理员账号
type User struct {
	gorm.Model
	Username string `gorm:"size:80;unique;not null"`
	Password string `gorm:"size:255;not null"`
}
