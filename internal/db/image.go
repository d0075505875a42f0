package db

import "time"

// Image 记录一次上传的图片资源，创建后除删除外不再修改。
type Image struct {
	ID               uint   `gorm:"primaryKey"`
	Filename         string `gorm:"size:300;not null"`
	OriginalFilename string `gorm:"size:300;not null"`
	AltText          string `gorm:"size:200"`
	FileSize         int64
	Width            int
	Height           int
	UploadedAt       time.Time `gorm:"autoCreateTime;index"`
}
