package db

import "time"

// GalleryItem 定义摄影、数字绘画与传统绘画作品模型
type GalleryItem struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	Title       string     `gorm:"not null" json:"title"`
	Description string     `json:"description"`
	Category    string     `gorm:"index" json:"category"` // photography, digital-art, traditional-art
	ImageURL    string     `json:"imageUrl"`
	ImageWidth  int        `json:"imageWidth"`
	ImageHeight int        `json:"imageHeight"`
	Tags        []string   `gorm:"serializer:json" json:"tags"`
	Location    string     `json:"location"`
	Device      string     `json:"device"`
	TakenAt     *time.Time `json:"takenAt"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// PhotoLocation 是摄影作品可选的拍摄地点
type PhotoLocation struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"uniqueIndex;not null" json:"name"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// PhotoDevice 是摄影作品可选的拍摄设备
type PhotoDevice struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"uniqueIndex;not null" json:"name"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
