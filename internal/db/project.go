package db

import "time"

// Project 定义作品集项目模型（UI/UX、数据库、Web 开发、AI/ML 等板块）
type Project struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Title        string    `gorm:"not null" json:"title"`
	Description  string    `json:"description"`
	Category     string    `gorm:"index" json:"category"`
	ImageURL     string    `json:"imageUrl"`
	Technologies []string  `gorm:"serializer:json" json:"technologies"`
	LiveURL      string    `json:"liveUrl"`
	GithubURL    string    `json:"githubUrl"`
	Details      string    `gorm:"type:text" json:"details"`
	Featured     bool      `gorm:"not null;default:false" json:"featured"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}
