package db

import (
	"time"

	"gorm.io/datatypes"
)

// CVData 保存简历页展示的数据，全站至多一条
// Experience/Education 为前端自定义结构的 JSON 数组
// FileURL 指向可下载的简历文件
type CVData struct {
	ID         uint           `gorm:"primaryKey" json:"id"`
	FullName   string         `gorm:"size:120" json:"fullName"`
	Headline   string         `gorm:"size:200" json:"headline"`
	Summary    string         `gorm:"type:text" json:"summary"`
	Email      string         `gorm:"size:255" json:"email"`
	Phone      string         `gorm:"size:50" json:"phone"`
	Location   string         `gorm:"size:120" json:"location"`
	Website    string         `gorm:"size:255" json:"website"`
	Skills     []string       `gorm:"serializer:json" json:"skills"`
	Experience datatypes.JSON `json:"experience"`
	Education  datatypes.JSON `json:"education"`
	FileURL    string         `gorm:"size:255" json:"fileUrl"`
	CreatedAt  time.Time      `json:"createdAt"`
	UpdatedAt  time.Time      `json:"updatedAt"`
}

// TableName 返回自定义表名，单例数据不使用复数
func (CVData) TableName() string {
	return "cv_data"
}
