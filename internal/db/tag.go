package db

import "time"

// Tag 定义了标签模型，Category 区分标签所属的板块
type Tag struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"not null;uniqueIndex:idx_tags_name_category" json:"name"`
	Category  string    `gorm:"not null;default:'';uniqueIndex:idx_tags_name_category" json:"category"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Album 把若干篇 Writing 归为一组，WritingIDs 保持加入顺序
type Album struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	Title         string    `gorm:"not null" json:"title"`
	Description   string    `json:"description"`
	CoverImageURL string    `json:"coverImageUrl"`
	WritingIDs    []uint    `gorm:"serializer:json" json:"writingIds"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// Contains reports whether the album already holds the writing.
func (a Album) Contains(writingID uint) bool {
	for _, id := range a.WritingIDs {
		if id == writingID {
			return true
		}
	}
	return false
}
