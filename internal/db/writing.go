package db

import (
	"regexp"
	"strings"
	"time"
	"unicode/utf8"
)

// PinnedTag 是写在 Writing.Tags 中的保留标签，用于把一篇作品置顶。
const PinnedTag = "__pinned__"

const maxExcerptRunes = 160

// Writing 定义了创作文字作品模型
type Writing struct {
	ID            uint       `gorm:"primaryKey" json:"id"`
	Title         string     `gorm:"not null" json:"title"`
	Content       string     `gorm:"type:text" json:"content"`
	Excerpt       string     `json:"excerpt"`
	Category      string     `gorm:"index" json:"category"`
	Tags          []string   `gorm:"serializer:json" json:"tags"`
	CoverImageURL string     `json:"coverImageUrl"`
	SortOrder     int        `gorm:"not null;default:0" json:"sortOrder"`
	TrashedAt     *time.Time `gorm:"column:deleted_at;index" json:"deletedAt"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}

// Pinned reports whether the writing carries the reserved pin tag.
func (w Writing) Pinned() bool {
	for _, tag := range w.Tags {
		if tag == PinnedTag {
			return true
		}
	}
	return false
}

// Trashed reports whether the writing has been moved to the trash.
func (w Writing) Trashed() bool {
	return w.TrashedAt != nil
}

var (
	markdownHeadingPrefix = regexp.MustCompile(`^#{1,6}\s+`)
	markdownEmphasis      = regexp.MustCompile(`(\*{1,3}|_{1,3})([^*_]+)(\*{1,3}|_{1,3})`)
	markdownLink          = regexp.MustCompile(`!?\[([^\]]*)\]\([^)]*\)`)
)

// DeriveExcerpt 从正文中提取首个非空段落作为摘要，去掉标题符号与强调标记。
func DeriveExcerpt(content string) string {
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		line = markdownHeadingPrefix.ReplaceAllString(line, "")
		line = markdownLink.ReplaceAllString(line, "$1")
		line = markdownEmphasis.ReplaceAllString(line, "$2")
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if utf8.RuneCountInString(line) > maxExcerptRunes {
			line = string([]rune(line)[:maxExcerptRunes]) + "…"
		}
		return line
	}
	return ""
}
