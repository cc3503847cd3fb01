package storage

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/portfolio/internal/db"
	"gorm.io/datatypes"
)

// ProjectInput represents fields accepted when creating a project.
type ProjectInput struct {
	Title        string   `json:"title" yaml:"title"`
	Description  string   `json:"description" yaml:"description"`
	Category     string   `json:"category" yaml:"category"`
	ImageURL     string   `json:"imageUrl" yaml:"imageUrl"`
	Technologies []string `json:"technologies" yaml:"technologies"`
	LiveURL      string   `json:"liveUrl" yaml:"liveUrl"`
	GithubURL    string   `json:"githubUrl" yaml:"githubUrl"`
	Details      string   `json:"details" yaml:"details"`
	Featured     bool     `json:"featured" yaml:"featured"`
}

// ProjectPatch carries the fields of a partial update; nil means unchanged.
type ProjectPatch struct {
	Title        *string   `json:"title"`
	Description  *string   `json:"description"`
	Category     *string   `json:"category"`
	ImageURL     *string   `json:"imageUrl"`
	Technologies *[]string `json:"technologies"`
	LiveURL      *string   `json:"liveUrl"`
	GithubURL    *string   `json:"githubUrl"`
	Details      *string   `json:"details"`
	Featured     *bool     `json:"featured"`
}

func (in ProjectInput) validate() error {
	return requireText("title", in.Title)
}

func (in ProjectInput) record() db.Project {
	return db.Project{
		Title:        strings.TrimSpace(in.Title),
		Description:  strings.TrimSpace(in.Description),
		Category:     strings.TrimSpace(in.Category),
		ImageURL:     strings.TrimSpace(in.ImageURL),
		Technologies: normalizeList(in.Technologies),
		LiveURL:      strings.TrimSpace(in.LiveURL),
		GithubURL:    strings.TrimSpace(in.GithubURL),
		Details:      in.Details,
		Featured:     in.Featured,
	}
}

func (p ProjectPatch) validate() error {
	return requireTextPtr("title", p.Title)
}

func (p ProjectPatch) apply(item *db.Project) {
	setTrimmed(&item.Title, p.Title)
	setTrimmed(&item.Description, p.Description)
	setTrimmed(&item.Category, p.Category)
	setTrimmed(&item.ImageURL, p.ImageURL)
	setList(&item.Technologies, p.Technologies)
	setTrimmed(&item.LiveURL, p.LiveURL)
	setTrimmed(&item.GithubURL, p.GithubURL)
	if p.Details != nil {
		item.Details = *p.Details
	}
	if p.Featured != nil {
		item.Featured = *p.Featured
	}
}

// GalleryItemInput represents fields accepted when creating a gallery item.
type GalleryItemInput struct {
	Title       string     `json:"title" yaml:"title"`
	Description string     `json:"description" yaml:"description"`
	Category    string     `json:"category" yaml:"category"`
	ImageURL    string     `json:"imageUrl" yaml:"imageUrl"`
	ImageWidth  int        `json:"imageWidth" yaml:"imageWidth"`
	ImageHeight int        `json:"imageHeight" yaml:"imageHeight"`
	Tags        []string   `json:"tags" yaml:"tags"`
	Location    string     `json:"location" yaml:"location"`
	Device      string     `json:"device" yaml:"device"`
	TakenAt     *time.Time `json:"takenAt" yaml:"takenAt"`
}

// GalleryItemPatch carries the fields of a partial gallery update.
type GalleryItemPatch struct {
	Title       *string             `json:"title"`
	Description *string             `json:"description"`
	Category    *string             `json:"category"`
	ImageURL    *string             `json:"imageUrl"`
	ImageWidth  *int                `json:"imageWidth"`
	ImageHeight *int                `json:"imageHeight"`
	Tags        *[]string           `json:"tags"`
	Location    *string             `json:"location"`
	Device      *string             `json:"device"`
	TakenAt     Nullable[time.Time] `json:"takenAt"`
}

func (in GalleryItemInput) validate() error {
	if err := requireText("title", in.Title); err != nil {
		return err
	}
	if err := requireText("imageUrl", in.ImageURL); err != nil {
		return err
	}
	if in.ImageWidth < 0 || in.ImageHeight < 0 {
		return fmt.Errorf("%w: image dimensions must not be negative", ErrInvalidInput)
	}
	return nil
}

func (in GalleryItemInput) record() db.GalleryItem {
	item := db.GalleryItem{
		Title:       strings.TrimSpace(in.Title),
		Description: strings.TrimSpace(in.Description),
		Category:    strings.TrimSpace(in.Category),
		ImageURL:    strings.TrimSpace(in.ImageURL),
		ImageWidth:  in.ImageWidth,
		ImageHeight: in.ImageHeight,
		Tags:        normalizeList(in.Tags),
		Location:    strings.TrimSpace(in.Location),
		Device:      strings.TrimSpace(in.Device),
	}
	if in.TakenAt != nil {
		takenAt := *in.TakenAt
		item.TakenAt = &takenAt
	}
	return item
}

func (p GalleryItemPatch) validate() error {
	if err := requireTextPtr("title", p.Title); err != nil {
		return err
	}
	if err := requireTextPtr("imageUrl", p.ImageURL); err != nil {
		return err
	}
	if (p.ImageWidth != nil && *p.ImageWidth < 0) || (p.ImageHeight != nil && *p.ImageHeight < 0) {
		return fmt.Errorf("%w: image dimensions must not be negative", ErrInvalidInput)
	}
	return nil
}

func (p GalleryItemPatch) apply(item *db.GalleryItem) {
	setTrimmed(&item.Title, p.Title)
	setTrimmed(&item.Description, p.Description)
	setTrimmed(&item.Category, p.Category)
	setTrimmed(&item.ImageURL, p.ImageURL)
	if p.ImageWidth != nil {
		item.ImageWidth = *p.ImageWidth
	}
	if p.ImageHeight != nil {
		item.ImageHeight = *p.ImageHeight
	}
	setList(&item.Tags, p.Tags)
	setTrimmed(&item.Location, p.Location)
	setTrimmed(&item.Device, p.Device)
	p.TakenAt.applyTo(&item.TakenAt)
}

// CVInput represents the singleton CV record.
type CVInput struct {
	FullName   string         `json:"fullName" yaml:"fullName"`
	Headline   string         `json:"headline" yaml:"headline"`
	Summary    string         `json:"summary" yaml:"summary"`
	Email      string         `json:"email" yaml:"email"`
	Phone      string         `json:"phone" yaml:"phone"`
	Location   string         `json:"location" yaml:"location"`
	Website    string         `json:"website" yaml:"website"`
	Skills     []string       `json:"skills" yaml:"skills"`
	Experience datatypes.JSON `json:"experience" yaml:"-"`
	Education  datatypes.JSON `json:"education" yaml:"-"`
	FileURL    string         `json:"fileUrl" yaml:"fileUrl"`
}

// CVPatch carries the fields of a partial CV update.
type CVPatch struct {
	FullName   *string         `json:"fullName"`
	Headline   *string         `json:"headline"`
	Summary    *string         `json:"summary"`
	Email      *string         `json:"email"`
	Phone      *string         `json:"phone"`
	Location   *string         `json:"location"`
	Website    *string         `json:"website"`
	Skills     *[]string       `json:"skills"`
	Experience *datatypes.JSON `json:"experience"`
	Education  *datatypes.JSON `json:"education"`
	FileURL    *string         `json:"fileUrl"`
}

func (in CVInput) validate() error {
	return requireText("fullName", in.FullName)
}

func (in CVInput) record() db.CVData {
	return db.CVData{
		FullName:   strings.TrimSpace(in.FullName),
		Headline:   strings.TrimSpace(in.Headline),
		Summary:    in.Summary,
		Email:      strings.TrimSpace(in.Email),
		Phone:      strings.TrimSpace(in.Phone),
		Location:   strings.TrimSpace(in.Location),
		Website:    strings.TrimSpace(in.Website),
		Skills:     normalizeList(in.Skills),
		Experience: normalizeJSONArray(in.Experience),
		Education:  normalizeJSONArray(in.Education),
		FileURL:    strings.TrimSpace(in.FileURL),
	}
}

func (p CVPatch) validate() error {
	return requireTextPtr("fullName", p.FullName)
}

func (p CVPatch) apply(item *db.CVData) {
	setTrimmed(&item.FullName, p.FullName)
	setTrimmed(&item.Headline, p.Headline)
	if p.Summary != nil {
		item.Summary = *p.Summary
	}
	setTrimmed(&item.Email, p.Email)
	setTrimmed(&item.Phone, p.Phone)
	setTrimmed(&item.Location, p.Location)
	setTrimmed(&item.Website, p.Website)
	setList(&item.Skills, p.Skills)
	if p.Experience != nil {
		item.Experience = normalizeJSONArray(*p.Experience)
	}
	if p.Education != nil {
		item.Education = normalizeJSONArray(*p.Education)
	}
	setTrimmed(&item.FileURL, p.FileURL)
}

// WritingInput represents fields accepted when creating a writing.
type WritingInput struct {
	Title         string     `json:"title" yaml:"title"`
	Content       string     `json:"content" yaml:"content"`
	Excerpt       string     `json:"excerpt" yaml:"excerpt"`
	Category      string     `json:"category" yaml:"category"`
	Tags          []string   `json:"tags" yaml:"tags"`
	CoverImageURL string     `json:"coverImageUrl" yaml:"coverImageUrl"`
	SortOrder     int        `json:"sortOrder" yaml:"sortOrder"`
	DeletedAt     *time.Time `json:"deletedAt" yaml:"deletedAt"`
}

// WritingPatch carries the fields of a partial writing update.
type WritingPatch struct {
	Title         *string             `json:"title"`
	Content       *string             `json:"content"`
	Excerpt       *string             `json:"excerpt"`
	Category      *string             `json:"category"`
	Tags          *[]string           `json:"tags"`
	CoverImageURL *string             `json:"coverImageUrl"`
	SortOrder     *int                `json:"sortOrder"`
	DeletedAt     Nullable[time.Time] `json:"deletedAt"`
}

func (in WritingInput) validate() error {
	return requireText("title", in.Title)
}

func (in WritingInput) record() db.Writing {
	item := db.Writing{
		Title:         strings.TrimSpace(in.Title),
		Content:       in.Content,
		Excerpt:       strings.TrimSpace(in.Excerpt),
		Category:      strings.TrimSpace(in.Category),
		Tags:          normalizeList(in.Tags),
		CoverImageURL: strings.TrimSpace(in.CoverImageURL),
		SortOrder:     in.SortOrder,
	}
	if item.Excerpt == "" {
		item.Excerpt = db.DeriveExcerpt(in.Content)
	}
	if in.DeletedAt != nil {
		trashedAt := *in.DeletedAt
		item.TrashedAt = &trashedAt
	}
	return item
}

func (p WritingPatch) validate() error {
	return requireTextPtr("title", p.Title)
}

func (p WritingPatch) apply(item *db.Writing) {
	setTrimmed(&item.Title, p.Title)
	if p.Content != nil {
		// 摘要未手动设置时随正文一起更新
		derived := item.Excerpt == db.DeriveExcerpt(item.Content)
		item.Content = *p.Content
		if p.Excerpt == nil && derived {
			item.Excerpt = db.DeriveExcerpt(item.Content)
		}
	}
	setTrimmed(&item.Excerpt, p.Excerpt)
	setTrimmed(&item.Category, p.Category)
	setList(&item.Tags, p.Tags)
	setTrimmed(&item.CoverImageURL, p.CoverImageURL)
	if p.SortOrder != nil {
		item.SortOrder = *p.SortOrder
	}
	p.DeletedAt.applyTo(&item.TrashedAt)
}

// AlbumInput represents fields accepted when creating an album.
type AlbumInput struct {
	Title         string `json:"title" yaml:"title"`
	Description   string `json:"description" yaml:"description"`
	CoverImageURL string `json:"coverImageUrl" yaml:"coverImageUrl"`
	WritingIDs    []uint `json:"writingIds" yaml:"writingIds"`
}

// AlbumPatch carries the fields of a partial album update.
type AlbumPatch struct {
	Title         *string `json:"title"`
	Description   *string `json:"description"`
	CoverImageURL *string `json:"coverImageUrl"`
	WritingIDs    *[]uint `json:"writingIds"`
}

func (in AlbumInput) validate() error {
	return requireText("title", in.Title)
}

func (in AlbumInput) record() db.Album {
	return db.Album{
		Title:         strings.TrimSpace(in.Title),
		Description:   strings.TrimSpace(in.Description),
		CoverImageURL: strings.TrimSpace(in.CoverImageURL),
		WritingIDs:    normalizeIDs(in.WritingIDs),
	}
}

func (p AlbumPatch) validate() error {
	return requireTextPtr("title", p.Title)
}

func (p AlbumPatch) apply(item *db.Album) {
	setTrimmed(&item.Title, p.Title)
	setTrimmed(&item.Description, p.Description)
	setTrimmed(&item.CoverImageURL, p.CoverImageURL)
	if p.WritingIDs != nil {
		item.WritingIDs = normalizeIDs(*p.WritingIDs)
	}
}

// TagInput represents fields accepted when creating a tag.
type TagInput struct {
	Name     string `json:"name" yaml:"name"`
	Category string `json:"category" yaml:"category"`
}

// TagPatch carries the fields of a partial tag update.
type TagPatch struct {
	Name     *string `json:"name"`
	Category *string `json:"category"`
}

func (in TagInput) validate() error {
	return requireText("name", in.Name)
}

func (in TagInput) record() db.Tag {
	return db.Tag{
		Name:     strings.TrimSpace(in.Name),
		Category: strings.TrimSpace(in.Category),
	}
}

func (p TagPatch) validate() error {
	return requireTextPtr("name", p.Name)
}

func (p TagPatch) apply(item *db.Tag) {
	setTrimmed(&item.Name, p.Name)
	setTrimmed(&item.Category, p.Category)
}

// NameInput is the payload of name-only lookup records (photo locations and devices).
type NameInput struct {
	Name string `json:"name" yaml:"name"`
}

// NamePatch is the partial update of a name-only record.
type NamePatch struct {
	Name *string `json:"name"`
}

func (in NameInput) validate() error {
	return requireText("name", in.Name)
}

func (p NamePatch) validate() error {
	return requireTextPtr("name", p.Name)
}

func requireText(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("%w: %s is required", ErrInvalidInput, field)
	}
	return nil
}

func requireTextPtr(field string, value *string) error {
	if value == nil {
		return nil
	}
	return requireText(field, *value)
}

func setTrimmed(dst *string, value *string) {
	if value != nil {
		*dst = strings.TrimSpace(*value)
	}
}

func setList(dst *[]string, value *[]string) {
	if value != nil {
		*dst = normalizeList(*value)
	}
}

// normalizeList trims entries, drops blanks and duplicates, keeping first occurrence order.
func normalizeList(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" || slices.Contains(out, v) {
			continue
		}
		out = append(out, v)
	}
	return out
}

func normalizeIDs(ids []uint) []uint {
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if id == 0 || slices.Contains(out, id) {
			continue
		}
		out = append(out, id)
	}
	return out
}

func normalizeJSONArray(value datatypes.JSON) datatypes.JSON {
	trimmed := strings.TrimSpace(string(value))
	if trimmed == "" || trimmed == "null" {
		return datatypes.JSON("[]")
	}
	return datatypes.JSON(trimmed)
}
