package models

import "time"

// BlogPost is an editorial article. Content is pre-written HTML; there is no
// authoring API, posts are seeded directly into the table.
type BlogPost struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	Title         string    `gorm:"size:255;not null" json:"title"`
	Slug          string    `gorm:"size:255;uniqueIndex;not null" json:"slug"`
	Excerpt       string    `gorm:"size:512" json:"excerpt"`
	Content       string    `gorm:"type:text" json:"content"`
	CoverImageURL string    `gorm:"size:512" json:"coverImageUrl"`
	AuthorName    string    `gorm:"size:128" json:"authorName"`
	PublishedAt   time.Time `gorm:"index" json:"publishedAt"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
