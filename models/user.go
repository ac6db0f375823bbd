package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"gorm.io/gorm"
)

// StringList is a JSON-encoded array column. Malformed stored values decode
// to an empty list instead of surfacing a scan error.
type StringList []string

// Scan implements sql.Scanner.
func (s *StringList) Scan(value interface{}) error {
	*s = StringList{}
	if value == nil {
		return nil
	}
	var raw []byte
	switch v := value.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return nil
	}
	if len(raw) == 0 {
		return nil
	}
	var items []string
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil
	}
	*s = items
	return nil
}

// Value implements driver.Valuer.
func (s StringList) Value() (driver.Value, error) {
	if s == nil {
		s = StringList{}
	}
	b, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// User represents a member profile collected during onboarding. Passwords are
// stored as bcrypt hashes only.
type User struct {
	ID           string     `gorm:"primaryKey;size:36" json:"id"`
	Mobile       string     `gorm:"size:32;uniqueIndex" json:"mobile"`
	Email        string     `gorm:"size:255;index" json:"email"`
	PasswordHash string     `gorm:"size:255" json:"-"`
	Name         string     `gorm:"size:128;not null" json:"name"`
	Age          string     `gorm:"size:16" json:"age"`
	Job          string     `gorm:"size:128" json:"job"`
	Gender       string     `gorm:"size:16" json:"gender"`
	SkinType     string     `gorm:"size:32" json:"skinType"`
	SkinConcerns StringList `gorm:"type:text" json:"skinConcerns"`
	HairType     string     `gorm:"size:32" json:"hairType"`
	HairConcerns StringList `gorm:"type:text" json:"hairConcerns"`
	// Self-reported skin analysis answers used to personalize AI content.
	Comedones  string `gorm:"size:32" json:"comedones"`
	RedPimples string `gorm:"size:32" json:"redPimples"`
	FineLines  string `gorm:"size:32" json:"fineLines"`
	// Third-party login identity, empty for local accounts.
	Provider   string         `gorm:"size:32" json:"provider"`
	ProviderID string         `gorm:"size:255" json:"provider_id"`
	AvatarURL  string         `gorm:"size:512" json:"avatar_url"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}

// BeforeCreate hook ensures timestamps are set even when not provided.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	now := time.Now()
	if u.CreatedAt.IsZero() {
		u.CreatedAt = now
	}
	u.UpdatedAt = now
	return nil
}

// BeforeUpdate ensures the UpdatedAt timestamp is refreshed.
func (u *User) BeforeUpdate(tx *gorm.DB) error {
	u.UpdatedAt = time.Now()
	return nil
}
