package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"gorm.io/gorm"
)

// Document holds the fields shared by every routable content type.
type Document struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Title       string     `gorm:"not null" json:"title"`
	Slug        string     `gorm:"uniqueIndex;not null" json:"slug"`
	Published   bool       `gorm:"default:false;index" json:"published"`
	PublishedAt *time.Time `gorm:"index" json:"published_at,omitempty"`
}

type Artist struct {
	Document

	Bio      string     `gorm:"type:text" json:"bio"`
	ImageURL string     `json:"image_url"`
	Website  string     `json:"website"`
	Genres   StringList `gorm:"type:jsonb" json:"genres"`
}

type Venue struct {
	Document

	Description string `gorm:"type:text" json:"description"`
	Address     string `json:"address"`
	City        string `gorm:"index" json:"city"`
	Capacity    int    `gorm:"default:0" json:"capacity"`
	Website     string `json:"website"`
}

type Page struct {
	Document

	Description string `json:"description"`
	Body        string `gorm:"type:text" json:"body"`
	Order       int    `gorm:"default:0" json:"order"`
}

type Setting struct {
	Key       string    `gorm:"primaryKey;size:191" json:"key"`
	Value     string    `gorm:"type:text" json:"value"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Homepage is a singleton kept as JSON in the settings table.
type Homepage struct {
	Title             string `json:"title"`
	Intro             string `json:"intro"`
	FeaturedArtistIDs []uint `json:"featured_artist_ids"`
	FeaturedVenueIDs  []uint `json:"featured_venue_ids"`
}

// HomepageView is the homepage with its references resolved.
type HomepageView struct {
	Title           string   `json:"title"`
	Intro           string   `json:"intro"`
	FeaturedArtists []Artist `json:"featured_artists"`
	FeaturedVenues  []Venue  `json:"featured_venues"`
}

type StringList []string

func (l *StringList) Scan(value interface{}) error {
	if value == nil {
		*l = StringList{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return errors.New("failed to scan StringList")
	}

	return json.Unmarshal(bytes, l)
}

func (l StringList) Value() (driver.Value, error) {
	if len(l) == 0 {
		return nil, nil
	}
	return json.Marshal(l)
}

type CreateArtistRequest struct {
	Title     string   `json:"title" binding:"required,max=200"`
	Slug      string   `json:"slug"`
	Bio       string   `json:"bio"`
	ImageURL  string   `json:"image_url" binding:"omitempty,http_url"`
	Website   string   `json:"website" binding:"omitempty,http_url"`
	Genres    []string `json:"genres"`
	Published bool     `json:"published"`
}

type UpdateArtistRequest struct {
	Title     *string   `json:"title" binding:"omitempty,max=200"`
	Slug      *string   `json:"slug"`
	Bio       *string   `json:"bio"`
	ImageURL  *string   `json:"image_url" binding:"omitempty,http_url"`
	Website   *string   `json:"website" binding:"omitempty,http_url"`
	Genres    *[]string `json:"genres"`
	Published *bool     `json:"published"`
}

type CreateVenueRequest struct {
	Title       string `json:"title" binding:"required,max=200"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
	Address     string `json:"address"`
	City        string `json:"city"`
	Capacity    int    `json:"capacity" binding:"gte=0"`
	Website     string `json:"website" binding:"omitempty,http_url"`
	Published   bool   `json:"published"`
}

type UpdateVenueRequest struct {
	Title       *string `json:"title" binding:"omitempty,max=200"`
	Slug        *string `json:"slug"`
	Description *string `json:"description"`
	Address     *string `json:"address"`
	City        *string `json:"city"`
	Capacity    *int    `json:"capacity" binding:"omitempty,gte=0"`
	Website     *string `json:"website" binding:"omitempty,http_url"`
	Published   *bool   `json:"published"`
}

type CreatePageRequest struct {
	Title       string `json:"title" binding:"required,max=200"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
	Body        string `json:"body"`
	Order       int    `json:"order"`
	Published   bool   `json:"published"`
}

type UpdatePageRequest struct {
	Title       *string `json:"title" binding:"omitempty,max=200"`
	Slug        *string `json:"slug"`
	Description *string `json:"description"`
	Body        *string `json:"body"`
	Order       *int    `json:"order"`
	Published   *bool   `json:"published"`
}

type UpdateHomepageRequest struct {
	Title             *string `json:"title" binding:"omitempty,max=200"`
	Intro             *string `json:"intro"`
	FeaturedArtistIDs *[]uint `json:"featured_artist_ids"`
	FeaturedVenueIDs  *[]uint `json:"featured_venue_ids"`
}

type GenerateSlugRequest struct {
	Text string `json:"text"`
}

type SlugRequest struct {
	Slug string `json:"slug"`
}
