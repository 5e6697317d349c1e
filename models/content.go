package models

import (
	"strings"
	"time"
)

// Category names a content collection. The value doubles as the collection name and URL segment.
type Category string

const (
	CategoryMovies   Category = "movies"
	CategoryApps     Category = "apps"
	CategoryBooks    Category = "books"
	CategoryPodcasts Category = "podcasts"
)

// Categories lists the content collections in display order.
var Categories = []Category{CategoryMovies, CategoryApps, CategoryBooks, CategoryPodcasts}

func ParseCategory(s string) (Category, bool) {
	for _, c := range Categories {
		if string(c) == s {
			return c, true
		}
	}
	return "", false
}

// HasAuthor reports whether items in the category carry an author (books only).
func (c Category) HasAuthor() bool {
	return c == CategoryBooks
}

// Tall reports whether tiles use a 2:3 poster ratio instead of a square.
func (c Category) Tall() bool {
	return c == CategoryBooks || c == CategoryMovies
}

type Author struct {
	First  string `bson:"first" json:"first"`
	Middle string `bson:"middle,omitempty" json:"middle,omitempty"`
	Last   string `bson:"last" json:"last"`
}

// FullName joins the non-empty name parts with single spaces.
func (a *Author) FullName() string {
	if a == nil {
		return ""
	}
	parts := make([]string, 0, 3)
	for _, p := range []string{a.First, a.Middle, a.Last} {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, " ")
}

// Item is a movie, app, book or podcast document. Bilingual fields are parallel and independent.
type Item struct {
	ID            string     `bson:"_id,omitempty" json:"id"`
	TitleEN       string     `bson:"title_en" json:"title_en"`
	TitleNO       string     `bson:"title_no" json:"title_no"`
	ImageEN       string     `bson:"image_en" json:"image_en"`
	ImageNO       string     `bson:"image_no" json:"image_no"`
	DescriptionEN string     `bson:"description_en" json:"description_en"`
	DescriptionNO string     `bson:"description_no" json:"description_no"`
	Author        *Author    `bson:"author,omitempty" json:"author,omitempty"`
	CreatedAt     *time.Time `bson:"createdAt,omitempty" json:"createdAt,omitempty"`
	CreatedBy     string     `bson:"createdBy,omitempty" json:"createdBy,omitempty"`
	UpdatedAt     *time.Time `bson:"updatedAt,omitempty" json:"updatedAt,omitempty"`
}

// CreatedTime returns the creation time, or the Unix epoch for documents without one.
func (i *Item) CreatedTime() time.Time {
	if i.CreatedAt == nil || i.CreatedAt.IsZero() {
		return time.Unix(0, 0).UTC()
	}
	return *i.CreatedAt
}
