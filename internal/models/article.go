package models

import "time"

// ArticleStatus drives visibility in public listings.
type ArticleStatus string

const (
	StatusDraft     ArticleStatus = "draft"
	StatusPublished ArticleStatus = "published"
	StatusArchived  ArticleStatus = "archived"
)

// Article is one piece of content. Category is a soft reference to a
// Category id; dangling references are tolerated and rendered with a
// fallback label by the caller.
type Article struct {
	Meta
	Title       string        `json:"title"`
	Slug        string        `json:"slug"`
	Excerpt     string        `json:"excerpt"`
	Content     string        `json:"content"`
	Category    string        `json:"category"`
	Tags        []string      `json:"tags,omitempty"`
	AuthorID    string        `json:"authorId,omitempty"`
	AuthorName  string        `json:"authorName,omitempty"`
	AuthorEmail string        `json:"authorEmail,omitempty"`
	Status      ArticleStatus `json:"status"`
	Views       int           `json:"views"`
	Likes       int           `json:"likes"`
	PublishedAt time.Time     `json:"publishedAt,omitempty"`
}
