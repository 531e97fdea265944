package models

// Category groups articles. ArticleCount is denormalized for list views and
// not enforced against the articles collection.
type Category struct {
	Meta
	Name         string `json:"name"`
	Description  string `json:"description"`
	Color        string `json:"color"`
	Icon         string `json:"icon"`
	Slug         string `json:"slug"`
	ArticleCount int    `json:"articleCount"`
}
