package query

import (
	"github.com/aghannam/manassa/internal/models"
)

// Article sort keys accepted by ArticleLess.
const (
	SortNewest       = "newest"
	SortOldest       = "oldest"
	SortMostViewed   = "views"
	SortAlphabetical = "alphabetical"
)

// ArticleFields lists the substrings searched by article search: title,
// excerpt, content, and tags.
func ArticleFields(a *models.Article) []string {
	fields := []string{a.Title, a.Excerpt, a.Content}
	return append(fields, a.Tags...)
}

// ArticleValue resolves an article's value for a filter criterion key.
// Unknown keys resolve to "", which matches nothing once the criterion
// is active.
func ArticleValue(a *models.Article, key string) string {
	switch key {
	case "category":
		return a.Category
	case "status":
		return string(a.Status)
	case "author":
		return a.AuthorID
	default:
		return ""
	}
}

// ArticleLess returns the ordering for the given sort key. Unknown keys
// fall back to newest-first, matching the default listing order.
func ArticleLess(sortKey string) func(a, b *models.Article) bool {
	switch sortKey {
	case SortOldest:
		return func(a, b *models.Article) bool { return a.CreatedAt.Before(b.CreatedAt) }
	case SortMostViewed:
		return func(a, b *models.Article) bool { return a.Views > b.Views }
	case SortAlphabetical:
		return Alphabetical(func(a *models.Article) string { return a.Title })
	default:
		return func(a, b *models.Article) bool { return a.CreatedAt.After(b.CreatedAt) }
	}
}

// PublishedOnly keeps the articles visible on the public site.
func PublishedOnly(items []*models.Article) []*models.Article {
	out := make([]*models.Article, 0, len(items))
	for _, a := range items {
		if a.Status == models.StatusPublished {
			out = append(out, a)
		}
	}
	return out
}
