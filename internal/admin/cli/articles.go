package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/aghannam/manassa/internal/analytics"
	"github.com/aghannam/manassa/internal/common"
	"github.com/aghannam/manassa/internal/models"
	"github.com/aghannam/manassa/internal/query"
	"github.com/aghannam/manassa/internal/repository"
)

const fallbackPerPage = 9

// perPage reads the page size from site settings, falling back when the
// document is unreadable or holds a non-numeric value.
func (a *App) perPage(ctx context.Context) int {
	doc, err := a.site.Get(ctx)
	if err != nil {
		return fallbackPerPage
	}
	if n, ok := doc["articlesPerPage"].(float64); ok && n >= 1 {
		return int(n)
	}
	return fallbackPerPage
}

func (a *App) categoryLabel(ctx context.Context, id string) string {
	c, err := a.categories.Get(ctx, id)
	if err != nil {
		// dangling reference, render a fallback label
		return "غير مصنف"
	}
	return c.Name
}

func (a *App) printArticlePage(ctx context.Context, items []*models.Article, page int) {
	perPage := a.perPage(ctx)
	total := query.PageCount(len(items), perPage)
	pageItems := query.Page(items, page, perPage)

	if len(pageItems) == 0 {
		printlnFn("No articles on this page")
		return
	}
	for _, art := range pageItems {
		printlnFn(fmt.Sprintf("%-28s %-10s %-18s views:%-5d %s",
			art.ID, art.Status, a.categoryLabel(ctx, art.Category), art.Views, art.Title))
	}
	printlnFn(fmt.Sprintf("page %d of %d (%d articles)", page, total, len(items)))
}

// ListArticles shows one page of articles, newest first. Optional args:
// page number, "status=<s>", "category=<id>", "sort=<key>".
func (a *App) ListArticles(ctx context.Context, args []string) error {
	items, err := a.articles.List(ctx)
	if err != nil {
		printlnFn("Listing failed:", err.Error())
		return err
	}

	page := 1
	criteria := map[string]string{}
	sortKey := query.SortNewest
	for _, arg := range args {
		if n, err := strconv.Atoi(arg); err == nil {
			page = n
			continue
		}
		if k, v, ok := strings.Cut(arg, "="); ok {
			if k == "sort" {
				sortKey = v
			} else {
				criteria[k] = v
			}
		}
	}

	items = query.Filter(items, criteria, query.ArticleValue)
	items = query.SortBy(items, query.ArticleLess(sortKey))
	a.printArticlePage(ctx, items, page)
	return nil
}

// SearchArticles runs a case-insensitive substring search over titles,
// excerpts, bodies, and tags.
func (a *App) SearchArticles(ctx context.Context, args []string) error {
	items, err := a.articles.List(ctx)
	if err != nil {
		printlnFn("Search failed:", err.Error())
		return err
	}

	term := strings.Join(args, " ")
	items = query.Search(items, term, query.ArticleFields)
	items = query.SortBy(items, query.ArticleLess(query.SortNewest))
	a.printArticlePage(ctx, items, 1)
	return nil
}

// ViewArticle prints one article in full and counts the read: the view
// counter is bumped and an analytics event is recorded.
func (a *App) ViewArticle(ctx context.Context, args []string) error {
	id := args[0]
	art, err := a.articles.Get(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			printlnFn("No article with id", id)
		} else {
			printlnFn("Fetch failed:", err.Error())
		}
		return err
	}

	printlnFn(art.Title)
	printlnFn("category:", a.categoryLabel(ctx, art.Category), "| status:", string(art.Status))
	if art.Excerpt != "" {
		printlnFn(art.Excerpt)
	}
	printlnFn(art.Content)

	if err := a.articles.IncrementViews(ctx, id); err != nil {
		a.logger.Warn(ctx, "view count update failed", "id", id, "error", err)
	}
	if err := a.stats.Record(ctx, analytics.KindArticleView, map[string]string{"articleId": id}); err != nil {
		a.logger.Warn(ctx, "analytics record failed", "error", err)
	}
	return nil
}

// AddArticle interactively creates an article. Drafts may be saved with any
// content length; publishing enforces the minimum body length.
func (a *App) AddArticle(ctx context.Context) error {
	title, err := getSimpleText(a.reader, "Title", os.Stdout)
	if err != nil {
		return err
	}
	excerpt, err := getSimpleText(a.reader, "Excerpt", os.Stdout)
	if err != nil {
		return err
	}

	if err := a.ListCategories(ctx); err != nil {
		return err
	}
	category, err := getSimpleText(a.reader, "Category id", os.Stdout)
	if err != nil {
		return err
	}

	content, err := GetMultiline(a.reader, "Content", os.Stdout)
	if err != nil {
		return err
	}

	publish, err := getSimpleText(a.reader, "Publish now? (y/N)", os.Stdout)
	if err != nil {
		return err
	}

	art := &models.Article{
		Title:    title,
		Slug:     slugify(title),
		Excerpt:  excerpt,
		Content:  content,
		Category: category,
		Status:   models.StatusDraft,
	}
	if session := a.gw.CurrentUser(); session != nil {
		art.AuthorID = session.UserID
		art.AuthorName = session.Name
		art.AuthorEmail = session.Email
	}
	if strings.EqualFold(publish, "y") {
		art.Status = models.StatusPublished
		art.PublishedAt = time.Now()
	}

	if err := a.articles.Create(ctx, art); err != nil {
		printValidation(err)
		return err
	}
	printlnFn("Created article", art.ID)
	return nil
}

// EditArticle patches a single article. Empty answers keep current values.
func (a *App) EditArticle(ctx context.Context, args []string) error {
	id := args[0]
	art, err := a.articles.Get(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			printlnFn("No article with id", id)
		}
		return err
	}

	title, err := GetOptionalText(a.reader, "Title ["+art.Title+"]", art.Title, os.Stdout)
	if err != nil {
		return err
	}
	excerpt, err := GetOptionalText(a.reader, "Excerpt ["+art.Excerpt+"]", art.Excerpt, os.Stdout)
	if err != nil {
		return err
	}
	category, err := GetOptionalText(a.reader, "Category ["+art.Category+"]", art.Category, os.Stdout)
	if err != nil {
		return err
	}

	patch := map[string]any{
		"title":    title,
		"excerpt":  excerpt,
		"category": category,
	}
	if title != art.Title {
		patch["slug"] = slugify(title)
	}

	if _, err := a.articles.Update(ctx, id, patch); err != nil {
		printValidation(err)
		return err
	}
	printlnFn("Updated article", id)
	return nil
}

func (a *App) setStatus(ctx context.Context, id string, status models.ArticleStatus) error {
	patch := map[string]any{"status": string(status)}
	if status == models.StatusPublished {
		patch["publishedAt"] = time.Now().Format(time.RFC3339Nano)
	}

	if _, err := a.articles.Update(ctx, id, patch); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			printlnFn("No article with id", id)
		} else {
			printValidation(err)
		}
		return err
	}
	printlnFn("Article", id, "is now", string(status))
	return nil
}

func (a *App) PublishArticle(ctx context.Context, args []string) error {
	return a.setStatus(ctx, args[0], models.StatusPublished)
}

func (a *App) ArchiveArticle(ctx context.Context, args []string) error {
	return a.setStatus(ctx, args[0], models.StatusArchived)
}

// DeleteArticle removes an article. Deleting an unknown id is a no-op.
func (a *App) DeleteArticle(ctx context.Context, args []string) error {
	id := args[0]
	if err := a.articles.Delete(ctx, id); err != nil {
		printlnFn("Delete failed:", err.Error())
		return err
	}
	printlnFn("Deleted article", id)
	return nil
}

// printValidation renders a validation failure as its message list and any
// other error as-is.
func printValidation(err error) {
	var vErr *repository.ValidationError
	if errors.As(err, &vErr) {
		for _, msg := range vErr.Messages {
			printlnFn("-", msg)
		}
		return
	}
	printlnFn("Save failed:", err.Error())
}

// slugify lowercases and dashes a title for URL use. Arabic titles keep
// their letters; only separators are normalized.
func slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ' ' || r == '\t' || r == '_' || r == '/'
	})
	return strings.Join(fields, "-")
}
