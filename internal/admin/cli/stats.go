package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/aghannam/manassa/internal/analytics"
	"github.com/aghannam/manassa/internal/models"
	"github.com/aghannam/manassa/internal/query"
)

// ShowStats prints the dashboard for the named period (default 30d):
// content totals, in-period event volume, top pages and articles, and the
// device and browser breakdowns.
func (a *App) ShowStats(ctx context.Context, args []string) error {
	period := analytics.Period30d
	if len(args) > 0 {
		period = args[0]
	}

	articles, err := a.articles.List(ctx)
	if err != nil {
		printlnFn("Stats failed:", err.Error())
		return err
	}

	published := query.PublishedOnly(articles)
	drafts := 0
	totalViews := 0
	for _, art := range articles {
		if art.Status == models.StatusDraft {
			drafts++
		}
		totalViews += art.Views
	}
	printlnFn(fmt.Sprintf("articles: %d (%d published, %d drafts), %d total views",
		len(articles), len(published), drafts, totalViews))

	events, err := a.stats.Window(ctx, period)
	if err != nil {
		printlnFn("Stats failed:", err.Error())
		return err
	}
	printlnFn(fmt.Sprintf("%d events in the last %s", len(events), period))

	mostViewed := query.SortBy(published, query.ArticleLess(query.SortMostViewed))
	printlnFn("Most viewed published articles:")
	for _, art := range query.Page(mostViewed, 1, 5) {
		printlnFn(fmt.Sprintf("  %6d  %s", art.Views, art.Title))
	}

	pages, err := a.stats.TopPages(ctx, period, 5)
	if err != nil {
		return err
	}
	printlnFn("Top pages:")
	for _, c := range pages {
		printlnFn(fmt.Sprintf("  %6d  %s", c.Count, c.Key))
	}

	top, err := a.stats.TopArticles(ctx, period, 5)
	if err != nil {
		return err
	}
	printlnFn("Top read articles:")
	for _, c := range top {
		printlnFn(fmt.Sprintf("  %6d  %s", c.Count, c.Key))
	}

	devices, err := a.stats.Devices(ctx, period)
	if err != nil {
		return err
	}
	printlnFn("Devices:")
	for _, c := range devices {
		printlnFn(fmt.Sprintf("  %6d  %s", c.Count, c.Key))
	}

	browsers, err := a.stats.Browsers(ctx, period)
	if err != nil {
		return err
	}
	printlnFn("Browsers:")
	for _, c := range browsers {
		printlnFn(fmt.Sprintf("  %6d  %s", c.Count, c.Key))
	}
	return nil
}

// PruneStats drops analytics events older than the given number of days.
func (a *App) PruneStats(ctx context.Context, args []string) error {
	days, err := strconv.Atoi(args[0])
	if err != nil || days < 1 {
		printlnFn("Usage: prune <days>")
		return nil
	}

	removed, err := a.stats.Prune(ctx, days)
	if err != nil {
		printlnFn("Prune failed:", err.Error())
		return err
	}
	printlnFn(fmt.Sprintf("Removed %d events older than %d days", removed, days))
	return nil
}
