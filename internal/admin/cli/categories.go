package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/aghannam/manassa/internal/models"
	"github.com/aghannam/manassa/internal/query"
)

// ListCategories prints the categories sorted by Arabic name order.
func (a *App) ListCategories(ctx context.Context) error {
	items, err := a.categories.List(ctx)
	if err != nil {
		printlnFn("Listing failed:", err.Error())
		return err
	}

	items = query.SortBy(items, query.Alphabetical(func(c *models.Category) string { return c.Name }))
	for _, c := range items {
		printlnFn(fmt.Sprintf("%-20s %-8s %-14s %s (%d)", c.ID, c.Color, c.Icon, c.Name, c.ArticleCount))
	}
	return nil
}

func (a *App) AddCategory(ctx context.Context) error {
	name, err := getSimpleText(a.reader, "Name", os.Stdout)
	if err != nil {
		return err
	}
	description, err := getSimpleText(a.reader, "Description", os.Stdout)
	if err != nil {
		return err
	}
	color, err := getSimpleText(a.reader, "Color (hex)", os.Stdout)
	if err != nil {
		return err
	}
	icon, err := getSimpleText(a.reader, "Icon", os.Stdout)
	if err != nil {
		return err
	}

	c := &models.Category{
		Name:        name,
		Description: description,
		Color:       color,
		Icon:        icon,
		Slug:        slugify(name),
	}
	if err := a.categories.Create(ctx, c); err != nil {
		printValidation(err)
		return err
	}
	printlnFn("Created category", c.ID)
	return nil
}

// DeleteCategory removes a category. Articles referencing it keep their
// category id and render with a fallback label.
func (a *App) DeleteCategory(ctx context.Context, args []string) error {
	id := args[0]
	if err := a.categories.Delete(ctx, id); err != nil {
		printlnFn("Delete failed:", err.Error())
		return err
	}
	printlnFn("Deleted category", id)
	return nil
}
