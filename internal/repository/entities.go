package repository

import (
	"context"

	"github.com/aghannam/manassa/internal/cache"
	"github.com/aghannam/manassa/internal/gateway"
	"github.com/aghannam/manassa/internal/logging"
	"github.com/aghannam/manassa/internal/models"
)

// Categories manages the category collection.
type Categories struct {
	*Repository[*models.Category]
}

func NewCategories(gw gateway.Gateway, store *cache.Store, logger logging.Logger) *Categories {
	return &Categories{Repository: New("categories", gw, store, logger, Options[*models.Category]{
		Validate: models.ValidateCategory,
		Seed:     models.DefaultCategories,
		Blank:    func() *models.Category { return &models.Category{} },
	})}
}

// Articles manages the article collection. Article validation needs the
// category working set, so the constructor takes the category repository.
type Articles struct {
	*Repository[*models.Article]
}

func NewArticles(gw gateway.Gateway, store *cache.Store, logger logging.Logger, categories *Categories) *Articles {
	return &Articles{Repository: New("articles", gw, store, logger, Options[*models.Article]{
		Validate: models.ArticleValidator(categories.HasID),
		Seed:     models.DefaultArticles,
		Blank:    func() *models.Article { return &models.Article{} },
	})}
}

// IncrementViews bumps the view counter for a public read. It is not an
// authenticated edit: the remote increment is fire-and-forget and the
// local copy is bumped directly without refreshing updatedAt.
func (a *Articles) IncrementViews(ctx context.Context, id string) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if err := a.load(ctx); err != nil {
		return err
	}

	if a.gw.Available() {
		if err := a.gw.IncrementViews(ctx, id); err != nil {
			a.logger.Warn(ctx, "remote view increment failed",
				"id", id, "error", err)
		}
	}

	for _, item := range a.items {
		if item.EntityID() == id {
			item.Views++
			return a.persistLocal(ctx)
		}
	}
	return nil
}

// Users manages the admin user collection.
type Users struct {
	*Repository[*models.User]
}

func NewUsers(gw gateway.Gateway, store *cache.Store, logger logging.Logger) *Users {
	return &Users{Repository: New("users", gw, store, logger, Options[*models.User]{
		Validate: models.ValidateUser,
		Seed:     models.DefaultUsers,
		Blank:    func() *models.User { return &models.User{} },
	})}
}

// Media manages media library records. Blob payloads live in object
// storage; these records only carry metadata and the storage key.
type Media struct {
	*Repository[*models.Media]
}

func NewMedia(gw gateway.Gateway, store *cache.Store, logger logging.Logger) *Media {
	return &Media{Repository: New("media", gw, store, logger, Options[*models.Media]{
		Validate: models.ValidateMedia,
		Seed:     models.DefaultMedia,
		Blank:    func() *models.Media { return &models.Media{} },
	})}
}

// Testimonials manages homepage testimonials.
type Testimonials struct {
	*Repository[*models.Testimonial]
}

func NewTestimonials(gw gateway.Gateway, store *cache.Store, logger logging.Logger) *Testimonials {
	return &Testimonials{Repository: New("testimonials", gw, store, logger, Options[*models.Testimonial]{
		Validate: models.ValidateTestimonial,
		Seed:     models.DefaultTestimonials,
		Blank:    func() *models.Testimonial { return &models.Testimonial{} },
	})}
}

// Subscribers manages the newsletter subscriber list.
type Subscribers struct {
	*Repository[*models.Subscriber]
}

func NewSubscribers(gw gateway.Gateway, store *cache.Store, logger logging.Logger) *Subscribers {
	return &Subscribers{Repository: New("subscribers", gw, store, logger, Options[*models.Subscriber]{
		Validate: models.ValidateSubscriber,
		Seed:     models.DefaultSubscribers,
		Blank:    func() *models.Subscriber { return &models.Subscriber{} },
	})}
}
