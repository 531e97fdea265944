package cli

import (
	"bufio"
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"time"

	"github.com/aghannam/manassa/internal/analytics"
	"github.com/aghannam/manassa/internal/cache"
	"github.com/aghannam/manassa/internal/config"
	"github.com/aghannam/manassa/internal/filex"
	"github.com/aghannam/manassa/internal/gateway"
	"github.com/aghannam/manassa/internal/logging"
	"github.com/aghannam/manassa/internal/repository"
	"github.com/aghannam/manassa/internal/settings"

	_ "modernc.org/sqlite"
)

type Mode string

const (
	ModeOnline  Mode = "online"
	ModeOffline Mode = "offline"
)

type App struct {
	config *config.Config
	logger logging.Logger

	gw    gateway.Gateway
	blobs gateway.BlobStore
	db    *sql.DB

	articles     *repository.Articles
	categories   *repository.Categories
	users        *repository.Users
	media        *repository.Media
	testimonials *repository.Testimonials
	subscribers  *repository.Subscribers
	site         *settings.Store
	stats        *analytics.Log

	Mode   Mode
	reader *bufio.Reader
}

func NewApp(ctx context.Context, cfg *config.Config, logger logging.Logger) (*App, error) {
	dir, err := filex.EnsureSubDir(cfg.CacheDir)
	if err != nil {
		return nil, err
	}

	store, db, err := cache.InitDatabase(ctx, filepath.Join(dir, cfg.CacheFile))
	if err != nil {
		return nil, err
	}

	gw := gateway.New(ctx, cfg, logger)
	mode := ModeOffline
	if gw.Available() {
		mode = ModeOnline
	}

	categories := repository.NewCategories(gw, store, logger)

	return &App{
		config:       cfg,
		logger:       logger,
		gw:           gw,
		blobs:        gateway.NewS3Blobs(cfg),
		db:           db,
		articles:     repository.NewArticles(gw, store, logger, categories),
		categories:   categories,
		users:        repository.NewUsers(gw, store, logger),
		media:        repository.NewMedia(gw, store, logger),
		testimonials: repository.NewTestimonials(gw, store, logger),
		subscribers:  repository.NewSubscribers(gw, store, logger),
		site:         settings.NewStore(gw, store, logger),
		stats:        analytics.NewLog(store, logger),
		Mode:         mode,
		reader:       bufio.NewReader(os.Stdin),
	}, nil
}

func (a *App) Close() error {
	return a.db.Close()
}

func (a *App) isLoggedIn() bool {
	return a.gw.CurrentUser() != nil
}

func (a *App) setMode(mode Mode) {
	if a.Mode != mode {
		a.Mode = mode
		a.logger.Info(context.Background(), "connectivity changed", "mode", string(mode))
	}
}

// warmup performs the initial article load, bounded by InitLoadTimeout.
// When the budget is exceeded the app proceeds with whatever the cache
// holds and lets the slow load finish in the background.
func (a *App) warmup(ctx context.Context) {
	loadCtx, cancel := context.WithTimeout(ctx, a.config.InitLoadTimeout)

	done := make(chan error, 1)
	go func() {
		defer cancel()
		_, err := a.articles.List(loadCtx)
		done <- err
	}()

	select {
	case err := <-done:
		if err != nil {
			a.logger.Warn(ctx, "initial article load failed", "error", err)
		}
	case <-loadCtx.Done():
		a.logger.Warn(ctx, "initial article load timed out, continuing with cached data",
			"timeout", a.config.InitLoadTimeout)
	}
}

// ReloadData drops every repository's working set and refetches articles,
// so writes made by another admin since startup become visible.
func (a *App) ReloadData(ctx context.Context) error {
	a.articles.Reload()
	a.categories.Reload()
	a.users.Reload()
	a.media.Reload()
	a.testimonials.Reload()
	a.subscribers.Reload()

	if _, err := a.articles.List(ctx); err != nil {
		printlnFn("Reload failed:", err.Error())
		return err
	}
	printlnFn("Data reloaded")
	return nil
}

// StartOnlineStatusWatcher probes remote reachability on a fixed interval
// and flips the prompt between online and offline.
func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			pingCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
			err := a.gw.Ping(pingCtx)
			cancel()

			if err != nil {
				a.setMode(ModeOffline)
			} else {
				a.setMode(ModeOnline)
			}

		case <-ctx.Done():
			return
		}
	}
}

func (a *App) getStatus() string {
	s := ""
	if session := a.gw.CurrentUser(); session != nil {
		s = session.Email + " "
	}
	return "(" + s + string(a.Mode) + ")"
}

func (a *App) Run(ctx context.Context) {
	a.warmup(ctx)

	go a.StartOnlineStatusWatcher(ctx, a.config.OnlineCheckInterval)

	printlnFn("manassa admin (type 'help' for commands)")
	runREPL(ctx, a, a.getStatus, bufio.NewScanner(os.Stdin))
}
