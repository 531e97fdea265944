package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output.
var printlnFn = fmt.Println

// execIface defines the command surface the REPL dispatches to. The real
// App type satisfies it; tests provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool

	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error

	ListArticles(ctx context.Context, args []string) error
	SearchArticles(ctx context.Context, args []string) error
	ViewArticle(ctx context.Context, args []string) error
	AddArticle(ctx context.Context) error
	EditArticle(ctx context.Context, args []string) error
	PublishArticle(ctx context.Context, args []string) error
	ArchiveArticle(ctx context.Context, args []string) error
	DeleteArticle(ctx context.Context, args []string) error

	ListCategories(ctx context.Context) error
	AddCategory(ctx context.Context) error
	DeleteCategory(ctx context.Context, args []string) error

	ListUsers(ctx context.Context) error
	AddUser(ctx context.Context) error

	ListMedia(ctx context.Context) error
	UploadMedia(ctx context.Context) error
	MediaLink(ctx context.Context, args []string) error
	DeleteMedia(ctx context.Context, args []string) error

	ListTestimonials(ctx context.Context) error
	AddTestimonial(ctx context.Context) error
	DeleteTestimonial(ctx context.Context, args []string) error
	ListSubscribers(ctx context.Context) error
	AddSubscriber(ctx context.Context) error
	Unsubscribe(ctx context.Context, args []string) error

	ReloadData(ctx context.Context) error

	ShowStats(ctx context.Context, args []string) error
	PruneStats(ctx context.Context, args []string) error
	ShowSettings(ctx context.Context) error
	SetSetting(ctx context.Context, args []string) error
}

const helpLoggedOut = "Available commands: register, login, articles, search, view, exit"

const helpLoggedIn = `Available commands:
  articles [page]        list articles
  search <term>          search articles
  view <id>              show one article (counts a view)
  addarticle             create an article
  edit <id>              edit an article
  publish <id>           publish an article
  archive <id>           archive an article
  delete <id>            delete an article
  categories | addcategory | delcategory <id>
  users | adduser
  media | upload | medialink <id> | delmedia <id>
  testimonials | addtestimonial | deltestimonial <id>
  subscribers | subscribe | unsubscribe <id>
  reload                 refetch all data from the remote store
  stats [7d|30d|90d|1y]  dashboard
  prune <days>           drop old analytics events
  settings | set <key> <value>
  logout | exit`

// runREPL reads lines from scanner, parses the first token as the command,
// and dispatches to a. Unknown commands are reported back. The loop exits
// on EOF or "exit"/"quit". Handlers print their own errors; the loop stays
// focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("manassa %s > ", statusFn()))
		if !scanner.Scan() {
			return
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn(helpLoggedIn)
			} else {
				printlnFn(helpLoggedOut)
			}

		case "register":
			_ = a.Register(ctx)
		case "login":
			_ = a.Login(ctx)
		case "logout":
			_ = a.Logout(ctx)

		case "articles", "list":
			_ = a.ListArticles(ctx, args)
		case "search":
			if len(args) == 0 {
				printlnFn("Usage: search <term>")
				continue
			}
			_ = a.SearchArticles(ctx, args)
		case "view":
			if len(args) == 0 {
				printlnFn("Usage: view <id>")
				continue
			}
			_ = a.ViewArticle(ctx, args)
		case "addarticle":
			_ = a.AddArticle(ctx)
		case "edit":
			if len(args) == 0 {
				printlnFn("Usage: edit <id>")
				continue
			}
			_ = a.EditArticle(ctx, args)
		case "publish":
			if len(args) == 0 {
				printlnFn("Usage: publish <id>")
				continue
			}
			_ = a.PublishArticle(ctx, args)
		case "archive":
			if len(args) == 0 {
				printlnFn("Usage: archive <id>")
				continue
			}
			_ = a.ArchiveArticle(ctx, args)
		case "delete":
			if len(args) == 0 {
				printlnFn("Usage: delete <id>")
				continue
			}
			_ = a.DeleteArticle(ctx, args)

		case "categories":
			_ = a.ListCategories(ctx)
		case "addcategory":
			_ = a.AddCategory(ctx)
		case "delcategory":
			if len(args) == 0 {
				printlnFn("Usage: delcategory <id>")
				continue
			}
			_ = a.DeleteCategory(ctx, args)

		case "users":
			_ = a.ListUsers(ctx)
		case "adduser":
			_ = a.AddUser(ctx)

		case "media":
			_ = a.ListMedia(ctx)
		case "upload":
			_ = a.UploadMedia(ctx)
		case "medialink":
			if len(args) == 0 {
				printlnFn("Usage: medialink <id>")
				continue
			}
			_ = a.MediaLink(ctx, args)
		case "delmedia":
			if len(args) == 0 {
				printlnFn("Usage: delmedia <id>")
				continue
			}
			_ = a.DeleteMedia(ctx, args)

		case "testimonials":
			_ = a.ListTestimonials(ctx)
		case "addtestimonial":
			_ = a.AddTestimonial(ctx)
		case "deltestimonial":
			if len(args) == 0 {
				printlnFn("Usage: deltestimonial <id>")
				continue
			}
			_ = a.DeleteTestimonial(ctx, args)
		case "subscribers":
			_ = a.ListSubscribers(ctx)
		case "subscribe":
			_ = a.AddSubscriber(ctx)
		case "unsubscribe":
			if len(args) == 0 {
				printlnFn("Usage: unsubscribe <id>")
				continue
			}
			_ = a.Unsubscribe(ctx, args)

		case "reload":
			_ = a.ReloadData(ctx)
		case "stats":
			_ = a.ShowStats(ctx, args)
		case "prune":
			if len(args) == 0 {
				printlnFn("Usage: prune <days>")
				continue
			}
			_ = a.PruneStats(ctx, args)

		case "settings":
			_ = a.ShowSettings(ctx)
		case "set":
			if len(args) < 2 {
				printlnFn("Usage: set <key> <value>")
				continue
			}
			_ = a.SetSetting(ctx, args)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
