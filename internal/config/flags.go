package config

import (
	"flag"
	"os"

	"github.com/aghannam/manassa/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags:
//
//	-d string   PostgreSQL DSN of the remote document store
//	-k string   JWT secret key
//	-cache-dir  directory holding the local cache database
//
// os.Args is filtered to only the flags handled here, so flag parsing does
// not interfere with other components (see flagx.FilterArgs).
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-d", "-k", "-cache-dir"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.DatabaseDSN, "d", cfg.DatabaseDSN, "remote document store DSN")
	fs.StringVar(&cfg.SecretKey, "k", cfg.SecretKey, "JWT secret key")
	fs.StringVar(&cfg.CacheDir, "cache-dir", cfg.CacheDir, "local cache directory")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
