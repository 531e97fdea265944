// Package cli implements the interactive admin panel: a terminal REPL over
// the content repositories, the analytics log, and the site settings store.
// It works against the remote backend when one is configured and reachable,
// and degrades to the local cache otherwise.
package cli
