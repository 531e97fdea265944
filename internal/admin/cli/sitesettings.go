package cli

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// ShowSettings prints the site settings document, keys sorted.
func (a *App) ShowSettings(ctx context.Context) error {
	doc, err := a.site.Get(ctx)
	if err != nil {
		printlnFn("Settings unavailable:", err.Error())
		return err
	}

	keys := make([]string, 0, len(doc))
	for k := range doc {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		printlnFn(fmt.Sprintf("%-20s %v", k, doc[k]))
	}
	return nil
}

// SetSetting patches one top-level settings key. Numeric values are stored
// as numbers, everything else as the literal string.
func (a *App) SetSetting(ctx context.Context, args []string) error {
	key := args[0]
	raw := strings.Join(args[1:], " ")

	var value any = raw
	if n, err := strconv.ParseFloat(raw, 64); err == nil {
		value = n
	}

	if _, err := a.site.Update(ctx, map[string]any{key: value}); err != nil {
		printlnFn("Update failed:", err.Error())
		return err
	}
	printlnFn("Set", key)
	return nil
}
