package cli

import (
	"context"
	"errors"
	"fmt"
	"mime"
	"os"
	"path/filepath"

	"github.com/aghannam/manassa/internal/common"
	"github.com/aghannam/manassa/internal/models"
	"github.com/aghannam/manassa/internal/netx"
)

func (a *App) ListMedia(ctx context.Context) error {
	items, err := a.media.List(ctx)
	if err != nil {
		printlnFn("Listing failed:", err.Error())
		return err
	}

	for _, m := range items {
		printlnFn(fmt.Sprintf("%-28s %-12s %8d  %s", m.ID, m.Type, m.Size, m.Name))
	}
	return nil
}

// UploadMedia PUTs a local file to a presigned URL and records the asset.
// The bytes go straight to blob storage; only metadata enters the document
// store.
func (a *App) UploadMedia(ctx context.Context) error {
	path, err := getSimpleText(a.reader, "File path", os.Stdout)
	if err != nil {
		return err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		printlnFn("Cannot read file:", err.Error())
		return err
	}

	contentType := mime.TypeByExtension(filepath.Ext(path))
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	key, url, err := a.blobs.PresignPut(ctx)
	if err != nil {
		printlnFn("Blob storage unavailable:", err.Error())
		return err
	}
	if err := netx.UploadToPresignedURL(ctx, url, data, contentType); err != nil {
		printlnFn("Upload failed:", err.Error())
		return err
	}

	m := &models.Media{
		Name:       filepath.Base(path),
		URL:        "/media/" + key,
		Type:       contentType,
		Size:       int64(len(data)),
		StorageKey: key,
	}
	if err := a.media.Create(ctx, m); err != nil {
		printValidation(err)
		return err
	}
	printlnFn("Uploaded", m.Name, "as", m.ID)
	return nil
}

// MediaLink prints a temporary download URL for the stored object behind a
// media record. Items recorded without a storage key (external URLs) just
// echo the stored URL.
func (a *App) MediaLink(ctx context.Context, args []string) error {
	id := args[0]

	m, err := a.media.Get(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			printlnFn("No media item with id", id)
			return nil
		}
		return err
	}

	if m.StorageKey == "" {
		printlnFn(m.URL)
		return nil
	}

	url, err := a.blobs.PresignGet(ctx, m.StorageKey)
	if err != nil {
		printlnFn("Blob storage unavailable:", err.Error())
		return err
	}
	printlnFn(url)
	return nil
}

// DeleteMedia removes the record and, when a storage key is present, the
// blob behind it. A missing blob does not block record removal.
func (a *App) DeleteMedia(ctx context.Context, args []string) error {
	id := args[0]

	m, err := a.media.Get(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			printlnFn("No media item with id", id)
			return nil
		}
		return err
	}

	if m.StorageKey != "" {
		if err := a.blobs.DeleteObject(ctx, m.StorageKey); err != nil {
			a.logger.Warn(ctx, "blob delete failed", "key", m.StorageKey, "error", err)
		}
	}

	if err := a.media.Delete(ctx, id); err != nil {
		printlnFn("Delete failed:", err.Error())
		return err
	}
	printlnFn("Deleted media item", id)
	return nil
}
