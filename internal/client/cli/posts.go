package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/itswijay/feedhub/internal/client/api"
)

// Upload prompts for a file path and an optional caption, then streams the
// file to the backend, printing coarse progress along the way.
func (a *App) Upload(ctx context.Context) error {
	if !a.gate(a.authGuard) {
		return nil
	}

	path, err := getSimpleText(a.reader, "Path to the media file", os.Stdout)
	if err != nil {
		return err
	}
	caption, err := getSimpleText(a.reader, "Caption (optional)", os.Stdout)
	if err != nil {
		return err
	}

	file, err := os.Open(path)
	if err != nil {
		printlnFn("Cannot open file:", err.Error())
		return err
	}
	defer file.Close()

	post, err := a.posts.Upload(ctx, file, filepath.Base(path), caption, progressPrinter())
	if err != nil {
		printlnFn("Upload failed:", describeErr(err))
		return err
	}

	printlnFn("Uploaded:", formatPost(post))
	return nil
}

// Delete removes one of the user's own posts by id.
func (a *App) Delete(ctx context.Context, postID string) error {
	if !a.gate(a.authGuard) {
		return nil
	}

	if err := a.posts.Delete(ctx, postID); err != nil {
		printlnFn("Delete failed:", describeErr(err))
		return err
	}
	printlnFn("Post deleted.")
	return nil
}

// Profile prints the account bound to the current session.
func (a *App) Profile(ctx context.Context) error {
	if !a.gate(a.authGuard) {
		return nil
	}

	user := a.store.Snapshot().User
	printlnFn("Email:   ", user.Email)
	printlnFn("ID:      ", user.ID)
	printlnFn("Active:  ", user.IsActive)
	printlnFn("Verified:", user.IsVerified)
	return nil
}

// progressPrinter returns a progress callback that prints each crossed
// 10% step once.
func progressPrinter() api.ProgressFunc {
	last := -1
	return func(sent, total int64) {
		if total <= 0 {
			return
		}
		step := int(sent * 100 / total / 10)
		if step > last {
			last = step
			printlnFn(fmt.Sprintf("... %d%%", step*10))
		}
	}
}
