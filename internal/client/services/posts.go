// Package services contains application services for the FeedHub client.
// This file defines the post service: feed retrieval with client-side
// filtering and sorting, media upload, and post deletion.
package services

import (
	"context"
	"errors"
	"io"
	"sort"
	"strings"

	"github.com/itswijay/feedhub/internal/client/api"
	"github.com/itswijay/feedhub/internal/client/models"
	"github.com/itswijay/feedhub/internal/client/session"
)

// Order controls feed sorting.
type Order string

const (
	OrderNewestFirst Order = "newest"
	OrderOldestFirst Order = "oldest"
)

// Filter narrows and orders the feed on the client side. The zero value
// keeps every post in the server's order (newest first).
type Filter struct {
	// Query matches case-insensitively against caption and owner email.
	Query string
	// FileType keeps only posts of the given kind when set.
	FileType models.FileType
	// Order sorts by creation time; empty means newest first.
	Order Order
}

// PostService defines the media operations available to pages.
//
// Any authenticated call that fails with api.ErrUnauthorized also reports
// the stale session to the session store, so the rest of the UI reacts
// without the HTTP layer issuing redirects of its own.
type PostService interface {
	Feed(ctx context.Context, f Filter) ([]*models.Post, error)
	Upload(ctx context.Context, file io.Reader, fileName, caption string, onProgress api.ProgressFunc) (*models.Post, error)
	Delete(ctx context.Context, postID string) error
}

type postService struct {
	client api.Client
	store  *session.Store
}

// NewPostService constructs a PostService bound to the given API client and
// session store.
func NewPostService(client api.Client, store *session.Store) PostService {
	return &postService{client: client, store: store}
}

func (p *postService) Feed(ctx context.Context, f Filter) ([]*models.Post, error) {
	posts, err := p.client.Feed(ctx)
	if err != nil {
		return nil, p.report(err)
	}
	return applyFilter(posts, f), nil
}

func (p *postService) Upload(ctx context.Context, file io.Reader, fileName, caption string, onProgress api.ProgressFunc) (*models.Post, error) {
	post, err := p.client.Upload(ctx, file, fileName, caption, onProgress)
	if err != nil {
		return nil, p.report(err)
	}
	return post, nil
}

func (p *postService) Delete(ctx context.Context, postID string) error {
	return p.report(p.client.DeletePost(ctx, postID))
}

// report invalidates the session on authorization failures and passes the
// error through unchanged.
func (p *postService) report(err error) error {
	if err != nil && errors.Is(err, api.ErrUnauthorized) {
		p.store.Invalidate()
	}
	return err
}

// applyFilter returns a new slice; the input order is preserved for ties.
func applyFilter(posts []*models.Post, f Filter) []*models.Post {
	out := make([]*models.Post, 0, len(posts))
	query := strings.ToLower(strings.TrimSpace(f.Query))

	for _, post := range posts {
		if f.FileType != "" && post.FileType != f.FileType {
			continue
		}
		if query != "" &&
			!strings.Contains(strings.ToLower(post.Caption), query) &&
			!strings.Contains(strings.ToLower(post.Email), query) {
			continue
		}
		out = append(out, post)
	}

	switch f.Order {
	case OrderOldestFirst:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].CreatedAt.Before(out[j].CreatedAt.Time)
		})
	case OrderNewestFirst:
		sort.SliceStable(out, func(i, j int) bool {
			return out[j].CreatedAt.Before(out[i].CreatedAt.Time)
		})
	}
	return out
}
