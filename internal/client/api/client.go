// Package api implements the HTTP client for the FeedHub backend.
//
// The session credential is an HTTP-only cookie established by the backend
// on login; the client carries it in its cookie jar and never reads or
// attaches it manually. Every failure is classified into one of the sentinel
// kinds in errors.go and wrapped in *Error, so callers branch with errors.Is
// and surface Error.Message untouched.
package api

import (
	"context"
	"io"

	"github.com/itswijay/feedhub/internal/client/models"
)

// ProgressFunc reports upload progress. sent grows monotonically up to total.
type ProgressFunc func(sent, total int64)

// Client defines the remote operations the FeedHub client performs.
//
// Contract:
//   - Login: authenticate with email/password; the backend sets the session
//     cookie as a side effect. The response body carries no user data.
//   - Register: create a new account; does not authenticate.
//   - Logout: invalidate the session cookie on the server.
//   - CurrentUser: fetch the identity bound to the current session cookie.
//   - Feed, Upload, DeletePost: authenticated media operations.
//   - ForgotPassword, ResetPassword: password recovery, unauthenticated.
//   - Close: release underlying transport resources.
//
// All methods must honor context cancellation/timeouts.
type Client interface {
	Close() error
	Login(ctx context.Context, email, password string) error
	Register(ctx context.Context, email, password string) (*models.User, error)
	Logout(ctx context.Context) error
	CurrentUser(ctx context.Context) (*models.User, error)
	Feed(ctx context.Context) ([]*models.Post, error)
	Upload(ctx context.Context, file io.Reader, fileName, caption string, onProgress ProgressFunc) (*models.Post, error)
	DeletePost(ctx context.Context, postID string) error
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, token, password string) error
}
