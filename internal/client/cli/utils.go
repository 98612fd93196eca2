package cli

import (
	"errors"
	"fmt"

	"github.com/itswijay/feedhub/internal/client/api"
	"github.com/itswijay/feedhub/internal/client/models"
)

// describeErr turns a classified API error into a line fit for the terminal.
// Validation messages come from the backend and are shown untouched.
func describeErr(err error) string {
	var apiErr *api.Error

	switch {
	case errors.Is(err, api.ErrUnavailable):
		return "server unreachable, check your connection"
	case errors.Is(err, api.ErrTimeout):
		return "request timed out"
	case errors.Is(err, api.ErrUnauthorized):
		return "your session has expired, log in again"
	case errors.Is(err, api.ErrValidation):
		if errors.As(err, &apiErr) && apiErr.Message != "" {
			return apiErr.Message
		}
		return "request rejected"
	case errors.Is(err, api.ErrServer):
		return "the server had a problem, try again later"
	}
	return err.Error()
}

func formatPost(p *models.Post) string {
	// Upload responses carry no enrichment fields; a missing author means
	// the post is the caller's own.
	owner := p.Email
	if p.IsOwner || owner == "" {
		owner = "you"
	}
	caption := p.Caption
	if caption == "" {
		caption = "(no caption)"
	}
	return fmt.Sprintf("[%s] %s  by %s at %s  id=%s",
		p.FileType, caption, owner, p.CreatedAt.Format("2006-01-02 15:04"), p.ID)
}
