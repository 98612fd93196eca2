package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/itswijay/feedhub/internal/client/models"
	"github.com/itswijay/feedhub/internal/client/services"
)

// Feed shows the feed, newest first. Arguments narrow it down: "type=image"
// or "type=video" keeps one media kind, "order=oldest" flips the sort, and
// any other token becomes a free-text match on caption and author.
func (a *App) Feed(ctx context.Context, args []string) error {
	if !a.gate(a.authGuard) {
		return nil
	}

	filter, err := parseFilter(args)
	if err != nil {
		printlnFn(err.Error())
		return err
	}

	posts, err := a.posts.Feed(ctx, filter)
	if err != nil {
		printlnFn("Feed failed:", describeErr(err))
		return err
	}

	if len(posts) == 0 {
		printlnFn("The feed is empty.")
		return nil
	}
	for _, post := range posts {
		printlnFn(formatPost(post))
	}
	return nil
}

func parseFilter(args []string) (services.Filter, error) {
	var f services.Filter
	var query []string

	for _, arg := range args {
		switch {
		case strings.HasPrefix(arg, "type="):
			switch v := strings.TrimPrefix(arg, "type="); v {
			case "image":
				f.FileType = models.FileTypeImage
			case "video":
				f.FileType = models.FileTypeVideo
			default:
				return f, fmt.Errorf("unknown type %q (want image or video)", v)
			}
		case strings.HasPrefix(arg, "order="):
			switch v := strings.TrimPrefix(arg, "order="); v {
			case "oldest":
				f.Order = services.OrderOldestFirst
			case "newest":
				f.Order = services.OrderNewestFirst
			default:
				return f, fmt.Errorf("unknown order %q (want newest or oldest)", v)
			}
		default:
			query = append(query, arg)
		}
	}

	f.Query = strings.Join(query, " ")
	return f, nil
}
