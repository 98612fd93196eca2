package cli

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/itswijay/feedhub/internal/client/models"
)

func feedFixture() []*models.Post {
	at := func(min int) models.Time {
		return models.Time{Time: time.Date(2026, 8, 1, 12, min, 0, 0, time.UTC)}
	}
	return []*models.Post{
		{ID: "p2", Caption: "sunset", FileType: models.FileTypeVideo, Email: "bob@example.org", CreatedAt: at(2)},
		{ID: "p1", Caption: "my cat", FileType: models.FileTypeImage, Email: "alice@example.org", CreatedAt: at(1), IsOwner: true},
	}
}

func TestFeed_GatedPrintsHintOnce(t *testing.T) {
	lines := capturePrintln(t)

	a := newTestApp(t, &fakeClient{})
	ctx := context.Background()

	// Three attempts while anonymous: the hint shows once, the guard stays
	// tripped until the session changes.
	for i := 0; i < 3; i++ {
		if err := a.Feed(ctx, nil); err != nil {
			t.Fatalf("gated Feed err: %v", err)
		}
	}

	hints := 0
	for _, l := range *lines {
		if strings.Contains(l, "log in first") {
			hints++
		}
	}
	if hints != 1 {
		t.Fatalf("want exactly one redirect hint, got %d in %v", hints, *lines)
	}
}

func TestFeed_PrintsPosts(t *testing.T) {
	lines := capturePrintln(t)
	restore := stubInputs(t, "alice@example.org", []byte("secret"))
	defer restore()

	fc := &fakeClient{feed: feedFixture()}
	a := newTestApp(t, fc)
	ctx := context.Background()

	if err := a.Login(ctx); err != nil {
		t.Fatalf("Login err: %v", err)
	}
	if err := a.Feed(ctx, nil); err != nil {
		t.Fatalf("Feed err: %v", err)
	}

	out := strings.Join(*lines, "\n")
	if !strings.Contains(out, "sunset") || !strings.Contains(out, "my cat") {
		t.Fatalf("feed output missing posts:\n%s", out)
	}
	if !strings.Contains(out, "by you") {
		t.Fatalf("own post not marked:\n%s", out)
	}
}

func TestFeed_FilterArgs(t *testing.T) {
	lines := capturePrintln(t)
	restore := stubInputs(t, "alice@example.org", []byte("secret"))
	defer restore()

	fc := &fakeClient{feed: feedFixture()}
	a := newTestApp(t, fc)
	ctx := context.Background()

	if err := a.Login(ctx); err != nil {
		t.Fatalf("Login err: %v", err)
	}
	if err := a.Feed(ctx, []string{"type=video"}); err != nil {
		t.Fatalf("Feed err: %v", err)
	}

	out := strings.Join(*lines, "\n")
	if !strings.Contains(out, "sunset") {
		t.Fatalf("video post filtered away:\n%s", out)
	}
	if strings.Contains(out, "my cat") {
		t.Fatalf("image post not filtered:\n%s", out)
	}
}

func TestFeed_BadFilterArg(t *testing.T) {
	capturePrintln(t)
	restore := stubInputs(t, "alice@example.org", []byte("secret"))
	defer restore()

	a := newTestApp(t, &fakeClient{})
	ctx := context.Background()

	if err := a.Login(ctx); err != nil {
		t.Fatalf("Login err: %v", err)
	}
	if err := a.Feed(ctx, []string{"type=gif"}); err == nil {
		t.Fatalf("want error for unknown type")
	}
}

func TestGuard_RearmsAfterLogin(t *testing.T) {
	lines := capturePrintln(t)
	restore := stubInputs(t, "alice@example.org", []byte("secret"))
	defer restore()

	a := newTestApp(t, &fakeClient{})
	ctx := context.Background()

	_ = a.Feed(ctx, nil) // trips the guard
	if err := a.Login(ctx); err != nil {
		t.Fatalf("Login err: %v", err)
	}
	if err := a.Logout(ctx); err != nil {
		t.Fatalf("Logout err: %v", err)
	}
	_ = a.Feed(ctx, nil) // violated again after the session cycled

	hints := 0
	for _, l := range *lines {
		if strings.Contains(l, "log in first") {
			hints++
		}
	}
	if hints != 2 {
		t.Fatalf("want a fresh hint per violation episode, got %d", hints)
	}
}

func TestDelete_ReportsBackendMessage(t *testing.T) {
	lines := capturePrintln(t)
	restore := stubInputs(t, "alice@example.org", []byte("secret"))
	defer restore()

	fc := &fakeClient{}
	a := newTestApp(t, fc)
	ctx := context.Background()

	if err := a.Login(ctx); err != nil {
		t.Fatalf("Login err: %v", err)
	}

	fc.deleteErr = validationErr("You do not have permission to delete this post")
	if err := a.Delete(ctx, "p9"); err == nil {
		t.Fatalf("want delete error")
	}

	out := strings.Join(*lines, "\n")
	if !strings.Contains(out, "permission") {
		t.Fatalf("backend message not surfaced:\n%s", out)
	}
}

func TestProfile_PrintsAccount(t *testing.T) {
	lines := capturePrintln(t)
	restore := stubInputs(t, "alice@example.org", []byte("secret"))
	defer restore()

	a := newTestApp(t, &fakeClient{})
	ctx := context.Background()

	if err := a.Login(ctx); err != nil {
		t.Fatalf("Login err: %v", err)
	}
	if err := a.Profile(ctx); err != nil {
		t.Fatalf("Profile err: %v", err)
	}

	if !strings.Contains(strings.Join(*lines, "\n"), "alice@example.org") {
		t.Fatalf("profile output missing email: %v", *lines)
	}
}
