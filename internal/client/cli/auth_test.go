package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/itswijay/feedhub/internal/client/api"
	"github.com/itswijay/feedhub/internal/client/guard"
	"github.com/itswijay/feedhub/internal/client/models"
	"github.com/itswijay/feedhub/internal/client/services"
	"github.com/itswijay/feedhub/internal/client/session"
)

func stubInputs(t *testing.T, email string, password []byte) func() {
	t.Helper()
	origST, origGP := getSimpleText, getPassword
	getSimpleText = func(_ *bufio.Reader, _ string, _ io.Writer) (string, error) { return email, nil }
	getPassword = func(_ io.Writer) ([]byte, error) { return append([]byte(nil), password...), nil }
	return func() {
		getSimpleText = origST
		getPassword = origGP
	}
}

// capturePrintln redirects user-facing output into a slice for assertions.
func capturePrintln(t *testing.T) *[]string {
	t.Helper()
	var lines []string
	orig := printlnFn
	printlnFn = func(args ...any) (int, error) {
		lines = append(lines, strings.TrimSpace(fmt.Sprintln(args...)))
		return 0, nil
	}
	t.Cleanup(func() { printlnFn = orig })
	return &lines
}

func unauthorized() error {
	return &api.Error{Kind: api.ErrUnauthorized, Status: 401, Message: "Unauthorized"}
}

func validationErr(msg string) error {
	return &api.Error{Kind: api.ErrValidation, Status: 403, Message: msg}
}

// fakeClient is an in-memory api.Client. Login flips loggedIn; every
// authenticated call checks it.
type fakeClient struct {
	user     *models.User
	loggedIn bool

	loginErr  error
	regErr    error
	feed      []*models.Post
	feedErr   error
	deleteErr error
}

func (f *fakeClient) Close() error { return nil }

func (f *fakeClient) Login(_ context.Context, email, password string) error {
	if f.loginErr != nil {
		return f.loginErr
	}
	if f.user == nil {
		f.user = &models.User{ID: "u1", Email: email, IsActive: true}
	}
	f.loggedIn = true
	return nil
}

func (f *fakeClient) Register(_ context.Context, email, password string) (*models.User, error) {
	if f.regErr != nil {
		return nil, f.regErr
	}
	f.user = &models.User{ID: "u1", Email: email, IsActive: true}
	return f.user, nil
}

func (f *fakeClient) Logout(context.Context) error {
	f.loggedIn = false
	return nil
}

func (f *fakeClient) CurrentUser(context.Context) (*models.User, error) {
	if !f.loggedIn || f.user == nil {
		return nil, unauthorized()
	}
	return f.user, nil
}

func (f *fakeClient) Feed(context.Context) ([]*models.Post, error) {
	if f.feedErr != nil {
		return nil, f.feedErr
	}
	if !f.loggedIn {
		return nil, unauthorized()
	}
	return f.feed, nil
}

func (f *fakeClient) Upload(_ context.Context, file io.Reader, fileName, caption string, onProgress api.ProgressFunc) (*models.Post, error) {
	if !f.loggedIn {
		return nil, unauthorized()
	}
	data, err := io.ReadAll(file)
	if err != nil {
		return nil, err
	}
	if onProgress != nil {
		onProgress(int64(len(data)), int64(len(data)))
	}
	return &models.Post{ID: "p1", Caption: caption, FileName: fileName, FileType: models.FileTypeImage}, nil
}

func (f *fakeClient) DeletePost(_ context.Context, postID string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	if !f.loggedIn {
		return unauthorized()
	}
	return nil
}

func (f *fakeClient) ForgotPassword(context.Context, string) error        { return nil }
func (f *fakeClient) ResetPassword(context.Context, string, string) error { return nil }

// newTestApp wires an App around a fakeClient with the initial session
// check already resolved.
func newTestApp(t *testing.T, fc api.Client) *App {
	t.Helper()

	store := session.NewStore(fc)
	t.Cleanup(store.Close)

	a := &App{
		client: fc,
		store:  store,
		posts:  services.NewPostService(fc, store),
		reader: bufio.NewReader(strings.NewReader("")),
	}
	a.authGuard = guard.New(guard.RequireAuthenticated, a)
	a.anonGuard = guard.New(guard.RequireAnonymous, a)

	if _, err := store.Initialize(context.Background()); err != nil {
		t.Fatalf("initialize: %v", err)
	}
	return a
}

func TestLogin_Success(t *testing.T) {
	capturePrintln(t)
	restore := stubInputs(t, "alice@example.org", []byte("secret"))
	defer restore()

	fc := &fakeClient{}
	a := newTestApp(t, fc)

	if err := a.Login(context.Background()); err != nil {
		t.Fatalf("Login err: %v", err)
	}
	snap := a.store.Snapshot()
	if snap.Status != session.StatusAuthenticated {
		t.Fatalf("status = %v, want authenticated", snap.Status)
	}
	if snap.User.Email != "alice@example.org" {
		t.Fatalf("user mismatch: %q", snap.User.Email)
	}
}

func TestLogin_BadCredentialsStaysAnonymous(t *testing.T) {
	capturePrintln(t)
	restore := stubInputs(t, "alice@example.org", []byte("wrong"))
	defer restore()

	fc := &fakeClient{loginErr: &api.Error{Kind: api.ErrValidation, Status: 400, Message: "LOGIN_BAD_CREDENTIALS"}}
	a := newTestApp(t, fc)

	err := a.Login(context.Background())
	if !errors.Is(err, api.ErrValidation) {
		t.Fatalf("Login err = %v, want validation", err)
	}
	if a.store.Snapshot().Status != session.StatusAnonymous {
		t.Fatalf("session must stay anonymous")
	}
}

func TestLogin_GatedWhenAuthenticated(t *testing.T) {
	capturePrintln(t)
	restore := stubInputs(t, "alice@example.org", []byte("secret"))
	defer restore()

	fc := &fakeClient{}
	a := newTestApp(t, fc)
	if err := a.Login(context.Background()); err != nil {
		t.Fatalf("Login err: %v", err)
	}

	// The second login is blocked by the anonymous-only guard before any
	// prompt or network call.
	fc.loginErr = errors.New("must not be called")
	if err := a.Login(context.Background()); err != nil {
		t.Fatalf("gated Login err: %v", err)
	}
}

func TestSignup_ChainsIntoLogin(t *testing.T) {
	capturePrintln(t)
	restore := stubInputs(t, "bob@example.org", []byte("secret"))
	defer restore()

	a := newTestApp(t, &fakeClient{})

	if err := a.Signup(context.Background()); err != nil {
		t.Fatalf("Signup err: %v", err)
	}
	snap := a.store.Snapshot()
	if snap.Status != session.StatusAuthenticated || snap.User.Email != "bob@example.org" {
		t.Fatalf("signup did not land authenticated: %+v", snap)
	}
}

func TestLogout_ClearsSession(t *testing.T) {
	capturePrintln(t)
	restore := stubInputs(t, "alice@example.org", []byte("secret"))
	defer restore()

	a := newTestApp(t, &fakeClient{})
	if err := a.Login(context.Background()); err != nil {
		t.Fatalf("Login err: %v", err)
	}

	if err := a.Logout(context.Background()); err != nil {
		t.Fatalf("Logout err: %v", err)
	}
	if a.store.Snapshot().Status != session.StatusAnonymous {
		t.Fatalf("session not cleared")
	}
}
