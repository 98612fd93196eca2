package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/itswijay/feedhub/internal/client/api"
	"github.com/itswijay/feedhub/internal/client/models"
	"github.com/itswijay/feedhub/internal/logging"
)

// ErrSuperseded is returned by Login when a logout settled while the login
// was in flight. The server may have accepted the credentials, but the local
// session stays anonymous: logout always wins.
var ErrSuperseded = errors.New("login superseded by logout")

// DefaultRevalidateInterval is how often an authenticated session is
// re-checked against the backend.
const DefaultRevalidateInterval = 5 * time.Minute

// revalidateTimeout caps a single background identity check.
const revalidateTimeout = 30 * time.Second

// Store is the session state machine.
//
// Transitions:
//
//	Unknown       --(Initialize ok)----> Authenticated
//	Unknown       --(Initialize fail)--> Anonymous
//	Anonymous     --(Login ok)---------> Authenticated
//	Authenticated --(Logout | revalidate fail | Invalidate)--> Anonymous
//
// Unknown is entered exactly once, at construction. A revalidation timer is
// armed on every entry into Authenticated and disarmed on every exit; a
// generation counter ensures a login that settles after a logout cannot
// resurrect the session.
//
// All methods are safe for concurrent use. Subscriber callbacks are invoked
// outside the store's lock and must not assume any ordering between
// overlapping transitions; they receive the snapshot the transition produced.
type Store struct {
	client        api.Client
	log           logging.Logger
	revalInterval time.Duration

	initOnce sync.Once
	initDone chan struct{}

	mu        sync.Mutex
	status    Status
	user      *models.User
	gen       uint64
	revalStop chan struct{}
	subs      map[int]func(Snapshot)
	nextSub   int
}

type Option func(*Store)

// WithLogger sets the diagnostic logger. Session-check failures are logged
// here and nowhere else; they are silent to the user by design.
func WithLogger(l logging.Logger) Option {
	return func(s *Store) { s.log = l }
}

// WithRevalidateInterval overrides the periodic re-check interval.
// A non-positive value disables revalidation.
func WithRevalidateInterval(d time.Duration) Option {
	return func(s *Store) { s.revalInterval = d }
}

// NewStore builds a Store in StatusUnknown around the given API client.
func NewStore(client api.Client, opts ...Option) *Store {
	s := &Store{
		client:        client,
		log:           logging.NewNopLogger(),
		revalInterval: DefaultRevalidateInterval,
		initDone:      make(chan struct{}),
		status:        StatusUnknown,
		subs:          make(map[int]func(Snapshot)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Initialize resolves the initial session state by querying the backend
// identity endpoint. It is single-flight: the first caller triggers the
// network call, concurrent and repeated callers share its outcome. The
// returned snapshot is the resolved state; the error is non-nil only when
// ctx expired before resolution (the resolution itself still completes in
// the background).
//
// Any failure of the identity check, including timeouts and 401s, resolves
// to StatusAnonymous and is not surfaced as an error.
func (s *Store) Initialize(ctx context.Context) (Snapshot, error) {
	s.initOnce.Do(func() {
		go s.runInitialize()
	})

	select {
	case <-s.initDone:
		return s.Snapshot(), nil
	case <-ctx.Done():
		return s.Snapshot(), ctx.Err()
	}
}

func (s *Store) runInitialize() {
	defer close(s.initDone)

	ctx, cancel := context.WithTimeout(context.Background(), revalidateTimeout)
	defer cancel()

	user, err := s.client.CurrentUser(ctx)

	s.mu.Lock()
	// A login that raced ahead of initialization already resolved the state;
	// the probe result is stale then.
	if s.status != StatusUnknown {
		s.mu.Unlock()
		return
	}
	if err != nil {
		s.log.Info(ctx, "no existing session", "reason", err)
		s.status = StatusAnonymous
		s.user = nil
	} else {
		s.log.Info(ctx, "session restored", "user", user.Email)
		s.setAuthenticatedLocked(user)
	}
	fns, snap := s.subscribersLocked()
	s.mu.Unlock()

	dispatch(fns, snap)
}

// Login authenticates with the given credentials and, on success, fetches
// the identity record bound to the new session. A failed identity fetch
// after accepted credentials is an error distinct from a credential
// rejection: the former wraps the fetch failure, the latter returns the
// backend's rejection as-is. In both failure cases no partial user is
// stored and the session stays (or returns to) anonymous.
func (s *Store) Login(ctx context.Context, email, password string) error {
	s.mu.Lock()
	gen := s.gen
	s.mu.Unlock()

	if err := s.client.Login(ctx, email, password); err != nil {
		s.log.Info(ctx, "login rejected", "err", err)
		return err
	}

	user, err := s.client.CurrentUser(ctx)
	if err != nil {
		s.log.Error(ctx, "identity fetch after accepted login failed", "err", err)
		return fmt.Errorf("identity fetch after login: %w", err)
	}

	s.mu.Lock()
	if s.gen != gen {
		s.mu.Unlock()
		s.log.Warn(ctx, "discarding login result, logout settled first")
		return ErrSuperseded
	}
	s.setAuthenticatedLocked(user)
	fns, snap := s.subscribersLocked()
	s.mu.Unlock()

	dispatch(fns, snap)
	return nil
}

// Signup registers a new account and, because the backend does not
// authenticate on registration, chains into Login with the same
// credentials. A registration failure is returned without attempting login;
// a chained login failure is returned with the session still anonymous.
func (s *Store) Signup(ctx context.Context, email, password string) error {
	if _, err := s.client.Register(ctx, email, password); err != nil {
		return err
	}
	if err := s.Login(ctx, email, password); err != nil {
		return fmt.Errorf("account created but login failed: %w", err)
	}
	return nil
}

// Logout invalidates the session remotely on a best-effort basis and clears
// local state unconditionally. The client must never stay authenticated
// because a logout network call failed.
func (s *Store) Logout(ctx context.Context) {
	if err := s.client.Logout(ctx); err != nil {
		s.log.Warn(ctx, "remote logout failed, clearing local session anyway", "err", err)
	}

	s.mu.Lock()
	s.toAnonymousLocked()
	fns, snap := s.subscribersLocked()
	s.mu.Unlock()

	dispatch(fns, snap)
}

// Invalidate transitions to anonymous after an authenticated call failed
// with an authorization error. Services call it when the backend rejects
// the session credential outside the store's own operations. It is a no-op
// unless the session is currently authenticated.
func (s *Store) Invalidate() {
	s.mu.Lock()
	if s.status != StatusAuthenticated {
		s.mu.Unlock()
		return
	}
	s.toAnonymousLocked()
	fns, snap := s.subscribersLocked()
	s.mu.Unlock()

	dispatch(fns, snap)
}

// Subscribe registers fn to be called with the snapshot produced by every
// subsequent transition. The returned function cancels the subscription.
func (s *Store) Subscribe(fn func(Snapshot)) (cancel func()) {
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

// Snapshot returns the current state.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{Status: s.status, User: s.user}
}

// Close stops the revalidation timer. The store remains readable.
func (s *Store) Close() {
	s.mu.Lock()
	s.disarmRevalidateLocked()
	s.mu.Unlock()
}

// setAuthenticatedLocked enters Authenticated and arms the revalidation
// timer. mu must be held.
func (s *Store) setAuthenticatedLocked(user *models.User) {
	s.status = StatusAuthenticated
	s.user = user
	s.armRevalidateLocked()
}

// toAnonymousLocked enters Anonymous, bumps the generation so in-flight
// logins cannot commit, and disarms the revalidation timer. mu must be held.
func (s *Store) toAnonymousLocked() {
	s.gen++
	s.status = StatusAnonymous
	s.user = nil
	s.disarmRevalidateLocked()
}

func (s *Store) armRevalidateLocked() {
	if s.revalStop != nil || s.revalInterval <= 0 {
		return
	}
	stop := make(chan struct{})
	s.revalStop = stop
	go s.revalidateLoop(stop)
}

func (s *Store) disarmRevalidateLocked() {
	if s.revalStop != nil {
		close(s.revalStop)
		s.revalStop = nil
	}
}

// revalidateLoop re-issues the identity query every interval while the
// session stays authenticated. A failed check expires the session; the loop
// then exits, and a fresh one is started on the next entry into
// Authenticated.
func (s *Store) revalidateLoop(stop chan struct{}) {
	ticker := time.NewTicker(s.revalInterval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			ctx, cancel := context.WithTimeout(context.Background(), revalidateTimeout)
			user, err := s.client.CurrentUser(ctx)
			cancel()

			if err != nil {
				s.log.Info(ctx, "session no longer valid", "reason", err)
				s.expire(stop)
				return
			}
			s.refreshUser(stop, user)
		}
	}
}

// expire transitions to Anonymous on behalf of the revalidation loop owning
// stop. If a newer loop owns the timer by now, the result is stale and
// dropped.
func (s *Store) expire(stop chan struct{}) {
	s.mu.Lock()
	if s.revalStop != stop {
		s.mu.Unlock()
		return
	}
	s.toAnonymousLocked()
	fns, snap := s.subscribersLocked()
	s.mu.Unlock()

	dispatch(fns, snap)
}

// refreshUser updates the cached user record from a successful re-check.
// No notification: the status did not transition.
func (s *Store) refreshUser(stop chan struct{}, user *models.User) {
	s.mu.Lock()
	if s.revalStop == stop && s.status == StatusAuthenticated {
		s.user = user
	}
	s.mu.Unlock()
}

func (s *Store) subscribersLocked() ([]func(Snapshot), Snapshot) {
	fns := make([]func(Snapshot), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	return fns, Snapshot{Status: s.status, User: s.user}
}

func dispatch(fns []func(Snapshot), snap Snapshot) {
	for _, fn := range fns {
		fn(snap)
	}
}
