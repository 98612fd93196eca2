// Package mockserver is an in-memory stand-in for the FeedHub backend.
//
// It mirrors the production REST contract (fastapi-users style auth with an
// HTTP-only JWT cookie, feed/upload/delete media endpoints, error bodies of
// the form {"detail": ...}) so the client, its tests, and frontend work can
// run without the real service. Uploaded bytes are kept in memory and served
// back from /media/{id}.
package mockserver

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/itswijay/feedhub/internal/common"
	"github.com/itswijay/feedhub/internal/logging"
)

// tokenLifetime matches the production cookie/JWT expiry.
const tokenLifetime = time.Duration(common.SessionCookieMaxAge) * time.Second

type ctxKey int

const userKey ctxKey = 0

// Server implements the backend contract over an in-memory Store.
type Server struct {
	store  *Store
	secret []byte
	log    logging.Logger
	router chi.Router
}

type Option func(*Server)

// WithLogger sets the diagnostic logger.
func WithLogger(l logging.Logger) Option {
	return func(s *Server) { s.log = l }
}

// WithStore injects a pre-populated store (used by tests).
func WithStore(st *Store) Option {
	return func(s *Server) { s.store = st }
}

// New builds a Server signing session tokens with secret.
func New(secret string, opts ...Option) *Server {
	s := &Server{
		store:  NewStore(),
		secret: []byte(secret),
		log:    logging.NewNopLogger(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Post("/auth/register", s.handleRegister)
	r.Post("/auth/jwt/login", s.handleLogin)
	r.Post("/auth/forgot-password", s.handleForgotPassword)
	r.Post("/auth/reset-password", s.handleResetPassword)
	r.Get("/media/{fileID}", s.handleMedia)

	r.Group(func(r chi.Router) {
		r.Use(s.requireUser)
		r.Post("/auth/jwt/logout", s.handleLogout)
		r.Get("/users/me", s.handleCurrentUser)
		r.Get("/feed", s.handleFeed)
		r.Post("/upload", s.handleUpload)
		r.Delete("/posts/{postID}", s.handleDeletePost)
	})

	return r
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// requireUser resolves the session cookie to a user or rejects with 401.
func (s *Server) requireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, err := s.userFromCookie(r)
		if err != nil {
			writeDetail(w, http.StatusUnauthorized, "Unauthorized")
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), userKey, user)))
	})
}

func currentUser(r *http.Request) *User {
	return r.Context().Value(userKey).(*User)
}

func (s *Server) userFromCookie(r *http.Request) (*User, error) {
	ck, err := r.Cookie(common.SessionCookieName)
	if err != nil {
		return nil, err
	}

	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(ck.Value, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, jwt.ErrTokenUnverifiable
	}

	id, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, err
	}

	user, err := s.store.UserByID(id)
	if err != nil || !user.IsActive {
		return nil, ErrNotFound
	}
	return user, nil
}

func (s *Server) issueToken(user *User) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   user.ID.String(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(tokenLifetime)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

func sessionCookie(value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     common.SessionCookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeDetail writes a fastapi-style error body.
func writeDetail(w http.ResponseWriter, status int, detail any) {
	writeJSON(w, status, map[string]any{"detail": detail})
}

func userJSON(u *User) map[string]any {
	return map[string]any{
		"id":           u.ID.String(),
		"email":        u.Email,
		"is_active":    u.IsActive,
		"is_superuser": u.IsSuperuser,
		"is_verified":  u.IsVerified,
	}
}
