package mockserver

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
)

var (
	ErrEmailTaken = errors.New("email already registered")
	ErrNotFound   = errors.New("not found")
)

// User is a stored account. HashedPassword is a bcrypt hash.
type User struct {
	ID             uuid.UUID
	Email          string
	HashedPassword []byte
	IsActive       bool
	IsSuperuser    bool
	IsVerified     bool
}

// Post is a stored feed entry.
type Post struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Caption   string
	URL       string
	FileType  string
	FileName  string
	CreatedAt time.Time
}

type storedFile struct {
	data        []byte
	contentType string
}

// Store keeps all mockserver state in memory. Safe for concurrent use.
type Store struct {
	mu          sync.RWMutex
	users       map[uuid.UUID]*User
	byEmail     map[string]uuid.UUID
	posts       map[uuid.UUID]*Post
	order       []uuid.UUID // insertion order, newest last
	files       map[uuid.UUID]storedFile
	resetTokens map[string]uuid.UUID
}

func NewStore() *Store {
	return &Store{
		users:       make(map[uuid.UUID]*User),
		byEmail:     make(map[string]uuid.UUID),
		posts:       make(map[uuid.UUID]*Post),
		files:       make(map[uuid.UUID]storedFile),
		resetTokens: make(map[string]uuid.UUID),
	}
}

func (s *Store) CreateUser(email string, hashedPassword []byte) (*User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, taken := s.byEmail[email]; taken {
		return nil, ErrEmailTaken
	}

	u := &User{
		ID:             uuid.New(),
		Email:          email,
		HashedPassword: hashedPassword,
		IsActive:       true,
	}
	s.users[u.ID] = u
	s.byEmail[email] = u.ID
	return u, nil
}

func (s *Store) UserByEmail(email string) (*User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.byEmail[email]
	if !ok {
		return nil, ErrNotFound
	}
	return s.users[id], nil
}

func (s *Store) UserByID(id uuid.UUID) (*User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	return u, nil
}

func (s *Store) SetPassword(id uuid.UUID, hashedPassword []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return ErrNotFound
	}
	u.HashedPassword = hashedPassword
	return nil
}

// AddPost stores the post and its file content.
func (s *Store) AddPost(p *Post, data []byte, contentType string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.posts[p.ID] = p
	s.order = append(s.order, p.ID)
	s.files[p.ID] = storedFile{data: data, contentType: contentType}
}

// Posts returns all posts, newest first.
func (s *Store) Posts() []*Post {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*Post, 0, len(s.order))
	for i := len(s.order) - 1; i >= 0; i-- {
		if p, ok := s.posts[s.order[i]]; ok {
			out = append(out, p)
		}
	}
	return out
}

func (s *Store) PostByID(id uuid.UUID) (*Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.posts[id]
	if !ok {
		return nil, ErrNotFound
	}
	return p, nil
}

func (s *Store) DeletePost(id uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.posts, id)
	delete(s.files, id)
}

func (s *Store) File(id uuid.UUID) ([]byte, string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	f, ok := s.files[id]
	if !ok {
		return nil, "", ErrNotFound
	}
	return f.data, f.contentType, nil
}

func (s *Store) IssueResetToken(userID uuid.UUID) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	token := uuid.NewString()
	s.resetTokens[token] = userID
	return token
}

// ConsumeResetToken redeems a one-time password reset token.
func (s *Store) ConsumeResetToken(token string) (uuid.UUID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, ok := s.resetTokens[token]
	if !ok {
		return uuid.Nil, ErrNotFound
	}
	delete(s.resetTokens, token)
	return id, nil
}
