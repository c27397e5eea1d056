package session

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"go.uber.org/zap"

	"github.com/JoshuaKitai/Fitnessify/internal/model"
	"github.com/JoshuaKitai/Fitnessify/internal/service"
)

// Backend is the subset of the api client the session needs. None of these
// calls go through the 401 gateway.
type Backend interface {
	Login(ctx context.Context, email, password string) (model.User, string, error)
	Register(ctx context.Context, username, email, password string) (model.User, string, error)
	Verify(ctx context.Context, token string) (model.User, error)
}

// TokenStore persists the bearer token across runs.
type TokenStore interface {
	LoadToken(ctx context.Context) (string, error)
	SaveToken(ctx context.Context, token string) error
	ClearToken(ctx context.Context) error
}

// Store holds the current identity and token. The zero value is not usable;
// build one with New.
type Store struct {
	backend Backend
	tokens  TokenStore
	log     *zap.Logger

	mu        sync.Mutex
	user      *model.User
	token     string
	listeners []func()
	done      chan struct{}
}

func New(backend Backend, tokens TokenStore, log *zap.Logger) *Store {
	if log == nil {
		log = zap.NewNop()
	}
	return &Store{backend: backend, tokens: tokens, log: log, done: make(chan struct{})}
}

// Init loads the stored token and verifies it once. A token the backend
// rejects, for whatever reason, is cleared without reporting an error.
func (s *Store) Init(ctx context.Context) error {
	token, err := s.tokens.LoadToken(ctx)
	if err != nil {
		return fmt.Errorf("load stored token: %w", err)
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return nil
	}

	user, err := s.backend.Verify(ctx, token)
	if err != nil {
		s.log.Info("stored token rejected, clearing", zap.Error(err))
		if clearErr := s.tokens.ClearToken(ctx); clearErr != nil {
			return fmt.Errorf("clear rejected token: %w", clearErr)
		}
		return nil
	}

	s.mu.Lock()
	s.user = &user
	s.token = token
	s.mu.Unlock()
	return nil
}

func (s *Store) Login(ctx context.Context, email, password string) (model.User, error) {
	if err := service.ValidateLogin(email, password); err != nil {
		return model.User{}, err
	}
	user, token, err := s.backend.Login(ctx, strings.TrimSpace(email), password)
	if err != nil {
		return model.User{}, err
	}
	if err := s.install(ctx, user, token); err != nil {
		return model.User{}, err
	}
	s.log.Info("logged in", zap.String("username", user.Username))
	return user, nil
}

func (s *Store) Register(ctx context.Context, username, email, password string) (model.User, error) {
	if err := service.ValidateRegistration(username, email, password); err != nil {
		return model.User{}, err
	}
	user, token, err := s.backend.Register(ctx, strings.TrimSpace(username), strings.TrimSpace(email), password)
	if err != nil {
		return model.User{}, err
	}
	if err := s.install(ctx, user, token); err != nil {
		return model.User{}, err
	}
	s.log.Info("registered", zap.String("username", user.Username))
	return user, nil
}

func (s *Store) install(ctx context.Context, user model.User, token string) error {
	if err := s.tokens.SaveToken(ctx, token); err != nil {
		return fmt.Errorf("persist token: %w", err)
	}
	s.mu.Lock()
	s.user = &user
	s.token = token
	select {
	case <-s.done:
		s.done = make(chan struct{})
	default:
	}
	s.mu.Unlock()
	return nil
}

// Logout forgets the token locally. The backend is not told.
func (s *Store) Logout(ctx context.Context) error {
	s.reset()
	if err := s.tokens.ClearToken(ctx); err != nil {
		return fmt.Errorf("clear token: %w", err)
	}
	return nil
}

// Expire is called by the request gateway when the backend answers 401. It
// clears the session and notifies every OnLogout subscriber.
func (s *Store) Expire(ctx context.Context) {
	s.reset()
	if err := s.tokens.ClearToken(ctx); err != nil {
		s.log.Warn("clear expired token", zap.Error(err))
	}

	s.mu.Lock()
	listeners := append([]func(){}, s.listeners...)
	select {
	case <-s.done:
	default:
		close(s.done)
	}
	s.mu.Unlock()

	for _, fn := range listeners {
		fn()
	}
}

func (s *Store) reset() {
	s.mu.Lock()
	s.user = nil
	s.token = ""
	s.mu.Unlock()
}

// OnLogout registers fn to run after a forced logout.
func (s *Store) OnLogout(fn func()) {
	s.mu.Lock()
	s.listeners = append(s.listeners, fn)
	s.mu.Unlock()
}

// Expired returns a channel that is closed when the current session is
// force-expired. A later login arms a fresh channel.
func (s *Store) Expired() <-chan struct{} {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.done
}

func (s *Store) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

// User returns the current identity, or nil when logged out.
func (s *Store) User() *model.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

func (s *Store) Authenticated() bool {
	return s.Token() != ""
}

// TokenExpiry reads the exp claim of the current token. The signature is not
// checked; the result is for display only.
func (s *Store) TokenExpiry() (time.Time, bool) {
	token := s.Token()
	if token == "" {
		return time.Time{}, false
	}
	claims := jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return time.Time{}, false
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, false
	}
	return claims.ExpiresAt.Time, true
}
