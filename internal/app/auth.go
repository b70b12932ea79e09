package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"hostel_pms/internal/adapters/observability"
	"hostel_pms/internal/domain"
)

// TokenIssuer turns sessions into bearer tokens and back.
type TokenIssuer interface {
	Issue(s domain.Session) (string, error)
	Parse(token string) (domain.Session, error)
}

// Principal is the authenticated user. Exactly one of Staff and Guest is set.
type Principal struct {
	Kind  domain.PrincipalKind
	Staff *domain.Staff
	Guest *domain.Guest
}

// User returns the credential-free record to hand back to the client.
func (p Principal) User() any {
	if p.Staff != nil {
		return p.Staff.Public()
	}
	if p.Guest != nil {
		return p.Guest.Public()
	}
	return nil
}

type LoginResult struct {
	User  any    `json:"user"`
	Token string `json:"token"`
}

type AuthService struct {
	store    domain.StateStore
	sessions domain.SessionStore
	tokens   TokenIssuer
	ttl      time.Duration
	now      func() time.Time
}

func NewAuthService(st domain.StateStore, ss domain.SessionStore, tk TokenIssuer, ttl time.Duration) *AuthService {
	return &AuthService{store: st, sessions: ss, tokens: tk, ttl: ttl, now: time.Now}
}

// Authenticate matches staff first, then guests. Emails compare
// case-insensitively; a guest may also sign in with their national id.
// Empty stored secrets never match.
func (s *AuthService) Authenticate(ctx context.Context, email, secret string) (Principal, error) {
	if email == "" || secret == "" {
		return Principal{}, domain.ErrBadCredentials
	}
	for _, st := range s.store.Staff().List(ctx) {
		if strings.EqualFold(st.Email, email) && st.Password != "" && st.Password == secret {
			return Principal{Kind: domain.PrincipalStaff, Staff: &st}, nil
		}
	}
	for _, g := range s.store.Guests().List(ctx) {
		if !strings.EqualFold(g.Email, email) {
			continue
		}
		if (g.Password != "" && g.Password == secret) || (g.CPF != "" && g.CPF == secret) {
			return Principal{Kind: domain.PrincipalGuest, Guest: &g}, nil
		}
	}
	return Principal{}, domain.ErrBadCredentials
}

// Login authenticates and opens a session whose id is carried by the token.
func (s *AuthService) Login(ctx context.Context, email, secret string) (LoginResult, error) {
	p, err := s.Authenticate(ctx, email, secret)
	if err != nil {
		log.Info().Str("email", email).Msg("login rejected")
		return LoginResult{}, err
	}
	sess := domain.Session{ID: newID("sess_"), Kind: p.Kind, UserID: p.id(), IssuedAt: s.now().UTC()}
	if err := s.sessions.Put(ctx, sess, s.ttl); err != nil {
		return LoginResult{}, fmt.Errorf("store session: %w", err)
	}
	token, err := s.tokens.Issue(sess)
	if err != nil {
		return LoginResult{}, err
	}
	observability.ObserveSession("auth", "login")
	return LoginResult{User: p.User(), Token: token}, nil
}

// Resolve maps a bearer token back to its principal. Revoked sessions and
// deleted users are unauthorized.
func (s *AuthService) Resolve(ctx context.Context, token string) (Principal, domain.Session, error) {
	sess, err := s.tokens.Parse(token)
	if err != nil {
		return Principal{}, domain.Session{}, err
	}
	stored, ok, err := s.sessions.Get(ctx, sess.ID)
	if err != nil {
		return Principal{}, domain.Session{}, fmt.Errorf("load session: %w", err)
	}
	if !ok || stored.UserID != sess.UserID || stored.Kind != sess.Kind {
		return Principal{}, domain.Session{}, fmt.Errorf("%w: session revoked or expired", domain.ErrUnauthorized)
	}
	switch sess.Kind {
	case domain.PrincipalStaff:
		st, err := s.store.Staff().Get(ctx, sess.UserID)
		if err != nil {
			return Principal{}, domain.Session{}, fmt.Errorf("%w: %v", domain.ErrUnauthorized, err)
		}
		return Principal{Kind: sess.Kind, Staff: &st}, sess, nil
	case domain.PrincipalGuest:
		g, err := s.store.Guests().Get(ctx, sess.UserID)
		if err != nil {
			return Principal{}, domain.Session{}, fmt.Errorf("%w: %v", domain.ErrUnauthorized, err)
		}
		return Principal{Kind: sess.Kind, Guest: &g}, sess, nil
	}
	return Principal{}, domain.Session{}, domain.ErrUnauthorized
}

func (s *AuthService) Logout(ctx context.Context, token string) error {
	sess, err := s.tokens.Parse(token)
	if err != nil {
		return err
	}
	observability.ObserveSession("auth", "logout")
	return s.sessions.Del(ctx, sess.ID)
}

func (p Principal) id() string {
	if p.Staff != nil {
		return p.Staff.ID
	}
	if p.Guest != nil {
		return p.Guest.ID
	}
	return ""
}
