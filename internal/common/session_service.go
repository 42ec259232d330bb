package common

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"lostark-hub/partyfinder/internal/auth"
	"lostark-hub/partyfinder/internal/constants"
	gormModels "lostark-hub/partyfinder/internal/models/gorm"
)

var (
	ErrNoSession      = errors.New("no session")
	ErrSessionRevoked = errors.New("session revoked")
)

type sessionClaims struct {
	UserID    uint   `json:"uid"`
	DiscordID string `json:"did"`
	Username  string `json:"name"`
	Language  string `json:"lang"`
	jwt.RegisteredClaims
}

// SessionService keeps sessions in HS256-signed cookies. The only server-side
// state is the list of revoked session ids.
type SessionService struct {
	secret  []byte
	ttl     time.Duration
	secure  bool
	revoked KeyStore
	now     func() time.Time
}

func NewSessionService(secret []byte, ttl time.Duration, secure bool, revoked KeyStore) *SessionService {
	return &SessionService{
		secret:  secret,
		ttl:     ttl,
		secure:  secure,
		revoked: revoked,
		now:     time.Now,
	}
}

// NewSession starts a fresh session for user.
func (s *SessionService) NewSession(user *gormModels.User) auth.Session {
	return auth.Session{
		ID:        uuid.New().String(),
		UserID:    user.ID,
		DiscordID: user.DiscordID,
		Username:  user.Username,
		Language:  user.Language,
		ExpiresAt: s.now().Add(s.ttl).Truncate(time.Second),
	}
}

// Sign encodes a session as a JWT.
func (s *SessionService) Sign(sess auth.Session) (string, error) {
	claims := sessionClaims{
		UserID:    sess.UserID,
		DiscordID: sess.DiscordID,
		Username:  sess.Username,
		Language:  sess.Language,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        sess.ID,
			Subject:   fmt.Sprint(sess.UserID),
			IssuedAt:  jwt.NewNumericDate(s.now()),
			ExpiresAt: jwt.NewNumericDate(sess.ExpiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign session: %w", err)
	}
	return signed, nil
}

// Parse verifies a token and rejects revoked sessions.
func (s *SessionService) Parse(ctx context.Context, tokenString string) (auth.Session, error) {
	claims := &sessionClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(s.now))
	if err != nil {
		return auth.Session{}, fmt.Errorf("failed to parse session: %w", err)
	}
	if !token.Valid || claims.ExpiresAt == nil || claims.UserID == 0 {
		return auth.Session{}, errors.New("invalid session token")
	}

	revoked, err := s.revoked.Has(ctx, string(constants.CachePrefixRevoked)+claims.ID)
	if err != nil {
		return auth.Session{}, fmt.Errorf("failed to check revocation: %w", err)
	}
	if revoked {
		return auth.Session{}, ErrSessionRevoked
	}

	return auth.Session{
		ID:        claims.ID,
		UserID:    claims.UserID,
		DiscordID: claims.DiscordID,
		Username:  claims.Username,
		Language:  claims.Language,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}

// FromRequest reads and verifies the session cookie.
func (s *SessionService) FromRequest(r *http.Request) (auth.Session, error) {
	cookie, err := r.Cookie(constants.SessionCookieName)
	if err != nil || cookie.Value == "" {
		return auth.Session{}, ErrNoSession
	}
	return s.Parse(r.Context(), cookie.Value)
}

// Write sets the session cookie.
func (s *SessionService) Write(w http.ResponseWriter, sess auth.Session) error {
	signed, err := s.Sign(sess)
	if err != nil {
		return err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     constants.SessionCookieName,
		Value:    signed,
		Path:     "/",
		Expires:  sess.ExpiresAt,
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// Clear expires the session cookie on the client.
func (s *SessionService) Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     constants.SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// Revoke blocks the session id until the token would have expired anyway.
func (s *SessionService) Revoke(ctx context.Context, sess auth.Session) error {
	now := s.now()
	if sess.Expired(now) {
		return nil
	}
	return s.revoked.Put(ctx, string(constants.CachePrefixRevoked)+sess.ID, sess.ExpiresAt.Sub(now))
}
