package shared

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// FlashMessage represents a one-time notification stored in session.
type FlashMessage struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// SessionManager reads cookie based sessions backed by Redis. Sessions are
// created by the authentication service; this service only reads the user and
// consumes flashes.
type SessionManager struct {
	client     *redis.Client
	cookieName string
	ttl        time.Duration
	secure     bool
}

// Session holds per-request session data.
type Session struct {
	ID      string
	userID  string
	flashes []FlashMessage
	known   bool
	dirty   bool
	// raw keeps every field of the stored payload so Commit only rewrites flashes.
	raw map[string]json.RawMessage
}

type sessionPayload struct {
	UserID  string         `json:"user_id"`
	Flashes []FlashMessage `json:"flashes"`
}

// NewSessionManager constructs a SessionManager.
func NewSessionManager(client *redis.Client, cookieName string, ttl time.Duration, secure bool) *SessionManager {
	return &SessionManager{
		client:     client,
		cookieName: cookieName,
		ttl:        ttl,
		secure:     secure,
	}
}

// Load returns the session of the request. Requests without a cookie, or with
// a cookie the store no longer knows, get an anonymous session.
func (sm *SessionManager) Load(ctx context.Context, r *http.Request) (*Session, error) {
	cookie, err := r.Cookie(sm.cookieName)
	if err != nil {
		if errors.Is(err, http.ErrNoCookie) {
			return &Session{}, nil
		}
		return nil, err
	}
	if _, err := uuid.Parse(cookie.Value); err != nil {
		return &Session{}, nil
	}

	payload, err := sm.client.Get(ctx, sm.redisKey(cookie.Value)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return &Session{}, nil
		}
		return nil, err
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(payload, &raw); err != nil {
		return nil, err
	}
	var stored sessionPayload
	if err := json.Unmarshal(payload, &stored); err != nil {
		return nil, err
	}
	return &Session{
		ID:      cookie.Value,
		userID:  stored.UserID,
		flashes: stored.Flashes,
		known:   true,
		raw:     raw,
	}, nil
}

// Commit persists consumed flashes and refreshes the cookie of known sessions.
func (sm *SessionManager) Commit(ctx context.Context, w http.ResponseWriter, sess *Session) error {
	if sess == nil || !sess.known {
		return nil
	}
	if sess.dirty {
		flashes, err := json.Marshal(sess.flashes)
		if err != nil {
			return err
		}
		fields := make(map[string]json.RawMessage, len(sess.raw)+1)
		for k, v := range sess.raw {
			fields[k] = v
		}
		fields["flashes"] = flashes
		data, err := json.Marshal(fields)
		if err != nil {
			return err
		}
		if err := sm.client.Set(ctx, sm.redisKey(sess.ID), data, sm.ttl).Err(); err != nil {
			return err
		}
		sess.dirty = false
	}
	http.SetCookie(w, &http.Cookie{
		Name:     sm.cookieName,
		Value:    sess.ID,
		Path:     "/",
		HttpOnly: true,
		Secure:   sm.secure,
		SameSite: http.SameSiteLaxMode,
		Expires:  time.Now().Add(sm.ttl),
	})
	return nil
}

// TTL exposes the configured session lifetime.
func (sm *SessionManager) TTL() time.Duration {
	return sm.ttl
}

// CookieName returns the cookie identifier used for sessions.
func (sm *SessionManager) CookieName() string {
	return sm.cookieName
}

// UserID returns the signed-in user, or nil for anonymous sessions.
func (s *Session) UserID() *uuid.UUID {
	if s == nil || s.userID == "" {
		return nil
	}
	id, err := uuid.Parse(s.userID)
	if err != nil {
		return nil
	}
	return &id
}

// PopFlash retrieves and clears the oldest flash message.
func (s *Session) PopFlash() *FlashMessage {
	if s == nil || len(s.flashes) == 0 {
		return nil
	}
	msg := s.flashes[0]
	s.flashes = s.flashes[1:]
	s.dirty = true
	return &msg
}

func (sm *SessionManager) redisKey(id string) string {
	return "session:" + id
}
