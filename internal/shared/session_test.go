package shared

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager(t *testing.T) (*SessionManager, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewSessionManager(client, "animeaux_session", time.Hour, false), mr
}

func storeSession(t *testing.T, mr *miniredis.Miniredis, id string, payload sessionPayload) {
	t.Helper()
	data, err := json.Marshal(payload)
	require.NoError(t, err)
	require.NoError(t, mr.Set("session:"+id, string(data)))
}

func TestLoadAnonymous(t *testing.T) {
	sm, _ := newTestManager(t)

	req := httptest.NewRequest(http.MethodGet, "/animals", nil)
	sess, err := sm.Load(context.Background(), req)
	require.NoError(t, err)
	assert.Nil(t, sess.UserID())

	req.AddCookie(&http.Cookie{Name: "animeaux_session", Value: uuid.NewString()})
	sess, err = sm.Load(context.Background(), req)
	require.NoError(t, err)
	assert.Nil(t, sess.UserID())

	rec := httptest.NewRecorder()
	require.NoError(t, sm.Commit(context.Background(), rec, sess))
	assert.Empty(t, rec.Result().Cookies())
}

func TestLoadKnownSessionAndConsumeFlash(t *testing.T) {
	sm, mr := newTestManager(t)
	sessionID := uuid.NewString()
	userID := uuid.New()
	storeSession(t, mr, sessionID, sessionPayload{
		UserID:  userID.String(),
		Flashes: []FlashMessage{{Kind: "success", Message: "Animal enregistré"}},
	})

	req := httptest.NewRequest(http.MethodGet, "/animals", nil)
	req.AddCookie(&http.Cookie{Name: "animeaux_session", Value: sessionID})
	sess, err := sm.Load(context.Background(), req)
	require.NoError(t, err)
	require.NotNil(t, sess.UserID())
	assert.Equal(t, userID, *sess.UserID())

	ctx := ContextWithSession(context.Background(), sess)
	assert.Equal(t, userID, *CurrentUser(ctx))

	flash := sess.PopFlash()
	require.NotNil(t, flash)
	assert.Equal(t, "Animal enregistré", flash.Message)
	assert.Nil(t, sess.PopFlash())

	rec := httptest.NewRecorder()
	require.NoError(t, sm.Commit(context.Background(), rec, sess))
	require.Len(t, rec.Result().Cookies(), 1)

	raw, err := mr.Get("session:" + sessionID)
	require.NoError(t, err)
	var stored sessionPayload
	require.NoError(t, json.Unmarshal([]byte(raw), &stored))
	assert.Empty(t, stored.Flashes)
	assert.Equal(t, userID.String(), stored.UserID)
}

func TestCommitKeepsFieldsOwnedByAuthService(t *testing.T) {
	sm, mr := newTestManager(t)
	sessionID := uuid.NewString()
	userID := uuid.New()
	require.NoError(t, mr.Set("session:"+sessionID, `{"user_id":"`+userID.String()+`","roles":["ADMIN"],"csrf":"abc","flashes":[{"kind":"success","message":"ok"}]}`))

	req := httptest.NewRequest(http.MethodGet, "/animals", nil)
	req.AddCookie(&http.Cookie{Name: "animeaux_session", Value: sessionID})
	sess, err := sm.Load(context.Background(), req)
	require.NoError(t, err)
	require.NotNil(t, sess.PopFlash())
	require.NoError(t, sm.Commit(context.Background(), httptest.NewRecorder(), sess))

	raw, err := mr.Get("session:" + sessionID)
	require.NoError(t, err)
	var stored map[string]json.RawMessage
	require.NoError(t, json.Unmarshal([]byte(raw), &stored))
	assert.JSONEq(t, `["ADMIN"]`, string(stored["roles"]))
	assert.JSONEq(t, `"abc"`, string(stored["csrf"]))
	assert.JSONEq(t, `"`+userID.String()+`"`, string(stored["user_id"]))
	assert.JSONEq(t, `[]`, string(stored["flashes"]))
}

func TestCurrentUserWithoutSession(t *testing.T) {
	assert.Nil(t, CurrentUser(context.Background()))
}
