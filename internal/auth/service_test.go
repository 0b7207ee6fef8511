package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dheebz/spotify-cli-sub001/internal/errs"
	"github.com/Dheebz/spotify-cli-sub001/internal/store"
)

func testMetadata(t *testing.T) *store.Metadata {
	t.Helper()
	return store.NewMetadata(t.TempDir())
}

// tokenEndpoint mocks the OAuth token endpoint, counting refresh calls.
func tokenEndpoint(t *testing.T, access string, calls *atomic.Int32) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"access_token":  access,
			"token_type":    "Bearer",
			"refresh_token": "refresh-next",
			"expires_in":    3600,
			"scope":         "user-read-private user-library-read",
		})
	}))
	t.Cleanup(server.Close)
	return server
}

func TestToken_NotLoggedIn(t *testing.T) {
	svc := NewService(testMetadata(t), nil)

	_, err := svc.Token(context.Background())
	require.Error(t, err)
	assert.Equal(t, errs.KindAuthRequired, errs.KindOf(err))
}

func TestToken_ValidTokenReturnedWithoutRefresh(t *testing.T) {
	meta := testMetadata(t)
	require.NoError(t, meta.Save(store.MetadataDoc{
		Auth:   &store.Token{AccessToken: "tok-live", ExpiresAt: time.Now().Add(time.Hour).Unix()},
		Client: &store.ClientInfo{ClientID: "cid"},
	}))
	svc := NewService(meta, nil, WithEndpoints(Endpoints{TokenURL: "http://127.0.0.1:1/unused"}))

	tok, err := svc.Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "tok-live", tok)
}

func TestToken_ExpiredTriggersRefreshAndPersists(t *testing.T) {
	meta := testMetadata(t)
	require.NoError(t, meta.Save(store.MetadataDoc{
		Auth: &store.Token{
			AccessToken:  "tok-old",
			RefreshToken: "refresh-old",
			ExpiresAt:    time.Now().Add(-time.Second).Unix(),
		},
		Client: &store.ClientInfo{ClientID: "cid"},
	}))

	var calls atomic.Int32
	endpoint := tokenEndpoint(t, "tok-new", &calls)
	svc := NewService(meta, nil, WithEndpoints(Endpoints{TokenURL: endpoint.URL}))

	tok, err := svc.Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "tok-new", tok)
	assert.Equal(t, int32(1), calls.Load())

	doc, err := meta.Load()
	require.NoError(t, err)
	require.NotNil(t, doc.Auth)
	assert.Equal(t, "tok-new", doc.Auth.AccessToken)
	assert.Equal(t, "refresh-next", doc.Auth.RefreshToken)
	assert.Greater(t, doc.Auth.ExpiresAt, time.Now().Unix())

	// The persisted token is now valid; no second refresh happens.
	tok, err = svc.Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "tok-new", tok)
	assert.Equal(t, int32(1), calls.Load())
}

func TestToken_ExpiredWithoutRefreshToken(t *testing.T) {
	meta := testMetadata(t)
	require.NoError(t, meta.Save(store.MetadataDoc{
		Auth:   &store.Token{AccessToken: "tok-old", ExpiresAt: time.Now().Add(-time.Second).Unix()},
		Client: &store.ClientInfo{ClientID: "cid"},
	}))
	svc := NewService(meta, nil)

	_, err := svc.Token(context.Background())
	require.Error(t, err)
	assert.Equal(t, errs.KindAuthRequired, errs.KindOf(err))
	assert.Contains(t, err.Error(), "re-login")
}

func TestToken_RejectedRefreshIsReauthRequired(t *testing.T) {
	meta := testMetadata(t)
	require.NoError(t, meta.Save(store.MetadataDoc{
		Auth: &store.Token{
			AccessToken:  "tok-old",
			RefreshToken: "refresh-revoked",
			ExpiresAt:    time.Now().Add(-time.Second).Unix(),
		},
		Client: &store.ClientInfo{ClientID: "cid"},
	}))

	endpoint := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "invalid_grant"})
	}))
	t.Cleanup(endpoint.Close)

	svc := NewService(meta, nil, WithEndpoints(Endpoints{TokenURL: endpoint.URL}))

	_, err := svc.Token(context.Background())
	require.Error(t, err)
	assert.Equal(t, errs.KindReauthRequired, errs.KindOf(err))
}

func TestLogout_ClearsAuthOnly(t *testing.T) {
	meta := testMetadata(t)
	require.NoError(t, meta.Save(store.MetadataDoc{
		Auth:     &store.Token{AccessToken: "tok"},
		Client:   &store.ClientInfo{ClientID: "cid"},
		Settings: store.Settings{UserName: "me", Country: "SE"},
	}))
	svc := NewService(meta, nil)

	require.NoError(t, svc.Logout())

	status, err := svc.Status()
	require.NoError(t, err)
	assert.False(t, status.LoggedIn)
	assert.Equal(t, LoggedOut, status.State)

	doc, err := meta.Load()
	require.NoError(t, err)
	assert.Nil(t, doc.Auth)
	require.NotNil(t, doc.Client)
	assert.Equal(t, "cid", doc.Client.ClientID)
	assert.Equal(t, "me", doc.Settings.UserName)
}

func TestStatus_ExpiredState(t *testing.T) {
	meta := testMetadata(t)
	require.NoError(t, meta.Save(store.MetadataDoc{
		Auth: &store.Token{AccessToken: "tok", ExpiresAt: time.Now().Add(-time.Minute).Unix()},
	}))
	svc := NewService(meta, nil)

	status, err := svc.Status()
	require.NoError(t, err)
	assert.True(t, status.LoggedIn)
	assert.Equal(t, LoggedInExpired, status.State)
}

func TestScopes_MissingIsRequiredMinusGranted(t *testing.T) {
	meta := testMetadata(t)
	require.NoError(t, meta.Save(store.MetadataDoc{
		Auth: &store.Token{
			AccessToken:   "tok",
			GrantedScopes: RequiredScopes()[:4],
		},
	}))
	svc := NewService(meta, nil)

	report, err := svc.Scopes()
	require.NoError(t, err)
	assert.True(t, report.GrantedKnown)
	assert.Len(t, report.Required, len(requiredScopes))
	assert.Len(t, report.Missing, len(requiredScopes)-4)
	for _, scope := range report.Missing {
		assert.NotContains(t, report.Granted, scope)
	}
}

func TestScopes_UnknownGrantsReportNothingMissing(t *testing.T) {
	svc := NewService(testMetadata(t), nil)

	report, err := svc.Scopes()
	require.NoError(t, err)
	assert.False(t, report.GrantedKnown)
	assert.Empty(t, report.Missing)
}

func TestSettings_RoundTrip(t *testing.T) {
	svc := NewService(testMetadata(t), nil)

	require.NoError(t, svc.SetCountry("NO"))
	require.NoError(t, svc.SetUserName("alice"))

	country, err := svc.Country()
	require.NoError(t, err)
	assert.Equal(t, "NO", country)

	name, err := svc.UserName()
	require.NoError(t, err)
	assert.Equal(t, "alice", name)
}
