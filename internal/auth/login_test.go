package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dheebz/spotify-cli-sub001/internal/errs"
	"github.com/Dheebz/spotify-cli-sub001/internal/store"
)

// fakeBrowser plays the user's part: it inspects the authorization URL and
// hits the redirect URI the way the authorization server would.
func fakeBrowser(t *testing.T, code string, tamperState bool) func(string) error {
	t.Helper()
	return func(authURL string) error {
		parsed, err := url.Parse(authURL)
		if err != nil {
			return err
		}
		query := parsed.Query()
		state := query.Get("state")
		if tamperState {
			state = "wrong-" + state
		}
		redirect := query.Get("redirect_uri")

		go func() {
			callback := fmt.Sprintf("%s?code=%s&state=%s", redirect, url.QueryEscape(code), url.QueryEscape(state))
			resp, err := http.Get(callback)
			if err == nil {
				_ = resp.Body.Close()
			}
		}()
		return nil
	}
}

func loginService(t *testing.T, meta *store.Metadata, opts ...Option) (*Service, *url.Values) {
	t.Helper()

	var exchanged url.Values
	endpoint := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		exchanged = r.PostForm
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"access_token":  "tok-login",
			"token_type":    "Bearer",
			"refresh_token": "refresh-login",
			"expires_in":    3600,
			"scope":         "user-read-private playlist-modify-private",
		})
	}))
	t.Cleanup(endpoint.Close)

	base := []Option{
		WithEndpoints(Endpoints{AuthURL: "https://auth.example/authorize", TokenURL: endpoint.URL}),
		WithCallbackTimeout(5 * time.Second),
	}
	return NewService(meta, nil, append(base, opts...)...), &exchanged
}

func TestLogin_FullDancePersistsTokenAndClient(t *testing.T) {
	meta := testMetadata(t)
	svc, exchanged := loginService(t, meta, WithBrowser(fakeBrowser(t, "code-1", false)))

	status, err := svc.Login(context.Background(), LoginOptions{
		ClientID:    "cid-1",
		RedirectURI: "http://127.0.0.1:38211/callback",
	})
	require.NoError(t, err)
	assert.True(t, status.LoggedIn)
	assert.Equal(t, LoggedInValid, status.State)

	assert.Equal(t, "code-1", exchanged.Get("code"))
	assert.NotEmpty(t, exchanged.Get("code_verifier"))
	assert.GreaterOrEqual(t, len(exchanged.Get("code_verifier")), 64)

	doc, err := meta.Load()
	require.NoError(t, err)
	require.NotNil(t, doc.Auth)
	assert.Equal(t, "tok-login", doc.Auth.AccessToken)
	assert.Equal(t, "refresh-login", doc.Auth.RefreshToken)
	assert.Contains(t, doc.Auth.GrantedScopes, "playlist-modify-private")
	require.NotNil(t, doc.Client)
	assert.Equal(t, "cid-1", doc.Client.ClientID)
}

func TestLogin_StateMismatchFails(t *testing.T) {
	meta := testMetadata(t)
	svc, _ := loginService(t, meta, WithBrowser(fakeBrowser(t, "code-2", true)))

	_, err := svc.Login(context.Background(), LoginOptions{
		ClientID:    "cid-2",
		RedirectURI: "http://127.0.0.1:38212/callback",
	})
	require.Error(t, err)
	assert.Equal(t, errs.KindAuthRequired, errs.KindOf(err))
	assert.Contains(t, err.Error(), "state mismatch")

	doc, err := meta.Load()
	require.NoError(t, err)
	assert.Nil(t, doc.Auth)
}

func TestLogin_TimeoutWhenCallbackNeverArrives(t *testing.T) {
	meta := testMetadata(t)
	svc, _ := loginService(t, meta,
		WithBrowser(func(string) error { return nil }),
		WithCallbackTimeout(50*time.Millisecond),
	)

	_, err := svc.Login(context.Background(), LoginOptions{
		ClientID:    "cid-3",
		RedirectURI: "http://127.0.0.1:38213/callback",
	})
	require.Error(t, err)
	assert.Equal(t, errs.KindAuthRequired, errs.KindOf(err))
	assert.Contains(t, err.Error(), "authorization not completed")
}

func TestLogin_RequiresClientID(t *testing.T) {
	svc := NewService(testMetadata(t), nil)

	_, err := svc.Login(context.Background(), LoginOptions{})
	require.Error(t, err)
	assert.Equal(t, errs.KindUserInput, errs.KindOf(err))
}

func TestLogin_ReusesPersistedClientID(t *testing.T) {
	meta := testMetadata(t)
	require.NoError(t, meta.Save(store.MetadataDoc{Client: &store.ClientInfo{ClientID: "cid-stored"}}))
	svc, exchanged := loginService(t, meta, WithBrowser(fakeBrowser(t, "code-4", false)))

	_, err := svc.Login(context.Background(), LoginOptions{
		RedirectURI: "http://127.0.0.1:38214/callback",
	})
	require.NoError(t, err)
	assert.Equal(t, "cid-stored", exchanged.Get("client_id"))
}
