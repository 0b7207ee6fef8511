// Package auth owns the OAuth 2.0 Authorization Code + PKCE session: login,
// transparent refresh, scope reconciliation, logout, and the user settings
// that ride along in the metadata document.
package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/pkg/browser"
	"go.uber.org/zap"
	"golang.org/x/oauth2"

	"github.com/Dheebz/spotify-cli-sub001/internal/errs"
	"github.com/Dheebz/spotify-cli-sub001/internal/store"
)

// Endpoints are the authorization server URLs; overridable for tests.
type Endpoints struct {
	AuthURL  string
	TokenURL string
}

// DefaultEndpoints point at the public authorization server.
var DefaultEndpoints = Endpoints{
	AuthURL:  "https://accounts.spotify.com/authorize",
	TokenURL: "https://accounts.spotify.com/api/token",
}

// expiryLeeway refreshes slightly early so a token does not expire mid-call.
const expiryLeeway = 30 * time.Second

// State is the persisted session state.
type State int

const (
	LoggedOut State = iota
	LoggedInValid
	LoggedInExpired
)

func (s State) String() string {
	switch s {
	case LoggedInValid:
		return "logged in"
	case LoggedInExpired:
		return "logged in (token expired)"
	default:
		return "logged out"
	}
}

// Status summarizes the session for the auth status command.
type Status struct {
	State    State  `json:"state"`
	LoggedIn bool   `json:"logged_in"`
	UserName string `json:"user_name,omitempty"`
	ClientID string `json:"client_id,omitempty"`
}

// Service manages the token lifecycle in the metadata store.
type Service struct {
	meta            *store.Metadata
	endpoints       Endpoints
	openURL         func(string) error
	now             func() time.Time
	callbackTimeout time.Duration
	log             *zap.Logger
}

// Option customizes a Service.
type Option func(*Service)

// WithEndpoints overrides the authorization server URLs.
func WithEndpoints(e Endpoints) Option {
	return func(s *Service) { s.endpoints = e }
}

// WithBrowser overrides how the authorization URL is opened.
func WithBrowser(open func(string) error) Option {
	return func(s *Service) { s.openURL = open }
}

// WithClock overrides the wall clock.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithCallbackTimeout overrides how long the login listener waits.
func WithCallbackTimeout(d time.Duration) Option {
	return func(s *Service) { s.callbackTimeout = d }
}

// NewService builds an auth service over the metadata store.
func NewService(meta *store.Metadata, log *zap.Logger, opts ...Option) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Service{
		meta:            meta,
		endpoints:       DefaultEndpoints,
		openURL:         browser.OpenURL,
		now:             time.Now,
		callbackTimeout: defaultCallbackTimeout,
		log:             log,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Token returns a valid access token, refreshing transparently when the
// persisted one is expired. The refreshed token is persisted before return.
func (s *Service) Token(ctx context.Context) (string, error) {
	doc, err := s.meta.Load()
	if err != nil {
		return "", err
	}
	if doc.Auth == nil || doc.Auth.AccessToken == "" {
		return "", errs.New(errs.KindAuthRequired, "not logged in")
	}
	if !s.expired(*doc.Auth) {
		return doc.Auth.AccessToken, nil
	}
	if doc.Auth.RefreshToken == "" {
		return "", errs.New(errs.KindAuthRequired, "session expired, re-login")
	}
	tok, err := s.refresh(ctx, doc)
	if err != nil {
		return "", err
	}
	return tok.AccessToken, nil
}

func (s *Service) expired(tok store.Token) bool {
	return tok.ExpiresAt != 0 && s.now().Add(expiryLeeway).Unix() >= tok.ExpiresAt
}

func (s *Service) refresh(ctx context.Context, doc store.MetadataDoc) (store.Token, error) {
	clientID := ""
	if doc.Client != nil {
		clientID = doc.Client.ClientID
	}
	if clientID == "" {
		return store.Token{}, errs.New(errs.KindAuthRequired, "no client id persisted, re-login")
	}

	conf := s.oauthConfig(clientID, "")
	src := conf.TokenSource(ctx, &oauth2.Token{RefreshToken: doc.Auth.RefreshToken})
	fresh, err := src.Token()
	if err != nil {
		var retrieveErr *oauth2.RetrieveError
		if errors.As(err, &retrieveErr) {
			return store.Token{}, errs.WithHint(errs.KindReauthRequired,
				fmt.Errorf("refresh token rejected: %w", err), "run auth login again")
		}
		return store.Token{}, errs.Wrap(errs.KindTransport, fmt.Errorf("refresh request failed: %w", err))
	}

	next := s.persistedToken(fresh)
	if next.RefreshToken == "" {
		next.RefreshToken = doc.Auth.RefreshToken
	}
	if next.GrantedScopes == nil {
		next.GrantedScopes = doc.Auth.GrantedScopes
	}
	if err := s.meta.Update(func(d *store.MetadataDoc) { d.Auth = &next }); err != nil {
		return store.Token{}, err
	}
	s.log.Debug("token refreshed", zap.Int64("expires_at", next.ExpiresAt))
	return next, nil
}

// persistedToken maps an oauth2 token onto the stored shape.
func (s *Service) persistedToken(tok *oauth2.Token) store.Token {
	stored := store.Token{
		AccessToken:  tok.AccessToken,
		RefreshToken: tok.RefreshToken,
	}
	if !tok.Expiry.IsZero() {
		stored.ExpiresAt = tok.Expiry.Unix()
	}
	if scopes := grantedScopes(tok); len(scopes) > 0 {
		stored.GrantedScopes = scopes
	}
	return stored
}

// Logout clears the auth sub-document. Client identity and settings survive.
func (s *Service) Logout() error {
	return s.meta.Update(func(d *store.MetadataDoc) { d.Auth = nil })
}

// Status reports the current session state.
func (s *Service) Status() (Status, error) {
	doc, err := s.meta.Load()
	if err != nil {
		return Status{}, err
	}
	status := Status{UserName: doc.Settings.UserName}
	if doc.Client != nil {
		status.ClientID = doc.Client.ClientID
	}
	if doc.Auth == nil || doc.Auth.AccessToken == "" {
		return status, nil
	}
	status.LoggedIn = true
	if s.expired(*doc.Auth) {
		status.State = LoggedInExpired
	} else {
		status.State = LoggedInValid
	}
	return status, nil
}

// Country returns the persisted country code, or "".
func (s *Service) Country() (string, error) {
	doc, err := s.meta.Load()
	if err != nil {
		return "", err
	}
	return doc.Settings.Country, nil
}

// SetCountry persists the country code.
func (s *Service) SetCountry(code string) error {
	return s.meta.Update(func(d *store.MetadataDoc) { d.Settings.Country = code })
}

// UserName returns the persisted user name, or "".
func (s *Service) UserName() (string, error) {
	doc, err := s.meta.Load()
	if err != nil {
		return "", err
	}
	return doc.Settings.UserName, nil
}

// SetUserName persists the user name.
func (s *Service) SetUserName(name string) error {
	return s.meta.Update(func(d *store.MetadataDoc) { d.Settings.UserName = name })
}

// ClientID returns the persisted OAuth client id, or "".
func (s *Service) ClientID() (string, error) {
	doc, err := s.meta.Load()
	if err != nil {
		return "", err
	}
	if doc.Client == nil {
		return "", nil
	}
	return doc.Client.ClientID, nil
}

func (s *Service) oauthConfig(clientID, redirectURL string) *oauth2.Config {
	return &oauth2.Config{
		ClientID:    clientID,
		RedirectURL: redirectURL,
		Scopes:      RequiredScopes(),
		Endpoint: oauth2.Endpoint{
			AuthURL:  s.endpoints.AuthURL,
			TokenURL: s.endpoints.TokenURL,
		},
	}
}
