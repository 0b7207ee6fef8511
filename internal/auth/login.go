package auth

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"
	"golang.org/x/oauth2"

	"github.com/Dheebz/spotify-cli-sub001/internal/errs"
	"github.com/Dheebz/spotify-cli-sub001/internal/store"
)

const (
	// DefaultRedirectURI must match the URI registered with the OAuth client.
	DefaultRedirectURI = "http://127.0.0.1:8888/callback"

	defaultCallbackTimeout = 120 * time.Second

	// verifierBytes yields a 64-character URL-safe PKCE verifier.
	verifierBytes = 48
)

// LoginOptions configure a login. An empty ClientID falls back to the
// persisted client identity.
type LoginOptions struct {
	ClientID    string
	RedirectURI string
}

type callbackResult struct {
	code string
	err  error
}

// Login runs the full authorization-code dance: bind the loopback listener,
// open the browser at the authorization URL, wait for the redirect, verify
// the state nonce, exchange the code with the PKCE verifier, and persist the
// token and client identity.
func (s *Service) Login(ctx context.Context, opts LoginOptions) (Status, error) {
	clientID := opts.ClientID
	if clientID == "" {
		stored, err := s.ClientID()
		if err != nil {
			return Status{}, err
		}
		clientID = stored
	}
	if clientID == "" {
		return Status{}, errs.New(errs.KindUserInput, "client id required (flag, config, or SPOTIFY_CLI_CLIENT_ID)")
	}

	redirectURI := opts.RedirectURI
	if redirectURI == "" {
		redirectURI = DefaultRedirectURI
	}
	redirect, err := url.Parse(redirectURI)
	if err != nil || redirect.Host == "" {
		return Status{}, errs.Newf(errs.KindUserInput, "invalid redirect uri %q", redirectURI)
	}

	verifier, err := newVerifier()
	if err != nil {
		return Status{}, err
	}
	state, err := newStateNonce()
	if err != nil {
		return Status{}, err
	}

	listener, err := net.Listen("tcp", redirect.Host)
	if err != nil {
		return Status{}, fmt.Errorf("bind callback listener on %s: %w", redirect.Host, err)
	}

	results := make(chan callbackResult, 1)
	server := &http.Server{Handler: callbackHandler(redirect.Path, state, results)}
	go func() {
		if err := server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			select {
			case results <- callbackResult{err: fmt.Errorf("callback listener: %w", err)}:
			default:
			}
		}
	}()
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	conf := s.oauthConfig(clientID, redirectURI)
	authURL := conf.AuthCodeURL(state, oauth2.S256ChallengeOption(verifier))
	s.log.Debug("opening authorization url", zap.String("url", authURL))
	if err := s.openURL(authURL); err != nil {
		s.log.Warn("could not open browser", zap.Error(err), zap.String("url", authURL))
	}

	var code string
	select {
	case res := <-results:
		if res.err != nil {
			return Status{}, res.err
		}
		code = res.code
	case <-time.After(s.callbackTimeout):
		return Status{}, errs.New(errs.KindAuthRequired, "authorization not completed")
	case <-ctx.Done():
		return Status{}, errs.Wrap(errs.KindAuthRequired, ctx.Err())
	}

	tok, err := conf.Exchange(ctx, code, oauth2.VerifierOption(verifier))
	if err != nil {
		var retrieveErr *oauth2.RetrieveError
		if errors.As(err, &retrieveErr) {
			return Status{}, errs.Wrap(errs.KindAuthRequired, fmt.Errorf("code exchange rejected: %w", err))
		}
		return Status{}, errs.Wrap(errs.KindTransport, fmt.Errorf("code exchange failed: %w", err))
	}

	stored := s.persistedToken(tok)
	err = s.meta.Update(func(d *store.MetadataDoc) {
		d.Auth = &stored
		d.Client = &store.ClientInfo{ClientID: clientID}
	})
	if err != nil {
		return Status{}, err
	}
	s.log.Info("logged in", zap.Strings("granted_scopes", stored.GrantedScopes))
	return s.Status()
}

// callbackHandler consumes exactly one redirect request, verifying the state
// nonce before accepting the code.
func callbackHandler(path, wantState string, results chan<- callbackResult) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if path != "" && path != "/" && r.URL.Path != path {
			http.NotFound(w, r)
			return
		}
		query := r.URL.Query()

		var res callbackResult
		switch {
		case query.Get("error") != "":
			res.err = errs.Newf(errs.KindAuthRequired, "authorization denied: %s", query.Get("error"))
		case query.Get("state") != wantState:
			res.err = errs.New(errs.KindAuthRequired, "authorization state mismatch")
		case query.Get("code") == "":
			res.err = errs.New(errs.KindAuthRequired, "authorization response missing code")
		default:
			res.code = query.Get("code")
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if res.err != nil {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = fmt.Fprint(w, "<html><body><h1>Login failed</h1><p>Return to the terminal.</p></body></html>")
		} else {
			_, _ = fmt.Fprint(w, "<html><body><h1>Login complete</h1><p>You can close this tab.</p></body></html>")
		}

		select {
		case results <- res:
		default:
			// A second redirect hit the listener; only the first counts.
		}
	})
}

func newVerifier() (string, error) {
	buf := make([]byte, verifierBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate pkce verifier: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

func newStateNonce() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate state nonce: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
