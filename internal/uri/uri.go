// Package uri parses resource references in both scheme URI and web URL
// forms into a (kind, id) pair.
package uri

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/Dheebz/spotify-cli-sub001/internal/api"
	"github.com/Dheebz/spotify-cli-sub001/internal/errs"
)

const (
	// Scheme is the URI scheme used by the service.
	Scheme = "spotify"
	// PublicDomain is the web-link host suffix accepted by Parse.
	PublicDomain = "spotify.com"
)

// Resource is a parsed (kind, id) reference.
type Resource struct {
	Kind api.Kind
	ID   string
}

// URI renders the canonical scheme:type:id form.
func (r Resource) URI() string {
	return fmt.Sprintf("%s:%s:%s", Scheme, r.Kind, r.ID)
}

// URL renders the shareable web link for the resource.
func (r Resource) URL() string {
	return fmt.Sprintf("https://open.%s/%s/%s", PublicDomain, r.Kind, r.ID)
}

// Parse turns a scheme URI (spotify:track:id, spotify:user:<uid>:type:id) or
// a web URL (https://open.spotify.com/type/id) into a Resource. All
// whitespace is removed first. Anything unrecognized fails without guessing.
func Parse(input string) (Resource, error) {
	s := stripWhitespace(input)
	if s == "" {
		return Resource{}, errs.New(errs.KindUserInput, "unrecognized resource: empty input")
	}
	if strings.HasPrefix(s, Scheme+":") {
		return parseURI(s)
	}
	if strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://") {
		return parseURL(s)
	}
	return Resource{}, errs.Newf(errs.KindUserInput, "unrecognized resource %q", input)
}

func parseURI(s string) (Resource, error) {
	parts := strings.Split(s, ":")
	// spotify:user:<uid>:type:id — the user segment is ignored.
	if len(parts) >= 5 && parts[1] == "user" {
		parts = append([]string{parts[0]}, parts[3:]...)
	}
	if len(parts) < 3 {
		return Resource{}, errs.Newf(errs.KindUserInput, "unrecognized resource %q", s)
	}
	kind, ok := resourceKind(parts[1])
	if !ok {
		return Resource{}, errs.Newf(errs.KindUserInput, "unrecognized resource %q", s)
	}
	id := trimID(parts[2])
	if id == "" {
		return Resource{}, errs.Newf(errs.KindUserInput, "unrecognized resource %q", s)
	}
	return Resource{Kind: kind, ID: id}, nil
}

func parseURL(s string) (Resource, error) {
	u, err := url.Parse(s)
	if err != nil {
		return Resource{}, errs.Wrap(errs.KindUserInput, fmt.Errorf("unrecognized resource %q: %w", s, err))
	}
	host := strings.ToLower(u.Hostname())
	if host != PublicDomain && !strings.HasSuffix(host, "."+PublicDomain) {
		return Resource{}, errs.Newf(errs.KindUserInput, "unrecognized resource %q", s)
	}
	segments := strings.Split(strings.Trim(u.Path, "/"), "/")
	if len(segments) < 2 {
		return Resource{}, errs.Newf(errs.KindUserInput, "unrecognized resource %q", s)
	}
	kind, ok := resourceKind(segments[0])
	if !ok {
		return Resource{}, errs.Newf(errs.KindUserInput, "unrecognized resource %q", s)
	}
	id := trimID(segments[1])
	if id == "" {
		return Resource{}, errs.Newf(errs.KindUserInput, "unrecognized resource %q", s)
	}
	return Resource{Kind: kind, ID: id}, nil
}

func resourceKind(s string) (api.Kind, bool) {
	switch api.Kind(s) {
	case api.KindTrack, api.KindAlbum, api.KindPlaylist, api.KindArtist:
		return api.Kind(s), true
	}
	return "", false
}

// trimID strips any trailing :, ?, or # and everything after it.
func trimID(id string) string {
	if i := strings.IndexAny(id, ":?#"); i >= 0 {
		return id[:i]
	}
	return id
}

func stripWhitespace(s string) string {
	return strings.Join(strings.Fields(s), "")
}
