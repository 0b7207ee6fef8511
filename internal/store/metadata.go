package store

import (
	"path/filepath"
	"time"

	"github.com/Dheebz/spotify-cli-sub001/internal/paths"
)

// Token is the persisted OAuth credential set.
type Token struct {
	AccessToken   string   `json:"access_token"`
	RefreshToken  string   `json:"refresh_token,omitempty"`
	ExpiresAt     int64    `json:"expires_at,omitempty"`
	GrantedScopes []string `json:"granted_scopes,omitempty"`
}

// Expired reports whether the token is past its expiry at the given instant.
// A token without an expiry never expires locally.
func (t Token) Expired(now time.Time) bool {
	return t.ExpiresAt != 0 && now.Unix() >= t.ExpiresAt
}

// ClientInfo records the OAuth client used at login. Logout keeps it so the
// next login can reuse the same client id.
type ClientInfo struct {
	ClientID string `json:"client_id"`
}

// Settings are user-level values populated lazily from the remote profile.
type Settings struct {
	Country  string `json:"country,omitempty"`
	UserName string `json:"user_name,omitempty"`
}

// MetadataDoc is the composite metadata.json document. Absent sub-sections
// are normal.
type MetadataDoc struct {
	Auth     *Token      `json:"auth,omitempty"`
	Client   *ClientInfo `json:"client,omitempty"`
	Settings Settings    `json:"settings"`
}

// Metadata wraps the secret metadata file.
type Metadata struct {
	file *File[MetadataDoc]
}

// NewMetadata builds the metadata store under the cache root.
func NewMetadata(root string) *Metadata {
	return &Metadata{file: NewSecretFile[MetadataDoc](filepath.Join(root, paths.MetadataFile))}
}

// Load reads the metadata document; a missing file yields the zero document.
func (m *Metadata) Load() (MetadataDoc, error) {
	doc, err := m.file.Load()
	if err != nil {
		return MetadataDoc{}, err
	}
	if doc == nil {
		return MetadataDoc{}, nil
	}
	return *doc, nil
}

// Save rewrites the whole metadata document.
func (m *Metadata) Save(doc MetadataDoc) error {
	return m.file.Save(doc)
}

// Update applies fn to the current document and persists the result.
func (m *Metadata) Update(fn func(*MetadataDoc)) error {
	doc, err := m.Load()
	if err != nil {
		return err
	}
	fn(&doc)
	return m.Save(doc)
}
