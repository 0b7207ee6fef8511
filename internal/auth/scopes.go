package auth

import (
	"sort"
	"strings"

	"golang.org/x/oauth2"
)

// requiredScopes is the fixed permission set the program declares: playback
// read+modify, library read+modify, playlists read+modify, profile read,
// recently-played read, top-items read.
var requiredScopes = []string{
	"user-read-playback-state",
	"user-modify-playback-state",
	"user-library-read",
	"user-library-modify",
	"playlist-read-private",
	"playlist-read-collaborative",
	"playlist-modify-public",
	"playlist-modify-private",
	"user-read-private",
	"user-read-recently-played",
	"user-top-read",
}

// RequiredScopes returns a copy of the fixed required scope set.
func RequiredScopes() []string {
	out := make([]string, len(requiredScopes))
	copy(out, requiredScopes)
	return out
}

// ScopeReport reconciles required scopes against what the remote granted.
type ScopeReport struct {
	Required []string `json:"required"`
	Granted  []string `json:"granted,omitempty"`
	Missing  []string `json:"missing,omitempty"`
	// GrantedKnown is false when no token (or a pre-scope-tracking token)
	// is persisted; Missing is empty in that case.
	GrantedKnown bool `json:"granted_known"`
}

// Scopes reports required, granted (if known), and missing scopes.
func (s *Service) Scopes() (ScopeReport, error) {
	doc, err := s.meta.Load()
	if err != nil {
		return ScopeReport{}, err
	}
	report := ScopeReport{Required: RequiredScopes()}
	if doc.Auth == nil || doc.Auth.GrantedScopes == nil {
		return report, nil
	}
	report.GrantedKnown = true
	report.Granted = append([]string(nil), doc.Auth.GrantedScopes...)

	granted := map[string]bool{}
	for _, scope := range report.Granted {
		granted[scope] = true
	}
	for _, scope := range report.Required {
		if !granted[scope] {
			report.Missing = append(report.Missing, scope)
		}
	}
	sort.Strings(report.Missing)
	return report, nil
}

// grantedScopes extracts the space-separated scope extra from a token
// response, if the server reported one.
func grantedScopes(tok *oauth2.Token) []string {
	raw, ok := tok.Extra("scope").(string)
	if !ok || strings.TrimSpace(raw) == "" {
		return nil
	}
	scopes := strings.Fields(raw)
	sort.Strings(scopes)
	return scopes
}
