package resolver

import (
	"sort"
	"strings"

	"github.com/Dheebz/spotify-cli-sub001/internal/api"
)

// Score rates how well candidate matches query, in [0, 1]. Both sides are
// lowercased; query tokens are whitespace-split and stripped of surrounding
// glob stars. 1.0 means exact equality after normalization.
func Score(query, candidate string) float64 {
	tokens := tokenize(query)
	if len(tokens) == 0 {
		return 0
	}
	c := strings.ToLower(strings.TrimSpace(candidate))
	q := strings.Join(tokens, " ")
	if c == q {
		return 1
	}

	penalty := lengthPenalty(c, q)

	if len(tokens) == 1 {
		token := tokens[0]
		var score float64
		switch {
		case strings.HasPrefix(c, token):
			score = 0.9
		case anyWordHasPrefix(c, token):
			score = 0.85
		case strings.Contains(c, token):
			score = 0.7
		default:
			return 0
		}
		return clamp(score - penalty)
	}

	matched := 0
	for _, token := range tokens {
		if anyWordHasPrefix(c, token) {
			matched++
		}
	}
	if matched == 0 {
		return 0
	}
	score := float64(matched) / float64(len(tokens))
	if strings.HasPrefix(c, tokens[0]) {
		score += 0.1
	}
	if strings.Contains(c, q) {
		score += 0.1
	}
	return clamp(score - penalty)
}

// lengthPenalty discounts candidates much longer than the query, up to 0.3.
func lengthPenalty(c, q string) float64 {
	extra := len(c) - len(q)
	if extra <= 0 {
		return 0
	}
	denom := len(c)
	if denom < 1 {
		denom = 1
	}
	return float64(extra) / float64(denom) * 0.3
}

func tokenize(query string) []string {
	var tokens []string
	for _, field := range strings.Fields(strings.ToLower(query)) {
		field = strings.Trim(field, "*")
		if field != "" {
			tokens = append(tokens, field)
		}
	}
	return tokens
}

func anyWordHasPrefix(candidate, token string) bool {
	for _, word := range strings.Fields(candidate) {
		if strings.HasPrefix(word, token) {
			return true
		}
	}
	return false
}

func clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Match pairs a playlist with its fuzzy score and writability for ranking.
type Match struct {
	Playlist api.Playlist
	Score    float64
	Writable bool
}

// RankPlaylists scores every playlist against the query and sorts by
// writable-for-user first, then score descending, then lowercase name.
// The sort is stable.
func RankPlaylists(items []api.Playlist, query, user string) []Match {
	matches := make([]Match, 0, len(items))
	for _, p := range items {
		matches = append(matches, Match{
			Playlist: p,
			Score:    Score(query, p.Name),
			Writable: p.WritableBy(user),
		})
	}
	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].Writable != matches[j].Writable {
			return matches[i].Writable
		}
		if matches[i].Score != matches[j].Score {
			return matches[i].Score > matches[j].Score
		}
		return strings.ToLower(matches[i].Playlist.Name) < strings.ToLower(matches[j].Playlist.Name)
	})
	return matches
}
