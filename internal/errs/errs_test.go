package errs

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf_SurvivesWrapping(t *testing.T) {
	base := New(KindReadOnlyTarget, "read-only, choose an owned or collaborative playlist")
	wrapped := fmt.Errorf("resolve playlist: %w", base)

	assert.Equal(t, KindReadOnlyTarget, KindOf(wrapped))
	assert.Equal(t, KindUnknown, KindOf(errors.New("plain")))
	assert.Equal(t, KindUnknown, KindOf(nil))
}

func TestWithHint_CarriesHint(t *testing.T) {
	err := WithHint(KindScopeMissing, errors.New("PUT /v1/me/player returned 403"), "missing scope, re-login")

	assert.Equal(t, "missing scope, re-login", HintOf(err))
	assert.Equal(t, "PUT /v1/me/player returned 403", err.Error())
}

func TestWrap_NilIsNil(t *testing.T) {
	assert.NoError(t, Wrap(KindTransport, nil))
	assert.NoError(t, WithHint(KindTransport, nil, "hint"))
}

func TestExitCode(t *testing.T) {
	cases := []struct {
		kind Kind
		want int
	}{
		{KindUserInput, ExitUser},
		{KindNotFound, ExitUser},
		{KindReadOnlyTarget, ExitUser},
		{KindDecodeFailure, ExitUser},
		{KindAuthRequired, ExitAuth},
		{KindReauthRequired, ExitAuth},
		{KindScopeMissing, ExitAuth},
		{KindRemoteFailure, ExitRemote},
		{KindTransport, ExitRemote},
		{KindUnknown, ExitUser},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, ExitCode(New(tc.kind, "x")), "kind %d", tc.kind)
	}
	assert.Equal(t, ExitOK, ExitCode(nil))
}
