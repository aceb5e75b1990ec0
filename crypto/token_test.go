package crypto

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-test-secret-test-sec"

func TestIssueSession_ParseSession_Roundtrip(t *testing.T) {
	token, err := IssueSession("user-1", "jo@example.com", true, testSecret, time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ParseSession(token, testSecret)
	require.NoError(t, err)

	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "jo@example.com", claims.Email)
	assert.True(t, claims.Verified)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, 5*time.Second)
}

func TestIssueSession_DefaultTTL(t *testing.T) {
	token, err := IssueSession("user-1", "jo@example.com", false, testSecret, 0)
	require.NoError(t, err)

	claims, err := ParseSession(token, testSecret)
	require.NoError(t, err)

	assert.WithinDuration(t, time.Now().Add(8*time.Hour), claims.ExpiresAt.Time, 5*time.Second)
}

func TestParseSession_Failures(t *testing.T) {
	token, err := IssueSession("user-1", "jo@example.com", false, testSecret, time.Hour)
	require.NoError(t, err)

	expired, err := IssueSession("user-1", "jo@example.com", false, testSecret, -time.Minute)
	require.NoError(t, err)

	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)
	tampered := parts[0] + "." + parts[1] + "x." + parts[2]

	tests := []struct {
		name  string
		token string
	}{
		{name: "empty token", token: ""},
		{name: "not a jwt", token: "garbage"},
		{name: "tampered payload", token: tampered},
		{name: "expired token", token: expired},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			claims, err := ParseSession(test.token, testSecret)

			assert.ErrorIs(t, err, ErrInvalidToken)
			assert.Nil(t, claims)
		})
	}
}

func TestParseSession_WrongSecret(t *testing.T) {
	token, err := IssueSession("user-1", "jo@example.com", false, testSecret, time.Hour)
	require.NoError(t, err)

	_, err = ParseSession(token, "another-secret-another-secret-an")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
