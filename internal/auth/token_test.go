package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTokenService(t *testing.T, secret string) *TokenService {
	t.Helper()
	svc, err := NewTokenService(secret)
	require.NoError(t, err)
	return svc
}

func TestNewTokenService_RequiresSecret(t *testing.T) {
	_, err := NewTokenService("  ")
	assert.Error(t, err)
}

func TestIssueAndVerify(t *testing.T) {
	t.Parallel()

	svc := newTestTokenService(t, "super-secret")
	tok, err := svc.Issue("user-123")
	require.NoError(t, err)

	userID, err := svc.Verify(tok)
	require.NoError(t, err)
	assert.Equal(t, "user-123", userID)
}

func TestIssue_ExpiresAfterOneHour(t *testing.T) {
	t.Parallel()

	issued := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	svc := newTestTokenService(t, "secret")
	svc.now = func() time.Time { return issued }

	tok, err := svc.Issue("u1")
	require.NoError(t, err)

	claims := &Claims{}
	_, _, err = jwt.NewParser().ParseUnverified(tok, claims)
	require.NoError(t, err)
	assert.Equal(t, issued, claims.IssuedAt.Time.UTC())
	assert.Equal(t, issued.Add(time.Hour), claims.ExpiresAt.Time.UTC())

	svc.now = func() time.Time { return issued.Add(59 * time.Minute) }
	_, err = svc.Verify(tok)
	assert.NoError(t, err)

	svc.now = func() time.Time { return issued.Add(61 * time.Minute) }
	_, err = svc.Verify(tok)
	assert.ErrorIs(t, err, ErrAuthInvalid)
}

func TestVerify_Failures(t *testing.T) {
	t.Parallel()

	svc := newTestTokenService(t, "right-secret")
	other := newTestTokenService(t, "wrong-secret")
	foreign, err := other.Issue("u2")
	require.NoError(t, err)

	valid, err := svc.Issue("u3")
	require.NoError(t, err)
	parts := strings.Split(valid, ".")
	tampered := parts[0] + "." + parts[1] + "x." + parts[2]

	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{
		UserID: "u4",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{name: "wrong secret", token: foreign},
		{name: "tampered payload", token: tampered},
		{name: "not a jwt", token: "not.a.jwt"},
		{name: "empty", token: ""},
		{name: "alg none", token: none},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Verify(tt.token)
			assert.ErrorIs(t, err, ErrAuthInvalid)
		})
	}
}

func TestParseBearer(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		header  string
		want    string
		wantErr error
	}{
		{name: "valid", header: "Bearer abc.def.ghi", want: "abc.def.ghi"},
		{name: "missing", header: "", wantErr: ErrAuthMissing},
		{name: "token only", header: "abc.def.ghi", wantErr: ErrAuthMalformed},
		{name: "lowercase scheme", header: "bearer abc", wantErr: ErrAuthMalformed},
		{name: "basic scheme", header: "Basic dXNlcjpwdw==", wantErr: ErrAuthMalformed},
		{name: "three parts", header: "Bearer abc def", wantErr: ErrAuthMalformed},
		{name: "double space", header: "Bearer  abc", wantErr: ErrAuthMalformed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseBearer(tt.header)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
