package service

import (
	"errors"
	"testing"
	"time"

	"authors-probe/internal/model"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func restoreGlobals() {
	bcryptGenerateFromPassword = bcrypt.GenerateFromPassword
	bcryptCompareHashAndPassword = bcrypt.CompareHashAndPassword
	timeNow = time.Now
}

func TestHashPassword(t *testing.T) {
	t.Cleanup(restoreGlobals)
	hash, err := HashPassword("labas")
	require.NoError(t, err)
	require.NotEqual(t, "labas", hash)

	bcryptGenerateFromPassword = func([]byte, int) ([]byte, error) { return nil, errors.New("gen") }
	_, err = HashPassword("labas")
	require.Error(t, err)
}

func TestAuthenticateUser(t *testing.T) {
	t.Cleanup(restoreGlobals)
	hash, err := HashPassword("pw")
	require.NoError(t, err)
	u := model.User{Username: "useris", PasswordHash: hash}
	require.NoError(t, AuthenticateUser(u, "pw"))
	require.ErrorIs(t, AuthenticateUser(u, "bad"), ErrInvalidPassword)
	require.ErrorIs(t, AuthenticateUser(model.User{}, ""), ErrInvalidPassword)
}

func TestIssueAccessToken(t *testing.T) {
	t.Cleanup(restoreGlobals)
	_, err := IssueAccessToken(nil, "useris", time.Minute)
	require.ErrorIs(t, err, ErrSecretNotSet)

	tok, err := IssueAccessToken([]byte("s"), "useris", time.Minute)
	require.NoError(t, err)

	claims := &CustomClaims{}
	parsed, err := jwt.ParseWithClaims(tok, claims, func(*jwt.Token) (any, error) { return []byte("s"), nil })
	require.NoError(t, err)
	require.Equal(t, jwt.SigningMethodHS512, parsed.Method)
	require.Equal(t, "useris", claims.Subject)
}

func TestVerifyAccessToken(t *testing.T) {
	t.Cleanup(restoreGlobals)
	secret := []byte("secret")

	tok, err := IssueAccessToken(secret, "useris", AccessTokenTTL)
	require.NoError(t, err)

	t.Run("valid", func(t *testing.T) {
		claims, err := VerifyAccessToken(secret, tok)
		require.NoError(t, err)
		require.Equal(t, "useris", claims.Subject)
	})

	t.Run("no secret", func(t *testing.T) {
		_, err := VerifyAccessToken(nil, tok)
		require.ErrorIs(t, err, ErrSecretNotSet)
	})

	t.Run("wrong secret", func(t *testing.T) {
		_, err := VerifyAccessToken([]byte("other"), tok)
		require.Error(t, err)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := VerifyAccessToken(secret, "abc")
		require.Error(t, err)
	})

	t.Run("expired", func(t *testing.T) {
		timeNow = func() time.Time { return time.Now().Add(AccessTokenTTL + time.Minute) }
		defer func() { timeNow = time.Now }()
		_, err := VerifyAccessToken(secret, tok)
		require.ErrorIs(t, err, jwt.ErrTokenExpired)
	})

	t.Run("wrong method", func(t *testing.T) {
		none, err := jwt.NewWithClaims(jwt.SigningMethodNone, CustomClaims{
			RegisteredClaims: jwt.RegisteredClaims{Subject: "useris"},
		}).SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)
		_, err = VerifyAccessToken(secret, none)
		require.Error(t, err)
	})

	t.Run("empty subject", func(t *testing.T) {
		anon, err := jwt.NewWithClaims(jwt.SigningMethodHS512, CustomClaims{}).SignedString(secret)
		require.NoError(t, err)
		_, err = VerifyAccessToken(secret, anon)
		require.Error(t, err)
	})
}
