// File: internal/service/authentication.go
package service

import (
	"errors"
	"fmt"
	"time"

	"authors-probe/internal/model"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// AccessTokenTTL 登入令牌有效期限
const AccessTokenTTL = 20 * time.Minute

var (
	ErrInvalidPassword = errors.New("invalid password")
	ErrSecretNotSet    = errors.New("jwt secret not set")
)

var (
	bcryptGenerateFromPassword   = bcrypt.GenerateFromPassword
	bcryptCompareHashAndPassword = bcrypt.CompareHashAndPassword
	timeNow                      = time.Now
)

// CustomClaims 定義 JWT 負載內容，Subject 為使用者名稱
type CustomClaims struct {
	jwt.RegisteredClaims
}

// HashPassword 接收明文密碼，回傳 bcrypt 哈希字串
func HashPassword(password string) (string, error) {
	hash, err := bcryptGenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// AuthenticateUser 比對明文密碼與使用者的 bcrypt 哈希
func AuthenticateUser(user model.User, password string) error {
	if err := bcryptCompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return ErrInvalidPassword
	}
	return nil
}

// IssueAccessToken 依據使用者名稱產生 HS512 JWT
func IssueAccessToken(secret []byte, username string, ttl time.Duration) (string, error) {
	if len(secret) == 0 {
		return "", ErrSecretNotSet
	}

	now := timeNow()
	claims := CustomClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS512, claims)
	return token.SignedString(secret)
}

// VerifyAccessToken 驗證並解析 JWT 令牌
func VerifyAccessToken(secret []byte, tokenString string) (*CustomClaims, error) {
	if len(secret) == 0 {
		return nil, ErrSecretNotSet
	}

	token, err := jwt.ParseWithClaims(tokenString, &CustomClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return secret, nil
	}, jwt.WithTimeFunc(timeNow))
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*CustomClaims)
	if !ok || !token.Valid || claims.Subject == "" {
		return nil, fmt.Errorf("invalid token")
	}

	return claims, nil
}
