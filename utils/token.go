package utils

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	config "github.com/phillip/venturelink/config"
	models "github.com/phillip/venturelink/models"
)

var ErrInvalidToken = errors.New("invalid token")

const demoTokenPrefix = "token_"

type Claims struct {
	UserID string `json:"userId"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// Tokens issues and parses bearer tokens. In "demo" mode tokens are the unsigned
// token_<userId>_<unixMillis> form; in "jwt" mode they are HS256 with an expiry.
type Tokens struct {
	mode   string
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokens(cfg *config.Config) *Tokens {
	return &Tokens{
		mode:   cfg.TokenMode,
		secret: []byte(cfg.JWTSecret),
		ttl:    cfg.TokenTTL,
		now:    time.Now,
	}
}

func (t *Tokens) Issue(user models.User) (string, error) {
	now := t.now()
	if t.mode != "jwt" {
		return demoTokenPrefix + user.ID + "_" + strconv.FormatInt(now.UnixMilli(), 10), nil
	}
	claims := Claims{
		UserID: user.ID,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.ttl)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Parse returns the user id a token was issued for.
func (t *Tokens) Parse(token string) (string, error) {
	if t.mode != "jwt" {
		rest, ok := strings.CutPrefix(token, demoTokenPrefix)
		if !ok {
			return "", ErrInvalidToken
		}
		i := strings.LastIndex(rest, "_")
		if i <= 0 {
			return "", ErrInvalidToken
		}
		if _, err := strconv.ParseInt(rest[i+1:], 10, 64); err != nil {
			return "", ErrInvalidToken
		}
		return rest[:i], nil
	}

	var claims Claims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(*jwt.Token) (any, error) {
		return t.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(t.now))
	if err != nil || !parsed.Valid || claims.UserID == "" {
		return "", ErrInvalidToken
	}
	return claims.UserID, nil
}
