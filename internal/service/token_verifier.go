package service

import (
	"fmt"
	"strconv"

	"github.com/golang-jwt/jwt/v5"

	"gstbill/internal/config"
	"gstbill/internal/domain"
)

// Claims represents the bearer token claims. Subject carries the numeric user id.
type Claims struct {
	jwt.RegisteredClaims
	Role domain.UserRole `json:"role"`
}

// UserID parses the subject as a user id.
func (c *Claims) UserID() (int64, error) {
	id, err := strconv.ParseInt(c.Subject, 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.ErrUnauthorized
	}
	return id, nil
}

// TokenVerifier validates bearer tokens issued by the identity provider.
type TokenVerifier interface {
	Verify(tokenString string) (*Claims, error)
}

type tokenVerifier struct {
	cfg config.JWTConfig
}

// NewTokenVerifier creates an HS256 TokenVerifier.
func NewTokenVerifier(cfg config.JWTConfig) TokenVerifier {
	return &tokenVerifier{cfg: cfg}
}

func (v *tokenVerifier) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}
	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})}
	if v.cfg.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(v.cfg.Issuer))
	}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(v.cfg.Secret), nil
	}, opts...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUnauthorized, err)
	}
	if !token.Valid {
		return nil, domain.ErrUnauthorized
	}
	if _, err := claims.UserID(); err != nil {
		return nil, err
	}
	switch claims.Role {
	case domain.RoleAdmin, domain.RoleManager, domain.RoleUser:
	default:
		return nil, fmt.Errorf("%w: unknown role %q", domain.ErrUnauthorized, claims.Role)
	}
	return claims, nil
}
