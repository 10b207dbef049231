package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/softdesk/issue-tracker-api/internal/constants"
)

var (
	ErrInvalidToken   = errors.New("invalid or expired token")
	ErrNotRefreshKind = errors.New("token is not a refresh token")
)

const (
	tokenKindAccess  = "access"
	tokenKindRefresh = "refresh"
)

// TokenPair is the access/refresh token pair returned on login and refresh.
type TokenPair struct {
	AccessToken  string `json:"access"`
	RefreshToken string `json:"refresh"`
}

// Claims is the JWT payload for both token kinds.
type Claims struct {
	UserID uint64 `json:"uid"`
	Kind   string `json:"kind"`
	jwt.RegisteredClaims
}

// TokenService issues and verifies the HS256 token pair.
type TokenService struct {
	secret []byte
}

// NewTokenService creates a new TokenService.
func NewTokenService(secret string) *TokenService {
	return &TokenService{secret: []byte(secret)}
}

// IssuePair issues a fresh access/refresh pair for the user.
func (s *TokenService) IssuePair(userID uint64) (*TokenPair, error) {
	access, err := s.sign(userID, tokenKindAccess, constants.AccessTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to sign access token: %w", err)
	}

	refresh, err := s.sign(userID, tokenKindRefresh, constants.RefreshTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to sign refresh token: %w", err)
	}

	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

// VerifyAccess validates an access token and returns the caller's user ID.
func (s *TokenService) VerifyAccess(token string) (uint64, error) {
	claims, err := s.parse(token)
	if err != nil {
		return 0, err
	}
	if claims.Kind != tokenKindAccess {
		return 0, ErrInvalidToken
	}
	return claims.UserID, nil
}

// Refresh exchanges a valid refresh token for a new pair.
func (s *TokenService) Refresh(refreshToken string) (*TokenPair, error) {
	claims, err := s.parse(refreshToken)
	if err != nil {
		return nil, err
	}
	if claims.Kind != tokenKindRefresh {
		return nil, ErrNotRefreshKind
	}
	return s.IssuePair(claims.UserID)
}

func (s *TokenService) sign(userID uint64, kind string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID: userID,
		Kind:   kind,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

func (s *TokenService) parse(token string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(token, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, ErrInvalidToken
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
