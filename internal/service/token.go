package service

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/templui/goalnote/internal/apperror"
	"github.com/templui/goalnote/internal/model"
)

type TokenType string

const (
	TokenTypeAccess  TokenType = "access"
	TokenTypeRefresh TokenType = "refresh"
)

var (
	ErrMissingAuthHeader = apperror.Unauthorized("Authorization header is missing")
	ErrMalformedHeader   = apperror.Unauthorized("Invalid authorization header format. Use 'Bearer <token>'")
	ErrTokenExpired      = apperror.Unauthorized("Token has expired")
	ErrInvalidToken      = apperror.Unauthorized("Could not validate token")
	ErrInvalidTokenType  = apperror.Unauthorized("Invalid token type")
)

// Claims is the JWT payload. Subject carries the user id.
type Claims struct {
	Type TokenType `json:"type"`
	jwt.RegisteredClaims
}

type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type TokenService struct {
	secret        []byte
	accessExpiry  time.Duration
	refreshExpiry time.Duration
}

func NewTokenService(secret string, accessExpiry, refreshExpiry time.Duration) *TokenService {
	return &TokenService{
		secret:        []byte(secret),
		accessExpiry:  accessExpiry,
		refreshExpiry: refreshExpiry,
	}
}

// BearerToken extracts the token from an Authorization header value
func BearerToken(header string) (string, error) {
	if header == "" {
		return "", ErrMissingAuthHeader
	}

	parts := strings.Fields(header)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", ErrMalformedHeader
	}

	return parts[1], nil
}

func (s *TokenService) Issue(userID int64, tokenType TokenType) (string, error) {
	expiry := s.accessExpiry
	if tokenType == TokenTypeRefresh {
		expiry = s.refreshExpiry
	}

	now := time.Now()
	claims := Claims{
		Type: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(userID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(expiry)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, nil
}

func (s *TokenService) IssuePair(userID int64) (*TokenPair, error) {
	access, err := s.Issue(userID, TokenTypeAccess)
	if err != nil {
		return nil, err
	}

	refresh, err := s.Issue(userID, TokenTypeRefresh)
	if err != nil {
		return nil, err
	}

	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

// Verify checks signature, expiry and token type and returns the owner the
// token was issued to.
func (s *TokenService) Verify(tokenString string, want TokenType) (model.OwnerID, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if errors.Is(err, jwt.ErrTokenExpired) {
		return 0, ErrTokenExpired
	}
	if err != nil {
		return 0, apperror.Wrap(apperror.KindUnauthorized, ErrInvalidToken.Message, err)
	}

	if claims.Type != want {
		return 0, ErrInvalidTokenType
	}

	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil || userID <= 0 {
		return 0, ErrInvalidToken
	}

	return model.OwnerID(userID), nil
}
