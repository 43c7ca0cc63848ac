package auth

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Issuer is the value of the iss claim on every token we mint
const Issuer = "socialsphere"

// Token types carried in the token_type claim
const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

var (
	// ErrInvalidToken covers malformed, expired, wrongly signed or wrongly typed tokens
	ErrInvalidToken = errors.New("token is invalid or expired")

	// ErrTokenRevoked is returned when a refresh token that was already rotated is presented again
	ErrTokenRevoked = errors.New("token has been revoked")
)

// Claims are the JWT claims of both access and refresh tokens
type Claims struct {
	jwt.RegisteredClaims
	TokenType string `json:"token_type"`
}

// TokenPair is returned on login and on refresh
type TokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// RevocationStore records rotated refresh tokens.
// Revoke must be atomic: it returns false when the jti was already revoked.
type RevocationStore interface {
	Revoke(ctx context.Context, jti string, expiresAt time.Time) (bool, error)
}

// TokenIssuer mints and verifies HS256 tokens
type TokenIssuer struct {
	revocations RevocationStore
	now         func() time.Time
	secret      []byte
	accessTTL   time.Duration
	refreshTTL  time.Duration
}

// NewTokenIssuer creates a token issuer. revocations may be nil, in which case
// refresh tokens are not single-use.
func NewTokenIssuer(secret string, accessTTL, refreshTTL time.Duration, revocations RevocationStore) *TokenIssuer {
	return &TokenIssuer{
		secret:      []byte(secret),
		accessTTL:   accessTTL,
		refreshTTL:  refreshTTL,
		revocations: revocations,
		now:         time.Now,
	}
}

// IssuePair mints a fresh access/refresh pair for the user
func (i *TokenIssuer) IssuePair(userID int64) (TokenPair, error) {
	access, err := i.sign(userID, TokenTypeAccess, i.accessTTL)
	if err != nil {
		return TokenPair{}, err
	}
	refresh, err := i.sign(userID, TokenTypeRefresh, i.refreshTTL)
	if err != nil {
		return TokenPair{}, err
	}
	return TokenPair{Access: access, Refresh: refresh}, nil
}

// VerifyAccess validates an access token and returns its user id
func (i *TokenIssuer) VerifyAccess(token string) (int64, error) {
	claims, err := i.parse(token, TokenTypeAccess)
	if err != nil {
		return 0, err
	}
	return subjectID(claims)
}

// Rotate exchanges a refresh token for a new pair and revokes the presented one.
// Concurrent rotations of the same token: exactly one succeeds.
func (i *TokenIssuer) Rotate(ctx context.Context, refreshToken string) (TokenPair, int64, error) {
	claims, err := i.parse(refreshToken, TokenTypeRefresh)
	if err != nil {
		return TokenPair{}, 0, err
	}
	userID, err := subjectID(claims)
	if err != nil {
		return TokenPair{}, 0, err
	}

	if i.revocations != nil {
		if claims.ID == "" {
			return TokenPair{}, 0, ErrInvalidToken
		}
		revoked, err := i.revocations.Revoke(ctx, claims.ID, claims.ExpiresAt.Time)
		if err != nil {
			return TokenPair{}, 0, fmt.Errorf("failed to revoke refresh token: %w", err)
		}
		if !revoked {
			return TokenPair{}, 0, ErrTokenRevoked
		}
	}

	pair, err := i.IssuePair(userID)
	if err != nil {
		return TokenPair{}, 0, err
	}
	return pair, userID, nil
}

func (i *TokenIssuer) sign(userID int64, tokenType string, ttl time.Duration) (string, error) {
	now := i.now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    Issuer,
			Subject:   strconv.FormatInt(userID, 10),
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		TokenType: tokenType,
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign %s token: %w", tokenType, err)
	}
	return signed, nil
}

func (i *TokenIssuer) parse(token, wantType string) (*Claims, error) {
	var claims Claims
	_, err := jwt.ParseWithClaims(token, &claims,
		func(*jwt.Token) (any, error) { return i.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(Issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(i.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if claims.TokenType != wantType {
		return nil, fmt.Errorf("%w: expected %s token, got %q", ErrInvalidToken, wantType, claims.TokenType)
	}
	return &claims, nil
}

func subjectID(claims *Claims) (int64, error) {
	id, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: bad subject %q", ErrInvalidToken, claims.Subject)
	}
	return id, nil
}
