package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrInvalidToken  = errors.New("invalid token")
	ErrExpiredToken  = errors.New("token expired")
	ErrInvalidFormat = errors.New("invalid token format")
)

// JWTConfig configures access token signing.
type JWTConfig struct {
	SecretKey      string
	AccessTokenExp time.Duration
	TokenIssuer    string
}

// JWTService signs and verifies the access tokens of the local gateway.
type JWTService struct {
	secret []byte
	ttl    time.Duration
	issuer string
	now    func() time.Time
}

func NewJWTService(config JWTConfig) *JWTService {
	return &JWTService{
		secret: []byte(config.SecretKey),
		ttl:    config.AccessTokenExp,
		issuer: config.TokenIssuer,
		now:    time.Now,
	}
}

// Claims carries the session identity. The registered ID (jti) names the
// server-side session the token belongs to, so revoking that entry
// invalidates the token before it expires.
type Claims struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
	Name   string `json:"name"`
	jwt.RegisteredClaims
}

// IssuedToken is a signed access token and its session id.
type IssuedToken struct {
	AccessToken string
	SessionID   string
	ExpiresAt   time.Time
}

// GenerateAccessToken signs a token for the user under a fresh session id.
func (s *JWTService) GenerateAccessToken(userID, email, name string) (*IssuedToken, error) {
	now := s.now()
	issued := &IssuedToken{
		SessionID: uuid.New().String(),
		ExpiresAt: now.Add(s.ttl),
	}

	claims := &Claims{
		UserID: userID,
		Email:  email,
		Name:   name,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        issued.SessionID,
			Subject:   userID,
			Issuer:    s.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(issued.ExpiresAt),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return nil, fmt.Errorf("sign access token: %w", err)
	}
	issued.AccessToken = signed
	return issued, nil
}

// ValidateToken verifies signature, issuer and lifetime. It does not consult
// the session store.
func (s *JWTService) ValidateToken(raw string) (*Claims, error) {
	if raw == "" {
		return nil, ErrInvalidToken
	}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
	}
	if s.issuer != "" {
		opts = append(opts, jwt.WithIssuer(s.issuer))
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(*jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, opts...)
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return nil, ErrExpiredToken
	case err != nil:
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	case !token.Valid || claims.UserID == "" || claims.ID == "":
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// ExtractBearerToken strips an optional "Bearer " scheme from an
// Authorization header value.
func ExtractBearerToken(header string) (string, error) {
	header = strings.TrimSpace(header)
	if header == "" {
		return "", ErrInvalidFormat
	}

	scheme, token, found := strings.Cut(header, " ")
	if found && strings.EqualFold(scheme, "bearer") {
		token = strings.TrimSpace(token)
		if token == "" {
			return "", ErrInvalidFormat
		}
		return token, nil
	}
	return header, nil
}
