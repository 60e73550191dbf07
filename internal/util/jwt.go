package util

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TokenKind separates app-user tokens from admin dashboard tokens so one can
// never be replayed against the other's routes.
type TokenKind string

const (
	TokenKindUser  TokenKind = "user"
	TokenKindAdmin TokenKind = "admin"
)

var (
	ErrTokenExpired   = errors.New("token expired")
	ErrTokenInvalid   = errors.New("invalid token")
	ErrTokenWrongKind = errors.New("token not valid for this audience")
)

type Claims struct {
	UserID   uuid.UUID `json:"uid"`
	Kind     TokenKind `json:"kind"`
	Email    string    `json:"email,omitempty"`
	Username string    `json:"username,omitempty"`
	Role     string    `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// Subject is the identity a token is issued for.
type Subject struct {
	ID       uuid.UUID
	Email    string
	Username string
	Role     string
}

type JWTManager struct {
	secret []byte
	ttl    time.Duration
	kind   TokenKind
	now    func() time.Time
}

func NewJWTManager(secret string, ttl time.Duration, kind TokenKind) *JWTManager {
	return &JWTManager{secret: []byte(secret), ttl: ttl, kind: kind, now: time.Now}
}

func (m *JWTManager) TTL() time.Duration {
	return m.ttl
}

func (m *JWTManager) Generate(subject Subject) (string, time.Time, error) {
	issuedAt := m.now()
	expiresAt := issuedAt.Add(m.ttl)
	claims := Claims{
		UserID:   subject.ID,
		Kind:     m.kind,
		Email:    subject.Email,
		Username: subject.Username,
		Role:     subject.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject.ID.String(),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

func (m *JWTManager) Parse(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return m.secret, nil
	}, jwt.WithTimeFunc(m.now))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}
	if !token.Valid {
		return nil, ErrTokenInvalid
	}
	if claims.Kind != m.kind {
		return nil, ErrTokenWrongKind
	}
	return claims, nil
}
