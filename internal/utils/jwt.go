package utils

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/prperemyshlev/seller-portal/internal/domain"
)

// ErrInvalidToken is returned for tokens that fail signature, format or expiry checks
var ErrInvalidToken = errors.New("invalid or expired token")

// JWTManager issues and verifies vendor access tokens
type JWTManager struct {
	secret []byte
	expiry time.Duration
	now    func() time.Time
}

// NewJWTManager creates a new JWT manager
func NewJWTManager(secret string, expiry time.Duration) *JWTManager {
	return &JWTManager{
		secret: []byte(secret),
		expiry: expiry,
		now:    time.Now,
	}
}

// GenerateToken signs an access token for a vendor
func (j *JWTManager) GenerateToken(vendorID, email string) (string, error) {
	now := j.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"vendor_id": vendorID,
		"email":     email,
		"exp":       now.Add(j.expiry).Unix(),
		"iat":       now.Unix(),
		"jti":       uuid.NewString(),
	})

	tokenString, err := token.SignedString(j.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, nil
}

// ValidateToken verifies the signature and expiry and returns the claims
func (j *JWTManager) ValidateToken(tokenString string) (*domain.TokenClaims, error) {
	claims := jwt.MapClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return j.secret, nil
	}, jwt.WithTimeFunc(j.now), jwt.WithExpirationRequired())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}

	vendorID, ok := claims["vendor_id"].(string)
	if !ok || vendorID == "" {
		return nil, fmt.Errorf("%w: missing vendor_id", ErrInvalidToken)
	}
	email, _ := claims["email"].(string)

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return nil, fmt.Errorf("%w: invalid exp", ErrInvalidToken)
	}
	var iat int64
	if issued, err := claims.GetIssuedAt(); err == nil && issued != nil {
		iat = issued.Unix()
	}

	return &domain.TokenClaims{
		VendorID: vendorID,
		Email:    email,
		Exp:      exp.Unix(),
		Iat:      iat,
	}, nil
}

// Remaining returns how long the token behind claims stays valid
func (j *JWTManager) Remaining(claims *domain.TokenClaims) time.Duration {
	d := time.Unix(claims.Exp, 0).Sub(j.now())
	if d < 0 {
		return 0
	}
	return d
}
