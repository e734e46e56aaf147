package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pawelapps/ecommerce/internal/models"
)

const (
	accessTTL  = 15 * time.Minute
	refreshTTL = 7 * 24 * time.Hour
)

type TokenService struct {
	DB            *gorm.DB
	JWTSecret     []byte
	RefreshSecret []byte
}

func (t *TokenService) SignAccessToken(userID uint, email, role string) (string, error) {
	claims := jwt.MapClaims{
		"sub":   userID,
		"email": email,
		"role":  role,
		"exp":   time.Now().Add(accessTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(t.JWTSecret)
}

// SignRefreshToken includes a jti so back-to-back rotations never produce the
// same token string; the refresh_tokens table keys on it.
func (t *TokenService) SignRefreshToken(userID uint, email, role string) (string, error) {
	claims := jwt.MapClaims{
		"sub":   userID,
		"email": email,
		"role":  role,
		"exp":   time.Now().Add(refreshTTL).Unix(),
		"typ":   "refresh",
		"jti":   uuid.NewString(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(t.RefreshSecret)
}

// IssueTokens signs an access/refresh pair and persists the refresh token.
func (t *TokenService) IssueTokens(ctx context.Context, user *models.User) (string, string, error) {
	access, err := t.SignAccessToken(user.ID, user.Email, user.Role)
	if err != nil {
		return "", "", err
	}

	refresh, err := t.SignRefreshToken(user.ID, user.Email, user.Role)
	if err != nil {
		return "", "", err
	}

	if err := t.SaveRefreshToken(ctx, refresh, user.ID); err != nil {
		return "", "", err
	}

	return access, refresh, nil
}

func (t *TokenService) SaveRefreshToken(ctx context.Context, token string, userID uint) error {
	stored := models.RefreshToken{
		Token:     token,
		UserID:    userID,
		ExpiresAt: time.Now().Add(refreshTTL),
		Revoked:   false,
	}
	if err := t.DB.WithContext(ctx).Create(&stored).Error; err != nil {
		return fmt.Errorf("save refresh token: %w", err)
	}
	return nil
}

// ParseAccess verifies the signature and expiry of an access token.
func (t *TokenService) ParseAccess(raw string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(raw, func(tok *jwt.Token) (interface{}, error) {
		if _, ok := tok.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", tok.Header["alg"])
		}
		return t.JWTSecret, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("invalid token claims")
	}
	return claims, nil
}

// ValidateRefresh checks signature, typ claim and the stored row (revocation
// and expiry).
func (t *TokenService) ValidateRefresh(ctx context.Context, raw string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(raw, func(tok *jwt.Token) (interface{}, error) {
		if _, ok := tok.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", tok.Header["alg"])
		}
		return t.RefreshSecret, nil
	})
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("invalid refresh token: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("cannot parse claims")
	}

	if typ, ok := claims["typ"]; !ok || typ != "refresh" {
		return nil, errors.New("not a refresh token")
	}

	var stored models.RefreshToken
	if err := t.DB.WithContext(ctx).Where("token = ?", raw).First(&stored).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("refresh token not found")
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	if stored.Revoked {
		return nil, errors.New("refresh token revoked")
	}
	if time.Now().After(stored.ExpiresAt) {
		return nil, errors.New("refresh token expired")
	}

	return claims, nil
}

// RotateToken exchanges a valid refresh token for a fresh access/refresh pair,
// revoking the old refresh token.
func (t *TokenService) RotateToken(ctx context.Context, raw string) (string, string, jwt.MapClaims, error) {
	claims, err := t.ValidateRefresh(ctx, raw)
	if err != nil {
		return "", "", nil, err
	}

	sub, ok := claims["sub"].(float64)
	if !ok {
		return "", "", nil, errors.New("invalid subject claim")
	}
	email, _ := claims["email"].(string)
	role, _ := claims["role"].(string)
	userID := uint(sub)

	newAccess, err := t.SignAccessToken(userID, email, role)
	if err != nil {
		return "", "", nil, err
	}

	newRefresh, err := t.SignRefreshToken(userID, email, role)
	if err != nil {
		return "", "", nil, err
	}

	if err := t.SaveRefreshToken(ctx, newRefresh, userID); err != nil {
		return "", "", nil, err
	}
	if err := t.RevokeRefreshToken(ctx, raw); err != nil {
		return "", "", nil, err
	}

	return newAccess, newRefresh, claims, nil
}

func (t *TokenService) RevokeRefreshToken(ctx context.Context, raw string) error {
	return t.DB.WithContext(ctx).
		Model(&models.RefreshToken{}).
		Where("token = ?", raw).
		Update("revoked", true).Error
}
