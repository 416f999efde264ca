package auth

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/redis/go-redis/v9"
)

const tokenTTL = 24 * time.Hour

var ErrInvalidToken = errors.New("invalid or expired token")

// JWTService выпускает и проверяет токены доступа. Redis хранит
// черный список разлогиненных токенов до истечения их срока.
type JWTService struct {
	secretKey []byte
	redis     *redis.Client
}

func NewJWTService(secretKey string, redisClient *redis.Client) *JWTService {
	return &JWTService{
		secretKey: []byte(secretKey),
		redis:     redisClient,
	}
}

// TokenClaims — полезные поля токена после проверки.
type TokenClaims struct {
	UserID     int
	EmployeeID string
	Role       string
	ExpiresAt  time.Time
}

// GenerateToken выпускает токен на 24 часа с user_id, employee_id и role.
func (s *JWTService) GenerateToken(userID int, employeeID, role string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"user_id":     userID,
		"employee_id": employeeID,
		"role":        role,
		"exp":         now.Add(tokenTTL).Unix(),
		"iat":         now.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(s.secretKey)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %v", err)
	}
	return tokenString, nil
}

// ParseToken проверяет подпись и срок действия, возвращает claims.
func (s *JWTService) ParseToken(tokenString string) (*TokenClaims, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secretKey, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	mapClaims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}

	tc := &TokenClaims{}
	if v, ok := mapClaims["user_id"].(float64); ok {
		tc.UserID = int(v)
	}
	if v, ok := mapClaims["employee_id"].(string); ok {
		tc.EmployeeID = v
	}
	if v, ok := mapClaims["role"].(string); ok {
		tc.Role = v
	}
	if v, ok := mapClaims["exp"].(float64); ok {
		tc.ExpiresAt = time.Unix(int64(v), 0)
	}
	if tc.UserID == 0 {
		return nil, ErrInvalidToken
	}
	return tc, nil
}

// Blacklist кладет токен в черный список до истечения его срока.
func (s *JWTService) Blacklist(ctx context.Context, tokenString string) error {
	if s.redis == nil {
		return nil
	}
	claims, err := s.ParseToken(tokenString)
	if err != nil {
		return err
	}
	ttl := time.Until(claims.ExpiresAt)
	if ttl <= 0 {
		return nil
	}
	return s.redis.Set(ctx, blacklistKey(tokenString), 1, ttl).Err()
}

// IsBlacklisted проверяет токен по черному списку. При недоступном
// Redis токен считается действительным — доступность важнее.
func (s *JWTService) IsBlacklisted(ctx context.Context, tokenString string) bool {
	if s.redis == nil {
		return false
	}
	n, err := s.redis.Exists(ctx, blacklistKey(tokenString)).Result()
	if err != nil {
		return false
	}
	return n > 0
}

func blacklistKey(token string) string {
	sum := sha256.Sum256([]byte(token))
	return "token:blacklist:" + hex.EncodeToString(sum[:])
}
