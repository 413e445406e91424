package auth

import (
	"errors"
	"time"

	"worklink_backend/internal/config"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	// ErrTokenExpired - подпись валидна, но срок действия истек.
	// Отличается от ErrTokenInvalid, чтобы middleware мог отдать
	// клиенту код TOKEN_EXPIRED для молчаливого refresh.
	ErrTokenExpired = errors.New("token expired")

	// ErrTokenInvalid - токен не распарсился, подпись не сошлась
	// или claims не того типа
	ErrTokenInvalid = errors.New("token invalid")
)

const (
	tokenIssuer   = "worklink"
	tokenAudience = "worklink-api"
)

// Claims - полезная нагрузка токенов (и access, и refresh)
type Claims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// TokenPair - пара access/refresh токенов
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type jwtSettings struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

var settings *jwtSettings

// InitJWT инициализирует секреты и TTL из конфига.
// Вызывается один раз при старте приложения (и в тестах).
func InitJWT(cfg *config.Config) {
	settings = &jwtSettings{
		accessSecret:  []byte(cfg.JWT.Secret),
		refreshSecret: []byte(cfg.JWT.RefreshSecret),
		accessTTL:     time.Duration(cfg.JWT.AccessTTL) * time.Minute,
		refreshTTL:    time.Duration(cfg.JWT.RefreshTTL) * time.Hour,
	}
}

func getSettings() *jwtSettings {
	if settings == nil {
		InitJWT(config.GetConfig())
	}
	return settings
}

// GenerateTokenPair создает пару access/refresh токенов.
// Токены подписываются разными секретами - refresh нельзя
// предъявить как access и наоборот.
func GenerateTokenPair(userID, email, role string) (*TokenPair, error) {
	s := getSettings()

	accessToken, err := signToken(userID, email, role, s.accessSecret, s.accessTTL)
	if err != nil {
		return nil, err
	}

	refreshToken, err := signToken(userID, email, role, s.refreshSecret, s.refreshTTL)
	if err != nil {
		return nil, err
	}

	return &TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// ParseAccessToken проверяет access token и возвращает claims
func ParseAccessToken(tokenStr string) (*Claims, error) {
	return parseToken(tokenStr, getSettings().accessSecret)
}

// ParseRefreshToken проверяет refresh token и возвращает claims
func ParseRefreshToken(tokenStr string) (*Claims, error) {
	return parseToken(tokenStr, getSettings().refreshSecret)
}

func signToken(userID, email, role string, secret []byte, ttl time.Duration) (string, error) {
	now := time.Now()

	claims := Claims{
		UserID: userID,
		Email:  email,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			// jti делает каждый выданный токен уникальным: iat/exp
			// имеют секундную точность, и без jti две пары, выданные
			// в одну секунду, были бы байт-в-байт одинаковыми -
			// ротация сессии превратилась бы в no-op.
			ID:        uuid.NewString(),
			Subject:   userID,
			Issuer:    tokenIssuer,
			Audience:  jwt.ClaimStrings{tokenAudience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

func parseToken(tokenStr string, secret []byte) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrTokenInvalid
		}
		return secret, nil
	},
		jwt.WithIssuer(tokenIssuer),
		jwt.WithAudience(tokenAudience),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrTokenInvalid
	}

	return claims, nil
}
