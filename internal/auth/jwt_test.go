package auth

import (
	"testing"

	"worklink_backend/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(accessTTL int) *config.Config {
	cfg := &config.Config{}
	cfg.JWT.Secret = "unit-test-access-secret"
	cfg.JWT.RefreshSecret = "unit-test-refresh-secret"
	cfg.JWT.AccessTTL = accessTTL
	cfg.JWT.RefreshTTL = 168
	return cfg
}

func TestTokenPairRoundTrip(t *testing.T) {
	InitJWT(testConfig(15))

	pair, err := GenerateTokenPair("user-1", "u@test.com", "candidate")
	require.NoError(t, err)
	assert.NotEqual(t, pair.AccessToken, pair.RefreshToken)

	claims, err := ParseAccessToken(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "u@test.com", claims.Email)
	assert.Equal(t, "candidate", claims.Role)

	refreshClaims, err := ParseRefreshToken(pair.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, "user-1", refreshClaims.UserID)
}

// Access и refresh подписаны разными секретами: перекрестное
// предъявление не проходит.
func TestTokenKindsNotInterchangeable(t *testing.T) {
	InitJWT(testConfig(15))

	pair, err := GenerateTokenPair("user-1", "u@test.com", "candidate")
	require.NoError(t, err)

	_, err = ParseAccessToken(pair.RefreshToken)
	assert.ErrorIs(t, err, ErrTokenInvalid)

	_, err = ParseRefreshToken(pair.AccessToken)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

// iat/exp имеют секундную точность, поэтому уникальность токена
// держится на jti: две пары, выданные подряд в одну секунду, не
// должны совпадать, иначе ротация сессии вырождается в no-op.
func TestTokensUniqueWithinSameSecond(t *testing.T) {
	InitJWT(testConfig(15))

	first, err := GenerateTokenPair("user-1", "u@test.com", "candidate")
	require.NoError(t, err)
	second, err := GenerateTokenPair("user-1", "u@test.com", "candidate")
	require.NoError(t, err)

	assert.NotEqual(t, first.AccessToken, second.AccessToken)
	assert.NotEqual(t, first.RefreshToken, second.RefreshToken)

	claims1, err := ParseRefreshToken(first.RefreshToken)
	require.NoError(t, err)
	claims2, err := ParseRefreshToken(second.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, claims1.ID)
	assert.NotEqual(t, claims1.ID, claims2.ID)
}

func TestExpiredToken(t *testing.T) {
	InitJWT(testConfig(-1))

	pair, err := GenerateTokenPair("user-1", "u@test.com", "candidate")
	require.NoError(t, err)

	// Просроченный токен отличим от невалидного
	_, err = ParseAccessToken(pair.AccessToken)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestGarbageToken(t *testing.T) {
	InitJWT(testConfig(15))

	_, err := ParseAccessToken("not.a.token")
	assert.ErrorIs(t, err, ErrTokenInvalid)

	_, err = ParseAccessToken("")
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestTokenFromDifferentSecret(t *testing.T) {
	InitJWT(testConfig(15))
	pair, err := GenerateTokenPair("user-1", "u@test.com", "candidate")
	require.NoError(t, err)

	other := testConfig(15)
	other.JWT.Secret = "completely-different-secret"
	InitJWT(other)

	_, err = ParseAccessToken(pair.AccessToken)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}
