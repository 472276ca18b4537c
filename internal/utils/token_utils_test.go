package utils_test

import (
	"testing"
	"time"

	"github.com/SscSPs/gym_management_app/internal/core/domain"
	"github.com/SscSPs/gym_management_app/internal/utils"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func TestGenerateAndParseJWT(t *testing.T) {
	now := time.Now()
	token, exp, err := utils.GenerateJWT("acc-1", domain.RoleCoach, testSecret, time.Hour, "gym", now)
	require.NoError(t, err)
	assert.WithinDuration(t, now.Add(time.Hour), exp, time.Second)

	claims, err := utils.ParseAndValidateJWT(token, testSecret)
	require.NoError(t, err)
	assert.Equal(t, "acc-1", claims.Subject)
	assert.Equal(t, domain.RoleCoach, claims.Role)
	assert.Equal(t, "gym", claims.Issuer)
}

func TestParseJWT_Rejects(t *testing.T) {
	now := time.Now()

	expired, _, err := utils.GenerateJWT("acc-1", domain.RoleMember, testSecret, -time.Minute, "gym", now)
	require.NoError(t, err)
	_, err = utils.ParseAndValidateJWT(expired, testSecret)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)

	valid, _, err := utils.GenerateJWT("acc-1", domain.RoleMember, testSecret, time.Hour, "gym", now)
	require.NoError(t, err)
	_, err = utils.ParseAndValidateJWT(valid, "other-secret")
	assert.Error(t, err)

	unknownRole, _, err := utils.GenerateJWT("acc-1", domain.Role("ADMIN"), testSecret, time.Hour, "gym", now)
	require.NoError(t, err)
	_, err = utils.ParseAndValidateJWT(unknownRole, testSecret)
	assert.Error(t, err)
}

func TestResetTokenHash(t *testing.T) {
	raw, err := utils.GenerateSecureRandomString(utils.ResetTokenBytes)
	require.NoError(t, err)
	assert.Len(t, raw, 64)

	hash := utils.HashResetToken(raw)
	assert.NotEqual(t, raw, hash)
	assert.True(t, utils.CompareResetTokenHash(raw, hash))
	assert.False(t, utils.CompareResetTokenHash(raw+"x", hash))
}

func TestPasswordHash(t *testing.T) {
	hash, err := utils.HashPassword("secret1")
	require.NoError(t, err)
	assert.True(t, utils.CheckPasswordHash("secret1", hash))
	assert.False(t, utils.CheckPasswordHash("secret2", hash))
}
