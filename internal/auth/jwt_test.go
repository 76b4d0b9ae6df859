package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestJWTManagerRoundTrip(t *testing.T) {
	manager := NewJWTManager("test-secret", time.Hour, "campuslane")

	token, err := manager.Generate("01HQZX3Y4K6F7G8H9J0K1M2N3P", string(RoleStudent))
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := manager.Validate(token)
	require.NoError(t, err)
	require.Equal(t, "01HQZX3Y4K6F7G8H9J0K1M2N3P", claims.Subject)
	require.Equal(t, RoleStudent, claims.Role)
}

func TestJWTManagerGenerateRequiresSubjectAndKnownRole(t *testing.T) {
	manager := NewJWTManager("test-secret", time.Hour, "campuslane")

	_, err := manager.Generate("", string(RoleStudent))
	require.ErrorIs(t, err, ErrInvalidToken)

	_, err = manager.Generate("user-id", "")
	require.ErrorIs(t, err, ErrInvalidToken)

	_, err = manager.Generate("user-id", "superuser")
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTManagerCanonicalizesRole(t *testing.T) {
	manager := NewJWTManager("test-secret", time.Hour, "campuslane")

	token, err := manager.Generate("user-id", " admin ")
	require.NoError(t, err)

	claims, err := manager.Validate(token)
	require.NoError(t, err)
	require.Equal(t, RoleAdmin, claims.Role)
}

func TestJWTManagerRejectsForeignIssuer(t *testing.T) {
	manager := NewJWTManager("test-secret", time.Hour, "campuslane")
	other := NewJWTManager("test-secret", time.Hour, "someone-else")

	token, err := other.Generate("user-id", string(RoleAdmin))
	require.NoError(t, err)

	_, err = manager.Validate(token)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTManagerRejectsForeignSecret(t *testing.T) {
	manager := NewJWTManager("test-secret", time.Hour, "campuslane")
	other := NewJWTManager("other-secret", time.Hour, "campuslane")

	token, err := other.Generate("user-id", string(RoleAdmin))
	require.NoError(t, err)

	_, err = manager.Validate(token)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTManagerRejectsExpiredToken(t *testing.T) {
	manager := NewJWTManager("test-secret", -time.Minute, "campuslane")

	token, err := manager.Generate("user-id", string(RoleAdmin))
	require.NoError(t, err)

	_, err = manager.Validate(token)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenFromHeader(t *testing.T) {
	token, err := TokenFromHeader("Bearer abc.def.ghi")
	require.NoError(t, err)
	require.Equal(t, "abc.def.ghi", token)

	_, err = TokenFromHeader("")
	require.ErrorIs(t, err, ErrMissingToken)

	_, err = TokenFromHeader("Basic abc")
	require.ErrorIs(t, err, ErrMissingToken)
}

func TestNormalizeRole(t *testing.T) {
	require.Equal(t, RoleAdmin, NormalizeRole(" admin "))
	require.Equal(t, RoleStudent, NormalizeRole("STUDENT"))
	require.Equal(t, Role(""), NormalizeRole("superuser"))
	require.False(t, IsAdmin("student"))
	require.True(t, IsStudent("Student"))
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("s3cret-password")
	require.NoError(t, err)
	require.NotEqual(t, "s3cret-password", hash)

	require.NoError(t, VerifyPassword(hash, "s3cret-password"))
	require.ErrorIs(t, VerifyPassword(hash, "wrong"), ErrPasswordMismatch)
}
