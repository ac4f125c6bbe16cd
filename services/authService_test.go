package services

import (
	"context"
	"testing"

	"github.com/davidwere/sokoni-api/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func registerRequest(username, email string) models.RegisterRequest {
	return models.RegisterRequest{Username: username, Email: email, Password: "correct-horse"}
}

func TestRegisterAndLogin(t *testing.T) {
	db := openTestDB(t)
	auth := NewAuthService(db, testConfig())
	ctx := context.Background()

	created, err := auth.Register(ctx, registerRequest("alice", "a@x.com"))
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.Equal(t, "alice", created.Username)
	assert.Equal(t, "user", created.Role)
	assert.NotEmpty(t, created.Token)

	byUsername, err := auth.Login(ctx, models.LoginRequest{UsernameOrEmail: "alice", Password: "correct-horse"})
	require.NoError(t, err)
	assert.Equal(t, created.ID, byUsername.ID)

	byEmail, err := auth.Login(ctx, models.LoginRequest{UsernameOrEmail: "a@x.com", Password: "correct-horse"})
	require.NoError(t, err)
	assert.Equal(t, created.ID, byEmail.ID)
}

func TestRegisterDuplicateUsernameOrEmail(t *testing.T) {
	db := openTestDB(t)
	auth := NewAuthService(db, testConfig())
	ctx := context.Background()

	_, err := auth.Register(ctx, registerRequest("alice", "a@x.com"))
	require.NoError(t, err)

	_, err = auth.Register(ctx, registerRequest("alice", "b@x.com"))
	assert.Equal(t, KindConflict, KindOf(err))

	_, err = auth.Register(ctx, registerRequest("bob", "a@x.com"))
	assert.Equal(t, KindConflict, KindOf(err))

	// Distinct username and email always succeeds.
	_, err = auth.Register(ctx, registerRequest("bob", "b@x.com"))
	assert.NoError(t, err)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	db := openTestDB(t)
	auth := NewAuthService(db, testConfig())
	ctx := context.Background()

	_, err := auth.Register(ctx, registerRequest("alice", "a@x.com"))
	require.NoError(t, err)

	_, err = auth.Login(ctx, models.LoginRequest{UsernameOrEmail: "alice", Password: "wrong"})
	assert.Equal(t, KindUnauthorized, KindOf(err))

	_, err = auth.Login(ctx, models.LoginRequest{UsernameOrEmail: "nobody", Password: "correct-horse"})
	assert.Equal(t, KindUnauthorized, KindOf(err))
}

func TestRegisterUsesPerUserSalt(t *testing.T) {
	db := openTestDB(t)
	auth := NewAuthService(db, testConfig())
	ctx := context.Background()

	_, err := auth.Register(ctx, registerRequest("alice", "a@x.com"))
	require.NoError(t, err)
	_, err = auth.Register(ctx, registerRequest("bob", "b@x.com"))
	require.NoError(t, err)

	var users []models.User
	require.NoError(t, db.Order("id").Find(&users).Error)
	require.Len(t, users, 2)

	// Same password, different stored hashes: the salt is per user.
	assert.NotEqual(t, users[0].PasswordHash, users[1].PasswordHash)
}

func TestTokenCarriesExpectedClaims(t *testing.T) {
	db := openTestDB(t)
	cfg := testConfig()
	auth := NewAuthService(db, cfg)

	created, err := auth.Register(context.Background(), registerRequest("alice", "a@x.com"))
	require.NoError(t, err)

	token, err := jwt.Parse(created.Token,
		func(t *jwt.Token) (any, error) { return []byte(cfg.JWTSecret), nil },
		jwt.WithIssuer(cfg.JWTIssuer),
		jwt.WithAudience(cfg.JWTAudience),
		jwt.WithExpirationRequired(),
	)
	require.NoError(t, err)
	require.True(t, token.Valid)

	claims := token.Claims.(jwt.MapClaims)
	assert.Equal(t, float64(created.ID), claims["sub"])
	assert.Equal(t, "alice", claims["username"])
	assert.Equal(t, "user", claims["role"])
}
