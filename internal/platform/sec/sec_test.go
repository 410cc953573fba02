// Copyright (c) 2026 RevenueGear. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec_test

import (
	"crypto/rand"
	"crypto/rsa"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/revenuegear/internal/platform/sec"
)

func newTokenService(t *testing.T, issuer string) *sec.TokenService {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	return sec.NewTokenServiceFromKeys(key, &key.PublicKey, issuer)
}

/*
TestTokenService_RoundTrip verifies that issued tokens verify and keep their claims.
*/
func TestTokenService_RoundTrip(t *testing.T) {
	service := newTokenService(t, "revenuegear.app")

	token, err := service.GenerateAccessToken("admin", "admin", string(sec.RoleAdmin), time.Hour)
	require.NoError(t, err)

	claims, err := service.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, "admin", claims.UserID)
	assert.Equal(t, "admin", claims.Role)
}

/*
TestTokenService_RejectsForeignKey ensures tokens signed by another key fail.
*/
func TestTokenService_RejectsForeignKey(t *testing.T) {
	issuer := newTokenService(t, "revenuegear.app")
	verifier := newTokenService(t, "revenuegear.app")

	token, err := issuer.GenerateAccessToken("admin", "admin", string(sec.RoleAdmin), time.Hour)
	require.NoError(t, err)

	_, err = verifier.VerifyToken(token)
	assert.Error(t, err)
}

/*
TestTokenService_RejectsExpired ensures expired tokens fail verification.
*/
func TestTokenService_RejectsExpired(t *testing.T) {
	service := newTokenService(t, "revenuegear.app")

	token, err := service.GenerateAccessToken("admin", "admin", string(sec.RoleAdmin), -time.Minute)
	require.NoError(t, err)

	_, err = service.VerifyToken(token)
	assert.Error(t, err)
}

/*
TestPasswordHash checks bcrypt hashing and comparison.
*/
func TestPasswordHash(t *testing.T) {
	hash, err := sec.HashPassword("dealer-demo")
	require.NoError(t, err)

	assert.True(t, sec.CheckPasswordHash("dealer-demo", hash))
	assert.False(t, sec.CheckPasswordHash("wrong", hash))
}

/*
TestUserRole_AtLeast checks the role hierarchy.
*/
func TestUserRole_AtLeast(t *testing.T) {
	assert.True(t, sec.RoleAdmin.AtLeast(sec.RoleEditor))
	assert.True(t, sec.RoleEditor.AtLeast(sec.RoleEditor))
	assert.False(t, sec.RoleEditor.AtLeast(sec.RoleAdmin))
	assert.False(t, sec.UserRole("").AtLeast(sec.UserRole("")))
}
