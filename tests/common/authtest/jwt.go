//go:build unit || e2e

package authtest

import (
	"testing"
	"time"

	"slot-reservation/internal/pkg/config"
	"slot-reservation/internal/pkg/jwt"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// JWTHelper signs tokens the way the external identity provider would.
type JWTHelper struct {
	cfg config.JWTConfig
}

func NewJWTHelper(cfg config.JWTConfig) *JWTHelper {
	return &JWTHelper{cfg: cfg}
}

func (h *JWTHelper) GenerateToken(t *testing.T, ownerID uuid.UUID) string {
	t.Helper()
	token, err := jwt.NewService(h.cfg.Secret).GenerateToken(ownerID, time.Hour)
	require.NoError(t, err)
	return token
}

func (h *JWTHelper) CreateExpiredToken(t *testing.T, ownerID uuid.UUID) string {
	t.Helper()
	token, err := jwt.NewService(h.cfg.Secret).GenerateToken(ownerID, -time.Minute)
	require.NoError(t, err)
	return token
}
