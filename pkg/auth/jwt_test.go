package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestJWTService(t *testing.T) *JWTService {
	t.Helper()
	svc, err := NewJWTService(JWTConfig{
		Secret:     "test-secret-key-for-unit-tests",
		Issuer:     "bib-test",
		Expiration: 15 * time.Minute,
	})
	require.NoError(t, err)
	return svc
}

func TestGenerateAndValidateToken(t *testing.T) {
	svc := newTestJWTService(t)
	orgID := uuid.New()

	token, err := svc.GenerateToken("client-1", orgID, []string{RoleAccountWriter})
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, orgID, claims.OrganisationID)
	assert.Equal(t, "client-1", claims.Subject)
	assert.Equal(t, "bib-test", claims.Issuer)
	assert.True(t, claims.HasRole(RoleAccountWriter))
	assert.False(t, claims.HasRole(RoleAdmin))
}

func TestNewJWTService_RequiresKey(t *testing.T) {
	_, err := NewJWTService(JWTConfig{Issuer: "bib-test"})
	require.Error(t, err)
}

func TestValidateToken_Rejects(t *testing.T) {
	t.Run("expired", func(t *testing.T) {
		svc, err := NewJWTService(JWTConfig{Secret: "s", Issuer: "bib-test", Expiration: -time.Hour})
		require.NoError(t, err)
		token, err := svc.GenerateToken("c", uuid.New(), nil)
		require.NoError(t, err)

		_, err = svc.ValidateToken(token)
		require.Error(t, err)
	})

	t.Run("wrong secret", func(t *testing.T) {
		other, err := NewJWTService(JWTConfig{Secret: "other", Issuer: "bib-test", Expiration: time.Minute})
		require.NoError(t, err)
		token, err := other.GenerateToken("c", uuid.New(), nil)
		require.NoError(t, err)

		_, err = newTestJWTService(t).ValidateToken(token)
		require.Error(t, err)
	})

	t.Run("wrong issuer", func(t *testing.T) {
		other, err := NewJWTService(JWTConfig{
			Secret:     "test-secret-key-for-unit-tests",
			Issuer:     "someone-else",
			Expiration: time.Minute,
		})
		require.NoError(t, err)
		token, err := other.GenerateToken("c", uuid.New(), nil)
		require.NoError(t, err)

		_, err = newTestJWTService(t).ValidateToken(token)
		require.Error(t, err)
	})
}

func TestRSAValidationOnly(t *testing.T) {
	privPEM, pubPEM, err := GenerateKeyPair()
	require.NoError(t, err)

	issuer, err := NewJWTService(JWTConfig{PrivateKeyPEM: string(privPEM), Issuer: "bib", Expiration: time.Minute})
	require.NoError(t, err)
	validator, err := NewJWTService(JWTConfig{PublicKeyPEM: string(pubPEM), Issuer: "bib"})
	require.NoError(t, err)

	orgID := uuid.New()
	token, err := issuer.GenerateToken("c", orgID, []string{RoleAPIClient})
	require.NoError(t, err)

	claims, err := validator.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, orgID, claims.OrganisationID)

	_, err = validator.GenerateToken("c", orgID, nil)
	assert.True(t, errors.Is(err, ErrSigningUnavailable))

	hsToken, err := newTestJWTService(t).GenerateToken("c", orgID, nil)
	require.NoError(t, err)
	_, err = validator.ValidateToken(hsToken)
	assert.Error(t, err, "HS256 token must not pass an RS256 validator")
}

func TestClaimsFromContext(t *testing.T) {
	_, ok := ClaimsFromContext(context.Background())
	assert.False(t, ok)

	want := &Claims{OrganisationID: uuid.New(), Roles: []string{RoleAccountReader}}
	got, ok := ClaimsFromContext(ContextWithClaims(context.Background(), want))
	require.True(t, ok)
	assert.Equal(t, want, got)
}

func TestResolveOrganisation(t *testing.T) {
	own := uuid.New()
	other := uuid.New().String()
	ctx := func(roles ...string) context.Context {
		return ContextWithClaims(context.Background(), &Claims{OrganisationID: own, Roles: roles})
	}

	got, err := ResolveOrganisation(context.Background(), other)
	require.NoError(t, err)
	assert.Equal(t, other, got, "anonymous context passes through")

	got, err = ResolveOrganisation(ctx(RoleAccountWriter), "")
	require.NoError(t, err)
	assert.Equal(t, own.String(), got)

	_, err = ResolveOrganisation(ctx(RoleAccountWriter), other)
	assert.ErrorIs(t, err, ErrForeignOrganisation)

	got, err = ResolveOrganisation(ctx(RoleAdmin), other)
	require.NoError(t, err)
	assert.Equal(t, other, got)
}
