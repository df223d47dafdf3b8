package auth

import (
	"context"
	"errors"
	"slices"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims are the JWT claims accepted by the account services.
type Claims struct {
	jwt.RegisteredClaims
	OrganisationID uuid.UUID `json:"organisation_id"`
	Roles          []string  `json:"roles"`
}

// HasRole reports whether the claims carry role.
func (c Claims) HasRole(role string) bool {
	return slices.Contains(c.Roles, role)
}

const (
	RoleAdmin         = "admin"
	RoleAccountWriter = "account_writer"
	RoleAccountReader = "account_reader"
	RoleAPIClient     = "api_client"
)

// ErrForeignOrganisation is returned when a caller names an organisation other than its own.
var ErrForeignOrganisation = errors.New("organisation_id does not match caller")

// ResolveOrganisation defaults requested to the caller's organisation. Admins may name any
// organisation; anonymous contexts pass requested through unchanged.
func ResolveOrganisation(ctx context.Context, requested string) (string, error) {
	claims, ok := ClaimsFromContext(ctx)
	if !ok || claims.OrganisationID == uuid.Nil {
		return requested, nil
	}
	own := claims.OrganisationID.String()
	switch {
	case requested == "":
		return own, nil
	case requested != own && !claims.HasRole(RoleAdmin):
		return "", ErrForeignOrganisation
	}
	return requested, nil
}
