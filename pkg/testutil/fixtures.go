// Package testutil holds fixtures and container helpers shared by tests.
package testutil

import (
	"github.com/google/uuid"
)

// Fixed UUIDs for deterministic testing
var (
	TestOrganisationID = uuid.MustParse("00000000-0000-0000-0000-000000000010")
	TestAccountID      = uuid.MustParse("00000000-0000-0000-0000-000000000020")
)

// A valid UK account: sort code, 8-digit number and a NatWest BIC.
const (
	GBRBankID        = "400300"
	GBRBankIDCode    = "GBDSC"
	GBRAccountNumber = "41426819"
	GBRBIC           = "NWBKGB22"
)
