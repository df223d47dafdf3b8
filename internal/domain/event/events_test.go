package event_test

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bibbank/accountmodel/internal/domain/event"
	"github.com/bibbank/accountmodel/internal/domain/model"
	"github.com/bibbank/accountmodel/internal/domain/valueobject"
)

func TestNewAccountRegistered(t *testing.T) {
	orgID := uuid.New()
	account, err := model.NewAccountBuilder().
		WithOrganisationID(orgID).
		WithCountry(valueobject.CountryGBR).
		WithBankID("400300").
		WithBIC("NWBKGB22").
		WithNumber("41426819").
		MarkBusiness().
		Build()
	require.NoError(t, err)

	evt, err := event.NewAccountRegistered(account, true, 3)
	require.NoError(t, err)

	assert.Equal(t, event.TypeAccountRegistered, evt.EventType())
	assert.Equal(t, "Account", evt.AggregateType())
	assert.Equal(t, account.ID(), evt.AggregateID())
	assert.NotEqual(t, uuid.Nil, evt.EventID())

	var payload event.AccountRegisteredPayload
	require.NoError(t, json.Unmarshal(evt.Payload(), &payload))
	assert.Equal(t, orgID, payload.OrganisationID)
	assert.Equal(t, "GBR", payload.Country)
	assert.Equal(t, "GBP", payload.Currency)
	assert.Equal(t, "GBDSC", payload.BankIDCode)
	assert.Equal(t, "41426819", payload.AccountNumber)
	assert.Empty(t, payload.IBAN)
	assert.Equal(t, "Business", payload.Classification)
	assert.True(t, payload.Cop)
	assert.Equal(t, 3, payload.Version)

	var _ event.DomainEvent = evt
}
