package valueobject_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bibbank/accountmodel/internal/domain/valueobject"
)

func TestParseCountry(t *testing.T) {
	t.Run("accepts alpha-3", func(t *testing.T) {
		c, err := valueobject.ParseCountry("GBR")
		require.NoError(t, err)
		assert.True(t, c.Equal(valueobject.CountryGBR))
		assert.Equal(t, "GBR", c.String())
		assert.Equal(t, "GB", c.Alpha2())
	})

	t.Run("accepts alpha-2", func(t *testing.T) {
		c, err := valueobject.ParseCountry("US")
		require.NoError(t, err)
		assert.Equal(t, "USA", c.Alpha3())
	})

	t.Run("trims whitespace", func(t *testing.T) {
		c, err := valueobject.ParseCountry("  DEU ")
		require.NoError(t, err)
		assert.True(t, c.Equal(valueobject.CountryDEU))
	})

	t.Run("rejects unknown country", func(t *testing.T) {
		_, err := valueobject.ParseCountry("ATL")
		assert.EqualError(t, err, "ATL is not a known country")
	})

	t.Run("rejects lowercase", func(t *testing.T) {
		_, err := valueobject.ParseCountry("gbr")
		assert.Error(t, err)
	})

	t.Run("zero value", func(t *testing.T) {
		var c valueobject.Country
		assert.True(t, c.IsZero())
		assert.False(t, valueobject.CountryGBR.IsZero())
	})
}

func TestClassification(t *testing.T) {
	t.Run("to string", func(t *testing.T) {
		assert.Equal(t, "Personal", valueobject.ClassificationPersonal.String())
		assert.Equal(t, "Business", valueobject.ClassificationBusiness.String())
	})

	t.Run("zero value is Personal", func(t *testing.T) {
		var c valueobject.Classification
		assert.Equal(t, valueobject.ClassificationPersonal, c)
	})

	t.Run("from string", func(t *testing.T) {
		c, err := valueobject.ParseClassification("Business")
		require.NoError(t, err)
		assert.Equal(t, valueobject.ClassificationBusiness, c)

		c, err = valueobject.ParseClassification("Personal")
		require.NoError(t, err)
		assert.Equal(t, valueobject.ClassificationPersonal, c)
	})

	t.Run("unknown string", func(t *testing.T) {
		_, err := valueobject.ParseClassification("unknown")
		assert.EqualError(t, err, "unknown is not classification variant")
	})

	t.Run("json text codec", func(t *testing.T) {
		data, err := json.Marshal(valueobject.ClassificationBusiness)
		require.NoError(t, err)
		assert.JSONEq(t, `"Business"`, string(data))

		var c valueobject.Classification
		require.NoError(t, json.Unmarshal([]byte(`"Business"`), &c))
		assert.Equal(t, valueobject.ClassificationBusiness, c)
		assert.Error(t, json.Unmarshal([]byte(`"Corporate"`), &c))
	})
}

func TestKnownBankIDCode(t *testing.T) {
	t.Run("to string", func(t *testing.T) {
		assert.Equal(t, "GBDSC", valueobject.BankIDCodeGBDSC.String())
	})

	t.Run("from string", func(t *testing.T) {
		code, err := valueobject.ParseKnownBankIDCode("USABA")
		require.NoError(t, err)
		assert.True(t, code.Equal(valueobject.BankIDCodeUSABA))
	})

	t.Run("unknown string", func(t *testing.T) {
		_, err := valueobject.ParseKnownBankIDCode("invalid")
		assert.EqualError(t, err, "invalid is not known bank id code variant")
	})

	t.Run("zero value", func(t *testing.T) {
		var code valueobject.KnownBankIDCode
		assert.True(t, code.IsZero())
	})
}
