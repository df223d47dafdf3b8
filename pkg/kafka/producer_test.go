package kafka

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProducer(t *testing.T) {
	p, err := NewProducer(Config{
		Brokers:  []string{"localhost:9092", "localhost:9093"},
		ClientID: "accountd",
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"localhost:9092", "localhost:9093"}, p.brokers)
	assert.Empty(t, p.writers)
	assert.Equal(t, "accountd", p.transport.ClientID)
	assert.Nil(t, p.transport.TLS)
	assert.Nil(t, p.transport.SASL)
}

func TestNewProducer_TLSAndSASL(t *testing.T) {
	t.Run("plain", func(t *testing.T) {
		p, err := NewProducer(Config{
			Brokers:      []string{"kafka:9093"},
			TLS:          true,
			SASLEnabled:  true,
			SASLUsername: "user",
			SASLPassword: "pass",
		})
		require.NoError(t, err)
		assert.NotNil(t, p.transport.TLS)
		require.NotNil(t, p.transport.SASL)
		assert.Equal(t, "PLAIN", p.transport.SASL.Name())
	})

	t.Run("scram", func(t *testing.T) {
		p, err := NewProducer(Config{
			Brokers:       []string{"kafka:9093"},
			SASLEnabled:   true,
			SASLMechanism: "SCRAM-SHA-512",
			SASLUsername:  "user",
			SASLPassword:  "pass",
		})
		require.NoError(t, err)
		require.NotNil(t, p.transport.SASL)
		assert.Equal(t, "SCRAM-SHA-512", p.transport.SASL.Name())
	})

	t.Run("unknown mechanism", func(t *testing.T) {
		_, err := NewProducer(Config{SASLEnabled: true, SASLMechanism: "GSSAPI"})
		assert.ErrorContains(t, err, "unsupported SASL mechanism")
	})
}

func TestProducer_WritersAreCachedPerTopic(t *testing.T) {
	p, err := NewProducer(Config{Brokers: []string{"localhost:9092"}})
	require.NoError(t, err)

	first := p.getOrCreateWriter("account-events")
	second := p.getOrCreateWriter("account-events")
	other := p.getOrCreateWriter("audit-events")

	assert.Same(t, first, second)
	assert.NotSame(t, first, other)
	assert.Len(t, p.writers, 2)
	assert.Same(t, p.transport, first.Transport)

	require.NoError(t, p.Close())
	assert.Empty(t, p.writers)
}

func TestProducer_PublishNothing(t *testing.T) {
	p, err := NewProducer(Config{Brokers: []string{"localhost:9092"}})
	require.NoError(t, err)

	require.NoError(t, p.Publish(context.Background(), "account-events"))
	assert.Empty(t, p.writers)
}
