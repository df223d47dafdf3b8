package usecase_test

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	"github.com/bibbank/accountmodel/internal/application/dto"
	"github.com/bibbank/accountmodel/internal/application/usecase"
	"github.com/bibbank/accountmodel/internal/domain/event"
	"github.com/bibbank/accountmodel/internal/domain/model"
	"github.com/bibbank/accountmodel/internal/domain/port"
)

// --- Fakes ---

type fakeSubmitter struct {
	mu        sync.Mutex
	submitted []model.Account
	cops      []*model.CopAccount
	err       error
}

func (f *fakeSubmitter) Submit(_ context.Context, account model.Account, cop *model.CopAccount) (port.Receipt, error) {
	if f.err != nil {
		return port.Receipt{}, f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.submitted = append(f.submitted, account)
	f.cops = append(f.cops, cop)
	return port.Receipt{
		ID:        account.ID(),
		Version:   0,
		CreatedOn: time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC),
	}, nil
}

type fakePublisher struct {
	topic  string
	events []event.DomainEvent
	err    error
}

func (f *fakePublisher) Publish(_ context.Context, topic string, events ...event.DomainEvent) error {
	if f.err != nil {
		return f.err
	}
	f.topic = topic
	f.events = append(f.events, events...)
	return nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newValidator(t *testing.T) (*usecase.ValidateAccountUseCase, *sdkmetric.ManualReader) {
	t.Helper()
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() { _ = provider.Shutdown(context.Background()) })

	uc, err := usecase.NewValidateAccountUseCase(testLogger(), provider.Meter("usecase_test"))
	require.NoError(t, err)
	return uc, reader
}

// validations returns the account_validations_total counter keyed by "country/outcome".
func validations(t *testing.T, reader *sdkmetric.ManualReader) map[string]int64 {
	t.Helper()
	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))

	out := map[string]int64{}
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if m.Name != "account_validations_total" {
				continue
			}
			sum, ok := m.Data.(metricdata.Sum[int64])
			require.True(t, ok)
			for _, dp := range sum.DataPoints {
				country, _ := dp.Attributes.Value("country")
				outcome, _ := dp.Attributes.Value("outcome")
				out[country.AsString()+"/"+outcome.AsString()] += dp.Value
			}
		}
	}
	return out
}

func ptr(s string) *string { return &s }

func gbrRequest() dto.AccountRequest {
	return dto.AccountRequest{
		OrganisationID: uuid.NewString(),
		Country:        "GBR",
		BankID:         ptr("400300"),
		BankIDCode:     ptr("GBDSC"),
		Number:         ptr("41426819"),
		BIC:            ptr("NWBKGB22"),
	}
}
