package grpc

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/metric/noop"
	"go.uber.org/mock/gomock"
	grpclib "google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"

	"github.com/bibbank/accountmodel/internal/application/usecase"
	"github.com/bibbank/accountmodel/internal/domain/model"
	"github.com/bibbank/accountmodel/internal/domain/port"
	"github.com/bibbank/accountmodel/internal/domain/port/mocks"
	"github.com/bibbank/accountmodel/internal/infrastructure/accountapi"
	"github.com/bibbank/accountmodel/pkg/auth"
)

func ptr(s string) *string { return &s }

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func gbrMessage() *AccountMessage {
	return &AccountMessage{
		Country:       "GBR",
		BankID:        ptr("400300"),
		BankIDCode:    ptr("GBDSC"),
		AccountNumber: ptr("41426819"),
		BIC:           ptr("NWBKGB22"),
	}
}

type fixture struct {
	handler   *AccountHandler
	submitter *mocks.MockAccountSubmitter
	publisher *mocks.MockEventPublisher
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	ctrl := gomock.NewController(t)
	submitter := mocks.NewMockAccountSubmitter(ctrl)
	publisher := mocks.NewMockEventPublisher(ctrl)

	validator, err := usecase.NewValidateAccountUseCase(testLogger(), noop.NewMeterProvider().Meter("test"))
	require.NoError(t, err)

	return fixture{
		handler: NewAccountHandler(
			validator,
			usecase.NewRegisterAccountUseCase(validator, submitter, publisher, "account-events", testLogger()),
			usecase.NewInitiateTransferUseCase(validator, testLogger()),
		),
		submitter: submitter,
		publisher: publisher,
	}
}

func acceptSubmission(f fixture) {
	f.submitter.EXPECT().Submit(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, a model.Account, _ *model.CopAccount) (port.Receipt, error) {
			return port.Receipt{ID: a.ID(), Version: 0, CreatedOn: time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)}, nil
		})
	f.publisher.EXPECT().Publish(gomock.Any(), "account-events", gomock.Any()).Return(nil)
}

func TestAccountHandler_ValidateAccount(t *testing.T) {
	t.Run("returns normalized account", func(t *testing.T) {
		f := newFixture(t)
		msg := gbrMessage()
		msg.BankIDCode = nil

		resp, err := f.handler.ValidateAccount(context.Background(), &ValidateAccountRequest{Account: msg})
		require.NoError(t, err)
		assert.Equal(t, "GBR", resp.Account.Country)
		assert.Equal(t, "GBP", resp.Account.Currency)
		assert.Equal(t, "GBDSC", resp.Account.BankIDCode)
		assert.Equal(t, "41426819", resp.Account.AccountNumber)
		assert.Empty(t, resp.Account.IBAN)
		assert.True(t, resp.BankIDCodeCorrected)
	})

	t.Run("domain error is invalid argument with exact message", func(t *testing.T) {
		f := newFixture(t)
		msg := gbrMessage()
		msg.BankID = ptr("lt-6c")

		_, err := f.handler.ValidateAccount(context.Background(), &ValidateAccountRequest{Account: msg})
		st, ok := status.FromError(err)
		require.True(t, ok)
		assert.Equal(t, codes.InvalidArgument, st.Code())
		assert.Equal(t, "GBR requires 6-character BankId, got 'lt-6c'", st.Message())
	})

	t.Run("missing account", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.handler.ValidateAccount(context.Background(), &ValidateAccountRequest{})
		assert.Equal(t, codes.InvalidArgument, status.Code(err))
	})
}

func TestAccountHandler_RegisterAccount(t *testing.T) {
	orgID := uuid.New()
	withClaims := func(roles ...string) context.Context {
		return auth.ContextWithClaims(context.Background(), &auth.Claims{OrganisationID: orgID, Roles: roles})
	}

	t.Run("defaults organisation from claims", func(t *testing.T) {
		f := newFixture(t)
		acceptSubmission(f)

		resp, err := f.handler.RegisterAccount(withClaims(auth.RoleAccountWriter), &RegisterAccountRequest{
			Account: gbrMessage(),
			Cop:     &CopMessage{Names: []string{"Samantha Holder"}},
		})
		require.NoError(t, err)
		assert.Equal(t, orgID.String(), resp.Account.OrganisationID)
		assert.Equal(t, "2025-01-02T03:04:05Z", resp.CreatedOn)
		assert.NotEmpty(t, resp.EventID)
	})

	t.Run("foreign organisation is denied", func(t *testing.T) {
		f := newFixture(t)
		msg := gbrMessage()
		msg.OrganisationID = uuid.NewString()

		_, err := f.handler.RegisterAccount(withClaims(auth.RoleAccountWriter), &RegisterAccountRequest{Account: msg})
		assert.Equal(t, codes.PermissionDenied, status.Code(err))
	})

	t.Run("admin may register for another organisation", func(t *testing.T) {
		f := newFixture(t)
		acceptSubmission(f)
		other := uuid.NewString()
		msg := gbrMessage()
		msg.OrganisationID = other

		resp, err := f.handler.RegisterAccount(withClaims(auth.RoleAdmin), &RegisterAccountRequest{Account: msg})
		require.NoError(t, err)
		assert.Equal(t, other, resp.Account.OrganisationID)
	})

	t.Run("submission failure is unavailable", func(t *testing.T) {
		f := newFixture(t)
		f.submitter.EXPECT().Submit(gomock.Any(), gomock.Any(), gomock.Nil()).
			Return(port.Receipt{}, errors.New("connection refused"))

		_, err := f.handler.RegisterAccount(withClaims(auth.RoleAccountWriter), &RegisterAccountRequest{Account: gbrMessage()})
		assert.Equal(t, codes.Unavailable, status.Code(err))
	})

	t.Run("rejection is failed precondition", func(t *testing.T) {
		f := newFixture(t)
		f.submitter.EXPECT().Submit(gomock.Any(), gomock.Any(), gomock.Nil()).
			Return(port.Receipt{}, &accountapi.APIError{StatusCode: 409, Message: "account already exists"})

		_, err := f.handler.RegisterAccount(withClaims(auth.RoleAccountWriter), &RegisterAccountRequest{Account: gbrMessage()})
		st, _ := status.FromError(err)
		assert.Equal(t, codes.FailedPrecondition, st.Code())
		assert.Contains(t, st.Message(), "account already exists")
	})

	t.Run("validation failure never submits", func(t *testing.T) {
		f := newFixture(t)
		msg := gbrMessage()
		msg.BIC = nil

		_, err := f.handler.RegisterAccount(withClaims(auth.RoleAccountWriter), &RegisterAccountRequest{Account: msg})
		st, _ := status.FromError(err)
		assert.Equal(t, codes.InvalidArgument, st.Code())
		assert.Equal(t, "GBR requires Bic", st.Message())
	})
}

func TestAccountHandler_InitiateTransfer(t *testing.T) {
	f := newFixture(t)
	creditor := gbrMessage()
	creditor.IBAN = ptr("GB29NWBK60161331926819")

	resp, err := f.handler.InitiateTransfer(context.Background(), &InitiateTransferRequest{
		MessageID:       "MSG-1",
		InitiatingParty: "Acme Ltd",
		ExecutionDate:   "2025-05-01",
		Debtor:          &PartyMessage{Name: "Acme Ltd", Account: gbrMessage()},
		Transfers: []*TransferMessage{
			{Amount: "99.99", Creditor: &PartyMessage{
				Account: creditor,
				Holder:  &HolderMessage{Name: "Jo", Surname: "Bloggs", DocumentNumber: "P1234567", City: "London", Country: "GB"},
			}},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "MSG-1", resp.MessageID)
	assert.Equal(t, int32(1), resp.NumberOfTransactions)
	assert.Equal(t, "99.99", resp.ControlSum)
	assert.True(t, strings.Contains(resp.Document, "<IBAN>GB29NWBK60161331926819</IBAN>"))
	assert.True(t, strings.Contains(resp.Document, "<Nm>Jo Bloggs</Nm>"))
	assert.True(t, strings.Contains(resp.Document, "<Id>P1234567</Id>"))

	_, err = f.handler.InitiateTransfer(context.Background(), &InitiateTransferRequest{
		Debtor:        &PartyMessage{Account: gbrMessage()},
		ExecutionDate: "01/05/2025",
	})
	assert.Equal(t, codes.InvalidArgument, status.Code(err))
}

func TestServer_OverBufconn(t *testing.T) {
	jwtSvc, err := auth.NewJWTService(auth.JWTConfig{Secret: "test-secret", Issuer: "bib-test", Expiration: time.Minute})
	require.NoError(t, err)

	f := newFixture(t)
	srv := NewServer(f.handler, ServerConfig{ServiceName: "accountd"}, testLogger(), jwtSvc)

	lis := bufconn.Listen(1 << 20)
	go func() { _ = srv.Serve(lis) }()
	t.Cleanup(srv.Stop)

	conn, err := grpclib.NewClient("passthrough:///bufnet",
		grpclib.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) { return lis.DialContext(ctx) }),
		grpclib.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	health, err := healthpb.NewHealthClient(conn).Check(ctx, &healthpb.HealthCheckRequest{Service: "accountd"})
	require.NoError(t, err)
	assert.Equal(t, healthpb.HealthCheckResponse_SERVING, health.Status)

	call := func(ctx context.Context, method string, in, out any) error {
		return conn.Invoke(ctx, method, in, out, grpclib.CallContentSubtype("json"))
	}

	var resp ValidateAccountResponse
	err = call(ctx, MethodValidateAccount, &ValidateAccountRequest{Account: gbrMessage()}, &resp)
	assert.Equal(t, codes.Unauthenticated, status.Code(err))

	reader, err := jwtSvc.GenerateToken("reader", uuid.New(), []string{auth.RoleAccountReader})
	require.NoError(t, err)
	authed := metadata.AppendToOutgoingContext(ctx, "authorization", "Bearer "+reader)

	require.NoError(t, call(authed, MethodValidateAccount, &ValidateAccountRequest{Account: gbrMessage()}, &resp))
	assert.Equal(t, "GBR", resp.Account.Country)
	assert.False(t, resp.BankIDCodeCorrected)

	var reg RegisterAccountResponse
	err = call(authed, MethodRegisterAccount, &RegisterAccountRequest{Account: gbrMessage()}, &reg)
	assert.Equal(t, codes.PermissionDenied, status.Code(err))
}
