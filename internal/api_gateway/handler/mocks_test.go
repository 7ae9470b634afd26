package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/guudz-audit-ledger/internal/crosschain"
	"github.com/guudz-audit-ledger/internal/domain/compliance"
	domaincc "github.com/guudz-audit-ledger/internal/domain/crosschain"
	"github.com/guudz-audit-ledger/internal/domain/document"
	"github.com/guudz-audit-ledger/internal/domain/provenance"
	"github.com/guudz-audit-ledger/internal/notification"
	"github.com/guudz-audit-ledger/internal/registry"
	"github.com/guudz-audit-ledger/internal/upload"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockDocumentService struct {
	mock.Mock
}

func (m *MockDocumentService) RegisterDocument(ctx context.Context, req document.RegistrationRequest) (string, error) {
	args := m.Called(ctx, req)
	return args.String(0), args.Error(1)
}

func (m *MockDocumentService) VerifyDocument(ctx context.Context, hash string) (bool, error) {
	args := m.Called(ctx, hash)
	return args.Bool(0), args.Error(1)
}

func (m *MockDocumentService) GetHistory(ctx context.Context, docID string) ([]provenance.Event, error) {
	args := m.Called(ctx, docID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]provenance.Event), args.Error(1)
}

func (m *MockDocumentService) RecordEvent(ctx context.Context, docID string, action provenance.Action, actor string) (provenance.Event, error) {
	args := m.Called(ctx, docID, action, actor)
	return args.Get(0).(provenance.Event), args.Error(1)
}

func (m *MockDocumentService) Lookup(ctx context.Context, hash string) (*document.Document, error) {
	args := m.Called(ctx, hash)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*document.Document), args.Error(1)
}

type MockBatchRegistrar struct {
	mock.Mock
}

func (m *MockBatchRegistrar) RegisterBatch(ctx context.Context, reqs []document.RegistrationRequest) []registry.BatchResult {
	args := m.Called(ctx, reqs)
	return args.Get(0).([]registry.BatchResult)
}

type MockComplianceService struct {
	mock.Mock
}

func (m *MockComplianceService) VerifySecurityManagement(ctx context.Context, shipmentID string) (compliance.Result, error) {
	args := m.Called(ctx, shipmentID)
	return args.Get(0).(compliance.Result), args.Error(1)
}

func (m *MockComplianceService) VerifySAFEFramework(ctx context.Context, cfg compliance.SAFEConfig) (compliance.Result, error) {
	args := m.Called(ctx, cfg)
	return args.Get(0).(compliance.Result), args.Error(1)
}

func (m *MockComplianceService) GetCreditScore(ctx context.Context, entityID string) (compliance.CreditScore, error) {
	args := m.Called(ctx, entityID)
	return args.Get(0).(compliance.CreditScore), args.Error(1)
}

func (m *MockComplianceService) GetCreditFacilities(ctx context.Context, entityID string) ([]compliance.CreditFacility, error) {
	args := m.Called(ctx, entityID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]compliance.CreditFacility), args.Error(1)
}

func (m *MockComplianceService) CreateInsurancePolicy(ctx context.Context, req compliance.PolicyRequest) (compliance.Policy, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(compliance.Policy), args.Error(1)
}

func (m *MockComplianceService) SubmitInsuranceClaim(ctx context.Context, req compliance.ClaimRequest) (compliance.ClaimResult, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(compliance.ClaimResult), args.Error(1)
}

func (m *MockComplianceService) Policy(ctx context.Context, id string) (compliance.Policy, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(compliance.Policy), args.Error(1)
}

type MockCrossChainService struct {
	mock.Mock
}

func (m *MockCrossChainService) Networks(ctx context.Context) []domaincc.Network {
	args := m.Called(ctx)
	return args.Get(0).([]domaincc.Network)
}

func (m *MockCrossChainService) ConnectToNetwork(ctx context.Context, networkID string) (*crosschain.Session, error) {
	args := m.Called(ctx, networkID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*crosschain.Session), args.Error(1)
}

func (m *MockCrossChainService) Disconnect(ctx context.Context, session *crosschain.Session) error {
	args := m.Called(ctx, session)
	return args.Error(0)
}

func (m *MockCrossChainService) InvokeContract(ctx context.Context, session *crosschain.Session, function string, fnArgs []string) domaincc.InvokeResult {
	args := m.Called(ctx, session, function, fnArgs)
	return args.Get(0).(domaincc.InvokeResult)
}

func (m *MockCrossChainService) TransferAsset(ctx context.Context, req domaincc.TransferRequest) (domaincc.Transaction, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(domaincc.Transaction), args.Error(1)
}

func (m *MockCrossChainService) Transactions(ctx context.Context) []domaincc.Transaction {
	args := m.Called(ctx)
	return args.Get(0).([]domaincc.Transaction)
}

func (m *MockCrossChainService) VerifyDocumentAcrossChains(ctx context.Context, hash string) (map[string]bool, error) {
	args := m.Called(ctx, hash)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]bool), args.Error(1)
}

func (m *MockCrossChainService) GetCrossChainFeeEstimate(ctx context.Context, sourceID, targetID, assetType string) (domaincc.FeeEstimate, error) {
	args := m.Called(ctx, sourceID, targetID, assetType)
	return args.Get(0).(domaincc.FeeEstimate), args.Error(1)
}

type MockUploadService struct {
	mock.Mock
}

func (m *MockUploadService) Start(ctx context.Context, fileName string, size int64) (upload.Upload, error) {
	args := m.Called(ctx, fileName, size)
	return args.Get(0).(upload.Upload), args.Error(1)
}

func (m *MockUploadService) Status(ctx context.Context, id string) (upload.Upload, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(upload.Upload), args.Error(1)
}

func (m *MockUploadService) List(ctx context.Context) []upload.Upload {
	args := m.Called(ctx)
	return args.Get(0).([]upload.Upload)
}

type stubFeed []notification.Notification

func (f stubFeed) Recent() []notification.Notification {
	return f
}

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stdout, nil))
}

func setupTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.Default()
	return r
}

// perform sends body (marshalled unless nil) and decodes the response envelope.
func perform(t *testing.T, router *gin.Engine, method, path string, body interface{}) (*httptest.ResponseRecorder, Response) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, ok := body.(string)
		if !ok {
			b, err := json.Marshal(body)
			require.NoError(t, err)
			raw = string(b)
		}
		reader = bytes.NewReader([]byte(raw))
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, path, reader)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var resp Response
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	}
	return w, resp
}

// decodeData re-decodes the envelope's data field into out.
func decodeData(t *testing.T, resp Response, out interface{}) {
	t.Helper()
	b, err := json.Marshal(resp.Data)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(b, out))
}
