package service

import (
	"context"

	"github.com/guudz-audit-ledger/internal/crosschain"
	"github.com/guudz-audit-ledger/internal/domain/compliance"
	domaincc "github.com/guudz-audit-ledger/internal/domain/crosschain"
	"github.com/guudz-audit-ledger/internal/domain/document"
	"github.com/guudz-audit-ledger/internal/domain/provenance"
	"github.com/guudz-audit-ledger/internal/notification"
	"github.com/guudz-audit-ledger/internal/registry"
	"github.com/guudz-audit-ledger/internal/upload"
)

// DocumentService defines the registry operations exposed over HTTP
type DocumentService interface {
	// RegisterDocument hashes and stores a document, returning its hash
	// Returns ErrAlreadyRegistered if the document id is taken
	RegisterDocument(ctx context.Context, req document.RegistrationRequest) (string, error)

	// VerifyDocument reports whether a hash belongs to a registered document
	VerifyDocument(ctx context.Context, hash string) (bool, error)

	// GetHistory returns the audit trail of a document, oldest first
	GetHistory(ctx context.Context, docID string) ([]provenance.Event, error)

	// RecordEvent appends a lifecycle event to a registered document
	// Returns ErrDocumentNotFound if the document is unknown
	RecordEvent(ctx context.Context, docID string, action provenance.Action, actor string) (provenance.Event, error)

	// Lookup returns the registered document carrying the hash
	Lookup(ctx context.Context, hash string) (*document.Document, error)
}

// BatchRegistrar registers many documents concurrently
type BatchRegistrar interface {
	// RegisterBatch returns one result per request, in request order
	RegisterBatch(ctx context.Context, reqs []document.RegistrationRequest) []registry.BatchResult
}

// ComplianceService defines compliance, credit and insurance operations
type ComplianceService interface {
	VerifySecurityManagement(ctx context.Context, shipmentID string) (compliance.Result, error)
	VerifySAFEFramework(ctx context.Context, cfg compliance.SAFEConfig) (compliance.Result, error)
	GetCreditScore(ctx context.Context, entityID string) (compliance.CreditScore, error)
	GetCreditFacilities(ctx context.Context, entityID string) ([]compliance.CreditFacility, error)
	CreateInsurancePolicy(ctx context.Context, req compliance.PolicyRequest) (compliance.Policy, error)
	SubmitInsuranceClaim(ctx context.Context, req compliance.ClaimRequest) (compliance.ClaimResult, error)

	// Policy returns an issued policy
	// Returns ErrPolicyNotFound if no policy carries the id
	Policy(ctx context.Context, id string) (compliance.Policy, error)
}

// CrossChainService defines network sessions and asset transfers
type CrossChainService interface {
	Networks(ctx context.Context) []domaincc.Network
	ConnectToNetwork(ctx context.Context, networkID string) (*crosschain.Session, error)
	Disconnect(ctx context.Context, session *crosschain.Session) error
	InvokeContract(ctx context.Context, session *crosschain.Session, function string, args []string) domaincc.InvokeResult
	TransferAsset(ctx context.Context, req domaincc.TransferRequest) (domaincc.Transaction, error)

	// Transactions returns the transfer ledger, newest first
	Transactions(ctx context.Context) []domaincc.Transaction
	VerifyDocumentAcrossChains(ctx context.Context, hash string) (map[string]bool, error)
	GetCrossChainFeeEstimate(ctx context.Context, sourceID, targetID, assetType string) (domaincc.FeeEstimate, error)
}

// UploadService defines simulated uploads observed by polling
type UploadService interface {
	Start(ctx context.Context, fileName string, size int64) (upload.Upload, error)
	Status(ctx context.Context, id string) (upload.Upload, error)
	List(ctx context.Context) []upload.Upload
}

// NotificationFeed exposes the most recent notifications
type NotificationFeed interface {
	Recent() []notification.Notification
}
