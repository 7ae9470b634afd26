package handler

import "github.com/guudz-audit-ledger/internal/domain/document"

// RegisterDocumentResponse is returned once a document is anchored
type RegisterDocumentResponse struct {
	DocID string `json:"docId"`
	Hash  string `json:"hash"`
}

// BatchRegisterRequest registers several documents in one call
type BatchRegisterRequest struct {
	Documents []document.RegistrationRequest `json:"documents" binding:"required,min=1,max=100"`
}

// VerificationResponse reports whether a hash is registered
type VerificationResponse struct {
	Hash     string `json:"hash"`
	Verified bool   `json:"verified"`
}

// RecordEventRequest appends a lifecycle event to a document
type RecordEventRequest struct {
	Action string `json:"action" binding:"required"`
	Actor  string `json:"actor" binding:"required"`
}

// SecurityManagementRequest asks for an ISO 28000 verification
type SecurityManagementRequest struct {
	ShipmentID string `json:"shipmentId" binding:"required"`
}

// CrossChainVerificationResponse lists per-network anchoring for a hash
type CrossChainVerificationResponse struct {
	Hash     string          `json:"hash"`
	Networks map[string]bool `json:"networks"`
}

// InvokeContractRequest calls a chaincode function over a session
type InvokeContractRequest struct {
	Function string   `json:"function" binding:"required"`
	Args     []string `json:"args"`
}

// FeeEstimateQuery selects the transfer being quoted
type FeeEstimateQuery struct {
	Source    string `form:"source" binding:"required"`
	Target    string `form:"target" binding:"required"`
	AssetType string `form:"assetType" binding:"required"`
}

// StartUploadRequest begins a simulated upload
type StartUploadRequest struct {
	FileName string `json:"fileName" binding:"required"`
	Size     int64  `json:"size" binding:"min=0"`
}
