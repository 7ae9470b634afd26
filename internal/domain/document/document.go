// Package document models trade documents registered on the simulated chain.
package document

import (
	"fmt"
	"strings"
	"time"

	"github.com/guudz-audit-ledger/internal/domain/shared"
)

// Type enumerates the supported trade document kinds
type Type string

const (
	TypeBillOfLading       Type = "billOfLading"
	TypeInvoice            Type = "invoice"
	TypeCertificate        Type = "certificate"
	TypeCustomsDeclaration Type = "customsDeclaration"
)

// Types lists every supported document type in display order.
var Types = []Type{TypeBillOfLading, TypeInvoice, TypeCertificate, TypeCustomsDeclaration}

// Valid reports whether t is one of the supported document types.
func (t Type) Valid() bool {
	for _, known := range Types {
		if t == known {
			return true
		}
	}
	return false
}

// Signer is a party attesting to a document. Signers are kept in signing order.
type Signer struct {
	Name      string    `json:"name"`
	Signature string    `json:"signature"`
	Timestamp time.Time `json:"timestamp"`
}

// RegistrationRequest carries everything needed to register a document
type RegistrationRequest struct {
	DocID       string            `json:"docId"`
	DocType     Type              `json:"docType"`
	Issuer      string            `json:"issuer"`
	IssuedAt    time.Time         `json:"issuedAt"`
	Signers     []Signer          `json:"signers"`
	Content     string            `json:"content,omitempty"`
	Metadata    map[string]string `json:"metadata,omitempty"`
	SubmittedBy string            `json:"submittedBy,omitempty"`
}

// Validate checks the request shape without touching any state.
func (r RegistrationRequest) Validate() error {
	if strings.TrimSpace(r.DocID) == "" {
		return shared.Required("docId")
	}
	if r.DocType == "" {
		return shared.Required("docType")
	}
	if !r.DocType.Valid() {
		return shared.ValidationError{Field: "docType", Reason: fmt.Sprintf("unknown document type %q", r.DocType)}
	}
	if strings.TrimSpace(r.Issuer) == "" {
		return shared.Required("issuer")
	}
	for i, s := range r.Signers {
		if strings.TrimSpace(s.Name) == "" {
			return shared.ValidationError{Field: fmt.Sprintf("signers[%d].name", i), Reason: "is required"}
		}
	}
	return nil
}

// Actor returns who the creation event is attributed to.
func (r RegistrationRequest) Actor() string {
	if r.SubmittedBy != "" {
		return r.SubmittedBy
	}
	if r.Issuer != "" {
		return r.Issuer
	}
	return "system"
}

// Document is a registered trade document. Hash is assigned exactly once.
type Document struct {
	ID           string            `json:"docId"`
	Type         Type              `json:"docType"`
	Issuer       string            `json:"issuer"`
	IssuedAt     time.Time         `json:"issuedAt"`
	Signers      []Signer          `json:"signers"`
	Content      string            `json:"content,omitempty"`
	Metadata     map[string]string `json:"metadata,omitempty"`
	Hash         string            `json:"hash"`
	RegisteredAt time.Time         `json:"registeredAt"`
}

// New builds a registered document from a validated request. A missing issue
// time defaults to the registration time.
func New(req RegistrationRequest, hash string, at time.Time) *Document {
	issuedAt := req.IssuedAt
	if issuedAt.IsZero() {
		issuedAt = at
	}
	doc := &Document{
		ID:           req.DocID,
		Type:         req.DocType,
		Issuer:       req.Issuer,
		IssuedAt:     issuedAt,
		Signers:      append([]Signer{}, req.Signers...),
		Content:      req.Content,
		Hash:         hash,
		RegisteredAt: at,
	}
	if len(req.Metadata) > 0 {
		doc.Metadata = make(map[string]string, len(req.Metadata))
		for k, v := range req.Metadata {
			doc.Metadata[k] = v
		}
	}
	return doc
}

// Clone returns a deep copy safe to hand to callers.
func (d *Document) Clone() *Document {
	c := *d
	c.Signers = append([]Signer{}, d.Signers...)
	if d.Metadata != nil {
		c.Metadata = make(map[string]string, len(d.Metadata))
		for k, v := range d.Metadata {
			c.Metadata[k] = v
		}
	}
	return &c
}
