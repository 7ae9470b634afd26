package simulation

import "time"

// Operation names a simulated operation. Values match the configuration keys.
type Operation string

const (
	OpRegisterDocument   Operation = "register_document"
	OpVerifyDocument     Operation = "verify_document"
	OpGetHistory         Operation = "get_history"
	OpSecurityManagement Operation = "security_management"
	OpSAFEFramework      Operation = "safe_framework"
	OpCreditScore        Operation = "credit_score"
	OpCreditFacilities   Operation = "credit_facilities"
	OpCreatePolicy       Operation = "create_policy"
	OpSubmitClaim        Operation = "submit_claim"
	OpConnectNetwork     Operation = "connect_network"
	OpTransferAsset      Operation = "transfer_asset"
	OpVerifyAcrossChains Operation = "verify_across_chains"
	OpInvokeContract     Operation = "invoke_contract"
	OpFeeEstimate        Operation = "fee_estimate"
	OpUploadStep         Operation = "upload_step"
	OpSettle             Operation = "settle_transaction"
)

// LatencyPolicy decides how long an operation takes.
type LatencyPolicy interface {
	Delay(op Operation) time.Duration
}

// FixedLatency assigns a constant delay per operation. Missing operations take no time.
type FixedLatency map[Operation]time.Duration

func (f FixedLatency) Delay(op Operation) time.Duration {
	return f[op]
}

// LatencyFromConfig converts configured latencies keyed by operation name.
func LatencyFromConfig(latencies map[string]time.Duration) FixedLatency {
	f := make(FixedLatency, len(latencies))
	for op, d := range latencies {
		f[Operation(op)] = d
	}
	return f
}

// NoLatency completes every operation immediately.
type NoLatency struct{}

func (NoLatency) Delay(Operation) time.Duration { return 0 }

// ScaledLatency multiplies another policy, e.g. to speed up demos.
type ScaledLatency struct {
	Base   LatencyPolicy
	Factor float64
}

func (s ScaledLatency) Delay(op Operation) time.Duration {
	return time.Duration(float64(s.Base.Delay(op)) * s.Factor)
}
