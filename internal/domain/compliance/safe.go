package compliance

// DefaultCustomsAuthority is used when a SAFE verification names no authority.
const DefaultCustomsAuthority = "World Customs Organization"

// SAFEConfig selects the WCO SAFE Framework pillars being attested.
// Nil pillars default to satisfied.
type SAFEConfig struct {
	CustomsAuthority        string `json:"customsAuthority,omitempty"`
	AEOCertified            *bool  `json:"aeoCertified,omitempty"`
	AdvanceCargoInformation *bool  `json:"advanceCargoInformation,omitempty"`
	RiskManagement          *bool  `json:"riskManagement,omitempty"`
	OutboundInspection      *bool  `json:"outboundInspection,omitempty"`
}

// Authority returns the customs authority issuing the verdict.
func (c SAFEConfig) Authority() string {
	if c.CustomsAuthority == "" {
		return DefaultCustomsAuthority
	}
	return c.CustomsAuthority
}

// Checks lists the SAFE pillars in framework order.
func (c SAFEConfig) Checks() []Check {
	return []Check{
		{Requirement: "Authorized Economic Operator certification", Passed: orTrue(c.AEOCertified)},
		{Requirement: "Advance electronic cargo information", Passed: orTrue(c.AdvanceCargoInformation)},
		{Requirement: "Consistent risk management approach", Passed: orTrue(c.RiskManagement)},
		{Requirement: "Outbound inspection on request", Passed: orTrue(c.OutboundInspection)},
	}
}

func orTrue(b *bool) bool {
	return b == nil || *b
}
