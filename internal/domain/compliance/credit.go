package compliance

import "time"

// RiskLevel buckets a credit score
type RiskLevel string

const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

// RiskLevelFor maps a score in [0,100] to its risk bucket.
func RiskLevelFor(score int) RiskLevel {
	switch {
	case score >= 75:
		return RiskLow
	case score >= 50:
		return RiskMedium
	default:
		return RiskHigh
	}
}

// CreditScore is the trade credit profile of an entity
type CreditScore struct {
	EntityID         string    `json:"entityId"`
	EntityName       string    `json:"entityName"`
	Score            int       `json:"score"`
	RiskLevel        RiskLevel `json:"riskLevel"`
	TransactionCount int       `json:"transactionCount"`
	AverageValue     float64   `json:"averageTransactionValue"`
	LastUpdated      time.Time `json:"lastUpdated"`
}

// NewCreditScore clamps the inputs to their valid ranges and derives the risk level.
func NewCreditScore(entityID, entityName string, score, transactions int, averageValue float64, at time.Time) CreditScore {
	score = min(max(score, 0), 100)
	transactions = max(transactions, 0)
	averageValue = max(averageValue, 0)
	return CreditScore{
		EntityID:         entityID,
		EntityName:       entityName,
		Score:            score,
		RiskLevel:        RiskLevelFor(score),
		TransactionCount: transactions,
		AverageValue:     averageValue,
		LastUpdated:      at,
	}
}

// CreditFacility is a financing offer available to an entity
type CreditFacility struct {
	ID           string  `json:"id"`
	Provider     string  `json:"provider"`
	Type         string  `json:"type"`
	Limit        float64 `json:"limit"`
	Currency     string  `json:"currency"`
	InterestRate float64 `json:"interestRate"`
	TermDays     int     `json:"termDays"`
}
