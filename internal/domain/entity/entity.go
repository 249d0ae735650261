package entity

import "strings"

// Type classifies a node in the investigation graph.
type Type string

const (
	TypePerson       Type = "person"
	TypeBankAccount  Type = "bank_account"
	TypeCryptoWallet Type = "crypto_wallet"
	TypePhone        Type = "phone"
	TypeExchange     Type = "exchange"
	TypeCompany      Type = "company"
	TypeMuleAccount  Type = "mule_account"
	TypeGamblingSite Type = "gambling_site"
	TypePromptPay    Type = "promptpay"
	TypeTrueMoney    Type = "truemoney"
	TypeUnknown      Type = "unknown"
)

// RiskFactor is a single upstream-assigned risk contribution.
type RiskFactor struct {
	Factor      string `json:"factor"`
	Score       int    `json:"score"`
	Description string `json:"description"`
}

// NetworkEntity is a canonical node in the financial/communications graph.
// Instances are produced by the normalizer and read-only afterwards.
type NetworkEntity struct {
	ID          string       `json:"id"`
	Label       string       `json:"label"`
	Type        Type         `json:"type"`
	RiskScore   int          `json:"risk_score"` // 0-100
	IsSuspect   bool         `json:"is_suspect"`
	IsVictim    bool         `json:"is_victim"`
	RiskFactors []RiskFactor `json:"risk_factors"`
}

// placeholderLabels are labels that carry no identifying information.
var placeholderLabels = map[string]struct{}{
	"unknown":      {},
	"unidentified": {},
	"n/a":          {},
	"-":            {},
}

// IsUnidentified reports whether the entity has no usable identity:
// the label is missing, a placeholder, or just a copy of the id.
func (e NetworkEntity) IsUnidentified() bool {
	label := strings.TrimSpace(e.Label)
	if label == "" {
		return true
	}
	if _, ok := placeholderLabels[strings.ToLower(label)]; ok {
		return true
	}
	return strings.EqualFold(label, e.ID)
}
