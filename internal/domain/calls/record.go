package calls

// RiskLevel grades an aggregated call partner.
type RiskLevel string

const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

// Record is an aggregated call-partner entry produced from forensic phone
// extractions (Cellebrite, UFED, XRY exports aggregated upstream).
type Record struct {
	PhoneNumber          string    `json:"phone_number"`
	Label                string    `json:"label,omitempty"`
	TotalCalls           int       `json:"total_calls"`
	TotalDurationSeconds int       `json:"total_duration_seconds"`
	RiskLevel            RiskLevel `json:"risk_level"`
}
