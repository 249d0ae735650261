package crypto

import "time"

// Wallet is an aggregated cryptocurrency wallet observed in a case.
type Wallet struct {
	Address       string  `json:"address"`
	Blockchain    string  `json:"blockchain"`
	Label         string  `json:"label,omitempty"`
	TotalReceived float64 `json:"total_received"`
	TotalSent     float64 `json:"total_sent"`
	RiskScore     int     `json:"risk_score"` // 0-100
	IsMixer       bool    `json:"is_mixer"`
	IsSuspect     bool    `json:"is_suspect"`
}

// ActivityFlag tags a transaction-level record with its risk category.
type ActivityFlag string

const (
	FlagNone          ActivityFlag = "none"
	FlagMixerDetected ActivityFlag = "mixer_detected"
	FlagTornadoCash   ActivityFlag = "tornado_cash"
	FlagFromMixer     ActivityFlag = "from_mixer"
	FlagHighValue     ActivityFlag = "high_value"
	FlagExchange      ActivityFlag = "exchange"
	FlagSanctioned    ActivityFlag = "sanctioned"
	FlagGambling      ActivityFlag = "gambling"
	FlagDarknet       ActivityFlag = "darknet"
	FlagUnknown       ActivityFlag = "unknown"
)

// IsMixerRelated reports whether the flag indicates mixer involvement.
func (f ActivityFlag) IsMixerRelated() bool {
	switch f {
	case FlagMixerDetected, FlagTornadoCash, FlagFromMixer:
		return true
	}
	return false
}

// Activity is a single on-chain transaction tied to the case.
type Activity struct {
	TxHash      string       `json:"tx_hash"`
	Blockchain  string       `json:"blockchain"`
	FromAddress string       `json:"from_address"`
	ToAddress   string       `json:"to_address"`
	Amount      float64      `json:"amount"`
	AmountUSD   float64      `json:"amount_usd"`
	Timestamp   *time.Time   `json:"timestamp,omitempty"`
	RiskFlag    ActivityFlag `json:"risk_flag"`
	RiskScore   int          `json:"risk_score"`
}
