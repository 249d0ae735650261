package intel

import (
	"fmt"
	"strings"

	"github.com/casefusion/casefusion-backend/internal/domain/calls"
	"github.com/casefusion/casefusion-backend/internal/domain/intel"
)

// Supported narrative languages. Unknown selectors fall back to English.
const (
	LangEnglish = "en"
	LangThai    = "th"
)

// NormalizeLanguage maps an arbitrary selector onto a supported language.
func NormalizeLanguage(lang string) string {
	if strings.EqualFold(lang, LangThai) {
		return LangThai
	}
	return LangEnglish
}

type phrases struct {
	financial    string // entity count, transfer count, total
	financialNil string
	calls        string // record count, high-risk count
	callsNil     string
	crypto       string // wallet count, activity count, mixer note slot
	cryptoNil    string
	location     string // point count
	locationNil  string
	overall      string // flag count, confidence pct, level, recommendation count
	mixerNote    string
	noMixerNote  string
}

var phrasebook = map[string]phrases{
	LangEnglish: {
		financial:    "The money-flow graph covers %d entities and %d transfers totalling %s.",
		financialNil: "No financial transfer data is available for this case.",
		calls:        "Call records cover %d partners, %d of them rated high risk.",
		callsNil:     "No telephone records are available for this case.",
		crypto:       "Crypto evidence covers %d wallets and %d on-chain transactions.%s",
		cryptoNil:    "No cryptocurrency data is available for this case.",
		location:     "Location telemetry contains %d verified points.",
		locationNil:  "No location telemetry is available for this case.",
		overall:      "Analysis raised %d red flags. Confidence in the assessment is %d%% (%s), with %d recommended actions.",
		mixerNote:    " Mixer involvement was detected.",
		noMixerNote:  "",
	},
	LangThai: {
		financial:    "กราฟเส้นทางการเงินครอบคลุม %d บุคคล/บัญชี และ %d รายการโอน รวมมูลค่า %s",
		financialNil: "ไม่มีข้อมูลเส้นทางการเงินสำหรับคดีนี้",
		calls:        "ข้อมูลการโทรครอบคลุมคู่สนทนา %d ราย โดย %d รายมีความเสี่ยงสูง",
		callsNil:     "ไม่มีข้อมูลการโทรสำหรับคดีนี้",
		crypto:       "หลักฐานคริปโตครอบคลุม %d กระเป๋าเงิน และ %d ธุรกรรมบนเชน%s",
		cryptoNil:    "ไม่มีข้อมูลคริปโตสำหรับคดีนี้",
		location:     "ข้อมูลตำแหน่งมีจุดยืนยันแล้ว %d จุด",
		locationNil:  "ไม่มีข้อมูลตำแหน่งสำหรับคดีนี้",
		overall:      "การวิเคราะห์พบสัญญาณเตือน %d รายการ ความเชื่อมั่นของการประเมินอยู่ที่ %d%% (%s) พร้อมข้อเสนอแนะ %d ข้อ",
		mixerNote:    " ตรวจพบการใช้บริการผสมเหรียญ",
		noMixerNote:  "",
	},
}

// Summarize renders the per-domain and overall narrative for a finished
// run. It is a pure template layer: identical structured input plus
// language yields identical text, and no new decisions are made here.
func Summarize(snap Snapshot, run *AnalysisRun, language string) Narrative {
	p := phrasebook[NormalizeLanguage(language)]

	var n Narrative

	if snap.HasFinancial() {
		n.Financial = fmt.Sprintf(p.financial, run.Stats.EntityCount, run.Stats.TransferCount, run.Stats.TotalAmount)
	} else {
		n.Financial = p.financialNil
	}

	if snap.HasCalls() {
		highRiskCalls := 0
		for _, rec := range snap.Calls {
			if rec.RiskLevel == calls.RiskHigh {
				highRiskCalls++
			}
		}
		n.Calls = fmt.Sprintf(p.calls, len(snap.Calls), highRiskCalls)
	} else {
		n.Calls = p.callsNil
	}

	if snap.HasCrypto() {
		note := p.noMixerNote
		if hasFlag(run.RedFlags, intel.FlagCryptoMixer) {
			note = p.mixerNote
		}
		n.Crypto = fmt.Sprintf(p.crypto, len(snap.Wallets), len(snap.Activity), note)
	} else {
		n.Crypto = p.cryptoNil
	}

	if snap.HasLocation() {
		n.Location = fmt.Sprintf(p.location, len(snap.Locations))
	} else {
		n.Location = p.locationNil
	}

	n.Overall = fmt.Sprintf(p.overall,
		len(run.RedFlags), run.Confidence.Percentage, run.Confidence.Level, len(run.Recommendations))

	return n
}
