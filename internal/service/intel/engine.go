package intel

import (
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/casefusion/casefusion-backend/internal/domain/intel"
)

// Engine runs the deterministic analysis components over a snapshot.
// Every component is a pure function of the snapshot plus the canonical
// thresholds; the engine holds no mutable state.
type Engine struct {
	thresholds Thresholds
	logger     *slog.Logger
}

// NewEngine creates an engine with the given thresholds. A zero Thresholds
// value is replaced by the canonical defaults.
func NewEngine(thresholds Thresholds, logger *slog.Logger) *Engine {
	if thresholds.TopN == 0 {
		thresholds = DefaultThresholds()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{thresholds: thresholds, logger: logger}
}

// Run executes the full component pipeline over one immutable snapshot and
// assembles the analysis run. Identical snapshots and language yield
// identical outputs apart from the run id and timestamp.
func (e *Engine) Run(snap Snapshot, language string) *AnalysisRun {
	language = NormalizeLanguage(language)
	highRisk := e.RankEntities(snap)
	keyTransfers := e.RankTransfers(snap)
	flags := e.DetectFlags(snap, highRisk, keyTransfers)
	confidence := e.AssessConfidence(snap, highRisk, keyTransfers)
	recommendations := e.Recommend(snap, highRisk, flags)
	gaps := e.AnalyzeGaps(snap, highRisk)

	run := &AnalysisRun{
		ID:               uuid.New(),
		CaseID:           snap.CaseID,
		Language:         language,
		GeneratedAt:      time.Now().UTC(),
		Stats:            snap.Stats(),
		HighRiskEntities: highRisk,
		KeyTransfers:     keyTransfers,
		RedFlags:         flags,
		Confidence:       confidence,
		Recommendations:  recommendations,
		Gaps:             gaps,
	}
	run.Narrative = Summarize(snap, run, language)
	return run
}

// hasFlag reports whether a detected flag of the given type is present.
func hasFlag(flags []intel.RedFlag, flagType intel.FlagType) bool {
	for _, f := range flags {
		if f.Type == flagType {
			return true
		}
	}
	return false
}
