package intel

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/casefusion/casefusion-backend/internal/domain/errors"
)

// Service orchestrates one analysis pipeline per run: concurrent domain
// fetch fan-out, best-effort fan-in, normalization, the engine pass, and
// caching of the finished run. Starting a new run for a case makes any
// previous in-flight fetch results moot (last snapshot wins).
type Service struct {
	fetchers Fetchers
	engine   *Engine
	cache    RunCache
	logger   *slog.Logger
	metrics  *Metrics
	tracer   trace.Tracer

	mu          sync.Mutex
	generations map[string]uint64
}

// NewService wires the analysis service. cache may be nil, in which case
// every request recomputes.
func NewService(fetchers Fetchers, engine *Engine, cache RunCache, logger *slog.Logger, metrics *Metrics) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		fetchers:    fetchers,
		engine:      engine,
		cache:       cache,
		logger:      logger,
		metrics:     metrics,
		tracer:      otel.Tracer("casefusion/intel"),
		generations: make(map[string]uint64),
	}
}

// Analyze returns the analysis run for a case and language. With
// refresh=false a cached run is served when present; refresh=true always
// builds a new snapshot and invalidates the cache for the case.
func (s *Service) Analyze(ctx context.Context, caseID, language string, refresh bool) (*AnalysisRun, error) {
	if caseID == "" {
		return nil, errors.NewValidationError("MISSING_CASE_ID", "case id is required")
	}
	language = NormalizeLanguage(language)

	ctx, span := s.tracer.Start(ctx, "intel.Analyze",
		trace.WithAttributes(
			attribute.String("case.id", caseID),
			attribute.String("language", language),
			attribute.Bool("refresh", refresh),
		))
	defer span.End()

	if refresh && s.cache != nil {
		if err := s.cache.Invalidate(ctx, caseID); err != nil {
			s.logger.Warn("run cache invalidation failed", "case_id", caseID, "error", err)
		}
	}

	if !refresh && s.cache != nil {
		if run, err := s.cache.Get(ctx, caseID, language); err == nil && run != nil {
			s.metrics.ObserveCacheHit()
			return run, nil
		}
	}

	started := time.Now()
	gen := s.nextGeneration(caseID)

	snap := s.fetchSnapshot(ctx, caseID)
	run := s.engine.Run(snap, language)

	// A newer refresh started while this one was fetching: its snapshot
	// wins, so this run must not overwrite the cache.
	if s.currentGeneration(caseID) == gen && s.cache != nil {
		if err := s.cache.Set(ctx, run); err != nil {
			s.logger.Warn("run cache write failed", "case_id", caseID, "error", err)
		}
	}

	s.metrics.ObserveRun(time.Since(started), len(run.RedFlags))
	s.logger.Info("analysis run complete",
		"case_id", caseID,
		"language", language,
		"items", snap.TotalItems(),
		"flags", len(run.RedFlags),
		"confidence", run.Confidence.Percentage,
	)
	return run, nil
}

// fetchSnapshot fans out the independent domain reads and collects them
// best-effort: a failed domain logs a warning and contributes an empty
// list, never an error. There is no all-or-nothing barrier.
func (s *Service) fetchSnapshot(ctx context.Context, caseID string) Snapshot {
	ctx, span := s.tracer.Start(ctx, "intel.fetchSnapshot")
	defer span.End()

	var raw fetched
	var wg sync.WaitGroup

	if s.fetchers.Entities != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			recs, err := s.fetchers.Entities.ListEntities(ctx, caseID)
			if err != nil {
				s.logger.Warn("entity fetch failed, domain treated as empty", "case_id", caseID, "error", err)
				return
			}
			raw.entities = recs
		}()
	}
	if s.fetchers.Transfers != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			recs, err := s.fetchers.Transfers.ListTransfers(ctx, caseID)
			if err != nil {
				s.logger.Warn("transfer fetch failed, domain treated as empty", "case_id", caseID, "error", err)
				return
			}
			raw.transfers = recs
		}()
	}
	if s.fetchers.Calls != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			recs, err := s.fetchers.Calls.ListCallRecords(ctx, caseID)
			if err != nil {
				s.logger.Warn("call record fetch failed, domain treated as empty", "case_id", caseID, "error", err)
				return
			}
			raw.calls = recs
		}()
	}
	if s.fetchers.Crypto != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			wallets, err := s.fetchers.Crypto.ListWallets(ctx, caseID)
			if err != nil {
				s.logger.Warn("wallet fetch failed, domain treated as empty", "case_id", caseID, "error", err)
			} else {
				raw.wallets = wallets
			}
			activity, err := s.fetchers.Crypto.ListActivity(ctx, caseID)
			if err != nil {
				s.logger.Warn("crypto activity fetch failed, domain treated as empty", "case_id", caseID, "error", err)
			} else {
				raw.activity = activity
			}
		}()
	}
	if s.fetchers.Locations != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			points, err := s.fetchers.Locations.ListLocations(ctx, caseID)
			if err != nil {
				s.logger.Warn("location fetch failed, domain treated as empty", "case_id", caseID, "error", err)
				return
			}
			raw.locations = points
		}()
	}

	wg.Wait()
	return Normalize(caseID, raw, s.logger)
}

func (s *Service) nextGeneration(caseID string) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.generations[caseID]++
	return s.generations[caseID]
}

func (s *Service) currentGeneration(caseID string) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.generations[caseID]
}
