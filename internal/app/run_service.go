// Package app wires profiles, validation, the generation pipeline, the sink,
// and the runs ledger into the operations the CLI exposes.
package app

import (
	"crypto/rand"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"time"

	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/mmrzaf/tpchgen/internal/column"
	"github.com/mmrzaf/tpchgen/internal/domain"
	"github.com/mmrzaf/tpchgen/internal/exec"
	"github.com/mmrzaf/tpchgen/internal/hashing"
	"github.com/mmrzaf/tpchgen/internal/infra/repos/profiles"
	"github.com/mmrzaf/tpchgen/internal/infra/repos/runs"
	"github.com/mmrzaf/tpchgen/internal/logging"
	"github.com/mmrzaf/tpchgen/internal/sink"
	"github.com/mmrzaf/tpchgen/internal/tables"
	"github.com/mmrzaf/tpchgen/internal/validation"
)

type RunService struct {
	profileRepo *profiles.FileRepository
	runRepo     runs.Repository
	pipeline    *exec.Pipeline
	logger      *logging.Logger
}

func NewRunService(
	profileRepo *profiles.FileRepository,
	runRepo runs.Repository,
	logger *logging.Logger,
) *RunService {
	return &RunService{
		profileRepo: profileRepo,
		runRepo:     runRepo,
		pipeline:    exec.NewPipeline(logger),
		logger:      logger,
	}
}

// RunRequest describes one invocation of the generator. Profile settings can
// come from a stored profile (by ID or path) or be assembled inline; request
// fields override the profile's own values.
type RunRequest struct {
	ProfileID   string
	ProfilePath string
	Profile     *domain.Profile

	Seed         *int64
	OutDir       string
	Tables       []string
	RowOverrides map[string]int64
	DryRun       bool
	OnStage      func(name string, completed, total int)
}

// Execute runs the full generation synchronously and records it in the runs
// ledger. A failed generation is still recorded, with its error message.
func (s *RunService) Execute(req *RunRequest) (*domain.Run, error) {
	profile, err := s.resolveProfile(req)
	if err != nil {
		return nil, err
	}

	if len(req.Tables) > 0 {
		profile.Tables = req.Tables
	}
	if req.OutDir != "" {
		profile.OutDir = req.OutDir
	}
	if len(req.RowOverrides) > 0 {
		if profile.RowOverrides == nil {
			profile.RowOverrides = make(map[string]int64, len(req.RowOverrides))
		}
		for table, n := range req.RowOverrides {
			profile.RowOverrides[table] = n
		}
	}
	if profile.OutDir == "" {
		profile.OutDir = "."
	}

	if err := validation.ValidateProfile(profile); err != nil {
		return nil, fmt.Errorf("profile validation failed: %w", err)
	}

	params := tables.NewParams(profile)
	counts, err := resolveCounts(params)
	if err != nil {
		return nil, err
	}

	seed := int64(0)
	if req.Seed != nil {
		seed = *req.Seed
	} else if profile.Seed != nil {
		seed = *profile.Seed
	} else {
		seed = generateSeed()
	}

	configHash, err := hashing.HashRunConfig(profile, seed, counts, params.LineCountMin, params.LineCountMax)
	if err != nil {
		return nil, fmt.Errorf("failed to hash run config: %w", err)
	}

	run := &domain.Run{
		ProfileID:   profile.ID,
		ProfileName: profile.Name,
		ScaleFactor: profile.ScaleFactor,
		Seed:        seed,
		OutDir:      profile.OutDir,
		ConfigHash:  configHash,
		Status:      domain.RunStatusRunning,
		StartedAt:   time.Now(),
	}
	if err := s.runRepo.Create(run); err != nil {
		return nil, fmt.Errorf("failed to create run: %w", err)
	}

	s.logger.Info("starting run %s: profile=%s, sf=%v, seed=%d", run.ID, profile.Name, profile.ScaleFactor, seed)

	mem := memory.NewGoAllocator()
	var out exec.Sink
	if req.DryRun {
		out = &sink.Discard{}
	} else {
		out = sink.NewParquet(profile.OutDir, mem)
	}

	s.pipeline.OnStage = req.OnStage
	ctx := column.NewContext(mem, seed)
	stats, err := s.pipeline.Run(ctx, params, profile.Tables, out)
	if err != nil {
		s.logger.Error("run %s failed: %v", run.ID, err)
		s.finishRun(run, domain.RunStatusFailed, nil, err.Error())
		return run, err
	}

	stats.DurationSeconds = time.Since(run.StartedAt).Seconds()
	s.finishRun(run, domain.RunStatusSuccess, stats, "")

	s.logger.Info("run %s completed: %d tables, %d total rows, %.2fs",
		run.ID, stats.TablesGenerated, stats.TotalRows, stats.DurationSeconds)

	return run, nil
}

func (s *RunService) resolveProfile(req *RunRequest) (*domain.Profile, error) {
	switch {
	case req.ProfileID != "":
		p, err := s.profileRepo.Get(req.ProfileID)
		if err != nil {
			return nil, fmt.Errorf("failed to load profile: %w", err)
		}
		return p, nil
	case req.ProfilePath != "":
		p, err := s.profileRepo.GetByPath(req.ProfilePath)
		if err != nil {
			return nil, fmt.Errorf("failed to load profile: %w", err)
		}
		return p, nil
	case req.Profile != nil:
		return req.Profile, nil
	default:
		return nil, fmt.Errorf("%w: no profile given", domain.ErrConfiguration)
	}
}

func (s *RunService) finishRun(run *domain.Run, status domain.RunStatus, stats *domain.RunStats, errorMsg string) {
	now := time.Now()
	run.Status = status
	run.CompletedAt = &now
	run.Error = errorMsg
	if stats != nil {
		statsJSON, _ := json.Marshal(stats)
		run.Stats = statsJSON
	}
	if err := s.runRepo.Update(run); err != nil {
		s.logger.Error("failed to update run %s: %v", run.ID, err)
	}
}

func (s *RunService) GetRun(id string) (*domain.Run, error) {
	return s.runRepo.Get(id)
}

func (s *RunService) ListRuns(limit int, status string) ([]*domain.Run, error) {
	return s.runRepo.List(limit, status)
}

// resolveCounts materializes the row count of every table so the config hash
// covers the sizes the run will actually use. lineitem is excluded: its total
// depends on per-order draws.
func resolveCounts(params tables.Params) (map[string]int64, error) {
	names := []string{
		tables.TablePart, tables.TablePartSupp, tables.TableSupplier,
		tables.TableCustomer, tables.TableOrders, tables.TableNation, tables.TableRegion,
	}
	counts := make(map[string]int64, len(names))
	for _, name := range names {
		n, err := params.Rows(name)
		if err != nil {
			return nil, err
		}
		counts[name] = n
	}
	return counts, nil
}

func generateSeed() int64 {
	var b [8]byte
	rand.Read(b[:])
	return int64(binary.LittleEndian.Uint64(b[:]))
}
