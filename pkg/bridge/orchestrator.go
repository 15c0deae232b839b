package bridge

import (
	"context"
	"fmt"
	"os"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/seedforge/seedforge/pkg/config"
	"github.com/seedforge/seedforge/pkg/logger"
	"github.com/seedforge/seedforge/pkg/registry"
)

// Orchestrator drives the full generation pipeline: path resolution,
// command resolution, argument construction, process execution and
// response interpretation, plus the sweep loop that folds validated
// previews into the seed registry.
type Orchestrator struct {
	resolver     *CommandResolver
	executor     *Executor
	interp       *Interpreter
	registry     *registry.Store
	runs         *runStore
	homeDirFn    func() (string, error)
	nowFn        func() time.Time
	sweepWorkers int
}

// Options carries injectable collaborators for tests.
type Options struct {
	Resolver     *CommandResolver
	Executor     *Executor
	HomeDirFn    func() (string, error)
	NowFn        func() time.Time
	SweepWorkers int
}

// New builds an orchestrator from configuration.
func New(cfg *config.Config) (*Orchestrator, error) {
	return NewWithOptions(cfg, Options{})
}

func NewWithOptions(cfg *config.Config, opts Options) (*Orchestrator, error) {
	resolver := opts.Resolver
	if resolver == nil {
		mode, err := ParseDeploymentMode(cfg.Deployment.Mode)
		if err != nil {
			return nil, err
		}
		resolver = NewCommandResolver(mode, cfg.WorkspacePath(), cfg.Deployment.ResourceRoot)
	}

	executor := opts.Executor
	if executor == nil {
		executor = NewExecutor(cfg.GeneratorTimeout())
	}

	homeDirFn := opts.HomeDirFn
	if homeDirFn == nil {
		homeDirFn = os.UserHomeDir
	}
	nowFn := opts.NowFn
	if nowFn == nil {
		nowFn = time.Now
	}
	workers := opts.SweepWorkers
	if workers <= 0 {
		workers = cfg.Generator.SweepWorkers
	}
	if workers <= 0 {
		workers = 1
	}

	return &Orchestrator{
		resolver:     resolver,
		executor:     executor,
		interp:       NewInterpreter(),
		registry:     registry.NewStore(cfg.RegistryRoot()).WithNow(nowFn),
		runs:         newRunStore(cfg.WorkspacePath()).withNow(nowFn),
		homeDirFn:    homeDirFn,
		nowFn:        nowFn,
		sweepWorkers: workers,
	}, nil
}

// Registry exposes the seed registry store for read-side consumers.
func (o *Orchestrator) Registry() *registry.Store {
	return o.registry
}

// Generate materializes a project for the request. Generator-reported
// failures come back as a result with Success=false; the returned error
// covers environment, spawn and validation faults only.
func (o *Orchestrator) Generate(ctx context.Context, req GenerationRequest) (GenerationResult, error) {
	if req.Mode != ModeProcedural {
		return GenerationResult{}, fmt.Errorf("unsupported generation mode %q", req.Mode)
	}
	if req.Seed == nil {
		return GenerationResult{}, fmt.Errorf("seed is required for procedural generation")
	}

	outputPath, err := ResolveOutputPath(req.OutputPath, o.homeDirFn)
	if err != nil {
		return GenerationResult{}, err
	}

	cmd, err := o.resolver.Resolve()
	if err != nil {
		return GenerationResult{}, err
	}

	args := BuildArgs(ActionGenerate, *req.Seed, outputPath, req.Stack, req.Enrichment)
	outcome, elapsed, err := o.runGenerator(ctx, ActionGenerate, *req.Seed, cmd, args)
	if err != nil {
		return GenerationResult{}, err
	}

	return o.interp.InterpretGeneration(outcome, outputPath, elapsed), nil
}

// Preview runs the generator without touching disk and returns the
// in-memory manifest.
func (o *Orchestrator) Preview(ctx context.Context, seed uint64, stack *StackConstraints) (PreviewResult, error) {
	cmd, err := o.resolver.Resolve()
	if err != nil {
		return PreviewResult{}, err
	}

	args := BuildArgs(ActionPreview, seed, "", stack, nil)
	outcome, _, err := o.runGenerator(ctx, ActionPreview, seed, cmd, args)
	if err != nil {
		return PreviewResult{}, err
	}

	return o.interp.InterpretPreview(outcome, seed)
}

// Sweep previews a contiguous seed range, collects the seeds that
// validate, and folds them into the registry in a single merge at the
// end of the range. Iterations fan out over a bounded worker pool; the
// final merge stays one atomic step so the dedup invariant holds even
// when the same seed is discovered twice.
func (o *Orchestrator) Sweep(ctx context.Context, count int, startSeed uint64) ([]registry.SeedEntry, error) {
	if count <= 0 {
		return []registry.SeedEntry{}, nil
	}
	if startSeed == 0 {
		startSeed = 1
	}

	// Resolve once; every iteration shares the same command.
	if _, err := o.resolver.Resolve(); err != nil {
		return nil, err
	}

	logger.InfoCF("sweep", "Starting seed sweep", map[string]interface{}{
		"start_seed": startSeed,
		"count":      count,
		"workers":    o.sweepWorkers,
	})

	var (
		mu      sync.Mutex
		entries []registry.SeedEntry
		wg      sync.WaitGroup
	)

	seeds := make(chan uint64)
	for w := 0; w < o.sweepWorkers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for seed := range seeds {
				entry, ok := o.sweepOne(ctx, seed)
				if !ok {
					continue
				}
				mu.Lock()
				entries = append(entries, entry)
				mu.Unlock()
			}
		}()
	}

feed:
	for i := 0; i < count; i++ {
		select {
		case seeds <- startSeed + uint64(i):
		case <-ctx.Done():
			break feed
		}
	}
	close(seeds)
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].Seed < entries[j].Seed })

	data, err := o.registry.Append(entries)
	if err != nil {
		return nil, fmt.Errorf("save registry: %w", err)
	}

	logger.InfoCF("sweep", "Sweep complete", map[string]interface{}{
		"validated":     len(entries),
		"total_entries": data.TotalEntries,
		"registry_path": o.registry.Path(),
	})
	return entries, nil
}

func (o *Orchestrator) sweepOne(ctx context.Context, seed uint64) (registry.SeedEntry, bool) {
	preview, err := o.Preview(ctx, seed, nil)
	if err != nil {
		logger.DebugCF("sweep", "Seed failed validation", map[string]interface{}{
			"seed":  seed,
			"error": err.Error(),
		})
		return registry.SeedEntry{}, false
	}

	files := make([]string, 0, len(preview.Files))
	for path := range preview.Files {
		files = append(files, path)
	}
	sort.Strings(files)

	stack := preview.Stack
	if stack == nil {
		stack = map[string]interface{}{}
	}

	return registry.SeedEntry{
		Seed:        seed,
		Stack:       stack,
		Files:       files,
		ValidatedAt: o.nowFn().UTC().Format(time.RFC3339),
		Tags:        registry.DeriveTags(stack),
	}, true
}

// runGenerator executes one generator invocation and persists a run
// record. Spawn faults are returned; everything else is left in the
// outcome for interpretation.
func (o *Orchestrator) runGenerator(ctx context.Context, action string, seed uint64, cmd ResolvedCommand, args []string) (ProcessOutcome, time.Duration, error) {
	start := o.nowFn()
	record := RunRecord{
		EventID:   uuid.NewString(),
		Timestamp: start.UTC().Format(time.RFC3339),
		Action:    action,
		Seed:      seed,
		Command:   append([]string{cmd.Executable}, append(append([]string{}, cmd.BaseArgs...), args...)...),
		CWD:       cmd.WorkingDir,
		ExitCode:  -1,
	}

	logger.DebugCF("bridge", "Executing generator", map[string]interface{}{
		"event_id": record.EventID,
		"action":   action,
		"seed":     seed,
		"argv":     record.Command,
		"cwd":      record.CWD,
	})

	fullArgs := append(append([]string{}, cmd.BaseArgs...), args...)
	outcome, err := o.executor.Run(ctx, cmd.Executable, fullArgs, cmd.WorkingDir)
	elapsed := o.nowFn().Sub(start)

	record.DurationMs = elapsed.Milliseconds()
	record.Stdout = trimForStore(outcome.Stdout)
	record.Stderr = trimForStore(outcome.Stderr)
	record.Success = outcome.Success
	if outcome.ExitCode != nil {
		record.ExitCode = *outcome.ExitCode
	}
	if err != nil {
		record.Error = err.Error()
	}
	o.persistRecord(&record)

	if err != nil {
		logger.ErrorCF("bridge", "Generator invocation failed", map[string]interface{}{
			"event_id": record.EventID,
			"action":   action,
			"seed":     seed,
			"error":    err.Error(),
		})
		return outcome, elapsed, err
	}
	return outcome, elapsed, nil
}

func (o *Orchestrator) persistRecord(record *RunRecord) {
	storePath, err := o.runs.write(record)
	if err != nil {
		logger.WarnCF("bridge", "Failed to write run record", map[string]interface{}{
			"event_id": record.EventID,
			"error":    err.Error(),
		})
		return
	}
	record.StorePath = storePath
}
