// Package exec sequences the table generators in dependency order and hands
// each finished table to a sink. The pipeline is a one-shot batch: the first
// failure aborts the remaining stages and nothing is retried.
package exec

import (
	"fmt"
	"time"

	"github.com/mmrzaf/tpchgen/internal/column"
	"github.com/mmrzaf/tpchgen/internal/domain"
	"github.com/mmrzaf/tpchgen/internal/logging"
	"github.com/mmrzaf/tpchgen/internal/tables"
	"github.com/mmrzaf/tpchgen/internal/validation"
)

// Sink consumes finished tables. The table is only borrowed for the duration
// of the call; the pipeline releases it afterwards.
type Sink interface {
	Write(t *tables.Table) error
}

// Stage produces one or more tables once all of its dependencies have run.
type Stage struct {
	Name    string
	Deps    []string
	Outputs []string
	run     func(*column.Context, tables.Params) ([]*tables.Table, error)
}

// stageList declares the stages in generation order. Orders and lineitem are
// one stage because the lineitem fan-out and the derived order columns come
// from the same draws.
func stageList() []Stage {
	return []Stage{
		{
			Name:    tables.TablePart,
			Outputs: []string{tables.TablePart},
			run: func(ctx *column.Context, p tables.Params) ([]*tables.Table, error) {
				t, err := tables.GeneratePart(ctx, p)
				if err != nil {
					return nil, err
				}
				return []*tables.Table{t}, nil
			},
		},
		{
			Name:    tables.TablePartSupp,
			Deps:    []string{tables.TablePart},
			Outputs: []string{tables.TablePartSupp},
			run: func(ctx *column.Context, p tables.Params) ([]*tables.Table, error) {
				t, err := tables.GeneratePartSupp(ctx, p)
				if err != nil {
					return nil, err
				}
				return []*tables.Table{t}, nil
			},
		},
		{
			Name:    tables.TableSupplier,
			Outputs: []string{tables.TableSupplier},
			run: func(ctx *column.Context, p tables.Params) ([]*tables.Table, error) {
				t, err := tables.GenerateSupplier(ctx, p)
				if err != nil {
					return nil, err
				}
				return []*tables.Table{t}, nil
			},
		},
		{
			Name:    tables.TableCustomer,
			Outputs: []string{tables.TableCustomer},
			run: func(ctx *column.Context, p tables.Params) ([]*tables.Table, error) {
				t, err := tables.GenerateCustomer(ctx, p)
				if err != nil {
					return nil, err
				}
				return []*tables.Table{t}, nil
			},
		},
		{
			Name:    tables.TableOrders,
			Deps:    []string{tables.TableCustomer, tables.TablePart, tables.TableSupplier},
			Outputs: []string{tables.TableOrders, tables.TableLineItem},
			run: func(ctx *column.Context, p tables.Params) ([]*tables.Table, error) {
				orders, lineitem, err := tables.GenerateOrdersAndLineItem(ctx, p)
				if err != nil {
					return nil, err
				}
				return []*tables.Table{orders, lineitem}, nil
			},
		},
		{
			Name:    tables.TableNation,
			Outputs: []string{tables.TableNation},
			run: func(ctx *column.Context, p tables.Params) ([]*tables.Table, error) {
				t, err := tables.GenerateNation(ctx, p)
				if err != nil {
					return nil, err
				}
				return []*tables.Table{t}, nil
			},
		},
		{
			Name:    tables.TableRegion,
			Outputs: []string{tables.TableRegion},
			run: func(ctx *column.Context, p tables.Params) ([]*tables.Table, error) {
				t, err := tables.GenerateRegion(ctx, p)
				if err != nil {
					return nil, err
				}
				return []*tables.Table{t}, nil
			},
		},
	}
}

type Pipeline struct {
	logger *logging.Logger

	// OnStage, when set, is called after each stage completes. Used by the
	// CLI progress bar.
	OnStage func(name string, completed, total int)
}

func NewPipeline(logger *logging.Logger) *Pipeline {
	return &Pipeline{logger: logger}
}

// StageNames returns the stage names in generation order.
func StageNames() []string {
	stages := stageList()
	names := make([]string, len(stages))
	for i, s := range stages {
		names[i] = s.Name
	}
	return names
}

// Run generates the dataset described by params and writes the tables named
// in selected (all tables when selected is empty) to the sink. Stages that
// only exist to satisfy a selected stage's dependencies are generated but
// not written.
func (p *Pipeline) Run(ctx *column.Context, params tables.Params, selected []string, sink Sink) (*domain.RunStats, error) {
	stages := stageList()

	// Reject a miswired stage graph before generating anything.
	deps := make(map[string][]string, len(stages))
	for _, s := range stages {
		deps[s.Name] = s.Deps
	}
	if _, err := validation.TopologicalSort(deps); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrDependency, err)
	}

	wanted := p.selectStages(stages, selected)
	total := 0
	for _, s := range stages {
		if wanted[s.Name] {
			total++
		}
	}

	stats := &domain.RunStats{}
	completed := make(map[string]bool, len(stages))
	done := 0

	for _, stage := range stages {
		if !wanted[stage.Name] {
			continue
		}
		for _, dep := range stage.Deps {
			if !completed[dep] {
				return nil, fmt.Errorf("%w: stage %s ran before %s", domain.ErrDependency, stage.Name, dep)
			}
		}

		start := time.Now()
		out, err := stage.run(ctx, params)
		if err != nil {
			return nil, fmt.Errorf("stage %s: %w", stage.Name, err)
		}

		for _, t := range out {
			if writeSelected(selected, t.Name) {
				if err := sink.Write(t); err != nil {
					for _, u := range out {
						u.Release()
					}
					return nil, fmt.Errorf("stage %s: sink write %s: %w", stage.Name, t.Name, err)
				}
			}
			stats.TableStats = append(stats.TableStats, domain.TableRunStats{
				TableName:       t.Name,
				Rows:            t.NumRows(),
				DurationSeconds: time.Since(start).Seconds(),
			})
			stats.TotalRows += t.NumRows()
			stats.TablesGenerated++
			p.logger.Debug("generated %s: %d rows", t.Name, t.NumRows())
		}
		for _, t := range out {
			t.Release()
		}

		completed[stage.Name] = true
		done++
		p.logger.Info("stage %s done (%d/%d)", stage.Name, done, total)
		if p.OnStage != nil {
			p.OnStage(stage.Name, done, total)
		}
	}

	return stats, nil
}

// selectStages marks the stages to run: the ones producing a selected table
// plus, transitively, everything they depend on.
func (p *Pipeline) selectStages(stages []Stage, selected []string) map[string]bool {
	wanted := make(map[string]bool, len(stages))
	if len(selected) == 0 {
		for _, s := range stages {
			wanted[s.Name] = true
		}
		return wanted
	}

	byName := make(map[string]Stage, len(stages))
	for _, s := range stages {
		byName[s.Name] = s
	}

	var need func(name string)
	need = func(name string) {
		if wanted[name] {
			return
		}
		wanted[name] = true
		for _, dep := range byName[name].Deps {
			need(dep)
		}
	}
	for _, s := range stages {
		for _, out := range s.Outputs {
			for _, sel := range selected {
				if out == sel {
					need(s.Name)
				}
			}
		}
	}
	return wanted
}

func writeSelected(selected []string, table string) bool {
	if len(selected) == 0 {
		return true
	}
	for _, s := range selected {
		if s == table {
			return true
		}
	}
	return false
}
