package validation

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/mmrzaf/tpchgen/internal/domain"
	"github.com/mmrzaf/tpchgen/internal/tables"
)

var knownTables = map[string]bool{
	tables.TablePart:     true,
	tables.TablePartSupp: true,
	tables.TableSupplier: true,
	tables.TableCustomer: true,
	tables.TableOrders:   true,
	tables.TableLineItem: true,
	tables.TableNation:   true,
	tables.TableRegion:   true,
}

// Tables whose row counts derive from other tables and cannot be overridden
// directly.
var derivedCounts = map[string]bool{
	tables.TablePartSupp: true,
	tables.TableLineItem: true,
}

// ValidateProfile checks a generation profile before any work starts. All
// violations are configuration errors: the run must not begin.
func ValidateProfile(p *domain.Profile) error {
	if p == nil {
		return fmt.Errorf("%w: profile is required", domain.ErrConfiguration)
	}
	if p.ScaleFactor <= 0 || math.IsNaN(p.ScaleFactor) || math.IsInf(p.ScaleFactor, 0) {
		return fmt.Errorf("%w: scale factor must be a positive number, got %v",
			domain.ErrConfiguration, p.ScaleFactor)
	}
	if p.LineCount != nil {
		if p.LineCount.Min < 1 || p.LineCount.Min > p.LineCount.Max {
			return fmt.Errorf("%w: line count range [%d,%d]",
				domain.ErrConfiguration, p.LineCount.Min, p.LineCount.Max)
		}
	}
	for _, t := range p.Tables {
		if !knownTables[t] {
			return fmt.Errorf("%w: unknown table %q", domain.ErrConfiguration, t)
		}
	}
	for t, n := range p.RowOverrides {
		if !knownTables[t] {
			return fmt.Errorf("%w: row override for unknown table %q", domain.ErrConfiguration, t)
		}
		if derivedCounts[t] {
			return fmt.Errorf("%w: table %q row count is derived and cannot be overridden",
				domain.ErrConfiguration, t)
		}
		if fixed := tables.FixedRows(t); fixed > 0 && n != fixed {
			return fmt.Errorf("%w: table %q has a fixed size of %d rows, override is %d",
				domain.ErrConfiguration, t, fixed, n)
		}
		if n < 1 {
			return fmt.Errorf("%w: table %q row override %d", domain.ErrConfiguration, t, n)
		}
	}
	return nil
}

// TopologicalSort orders stage names so every stage follows all of its
// dependencies. Ties break alphabetically to keep the order stable.
func TopologicalSort(deps map[string][]string) ([]string, error) {
	graph := make(map[string][]string) // dependency -> dependents
	inDegree := make(map[string]int)

	for name, ds := range deps {
		if _, ok := inDegree[name]; !ok {
			inDegree[name] = 0
		}
		for _, d := range ds {
			if _, ok := deps[d]; !ok {
				return nil, fmt.Errorf("stage %q depends on unknown stage %q", name, d)
			}
			graph[d] = append(graph[d], name)
			inDegree[name]++
		}
	}

	queue := make([]string, 0)
	for name, degree := range inDegree {
		if degree == 0 {
			queue = append(queue, name)
		}
	}
	sort.Strings(queue)

	result := make([]string, 0, len(deps))
	for len(queue) > 0 {
		node := queue[0]
		queue = queue[1:]
		result = append(result, node)

		for _, dependent := range graph[node] {
			inDegree[dependent]--
			if inDegree[dependent] == 0 {
				queue = append(queue, dependent)
			}
		}
		sort.Strings(queue)
	}

	if len(result) != len(deps) {
		return nil, errors.New("cycle detected in stage dependencies")
	}

	return result, nil
}
