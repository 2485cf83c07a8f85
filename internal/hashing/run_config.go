// Package hashing produces a stable fingerprint of the resolved run
// configuration so runs with identical parameters can be recognized in the
// runs ledger.
package hashing

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"sort"

	"github.com/mmrzaf/tpchgen/internal/domain"
)

type runConfigHashPayload struct {
	ScaleFactor    float64          `json:"scale_factor"`
	Seed           int64            `json:"seed"`
	Tables         []string         `json:"tables,omitempty"`
	ResolvedCounts map[string]int64 `json:"resolved_counts"`
	LineCountMin   int64            `json:"line_count_min"`
	LineCountMax   int64            `json:"line_count_max"`
}

// HashRunConfig canonicalizes the parameters that shape the dataset and
// hashes them. The output directory is deliberately excluded: the same data
// written elsewhere is the same run configuration.
func HashRunConfig(p *domain.Profile, seed int64, resolvedCounts map[string]int64, lineMin, lineMax int64) (string, error) {
	tablesSorted := append([]string(nil), p.Tables...)
	sort.Strings(tablesSorted)

	canon := make(map[string]int64, len(resolvedCounts))
	keys := make([]string, 0, len(resolvedCounts))
	for k := range resolvedCounts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		canon[k] = resolvedCounts[k]
	}

	payload := runConfigHashPayload{
		ScaleFactor:    p.ScaleFactor,
		Seed:           seed,
		Tables:         tablesSorted,
		ResolvedCounts: canon,
		LineCountMin:   lineMin,
		LineCountMax:   lineMax,
	}
	b, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:]), nil
}
