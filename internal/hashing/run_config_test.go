package hashing

import (
	"testing"

	"github.com/mmrzaf/tpchgen/internal/domain"
)

func TestHashRunConfigSensitivity(t *testing.T) {
	p := &domain.Profile{Name: "bench", ScaleFactor: 1}
	counts := map[string]int64{"part": 200_000, "orders": 1_500_000}

	h1, err := HashRunConfig(p, 11, counts, 1, 7)
	if err != nil {
		t.Fatal(err)
	}
	h2, err := HashRunConfig(p, 12, counts, 1, 7)
	if err != nil {
		t.Fatal(err)
	}
	h3, err := HashRunConfig(p, 11, map[string]int64{"part": 100, "orders": 1_500_000}, 1, 7)
	if err != nil {
		t.Fatal(err)
	}
	h4, err := HashRunConfig(p, 11, counts, 2, 5)
	if err != nil {
		t.Fatal(err)
	}

	if h1 == h2 {
		t.Error("expected seed to affect hash")
	}
	if h1 == h3 {
		t.Error("expected resolved counts to affect hash")
	}
	if h1 == h4 {
		t.Error("expected line count range to affect hash")
	}
}

func TestHashRunConfigStable(t *testing.T) {
	p := &domain.Profile{Name: "bench", ScaleFactor: 0.5, Tables: []string{"part", "region"}}
	counts := map[string]int64{"part": 100_000, "region": 5}

	h1, err := HashRunConfig(p, 7, counts, 1, 7)
	if err != nil {
		t.Fatal(err)
	}
	h2, err := HashRunConfig(p, 7, counts, 1, 7)
	if err != nil {
		t.Fatal(err)
	}
	if h1 != h2 {
		t.Fatal("identical configs hashed differently")
	}

	// Table selection order must not matter.
	q := &domain.Profile{Name: "bench", ScaleFactor: 0.5, Tables: []string{"region", "part"}}
	h3, err := HashRunConfig(q, 7, counts, 1, 7)
	if err != nil {
		t.Fatal(err)
	}
	if h1 != h3 {
		t.Fatal("table order changed the hash")
	}
}
