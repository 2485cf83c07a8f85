package tables

import (
	"errors"
	"math"
	"testing"

	"github.com/mmrzaf/tpchgen/internal/domain"
)

func TestGenerateOrdersAndLineItem(t *testing.T) {
	ctx := testContext()
	p := testParams(map[string]int64{
		TableOrders:   200,
		TableCustomer: 50,
		TablePart:     100,
		TableSupplier: 10,
	})

	orders, lineitem, err := GenerateOrdersAndLineItem(ctx, p)
	if err != nil {
		t.Fatal(err)
	}
	defer orders.Release()
	defer lineitem.Release()

	if orders.NumRows() != 200 {
		t.Fatalf("expected 200 orders, got %d", orders.NumRows())
	}
	if lineitem.NumRows() < 200 || lineitem.NumRows() > 200*7 {
		t.Fatalf("lineitem rows %d outside fan-out bounds", lineitem.NumRows())
	}

	orderkeys := int64Values(t, orders, "o_orderkey")
	custkeys := int64Values(t, orders, "o_custkey")
	for i, k := range orderkeys {
		if k != int64(i)+1 {
			t.Fatalf("o_orderkey row %d: got %d", i, k)
		}
		if custkeys[i] < 1 || custkeys[i] > 50 {
			t.Fatalf("o_custkey %d out of [1,50]", custkeys[i])
		}
	}

	lOrderkeys := int64Values(t, lineitem, "l_orderkey")
	lineNumbers := int64Values(t, lineitem, "l_linenumber")
	lPartkeys := int64Values(t, lineitem, "l_partkey")
	lSuppkeys := int64Values(t, lineitem, "l_suppkey")

	// Lines are grouped by order; within each order the line numbers count
	// 1..k, and every order has between 1 and 7 lines.
	linesPerOrder := map[int64]int64{}
	for i := range lOrderkeys {
		linesPerOrder[lOrderkeys[i]]++
		if lineNumbers[i] != linesPerOrder[lOrderkeys[i]] {
			t.Fatalf("row %d: l_linenumber %d, expected %d", i, lineNumbers[i], linesPerOrder[lOrderkeys[i]])
		}
		if lPartkeys[i] < 1 || lPartkeys[i] > 100 {
			t.Fatalf("l_partkey %d out of [1,100]", lPartkeys[i])
		}
		if lSuppkeys[i] < 1 || lSuppkeys[i] > 10 {
			t.Fatalf("l_suppkey %d out of [1,10]", lSuppkeys[i])
		}
	}
	if len(linesPerOrder) != 200 {
		t.Fatalf("expected every order to have lines, got %d of 200", len(linesPerOrder))
	}
	for ok, n := range linesPerOrder {
		if n < 1 || n > 7 {
			t.Fatalf("order %d has %d lines, outside [1,7]", ok, n)
		}
	}

	// Extended price is recomputable from quantity, the part's retail price,
	// discount, and tax.
	quantities := int64Values(t, lineitem, "l_quantity")
	extended := float64Values(t, lineitem, "l_extendedprice")
	discounts := float64Values(t, lineitem, "l_discount")
	taxes := float64Values(t, lineitem, "l_tax")
	for i := range extended {
		pk := lPartkeys[i]
		retail := float64(90000+(pk/10)%20001+100*(pk%1000)) / 100
		want := math.Round(float64(quantities[i])*retail*(1-discounts[i])*(1+taxes[i])*100) / 100
		if math.Abs(extended[i]-want) > 1e-9 {
			t.Fatalf("l_extendedprice row %d: expected %v, got %v", i, want, extended[i])
		}
		if quantities[i] < 1 || quantities[i] > 50 {
			t.Fatalf("l_quantity %d out of [1,50]", quantities[i])
		}
		if discounts[i] < 0 || discounts[i] > 0.10 {
			t.Fatalf("l_discount %v out of [0,0.10]", discounts[i])
		}
		if taxes[i] < 0 || taxes[i] > 0.08 {
			t.Fatalf("l_tax %v out of [0,0.08]", taxes[i])
		}
	}

	// o_totalprice is the sum of the order's extended prices.
	totals := float64Values(t, orders, "o_totalprice")
	sums := map[int64]float64{}
	for i := range extended {
		sums[lOrderkeys[i]] += extended[i]
	}
	for i, ok := range orderkeys {
		want := math.Round(sums[ok]*100) / 100
		if math.Abs(totals[i]-want) > 1e-6 {
			t.Fatalf("o_totalprice for order %d: expected %v, got %v", ok, want, totals[i])
		}
	}

	// Receipt follows shipment; line status matches the ship date side of
	// the current date; unreceived lines carry flag N.
	ships := date32Values(t, lineitem, "l_shipdate")
	commits := date32Values(t, lineitem, "l_commitdate")
	receipts := date32Values(t, lineitem, "l_receiptdate")
	statuses := stringValues(t, lineitem, "l_linestatus")
	flags := stringValues(t, lineitem, "l_returnflag")
	orderDates := date32Values(t, orders, "o_orderdate")
	dateByOrder := map[int64]int32{}
	for i, ok := range orderkeys {
		dateByOrder[ok] = orderDates[i]
	}
	current := int32(currentDate)
	for i := range ships {
		od := dateByOrder[lOrderkeys[i]]
		if ships[i] < od+1 || ships[i] > od+121 {
			t.Fatalf("row %d: l_shipdate %d outside [order+1, order+121]", i, ships[i])
		}
		if commits[i] < od+30 || commits[i] > od+90 {
			t.Fatalf("row %d: l_commitdate %d outside [order+30, order+90]", i, commits[i])
		}
		if receipts[i] < ships[i]+1 || receipts[i] > ships[i]+30 {
			t.Fatalf("row %d: l_receiptdate %d outside [ship+1, ship+30]", i, receipts[i])
		}
		wantStatus := "F"
		if ships[i] > current {
			wantStatus = "O"
		}
		if statuses[i] != wantStatus {
			t.Fatalf("row %d: l_linestatus %q, expected %q", i, statuses[i], wantStatus)
		}
		if receipts[i] > current {
			if flags[i] != "N" {
				t.Fatalf("row %d: unreceived line has flag %q", i, flags[i])
			}
		} else if flags[i] != "R" && flags[i] != "A" {
			t.Fatalf("row %d: received line has flag %q", i, flags[i])
		}
	}

	// o_orderstatus folds the line statuses.
	orderStatuses := stringValues(t, orders, "o_orderstatus")
	open := map[int64]int{}
	finished := map[int64]int{}
	for i := range statuses {
		if statuses[i] == "O" {
			open[lOrderkeys[i]]++
		} else {
			finished[lOrderkeys[i]]++
		}
	}
	for i, ok := range orderkeys {
		want := "P"
		switch {
		case finished[ok] == 0:
			want = "O"
		case open[ok] == 0:
			want = "F"
		}
		if orderStatuses[i] != want {
			t.Fatalf("o_orderstatus for order %d: expected %q, got %q", ok, want, orderStatuses[i])
		}
	}
}

func TestGenerateOrdersFixedFanOut(t *testing.T) {
	ctx := testContext()
	p := testParams(map[string]int64{
		TableOrders:   50,
		TableCustomer: 10,
		TablePart:     20,
		TableSupplier: 5,
	})
	p.LineCountMin, p.LineCountMax = 3, 3

	orders, lineitem, err := GenerateOrdersAndLineItem(ctx, p)
	if err != nil {
		t.Fatal(err)
	}
	defer orders.Release()
	defer lineitem.Release()

	if lineitem.NumRows() != 150 {
		t.Fatalf("expected exactly 150 lines, got %d", lineitem.NumRows())
	}
}

func TestGenerateOrdersRejectsBadFanOut(t *testing.T) {
	ctx := testContext()
	p := testParams(map[string]int64{TableOrders: 10, TableCustomer: 10, TablePart: 10, TableSupplier: 10})
	p.LineCountMin, p.LineCountMax = 0, 7
	if _, _, err := GenerateOrdersAndLineItem(ctx, p); !errors.Is(err, domain.ErrConfiguration) {
		t.Fatalf("expected configuration error, got %v", err)
	}

	p.LineCountMin, p.LineCountMax = 5, 2
	if _, _, err := GenerateOrdersAndLineItem(ctx, p); !errors.Is(err, domain.ErrConfiguration) {
		t.Fatalf("expected configuration error, got %v", err)
	}
}
