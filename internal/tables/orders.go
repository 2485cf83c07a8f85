package tables

import (
	"fmt"

	"github.com/apache/arrow-go/v18/arrow"

	"github.com/mmrzaf/tpchgen/internal/column"
	"github.com/mmrzaf/tpchgen/internal/derive"
	"github.com/mmrzaf/tpchgen/internal/domain"
)

// Date offsets, in days from the parent date, bounding ship/commit/receipt.
const (
	shipAfterOrderMin   = 1
	shipAfterOrderMax   = 121
	commitAfterOrderMin = 30
	commitAfterOrderMax = 90
	receiptAfterShipMin = 1
	receiptAfterShipMax = 30
	quantityMax         = 50
	discountMax         = 0.10
	taxMax              = 0.08
)

// GenerateOrdersAndLineItem builds the orders and lineitem tables together.
// Orders gets SF x 1,500,000 rows; each order's line count is drawn
// uniformly from the configured range, order-level columns are exploded
// through a child-to-parent index so sibling lines share their parent's key
// and order date, and the status/price columns of both tables are derived
// from the same materialized line columns.
func GenerateOrdersAndLineItem(ctx *column.Context, p Params) (_ *Table, _ *Table, err error) {
	rows, err := p.Rows(TableOrders)
	if err != nil {
		return nil, nil, err
	}
	customers, err := p.Rows(TableCustomer)
	if err != nil {
		return nil, nil, err
	}
	parts, err := p.Rows(TablePart)
	if err != nil {
		return nil, nil, err
	}
	suppliers, err := p.Rows(TableSupplier)
	if err != nil {
		return nil, nil, err
	}
	if p.LineCountMin < 1 || p.LineCountMin > p.LineCountMax {
		return nil, nil, fmt.Errorf("%w: line count range [%d,%d]",
			domain.ErrConfiguration, p.LineCountMin, p.LineCountMax)
	}
	n := int(rows)

	// Scratch columns are consumed by derivations and always released;
	// orderCols/lineCols are the final table columns, released only when the
	// generator fails before handing them to a table.
	var scratch, orderCols, lineCols []arrow.Array
	defer func() { releaseAll(scratch...) }()
	defer func() {
		if err != nil {
			releaseAll(orderCols...)
			releaseAll(lineCols...)
		}
	}()

	// Order-level columns.
	orderkey, err := column.PrimaryKey(ctx, 1, n)
	if err != nil {
		return nil, nil, fmt.Errorf("orders: %w", err)
	}
	orderCols = append(orderCols, orderkey)

	custkey, err := column.RandomInt(ctx, 1, customers, n)
	if err != nil {
		return nil, nil, fmt.Errorf("orders: %w", err)
	}
	orderCols = append(orderCols, custkey)

	orderdate, err := column.RandomDate(ctx, orderDateLo, orderDateHi, n)
	if err != nil {
		return nil, nil, fmt.Errorf("orders: %w", err)
	}
	orderCols = append(orderCols, orderdate)

	priority, err := column.RandomChoice(ctx, orderPriorities, n)
	if err != nil {
		return nil, nil, fmt.Errorf("orders: %w", err)
	}
	orderCols = append(orderCols, priority)

	clerkID, err := column.RandomInt(ctx, 1, p.Clerks(), n)
	if err != nil {
		return nil, nil, fmt.Errorf("orders: %w", err)
	}
	scratch = append(scratch, clerkID)

	clerk, err := derive.PaddedLabel(ctx, "Clerk#", clerkID, 9)
	if err != nil {
		return nil, nil, fmt.Errorf("orders: %w", err)
	}
	orderCols = append(orderCols, clerk)

	// o_shippriority is the constant 0 in this schema.
	shippriority, err := column.RepeatSequence(ctx, 1, true, n)
	if err != nil {
		return nil, nil, fmt.Errorf("orders: %w", err)
	}
	orderCols = append(orderCols, shippriority)

	ocomment, err := column.RandomString(ctx, 19, 78, n)
	if err != nil {
		return nil, nil, fmt.Errorf("orders: %w", err)
	}
	orderCols = append(orderCols, ocomment)

	// Fan-out: one independent line count per order, then a flat
	// child-to-parent mapping for the exploded frame.
	counts, err := column.RandomInt(ctx, p.LineCountMin, p.LineCountMax, n)
	if err != nil {
		return nil, nil, fmt.Errorf("orders: %w", err)
	}
	scratch = append(scratch, counts)

	parentIdx, lineNumbers, err := explodeIndex(counts)
	if err != nil {
		return nil, nil, fmt.Errorf("lineitem: %w", err)
	}
	total := len(parentIdx)

	lOrderkey, err := gatherInt64(ctx, orderkey, parentIdx)
	if err != nil {
		return nil, nil, fmt.Errorf("lineitem: %w", err)
	}
	lineCols = append(lineCols, lOrderkey)

	lPartkey, err := column.RandomInt(ctx, 1, parts, total)
	if err != nil {
		return nil, nil, fmt.Errorf("lineitem: %w", err)
	}
	lineCols = append(lineCols, lPartkey)

	lSuppkey, err := column.RandomInt(ctx, 1, suppliers, total)
	if err != nil {
		return nil, nil, fmt.Errorf("lineitem: %w", err)
	}
	lineCols = append(lineCols, lSuppkey)

	lLinenumber := int64Column(ctx, lineNumbers)
	lineCols = append(lineCols, lLinenumber)

	lQuantity, err := column.RandomInt(ctx, 1, quantityMax, total)
	if err != nil {
		return nil, nil, fmt.Errorf("lineitem: %w", err)
	}
	lineCols = append(lineCols, lQuantity)

	lDiscount, err := column.RandomDecimal(ctx, 0, discountMax, total)
	if err != nil {
		return nil, nil, fmt.Errorf("lineitem: %w", err)
	}
	lineCols = append(lineCols, lDiscount)

	lTax, err := column.RandomDecimal(ctx, 0, taxMax, total)
	if err != nil {
		return nil, nil, fmt.Errorf("lineitem: %w", err)
	}
	lineCols = append(lineCols, lTax)

	retail, err := derive.RetailPrice(ctx, lPartkey)
	if err != nil {
		return nil, nil, fmt.Errorf("lineitem: %w", err)
	}
	scratch = append(scratch, retail)

	lExtendedprice, err := derive.ExtendedPrice(ctx, lQuantity, retail, lDiscount, lTax)
	if err != nil {
		return nil, nil, fmt.Errorf("lineitem: %w", err)
	}
	lineCols = append(lineCols, lExtendedprice)

	// Dates: each line offsets its parent's order date independently.
	lineOrderdate, err := gatherDate32(ctx, orderdate, parentIdx)
	if err != nil {
		return nil, nil, fmt.Errorf("lineitem: %w", err)
	}
	scratch = append(scratch, lineOrderdate)

	shipOff, err := column.RandomInt(ctx, shipAfterOrderMin, shipAfterOrderMax, total)
	if err != nil {
		return nil, nil, fmt.Errorf("lineitem: %w", err)
	}
	scratch = append(scratch, shipOff)

	lShipdate, err := derive.OffsetDays(ctx, lineOrderdate, shipOff)
	if err != nil {
		return nil, nil, fmt.Errorf("lineitem: %w", err)
	}
	lineCols = append(lineCols, lShipdate)

	commitOff, err := column.RandomInt(ctx, commitAfterOrderMin, commitAfterOrderMax, total)
	if err != nil {
		return nil, nil, fmt.Errorf("lineitem: %w", err)
	}
	scratch = append(scratch, commitOff)

	lCommitdate, err := derive.OffsetDays(ctx, lineOrderdate, commitOff)
	if err != nil {
		return nil, nil, fmt.Errorf("lineitem: %w", err)
	}
	lineCols = append(lineCols, lCommitdate)

	receiptOff, err := column.RandomInt(ctx, receiptAfterShipMin, receiptAfterShipMax, total)
	if err != nil {
		return nil, nil, fmt.Errorf("lineitem: %w", err)
	}
	scratch = append(scratch, receiptOff)

	lReceiptdate, err := derive.OffsetDays(ctx, lShipdate, receiptOff)
	if err != nil {
		return nil, nil, fmt.Errorf("lineitem: %w", err)
	}
	lineCols = append(lineCols, lReceiptdate)

	lLinestatus, err := derive.LineStatus(ctx, lShipdate, currentDate)
	if err != nil {
		return nil, nil, fmt.Errorf("lineitem: %w", err)
	}
	lineCols = append(lineCols, lLinestatus)

	drawnFlags, err := column.RandomChoice(ctx, returnFlags, total)
	if err != nil {
		return nil, nil, fmt.Errorf("lineitem: %w", err)
	}
	scratch = append(scratch, drawnFlags)

	lReturnflag, err := derive.ReturnFlag(ctx, lReceiptdate, drawnFlags, currentDate)
	if err != nil {
		return nil, nil, fmt.Errorf("lineitem: %w", err)
	}
	lineCols = append(lineCols, lReturnflag)

	lShipinstruct, err := column.RandomChoice(ctx, shipInstructions, total)
	if err != nil {
		return nil, nil, fmt.Errorf("lineitem: %w", err)
	}
	lineCols = append(lineCols, lShipinstruct)

	lShipmode, err := column.RandomChoice(ctx, shipModes, total)
	if err != nil {
		return nil, nil, fmt.Errorf("lineitem: %w", err)
	}
	lineCols = append(lineCols, lShipmode)

	lComment, err := column.RandomString(ctx, 10, 43, total)
	if err != nil {
		return nil, nil, fmt.Errorf("lineitem: %w", err)
	}
	lineCols = append(lineCols, lComment)

	// Order-level fields derived from the finished line columns.
	orderstatus, err := derive.OrderStatus(ctx, counts, lLinestatus)
	if err != nil {
		return nil, nil, fmt.Errorf("orders: %w", err)
	}
	orderCols = append(orderCols, orderstatus)

	totalprice, err := derive.TotalPrice(ctx, counts, lExtendedprice)
	if err != nil {
		return nil, nil, fmt.Errorf("orders: %w", err)
	}
	orderCols = append(orderCols, totalprice)

	orderFields := []arrow.Field{
		field("o_orderkey", typeInt64),
		field("o_custkey", typeInt64),
		field("o_orderstatus", typeString),
		field("o_totalprice", typeFloat64),
		field("o_orderdate", typeDate32),
		field("o_orderpriority", typeString),
		field("o_clerk", typeString),
		field("o_shippriority", typeInt64),
		field("o_comment", typeString),
	}
	orderOut := []arrow.Array{
		orderkey, custkey, orderstatus, totalprice, orderdate,
		priority, clerk, shippriority, ocomment,
	}
	orderCols = nil // newTable owns them from here
	orders, err := newTable(TableOrders, orderFields, orderOut, rows)
	if err != nil {
		return nil, nil, err
	}

	lineFields := []arrow.Field{
		field("l_orderkey", typeInt64),
		field("l_partkey", typeInt64),
		field("l_suppkey", typeInt64),
		field("l_linenumber", typeInt64),
		field("l_quantity", typeInt64),
		field("l_extendedprice", typeFloat64),
		field("l_discount", typeFloat64),
		field("l_tax", typeFloat64),
		field("l_returnflag", typeString),
		field("l_linestatus", typeString),
		field("l_shipdate", typeDate32),
		field("l_commitdate", typeDate32),
		field("l_receiptdate", typeDate32),
		field("l_shipinstruct", typeString),
		field("l_shipmode", typeString),
		field("l_comment", typeString),
	}
	lineOut := []arrow.Array{
		lOrderkey, lPartkey, lSuppkey, lLinenumber, lQuantity,
		lExtendedprice, lDiscount, lTax, lReturnflag, lLinestatus,
		lShipdate, lCommitdate, lReceiptdate, lShipinstruct, lShipmode, lComment,
	}
	lineCols = nil
	lineitem, err := newTable(TableLineItem, lineFields, lineOut, int64(total))
	if err != nil {
		orders.Release()
		return nil, nil, err
	}

	return orders, lineitem, nil
}
