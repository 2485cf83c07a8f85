package tables

import (
	"time"

	"github.com/apache/arrow-go/v18/arrow"

	"github.com/mmrzaf/tpchgen/internal/timeutil"
)

// Table names, in the generation order used by the pipeline.
const (
	TablePart     = "part"
	TablePartSupp = "partsupp"
	TableSupplier = "supplier"
	TableCustomer = "customer"
	TableOrders   = "orders"
	TableLineItem = "lineitem"
	TableNation   = "nation"
	TableRegion   = "region"
)

// Base row counts at scale factor 1. nation and region are fixed-size.
const (
	partBase     = 200_000
	supplierBase = 10_000
	customerBase = 150_000
	ordersBase   = 1_500_000

	nationRows     = 25
	regionRows     = 5
	partSuppFanOut = 4
	clerksPerSF    = 1_000
	defaultLineMin = 1
	defaultLineMax = 7
)

// currentDate is the benchmark's fixed "today"; order dates are drawn so that
// every ship/commit/receipt date lands within the valid interval.
var (
	currentDate = timeutil.DaysSinceEpoch(1995, time.June, 17)
	orderDateLo = timeutil.DaysSinceEpoch(1992, time.January, 1)
	orderDateHi = timeutil.DaysSinceEpoch(1998, time.August, 2)
)

var marketSegments = []string{"AUTOMOBILE", "BUILDING", "FURNITURE", "MACHINERY", "HOUSEHOLD"}

var orderPriorities = []string{"1-URGENT", "2-HIGH", "3-MEDIUM", "4-NOT SPECIFIED", "5-LOW"}

var shipInstructions = []string{"DELIVER IN PERSON", "COLLECT COD", "NONE", "TAKE BACK RETURN"}

var shipModes = []string{"REG AIR", "AIR", "RAIL", "SHIP", "TRUCK", "MAIL", "FOB"}

var returnFlags = []string{"R", "A"}

// Part naming vocabulary: p_name is five words drawn from this set.
var partNameWords = []string{
	"almond", "antique", "aquamarine", "azure", "beige", "bisque", "black",
	"blanched", "blue", "blush", "brown", "burlywood", "burnished", "chartreuse",
	"chiffon", "chocolate", "coral", "cornflower", "cornsilk", "cream", "cyan",
	"dark", "deep", "dim", "dodger", "drab", "firebrick", "floral", "forest",
	"frosted", "gainsboro", "ghost", "goldenrod", "green", "grey", "honeydew",
	"hot", "indian", "ivory", "khaki", "lace", "lavender", "lawn", "lemon",
	"light", "lime", "linen", "magenta", "maroon", "medium", "metallic",
	"midnight", "mint", "misty", "moccasin", "navajo", "navy", "olive", "orange",
	"orchid", "pale", "papaya", "peach", "peru", "pink", "plum", "powder",
	"puff", "purple", "red", "rose", "rosy", "royal", "saddle", "salmon",
	"sandy", "seashell", "sienna", "sky", "slate", "smoke", "snow", "spring",
	"steel", "tan", "thistle", "tomato", "turquoise", "violet", "wheat",
	"white", "yellow",
}

// p_type is one syllable from each set joined by spaces.
var (
	typeSyllable1 = []string{"STANDARD", "SMALL", "MEDIUM", "LARGE", "ECONOMY", "PROMO"}
	typeSyllable2 = []string{"ANODIZED", "BURNISHED", "PLATED", "POLISHED", "BRUSHED"}
	typeSyllable3 = []string{"TIN", "NICKEL", "BRASS", "STEEL", "COPPER"}
)

// p_container is a size word plus a shape word.
var (
	containerSizes  = []string{"SM", "LG", "MED", "JUMBO", "WRAP"}
	containerShapes = []string{"CASE", "BOX", "BAG", "JAR", "PKG", "PACK", "CAN", "DRUM"}
)

var regionNames = []string{"AFRICA", "AMERICA", "ASIA", "EUROPE", "MIDDLE EAST"}

// The 25 nations with their fixed region assignment, in nationkey order.
var nationCatalog = []struct {
	Name      string
	RegionKey int64
}{
	{"ALGERIA", 0}, {"ARGENTINA", 1}, {"BRAZIL", 1}, {"CANADA", 1},
	{"EGYPT", 4}, {"ETHIOPIA", 0}, {"FRANCE", 3}, {"GERMANY", 3},
	{"INDIA", 2}, {"INDONESIA", 2}, {"IRAN", 4}, {"IRAQ", 4},
	{"JAPAN", 2}, {"JORDAN", 4}, {"KENYA", 0}, {"MOROCCO", 0},
	{"MOZAMBIQUE", 0}, {"PERU", 1}, {"CHINA", 2}, {"ROMANIA", 3},
	{"SAUDI ARABIA", 4}, {"VIETNAM", 2}, {"RUSSIA", 3},
	{"UNITED KINGDOM", 3}, {"UNITED STATES", 1},
}

// Arrow types used by the schemas.
var (
	typeInt64   = arrow.PrimitiveTypes.Int64
	typeFloat64 = arrow.PrimitiveTypes.Float64
	typeString  = arrow.BinaryTypes.String
	typeDate32  = arrow.FixedWidthTypes.Date32
)

func field(name string, dt arrow.DataType) arrow.Field {
	return arrow.Field{Name: name, Type: dt, Nullable: true}
}
