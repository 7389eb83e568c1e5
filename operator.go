// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package dd

// Operator describes the binary operations available through Apply and
// AppEx. Only the first four (OPand to OPnand) may be used in AppEx. OPbiimp
// doubles as the xnor operator required by the operator kernel.
type Operator int

const (
	OPand Operator = iota
	OPxor
	OPor
	OPnand
	OPnor
	OPimp
	OPbiimp // also known as xnor
	OPdiff
	OPless
	OPinvimp
	// opnot, for negation, is the only unary operation. It must not be used in
	// Apply: negation is handled directly by Not.
	opnot
)

var opnames = [12]string{
	OPand:    "and",
	OPxor:    "xor",
	OPor:     "or",
	OPnand:   "nand",
	OPnor:    "nor",
	OPimp:    "imp",
	OPbiimp:  "biimp/xnor",
	OPdiff:   "diff",
	OPless:   "less",
	OPinvimp: "invimp",
	opnot:    "not",
}

func (op Operator) String() string {
	return opnames[op]
}

// opres is the truth table for each operator, indexed [left][right] on the
// two constant values (0 = false, 1 = true).
var opres = [12][2][2]Edge{
	//                      00    01               10    11
	OPand:    {0: [2]Edge{0: 0, 1: 0}, 1: [2]Edge{0: 0, 1: 1}}, // 0001
	OPxor:    {0: [2]Edge{0: 0, 1: 1}, 1: [2]Edge{0: 1, 1: 0}}, // 0110
	OPor:     {0: [2]Edge{0: 0, 1: 1}, 1: [2]Edge{0: 1, 1: 1}}, // 0111
	OPnand:   {0: [2]Edge{0: 1, 1: 1}, 1: [2]Edge{0: 1, 1: 0}}, // 1110
	OPnor:    {0: [2]Edge{0: 1, 1: 0}, 1: [2]Edge{0: 0, 1: 0}}, // 1000
	OPimp:    {0: [2]Edge{0: 1, 1: 1}, 1: [2]Edge{0: 0, 1: 1}}, // 1101
	OPbiimp:  {0: [2]Edge{0: 1, 1: 0}, 1: [2]Edge{0: 0, 1: 1}}, // 1001
	OPdiff:   {0: [2]Edge{0: 0, 1: 0}, 1: [2]Edge{0: 1, 1: 0}}, // 0010
	OPless:   {0: [2]Edge{0: 0, 1: 1}, 1: [2]Edge{0: 0, 1: 0}}, // 0100
	OPinvimp: {0: [2]Edge{0: 1, 1: 0}, 1: [2]Edge{0: 1, 1: 1}}, // 1011
}
