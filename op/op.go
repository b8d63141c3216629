// Package op defines opcodes used by the Abacus compiler and virtual machine.
//
// The four arithmetic codes double as the operator identity on AST nodes, so
// the parser, the AST, and the instruction stream all share one closed enum.
package op

// Code is an integer opcode that indicates an operation to execute.
type Code uint16

const (
	Invalid Code = 0

	// Stack
	Push Code = 1 // operand: the integer value to push

	// Arithmetic. Each pops two operands and pushes one result.
	Add Code = 10
	Sub Code = 11
	Mul Code = 12
	Div Code = 13
)

// Info contains information about an opcode.
type Info struct {
	Code         Code
	Name         string
	OperandCount int
}

var infos = make([]Info, 256)

func init() {
	type opInfo struct {
		op    Code
		name  string
		count int
	}
	ops := []opInfo{
		{Push, "PUSH", 1},
		{Add, "ADD", 0},
		{Sub, "SUB", 0},
		{Mul, "MUL", 0},
		{Div, "DIV", 0},
	}
	for _, o := range ops {
		infos[o.op] = Info{
			Name:         o.name,
			Code:         o.op,
			OperandCount: o.count,
		}
	}
}

// GetInfo returns information about the given opcode. Unknown opcodes
// return a zero Info with an empty name.
func GetInfo(op Code) Info {
	if int(op) >= len(infos) {
		return Info{}
	}
	return infos[op]
}

// String returns the mnemonic for the opcode, e.g. "PUSH" or "ADD".
func (c Code) String() string {
	if int(c) < len(infos) && infos[c].Name != "" {
		return infos[c].Name
	}
	return "INVALID"
}

// Symbol returns the operator glyph for an arithmetic opcode.
// For example "+" for Add. Non-arithmetic codes return "".
func (c Code) Symbol() string {
	switch c {
	case Add:
		return "+"
	case Sub:
		return "-"
	case Mul:
		return "*"
	case Div:
		return "/"
	default:
		return ""
	}
}

// IsBinaryOp returns true if the opcode is one of the four arithmetic
// operations that pop two operands.
func (c Code) IsBinaryOp() bool {
	switch c {
	case Add, Sub, Mul, Div:
		return true
	default:
		return false
	}
}
