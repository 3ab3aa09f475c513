package frugurt

const (
	lowestPrec = iota
	precOr
	precAnd
	precEquality
	precComparison
	precSum
	precProduct
	precPower

	// precCustom binds every operator spelling missing from the table,
	// tighter than all built-in levels.
	precCustom = 50
)

// Every level is left-associative.
var precedences = map[string]int{
	"||": precOr,
	"&&": precAnd,
	"==": precEquality,
	"!=": precEquality,
	"<":  precComparison,
	">":  precComparison,
	"<=": precComparison,
	">=": precComparison,
	"+":  precSum,
	"-":  precSum,
	"*":  precProduct,
	"/":  precProduct,
	"%":  precProduct,
	"**": precPower,
	"<>": precPower,
}

// Precedence returns the binding level of an operator spelling.
func Precedence(op string) int {
	if prec, ok := precedences[op]; ok {
		return prec
	}
	return precCustom
}

// IsBuiltinOperator reports whether op has a fixed level in the table.
func IsBuiltinOperator(op string) bool {
	_, ok := precedences[op]
	return ok
}
