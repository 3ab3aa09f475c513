package frugurt

import "fmt"

// OperatorKey identifies one operator overload by symbol and operand types.
type OperatorKey struct {
	Symbol string
	Left   string
	Right  string
}

func (k OperatorKey) String() string {
	return fmt.Sprintf("%s(%s, %s)", k.Symbol, k.Left, k.Right)
}

// Keys returns the registry keys the declaration defines. A commutative
// declaration over two distinct types also defines the mirrored key.
func (s *OperatorStmt) Keys() []OperatorKey {
	key := OperatorKey{Symbol: s.Symbol, Left: s.Left.Type, Right: s.Right.Type}
	if !s.Commutative || key.Left == key.Right {
		return []OperatorKey{key}
	}
	return []OperatorKey{key, {Symbol: s.Symbol, Left: key.Right, Right: key.Left}}
}
