package evaluator

import (
	"math/big"
	"strings"

	"github.com/funvibe/plc/internal/config"
	"github.com/funvibe/plc/internal/diagnostics"
	"github.com/shopspring/decimal"
)

func (e *Evaluator) evalInfix(op string, left, right Object) Object {
	switch op {
	case config.OpEq:
		return nativeBoolToBooleanObject(objectsEqual(left, right))
	case config.OpNe:
		return nativeBoolToBooleanObject(!objectsEqual(left, right))
	case config.OpLt, config.OpLe, config.OpGt, config.OpGe:
		c, ok := compareObjects(left, right)
		if !ok {
			return newError(diagnostics.ErrR004, "cannot compare %s with %s", left.Type(), right.Type())
		}
		return nativeBoolToBooleanObject(relation(op, c))
	case config.OpAdd:
		if left.Type() == STRING_OBJ || right.Type() == STRING_OBJ {
			return &String{Value: left.Inspect() + right.Inspect()}
		}
	}

	switch l := left.(type) {
	case *Integer:
		if r, ok := right.(*Integer); ok {
			return evalIntegerInfix(op, l, r)
		}
	case *Decimal:
		if r, ok := right.(*Decimal); ok {
			return e.evalDecimalInfix(op, l, r)
		}
	}
	return newError(diagnostics.ErrR004, "operator %s cannot be applied to %s and %s", op, left.Type(), right.Type())
}

func evalIntegerInfix(op string, l, r *Integer) Object {
	res := new(big.Int)
	switch op {
	case config.OpAdd:
		res.Add(l.Value, r.Value)
	case config.OpSub:
		res.Sub(l.Value, r.Value)
	case config.OpMul:
		res.Mul(l.Value, r.Value)
	case config.OpDiv:
		if r.Value.Sign() == 0 {
			return newError(diagnostics.ErrR005, "division by zero")
		}
		res.Quo(l.Value, r.Value)
	default:
		return newError(diagnostics.ErrR004, "unknown operator %s for integers", op)
	}
	return &Integer{Value: res}
}

func (e *Evaluator) evalDecimalInfix(op string, l, r *Decimal) Object {
	switch op {
	case config.OpAdd:
		return &Decimal{Value: l.Value.Add(r.Value)}
	case config.OpSub:
		return &Decimal{Value: l.Value.Sub(r.Value)}
	case config.OpMul:
		return &Decimal{Value: l.Value.Mul(r.Value)}
	case config.OpDiv:
		if r.Value.IsZero() {
			return newError(diagnostics.ErrR005, "division by zero")
		}
		scale := int32(config.DefaultDecimalScale)
		if e.DecimalScale != nil {
			scale = *e.DecimalScale
		}
		return &Decimal{Value: divideHalfEven(l.Value, r.Value, scale)}
	}
	return newError(diagnostics.ErrR004, "unknown operator %s for decimals", op)
}

// divideHalfEven returns a / b with scale fractional digits, rounding ties
// to the even neighbour. b must not be zero.
func divideHalfEven(a, b decimal.Decimal, scale int32) decimal.Decimal {
	q := new(big.Rat).Quo(a.Rat(), b.Rat())
	q.Mul(q, new(big.Rat).SetInt(new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(scale)), nil)))

	num, den := q.Num(), q.Denom()
	quo, rem := new(big.Int).QuoRem(num, den, new(big.Int))

	// Compare twice the remainder with the denominator to decide rounding.
	twice := new(big.Int).Abs(rem)
	twice.Lsh(twice, 1)
	switch c := twice.Cmp(den); {
	case c > 0, c == 0 && quo.Bit(0) == 1:
		if num.Sign() < 0 {
			quo.Sub(quo, big.NewInt(1))
		} else {
			quo.Add(quo, big.NewInt(1))
		}
	}
	return decimal.NewFromBigInt(quo, -scale)
}

func relation(op string, c int) bool {
	switch op {
	case config.OpLt:
		return c < 0
	case config.OpLe:
		return c <= 0
	case config.OpGt:
		return c > 0
	}
	return c >= 0
}

// compareObjects orders two values of comparable kinds. Integers and
// decimals compare numerically with each other.
func compareObjects(left, right Object) (int, bool) {
	if ld, ok := numericValue(left); ok {
		if rd, ok := numericValue(right); ok {
			return ld.Cmp(rd), true
		}
		return 0, false
	}
	switch l := left.(type) {
	case *Character:
		if r, ok := right.(*Character); ok {
			switch {
			case l.Value < r.Value:
				return -1, true
			case l.Value > r.Value:
				return 1, true
			}
			return 0, true
		}
	case *String:
		if r, ok := right.(*String); ok {
			return strings.Compare(l.Value, r.Value), true
		}
	}
	return 0, false
}

func numericValue(obj Object) (decimal.Decimal, bool) {
	switch o := obj.(type) {
	case *Integer:
		return decimal.NewFromBigInt(o.Value, 0), true
	case *Decimal:
		return o.Value, true
	}
	return decimal.Decimal{}, false
}

// objectsEqual is value equality. Values of unrelated kinds are unequal.
func objectsEqual(left, right Object) bool {
	if c, ok := compareObjects(left, right); ok {
		return c == 0
	}
	switch l := left.(type) {
	case *Boolean:
		if r, ok := right.(*Boolean); ok {
			return l.Value == r.Value
		}
	case *Nil:
		return right.Type() == NIL_OBJ
	}
	return left == right
}
