package plugin

import (
	"errors"
	"fmt"
	"strconv"
)

// ErrUnknownOperation is returned for an operation name that does not exist.
var ErrUnknownOperation = errors.New("unknown operation")

// Result is the outcome of an operation.
// Defined is false when the operation produces no value, in which case
// callers keep using their element handle.
type Result struct {
	Defined bool
	Value   int
	OK      bool
}

// Operation is an action invoked on an attached instance.
// The set is closed: only GetValue and SetValue implement it.
type Operation interface {
	apply(inst *Instance) Result
	Name() string
}

// GetValue reads the current value.
type GetValue struct{}

// Name returns "getValue".
func (GetValue) Name() string { return "getValue" }

func (GetValue) apply(inst *Instance) Result {
	return Result{Defined: true, Value: inst.Value(), OK: true}
}

// SetValue parses Input as an integer and stores it, clamped at zero.
// Unparseable input leaves the value unchanged and yields a defined,
// failed result.
type SetValue struct {
	Input string
}

// SetInt returns a SetValue for n.
func SetInt(n int) SetValue {
	return SetValue{Input: strconv.Itoa(n)}
}

// Name returns "setValue".
func (SetValue) Name() string { return "setValue" }

func (op SetValue) apply(inst *Instance) Result {
	n, ok := ParseInt(op.Input)
	if !ok {
		return Result{Defined: true, OK: false}
	}
	inst.write(n)
	return Result{OK: true}
}

// ParseOperation maps an operation name and its arguments to an Operation.
func ParseOperation(name string, args ...string) (Operation, error) {
	switch name {
	case "getValue":
		return GetValue{}, nil
	case "setValue":
		if len(args) == 0 {
			return SetValue{}, nil
		}
		return SetValue{Input: args[0]}, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownOperation, name)
	}
}
