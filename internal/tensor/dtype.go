// Package tensor provides the core tensor types and operations for the Sprout ML framework.
package tensor

// DType is a constraint for supported tensor data types.
// It uses Go generics to ensure compile-time type safety.
type DType interface {
	~float32 | ~float64 | ~int32
}

// DataType represents runtime type information for tensors.
type DataType int

// Supported data types for tensors.
const (
	Float32 DataType = iota
	Float64
	Int32
)

// Size returns the size of one element in bytes.
func (dt DataType) Size() int {
	switch dt {
	case Float32, Int32:
		return 4
	case Float64:
		return 8
	default:
		return 0
	}
}

// String returns a human-readable type name.
func (dt DataType) String() string {
	switch dt {
	case Float32:
		return "float32"
	case Float64:
		return "float64"
	case Int32:
		return "int32"
	default:
		return "unknown"
	}
}

// inferDataType maps a Go value to its runtime DataType.
func inferDataType(v any) DataType {
	switch v.(type) {
	case float32:
		return Float32
	case float64:
		return Float64
	case int32:
		return Int32
	default:
		panic("tensor: unsupported data type")
	}
}
