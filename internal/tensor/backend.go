package tensor

// Backend defines the interface that all compute backends must implement.
// Backends handle the actual computation for tensor operations.
//
// Implementations:
//   - CPU: pure Go dense math (internal/backend/cpu)
//   - Autodiff: decorator that wraps any Backend and records operations
//     for reverse-mode differentiation (internal/autodiff)
type Backend interface {
	// Element-wise binary operations (with broadcasting)
	Add(a, b *RawTensor) *RawTensor
	Sub(a, b *RawTensor) *RawTensor
	Mul(a, b *RawTensor) *RawTensor
	Div(a, b *RawTensor) *RawTensor

	// Matrix operations
	MatMul(a, b *RawTensor) *RawTensor

	// Shape operations
	Reshape(t *RawTensor, newShape Shape) *RawTensor
	Transpose(t *RawTensor, axes ...int) *RawTensor

	// Scalar operations (element-wise with scalar)
	MulScalar(x *RawTensor, scalar float64) *RawTensor
	AddScalar(x *RawTensor, scalar float64) *RawTensor

	// Math operations (element-wise)
	Exp(x *RawTensor) *RawTensor
	Pow(x *RawTensor, exponent float64) *RawTensor

	// Activation functions: max(0, x) and the row-wise log-softmax over
	// the last dimension.
	ReLU(x *RawTensor) *RawTensor
	LogSoftmax(x *RawTensor) *RawTensor

	// Reduction operations, both producing a single-element result.
	Sum(x *RawTensor) *RawTensor
	Mean(x *RawTensor) *RawTensor

	// Metadata
	Name() string
	Device() Device
}
