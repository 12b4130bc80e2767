package nn

import (
	"math"
	"math/rand"

	"github.com/sprout-ml/sprout/internal/tensor"
)

// XavierUniform fills t with samples from U(-bound, bound) where
// bound = sqrt(6 / (fanIn + fanOut)).
//
// Keeps activation variance roughly constant across layers at
// initialization (Glorot & Bengio, 2010).
func XavierUniform[B tensor.Backend](t *tensor.Tensor[float32, B], fanIn, fanOut int) {
	bound := math.Sqrt(6.0 / float64(fanIn+fanOut))
	data := t.Data()
	for i := range data {
		data[i] = float32((rand.Float64()*2 - 1) * bound) //nolint:gosec // G404: weight init uses math/rand intentionally
	}
}
