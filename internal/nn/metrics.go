package nn

import "github.com/sprout-ml/sprout/internal/tensor"

// Accuracy returns the fraction of rows whose highest-scoring class
// matches the target. Works on logits or log-probabilities, since both
// preserve the argmax.
func Accuracy[B tensor.Backend](output *tensor.Tensor[float32, B], targets *tensor.Tensor[int32, B]) float64 {
	shape := output.Shape()
	batch, classes := shape[0], shape[1]
	data := output.Data()
	labels := targets.Data()

	correct := 0
	for i := 0; i < batch; i++ {
		row := data[i*classes : (i+1)*classes]
		best := 0
		for c := 1; c < classes; c++ {
			if row[c] > row[best] {
				best = c
			}
		}
		if int32(best) == labels[i] {
			correct++
		}
	}
	return float64(correct) / float64(batch)
}
