// Package convert rewrites 1-D convolutional networks into equivalent
// networks made only of dense (Linear) layers and ReLU activations.
//
// For a fixed input length, Conv1D and AvgPool1D are linear maps and can be
// materialized as an explicit weight matrix and bias vector. The resulting
// dense network computes exactly the same function as the source network,
// which is what piecewise-linear verifiers such as Reluplex and Marabou need.
//
// Transformers:
//   - Conv1DToLinear: Conv1D -> Linear for a given input length
//   - SingleChannelConv1DToLinear: same, restricted to one input channel
//   - AvgPool1DToLinear: AvgPool1D -> Linear for a given length and channel count
//
// Rewriter:
//   - Sequential: converts a whole model, tracking width and channel count
//
// Flattening order is channel-major: element (c, pos) of a [C, L] activation
// lives at index c*L + pos of the dense vector.
package convert
