// Package onnx imports ONNX models as Sequential layer stacks.
//
// The parser decodes the subset of the ONNX protobuf schema the importer
// needs (model, graph, node, tensor, value info, attribute) with
// google.golang.org/protobuf's wire-level decoder, so no generated code is
// required. Unknown fields are skipped.
//
// The importer accepts chain graphs: each node consumes the output of the
// previous node, with weights supplied as initializers. Supported operators:
//   - Conv with a rank 3 weight (1-D convolution)
//   - AveragePool with a single spatial dimension
//   - Gemm, and MatMul optionally followed by a bias Add
//   - Relu, Flatten, and Reshape to a vector
//   - Identity and Dropout, which are skipped
//
// Example usage:
//
//	imp, err := onnx.ImportFile[float32]("model.onnx")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("input %q %v, %d layers\n", imp.InputName, imp.InputShape, imp.Model.Len())
package onnx
