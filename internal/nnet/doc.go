// Package nnet reads and writes the .nnet text format used by neural network
// verifiers (Reluplex, Marabou, the NNet C/Python loaders).
//
// A .nnet file describes a fully connected ReLU network:
//
//	Format Structure:
//	  // comment lines (any number, the first is a timestamp)
//	  numLayers,inputSize,outputSize,maxLayerSize
//	  inputSize,layer1Size,...,outputSize
//	  0                       (unused flag)
//	  input minimums          (inputSize values)
//	  input maximums          (inputSize values)
//	  means                   (inputSize values + 1 for the outputs)
//	  ranges                  (inputSize values + 1 for the outputs)
//	  for each layer:
//	    one line per weight row (inputs of the layer, comma separated)
//	    one line per bias value
//
// Lines are joined with "\n" without a trailing newline. ReLU is applied
// after every layer except the last.
//
// Example usage:
//
//	// Write a converted network
//	if err := nnet.Save("model.nnet", export, nnet.DefaultOptions()); err != nil {
//	    log.Fatal(err)
//	}
//
//	// Read it back
//	f, _ := os.Open("model.nnet")
//	net, err := nnet.Read(f)
package nnet
