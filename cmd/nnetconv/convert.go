package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/sgol13/tudelft-formal-methods-reluplex-extension/convert"
	"github.com/sgol13/tudelft-formal-methods-reluplex-extension/nnet"
	"github.com/sgol13/tudelft-formal-methods-reluplex-extension/onnx"
	"github.com/sgol13/tudelft-formal-methods-reluplex-extension/tensor"
)

type convertConfig struct {
	model     string
	out       string
	data      string
	comments  []string
	inputSize int
	f64       bool
	verify    bool
	trials    int
	tolerance float64
	seed      int64
}

// commentFlags collects repeated -comment values.
type commentFlags []string

func (c *commentFlags) String() string { return strings.Join(*c, "; ") }

func (c *commentFlags) Set(v string) error {
	*c = append(*c, v)
	return nil
}

func runConvert(args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("convert", flag.ContinueOnError)
	check := convert.DefaultCheckOptions()

	var cfg convertConfig
	var comments commentFlags
	fs.StringVar(&cfg.model, "model", "", "ONNX model to convert (required)")
	fs.StringVar(&cfg.out, "out", "", "Output .nnet path (default: model path with .nnet extension)")
	fs.StringVar(&cfg.data, "data", "", "Input samples (CSV or whitespace separated) for normalization statistics")
	fs.Var(&comments, "comment", "Header comment line (repeatable)")
	fs.IntVar(&cfg.inputSize, "input-size", 0, "Input length (default: last dimension of the ONNX input)")
	fs.BoolVar(&cfg.f64, "f64", false, "Convert in float64 instead of float32")
	fs.BoolVar(&cfg.verify, "verify", false, "Compare the dense network against the model on random inputs")
	fs.IntVar(&cfg.trials, "trials", check.Trials, "Random inputs used by -verify")
	fs.Float64Var(&cfg.tolerance, "tolerance", check.Tolerance, "Maximum deviation accepted by -verify")
	fs.Int64Var(&cfg.seed, "seed", check.Seed, "Random seed used by -verify")
	if err := fs.Parse(args); err != nil {
		return err
	}
	cfg.comments = comments

	if cfg.model == "" {
		return errors.New("-model is required")
	}
	if cfg.out == "" {
		cfg.out = strings.TrimSuffix(cfg.model, filepath.Ext(cfg.model)) + ".nnet"
	}

	if cfg.f64 {
		return convertModel[float64](cfg, stdout)
	}
	return convertModel[float32](cfg, stdout)
}

func convertModel[T tensor.Float](cfg convertConfig, stdout io.Writer) error {
	imp, err := onnx.ImportFile[T](cfg.model)
	if err != nil {
		return err
	}

	inputSize := cfg.inputSize
	if inputSize == 0 {
		inputSize = imp.InputSize
	}
	if inputSize <= 0 {
		return fmt.Errorf("input size of %q is unknown (shape %v), set -input-size", imp.InputName, imp.InputShape)
	}
	log.Printf("imported %s (%s, opset %d): %d layers, input %q of size %d",
		cfg.model, imp.Producer, imp.Opset, imp.Model.Len(), imp.InputName, inputSize)

	export, err := convert.Sequential(imp.Model, inputSize, tensor.CPU)
	if err != nil {
		return err
	}
	log.Printf("rewrote into %d dense layers", len(export.Linears()))

	if cfg.verify {
		opts := convert.CheckOptions{Trials: cfg.trials, Tolerance: cfg.tolerance, Seed: cfg.seed}
		diff, err := convert.Check(imp.Model, export, inputSize, opts)
		if err != nil {
			return err
		}
		log.Printf("verified on %d random inputs, max deviation %.3g", opts.Trials, diff)
	}

	opts := nnet.DefaultOptions()
	opts.Comments = cfg.comments
	if cfg.data != "" {
		samples, err := readSamples(cfg.data)
		if err != nil {
			return err
		}
		if opts.Stats, err = nnet.StatsFromSamples(export, samples); err != nil {
			return err
		}
		log.Printf("normalization statistics from %d samples", len(samples))
	}

	if err := nnet.Save(cfg.out, export, opts); err != nil {
		return err
	}
	fmt.Fprintf(stdout, "wrote %s\n", cfg.out)
	return nil
}

func readSamples(path string) ([][]float64, error) {
	f, err := os.Open(path) //nolint:gosec // G304: path is provided by the user
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return nnet.ReadSamples(f)
}
