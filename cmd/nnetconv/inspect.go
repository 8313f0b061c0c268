package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/sgol13/tudelft-formal-methods-reluplex-extension/nnet"
)

func runInspect(args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("inspect", flag.ContinueOnError)
	path := fs.String("nnet", "", ".nnet file to inspect (required)")
	eval := fs.String("eval", "", "Comma-separated input to evaluate")
	normalize := fs.Bool("normalize", false, "Apply the normalization block when evaluating")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *path == "" {
		return errors.New("-nnet is required")
	}

	f, err := os.Open(*path)
	if err != nil {
		return err
	}
	defer f.Close()

	net, err := nnet.Read(f)
	if err != nil {
		return fmt.Errorf("%s: %w", *path, err)
	}

	for _, c := range net.Comments {
		fmt.Fprintf(stdout, "// %s\n", c)
	}
	fmt.Fprintf(stdout, "Layers:         %d\n", net.NumLayers)
	fmt.Fprintf(stdout, "Input size:     %d\n", net.InputSize)
	fmt.Fprintf(stdout, "Output size:    %d\n", net.OutputSize)
	fmt.Fprintf(stdout, "Max layer size: %d\n", net.MaxLayerSize)
	fmt.Fprintf(stdout, "Layer sizes:    %v\n", net.LayerSizes)

	if *eval == "" {
		return nil
	}
	x, err := parseVector(*eval)
	if err != nil {
		return err
	}
	y, err := net.Evaluate(x, *normalize)
	if err != nil {
		return err
	}
	out := make([]string, len(y))
	for i, v := range y {
		out[i] = nnet.FormatFloat(v, 64)
	}
	fmt.Fprintf(stdout, "Output:         %s\n", strings.Join(out, ","))
	return nil
}

func parseVector(s string) ([]float64, error) {
	fields := strings.Split(s, ",")
	x := make([]float64, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
		if err != nil {
			return nil, fmt.Errorf("-eval value %d: %w", i, err)
		}
		x[i] = v
	}
	return x, nil
}
