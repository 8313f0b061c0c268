// Package main provides the nnetconv CLI.
//
// nnetconv rewrites 1-D convolutional networks exported to ONNX into
// equivalent fully connected networks and writes them in the .nnet format
// read by Reluplex and Marabou.
//
// Usage:
//
//	nnetconv convert -model net.onnx [-out net.nnet] [-verify] [-data samples.csv]
//	nnetconv inspect -nnet net.nnet [-eval 0.1,0.2,...]
//	nnetconv version
package main

import (
	"fmt"
	"io"
	"log"
	"os"
)

const version = "v0.1.0"

func main() {
	log.SetFlags(0)
	log.SetPrefix("nnetconv: ")

	if len(os.Args) < 2 {
		usage(os.Stderr)
		os.Exit(2)
	}

	var err error
	switch os.Args[1] {
	case "convert":
		err = runConvert(os.Args[2:], os.Stdout)
	case "inspect":
		err = runInspect(os.Args[2:], os.Stdout)
	case "version":
		fmt.Printf("nnetconv %s\n", version)
	case "help", "-h", "-help", "--help":
		usage(os.Stdout)
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n", os.Args[1])
		usage(os.Stderr)
		os.Exit(2)
	}
	if err != nil {
		log.Fatalf("%s: %v", os.Args[1], err)
	}
}

func usage(w io.Writer) {
	fmt.Fprintf(w, "nnetconv %s - convert 1-D CNNs to .nnet\n\n", version)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  convert    Convert an ONNX model to .nnet")
	fmt.Fprintln(w, "  inspect    Print the header of a .nnet file")
	fmt.Fprintln(w, "  version    Show version")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Run 'nnetconv <command> -h' for command flags.")
}
