// Package main provides the AlgoViz CLI: it runs a search algorithm over a
// comma-separated data set and prints the step trace the visualizer would
// animate.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/algoviz/algoviz/pkg/algoviz"
)

// Version information set during build
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

func main() {
	if len(os.Args) > 1 && os.Args[1] == "version" {
		fmt.Printf("AlgoViz %s (commit: %s, built: %s)\n", Version, Commit, BuildTime)
		return
	}
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "algoviz: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	fs := flag.NewFlagSet("algoviz", flag.ContinueOnError)
	algorithmName := fs.String("algorithm", "binary-search", "algorithm to run")
	dataFlag := fs.String("data", "1,3,5,7,9", "comma-separated input values")
	target := fs.Float64("target", 5, "value to search for")
	list := fs.Bool("list", false, "list available algorithms and exit")
	if err := fs.Parse(args); err != nil {
		return err
	}

	rt := algoviz.NewRuntime()
	defer rt.Close()

	if *list {
		for _, name := range rt.Algorithms() {
			info, err := rt.Info(name)
			if err != nil {
				return err
			}
			fmt.Printf("%-16s %s  time=%s space=%s\n", info.Name, info.Description, info.TimeComplexity, info.SpaceComplexity)
		}
		return nil
	}

	data, err := parseData(*dataFlag)
	if err != nil {
		return err
	}

	resp, err := rt.Run(context.Background(), *algorithmName, data, *target)
	if err != nil {
		return err
	}

	fmt.Printf("AlgoViz %s: data=%v target=%v\n", *algorithmName, data, *target)
	for _, s := range resp.Steps {
		fmt.Printf("  %3d [%-9s] %s\n", s.OperationCount, s.Type, s.Description)
	}
	fmt.Printf("found=%v index=%d operations=%d comparisons=%d runtime=%v\n",
		resp.Found, resp.FoundIndex,
		resp.Metrics.TotalOperations, resp.Metrics.ComparisonCount, resp.Metrics.ActualRuntime)
	return nil
}

func parseData(s string) ([]float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return []float64{}, nil
	}
	parts := strings.Split(s, ",")
	data := make([]float64, 0, len(parts))
	for _, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid data value %q: %w", p, err)
		}
		data = append(data, v)
	}
	return data, nil
}
