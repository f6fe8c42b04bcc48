// Command normbench benchmarks the normalization layers over synthetic
// activations.
package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"runtime"
	"runtime/pprof"
	"time"

	norms "github.com/lth/pure-go-norms"
)

var (
	transform  = flag.String("transform", "all", "Transform to benchmark: batch, layer, rms, or all")
	rows       = flag.Int("rows", 256, "Batch rows per apply")
	dim        = flag.Int("dim", 2048, "Feature dimension")
	iters      = flag.Int("iters", 1000, "Apply calls per transform")
	seed       = flag.Int64("seed", 42, "RNG seed for synthetic activations")
	cpuProfile = flag.String("cpuprofile", "", "Write CPU profile to file")
)

type result struct {
	name     string
	wall     time.Duration
	cpu      time.Duration
	rowsPerS float64
	gbPerS   float64
}

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Benchmark activation-normalization throughput.\n\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if *rows <= 0 || *dim <= 0 || *iters <= 0 {
		log.Fatal("rows, dim and iters must all be positive")
	}

	if *cpuProfile != "" {
		f, err := os.Create(*cpuProfile)
		if err != nil {
			log.Fatalf("Failed to create CPU profile: %v", err)
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			log.Fatalf("Failed to start CPU profile: %v", err)
		}
		defer pprof.StopCPUProfile()
	}

	rng := rand.New(rand.NewSource(*seed))
	data := make([]float32, *rows**dim)
	for i := range data {
		data[i] = float32(rng.NormFloat64())
	}
	x, err := norms.FromSlice(data, *rows, *dim)
	if err != nil {
		log.Fatalf("Failed to build input tensor: %v", err)
	}

	layers, err := selectLayers(*transform, *dim)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("normbench: %d rows x %d features, %d iterations, %d CPUs\n\n",
		*rows, *dim, *iters, runtime.NumCPU())

	var results []result
	for _, l := range layers {
		results = append(results, run(l.name, l.layer, l.mode, x, *iters))
	}

	fmt.Printf("%-10s %12s %12s %14s %10s\n", "transform", "wall", "cpu", "rows/s", "GB/s")
	for _, r := range results {
		fmt.Printf("%-10s %12s %12s %14.0f %10.2f\n", r.name, r.wall.Round(time.Microsecond), r.cpu.Round(time.Microsecond), r.rowsPerS, r.gbPerS)
	}
}

type namedLayer struct {
	name  string
	layer norms.Layer
	mode  norms.Mode
}

func selectLayers(which string, dim int) ([]namedLayer, error) {
	const eps = 1e-5

	var out []namedLayer
	if which == "batch" || which == "all" {
		bn, err := norms.NewBatchNorm(dim, eps, 0.1)
		if err != nil {
			return nil, err
		}
		out = append(out, namedLayer{"batch", bn, norms.Training})
	}
	if which == "layer" || which == "all" {
		ln, err := norms.NewLayerNorm(dim, eps)
		if err != nil {
			return nil, err
		}
		out = append(out, namedLayer{"layer", ln, norms.Inference})
	}
	if which == "rms" || which == "all" {
		rn, err := norms.NewRMSNorm(dim, eps)
		if err != nil {
			return nil, err
		}
		out = append(out, namedLayer{"rms", rn, norms.Inference})
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("unknown transform %q (want batch, layer, rms or all)", which)
	}
	return out, nil
}

func run(name string, layer norms.Layer, mode norms.Mode, x *norms.Tensor, iters int) result {
	// Warm up caches and the parallel path before measuring
	if _, err := layer.Apply(x, mode); err != nil {
		log.Fatalf("%s: %v", name, err)
	}

	cpuStart := cpuTimeNow()
	wallStart := time.Now()
	for i := 0; i < iters; i++ {
		if _, err := layer.Apply(x, mode); err != nil {
			log.Fatalf("%s: %v", name, err)
		}
	}
	wall := time.Since(wallStart)
	cpu := cpuTimeNow() - cpuStart

	shape := x.Shape()
	rows := 1
	for _, d := range shape[:len(shape)-1] {
		rows *= d
	}
	totalRows := float64(rows) * float64(iters)
	// src read + dst write
	bytes := float64(len(x.Data())) * 4 * 2 * float64(iters)

	return result{
		name:     name,
		wall:     wall,
		cpu:      cpu,
		rowsPerS: totalRows / wall.Seconds(),
		gbPerS:   bytes / wall.Seconds() / 1e9,
	}
}
