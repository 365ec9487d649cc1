// Package molgp provides Gaussian process regression over molecular
// fingerprint representations, built around a Tanimoto similarity kernel.
//
// The library reproduces the Photoswitch regression benchmark: fit a GP with
// a scaled Tanimoto covariance on fingerprint vectors, evaluate over repeated
// seeded train/test splits and report aggregate R², RMSE and MAE.
//
// # Quick Start
//
//	package main
//
//	import (
//	    "fmt"
//	    "log"
//
//	    "github.com/YuminosukeSato/molgp/benchmark"
//	    "github.com/YuminosukeSato/molgp/kernels"
//	)
//
//	func main() {
//	    // X: n×d fingerprint matrix, y: n labels (see examples/photoswitch)
//	    X, y := loadFingerprints()
//
//	    result, err := benchmark.Run(kernels.NewTanimoto(), X, y, benchmark.DefaultConfig())
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    fmt.Println(result)
//	}
//
// # Packages
//
//   - kernels: Tanimoto and RBF covariance functions with an output-scale wrapper
//   - gp: exact GP regressor (constant mean + scaled kernel + Gaussian noise)
//   - benchmark: seeded train/test splits and the multi-trial evaluation loop
//   - preprocessing: per-trial label standardization
//   - metrics: regression metrics and cross-trial summaries
//   - core/model, core/parallel, pkg/errors, pkg/log: shared infrastructure
package molgp
