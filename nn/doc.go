// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package nn provides a small trainable binary classifier: a feed-forward
// network with one hidden layer and one output layer of sigmoid units.
//
// # Overview
//
// This package contains:
//   - Network: NewNetwork, Train, Predict
//   - Building blocks: Neuron, Sigmoid, DerivSigmoid, MSE, Dot
//   - Persistence: Save and Load (YAML checkpoints)
//
// # Basic Usage
//
//	import "github.com/born-ml/tinynet/nn"
//
//	func main() {
//	    net, err := nn.NewNetwork(2, 2, 1)
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//
//	    data := [][]float64{{-2, -1}, {25, 6}, {17, 4}, {-15, -6}}
//	    labels := [][]float64{{1}, {0}, {0}, {1}}
//
//	    if err := net.Train(data, labels, 1000); err != nil {
//	        log.Fatal(err)
//	    }
//
//	    out, err := net.Predict([]float64{-7, -3}) // ≈ 1
//	}
//
// # Training
//
// Training is online gradient descent: the weights are updated after every
// sample, in the order given, with no shuffling or batching. Gradients are
// derived by hand for this exact architecture; there is no autodiff.
//
// Every update computes brand-new layers. Train adopts the final result, so
// the Network a caller holds changes only when Train returns successfully.
//
// # Errors
//
// Vectors whose length does not match the network are rejected with an error
// matching ErrShapeMismatch. Nothing is truncated or padded.
package nn
