package optimizer

import "errors"

// ErrInfeasibleHorizon means the required final level cannot be reached
// from the initial level within the given horizon under the adjacency and
// grid constraints.
var ErrInfeasibleHorizon = errors.New("optimizer: final level is unreachable from the initial level over this horizon")

// ErrInvariantViolation means the backward pass produced a decision table
// that forward reconstruction could not walk without leaving the grid; this
// should never happen and indicates a bug in the DP kernel itself.
var ErrInvariantViolation = errors.New("optimizer: invariant violated during schedule reconstruction")
