// Package tune performs a one-dimensional grid search over the neighbor
// count k.
//
// Every candidate is cross-validated against the same fold assignment,
// generated once per Tune call, so candidates are compared on identical
// splits. A candidate that fails is recorded and left out of the curve; the
// sweep continues. Picking the final k from the curve is left to the caller;
// Select implements the usual "smallest k near the best mean" heuristic.
package tune
