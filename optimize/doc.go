// Package optimize picks the best set of non-overlapping runs, one per train,
// by parallel branch and bound.
//
// Search:
//
//   - Trains are assigned in order. Each train's candidates are sorted by
//     their upper-bound value (Valuer.RouteMaxValue) and followed by a
//     "no route" choice worth 0, so a train may run nothing when every
//     candidate clashes with the runs already chosen.
//   - Bound: chosen upper bounds + the candidate's upper bound + the best
//     upper bound of every remaining train, overlap ignored. When the bound
//     does not beat the best total found anywhere, the candidate and all of
//     its later siblings are abandoned.
//   - At a leaf the real total comes from Valuer.RouteSetValues, which may
//     add bonuses that depend on the whole set.
//   - Overlap is tested on per-run edge bitsets.
//
// Concurrency:
//
//	The first train's choices are cut into contiguous chunks and searched by
//	an errgroup of Options.Workers goroutines. The best total found so far is
//	one atomic.Int64 shared by every worker; each worker keeps its own best
//	set and the results are merged at the end.
//
// Limits:
//
//	TimeLimit and NodeLimit stop the search early. The best set found so far
//	is returned with Result.Exhaustive false. Cancelling the context returns
//	the context's error instead.
//
// Complexity:
//
//   - Worst case O(Π (c_i + 1)) leaves for c_i candidates of train i.
//   - Memory: O(T + Σ c_i · E/64) for T trains and E distinct edges.
//
// Errors:
//
//   - ErrNoTrains: no candidate lists were given.
//   - context errors and Valuer errors are returned unchanged.
package optimize
