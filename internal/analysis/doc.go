// Package analysis provides post-processing of sampled trajectories.
//
//   - [DominantPeriod]: oscillation period from the power spectrum
//   - [PreyPredatorPortrait]: prey vs predator phase plot
//   - [PoincareSection]: crossings of a threshold, e.g. the prey equilibrium
//   - [LocalMaxima], [PeakDiagramToASCII]: peak heights across a sweep
//
// # Period
//
// The period of a cycle can be read off the spectrum or off successive
// crossings of the equilibrium line:
//
//	p := analysis.DominantPeriod(result.Prey(), result.Times[1]-result.Times[0])
//	q := analysis.CrossingPeriod(analysis.PoincareSection(result, 0, eq[0], 1))
package analysis
