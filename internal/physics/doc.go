// Package physics provides population dynamics models for simulation.
//
// [LotkaVolterra] implements the [dynamo.System] interface with the classic
// predator-prey equations. [Derivative] is the same right-hand side as a
// plain function over scalars, for callers that do not need the state
// vector machinery.
//
// The model also implements [dynamo.Configurable] for runtime parameter
// adjustment and [dynamo.Hamiltonian], whose Energy is the conserved
// quantity of the system.
//
// # Invariant Drift
//
// Exact trajectories keep Energy constant, so its drift measures
// integration error:
//
//	lv := physics.NewLotkaVolterra(physics.DefaultParams())
//	v0 := lv.Energy(dynamo.State{50, 10})
//
// Populations are never clamped. Near extinction a numerical trajectory can
// dip below zero; that is a property of the continuous model.
package physics
