// Package dynamo provides core simulation primitives for dynamical systems.
//
// The package defines the fundamental interfaces and types for numerical
// simulation of ordinary differential equations (ODEs):
//
//   - [State]: vector representing system state
//   - [System]: interface for ODE systems (dX/dt = f(X, u, t))
//   - [Integrator]: numerical stepping interface
//   - [Controller]: feedback controller interface
//   - [Solve]: integrates a system and samples it on a fixed time grid
//   - [Simulator]: orchestrates runs with metrics and observers
//
// # Example
//
//	lv := physics.NewLotkaVolterra(physics.DefaultParams())
//	sim := dynamo.New(lv, integrators.NewRK45(), control.NewNone(2))
//	result, _ := sim.Run(ctx, dynamo.State{50, 10}, dynamo.DefaultConfig())
//	prey, predator := result.Prey(), result.Predator()
//
// The caller-visible sample grid is independent of the internal step size:
// integrators usually take many steps between two samples.
//
// # Thread Safety
//
// Simulator and integrator instances are NOT thread-safe. Integrators keep
// scratch buffers between steps; give each run its own instances.
package dynamo
