// Package control provides population controllers for the predator-prey
// model.
//
// Controllers implement the [dynamo.Controller] interface; the control
// vector is an additive flux on [prey, predator]:
//
//   - [None]: zero control, the unperturbed model
//   - [Harvest]: constant-effort harvesting of either species
//
// # Usage
//
//	h := control.NewHarvest(0.2, 0.1) // prey effort, predator effort
//	sim := dynamo.New(lv, integ, h)
//
// Controllers implementing [dynamo.Configurable] support live tuning.
package control
