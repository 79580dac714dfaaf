// Package checkout wires the stores and presentation units together.
//
// The Orchestrator subscribes to gesture and store events on the broker,
// drives the workflow table in state.go and renders views from store
// snapshots. Network work goes through a Scheduler so that the event loop
// never blocks; its continuation runs back on the loop.
//
// Allowed here:
// - step sequencing, button labels, order assembly
//
// Not allowed here:
// - terminal key handling (see internal/tui), HTTP details (see internal/apiclient)
package checkout
