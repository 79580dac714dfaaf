// Package widgets contains dumb render primitives for the shop screen.
//
// Allowed here:
// - stateless drawing/composition helpers (pane chrome, stacks, popup overlay compositor, key footer)
//
// Not allowed here:
// - key handling, workflow state, store access
package widgets
