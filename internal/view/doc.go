// Package view contains the presentation units of the storefront.
//
// Every unit implements Renderable for its own snapshot type: Render copies
// the fields that are set onto the unit's surface and returns a Handle. The
// surface survives between calls, so a field omitted from one snapshot keeps
// its previous value. Gesture methods (Click, Press, Submit, ...) only
// publish events; units hold no business rules and never read the stores.
//
// Allowed here:
// - surface state, lipgloss styling, gesture -> event translation
//
// Not allowed here:
// - validation, cart or customer decisions, network calls
package view
