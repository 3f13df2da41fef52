// Package orchestrator wires theme selection, the field group formatter and
// a markup renderer into a single Generate call, and exposes the formatter's
// administrative surface (settings form and summary) for the same theme.
package orchestrator
