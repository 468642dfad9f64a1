// Package widgets contains dumb render primitives.
//
// Allowed here:
// - stateless drawing/composition helpers (boxes, lists, tables, line charts, stacks, popup overlay)
//
// Not allowed here:
// - key handling, workflow transitions, or anything that performs I/O
package widgets
