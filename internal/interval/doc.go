// Package interval provides week-minute intervals and the busy interval tree
// used by the work hours search.
//
// Intervals are plain values on the absolute week-minute axis. An interval
// may extend past the end of the week (up to two weeks) to express an event
// that wraps back around to an earlier point in the week.
//
// BusyTree merges busy intervals into an unbalanced binary tree stored in an
// arena. Nodes widen in place when an overlapping interval is inserted, and
// the tree is rebuilt for every search.
package interval
