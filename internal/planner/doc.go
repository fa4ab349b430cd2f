// Package planner is the in-memory calendar repository.
//
// It holds users and their weekly schedules, enforces the event invariants,
// and decides whether two events collide. The scheduling package reads from
// it through Users and HasConflict; everything that writes goes through
// Planner so that schedules stay sorted and conflict free for their hosts.
//
// # Conflict policy
//
// When an event is added, a time or name conflict in the host's schedule is
// an error. A conflict in any other invitee's schedule only means that the
// invitee does not receive the event.
package planner
