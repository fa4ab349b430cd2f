// Package scheduling finds the earliest slot in the week that works for a set
// of invitees.
//
// Two strategies are available:
//
//   - anytime: walks the week one day at a time from Sunday 00:00 and asks the
//     repository whether the candidate conflicts for any invitee.
//   - workhours: merges every invitee's busy time into an interval tree and
//     queries it once for a slot between Monday 09:00 and Friday 17:00.
//
// Strategies only read from the repository. Scheduler runs a strategy and
// then hands the result to the planner for insertion.
package scheduling
