// Package source schedules the per-publisher refresh cycles and owns the
// snapshots they produce.
//
// Each Source runs an independent fixed-interval loop: fetch the configured
// feeds concurrently, decode and merge them, derive the vehicle index, the
// arrival snapshot and the alert index, then swap the published references
// under a short-lived lock. A failed cycle leaves the previous snapshot in
// effect; the next tick is the retry mechanism.
package source
