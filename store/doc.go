// Package store implements the per-grid reactive state container.
//
// A Store is created once per grid instance and owns layout parameters, the
// data list, column definitions, row selection, sort parameters and scroll
// position. Actions are the only mutation path; each one runs atomically and
// recomputes every derived slice before it returns, so reads that follow an
// action never observe stale derived values. Listeners subscribe to the
// slices they render and are notified after the action completes.
package store
