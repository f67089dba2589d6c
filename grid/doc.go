// Package grid is a virtualized, editable data grid for Bubble Tea.
//
// The grid renders a frozen section (row-selection checkboxes and the
// columns before the frozen index) next to a horizontally scrollable
// section, and only ever draws the rows inside the visible window. Columns
// are resized by dragging the separator right of a header cell, or sized to
// their content with a double click. All state lives in a per-grid
// store.Store.
package grid
