// Package editors provides cell editors for the grid: a text input, a
// filtered select with a popup list and a date input.
//
// Each constructor returns a grid.EditorFactory. The grid builds one editor
// per edit session, routes keys to it and reads the outcome through the
// EditorContext Save and Cancel callbacks.
package editors
