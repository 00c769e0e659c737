// Package layout reconstructs a row/column grid from positioned text
// spans: grouping spans into rows by vertical proximity, deriving column
// boundaries from gaps in x-positions, and assigning span text into cells.
package layout
