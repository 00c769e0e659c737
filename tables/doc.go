// Package tables decides how many tables a page holds and turns labeled
// rows into final table records: detecting table boundaries from vertical
// gaps, splitting compound multi-table titles, and partitioning labeled
// rows into headers, data, and footnotes.
package tables
