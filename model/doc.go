// Package model defines the core data types shared by the databook pipeline:
// positioned spans and lines as produced by layout extraction, reconstructed
// rows and column boundaries, labeled rows, table regions, and the final
// Record handed to persistence.
package model
