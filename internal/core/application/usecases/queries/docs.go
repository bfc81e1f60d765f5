// Package queries contains the read side of the storefront. Handlers run raw SQL
// through gorm against the tables written by the postgres adapters and return flat
// view structs; they never load aggregates.
package queries
