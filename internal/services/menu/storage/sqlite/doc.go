// Package sqlite provides SQLite-backed persistence for published menu data.
package sqlite
