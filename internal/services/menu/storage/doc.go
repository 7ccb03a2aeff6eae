// Package storage declares read contracts for published menu data.
//
// The menu resolution engine only ever reads through these interfaces; record
// creation and mutation belong to the curation surfaces that own the store.
package storage
