// Package repository provides data access interfaces and PostgreSQL
// implementations for the article service.
//
// Repositories translate entity-level operations into SQL and carry no
// business rules. Absence is not an error at this layer: lookups return a nil
// entity (or false) when the row does not exist, and only storage faults are
// returned as errors, wrapped with context via fmt.Errorf and %w.
//
// All implementations are built over the DBTX interface so the same type
// serves both direct pool access and the per-request transaction handed out
// by the unit-of-work wrapper. Create and Update write immediately through
// the transaction without committing; commit and rollback belong exclusively
// to the HTTP-layer wrapper.
package repository

import (
	"github.com/pressroom/article-service/internal/database"
)

// DBTX is the database interface supporting both pool and transaction
// contexts. Repository constructors accept DBTX so a pgx.Tx from the request
// unit of work or a *database.DB pool can be used interchangeably.
type DBTX = database.DBTX
