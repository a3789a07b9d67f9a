// Package psqlbuilder provides squirrel builders pre-configured for PostgreSQL
// placeholders ($1, $2, ...). All repositories build their queries through it.
package psqlbuilder

import "github.com/Masterminds/squirrel"

var builder = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

// Select starts a SELECT query with PostgreSQL placeholders.
func Select(columns ...string) squirrel.SelectBuilder {
	return builder.Select(columns...)
}

// Insert starts an INSERT query with PostgreSQL placeholders.
func Insert(table string) squirrel.InsertBuilder {
	return builder.Insert(table)
}

// Update starts an UPDATE query with PostgreSQL placeholders.
func Update(table string) squirrel.UpdateBuilder {
	return builder.Update(table)
}

// Delete starts a DELETE query with PostgreSQL placeholders.
func Delete(table string) squirrel.DeleteBuilder {
	return builder.Delete(table)
}
