package migrations

import (
	"io/fs"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const catalogMigration = "20250301120000_create_catalog_tables.sql"

// tableDDL extracts the CREATE TABLE block for a table from the migration.
func tableDDL(t *testing.T, sql, table string) string {
	t.Helper()

	marker := "CREATE TABLE " + table + " ("
	start := strings.Index(sql, marker)
	require.GreaterOrEqual(t, start, 0, "missing CREATE TABLE for %s", table)

	end := strings.Index(sql[start:], ");")
	require.GreaterOrEqual(t, end, 0, "unterminated CREATE TABLE for %s", table)

	return sql[start : start+end]
}

func readCatalogMigration(t *testing.T) string {
	t.Helper()
	data, err := fs.ReadFile(FS, catalogMigration)
	require.NoError(t, err)
	return string(data)
}

func TestCatalogSchemaColumns(t *testing.T) {
	t.Parallel()

	sql := readCatalogMigration(t)

	// Description lives on books, categories and publishers; authors carry
	// only a name.
	for _, table := range []string{"books", "categories", "publishers"} {
		assert.Contains(t, tableDDL(t, sql, table), "description TEXT",
			"%s table must carry the nullable description column", table)
	}
	assert.NotContains(t, tableDDL(t, sql, "authors"), "description")

	books := tableDDL(t, sql, "books")
	for _, column := range []string{"author_id", "category_id", "publisher_id"} {
		assert.Contains(t, books, column+" BIGINT NOT NULL REFERENCES")
	}

	users := tableDDL(t, sql, "users")
	assert.Contains(t, users, "email TEXT NOT NULL UNIQUE")
	assert.Contains(t, users, "hashed_password TEXT NOT NULL")
	assert.Contains(t, users, "is_active BOOLEAN NOT NULL DEFAULT TRUE")
}

func TestCatalogSchemaCascades(t *testing.T) {
	t.Parallel()

	sql := readCatalogMigration(t)

	// Deleting an author, category or publisher must remove its books in
	// the same statement.
	books := tableDDL(t, sql, "books")
	assert.Equal(t, 3, strings.Count(books, "ON DELETE CASCADE"),
		"every book foreign key must cascade on parent deletion")
}

func TestCatalogSchemaUniqueNames(t *testing.T) {
	t.Parallel()

	sql := readCatalogMigration(t)

	for _, table := range []string{"authors", "categories", "publishers", "books"} {
		assert.Contains(t, tableDDL(t, sql, table), "name TEXT NOT NULL UNIQUE",
			"%s names must be unique", table)
	}
}
