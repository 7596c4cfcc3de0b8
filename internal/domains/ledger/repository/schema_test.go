package repository

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The repository scans a fixed column list; every one of those columns must
// exist in the shipped DDL or every read fails with an undefined-column
// error at runtime.
func TestIssueColumnsExistInMigration(t *testing.T) {
	ddl, err := os.ReadFile(filepath.Join("..", "..", "..", "..", "migrations", "0001_init.sql"))
	require.NoError(t, err)

	table := regexp.MustCompile(`(?s)CREATE TABLE IF NOT EXISTS book_issues \((.*?)\);`).
		FindSubmatch(ddl)
	require.NotNil(t, table, "book_issues DDL not found in migration")
	tableBody := string(table[1])

	for _, column := range strings.Split(issueColumns, ",") {
		column = strings.TrimSpace(column)
		require.NotEmpty(t, column)
		assert.Regexp(t, `(?m)^\s+`+column+`\s`, tableBody,
			"column %q selected by the repository is missing from book_issues", column)
	}
}
