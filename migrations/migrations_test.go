package migrations

import (
	"io/fs"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Audit rows must outlive the accounts they describe: the deletion event is
// written after the users row is gone, so logs.user_id must not be
// constrained to an existing user.
func TestLogsTableAllowsDanglingUserIDs(t *testing.T) {
	data, err := fs.ReadFile(FS, "000001_init.up.sql")
	require.NoError(t, err)
	schema := string(data)

	assert.Contains(t, schema, "user_id BIGINT")
	assert.NotContains(t, schema, "REFERENCES users")
}

func TestEveryUpMigrationHasADown(t *testing.T) {
	entries, err := fs.ReadDir(FS, ".")
	require.NoError(t, err)

	ups := map[string]bool{}
	downs := map[string]bool{}
	for _, e := range entries {
		name := e.Name()
		switch {
		case strings.HasSuffix(name, ".up.sql"):
			ups[strings.TrimSuffix(name, ".up.sql")] = true
		case strings.HasSuffix(name, ".down.sql"):
			downs[strings.TrimSuffix(name, ".down.sql")] = true
		}
	}

	require.NotEmpty(t, ups)
	for name := range ups {
		assert.True(t, downs[name], "missing down migration for %s", name)
	}
}
