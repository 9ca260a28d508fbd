package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const testSeed = `
stores:
  - id: store-1
    name: Counterpoint Downtown
    city: Athens
customers:
  - id: cust-1
    first_name: Ada
    last_name: Byron
vendors:
  - id: vend-1
    name: Acme Wholesale
items:
  - upc: "00000000000001"
    name: Granola Bar
    category: food
inventory:
  - upc: "00000000000001"
    store_id: store-1
    quantity: 10
    price: "2.00"
`

// execRoot runs the root command with the given args and returns combined
// output. Commands open and close the database themselves, so sequential
// invocations against the same path behave like separate processes.
func execRoot(t *testing.T, args ...string) (string, error) {
	t.Helper()

	buf := &bytes.Buffer{}
	cmd := NewRootCommand()
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

// seededDB writes the default seed document into a fresh database and
// returns the database path.
func seededDB(t *testing.T) string {
	t.Helper()
	return seededDBWith(t, testSeed)
}

func seededDBWith(t *testing.T, doc string) string {
	t.Helper()

	dir := t.TempDir()
	seedPath := filepath.Join(dir, "seed.yaml")
	require.NoError(t, os.WriteFile(seedPath, []byte(doc), 0o644))

	dbPath := filepath.Join(dir, "pos.db")
	out, err := execRoot(t, "seed", "--db", dbPath, seedPath)
	require.NoError(t, err, "seeding failed: %s", out)

	return dbPath
}
