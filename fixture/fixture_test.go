package fixture

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/knode-ai-open-source/sql-parser-library/exprnode"
)

const sampleFixture = `{
  "table": {
    "name": "orders",
    "columns": [
      {"name": "id", "type": "int"},
      {"name": "status", "type": "string"},
      {"name": "total", "type": "double"}
    ],
    "rows": [
      {"id": 1, "status": "open", "total": 12.5},
      {"id": 2, "status": "closed", "total": 30},
      {"id": 3, "status": "open", "total": null}
    ]
  },
  "queries": [
    {"sql": "status = 'open'", "expected": ["1", "3"]},
    {"sql": "total > 20", "expected": "2"}
  ]
}`

const sampleFixtureYAML = `
table:
  name: orders
  columns:
    - name: id
      type: int
    - name: status
      type: string
    - name: total
      type: double
  rows:
    - id: 1
      status: open
      total: 12.5
    - id: 2
      status: closed
      total: 30
queries:
  - sql: "status = 'open'"
    expected: ["1"]
  - sql: "total > 20"
    expected: "2"
`

func writeFixture(t *testing.T, content string) string {
	t.Helper()
	return writeFixtureNamed(t, "orders.json", content)
}

func writeFixtureNamed(t *testing.T, name, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadParsesTableAndQueries(t *testing.T) {
	suite, err := Load(writeFixture(t, sampleFixture))
	require.NoError(t, err)
	require.Equal(t, "orders", suite.Table.Name)
	require.Len(t, suite.Table.Rows, 3)
	require.Len(t, suite.Queries, 2)
}

func TestExpectedIDsAcceptsBareString(t *testing.T) {
	suite, err := Load(writeFixture(t, sampleFixture))
	require.NoError(t, err)
	require.Equal(t, ExpectedIDs{"2"}, suite.Queries[1].Expected)
}

func TestNewContextRegistersColumnsByDeclaredKind(t *testing.T) {
	suite, err := Load(writeFixture(t, sampleFixture))
	require.NoError(t, err)
	ctx := suite.Table.NewContext()
	ctx.CurrentRow = suite.Table.Rows[0]

	col, ok := ctx.LookupColumn("status")
	require.True(t, ok, "expected a \"status\" column to be registered")
	node := col.Getter(ctx)
	require.Equal(t, exprnode.String, node.Kind)
	require.Equal(t, "open", node.StringValue)
}

func TestRowValueNullFieldFoldsToNullOfColumnKind(t *testing.T) {
	suite, err := Load(writeFixture(t, sampleFixture))
	require.NoError(t, err)
	ctx := suite.Table.NewContext()
	ctx.CurrentRow = suite.Table.Rows[2] // total: null

	col, ok := ctx.LookupColumn("total")
	require.True(t, ok)
	node := col.Getter(ctx)
	require.True(t, node.IsNull, "expected a JSON null field to lower to a null node")
	require.Equal(t, exprnode.Double, node.Kind, "expected the null to carry the column's own declared kind")
}

func TestColumnKindDefaultsToString(t *testing.T) {
	require.Equal(t, exprnode.String, columnKind(""))
	require.Equal(t, exprnode.String, columnKind("weird_type"))
}

func TestLoadDirFindsAllJSONFixtures(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.json"), []byte(sampleFixture), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.json"), []byte(sampleFixture), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "readme.txt"), []byte("ignore me"), 0o644))

	suites, errs := LoadDir(dir)
	require.Empty(t, errs)
	require.Len(t, suites, 2, "expected the non-JSON file to be skipped")
}

func TestLoadMissingFileReturnsError(t *testing.T) {
	_, err := Load("/nonexistent/path/does-not-exist.json")
	require.Error(t, err)
}

func TestLoadParsesYAMLFixture(t *testing.T) {
	suite, err := Load(writeFixtureNamed(t, "orders.yaml", sampleFixtureYAML))
	require.NoError(t, err)
	require.Equal(t, "orders", suite.Table.Name)
	require.Len(t, suite.Table.Rows, 2)
	require.Len(t, suite.Queries, 2)
	require.Equal(t, ExpectedIDs{"2"}, suite.Queries[1].Expected, "a bare YAML scalar should unmarshal the same way a bare JSON string does")
}

func TestLoadDirFindsYAMLAndJSONFixtures(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.json"), []byte(sampleFixture), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.yaml"), []byte(sampleFixtureYAML), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "c.yml"), []byte(sampleFixtureYAML), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "readme.txt"), []byte("ignore me"), 0o644))

	suites, errs := LoadDir(dir)
	require.Empty(t, errs)
	require.Len(t, suites, 3, "expected every json/yaml/yml fixture to load and the .txt file to be skipped")
}
