// Package fixture loads a test-fixture format (table/columns/rows plus a
// list of queries and expected matching row ids) and builds a
// ready-to-query *sqlctx.Context from it. A fixture file is either JSON or
// YAML; Load picks the decoder by file extension so the same Suite shape
// serves both.
package fixture

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cast"
	"gopkg.in/yaml.v2"

	"github.com/knode-ai-open-source/sql-parser-library/dateutil"
	"github.com/knode-ai-open-source/sql-parser-library/exprnode"
	"github.com/knode-ai-open-source/sql-parser-library/specs/builtin"
	"github.com/knode-ai-open-source/sql-parser-library/sqlctx"
)

// Column is one {name, type} pair from a fixture table's schema.
type Column struct {
	Name string `json:"name" yaml:"name"`
	Type string `json:"type" yaml:"type"`
}

// Table mirrors the fixture's "table" object: a name, an optional column
// schema, and a set of row objects kept as raw maps so any extra fields
// beyond the declared schema are still reachable by name.
type Table struct {
	Name    string                   `json:"name" yaml:"name"`
	Columns []Column                 `json:"columns" yaml:"columns"`
	Rows    []map[string]interface{} `json:"rows" yaml:"rows"`
}

// ExpectedIDs accepts either an array of strings or a single bare string,
// the same convention a fixture query's "expected" field follows in both
// the JSON and YAML encodings (an array vs. a lone string meaning one
// expected id).
type ExpectedIDs []string

func (e *ExpectedIDs) UnmarshalJSON(data []byte) error {
	var arr []string
	if err := json.Unmarshal(data, &arr); err == nil {
		*e = arr
		return nil
	}
	var single string
	if err := json.Unmarshal(data, &single); err != nil {
		return fmt.Errorf("fixture: expected must be a string or array of strings: %w", err)
	}
	*e = ExpectedIDs{single}
	return nil
}

// UnmarshalYAML accepts the same string-or-array shape as UnmarshalJSON, for
// fixture files written in YAML.
func (e *ExpectedIDs) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var arr []string
	if err := unmarshal(&arr); err == nil {
		*e = arr
		return nil
	}
	var single string
	if err := unmarshal(&single); err != nil {
		return fmt.Errorf("fixture: expected must be a string or array of strings: %w", err)
	}
	*e = ExpectedIDs{single}
	return nil
}

// Query mirrors one entry of the fixture's "queries" array.
type Query struct {
	SQL      string      `json:"sql" yaml:"sql"`
	Expected ExpectedIDs `json:"expected" yaml:"expected"`
}

// Suite is one parsed fixture file: {table:{...}, queries:[...]}.
type Suite struct {
	Table   Table   `json:"table" yaml:"table"`
	Queries []Query `json:"queries" yaml:"queries"`

	// Path is the source file this suite was loaded from; empty when the
	// Suite was built in memory rather than via Load/LoadDir.
	Path string `json:"-" yaml:"-"`
}

// Load parses a single fixture file. A ".yaml" or ".yml" extension selects
// the YAML decoder; everything else is parsed as JSON.
func Load(path string) (*Suite, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var s Suite
	if isYAMLPath(path) {
		if err := yaml.Unmarshal(data, &s); err != nil {
			return nil, fmt.Errorf("fixture: %s: %w", path, err)
		}
	} else if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("fixture: %s: %w", path, err)
	}
	s.Path = path
	return &s, nil
}

func isYAMLPath(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}

// LoadDir walks dir recursively and loads every ".json", ".yaml" or ".yml"
// file as a suite. Files that fail to parse are reported in the returned
// error slice rather than aborting the walk, so one malformed fixture
// doesn't hide the rest.
func LoadDir(dir string) ([]*Suite, []error) {
	var suites []*Suite
	var errs []error
	filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			errs = append(errs, err)
			return nil
		}
		if d.IsDir() {
			return nil
		}
		ext := strings.ToLower(filepath.Ext(path))
		if ext != ".json" && ext != ".yaml" && ext != ".yml" {
			return nil
		}
		s, err := Load(path)
		if err != nil {
			errs = append(errs, err)
			return nil
		}
		suites = append(suites, s)
		return nil
	})
	return suites, errs
}

// columnKind maps a fixture column's declared type string to an
// exprnode.Kind via a typestr switch (unknown or
// absent types default to STRING).
func columnKind(typeName string) exprnode.Kind {
	switch strings.ToUpper(typeName) {
	case "INT", "INTEGER":
		return exprnode.Int
	case "DOUBLE", "FLOAT", "DECIMAL", "NUMERIC":
		return exprnode.Double
	case "DATETIME":
		return exprnode.Datetime
	case "BOOL", "BOOLEAN":
		return exprnode.Bool
	default:
		return exprnode.String
	}
}

// NewContext builds a context with every built-in spec and keyword
// installed, plus one column per entry in t.Columns, each reading its
// value out of ctx.CurrentRow at evaluation time.
// Callers set ctx.CurrentRow to one of t.Rows before evaluating a query
// against that row.
func (t *Table) NewContext() *sqlctx.Context {
	ctx := sqlctx.New()
	builtin.InstallDefaults(ctx)
	for _, col := range t.Columns {
		name := col.Name
		kind := columnKind(col.Type)
		ctx.RegisterColumn(name, kind, func(c *sqlctx.Context) *exprnode.Node {
			return rowValue(c, name, kind)
		})
	}
	return ctx
}

// rowValue extracts column name's value out of ctx.CurrentRow (a
// map[string]interface{} decoded from one fixture row), switching on kind.
// A field absent from the row, or JSON null, folds to a null node of the
// column's own declared kind rather than always falling back to a null
// STRING regardless of the column's type (see DESIGN.md).
func rowValue(ctx *sqlctx.Context, name string, kind exprnode.Kind) *exprnode.Node {
	row, _ := ctx.CurrentRow.(map[string]interface{})
	v, ok := row[name]
	if !ok || v == nil {
		return exprnode.NewNullOfKind(kind)
	}
	switch kind {
	case exprnode.Int:
		return exprnode.NewInt(int64(toFloat(v)), false)
	case exprnode.Double:
		return exprnode.NewDouble(toFloat(v), false)
	case exprnode.Datetime:
		return datetimeValue(v)
	case exprnode.Bool:
		b, _ := v.(bool)
		return exprnode.NewBool(b, false)
	default:
		s := toStringValue(v)
		return exprnode.NewString(s, s == "")
	}
}

// toFloat and toStringValue lean on spf13/cast for its permissive
// any-scalar-to-number-or-string coercion, rather than hand-rolling a type
// switch per conversion.
func toFloat(v interface{}) float64 {
	f, _ := cast.ToFloat64E(v)
	return f
}

func toStringValue(v interface{}) string {
	s, _ := cast.ToStringE(v)
	return s
}

// datetimeValue handles the DATETIME column case: a string
// containing '-' or of length 4 (a bare year) is parsed as a date; any
// other string, or a bare JSON number, is treated as a Unix epoch directly.
func datetimeValue(v interface{}) *exprnode.Node {
	switch t := v.(type) {
	case string:
		if strings.Contains(t, "-") || len(t) == 4 {
			epoch, ok := dateutil.ParseDatetime(t)
			if !ok {
				return exprnode.NewDatetime(0, true)
			}
			return exprnode.NewDatetime(epoch, false)
		}
		epoch, _ := strconv.ParseInt(t, 10, 64)
		return exprnode.NewDatetime(epoch, epoch == 0)
	case float64:
		epoch := int64(t)
		return exprnode.NewDatetime(epoch, epoch == 0)
	default:
		return exprnode.NewDatetime(0, true)
	}
}
