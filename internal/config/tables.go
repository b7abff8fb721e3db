package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	_ "embed"

	"github.com/santhosh-tekuri/jsonschema/v6"

	"github.com/philiaspace/kotoba/internal/bands"
	"github.com/philiaspace/kotoba/internal/levels"
)

//go:embed tables_schema.json
var tablesSchemaJSON []byte

var (
	schemaOnce     sync.Once
	compiledSchema *jsonschema.Schema
	schemaErr      error
)

// tablesFile is the JSON override document shape.
type tablesFile struct {
	Bands             []bandOverride `json:"bands"`
	AdvanceThresholds []int          `json:"advanceThresholds"`
	RefreshCaps       []int          `json:"refreshCaps"`
	Levels            *levelsFile    `json:"levels"`
}

type bandOverride struct {
	ID             int     `json:"id"`
	MinRank        int     `json:"minRank"`
	MaxRank        int     `json:"maxRank"`
	Ratio          float64 `json:"ratio"`
	SparsityFactor float64 `json:"sparsityFactor"`
}

type levelsFile struct {
	JLPT     []entryOverride            `json:"jlpt"`
	CEFR     []entryOverride            `json:"cefr"`
	Age      []entryOverride            `json:"age"`
	Literacy map[string][]entryOverride `json:"literacy"`
}

type entryOverride struct {
	Min   int    `json:"min"`
	Label string `json:"label"`
}

// LoadTables returns the band and level tables, applying the JSON
// override file when one is configured. Overrides are validated against
// an embedded schema first, then against the tables' own invariants.
func (c *Config) LoadTables() (bands.Table, levels.Tables, error) {
	table := bands.Default()
	lv := levels.Default()

	if c.Tables.Path == "" {
		return table, lv, nil
	}

	raw, err := os.ReadFile(c.Tables.Path)
	if err != nil {
		return table, lv, fmt.Errorf("tables: read %s: %w", c.Tables.Path, err)
	}

	if err := validateTables(raw); err != nil {
		return table, lv, fmt.Errorf("tables: %s: %w", c.Tables.Path, err)
	}

	var file tablesFile
	if err := json.Unmarshal(raw, &file); err != nil {
		return table, lv, fmt.Errorf("tables: parse %s: %w", c.Tables.Path, err)
	}

	if len(file.Bands) > 0 {
		table.Bands = make([]bands.Band, len(file.Bands))
		for i, b := range file.Bands {
			table.Bands[i] = bands.Band{
				ID:             b.ID,
				MinRank:        b.MinRank,
				MaxRank:        b.MaxRank,
				Ratio:          b.Ratio,
				SparsityFactor: b.SparsityFactor,
			}
		}
	}
	if len(file.AdvanceThresholds) > 0 {
		table.AdvanceThresholds = file.AdvanceThresholds
	}
	if len(file.RefreshCaps) > 0 {
		table.RefreshCaps = file.RefreshCaps
	}
	if file.Levels != nil {
		applyLevels(&lv, file.Levels)
	}

	if err := table.Validate(); err != nil {
		return table, lv, fmt.Errorf("tables: %s: %w", c.Tables.Path, err)
	}
	if err := lv.Validate(); err != nil {
		return table, lv, fmt.Errorf("tables: %s: %w", c.Tables.Path, err)
	}

	return table, lv, nil
}

func applyLevels(lv *levels.Tables, file *levelsFile) {
	if len(file.JLPT) > 0 {
		lv.JLPT = toEntries(file.JLPT)
	}
	if len(file.CEFR) > 0 {
		lv.CEFR = toEntries(file.CEFR)
	}
	if len(file.Age) > 0 {
		lv.Age = toEntries(file.Age)
	}
	for bank, entries := range file.Literacy {
		lv.Literacy[bank] = toEntries(entries)
	}
}

func toEntries(in []entryOverride) []levels.Entry {
	out := make([]levels.Entry, len(in))
	for i, e := range in {
		out[i] = levels.Entry{Min: e.Min, Label: e.Label}
	}
	return out
}

// validateTables checks the raw document against the embedded schema.
func validateTables(raw []byte) error {
	schemaOnce.Do(func() {
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(tablesSchemaJSON))
		if err != nil {
			schemaErr = fmt.Errorf("parse embedded schema: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource("schema://tables.json", doc); err != nil {
			schemaErr = fmt.Errorf("add resource: %w", err)
			return
		}
		compiledSchema, schemaErr = c.Compile("schema://tables.json")
	})
	if schemaErr != nil {
		return schemaErr
	}

	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}
	if err := compiledSchema.Validate(parsed); err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}
	return nil
}
