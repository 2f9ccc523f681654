package core

import (
	"fmt"
	"os"
	"strings"

	"golang.org/x/text/cases"
	"gopkg.in/yaml.v3"
)

// Field is a canonical dataset column name.
type Field string

const (
	FieldSourceURL       Field = "source_url"
	FieldDateAdded       Field = "date_added"
	FieldImportanceScore Field = "importance_score"
	FieldCountry         Field = "country"
	FieldSummary         Field = "summary"
)

// FieldSpec declares a canonical column and the header spellings that map to it.
type FieldSpec struct {
	Name     Field
	Aliases  []string
	Required bool
}

// defaultFieldSpecs is the declared alias table. The canonical name is
// always accepted; aliases are compared after NormalizeHeader.
var defaultFieldSpecs = []FieldSpec{
	{Name: FieldSourceURL, Required: true, Aliases: []string{"SOURCEURL", "Source URL", "sourceurl", "url"}},
	{Name: FieldDateAdded, Required: true, Aliases: []string{"DATEADDED", "Date Added", "dateadded"}},
	{Name: FieldImportanceScore, Required: true, Aliases: []string{"ImportanceScore_2", "ImportanceScore", "Importance Score", "importance"}},
	{Name: FieldCountry, Required: true, Aliases: []string{"Country"}},
	{Name: FieldSummary, Required: true, Aliases: []string{"Summary"}},
}

// Schema resolves raw header rows to canonical fields.
// A Schema is immutable after construction and safe for concurrent use.
type Schema struct {
	fields []FieldSpec
	lookup map[string]Field // normalized spelling -> field
}

// DefaultSchema returns the built-in alias table.
func DefaultSchema() *Schema {
	s, err := NewSchema(defaultFieldSpecs)
	if err != nil {
		panic(fmt.Sprintf("core: default schema: %v", err))
	}
	return s
}

// NewSchema builds a schema from field specs. It fails when two fields claim
// the same normalized spelling.
func NewSchema(specs []FieldSpec) (*Schema, error) {
	s := &Schema{
		fields: make([]FieldSpec, 0, len(specs)),
		lookup: make(map[string]Field),
	}

	for _, spec := range specs {
		if spec.Name == "" {
			return nil, fmt.Errorf("schema: field with empty name")
		}
		spellings := append([]string{string(spec.Name)}, spec.Aliases...)
		for _, sp := range spellings {
			key := NormalizeHeader(sp)
			if key == "" {
				continue
			}
			if owner, ok := s.lookup[key]; ok && owner != spec.Name {
				return nil, fmt.Errorf("schema: alias %q claimed by both %s and %s", sp, owner, spec.Name)
			}
			s.lookup[key] = spec.Name
		}
		spec.Aliases = append([]string(nil), spec.Aliases...)
		s.fields = append(s.fields, spec)
	}

	return s, nil
}

// Columns returns the canonical column names in schema order.
func (s *Schema) Columns() []string {
	cols := make([]string, len(s.fields))
	for i, f := range s.fields {
		cols[i] = string(f.Name)
	}
	return cols
}

// Field returns the canonical field a raw header resolves to.
func (s *Schema) Field(header string) (Field, bool) {
	f, ok := s.lookup[NormalizeHeader(header)]
	return f, ok
}

// Extend returns a copy of s with extra aliases per canonical field.
func (s *Schema) Extend(aliases map[string][]string) (*Schema, error) {
	specs := make([]FieldSpec, len(s.fields))
	copy(specs, s.fields)

	for name, extra := range aliases {
		idx := -1
		for i, spec := range specs {
			if NormalizeHeader(string(spec.Name)) == NormalizeHeader(name) {
				idx = i
				break
			}
		}
		if idx < 0 {
			return nil, fmt.Errorf("schema: unknown field %q", name)
		}
		specs[idx].Aliases = append(append([]string(nil), specs[idx].Aliases...), extra...)
	}

	return NewSchema(specs)
}

// HeaderIndex maps canonical fields to column positions in a file.
type HeaderIndex map[Field]int

// Cell returns the raw value of field f in row, or "" when the row is short
// or the field is not present.
func (h HeaderIndex) Cell(row []string, f Field) string {
	i, ok := h[f]
	if !ok || i >= len(row) {
		return ""
	}
	return row[i]
}

// Resolve maps a header row to canonical fields. The first header resolving
// to a field wins; unknown headers are ignored. Missing required fields
// produce a *SchemaMismatchError.
func (s *Schema) Resolve(header []string) (HeaderIndex, error) {
	idx := make(HeaderIndex, len(s.fields))
	for i, h := range header {
		f, ok := s.Field(h)
		if !ok {
			continue
		}
		if _, seen := idx[f]; !seen {
			idx[f] = i
		}
	}

	var missing []string
	for _, spec := range s.fields {
		if _, ok := idx[spec.Name]; !ok && spec.Required {
			missing = append(missing, string(spec.Name))
		}
	}
	if len(missing) > 0 {
		return nil, &SchemaMismatchError{
			Missing: missing,
			Found:   append([]string(nil), header...),
		}
	}

	return idx, nil
}

// NormalizeHeader canonicalizes a header cell: export artifacts and outer
// whitespace are removed, inner whitespace runs collapse to one space and
// the result is Unicode case folded.
func NormalizeHeader(h string) string {
	h = strings.Join(strings.Fields(CleanCell(h)), " ")
	return cases.Fold().String(h)
}

// schemaFile is the YAML layout of SCHEMA_FILE:
//
//	aliases:
//	  source_url: [link, article url]
//	  importance_score: [score]
type schemaFile struct {
	Aliases map[string][]string `yaml:"aliases"`
}

// LoadSchemaFile returns the default schema extended with the aliases
// declared in a YAML file. An empty path returns the default schema.
func LoadSchemaFile(path string) (*Schema, error) {
	if path == "" {
		return DefaultSchema(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read schema file: %w", err)
	}

	var sf schemaFile
	if err := yaml.Unmarshal(data, &sf); err != nil {
		return nil, fmt.Errorf("parse schema file %s: %w", path, err)
	}

	s, err := DefaultSchema().Extend(sf.Aliases)
	if err != nil {
		return nil, fmt.Errorf("schema file %s: %w", path, err)
	}
	return s, nil
}
