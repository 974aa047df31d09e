// Package schema loads a directory of YAML JSON-Schema documents and
// validates .omd configuration files against them.
package schema

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/omdtools/omd/internal/domain"
	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"gopkg.in/yaml.v3"
)

const indexFile = "index.yaml"

// Validator implements domain.DocumentValidator over a compiled schema set.
type Validator struct {
	schemas  map[string]*jsonschema.Schema
	index    *domain.SchemaIndex
	warnings []string
	printer  *message.Printer
}

// indexDocument mirrors the schema directory's index.yaml layout.
type indexDocument struct {
	RepositorySchemas struct {
		TypeSpecific map[string]domain.SchemaRequirement `yaml:"type_specific_schemas"`
	} `yaml:"repository_schemas"`
}

// Load compiles every schema in schemasDir. A schema that fails to parse
// or compile is skipped with a warning rather than aborting the load, so
// one bad schema never blocks validating against the rest.
func Load(schemasDir string) (*Validator, error) {
	v := &Validator{
		schemas: map[string]*jsonschema.Schema{},
		printer: message.NewPrinter(language.English),
	}

	entries, err := os.ReadDir(schemasDir)
	if err != nil {
		return nil, fmt.Errorf("reading schema directory %s: %w", schemasDir, err)
	}

	v.index = v.loadIndex(filepath.Join(schemasDir, indexFile))

	var names []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || name == indexFile || !strings.HasSuffix(name, ".yaml") {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		schemaName := strings.TrimSuffix(name, ".yaml")
		compiled, err := compileSchema(filepath.Join(schemasDir, name))
		if err != nil {
			v.warnings = append(v.warnings, fmt.Sprintf("skipping schema %s: %v", name, err))
			continue
		}
		v.schemas[schemaName] = compiled
	}
	return v, nil
}

func compileSchema(path string) (*jsonschema.Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing: %w", err)
	}

	url := strings.TrimSuffix(filepath.Base(path), ".yaml") + ".schema.json"
	c := jsonschema.NewCompiler()
	if err := c.AddResource(url, doc); err != nil {
		return nil, fmt.Errorf("adding resource: %w", err)
	}
	compiled, err := c.Compile(url)
	if err != nil {
		return nil, fmt.Errorf("compiling: %w", err)
	}
	return compiled, nil
}

// loadIndex parses index.yaml. A missing or malformed index degrades to
// base-schema-only validation with a warning.
func (v *Validator) loadIndex(path string) *domain.SchemaIndex {
	data, err := os.ReadFile(path)
	if err != nil {
		v.warnings = append(v.warnings, fmt.Sprintf("schema index not available: %v", err))
		return nil
	}

	var doc indexDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		v.warnings = append(v.warnings, fmt.Sprintf("parsing %s: %v", indexFile, err))
		return nil
	}
	return &domain.SchemaIndex{Types: doc.RepositorySchemas.TypeSpecific}
}

// Index returns the parsed schema index; nil means base-schema-only.
func (v *Validator) Index() *domain.SchemaIndex {
	return v.index
}

// HasSchema reports whether a schema compiled successfully under that name.
func (v *Validator) HasSchema(name string) bool {
	_, ok := v.schemas[name]
	return ok
}

// Warnings lists schemas and index problems encountered at load time.
func (v *Validator) Warnings() []string {
	return v.warnings
}

// ValidateFile checks one YAML document against the named schema. An
// unreadable or unparseable document is invalid, not an error.
func (v *Validator) ValidateFile(path string, schema string) (bool, []string) {
	compiled, ok := v.schemas[schema]
	if !ok {
		return false, []string{fmt.Sprintf("no schema loaded for %q", schema)}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return false, []string{fmt.Sprintf("reading file: %v", err)}
	}
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return false, []string{fmt.Sprintf("parsing YAML: %v", err)}
	}

	if err := compiled.Validate(doc); err != nil {
		if ve, ok := err.(*jsonschema.ValidationError); ok {
			return false, v.flatten(ve)
		}
		return false, []string{err.Error()}
	}
	return true, nil
}

// flatten collects the leaf causes of a validation error as one message
// per failing location.
func (v *Validator) flatten(ve *jsonschema.ValidationError) []string {
	if len(ve.Causes) == 0 {
		loc := "/" + strings.Join(ve.InstanceLocation, "/")
		return []string{fmt.Sprintf("at %s: %s", loc, ve.ErrorKind.LocalizedString(v.printer))}
	}
	var out []string
	for _, cause := range ve.Causes {
		out = append(out, v.flatten(cause)...)
	}
	return out
}
