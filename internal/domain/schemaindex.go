package domain

import "strings"

// BaseSchema is the schema every repository must satisfy regardless of its
// declared types.
const BaseSchema = "repository"

// SchemaRequirement names the schemas a single repository type mandates or
// may optionally supply.
type SchemaRequirement struct {
	Required []string `yaml:"required_schemas"`
	Optional []string `yaml:"optional_schemas"`
}

// SchemaIndex maps repository types to their schema requirements, loaded
// from the schema directory's index.yaml. A nil index degrades to "base
// schema only".
type SchemaIndex struct {
	Types map[string]SchemaRequirement
}

// RequiredSchemas returns the sorted union of required schema names over
// all declared types, always including the base schema. Types absent from
// the index contribute nothing.
func (idx *SchemaIndex) RequiredSchemas(types []string) []string {
	names := []string{BaseSchema}
	if idx != nil {
		for _, t := range types {
			if req, ok := idx.Types[t]; ok {
				names = append(names, stripSuffixes(req.Required)...)
			}
		}
	}
	return SortedUnique(names)
}

// OptionalSchemas returns the sorted union of optional schema names over
// all declared types.
func (idx *SchemaIndex) OptionalSchemas(types []string) []string {
	var names []string
	if idx != nil {
		for _, t := range types {
			if req, ok := idx.Types[t]; ok {
				names = append(names, stripSuffixes(req.Optional)...)
			}
		}
	}
	if len(names) == 0 {
		return nil
	}
	return SortedUnique(names)
}

// stripSuffixes drops a trailing .yaml so index entries may name either the
// schema or its file.
func stripSuffixes(names []string) []string {
	out := make([]string, len(names))
	for i, n := range names {
		out[i] = strings.TrimSuffix(n, ".yaml")
	}
	return out
}
