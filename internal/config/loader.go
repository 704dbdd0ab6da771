// Package config loads the analyzer's static configuration from CUE files:
// the declared variable table and, optionally, a static field set for use
// without a catalog database.
//
// Configuration shape:
//
//	variables: {
//		"@me":    "string"
//		"@today": "datetime"
//	}
//
//	fields: [
//		{name: "Title", reference: "System.Title", type: "string"},
//	]
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/load"
	"cuelang.org/go/cue/token"

	"github.com/querytools/wiqlint/internal/fields"
	"github.com/querytools/wiqlint/internal/vartab"
)

// Config is the loaded static configuration.
type Config struct {
	Variables *vartab.Table
	Fields    []fields.FieldDescriptor
}

// LoadError is a configuration error with CUE source position.
type LoadError struct {
	Field   string
	Message string
	Pos     token.Pos
}

func (e *LoadError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s",
			e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(), e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// LoadDir loads configuration from every .cue file in a directory.
// A config with no variables block gets the built-in variable table.
func LoadDir(dir string) (*Config, error) {
	info, err := os.Stat(dir)
	if os.IsNotExist(err) {
		return nil, &LoadError{Field: "config", Message: fmt.Sprintf("directory not found: %s", dir)}
	}
	if err != nil {
		return nil, &LoadError{Field: "config", Message: fmt.Sprintf("accessing directory: %v", err)}
	}
	if !info.IsDir() {
		return nil, &LoadError{Field: "config", Message: fmt.Sprintf("not a directory: %s", dir)}
	}

	cueFiles, err := findCUEFiles(dir)
	if err != nil {
		return nil, &LoadError{Field: "config", Message: fmt.Sprintf("scanning directory: %v", err)}
	}
	if len(cueFiles) == 0 {
		return nil, &LoadError{Field: "config", Message: fmt.Sprintf("no CUE files found in %s", dir)}
	}

	ctx := cuecontext.New()
	instances := load.Instances([]string{"."}, &load.Config{Dir: dir})
	if len(instances) == 0 {
		return nil, &LoadError{Field: "config", Message: "no CUE instances loaded"}
	}
	inst := instances[0]
	if inst.Err != nil {
		return nil, &LoadError{Field: "config", Message: fmt.Sprintf("loading CUE files: %v", inst.Err)}
	}
	value := ctx.BuildInstance(inst)
	if err := value.Err(); err != nil {
		return nil, &LoadError{Field: "config", Message: fmt.Sprintf("building CUE value: %v", err)}
	}
	return FromValue(value)
}

// FromValue builds a Config from an already-compiled CUE value.
func FromValue(value cue.Value) (*Config, error) {
	cfg := &Config{}

	entries, err := parseVariables(value)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		cfg.Variables = vartab.Default()
	} else {
		cfg.Variables = vartab.New(entries...)
	}

	cfg.Fields, err = parseFields(value)
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

func parseVariables(value cue.Value) ([]vartab.Entry, error) {
	varsVal := value.LookupPath(cue.ParsePath("variables"))
	if !varsVal.Exists() {
		return nil, nil
	}
	iter, err := varsVal.Fields()
	if err != nil {
		return nil, &LoadError{Field: "variables", Message: err.Error(), Pos: varsVal.Pos()}
	}

	var entries []vartab.Entry
	for iter.Next() {
		name := iter.Selector().Unquoted()
		typeName, err := iter.Value().String()
		if err != nil {
			return nil, &LoadError{
				Field:   "variables." + name,
				Message: "type must be a string",
				Pos:     iter.Value().Pos(),
			}
		}
		ft, ok := fields.ParseFieldType(typeName)
		if !ok {
			return nil, &LoadError{
				Field:   "variables." + name,
				Message: fmt.Sprintf("unknown field type %q", typeName),
				Pos:     iter.Value().Pos(),
			}
		}
		entries = append(entries, vartab.Entry{Name: name, Type: ft})
	}
	return entries, nil
}

func parseFields(value cue.Value) ([]fields.FieldDescriptor, error) {
	fieldsVal := value.LookupPath(cue.ParsePath("fields"))
	if !fieldsVal.Exists() {
		return nil, nil
	}
	iter, err := fieldsVal.List()
	if err != nil {
		return nil, &LoadError{Field: "fields", Message: "must be a list", Pos: fieldsVal.Pos()}
	}

	var out []fields.FieldDescriptor
	for iter.Next() {
		fv := iter.Value()
		d, err := parseFieldDescriptor(fv)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, nil
}

func parseFieldDescriptor(v cue.Value) (fields.FieldDescriptor, error) {
	var d fields.FieldDescriptor

	name, err := v.LookupPath(cue.ParsePath("name")).String()
	if err != nil {
		return d, &LoadError{Field: "fields.name", Message: "name is required", Pos: v.Pos()}
	}
	ref, err := v.LookupPath(cue.ParsePath("reference")).String()
	if err != nil {
		return d, &LoadError{Field: "fields.reference", Message: "reference is required", Pos: v.Pos()}
	}
	typeName, err := v.LookupPath(cue.ParsePath("type")).String()
	if err != nil {
		return d, &LoadError{Field: "fields.type", Message: "type is required", Pos: v.Pos()}
	}
	ft, ok := fields.ParseFieldType(typeName)
	if !ok {
		return d, &LoadError{
			Field:   "fields." + ref,
			Message: fmt.Sprintf("unknown field type %q", typeName),
			Pos:     v.Pos(),
		}
	}

	d.Name = name
	d.ReferenceName = ref
	d.Type = ft
	return d, nil
}

func findCUEFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() && filepath.Ext(path) == ".cue" {
			files = append(files, path)
		}
		return nil
	})
	return files, err
}
