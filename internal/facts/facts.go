package facts

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"sync"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"archmap/internal/extractor"
)

// A facts snapshot is the extracted ParsedFile set serialized as JSON, used
// to hand extraction output between invocations (notably as the "old" side
// of a diff). Snapshots are validated on load: a record without its path is
// a contract violation and fails hard, unlike the soft unresolved-reference
// conditions inside the core.

const schemaURL = "archmap/facts.schema.json"

const factsSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "array",
  "items": {
    "type": "object",
    "required": ["path"],
    "properties": {
      "path": {"type": "string", "minLength": 1},
      "imports": {
        "type": "array",
        "items": {
          "type": "object",
          "required": ["import_path"],
          "properties": {
            "import_path": {"type": "string", "minLength": 1},
            "is_type_only": {"type": "boolean"},
            "is_dynamic": {"type": "boolean"}
          }
        }
      },
      "implements": {
        "type": "array",
        "items": {
          "type": "object",
          "required": ["class_name", "interfaces"],
          "properties": {
            "class_name": {"type": "string"},
            "interfaces": {"type": "array", "items": {"type": "string"}},
            "interface_imports": {
              "type": "object",
              "additionalProperties": {"type": "string"}
            }
          }
        }
      },
      "renders": {
        "type": "array",
        "items": {
          "type": "object",
          "required": ["component_name", "position"],
          "properties": {
            "component_name": {"type": "string"},
            "position": {"type": "integer", "minimum": 0},
            "is_namespaced": {"type": "boolean"},
            "slot_name": {"type": "string"},
            "conditional": {"type": "boolean"}
          }
        }
      },
      "types": {
        "type": "array",
        "items": {
          "type": "object",
          "required": ["kind", "name"],
          "properties": {
            "kind": {"enum": ["interface", "type", "class", "enum"]},
            "name": {"type": "string", "minLength": 1},
            "is_exported": {"type": "boolean"},
            "extends": {"type": "array", "items": {"type": "string"}},
            "implements": {"type": "array", "items": {"type": "string"}},
            "references": {"type": "array", "items": {"type": "string"}}
          }
        }
      },
      "hierarchy": {
        "type": "object",
        "properties": {
          "level": {"type": "string"},
          "architecture": {"type": "string"},
          "module": {"type": "string"},
          "component": {"type": "string"}
        }
      }
    }
  }
}`

var (
	schemaOnce     sync.Once
	compiledSchema *jsonschema.Schema
	schemaErr      error
)

func compiled() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource(schemaURL, strings.NewReader(factsSchema)); err != nil {
			schemaErr = err
			return
		}
		compiledSchema, schemaErr = compiler.Compile(schemaURL)
	})
	return compiledSchema, schemaErr
}

// Save writes a facts snapshot to path.
func Save(path string, files []*extractor.ParsedFile) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create snapshot file: %w", err)
	}
	defer f.Close()

	encoder := json.NewEncoder(f)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(files); err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}
	return nil
}

// Load reads and validates a facts snapshot.
func Load(path string) ([]*extractor.ParsedFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot file: %w", err)
	}
	if err := Validate(data); err != nil {
		return nil, fmt.Errorf("invalid snapshot %s: %w", path, err)
	}

	var files []*extractor.ParsedFile
	if err := json.Unmarshal(data, &files); err != nil {
		return nil, fmt.Errorf("failed to decode snapshot %s: %w", path, err)
	}
	return files, nil
}

// Validate checks raw snapshot bytes against the facts schema.
func Validate(data []byte) error {
	schema, err := compiled()
	if err != nil {
		return fmt.Errorf("schema compile failed: %w", err)
	}

	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("not valid JSON: %w", err)
	}
	if err := schema.Validate(doc); err != nil {
		return err
	}
	return nil
}
