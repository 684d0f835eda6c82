package todo

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"sync"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"
)

// exportSchemaURL names the bundled schema inside the compiler.
const exportSchemaURL = "daylog-export.schema.json"

// exportSchema is the bundled schema for export documents.
const exportSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "required": ["days"],
  "additionalProperties": false,
  "properties": {
    "days": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["date", "sections"],
        "additionalProperties": false,
        "properties": {
          "date": { "type": "string", "pattern": "^[0-9]{4}-[0-9]{2}-[0-9]{2}$" },
          "sections": {
            "type": "array",
            "items": {
              "type": "object",
              "required": ["name", "tasks"],
              "additionalProperties": false,
              "properties": {
                "name": { "type": "string", "pattern": "^([^\\-\\[\\s].*)?$" },
                "tasks": { "type": "array", "items": { "type": "string" } }
              }
            }
          }
        }
      }
    }
  }
}`

// Export is the structured form of a log written by the export command.
type Export struct {
	Days []ExportDay `json:"days" yaml:"days"`
}

// ExportDay is one day of an Export.
type ExportDay struct {
	Date     string          `json:"date" yaml:"date"`
	Sections []ExportSection `json:"sections" yaml:"sections"`
}

// ExportSection is one section of an ExportDay.
type ExportSection struct {
	Name  string   `json:"name" yaml:"name"`
	Tasks []string `json:"tasks" yaml:"tasks"`
}

// ValidationError represents an export validation error with context.
type ValidationError struct {
	Path string // JSON path to the error location
	Err  error  // Underlying error
}

func (e *ValidationError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s", e.Path, e.Err)
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// Export builds the structured form of the log, latest day first.
func (t *Todo) Export() *Export {
	doc := &Export{Days: make([]ExportDay, 0, len(t.days))}
	for _, day := range t.Days() {
		ed := ExportDay{
			Date:     day.Date.String(),
			Sections: make([]ExportSection, 0, len(day.Sections)),
		}
		for _, section := range day.Sections {
			es := ExportSection{Name: section.Name, Tasks: make([]string, 0, len(section.Tasks))}
			for _, task := range section.Tasks {
				es.Tasks = append(es.Tasks, task.Text)
			}
			ed.Sections = append(ed.Sections, es)
		}
		doc.Days = append(doc.Days, ed)
	}
	return doc
}

// JSON encodes the export with 2-space indentation and a trailing newline,
// after validating it against the bundled schema.
func (e *Export) JSON() ([]byte, error) {
	data, err := json.MarshalIndent(e, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal export: %w", err)
	}
	if errs := ValidateExport(data); len(errs) > 0 {
		return nil, fmt.Errorf("validate export: %w", errs[0])
	}
	return append(data, '\n'), nil
}

// YAML encodes the export as YAML.
func (e *Export) YAML() ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(e); err != nil {
		return nil, fmt.Errorf("marshal export: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("marshal export: %w", err)
	}
	return buf.Bytes(), nil
}

var (
	exportSchemaOnce     sync.Once
	exportSchemaCompiled *jsonschema.Schema
	exportSchemaErr      error
)

// compiledExportSchema compiles the bundled schema on first use.
func compiledExportSchema() (*jsonschema.Schema, error) {
	exportSchemaOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		compiler.AssertFormat = true
		if err := compiler.AddResource(exportSchemaURL, strings.NewReader(exportSchema)); err != nil {
			exportSchemaErr = fmt.Errorf("load export schema: %w", err)
			return
		}
		exportSchemaCompiled, exportSchemaErr = compiler.Compile(exportSchemaURL)
		if exportSchemaErr != nil {
			exportSchemaErr = fmt.Errorf("compile export schema: %w", exportSchemaErr)
		}
	})
	return exportSchemaCompiled, exportSchemaErr
}

// ValidateExport checks a JSON export document against the bundled schema
// and returns every violation found.
func ValidateExport(data []byte) []error {
	schema, err := compiledExportSchema()
	if err != nil {
		return []error{err}
	}

	var doc interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return []error{&ValidationError{Err: fmt.Errorf("decode export: %w", err)}}
	}

	var errs []error
	if err := schema.Validate(doc); err != nil {
		ve, ok := err.(*jsonschema.ValidationError)
		if !ok {
			return []error{err}
		}
		collectSchemaErrors(&errs, ve)
	}
	return errs
}

func collectSchemaErrors(errs *[]error, err *jsonschema.ValidationError) {
	if len(err.Causes) == 0 {
		*errs = append(*errs, &ValidationError{
			Path: jsonPointerToPath(err.InstanceLocation),
			Err:  fmt.Errorf("%s", err.Message),
		})
		return
	}
	for _, cause := range err.Causes {
		collectSchemaErrors(errs, cause)
	}
}

// jsonPointerToPath turns "/days/0/date" into "days[0].date".
func jsonPointerToPath(ptr string) string {
	ptr = strings.TrimPrefix(ptr, "#")
	ptr = strings.TrimPrefix(ptr, "/")
	if ptr == "" {
		return ""
	}

	var b strings.Builder
	for _, part := range strings.Split(ptr, "/") {
		part = strings.ReplaceAll(part, "~1", "/")
		part = strings.ReplaceAll(part, "~0", "~")
		if part == "" {
			continue
		}
		if idx, err := strconv.Atoi(part); err == nil {
			fmt.Fprintf(&b, "[%d]", idx)
			continue
		}
		if b.Len() > 0 {
			b.WriteByte('.')
		}
		b.WriteString(part)
	}
	return b.String()
}
