package bank

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"github.com/tidwall/gjson"
	"gopkg.in/yaml.v3"
)

//go:embed data/bank.json
var defaultBank []byte

//go:embed schema.json
var schemaJSON []byte

const schemaURL = "schema://question-bank.json"

var (
	schemaOnce     sync.Once
	compiledSchema *jsonschema.Schema
	schemaErr      error
)

// Default returns the bank bundled with the binary.
func Default() (*Bank, error) {
	return LoadJSON(defaultBank)
}

// LoadFile loads a bank from disk. Files ending in .yaml or .yml are parsed
// as YAML, everything else as JSON.
func LoadFile(path string) (*Bank, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read bank: %w", err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return LoadYAML(data)
	default:
		return LoadJSON(data)
	}
}

// LoadJSON parses a JSON bank document. Option order follows the order of
// keys in the document.
func LoadJSON(data []byte) (*Bank, error) {
	if err := validate(data); err != nil {
		return nil, err
	}

	doc := gjson.ParseBytes(data)
	var levels []Level
	doc.Get("levels").ForEach(func(_, lv gjson.Result) bool {
		lvl := Level{
			Number: int(lv.Get("level").Int()),
			Title:  lv.Get("title").String(),
		}
		if lvl.Number == 0 {
			lvl.Number = len(levels) + 1
		}
		lv.Get("questions").ForEach(func(_, qv gjson.Result) bool {
			q := Question{
				ID:   int(qv.Get("id").Int()),
				Text: qv.Get("text").String(),
			}
			qv.Get("options").ForEach(func(k, v gjson.Result) bool {
				q.Options = append(q.Options, Option{Key: k.String(), Text: v.String()})
				return true
			})
			lvl.Questions = append(lvl.Questions, q)
			return true
		})
		levels = append(levels, lvl)
		return true
	})

	return New(doc.Get("title").String(), levels)
}

type yamlQuestion struct {
	ID      int       `yaml:"id"`
	Text    string    `yaml:"text"`
	Options yaml.Node `yaml:"options"`
}

type yamlLevel struct {
	Level     int            `yaml:"level"`
	Title     string         `yaml:"title"`
	Questions []yamlQuestion `yaml:"questions"`
}

type yamlDoc struct {
	Title  string      `yaml:"title"`
	Levels []yamlLevel `yaml:"levels"`
}

// LoadYAML parses a YAML bank document with the same shape as the JSON one.
// Option order follows the mapping order in the document.
func LoadYAML(data []byte) (*Bank, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("%w: parse yaml: %v", ErrInvalidBank, err)
	}
	generic, err := nodeValue(&root)
	if err != nil {
		return nil, fmt.Errorf("%w: convert yaml: %v", ErrInvalidBank, err)
	}
	asJSON, err := json.Marshal(generic)
	if err != nil {
		return nil, fmt.Errorf("%w: convert yaml: %v", ErrInvalidBank, err)
	}
	if err := validate(asJSON); err != nil {
		return nil, err
	}

	var doc yamlDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: decode yaml: %v", ErrInvalidBank, err)
	}

	levels := make([]Level, 0, len(doc.Levels))
	for i, yl := range doc.Levels {
		lvl := Level{Number: yl.Level, Title: yl.Title}
		if lvl.Number == 0 {
			lvl.Number = i + 1
		}
		for _, yq := range yl.Questions {
			q := Question{ID: yq.ID, Text: yq.Text}
			opts := &yq.Options
			if opts.Kind == yaml.AliasNode {
				opts = opts.Alias
			}
			content := opts.Content
			for j := 0; j+1 < len(content); j += 2 {
				q.Options = append(q.Options, Option{Key: content[j].Value, Text: content[j+1].Value})
			}
			lvl.Questions = append(lvl.Questions, q)
		}
		levels = append(levels, lvl)
	}

	return New(doc.Title, levels)
}

// nodeValue converts a YAML node into JSON-compatible values. Mapping keys
// are always taken as strings, so `{1: a}` becomes {"1": "a"}.
func nodeValue(n *yaml.Node) (any, error) {
	switch n.Kind {
	case 0:
		return nil, nil
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return nil, nil
		}
		return nodeValue(n.Content[0])
	case yaml.AliasNode:
		return nodeValue(n.Alias)
	case yaml.SequenceNode:
		out := make([]any, len(n.Content))
		for i, c := range n.Content {
			v, err := nodeValue(c)
			if err != nil {
				return nil, err
			}
			out[i] = v
		}
		return out, nil
	case yaml.MappingNode:
		out := make(map[string]any, len(n.Content)/2)
		for i := 0; i+1 < len(n.Content); i += 2 {
			v, err := nodeValue(n.Content[i+1])
			if err != nil {
				return nil, err
			}
			out[n.Content[i].Value] = v
		}
		return out, nil
	default:
		var v any
		if err := n.Decode(&v); err != nil {
			return nil, fmt.Errorf("line %d: %w", n.Line, err)
		}
		return v, nil
	}
}

// validate checks a JSON document against the bank schema.
func validate(data []byte) error {
	var parsed any
	if err := json.Unmarshal(data, &parsed); err != nil {
		return fmt.Errorf("%w: invalid JSON: %v", ErrInvalidBank, err)
	}

	schema, err := bankSchema()
	if err != nil {
		return fmt.Errorf("compile bank schema: %w", err)
	}
	if err := schema.Validate(parsed); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidBank, err)
	}
	return nil
}

func bankSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		var def any
		if err := json.Unmarshal(schemaJSON, &def); err != nil {
			schemaErr = fmt.Errorf("parse schema: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource(schemaURL, def); err != nil {
			schemaErr = fmt.Errorf("add resource: %w", err)
			return
		}
		compiledSchema, schemaErr = c.Compile(schemaURL)
	})
	return compiledSchema, schemaErr
}
