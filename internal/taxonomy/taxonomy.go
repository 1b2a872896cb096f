// Package taxonomy loads the static catalog of canonical skill names and their aliases.
// A Taxonomy is immutable once loaded and is safe to share across goroutines.
package taxonomy

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/mitchellh/mapstructure"

	"github.com/jonathan/resume-matcher/internal/schemas"
)

// rootKey is the top-level object holding categories in a taxonomy document
const rootKey = "technical_skills_taxonomy"

// embeddedSource names the built-in document in load errors
const embeddedSource = "embedded"

//go:embed skills.json
var defaultDocument []byte

//go:embed taxonomy.schema.json
var schemaDocument []byte

var validate = validator.New()

// Skill is a canonical skill name with its known alias spellings
type Skill struct {
	Name     string   `json:"name" validate:"required,max=100"`
	Aliases  []string `json:"aliases" validate:"dive,max=100"`
	Category string   `json:"category" validate:"required"`
}

// Patterns returns the strings to match for this skill: the canonical name first, then aliases in order.
func (s Skill) Patterns() []string {
	patterns := make([]string, 0, len(s.Aliases)+1)
	patterns = append(patterns, s.Name)
	patterns = append(patterns, s.Aliases...)
	return patterns
}

// Category groups skills under a name in document order
type Category struct {
	Name   string  `json:"name"`
	Skills []Skill `json:"skills"`
}

// Taxonomy is the loaded skill catalog
type Taxonomy struct {
	categories []Category
	skills     []Skill
}

// rawCategory mirrors a category object in the document
type rawCategory struct {
	Skills []rawSkill `json:"skills"`
}

type rawSkill struct {
	Name    string   `json:"name"`
	Aliases []string `json:"aliases"`
}

// Default loads the taxonomy embedded in the binary.
func Default() (*Taxonomy, error) {
	return load(embeddedSource, defaultDocument)
}

// LoadFile loads a taxonomy document from disk.
func LoadFile(path string) (*Taxonomy, error) {
	if path == "" {
		return nil, &LoadError{Source: path, Message: "path is empty"}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Source: path, Message: "failed to read file", Cause: err}
	}

	return load(path, data)
}

// Load parses a taxonomy document from memory.
func Load(data []byte) (*Taxonomy, error) {
	return load("(bytes)", data)
}

// Open loads from path when set, otherwise the embedded taxonomy.
func Open(path string) (*Taxonomy, error) {
	if path == "" {
		return Default()
	}
	return LoadFile(path)
}

func load(source string, data []byte) (*Taxonomy, error) {
	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, &LoadError{Source: source, Message: "invalid JSON", Cause: err}
	}

	if err := schemas.ValidateGo("taxonomy.schema.json", schemaDocument, doc); err != nil {
		return nil, &LoadError{Source: source, Message: "document does not match schema", Cause: err}
	}

	// Category order matters for keyword extraction, and Go maps do not keep it
	order, err := categoryOrder(data)
	if err != nil {
		return nil, &LoadError{Source: source, Message: "failed to read category order", Cause: err}
	}

	rawCategories, _ := doc[rootKey].(map[string]any)
	t := &Taxonomy{}
	seen := make(map[string]string)

	for _, name := range order {
		var raw rawCategory
		if err := decodeStrict(rawCategories[name], &raw); err != nil {
			return nil, &LoadError{Source: source, Message: fmt.Sprintf("malformed category %q", name), Cause: err}
		}

		category := Category{Name: name, Skills: make([]Skill, 0, len(raw.Skills))}
		for i, rs := range raw.Skills {
			skill := Skill{
				Name:     strings.TrimSpace(rs.Name),
				Aliases:  trimAll(rs.Aliases),
				Category: name,
			}
			if err := validate.Struct(skill); err != nil {
				return nil, &LoadError{
					Source:  source,
					Message: fmt.Sprintf("invalid skill %d in category %q", i, name),
					Cause:   err,
				}
			}
			if prev, dup := seen[skill.Name]; dup {
				return nil, &LoadError{
					Source:  source,
					Message: fmt.Sprintf("duplicate skill %q in categories %q and %q", skill.Name, prev, name),
				}
			}
			seen[skill.Name] = name

			category.Skills = append(category.Skills, skill)
			t.skills = append(t.skills, skill)
		}
		t.categories = append(t.categories, category)
	}

	return t, nil
}

// decodeStrict decodes a generic JSON value into out, rejecting unknown keys and type mismatches.
func decodeStrict(input any, out any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:     "json",
		ErrorUnused: true,
		Result:      out,
	})
	if err != nil {
		return err
	}
	return decoder.Decode(input)
}

// categoryOrder returns the category keys under rootKey in document order.
func categoryOrder(data []byte) ([]string, error) {
	dec := json.NewDecoder(bytes.NewReader(data))

	if err := expectDelim(dec, '{'); err != nil {
		return nil, err
	}

	for dec.More() {
		key, err := readKey(dec)
		if err != nil {
			return nil, err
		}
		if key != rootKey {
			var skip json.RawMessage
			if err := dec.Decode(&skip); err != nil {
				return nil, err
			}
			continue
		}

		if err := expectDelim(dec, '{'); err != nil {
			return nil, err
		}
		var order []string
		for dec.More() {
			name, err := readKey(dec)
			if err != nil {
				return nil, err
			}
			var skip json.RawMessage
			if err := dec.Decode(&skip); err != nil {
				return nil, err
			}
			order = append(order, name)
		}
		return order, nil
	}

	return nil, fmt.Errorf("missing %q", rootKey)
}

func expectDelim(dec *json.Decoder, want json.Delim) error {
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != want {
		return fmt.Errorf("expected %q, got %v", want, tok)
	}
	return nil
}

func readKey(dec *json.Decoder) (string, error) {
	tok, err := dec.Token()
	if err != nil {
		return "", err
	}
	key, ok := tok.(string)
	if !ok {
		return "", fmt.Errorf("expected object key, got %v", tok)
	}
	return key, nil
}

func trimAll(values []string) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = strings.TrimSpace(v)
	}
	return out
}

// Categories returns the categories in document order. Callers must not modify the result.
func (t *Taxonomy) Categories() []Category {
	return t.categories
}

// Skills returns every skill across all categories in document order. Callers must not modify the result.
func (t *Taxonomy) Skills() []Skill {
	return t.skills
}

// Patterns returns every name and alias across the taxonomy in document order, skipping empty ones.
func (t *Taxonomy) Patterns() []string {
	var patterns []string
	for _, s := range t.skills {
		for _, p := range s.Patterns() {
			if p != "" {
				patterns = append(patterns, p)
			}
		}
	}
	return patterns
}

// Len returns the number of skills.
func (t *Taxonomy) Len() int {
	return len(t.skills)
}

// Lookup returns the skill with the given canonical name.
func (t *Taxonomy) Lookup(name string) (Skill, bool) {
	for _, s := range t.skills {
		if s.Name == name {
			return s, true
		}
	}
	return Skill{}, false
}
