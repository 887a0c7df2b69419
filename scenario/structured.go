package scenario

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"

	"github.com/pthm-cable/savanna/components"
)

//go:embed scenario.schema.json
var schemaJSON string

const schemaURL = "scenario.schema.json"

var (
	schemaOnce sync.Once
	schema     *jsonschema.Schema
	schemaErr  error
)

func compiledSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		schema, schemaErr = jsonschema.CompileString(schemaURL, schemaJSON)
	})
	return schema, schemaErr
}

// Document is the structured form of a scenario.
// Numbers are decoded as float64 so values beyond float32 range reach the
// bound checks as infinities instead of failing to decode.
type Document struct {
	Days    int           `json:"days" yaml:"days"`
	Grass   float64       `json:"grass" yaml:"grass"`
	Animals []AnimalEntry `json:"animals" yaml:"animals"`
}

// AnimalEntry is one animal of a Document.
type AnimalEntry struct {
	Species string  `json:"species" yaml:"species"`
	Weight  float64 `json:"weight" yaml:"weight"`
	Speed   float64 `json:"speed" yaml:"speed"`
	Energy  float64 `json:"energy" yaml:"energy"`
}

// Input formats accepted by Open.
const (
	FormatAuto = "auto"
	FormatText = "text"
	FormatYAML = "yaml"
	FormatJSON = "json"
)

// DetectFormat picks a format from the file extension. Unknown extensions are text.
func DetectFormat(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	case ".json":
		return FormatJSON
	default:
		return FormatText
	}
}

// Open reads and validates the scenario at path.
// An empty or "auto" format is resolved with DetectFormat.
func Open(path, format string, cat Catalog) (*Scenario, error) {
	if format == "" || format == FormatAuto {
		format = DetectFormat(path)
	}
	if format == FormatText {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		return ParseText(NewReader(f), cat)
	}
	return LoadFile(path, format, cat)
}

// LoadFile reads a YAML or JSON scenario.
func LoadFile(path, format string, cat Catalog) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Decode(data, format, cat)
}

// Decode validates a YAML or JSON document against the scenario schema
// and then applies the same checks as the text format.
func Decode(data []byte, format string, cat Catalog) (*Scenario, error) {
	switch format {
	case FormatJSON:
	case FormatYAML:
		var err error
		if data, err = yamlToJSON(data); err != nil {
			return nil, fmt.Errorf("%v: %w", err, ErrInvalidInputs)
		}
	default:
		return nil, fmt.Errorf("unsupported scenario format %q", format)
	}

	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decoding scenario: %v: %w", err, ErrInvalidInputs)
	}
	sch, err := compiledSchema()
	if err != nil {
		return nil, fmt.Errorf("compiling scenario schema: %w", err)
	}
	if err := sch.Validate(raw); err != nil {
		return nil, fmt.Errorf("%v: %w", err, ErrInvalidInputs)
	}

	var doc Document
	dec := json.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("decoding scenario: %v: %w", err, ErrInvalidInputs)
	}
	return doc.Scenario(cat)
}

// Scenario applies the checks of the text format in the same order.
func (d Document) Scenario(cat Catalog) (*Scenario, error) {
	if err := checkDays(d.Days); err != nil {
		return nil, err
	}
	grass := float32(d.Grass)
	if err := components.CheckGrass(grass); err != nil {
		return nil, err
	}
	if err := checkAnimalCount(len(d.Animals)); err != nil {
		return nil, err
	}
	sc := &Scenario{Days: d.Days, Grass: grass, Animals: make([]components.Traits, 0, len(d.Animals))}
	for i, a := range d.Animals {
		t, err := cat.Traits(a.Species, float32(a.Weight), float32(a.Speed), float32(a.Energy))
		if err != nil {
			return nil, fmt.Errorf("animals[%d]: %w", i, err)
		}
		sc.Animals = append(sc.Animals, t)
	}
	return sc, nil
}

// Document converts a scenario back to its structured form.
func (sc *Scenario) Document() Document {
	d := Document{Days: sc.Days, Grass: float64(sc.Grass), Animals: make([]AnimalEntry, len(sc.Animals))}
	for i, t := range sc.Animals {
		d.Animals[i] = AnimalEntry{
			Species: t.Species,
			Weight:  float64(t.Weight),
			Speed:   float64(t.Speed),
			Energy:  float64(t.Energy),
		}
	}
	return d
}

func yamlToJSON(data []byte) ([]byte, error) {
	var v any
	if err := yaml.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("parsing yaml: %w", err)
	}
	return json.Marshal(v)
}
