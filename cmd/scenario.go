package cmd

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"

	"automail/internal/core/domain/model/delivery"
	"automail/internal/core/domain/model/kernel"
	"automail/internal/core/domain/services"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"
)

// Scenario defaults.
const (
	DefaultMaxTicks  = 10000
	DefaultMaxWeight = 5000
)

//go:embed scenario.schema.json
var scenarioSchemaJSON string

// Scenario is one simulated day: the building, the robot roster and the mail to generate.
type Scenario struct {
	Building BuildingSpec `yaml:"building"`
	Robots   []string     `yaml:"robots"`
	Mail     MailSpec     `yaml:"mail"`
	Penalty  float64      `yaml:"penalty"`
	MaxTicks int          `yaml:"max_ticks"`
}

type BuildingSpec struct {
	LowestFloor int `yaml:"lowest_floor"`
	TopFloor    int `yaml:"top_floor"`
	Mailroom    int `yaml:"mailroom"`
}

type MailSpec struct {
	Seed         uint64  `yaml:"seed"`
	Count        int     `yaml:"count"`
	LastArrival  int     `yaml:"last_arrival"`
	PriorityRate float64 `yaml:"priority_rate"`
	FragileRate  float64 `yaml:"fragile_rate"`
	MaxWeight    int     `yaml:"max_weight"`
}

// DefaultScenario is used when no scenario file is configured.
func DefaultScenario() Scenario {
	return Scenario{
		Building: BuildingSpec{LowestFloor: 1, TopFloor: 14, Mailroom: 1},
		Robots:   []string{"standard", "weak", "big", "careful"},
		Mail: MailSpec{
			Seed:         30006,
			Count:        80,
			LastArrival:  100,
			PriorityRate: 0.1,
			FragileRate:  0.05,
			MaxWeight:    DefaultMaxWeight,
		},
		Penalty:  delivery.DefaultPenalty,
		MaxTicks: DefaultMaxTicks,
	}
}

// LoadScenario reads and validates a YAML scenario file.
func LoadScenario(path string) (Scenario, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Scenario{}, err
	}
	s, err := ParseScenario(raw)
	if err != nil {
		return Scenario{}, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// ParseScenario validates raw YAML against the scenario schema and decodes it.
// Optional fields missing from the document take their defaults.
func ParseScenario(raw []byte) (Scenario, error) {
	var doc any
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return Scenario{}, fmt.Errorf("parse scenario: %w", err)
	}

	if err := validateScenario(doc); err != nil {
		return Scenario{}, err
	}

	s := Scenario{
		Mail:     MailSpec{MaxWeight: DefaultMaxWeight},
		Penalty:  delivery.DefaultPenalty,
		MaxTicks: DefaultMaxTicks,
	}
	if err := yaml.Unmarshal(raw, &s); err != nil {
		return Scenario{}, fmt.Errorf("decode scenario: %w", err)
	}
	return s, nil
}

// validateScenario round-trips the YAML tree through JSON so the schema sees JSON numbers.
func validateScenario(doc any) error {
	schema, err := jsonschema.CompileString("scenario.schema.json", scenarioSchemaJSON)
	if err != nil {
		return fmt.Errorf("compile scenario schema: %w", err)
	}

	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("scenario is not representable as JSON: %w", err)
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return err
	}
	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("invalid scenario: %w", err)
	}
	return nil
}

// BuildingModel builds the domain building.
func (s Scenario) BuildingModel() (kernel.Building, error) {
	return kernel.NewBuilding(
		kernel.Floor(s.Building.LowestFloor),
		kernel.Floor(s.Building.TopFloor),
		kernel.Floor(s.Building.Mailroom),
	)
}

// GeneratorSettings maps the mail section onto the generator's settings.
func (s Scenario) GeneratorSettings() services.GeneratorSettings {
	return services.GeneratorSettings{
		Seed:         s.Mail.Seed,
		Count:        s.Mail.Count,
		LastArrival:  kernel.Tick(s.Mail.LastArrival),
		PriorityRate: s.Mail.PriorityRate,
		FragileRate:  s.Mail.FragileRate,
		MaxWeight:    s.Mail.MaxWeight,
	}
}

// Arrivals generates the scenario's mail.
func (s Scenario) Arrivals(building kernel.Building) (services.Arrivals, error) {
	generator, err := services.NewMailGenerator(building, s.GeneratorSettings(), nil)
	if err != nil {
		return nil, err
	}
	return generator.Generate()
}
