package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Settings represents the plc.yaml configuration.
type Settings struct {
	Interpreter InterpreterSettings `yaml:"interpreter"`
	Generator   GeneratorSettings   `yaml:"generator"`
}

type InterpreterSettings struct {
	// MaxDepth is the maximum nesting depth of evaluation before the
	// program is aborted with a runtime error.
	MaxDepth int `yaml:"max_depth,omitempty"`

	// DecimalScale fixes the number of fractional digits of a Decimal
	// division result. When nil DefaultDecimalScale is used.
	DecimalScale *int32 `yaml:"decimal_scale,omitempty"`
}

type GeneratorSettings struct {
	// ClassName is the name of the emitted host class.
	ClassName string `yaml:"class_name,omitempty"`

	// Indent is the number of spaces per nesting level.
	Indent int `yaml:"indent,omitempty"`
}

// Default returns the settings used when no plc.yaml is present.
func Default() *Settings {
	return &Settings{
		Interpreter: InterpreterSettings{MaxDepth: DefaultMaxDepth},
		Generator:   GeneratorSettings{ClassName: HostClassName, Indent: HostIndentUnit},
	}
}

// LoadSettings reads and parses a plc.yaml file.
func LoadSettings(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	return ParseSettings(data, path)
}

// ParseSettings parses plc.yaml content from bytes.
// The path argument is used only for error messages.
func ParseSettings(data []byte, path string) (*Settings, error) {
	s := Default()
	if err := yaml.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return s, nil
}

// FindSettings loads plc.yaml from the directory of sourcePath if it exists,
// otherwise returns the defaults.
func FindSettings(sourcePath string) (*Settings, error) {
	if sourcePath == "" {
		return Default(), nil
	}
	candidate := filepath.Join(filepath.Dir(sourcePath), SettingsFileName)
	if _, err := os.Stat(candidate); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return nil, fmt.Errorf("checking config %s: %w", candidate, err)
	}
	return LoadSettings(candidate)
}

func (s *Settings) Validate() error {
	if s.Interpreter.MaxDepth <= 0 {
		return fmt.Errorf("interpreter.max_depth must be positive, got %d", s.Interpreter.MaxDepth)
	}
	if sc := s.Interpreter.DecimalScale; sc != nil && *sc < 0 {
		return fmt.Errorf("interpreter.decimal_scale must not be negative, got %d", *sc)
	}
	if s.Generator.ClassName == "" {
		return errors.New("generator.class_name must not be empty")
	}
	if s.Generator.Indent < 0 {
		return fmt.Errorf("generator.indent must not be negative, got %d", s.Generator.Indent)
	}
	return nil
}
