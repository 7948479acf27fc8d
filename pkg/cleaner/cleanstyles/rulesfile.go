package cleanstyles

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// newRuleSetValidator builds a validator that knows how to check regex
// pattern fields compile.
func newRuleSetValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("regexp", func(fl validator.FieldLevel) bool {
		_, err := regexp.Compile(fl.Field().String())
		return err == nil
	})
	return v
}

// RuleSetFromFile loads a rule set from a JSON or YAML file. The loaded set
// is validated (regex fields must compile) but not merged with the defaults;
// use Merge for that.
func RuleSetFromFile(path string) (*RuleSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read rules file: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return RuleSetFromJSON(data)
	case ".yaml", ".yml":
		return RuleSetFromYAML(data)
	default:
		return nil, fmt.Errorf("unsupported rules file format: %s", filepath.Ext(path))
	}
}

// RuleSetFromJSON parses and validates a rule set from JSON data.
func RuleSetFromJSON(data []byte) (*RuleSet, error) {
	var rs RuleSet
	if err := json.Unmarshal(data, &rs); err != nil {
		return nil, fmt.Errorf("failed to parse JSON rules: %w", err)
	}
	if err := validateRuleSet(&rs); err != nil {
		return nil, err
	}
	return &rs, nil
}

// RuleSetFromYAML parses and validates a rule set from YAML data.
func RuleSetFromYAML(data []byte) (*RuleSet, error) {
	var rs RuleSet
	if err := yaml.Unmarshal(data, &rs); err != nil {
		return nil, fmt.Errorf("failed to parse YAML rules: %w", err)
	}
	if err := validateRuleSet(&rs); err != nil {
		return nil, err
	}
	return &rs, nil
}

func validateRuleSet(rs *RuleSet) error {
	err := newRuleSetValidator().Struct(rs)
	if err == nil {
		return nil
	}

	var msgs []string
	for _, e := range err.(validator.ValidationErrors) {
		msgs = append(msgs, fmt.Sprintf("%s failed %q", e.Field(), e.Tag()))
	}
	return fmt.Errorf("invalid rule set: %s", strings.Join(msgs, "; "))
}
