package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/sevigo/review-warden/internal/core"
)

var (
	ErrRulesFileNotFound = errors.New("rules file not found")
	ErrRulesParsing      = errors.New("rules parsing failed")
)

// RulesFile is the on-disk format for review rules:
//
//	rules:
//	  - name: backend
//	    type: file_match
//	    file_match: "^app/models/"
//	    reviewer: "1234"
//	    repository: aergonaut/testrepo
type RulesFile struct {
	Rules []core.ReviewRule `yaml:"rules"`
}

// LoadRulesFile reads and validates a rules file. Rules without a type default to "always".
func LoadRulesFile(path string) ([]core.ReviewRule, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrRulesFileNotFound, path)
		}
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return ParseRules(data)
}

// ParseRules decodes a rules document.
func ParseRules(data []byte) ([]core.ReviewRule, error) {
	var file RulesFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRulesParsing, err)
	}

	for i := range file.Rules {
		if file.Rules[i].Type == "" {
			file.Rules[i].Type = core.RuleTypeAlways
		}
		if err := file.Rules[i].Validate(); err != nil {
			return nil, fmt.Errorf("rule #%d: %w", i+1, err)
		}
	}
	return file.Rules, nil
}
