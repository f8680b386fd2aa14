package generation

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ruleSetFile is the on-disk representation of a quality rule set. Keeping
// the detection lists in a versioned file lets new degenerate patterns ship
// without a code change.
type ruleSetFile struct {
	Version                string   `yaml:"version"`
	MinLength              int      `yaml:"min_length"`
	PlaceholderPhrases     []string `yaml:"placeholder_phrases"`
	MetaDescriptionPhrases []string `yaml:"meta_description_phrases"`
	RequiredSections       []string `yaml:"required_sections"`
}

// LoadRuleSetFile reads a quality rule set from a YAML file. Lists omitted
// from the file fall back to the built-in defaults; min_length falls back to
// DefaultMinBriefLength.
func LoadRuleSetFile(path string) (RuleSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return RuleSet{}, fmt.Errorf("failed to read rule set file %s: %w", path, err)
	}

	var file ruleSetFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return RuleSet{}, fmt.Errorf("failed to parse rule set file %s: %w", path, err)
	}

	if file.Version == "" {
		return RuleSet{}, fmt.Errorf("rule set file %s missing version", path)
	}

	if file.MinLength <= 0 {
		file.MinLength = DefaultMinBriefLength
	}
	if len(file.PlaceholderPhrases) == 0 {
		file.PlaceholderPhrases = defaultPlaceholderPhrases
	}
	if len(file.MetaDescriptionPhrases) == 0 {
		file.MetaDescriptionPhrases = defaultMetaDescriptionPhrases
	}
	if len(file.RequiredSections) == 0 {
		file.RequiredSections = defaultRequiredSections
	}

	return RuleSet{
		Version: file.Version,
		Rules: []Rule{
			PhraseRule{
				RuleName: "placeholder",
				Label:    "placeholder phrase",
				Phrases:  file.PlaceholderPhrases,
			},
			PhraseRule{
				RuleName: "meta_description",
				Label:    "meta-description phrase",
				Phrases:  file.MetaDescriptionPhrases,
			},
			MinLengthRule{Min: file.MinLength},
			RequiredSectionsRule{Sections: file.RequiredSections},
		},
	}, nil
}
