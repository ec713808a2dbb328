package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// BusinessTopic is one canned-answer entry in the business-info table.
// Keywords are matched as substrings of the lowercased question; the table
// is scanned in definition order, so earlier topics win ties.
type BusinessTopic struct {
	Topic    string   `yaml:"topic"`
	Keywords []string `yaml:"keywords"`
	Answer   string   `yaml:"answer"`
}

// BusinessInfoFile is the structure of the optional business-info YAML file.
type BusinessInfoFile struct {
	Topics []BusinessTopic `yaml:"topics"`
}

// DefaultBusinessInfo is the built-in salon business-info table, used when no
// BUSINESS_INFO_FILE is configured. The topic name itself always counts as a
// keyword; the extra keywords carry the special-cased synonyms.
var DefaultBusinessInfo = []BusinessTopic{
	{
		Topic:    "hours",
		Keywords: []string{"open", "time"},
		Answer:   "We are open Monday through Friday from 9 AM to 7 PM, Saturday from 10 AM to 5 PM, and closed on Sundays.",
	},
	{
		Topic:    "location",
		Keywords: []string{"where"},
		Answer:   "We are located at 123 Main Street, Downtown District.",
	},
	{
		Topic:  "phone",
		Answer: "You can reach us at (555) 123-4567.",
	},
	{
		Topic:  "booking",
		Answer: "You can book an appointment by calling us or visiting our website.",
	},
	{
		Topic:  "services",
		Answer: "We offer haircuts, styling, coloring, and spa treatments.",
	},
}

// LoadBusinessInfo returns the business-info table. When BUSINESS_INFO_FILE
// points at a YAML file it is loaded from there; otherwise the built-in
// defaults are used. The table is loaded once at startup and never mutated.
func LoadBusinessInfo() ([]BusinessTopic, error) {
	path := getEnv("BUSINESS_INFO_FILE", "")
	if path == "" {
		return DefaultBusinessInfo, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read business info file: %w", err)
	}

	var file BusinessInfoFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse business info file: %w", err)
	}

	if len(file.Topics) == 0 {
		return nil, fmt.Errorf("business info file %s defines no topics", path)
	}

	for i, t := range file.Topics {
		if t.Topic == "" || t.Answer == "" {
			return nil, fmt.Errorf("business info topic %d is missing a topic name or answer", i)
		}
	}

	return file.Topics, nil
}
