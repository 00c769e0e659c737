package classify

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config is the versioned keyword configuration injected at classifier
// construction. The sets were originally regenerated from accumulated
// labeling feedback; keeping them explicit keeps classification
// reproducible and testable.
type Config struct {
	// Version identifies the keyword set revision.
	Version string `yaml:"version"`

	// SummaryKeywords mark summary rows (totals, averages).
	SummaryKeywords []string `yaml:"summary_keywords"`

	// FootnotePatterns are regular expressions matched against lowercased
	// row text to detect footnote rows.
	FootnotePatterns []string `yaml:"footnote_patterns"`
}

// DefaultConfig returns the keyword configuration tuned for the flyway
// databook documents.
func DefaultConfig() Config {
	return Config{
		Version: "2023.1",
		SummaryKeywords: []string{
			"average", "mean", "total", "summary", "median", "aggregate",
		},
		FootnotePatterns: []string{
			`source`,
			`note`,
			`see appendix`,
			`\*`,
			`data provided by`,
			`\d+\s+preliminary`,
			`harvest information program`,
		},
	}
}

// LoadConfig reads a keyword configuration from a YAML file.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading classify config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing classify config: %w", err)
	}
	return cfg, nil
}

// compiled is a Config with its footnote patterns compiled and its
// keywords lowercased, ready for matching.
type compiled struct {
	keywords []string
	patterns []*regexp.Regexp
}

func (c Config) compile() (*compiled, error) {
	out := &compiled{
		keywords: make([]string, 0, len(c.SummaryKeywords)),
		patterns: make([]*regexp.Regexp, 0, len(c.FootnotePatterns)),
	}
	for _, k := range c.SummaryKeywords {
		out.keywords = append(out.keywords, strings.ToLower(k))
	}
	for _, p := range c.FootnotePatterns {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("footnote pattern %q: %w", p, err)
		}
		out.patterns = append(out.patterns, re)
	}
	return out, nil
}

// hasKeyword reports whether text contains any summary keyword.
func (c *compiled) hasKeyword(text string) bool {
	lower := strings.ToLower(text)
	for _, k := range c.keywords {
		if strings.Contains(lower, k) {
			return true
		}
	}
	return false
}

// matchesFootnote reports whether text matches any footnote pattern.
func (c *compiled) matchesFootnote(text string) bool {
	lower := strings.ToLower(text)
	for _, re := range c.patterns {
		if re.MatchString(lower) {
			return true
		}
	}
	return false
}
