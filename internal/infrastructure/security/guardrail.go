// Package security evaluates generated commands against advisory
// guardrail rules. The result only annotates the confirmation prompt;
// the yes/no gate itself is never bypassed or replaced.
package security

import (
	"errors"
	"os"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/sami-lachheb/local-warp/internal/domain"
	"github.com/sami-lachheb/local-warp/internal/ports"
)

// Guardrail implements the SecurityService port.
type Guardrail struct {
	patterns []compiledPattern
}

type compiledPattern struct {
	re   *regexp.Regexp
	rule DangerPattern
}

// DangerPattern describes a regex-based guardrail rule.
type DangerPattern struct {
	Pattern string `yaml:"pattern"`
	Level   string `yaml:"level"`
	Message string `yaml:"message"`
}

// RulesFile is the YAML schema root.
type RulesFile struct {
	Rules struct {
		DangerPatterns []DangerPattern `yaml:"danger_patterns"`
	} `yaml:"rules"`
}

// NewGuardrail loads guardrail rules from disk, falling back to the
// built-in defaults when the file is absent.
func NewGuardrail(path string) (*Guardrail, error) {
	rules, err := loadRules(path)
	if err != nil {
		return nil, err
	}

	var compiled []compiledPattern
	for _, pattern := range rules.Rules.DangerPatterns {
		re, err := regexp.Compile(pattern.Pattern)
		if err != nil {
			return nil, err
		}
		compiled = append(compiled, compiledPattern{re: re, rule: pattern})
	}

	return &Guardrail{patterns: compiled}, nil
}

// Evaluate implements ports.SecurityService.
func (g *Guardrail) Evaluate(command string) (domain.RiskAssessment, error) {
	if g == nil {
		return domain.RiskAssessment{}, errors.New("guardrail nil")
	}
	assessment := domain.RiskAssessment{Level: domain.RiskSafe}
	for _, pattern := range g.patterns {
		if pattern.re.MatchString(command) {
			level := parseRiskLevel(pattern.rule.Level)
			if moreSevere(level, assessment.Level) {
				assessment.Level = level
			}
			assessment.Reasons = append(assessment.Reasons, pattern.rule.Message)
			assessment.MatchedRules = append(assessment.MatchedRules, pattern.rule.Pattern)
		}
	}
	return assessment, nil
}

func loadRules(path string) (RulesFile, error) {
	var rules RulesFile
	if path == "" {
		rules.Rules.DangerPatterns = defaultPatterns()
		return rules, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		rules.Rules.DangerPatterns = defaultPatterns()
		return rules, nil
	}
	if err := yaml.Unmarshal(data, &rules); err != nil {
		return RulesFile{}, err
	}
	if len(rules.Rules.DangerPatterns) == 0 {
		rules.Rules.DangerPatterns = defaultPatterns()
	}
	return rules, nil
}

func parseRiskLevel(value string) domain.RiskLevel {
	switch strings.ToLower(value) {
	case "low":
		return domain.RiskLow
	case "medium":
		return domain.RiskMedium
	case "high":
		return domain.RiskHigh
	case "critical":
		return domain.RiskCritical
	default:
		return domain.RiskSafe
	}
}

func moreSevere(next domain.RiskLevel, current domain.RiskLevel) bool {
	order := map[domain.RiskLevel]int{
		domain.RiskSafe:     0,
		domain.RiskLow:      1,
		domain.RiskMedium:   2,
		domain.RiskHigh:     3,
		domain.RiskCritical: 4,
	}
	return order[next] > order[current]
}

func defaultPatterns() []DangerPattern {
	return []DangerPattern{
		{Pattern: `rm\s+-rf\s+/(\s|$)`, Level: "critical", Message: "Deletes the root directory"},
		{Pattern: `rm\s+-rf\s+\*`, Level: "critical", Message: "Recursive delete of everything in place"},
		{Pattern: `rm\s+-rf\s+(\$HOME|~)(\s|/|$)`, Level: "high", Message: "Deletes the home directory"},
		{Pattern: `dd\s+.*of=/dev/`, Level: "critical", Message: "Raw write to a block device"},
		{Pattern: `mkfs\.`, Level: "critical", Message: "Formats a filesystem"},
		{Pattern: `chmod\s+(-R\s+)?777`, Level: "medium", Message: "Overly permissive chmod"},
		{Pattern: `curl[^|]*\|\s*(sudo\s+)?(ba)?sh`, Level: "high", Message: "Pipes a remote script into a shell"},
		{Pattern: `:\(\)\s*{\s*:\|:&\s*};:`, Level: "critical", Message: "Fork bomb"},
	}
}

var _ ports.SecurityService = (*Guardrail)(nil)
