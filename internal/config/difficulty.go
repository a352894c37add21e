package config

import (
	"fmt"
	"sort"
	"strings"
)

// RulePreset is a named bundle of rule toggles.
type RulePreset string

const (
	RulesClassic   RulePreset = "classic"   // grace on, flags on, single mines
	RulesMultiMine RulePreset = "multimine" // classic with stacked mines
	RulesFlagless  RulePreset = "flagless"  // no flags at all
	RulesNoGrace   RulePreset = "nograce"   // the first reveal may hit a mine
)

var rulePresets = map[RulePreset]func(*Settings){
	RulesClassic: func(s *Settings) {
		s.GraceRule = true
		s.Flagless = false
		s.MultiMine.Enabled = false
	},
	RulesMultiMine: func(s *Settings) {
		s.GraceRule = true
		s.Flagless = false
		s.MultiMine.Enabled = true
	},
	RulesFlagless: func(s *Settings) {
		s.GraceRule = true
		s.Flagless = true
		s.MultiMine.Enabled = false
	},
	RulesNoGrace: func(s *Settings) {
		s.GraceRule = false
	},
}

// ApplyRulePreset modifies the settings based on a rule preset. Tuning
// values such as mine_increase are left alone.
func ApplyRulePreset(s *Settings, preset RulePreset) error {
	apply, ok := rulePresets[RulePreset(strings.ToLower(string(preset)))]
	if !ok {
		return fmt.Errorf("config: unknown rule preset %q (want %s)", preset, strings.Join(RulePresets(), ", "))
	}
	apply(s)
	return nil
}

// RulePresets returns the preset names, sorted.
func RulePresets() []string {
	names := make([]string, 0, len(rulePresets))
	for name := range rulePresets {
		names = append(names, string(name))
	}
	sort.Strings(names)
	return names
}
