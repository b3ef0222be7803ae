package config

import (
	"fmt"
	"slices"
	"strings"
)

// ValidateConfiguration performs general validation of the configuration and
// returns warnings. Warnings never stop a solve; conditions that make the
// problem invalid surface as build errors instead.
func (c *Configuration) ValidateConfiguration() []string {
	var warnings []string

	declared := make(map[string]struct{}, len(c.Attributes))
	for _, a := range c.Attributes {
		declared[strings.ToLower(a.Name)] = struct{}{}
		if a.Min == nil && a.Max == nil {
			warnings = append(warnings, fmt.Sprintf("Attribute '%s' has no bounds - it will be reported but not constrained", a.Name))
		}
	}

	goods := make(map[string]struct{}, len(c.Goods))
	for _, good := range c.Goods {
		goods[good.Name] = struct{}{}
		if len(good.Yields) == 0 {
			warnings = append(warnings, fmt.Sprintf("Good '%s' has no yields - it contributes to no attribute", good.Name))
			continue
		}
		keys := make([]string, 0, len(good.Yields))
		for key := range good.Yields {
			keys = append(keys, key)
		}
		slices.Sort(keys)
		for _, key := range keys {
			if _, ok := declared[strings.ToLower(key)]; !ok {
				warnings = append(warnings, fmt.Sprintf("Good '%s' yields undeclared attribute '%s' - the yield is ignored", good.Name, key))
			}
		}
	}

	for _, s := range c.Scenarios {
		if !s.Active {
			continue
		}
		excluded := make(map[string]struct{}, len(s.ExcludeGoods))
		for _, name := range s.ExcludeGoods {
			if _, ok := goods[name]; !ok {
				warnings = append(warnings, fmt.Sprintf("Scenario '%s' excludes unknown good '%s'", s.Name, name))
				continue
			}
			excluded[name] = struct{}{}
		}
		if len(goods) > 0 && len(excluded) == len(goods) {
			warnings = append(warnings, fmt.Sprintf("Scenario '%s' excludes every good", s.Name))
		}
		keys := make([]string, 0, len(s.Bounds))
		for key := range s.Bounds {
			keys = append(keys, key)
		}
		slices.Sort(keys)
		for _, key := range keys {
			if _, ok := declared[strings.ToLower(key)]; !ok {
				warnings = append(warnings, fmt.Sprintf("Scenario '%s' bounds undeclared attribute '%s'", s.Name, key))
			}
		}
	}

	if len(c.Scenarios) > 0 && len(c.ActiveScenarios()) == 0 {
		warnings = append(warnings, "No active scenarios - nothing will be solved")
	}

	return warnings
}
