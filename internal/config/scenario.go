package config

import (
	"strings"

	"github.com/MillerMedia/MSDS-460-Decision-Analytics-The-Diet-Problem/internal/diet"
)

// Input converts the base problem with scenario s applied into solver input.
// Bounds naming undeclared attributes are passed through so the model
// builder rejects them.
func (c *Configuration) Input(s Scenario) diet.Input {
	excluded := make(map[string]struct{}, len(s.ExcludeGoods))
	for _, name := range s.ExcludeGoods {
		excluded[name] = struct{}{}
	}

	in := diet.Input{
		Attributes: c.AttributeNames(),
		Yields:     make(diet.YieldTable, len(c.Goods)),
		MinBounds:  make(map[string]float64),
		MaxBounds:  make(map[string]float64),
	}

	for _, good := range c.Goods {
		if _, skip := excluded[good.Name]; skip {
			continue
		}
		in.Goods = append(in.Goods, diet.Good{Name: good.Name, Cost: good.Cost})
		yields := make(map[string]float64, len(c.Attributes))
		for _, attribute := range in.Attributes {
			if v, ok := lookup(good.Yields, attribute); ok {
				yields[attribute] = v
			}
		}
		in.Yields[good.Name] = yields
	}

	for _, a := range c.Attributes {
		if a.Min != nil {
			in.MinBounds[a.Name] = *a.Min
		}
		if a.Max != nil {
			in.MaxBounds[a.Name] = *a.Max
		}
	}

	for key, override := range s.Bounds {
		name := c.canonicalAttribute(key)
		if override.Min != nil {
			in.MinBounds[name] = *override.Min
		}
		if override.Max != nil {
			in.MaxBounds[name] = *override.Max
		}
	}
	for _, key := range s.ClearMin {
		delete(in.MinBounds, c.canonicalAttribute(key))
	}
	for _, key := range s.ClearMax {
		delete(in.MaxBounds, c.canonicalAttribute(key))
	}

	return in
}

// canonicalAttribute maps a key to the declared attribute it names. The
// configuration loader lower-cases map keys, so matching is
// case-insensitive. Unknown keys are returned unchanged.
func (c *Configuration) canonicalAttribute(key string) string {
	for _, a := range c.Attributes {
		if a.Name == key {
			return a.Name
		}
	}
	for _, a := range c.Attributes {
		if strings.EqualFold(a.Name, key) {
			return a.Name
		}
	}
	return key
}

func lookup(values map[string]float64, key string) (float64, bool) {
	if v, ok := values[key]; ok {
		return v, true
	}
	for k, v := range values {
		if strings.EqualFold(k, key) {
			return v, true
		}
	}
	return 0, false
}
