// Package config loads the two on-disk shapes this repository adds
// around the core simulator: a declarative TOML network file and a
// YAML/flag-driven run configuration. Neither format touches
// simulation state directly — both are replayed through network's
// public API so every validation rule in §7 still applies no matter
// how the network was constructed.
package config

import (
	"fmt"

	"github.com/BurntSushi/toml"

	"github.com/deep6ix/gillespie/network"
)

// reactionFile is the on-disk shape of one [[reaction]] table. Rate
// and ReverseRate are read as `interface{}` because TOML allows either
// a float or a string in the same key, mirroring network.AddReaction's
// own polymorphic rate argument.
type reactionFile struct {
	Reactants   []string    `toml:"reactants"`
	Products    []string    `toml:"products"`
	Rate        interface{} `toml:"rate"`
	ReverseRate interface{} `toml:"reverse_rate"`
}

// networkFile is the top-level shape of a network.toml document.
type networkFile struct {
	Reaction []reactionFile   `toml:"reaction"`
	Init     map[string]int64 `toml:"init"`
}

// LoadNetwork parses the TOML file at path and replays it against a
// fresh *network.Network via AddReaction/SetInit. A malformed rate
// string surfaces as *rate.NotUnderstoodError exactly as it would from
// a direct AddReaction call.
func LoadNetwork(path string) (*network.Network, error) {
	var doc networkFile
	if _, err := toml.DecodeFile(path, &doc); err != nil {
		return nil, fmt.Errorf("config: decode network file %q: %w", path, err)
	}

	n := network.New()
	for i, r := range doc.Reaction {
		if r.Rate == nil {
			return nil, fmt.Errorf("config: reaction %d in %q has no rate", i, path)
		}
		rate, err := normalizeRate(r.Rate)
		if err != nil {
			return nil, fmt.Errorf("config: reaction %d in %q: %w", i, path, err)
		}
		var reverse interface{}
		if r.ReverseRate != nil {
			reverse, err = normalizeRate(r.ReverseRate)
			if err != nil {
				return nil, fmt.Errorf("config: reaction %d reverse_rate in %q: %w", i, path, err)
			}
		}
		if err := n.AddReaction(rate, r.Reactants, r.Products, reverse); err != nil {
			return nil, fmt.Errorf("config: reaction %d in %q: %w", i, path, err)
		}
	}
	if len(doc.Init) > 0 {
		n.SetInit(doc.Init)
	}
	return n, nil
}

// normalizeRate converts the decoded TOML value (int64, float64 or
// string) into what network.AddReaction accepts (float64 or string).
func normalizeRate(v interface{}) (interface{}, error) {
	switch r := v.(type) {
	case int64:
		return float64(r), nil
	case float64:
		return r, nil
	case string:
		return r, nil
	default:
		return nil, fmt.Errorf("rate must be a number or string, got %T", v)
	}
}
