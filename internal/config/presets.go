package config

import (
	_ "embed"
	"sort"

	"gopkg.in/yaml.v3"
)

//go:embed presets.yaml
var presetsYAML []byte

// presetNodes keeps the raw documents so every lookup decodes onto fresh
// defaults.
var presetNodes = mustParsePresets(presetsYAML)

func mustParsePresets(data []byte) map[string]yaml.Node {
	nodes := make(map[string]yaml.Node)
	if err := yaml.Unmarshal(data, &nodes); err != nil {
		panic("config: bad presets: " + err.Error())
	}
	return nodes
}

// GetPreset returns a copy of the named preset, or nil if it does not exist.
func GetPreset(name string) *Config {
	node, ok := presetNodes[name]
	if !ok {
		return nil
	}
	cfg := DefaultConfig()
	if err := node.Decode(cfg); err != nil {
		return nil
	}
	return cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(presetNodes))
	for name := range presetNodes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
