package config

import "sort"

var Presets = map[string]*Config{
	"sapling": {
		TrunkWidth: 3, TimeScaleMs: 120, Theme: "moss", LeafJitter: 16,
	},
	"classic": {
		TrunkWidth: 7, TimeScaleMs: DefaultTimeScaleMs, Theme: DefaultTheme, LeafJitter: DefaultLeafJitter,
	},
	"ancient": {
		TrunkWidth: 15, TimeScaleMs: 60, Theme: "ink", LeafJitter: 40,
	},
	"windswept": {
		Seed: 271828, TrunkWidth: 9, TimeScaleMs: 80, Theme: "dusk", LeafJitter: 32,
	},
	"timelapse": {
		TimeScaleMs: 10, Theme: DefaultTheme, LeafJitter: DefaultLeafJitter,
	},
}

// GetPreset returns a copy of the named preset with unset fields filled
// from the defaults, or nil.
func GetPreset(name string) *Config {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := *p
	def := DefaultConfig()
	if cfg.MaxFrames == 0 {
		cfg.MaxFrames = def.MaxFrames
	}
	if cfg.DataDir == "" {
		cfg.DataDir = def.DataDir
	}
	return &cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
