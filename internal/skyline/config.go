package skyline

// Config holds the tunable parameters of the skyline search. Its struct tags
// allow loading it from environment variables or a config file, mirroring the shape of the teacher repo's own per-package Config
// (internal/optimizer/config.go), re-purposed for PSD-I's search knobs
// instead of basket-optimization candidate-selection knobs.
type Config struct {
	// StagnationThreshold is the number of consecutive non-improving
	// emissions after which the aggregator declares the search done.
	StagnationThreshold int `mapstructure:"stagnation_threshold" env:"STAGNATION_THRESHOLD" default:"50"`

	// MaxPermuteStores is checked by Validate only. Mode B's brute-force
	// permutation reorder uses the fixed maxPermuteStores constant (8) and
	// does not read this field.
	MaxPermuteStores int `mapstructure:"max_permute_stores" env:"MAX_PERMUTE_STORES" default:"8"`

	// Modes selects which expander modes the parallel driver runs.
	// Defaults to both (spec §6's mode_selection option).
	Modes []string `mapstructure:"modes" env:"MODES" default:"[\"A\",\"B\"]"`
}

// Defaults returns the default search configuration.
func Defaults() *Config {
	return &Config{
		StagnationThreshold: 50,
		MaxPermuteStores:    maxPermuteStores,
		Modes:               []string{"A", "B"},
	}
}

// Validate checks the configuration for sanity.
func (c *Config) Validate() error {
	if c.StagnationThreshold < 1 {
		return ErrInvalidConfig{Field: "stagnation_threshold", Reason: "must be at least 1"}
	}
	if c.MaxPermuteStores < 1 {
		return ErrInvalidConfig{Field: "max_permute_stores", Reason: "must be at least 1"}
	}
	if len(c.Modes) == 0 {
		return ErrInvalidConfig{Field: "modes", Reason: "must select at least one of A, B"}
	}
	for _, m := range c.Modes {
		if m != "A" && m != "B" {
			return ErrInvalidConfig{Field: "modes", Reason: "must be one of A, B"}
		}
	}
	return nil
}

// ErrInvalidConfig is returned when the configuration is invalid.
type ErrInvalidConfig struct {
	Field  string
	Reason string
}

func (e ErrInvalidConfig) Error() string {
	return e.Field + ": " + e.Reason
}
