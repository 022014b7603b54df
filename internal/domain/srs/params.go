package srs

// Params defines all configurable parameters for the scheduling algorithm
type Params struct {
	// Interval multipliers applied to the prior scheduled interval.
	HardMultiplier float64
	GoodMultiplier float64
	EasyMultiplier float64

	// MinIntervalDays is the floor applied to every non-Again interval.
	MinIntervalDays float64
}

// ParamsConfig allows overriding the default parameters when creating a new Params instance
type ParamsConfig struct {
	HardMultiplier  float64
	GoodMultiplier  float64
	EasyMultiplier  float64
	MinIntervalDays float64
}

// NewDefaultParams creates a new Params instance with default values
func NewDefaultParams() *Params {
	return &Params{
		HardMultiplier:  1.2, // Slight increase
		GoodMultiplier:  2.5, // Standard growth
		EasyMultiplier:  4.0, // Aggressive growth
		MinIntervalDays: 1,
	}
}

// NewParams creates a new Params instance with custom configuration
func NewParams(config ParamsConfig) *Params {
	params := NewDefaultParams()

	if config.HardMultiplier > 0 {
		params.HardMultiplier = config.HardMultiplier
	}
	if config.GoodMultiplier > 0 {
		params.GoodMultiplier = config.GoodMultiplier
	}
	if config.EasyMultiplier > 0 {
		params.EasyMultiplier = config.EasyMultiplier
	}
	if config.MinIntervalDays > 0 {
		params.MinIntervalDays = config.MinIntervalDays
	}

	return params
}
