package srs

// Params defines all configurable parameters for the memory scoring policy
type Params struct {
	// Score change applied for a "badly" rating; subtracted from the score
	Demotion int

	// Score change applied for a "well" rating; added to the score
	Promotion int

	// Lowest score a record can hold
	Floor int
}

// ParamsConfig allows overriding the default parameters when creating a new Params instance.
// Zero values keep the defaults.
type ParamsConfig struct {
	Demotion  int
	Promotion int
}

// NewDefaultParams creates a new Params instance with default values
func NewDefaultParams() *Params {
	return &Params{
		Demotion:  2,
		Promotion: 1,
		Floor:     0,
	}
}

// NewParams creates a new Params instance with custom configuration
func NewParams(config ParamsConfig) *Params {
	params := NewDefaultParams()

	if config.Demotion > 0 {
		params.Demotion = config.Demotion
	}
	if config.Promotion > 0 {
		params.Promotion = config.Promotion
	}

	return params
}
