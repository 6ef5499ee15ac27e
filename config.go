package wheel

import "github.com/rs/zerolog"

// Config holds the engine parameters.
type Config struct {
	// Multiplier is the number of shares covered by one option contract.
	Multiplier Quantity
	// AsOf is the evaluation date for holding periods. Zero means today.
	AsOf Date
	// Logger receives debug traces of the computations.
	Logger zerolog.Logger
}

// DefaultConfig returns a configuration for US equity options.
func DefaultConfig() Config {
	return Config{
		Multiplier: Q(100),
		Logger:     zerolog.Nop(),
	}
}

// asOf returns the evaluation date.
func (c Config) asOf() Date {
	if c.AsOf.IsZero() {
		return Today()
	}
	return c.AsOf
}

// multiplier returns the contract multiplier, 100 when unset.
func (c Config) multiplier() Quantity {
	if c.Multiplier.IsZero() {
		return Q(100)
	}
	return c.Multiplier
}
