package particles

// Config holds the emitter ranges. Every field may be changed between ticks;
// the pool reads it at the top of Reset and Update. Ranges are inclusive and
// are not validated.
type Config struct {
	Capacity        int     `toml:"capacity" yaml:"capacity"`
	InitialFraction float64 `toml:"initial_fraction" yaml:"initial_fraction"`

	SpawnMin int `toml:"spawn_min" yaml:"spawn_min"` // particles per tick
	SpawnMax int `toml:"spawn_max" yaml:"spawn_max"`

	SpeedMin float32 `toml:"speed_min" yaml:"speed_min"` // units per tick
	SpeedMax float32 `toml:"speed_max" yaml:"speed_max"`

	LifetimeMin int `toml:"lifetime_min" yaml:"lifetime_min"` // ticks
	LifetimeMax int `toml:"lifetime_max" yaml:"lifetime_max"`

	SizeMin int `toml:"size_min" yaml:"size_min"` // point sprite size in pixels
	SizeMax int `toml:"size_max" yaml:"size_max"`
}

func DefaultConfig() Config {
	return Config{
		Capacity:        1000,
		InitialFraction: 0.2,
		SpawnMin:        5,
		SpawnMax:        10,
		SpeedMin:        0.01,
		SpeedMax:        0.05,
		LifetimeMin:     60,
		LifetimeMax:     180,
		SizeMin:         8,
		SizeMax:         32,
	}
}

// InitialCount is the live count Reset starts from.
func (c Config) InitialCount() int {
	if c.Capacity <= 0 {
		return 0
	}
	n := int(float64(c.Capacity) * c.InitialFraction)
	if n < 0 {
		return 0
	}
	if n > c.Capacity {
		return c.Capacity
	}
	return n
}
