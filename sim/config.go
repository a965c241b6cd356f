// sim/config.go
package sim

// PositionBounds is a bounding box for random device placement in 3-space.
type PositionBounds struct {
	XMin, XMax float64
	YMin, YMax float64
	ZMin, ZMax float64
}

// Config groups every option recognized under §6 of the specification.
// It is parsed from YAML by cmd/config.go with strict field checking and
// handed to the Environment at simulation start.
type Config struct {
	LogLevel string `yaml:"loglevel"`

	ApplicationNumber int `yaml:"application_number"`
	DeviceNumber      int `yaml:"device_number"`

	WifiRange float64 `yaml:"wifi_range"`

	DevicePositioning PositionBounds `yaml:"device_positionning"`

	RandomSeed int64 `yaml:"random_seed"`

	// AppDuration overrides the per-app randomly generated duration when
	// non-zero (ticks).
	AppDuration int64 `yaml:"app_duration"`

	OutputFolder string `yaml:"output_folder"`

	DryRun bool `yaml:"dry_run"`

	// Batch enables the optional batch optimizer (C6) in place of the
	// per-arrival greedy Placement Engine (C5).
	Batch bool `yaml:"batch"`

	// BatchWindow is the width (ticks) of the window BatchProcessing
	// accumulates arrivals over before solving. Only meaningful if Batch.
	BatchWindow int64 `yaml:"batch_window"`
}

// DefaultConfig returns the configuration defaults named in spec.md §6.
func DefaultConfig() Config {
	return Config{
		LogLevel:          "info",
		ApplicationNumber: 500,
		DeviceNumber:      40,
		WifiRange:         6,
		DevicePositioning: PositionBounds{
			XMin: 0, XMax: 100,
			YMin: 0, YMax: 100,
			ZMin: 0, ZMax: 0,
		},
		RandomSeed:   0,
		AppDuration:  0,
		OutputFolder: "output",
		DryRun:       false,
		Batch:        false,
		BatchWindow:  1000,
	}
}
