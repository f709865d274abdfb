package config

// Overrides carries command-line values. Zero values leave the loaded
// config untouched.
type Overrides struct {
	LogLevel         string
	LogFile          string
	Kernel           string
	CylinderSegments int
	MeshCells        int
}

// Apply copies every set override into cfg.
func (o Overrides) Apply(cfg *Config) {
	if o.LogLevel != "" {
		cfg.Logging.Level = o.LogLevel
	}
	if o.LogFile != "" {
		cfg.Logging.File = o.LogFile
	}
	if o.Kernel != "" {
		cfg.Kernel.Name = o.Kernel
	}
	if o.CylinderSegments > 0 {
		cfg.Kernel.CylinderSegments = o.CylinderSegments
	}
	if o.MeshCells > 0 {
		cfg.Kernel.MeshCells = o.MeshCells
	}
}
