package config

type FileCheck struct {
	Path     string `hcl:"path"`
	Type     string `hcl:"type"`
	MaxAge   *int   `hcl:"maxAge"` // hours
	Contains string `hcl:"contains"`
}

type Probe struct {
	Name string     `hcl:",key"`
	Wait bool       `hcl:"wait"`
	File *FileCheck `hcl:"file"`
}

type Ignition struct {
	Probes []Probe `hcl:"probe"`
}
