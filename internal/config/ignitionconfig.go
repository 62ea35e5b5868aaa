package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/hashicorp/hcl"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

func (ignitionConfig *Ignition) GenerateFromConfigDir(configDir string) error {
	configDir = strings.TrimRight(configDir, "/")

	matches, err := findFilesInPath(configDir)
	if err != nil {
		return err
	}

	for _, m := range matches {
		log.Infof("found config file: %s", m)

		contents, err := os.ReadFile(m)
		if err != nil {
			return errors.Wrapf(err, "failed to read configuration file %s", m)
		}

		err = hcl.Unmarshal(contents, ignitionConfig)
		if err != nil {
			err = fmt.Errorf("could not parse configuration file %s: %s", m, err.Error())
			return err
		}
	}

	return ignitionConfig.Validate()
}

// Validate makes sure every probe has a name, a file block and a path, and
// that probe names are unique across all configuration files.
func (ignitionConfig *Ignition) Validate() error {
	seen := make(map[string]bool)

	for i := range ignitionConfig.Probes {
		p := &ignitionConfig.Probes[i]
		if p.Name == "" {
			return fmt.Errorf("probe #%d has no name", i)
		}
		if seen[p.Name] {
			return fmt.Errorf("probe %q is defined more than once", p.Name)
		}
		seen[p.Name] = true

		if p.File == nil {
			return fmt.Errorf("probe %q has no file block", p.Name)
		}
		if p.File.Path == "" {
			return fmt.Errorf("probe %q has no path", p.Name)
		}
		if p.File.MaxAge != nil && *p.File.MaxAge < 0 {
			return fmt.Errorf("probe %q has a negative maxAge", p.Name)
		}
	}

	return nil
}
