package probe

import (
	"github.com/mittwald/fileprobe/internal/config"
	"github.com/mittwald/fileprobe/internal/helper"
	"github.com/mittwald/fileprobe/pkg/fileprobe"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/afero"
)

type filesystemProbe struct {
	name  string
	check fileprobe.Check
	fs    afero.Fs
	clock fileprobe.Clock
}

func NewFilesystemProbe(name string, cfg *config.FileCheck) (*filesystemProbe, error) {
	path, err := helper.RenderTemplate(name, helper.ResolveEnv(cfg.Path))
	if err != nil {
		return nil, err
	}

	typ, err := fileprobe.ParseType(helper.SetDefaultStringIfEmpty(helper.ResolveEnv(cfg.Type), string(fileprobe.TypeAny), "type", name))
	if err != nil {
		return nil, err
	}

	var maxAge *int64
	if cfg.MaxAge != nil {
		hours := int64(*cfg.MaxAge)
		maxAge = &hours
	}

	return &filesystemProbe{
		name: name,
		check: fileprobe.Check{
			Path:        path,
			Type:        typ,
			MaxAgeHours: maxAge,
			Contains:    helper.ResolveEnv(cfg.Contains),
		},
		fs: afero.NewOsFs(),
	}, nil
}

func (f *filesystemProbe) Exec() error {
	opts := []fileprobe.Option{fileprobe.WithFs(f.fs)}
	if f.clock != nil {
		opts = append(opts, fileprobe.WithClock(f.clock))
	}

	p := fileprobe.New(f.check.Path, opts...)
	err := f.check.Run(p)

	recordResult(f.name, p, err)

	if err != nil {
		return err
	}

	log.WithFields(log.Fields{"kind": "probe", "name": f.name, "status": "alive", "path": f.check.Path}).Debug()
	return nil
}
