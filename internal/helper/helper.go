package helper

import (
	"bytes"
	"os"
	"strings"
	"text/template"

	"github.com/Masterminds/sprig/v3"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

func ResolveEnv(in string) string {
	if strings.HasPrefix(in, "ENV:") {
		return os.Getenv(in[4:])
	}
	return in
}

func SetDefaultStringIfEmpty(value, defaultValue, field, probe string) string {
	if len(value) == 0 {
		log.WithFields(log.Fields{"kind": "probe", "name": probe, "field": field}).Infof("no value specified or env variable not found, assuming default %q", defaultValue)
		return defaultValue
	}
	return value
}

// RenderTemplate expands Go template expressions (with sprig functions) in
// in. Strings without template delimiters are returned unchanged.
func RenderTemplate(name, in string) (string, error) {
	if !strings.Contains(in, "{{") {
		return in, nil
	}

	tpl, err := template.New(name).Funcs(sprig.TxtFuncMap()).Option("missingkey=error").Parse(in)
	if err != nil {
		return "", errors.Wrapf(err, "failed to parse template %q", in)
	}

	var out bytes.Buffer
	if err := tpl.Execute(&out, nil); err != nil {
		return "", errors.Wrapf(err, "failed to render template %q", in)
	}

	return out.String(), nil
}
