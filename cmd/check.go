package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/mittwald/fileprobe/internal/helper"
	"github.com/mittwald/fileprobe/pkg/fileprobe"
	"github.com/mittwald/fileprobe/pkg/status"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/tidwall/pretty"
)

const (
	outputText   = "text"
	outputJSON   = "json"
	outputPretty = "pretty"
)

type checkOptions struct {
	path     string
	pathType string
	maxAge   int64
	contains string
	output   string
}

var checkOpts = checkOptions{}

func init() {
	rootCmd.AddCommand(check)
	check.Flags().StringVarP(&checkOpts.path, "file", "f", "", "path of the file or directory to inspect")
	check.Flags().StringVarP(&checkOpts.pathType, "type", "t", string(fileprobe.TypeAny), "expected type of the path (any, file, directory)")
	check.Flags().Int64VarP(&checkOpts.maxAge, "age", "a", -1, "maximum age in hours since the last modification; negative disables the check")
	check.Flags().StringVarP(&checkOpts.contains, "content", "s", "", "string the file has to contain")
	check.Flags().StringVarP(&checkOpts.output, "output", "o", outputText, "output format (text, json, pretty)")
}

var check = &cobra.Command{
	Use:   "check",
	Short: "Inspect a single path and exit with a monitoring plugin status",
	Long:  "This sub-command runs one file check and exits with 0 (OK), 2 (CRITICAL) or 3 (UNKNOWN)",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		result := evaluateCheck(checkOpts)

		if err := writeResult(cmd.OutOrStdout(), result, checkOpts.output); err != nil {
			log.Errorf("failed to write check result: %s", err)
			os.Exit(status.Unknown.ExitCode())
		}

		os.Exit(result.Status.ExitCode())
	},
}

func evaluateCheck(opts checkOptions, probeOpts ...fileprobe.Option) status.Result {
	c, err := opts.toCheck()
	if err != nil {
		return status.FromError(err, "")
	}

	err = c.Run(fileprobe.New(c.Path, probeOpts...))
	if err != nil {
		log.WithFields(log.Fields{"kind": "probe", "path": c.Path, "err": err}).Debug("check failed")
	}

	return status.FromError(err, c.Describe())
}

func (opts checkOptions) toCheck() (fileprobe.Check, error) {
	path, err := helper.RenderTemplate("file", helper.ResolveEnv(opts.path))
	if err != nil {
		return fileprobe.Check{}, err
	}

	if path == "" {
		return fileprobe.Check{}, errors.New("no file given, use --file")
	}

	typ, err := fileprobe.ParseType(opts.pathType)
	if err != nil {
		return fileprobe.Check{}, err
	}

	c := fileprobe.Check{
		Path:     path,
		Type:     typ,
		Contains: opts.contains,
	}

	if opts.maxAge >= 0 {
		maxAge := opts.maxAge
		c.MaxAgeHours = &maxAge
	}

	return c, nil
}

func writeResult(w io.Writer, r status.Result, format string) error {
	switch format {
	case outputText, "":
		_, err := fmt.Fprintln(w, r.String())
		return err
	case outputJSON:
		out, err := json.Marshal(r)
		if err != nil {
			return err
		}
		_, err = w.Write(pretty.Pretty(out))
		return err
	case outputPretty:
		_, err := fmt.Fprintln(w, renderResult(r))
		return err
	}

	return fmt.Errorf("unknown output format %q", format)
}
