package cmd

import (
	"os"
	"os/exec"
	"os/signal"
	"syscall"

	"github.com/mittwald/fileprobe/internal/config"
	"github.com/mittwald/fileprobe/pkg/probe"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(wait)
}

var wait = &cobra.Command{
	Use:   "wait [-- command args...]",
	Short: "Block until all probes marked with wait are satisfied",
	Long:  "This sub-command polls every probe with `wait = true` until all of them succeed, then optionally executes the given command",
	Run: func(cmd *cobra.Command, args []string) {
		ignitionConfig := &config.Ignition{}

		if err := ignitionConfig.GenerateFromConfigDir(configDir); err != nil {
			log.Fatalf("failed while trying to generate ignition config from dir '%+v', err: '%+v'", configDir, err)
		}

		probeHandler, err := probe.NewProbeHandler(ignitionConfig)
		if err != nil {
			log.Fatalf("failed to set up probes: '%+v'", err)
		}

		signals := make(chan os.Signal, 1)
		signal.Notify(signals, syscall.SIGTERM, syscall.SIGINT)
		defer signal.Stop(signals)

		if err := probeHandler.Wait(signals); err != nil {
			log.Fatalf("probe handler failed while waiting for readiness: '%+v'", err)
		}

		log.Info("all probes are ready")

		if len(args) > 0 {
			log.Infof("additional command/args provided - executing: '%+v'", args)
			c := exec.Command(args[0], args[1:]...)
			c.Stdin = os.Stdin
			c.Stdout = os.Stdout
			c.Stderr = os.Stderr
			if err := c.Run(); err != nil {
				log.Fatalf("failed to execute additional args '%+v', err: '%+v'", args, err)
			}
		}
	},
}
