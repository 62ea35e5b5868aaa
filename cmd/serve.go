package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/mittwald/fileprobe/internal/config"
	"github.com/mittwald/fileprobe/pkg/pidfile"
	"github.com/mittwald/fileprobe/pkg/probe"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	probeListenPort int
	pidFile         string
)

func init() {
	rootCmd.AddCommand(serve)
	serve.Flags().IntVarP(&probeListenPort, "probe-listen-port", "p", 9102, "set the port to listen for probe requests")
	serve.Flags().StringVarP(&pidFile, "pidfile", "", "", "write fileprobes process id to this file")
}

var serve = &cobra.Command{
	Use:   "serve",
	Short: "Serve configured file probes over HTTP",
	Long:  "This sub-command loads the probes from the config dir and serves their status on /status and /metrics",
	Run: func(cmd *cobra.Command, args []string) {
		ignitionConfig := &config.Ignition{}

		pidFileHandle := pidfile.New(pidFile)

		if err := pidFileHandle.Acquire(); err != nil {
			log.Fatalf("failed to write pid file to %q: %s", pidFile, err)
		}

		defer func() {
			if err := pidFileHandle.Release(); err != nil {
				log.Errorf("error while cleaning up the pid file: %s", err)
			}
		}()

		if err := ignitionConfig.GenerateFromConfigDir(configDir); err != nil {
			log.Fatalf("failed while trying to generate ignition config from dir '%+v', err: '%+v'", configDir, err)
		}

		probeHandler, err := probe.NewProbeHandler(ignitionConfig)
		if err != nil {
			log.Fatalf("failed to set up probes: '%+v'", err)
		}

		signals := make(chan os.Signal, 1)
		signal.Notify(signals,
			syscall.SIGTERM,
			syscall.SIGINT,
		)

		log.Infof("probeServer listens on port %d", probeListenPort)
		if err := probe.RunProbeServer(probeHandler, signals, probeListenPort); err != nil {
			log.Errorf("probe server stopped with error: %s", err)
			return
		}

		log.Info("probe server stopped without error")
	},
}
