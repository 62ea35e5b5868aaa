package cmd

import (
	"fmt"
	"io"
	"os"
	"sort"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/mittwald/fileprobe/pkg/cli"
	"github.com/mittwald/fileprobe/pkg/probe"
	"github.com/mittwald/fileprobe/pkg/status"
	"github.com/spf13/cobra"
)

var (
	apiAddress string
	apiTimeout time.Duration
)

func init() {
	rootCmd.AddCommand(statusCmd)
	statusCmd.Flags().StringVarP(&apiAddress, "api-address", "", cli.DefaultAPIAddress, "address of a running 'fileprobe serve'")
	statusCmd.Flags().DurationVarP(&apiTimeout, "timeout", "", 5*time.Second, "timeout for the status request")
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the probe results of a running probe server",
	Long:  "This sub-command queries /status of a running probe server, prints one line per probe and exits with the worst status",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		response, err := cli.NewApiClient(apiAddress, apiTimeout).Status()
		if err != nil {
			fmt.Fprintln(cmd.OutOrStdout(), status.FromError(err, "").String())
			os.Exit(status.Unknown.ExitCode())
		}

		os.Exit(printStatusResponse(cmd.OutOrStdout(), response).ExitCode())
	},
}

func printStatusResponse(w io.Writer, response *probe.StatusResponse) status.Status {
	names := make([]string, 0, len(response.Probes))
	for name := range response.Probes {
		names = append(names, name)
	}
	sort.Strings(names)

	var statuses []status.Status
	for _, name := range names {
		result := response.Probes[name]
		s := status.Parse(result.Status)
		if result.OK {
			s = status.OK
		}
		statuses = append(statuses, s)

		fmt.Fprintln(w, probeStatusLine(name, s, result.Message))
	}

	return status.Worst(statuses...)
}

func probeStatusLine(name string, s status.Status, message string) string {
	style := statusStyle(s)
	symbol := "▶︎"
	if s != status.OK {
		symbol = "◼︎"
	}

	line := lipgloss.JoinHorizontal(lipgloss.Left,
		style.Render(symbol), " ",
		name, " (",
		style.Render(s.String()), ")",
	)

	if message != "" {
		line = lipgloss.JoinHorizontal(lipgloss.Left, line, ": ", message)
	}

	return line
}
