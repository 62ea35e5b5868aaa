package probe

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"sort"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/mittwald/fileprobe/internal/config"
	"github.com/mittwald/fileprobe/pkg/status"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
)

const (
	defaultWaitInterval  = 1 * time.Second
	defaultStatusTimeout = 1 * time.Second
)

type Handler struct {
	probes     map[string]Probe
	waitProbes map[string]Probe

	WaitInterval  time.Duration
	StatusTimeout time.Duration
}

func (h *Handler) Wait(interrupt chan os.Signal) error {
	log.Info("waiting for probe readiness")

	timer := time.NewTicker(h.WaitInterval)
	defer timer.Stop()

	for {
		select {
		case <-timer.C:
			ready := true

			for _, name := range sortedNames(h.waitProbes) {
				err := h.waitProbes[name].Exec()
				if err != nil {
					log.WithFields(log.Fields{"kind": "probe", "name": name, "err": err}).Warn("not ready yet")
					ready = false
				}
			}

			if ready {
				return nil
			}
		case s := <-interrupt:
			if s == syscall.SIGTERM || s == syscall.SIGINT {
				return errors.New("readiness interrupted")
			}
		}
	}
}

func (h *Handler) HandleStatus(res http.ResponseWriter, req *http.Request) {
	response := StatusResponse{
		Probes: make(map[string]*ProbeResult),
	}

	results := make(chan *ProbeResult, len(h.probes))
	timeout := time.NewTimer(h.StatusTimeout)
	defer timeout.Stop()

	for i := range h.probes {
		response.Probes[i] = &ProbeResult{Name: i, OK: false, Status: status.Unknown.String(), Message: "timed out"}

		go func(p Probe, name string) {
			r := status.FromError(p.Exec(), "")
			results <- &ProbeResult{Name: name, OK: r.Status == status.OK, Status: r.Status.String(), Message: r.Message}
		}(h.probes[i], i)
	}

	success := true

collect:
	for i := 0; i < len(h.probes); i++ {
		select {
		case result := <-results:
			response.Probes[result.Name] = result
			success = success && result.OK
		case <-timeout.C:
			success = false
			log.WithFields(log.Fields{"kind": "probe"}).Error("timed out")
			break collect
		}
	}

	res.Header().Set("Content-Type", "application/json")

	if !success {
		res.WriteHeader(http.StatusServiceUnavailable)
	}

	_ = json.NewEncoder(res).Encode(&response)
}

func NewProbeHandler(cfg *config.Ignition) (*Handler, error) {
	probes, err := buildProbesFromConfig(cfg)
	if err != nil {
		return nil, err
	}

	handler := &Handler{
		probes:        probes,
		waitProbes:    filterWaitProbes(cfg, probes),
		WaitInterval:  defaultWaitInterval,
		StatusTimeout: defaultStatusTimeout,
	}
	return handler, nil
}

func (h *Handler) Router() *mux.Router {
	m := mux.NewRouter()
	m.Path("/status").Methods(http.MethodGet).HandlerFunc(h.HandleStatus)
	m.Path("/metrics").Handler(promhttp.Handler())
	return m
}

func RunProbeServer(ph *Handler, signals chan os.Signal, listenPort int) error {
	server := http.Server{
		Addr:    fmt.Sprintf(":%d", listenPort),
		Handler: ph.Router(),
	}

	go func() {
		for s := range signals {
			if s == syscall.SIGINT || s == syscall.SIGTERM {
				log.WithField("receivedSignal", s.String()).Info("shutting down probe server")
				_ = server.Shutdown(context.Background())
				return
			}
		}
	}()

	err := server.ListenAndServe()
	if !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}

func filterWaitProbes(cfg *config.Ignition, probes map[string]Probe) map[string]Probe {
	result := make(map[string]Probe)
	for i := range cfg.Probes {
		if cfg.Probes[i].Wait {
			result[cfg.Probes[i].Name] = probes[cfg.Probes[i].Name]
		}
	}
	return result
}

func buildProbesFromConfig(cfg *config.Ignition) (map[string]Probe, error) {
	result := make(map[string]Probe)
	for i := range cfg.Probes {
		if cfg.Probes[i].File == nil {
			continue
		}

		p, err := NewFilesystemProbe(cfg.Probes[i].Name, cfg.Probes[i].File)
		if err != nil {
			return nil, fmt.Errorf("invalid probe %q: %w", cfg.Probes[i].Name, err)
		}
		result[cfg.Probes[i].Name] = p
	}
	return result, nil
}

func sortedNames(probes map[string]Probe) []string {
	names := make([]string, 0, len(probes))
	for name := range probes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
