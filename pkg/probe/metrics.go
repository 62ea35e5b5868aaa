package probe

import (
	"github.com/mittwald/fileprobe/pkg/fileprobe"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	probeOKGauge = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Subsystem: "fileprobe",
		Name:      "probe_ok",
		Help:      "Whether the last execution of the file probe succeeded.",
	}, []string{"probe"})

	probeAgeGauge = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Subsystem: "fileprobe",
		Name:      "probe_age_hours",
		Help:      "Hours since the probed path was last modified.",
	}, []string{"probe"})
)

func init() {
	prometheus.MustRegister(probeOKGauge, probeAgeGauge)
}

func recordResult(name string, p *fileprobe.FileProbe, err error) {
	if err != nil {
		probeOKGauge.WithLabelValues(name).Set(0)
	} else {
		probeOKGauge.WithLabelValues(name).Set(1)
	}

	if hours, ageErr := p.AgeInHours(); ageErr == nil {
		probeAgeGauge.WithLabelValues(name).Set(float64(hours))
	} else {
		probeAgeGauge.DeleteLabelValues(name)
	}
}
