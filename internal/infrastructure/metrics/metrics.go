// Package metrics expone las métricas Prometheus de la aplicación.
package metrics

import (
	"errors"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/jhoicas/masterdata-api/internal/application/masterdata"
	"github.com/jhoicas/masterdata-api/internal/domain"
)

// Resultados posibles de una operación de datos maestros.
const (
	OutcomeOK    = "ok"
	OutcomeError = "error"
)

var _ masterdata.Observer = (*Metrics)(nil)

// Metrics contadores e histogramas de la aplicación.
type Metrics struct {
	Operations      *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
}

// New crea y registra las métricas en reg (prometheus.DefaultRegisterer en producción).
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		Operations: f.NewCounterVec(prometheus.CounterOpts{
			Name: "masterdata_operations_total",
			Help: "Operaciones create/update/delete por entidad y resultado",
		}, []string{"entity", "operation", "outcome"}),
		RequestDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "masterdata_http_request_duration_seconds",
			Help:    "Duración de las peticiones HTTP",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
	}
}

// Observe implementa masterdata.Observer. El resultado es "ok", la variante del error de
// dominio (validation, duplicate, not_found) o "error" para fallos inesperados.
func (m *Metrics) Observe(entity, operation string, err error) {
	m.Operations.WithLabelValues(entity, operation, outcome(err)).Inc()
}

// ObserveRequest registra la duración de una petición HTTP.
func (m *Metrics) ObserveRequest(method, route string, status int, elapsed time.Duration) {
	m.RequestDuration.WithLabelValues(method, route, strconv.Itoa(status)).Observe(elapsed.Seconds())
}

func outcome(err error) string {
	if err == nil {
		return OutcomeOK
	}
	if de, ok := domain.AsError(err); ok {
		return de.Kind().String()
	}
	if errors.Is(err, masterdata.ErrMissingActor) {
		return "missing_actor"
	}
	return OutcomeError
}
