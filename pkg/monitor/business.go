package monitor

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// 签名结果标签
const (
	OutcomeSigned    = "signed"
	OutcomeRejected  = "rejected"
	OutcomeInvalid   = "invalid"
	OutcomeCancelled = "cancelled"
	OutcomeFailed    = "failed"
)

// SigningMetrics 定义签名业务指标
type SigningMetrics struct {
	SignRequestsTotal    *prometheus.CounterVec
	SignDuration         *prometheus.HistogramVec
	PromptsShownTotal    prometheus.Counter
	AddressRequestsTotal *prometheus.CounterVec
}

// Signing 在 Init 之前也可以使用，只是不会被导出
var Signing = &SigningMetrics{
	SignRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "tron_sign_requests_total",
		Help: "Total number of signing requests by contract type and outcome.",
	}, []string{"contract", "outcome"}),
	SignDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "tron_sign_duration_seconds",
		Help:    "Duration of signing requests including user confirmation.",
		Buckets: []float64{0.05, 0.5, 2, 5, 15, 30, 60, 120},
	}, []string{"contract"}),
	PromptsShownTotal: prometheus.NewCounter(prometheus.CounterOpts{
		Name: "tron_confirm_prompts_total",
		Help: "Total number of confirmation prompts built for signing requests.",
	}),
	AddressRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "tron_address_requests_total",
		Help: "Total number of address derivation requests.",
	}, []string{"display"}),
}

// ObserveSign 记录一次签名请求
func (m *SigningMetrics) ObserveSign(contract, outcome string, start time.Time) {
	m.SignRequestsTotal.WithLabelValues(contract, outcome).Inc()
	m.SignDuration.WithLabelValues(contract).Observe(time.Since(start).Seconds())
}

func (m *SigningMetrics) collectors() []prometheus.Collector {
	return []prometheus.Collector{
		m.SignRequestsTotal,
		m.SignDuration,
		m.PromptsShownTotal,
		m.AddressRequestsTotal,
	}
}
