package core

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/purekb/purekb/pkg/metrics"
)

type Metrics struct {
	apiErrorCounter   *prometheus.CounterVec
	searchTime        *prometheus.HistogramVec
	llmResponseTime   *prometheus.HistogramVec
	llmErrorCounter   *prometheus.CounterVec
	recordStoreErrors *prometheus.CounterVec
}

func NewMetrics(ns, system string) *Metrics {
	// setup metric
	metrics.SetupMetricsManager(ns, system, prometheus.DefaultRegisterer.(*prometheus.Registry))

	m := &Metrics{
		apiErrorCounter:   metrics.NewCounterVec("api_error", []string{"method", "api", "status"}),
		searchTime:        metrics.NewHistogramVec("knowledge_search_time", nil),
		llmResponseTime:   metrics.NewHistogramVec("llm_response_time", []string{"scene"}),
		llmErrorCounter:   metrics.NewCounterVec("llm_error", []string{"scene"}),
		recordStoreErrors: metrics.NewCounterVec("record_store_error", []string{"op"}),
	}

	return m
}

func (m *Metrics) ApiErrorInc(method, api string, status int) {
	m.apiErrorCounter.WithLabelValues(method, api, strconv.Itoa(status)).Inc()
}

func (m *Metrics) SearchTimer() *prometheus.Timer {
	return prometheus.NewTimer(m.searchTime.WithLabelValues())
}

func (m *Metrics) LLMResponseTimer(scene string) *prometheus.Timer {
	return prometheus.NewTimer(m.llmResponseTime.WithLabelValues(scene))
}

func (m *Metrics) LLMErrorInc(scene string) {
	m.llmErrorCounter.WithLabelValues(scene).Inc()
}

func (m *Metrics) RecordStoreErrorInc(op string) {
	m.recordStoreErrors.WithLabelValues(op).Inc()
}
