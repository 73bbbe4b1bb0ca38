package httpapi

import "github.com/prometheus/client_golang/prometheus"

var (
	documentsProcessed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "rubric",
			Name:      "documents_processed_total",
			Help:      "Documents handled by the outline endpoint, by outcome.",
		},
		[]string{"status"},
	)

	headingsEmitted = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "rubric",
			Name:      "headings_emitted_total",
			Help:      "Headings returned across all processed documents.",
		},
	)

	processingSeconds = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "rubric",
			Name:      "processing_seconds",
			Help:      "End-to-end processing time per document.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
	)
)

func init() {
	prometheus.MustRegister(documentsProcessed, headingsEmitted, processingSeconds)
}
