package metrics

import (
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
)

type Outcome string

const (
	Success                  Outcome       = "success"
	Error                    Outcome       = "error"
	MetricRequestTimeout     time.Duration = 5 * time.Second
	MetricRequestIdleTimeout time.Duration = 10 * time.Second
)

func (O Outcome) String() string {
	return string(O)
}

var (
	once                           sync.Once
	metricsRouter                  *chi.Mux
	solanaClientLatency            *prometheus.HistogramVec
	mevClientLatency               *prometheus.HistogramVec
	clientRequestDurationHistogram *prometheus.HistogramVec
	pollerDurationHistogram        *prometheus.HistogramVec
	dbLatency                      *prometheus.HistogramVec
	currentEpochGauge              prometheus.Gauge
	bondActiveStakeGauge           *prometheus.GaugeVec
	excessRewardGauge              *prometheus.GaugeVec
	settlementCounter              *prometheus.CounterVec
	blockSlotFetchFailureCounter   prometheus.Counter
	queuePublishErrorCounter       prometheus.Counter
)

// Init initializes the metrics package.
func Init(metricsPort int) {
	once.Do(func() {
		initMetricsRouter(metricsPort)
		registerMetrics()
	})
}

// initMetricsRouter initializes the metrics router.
func initMetricsRouter(metricsPort int) {
	metricsRouter = chi.NewRouter()
	metricsRouter.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
		promhttp.Handler().ServeHTTP(w, r)
	})
	// Create a custom server with timeout settings
	metricsAddr := fmt.Sprintf(":%d", metricsPort)
	server := &http.Server{
		Addr:         metricsAddr,
		Handler:      metricsRouter,
		ReadTimeout:  MetricRequestTimeout,
		WriteTimeout: MetricRequestTimeout,
		IdleTimeout:  MetricRequestIdleTimeout,
	}

	// Start the server in a separate goroutine
	go func() {
		log.Printf("Starting metrics server on %s", metricsAddr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error().Err(err).Msgf("Error starting metrics server on %s", metricsAddr)
		}
	}()
}

// registerMetrics initializes and register the Prometheus metrics.
func registerMetrics() {
	defaultHistogramBucketsSeconds := []float64{0.1, 0.5, 1, 2.5, 5, 10, 30}

	// client requests are the ones sending to other service
	clientRequestDurationHistogram = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "client_request_duration_seconds",
			Help:    "Histogram of outgoing client request durations in seconds.",
			Buckets: defaultHistogramBucketsSeconds,
		},
		[]string{"baseurl", "method", "path", "status"},
	)

	solanaClientLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "solana_client_latency_seconds",
			Help:    "Histogram of solana rpc client durations in seconds.",
			Buckets: defaultHistogramBucketsSeconds,
		},
		[]string{"method", "status"},
	)

	mevClientLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "mev_client_latency_seconds",
			Help:    "Histogram of mev client durations in seconds.",
			Buckets: defaultHistogramBucketsSeconds,
		},
		[]string{"method", "status"},
	)

	pollerDurationHistogram = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "poller_duration_seconds",
			Help:    "Histogram of poller durations in seconds.",
			Buckets: defaultHistogramBucketsSeconds,
		},
		[]string{"type", "status"},
	)

	dbLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "db_latency_seconds",
			Help: "DB latency in seconds splitted by method and execution status",
		},
		[]string{"method", "status"},
	)

	currentEpochGauge = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "solana_current_epoch",
			Help: "Last epoch observed by the epoch monitor",
		},
	)

	bondActiveStakeGauge = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "bond_active_stake_lamports",
			Help: "Active stake of the bond during the last reconciled epoch",
		},
		[]string{"vote_pubkey", "bond"},
	)

	excessRewardGauge = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "excess_reward_lamports",
			Help: "Excess reward owed to the bond for the last reconciled epoch, split by reward stream",
		},
		[]string{"vote_pubkey", "bond", "stream"},
	)

	settlementCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "settlement_outcome_count",
			Help: "Number of bond reconciliations by outcome",
		},
		[]string{"outcome"},
	)

	blockSlotFetchFailureCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "block_slot_fetch_failure_count",
			Help: "Number of leader slots whose block could not be fetched",
		},
	)

	queuePublishErrorCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "queue_publish_error_count",
			Help: "The total number of errors when publishing reports to the queue",
		},
	)

	prometheus.MustRegister(
		solanaClientLatency,
		mevClientLatency,
		clientRequestDurationHistogram,
		pollerDurationHistogram,
		dbLatency,
		currentEpochGauge,
		bondActiveStakeGauge,
		excessRewardGauge,
		settlementCounter,
		blockSlotFetchFailureCounter,
		queuePublishErrorCounter,
	)
}

func RecordSolanaClientLatency(d time.Duration, method string, failure bool) {
	status := Success
	if failure {
		status = Error
	}

	solanaClientLatency.WithLabelValues(method, status.String()).Observe(d.Seconds())
}

func RecordMevClientLatency(d time.Duration, method string, failure bool) {
	status := Success
	if failure {
		status = Error
	}

	mevClientLatency.WithLabelValues(method, status.String()).Observe(d.Seconds())
}

func RecordDbLatency(d time.Duration, method string, failure bool) {
	status := Success
	if failure {
		status = Error
	}

	dbLatency.WithLabelValues(method, status.String()).Observe(d.Seconds())
}

func RecordCurrentEpoch(epoch uint64) {
	currentEpochGauge.Set(float64(epoch))
}

func RecordBondActiveStake(votePubkey, bond string, lamports uint64) {
	bondActiveStakeGauge.WithLabelValues(votePubkey, bond).Set(float64(lamports))
}

func RecordExcessReward(votePubkey, bond, stream string, lamports int64) {
	excessRewardGauge.WithLabelValues(votePubkey, bond, stream).Set(float64(lamports))
}

func IncSettlementOutcome(outcome string) {
	settlementCounter.WithLabelValues(outcome).Inc()
}

func AddBlockSlotFetchFailures(n int) {
	blockSlotFetchFailureCounter.Add(float64(n))
}

func RecordQueuePublishError() {
	queuePublishErrorCounter.Inc()
}

// StartClientRequestDurationTimer starts a timer to measure outgoing client request duration.
func StartClientRequestDurationTimer(baseUrl, method, path string) func(statusCode int) {
	startTime := time.Now()
	return func(statusCode int) {
		duration := time.Since(startTime).Seconds()
		clientRequestDurationHistogram.WithLabelValues(
			baseUrl,
			method,
			path,
			fmt.Sprintf("%d", statusCode),
		).Observe(duration)
	}
}
