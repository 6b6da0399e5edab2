package telemetry

// SLI metric names used for instrumentation.
const (
	// Latency
	MetricCallLatencyP50 = "guide.call_latency.p50"
	MetricCallLatencyP95 = "guide.call_latency.p95"
	MetricCallLatencyP99 = "guide.call_latency.p99"

	// Throughput
	MetricCallsPerSec = "guide.calls_per_second"

	// Chat relay
	MetricChatSessionLength = "chat.session_length_notes"
	MetricHistoryDepth      = "chat.history_depth"

	// Availability
	MetricUptime = "service.uptime_percentage"
)
