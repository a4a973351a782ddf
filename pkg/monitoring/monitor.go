// Package monitoring 暴露 Prometheus 指标以及对应的 Gin 中间件。
package monitoring

import (
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	RequestCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rex_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "rex_http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: []float64{0.05, 0.1, 0.5, 1, 2, 5, 10},
		},
		[]string{"method", "endpoint"},
	)

	// LLMAnalysisCounter 按解析结果（parsed/partial/unparsed/failed）统计模型调用。
	LLMAnalysisCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rex_llm_analysis_total",
			Help: "Language model analyses by parse outcome",
		},
		[]string{"outcome"},
	)

	registerOnce sync.Once
)

// Init 将指标注册到默认 registry，重复调用是安全的。
func Init() {
	registerOnce.Do(func() {
		prometheus.MustRegister(RequestCounter, RequestDuration, LLMAnalysisCounter)
	})
}

// ObserveLLMOutcome 记录一次模型调用的解析结果。
func ObserveLLMOutcome(outcome string) {
	LLMAnalysisCounter.WithLabelValues(outcome).Inc()
}

// MetricsMiddleware 统计每个路由的请求数与耗时。
func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		endpoint := c.FullPath()
		if endpoint == "" {
			endpoint = "unmatched"
		}
		RequestCounter.WithLabelValues(
			c.Request.Method,
			endpoint,
			strconv.Itoa(c.Writer.Status()),
		).Inc()
		RequestDuration.WithLabelValues(c.Request.Method, endpoint).Observe(time.Since(start).Seconds())
	}
}

// PrometheusHandler 以 Gin handler 的形式暴露 /metrics。
func PrometheusHandler() gin.HandlerFunc {
	h := promhttp.Handler()
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}
