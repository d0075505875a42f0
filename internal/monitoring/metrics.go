package monitoring

import (
	"net/http"
	"path"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics 保存站点的请求与后台操作指标，每个实例使用独立的 Registry。
type Metrics struct {
	registry       *prometheus.Registry
	requestsTotal  *prometheus.CounterVec
	responseTime   *prometheus.HistogramVec
	uploadsTotal   *prometheus.CounterVec
	sectionsMoved  prometheus.Counter
	pageViewsTotal *prometheus.CounterVec
}

// NewMetrics 创建并注册全部指标。
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bellari_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "route", "status"},
		),
		responseTime: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "bellari_http_response_time_seconds",
				Help:    "Response time in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		uploadsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bellari_uploads_total",
				Help: "Image uploads by result",
			},
			[]string{"result"},
		),
		sectionsMoved: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "bellari_sections_renumbered_total",
				Help: "Sections whose order index was rewritten by normalization",
			},
		),
		pageViewsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bellari_page_views_total",
				Help: "Public page views by page and language",
			},
			[]string{"page", "language"},
		),
	}

	m.registry.MustRegister(
		m.requestsTotal,
		m.responseTime,
		m.uploadsTotal,
		m.sectionsMoved,
		m.pageViewsTotal,
	)
	return m
}

// Middleware 记录每个请求的路由、状态码与耗时，静态资源除外。
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		if m == nil || isStaticResource(c.Request.URL.Path) {
			return
		}
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.requestsTotal.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
		m.responseTime.WithLabelValues(c.Request.Method, route).Observe(time.Since(start).Seconds())
	}
}

// Handler 暴露 /metrics。
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// RecordUpload 记录一次上传结果，如 ok、rejected、error。
func (m *Metrics) RecordUpload(result string) {
	if m == nil {
		return
	}
	m.uploadsTotal.WithLabelValues(result).Inc()
}

// RecordSectionsMoved 累加被重新编号的区块数量。
func (m *Metrics) RecordSectionsMoved(count int) {
	if m == nil || count <= 0 {
		return
	}
	m.sectionsMoved.Add(float64(count))
}

// RecordPageView 记录一次公开页面访问。
func (m *Metrics) RecordPageView(page, language string) {
	if m == nil {
		return
	}
	m.pageViewsTotal.WithLabelValues(page, language).Inc()
}

var staticExtensions = map[string]struct{}{
	".jpg": {}, ".jpeg": {}, ".png": {}, ".gif": {}, ".webp": {}, ".svg": {},
	".css": {}, ".js": {}, ".woff": {}, ".woff2": {}, ".ttf": {}, ".ico": {},
}

// isStaticResource 检查路径是否为静态资源
func isStaticResource(p string) bool {
	if strings.HasPrefix(p, "/static/") {
		return true
	}
	_, ok := staticExtensions[strings.ToLower(path.Ext(p))]
	return ok
}
