package dashboard

import (
	"sync"
	"time"

	"storageguard/models"
)

// Cache is the last-known-good dashboard state. Poll failures never clear
// it; only a successful refresh replaces a section wholesale.
type Cache struct {
	mu        sync.RWMutex
	summary   *models.DashboardSummary
	metrics   []models.Metric
	summaryAt time.Time
	metricsAt time.Time
}

func NewCache() *Cache {
	return &Cache{}
}

func (c *Cache) SetSummary(s models.DashboardSummary) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.summary = &s
	c.summaryAt = time.Now()
}

func (c *Cache) Summary() (models.DashboardSummary, time.Time, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.summary == nil {
		return models.DashboardSummary{}, time.Time{}, false
	}
	return *c.summary, c.summaryAt, true
}

func (c *Cache) SetMetrics(m []models.Metric) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.metrics = make([]models.Metric, len(m))
	copy(c.metrics, m)
	c.metricsAt = time.Now()
}

func (c *Cache) Metrics() ([]models.Metric, time.Time, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.metrics == nil {
		return nil, time.Time{}, false
	}
	out := make([]models.Metric, len(c.metrics))
	copy(out, c.metrics)
	return out, c.metricsAt, true
}
