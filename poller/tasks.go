package poller

import (
	"context"
	"os"
	"time"

	"storageguard/dashboard"
	"storageguard/gateway"
	"storageguard/mq"
	"storageguard/rdx"
	"storageguard/telemetry"
)

// Default refresh intervals, overridable via environment.
const (
	DefaultSensorInterval    = 5 * time.Second
	DefaultDashboardInterval = 10 * time.Second
	DefaultMetricsInterval   = 8 * time.Second

	snapshotTTL = 24 * time.Hour
)

// Poller wires the three StorageGuard refresh loops onto a Scheduler:
// sensor/pest telemetry, the dashboard summary, and performance metrics.
type Poller struct {
	sched    *Scheduler
	gw       *gateway.Client
	store    *telemetry.Store
	cache    *dashboard.Cache
	farmerID string
}

func New(gw *gateway.Client, store *telemetry.Store, cache *dashboard.Cache, farmerID string) *Poller {
	p := &Poller{
		sched:    NewScheduler(),
		gw:       gw,
		store:    store,
		cache:    cache,
		farmerID: farmerID,
	}
	p.sched.Add("telemetry", intervalFromEnv("SENSOR_POLL_INTERVAL", DefaultSensorInterval), p.refreshTelemetry)
	p.sched.Add("dashboard", intervalFromEnv("DASHBOARD_POLL_INTERVAL", DefaultDashboardInterval), p.refreshDashboard)
	p.sched.Add("metrics", intervalFromEnv("METRICS_POLL_INTERVAL", DefaultMetricsInterval), p.refreshMetrics)
	return p
}

func (p *Poller) Start() { p.sched.Start() }
func (p *Poller) Stop()  { p.sched.Stop() }

func (p *Poller) Stats(name string) TaskStats { return p.sched.Stats(name) }

// refreshTelemetry pulls the inventory snapshot plus the latest sensor and
// pest batches and merges them into the store. A failure on any fetch
// leaves the store at its last-known-good state.
func (p *Poller) refreshTelemetry(ctx context.Context) error {
	items, err := p.gw.GetInventory(ctx, p.farmerID)
	if err != nil {
		return err
	}
	readings, err := p.gw.GetSensors(ctx)
	if err != nil {
		return err
	}
	events, err := p.gw.GetPestDetections(ctx)
	if err != nil {
		return err
	}

	// Responses that arrive after Stop must not land in the store.
	if err := ctx.Err(); err != nil {
		return err
	}

	p.store.SetInventory(items)
	p.store.ApplySensors(readings)
	p.store.ApplyPest(events)

	go mq.Emit(context.Background(), mq.Update{Kind: "telemetry", FarmerID: p.farmerID})
	return nil
}

func (p *Poller) refreshDashboard(ctx context.Context) error {
	summary, err := p.gw.GetDashboard(ctx, p.farmerID)
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	p.cache.SetSummary(*summary)
	rdx.CacheSnapshot(ctx, p.farmerID, "summary", summary, snapshotTTL)

	go mq.Emit(context.Background(), mq.Update{Kind: "summary", FarmerID: p.farmerID, Payload: summary})
	return nil
}

func (p *Poller) refreshMetrics(ctx context.Context) error {
	metrics, err := p.gw.GetMetrics(ctx, p.farmerID)
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	p.cache.SetMetrics(metrics)
	rdx.CacheSnapshot(ctx, p.farmerID, "metrics", metrics, snapshotTTL)

	go mq.Emit(context.Background(), mq.Update{Kind: "metrics", FarmerID: p.farmerID})
	return nil
}

func intervalFromEnv(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			return d
		}
	}
	return fallback
}
