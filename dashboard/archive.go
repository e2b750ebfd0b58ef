package dashboard

import (
	"context"
	"log"
	"time"

	"storageguard/db"
	"storageguard/models"

	"github.com/robfig/cron/v3"
)

// StartArchiver snapshots the cached summary into Mongo once a day so the
// farmer keeps a spend/booking history even though the upstream service
// only reports current counters. Returns the cron so main can stop it on
// shutdown.
func StartArchiver(cache *Cache, farmerID string) *cron.Cron {
	c := cron.New()
	_, err := c.AddFunc("@daily", func() {
		summary, at, ok := cache.Summary()
		if !ok {
			log.Println("archiver: no summary cached yet, skipping")
			return
		}
		snap := models.SummarySnapshot{
			FarmerID: farmerID,
			Summary:  summary,
			TakenAt:  at,
		}
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if _, err := db.SnapshotsCollection.InsertOne(ctx, snap); err != nil {
			log.Println("archiver: snapshot insert failed:", err)
		}
	})
	if err != nil {
		log.Fatalf("Failed to set up archive job: %v", err)
	}
	c.Start()
	return c
}
