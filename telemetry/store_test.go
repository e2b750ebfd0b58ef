package telemetry

import (
	"reflect"
	"testing"
	"time"

	"storageguard/models"
)

func tm(s string) *time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return &t
}

func baseInventory() []models.InventoryItem {
	return []models.InventoryItem{
		{BookingID: "bk1", CropType: "wheat", QuantityKg: 500, Status: "ACTIVE", LocationID: "L1", VendorID: "v1"},
		{BookingID: "bk2", CropType: "rice", QuantityKg: 800, Status: "ACTIVE", LocationID: "L2", VendorID: "v2"},
	}
}

func TestApplySensorsAttachesByLocation(t *testing.T) {
	s := NewStore()
	s.SetInventory(baseInventory())

	s.ApplySensors([]models.SensorReading{
		{LocationID: "L1", SensorType: "temperature", Value: 4.5, Unit: "C", Status: "ok"},
		{LocationID: "L1", SensorType: "humidity", Value: 61, Unit: "%", Status: "ok"},
	})

	snap := s.Snapshot()
	if len(snap[0].IoTLatest) != 2 {
		t.Fatalf("L1 readings = %d, want 2", len(snap[0].IoTLatest))
	}
	if snap[1].IoTLatest != nil {
		t.Errorf("L2 had no readings in the batch but got %d attached", len(snap[1].IoTLatest))
	}
}

func TestApplySensorsReplacesNotAppends(t *testing.T) {
	s := NewStore()
	s.SetInventory(baseInventory())

	s.ApplySensors([]models.SensorReading{
		{LocationID: "L1", SensorType: "temperature", Value: 4.5},
		{LocationID: "L1", SensorType: "humidity", Value: 61},
	})
	s.ApplySensors([]models.SensorReading{
		{LocationID: "L1", SensorType: "temperature", Value: 5.1},
	})

	snap := s.Snapshot()
	if len(snap[0].IoTLatest) != 1 {
		t.Fatalf("L1 readings = %d after replacement batch, want 1", len(snap[0].IoTLatest))
	}
	if snap[0].IoTLatest[0].Value != 5.1 {
		t.Errorf("retained value = %v, want 5.1", snap[0].IoTLatest[0].Value)
	}
}

func TestApplySensorsIdempotent(t *testing.T) {
	s := NewStore()
	s.SetInventory(baseInventory())

	batch := []models.SensorReading{
		{LocationID: "L1", SensorType: "temperature", Value: 4.5, Unit: "C"},
		{LocationID: "L2", SensorType: "co2", Value: 410, Unit: "ppm"},
	}
	s.ApplySensors(batch)
	once := s.Snapshot()
	s.ApplySensors(batch)
	twice := s.Snapshot()

	if !reflect.DeepEqual(once, twice) {
		t.Error("applying the same sensor batch twice changed the snapshot")
	}
}

func TestApplySensorsPreservesUnrelatedFields(t *testing.T) {
	s := NewStore()
	s.SetInventory(baseInventory())
	s.ApplyPest([]models.PestDetection{
		{LocationID: "L1", PestType: "weevil", Severity: "high", DetectedAt: tm("2026-01-10T08:00:00Z")},
	})

	s.ApplySensors([]models.SensorReading{
		{LocationID: "L1", SensorType: "temperature", Value: 4.5},
	})

	snap := s.Snapshot()
	it := snap[0]
	if it.CropType != "wheat" || it.QuantityKg != 500 || it.VendorID != "v1" {
		t.Error("sensor merge altered unrelated inventory fields")
	}
	if it.PestLatest == nil || it.PestLatest.PestType != "weevil" {
		t.Error("sensor merge altered the retained pest event")
	}
}

func TestApplyPestLatestWins(t *testing.T) {
	older := models.PestDetection{LocationID: "L1", PestType: "weevil", DetectedAt: tm("2026-01-10T08:00:00Z")}
	newer := models.PestDetection{LocationID: "L1", PestType: "borer", DetectedAt: tm("2026-01-11T08:00:00Z")}

	// Regardless of batch order, the newer event is retained.
	for name, batch := range map[string][]models.PestDetection{
		"old-then-new": {older, newer},
		"new-then-old": {newer, older},
	} {
		s := NewStore()
		s.SetInventory(baseInventory())
		s.ApplyPest(batch)

		p, ok := s.PestFor("L1")
		if !ok {
			t.Fatalf("%s: no pest event retained", name)
		}
		if p.PestType != "borer" {
			t.Errorf("%s: retained %s, want borer", name, p.PestType)
		}
	}
}

func TestApplyPestStaleBatchNeverOverwrites(t *testing.T) {
	s := NewStore()
	s.SetInventory(baseInventory())

	s.ApplyPest([]models.PestDetection{
		{LocationID: "L1", PestType: "borer", DetectedAt: tm("2026-01-11T08:00:00Z")},
	})
	s.ApplyPest([]models.PestDetection{
		{LocationID: "L1", PestType: "weevil", DetectedAt: tm("2026-01-10T08:00:00Z")},
	})

	p, _ := s.PestFor("L1")
	if p.PestType != "borer" {
		t.Errorf("a stale batch overwrote a newer retained event: got %s", p.PestType)
	}
}

func TestApplyPestTimestampTieLastInBatchWins(t *testing.T) {
	s := NewStore()
	s.SetInventory(baseInventory())

	s.ApplyPest([]models.PestDetection{
		{LocationID: "L1", PestType: "first", DetectedAt: tm("2026-01-10T08:00:00Z")},
		{LocationID: "L1", PestType: "second", DetectedAt: tm("2026-01-10T08:00:00Z")},
	})

	p, _ := s.PestFor("L1")
	if p.PestType != "second" {
		t.Errorf("tie retained %s, want last-in-batch second", p.PestType)
	}
}

func TestApplyPestIdempotent(t *testing.T) {
	s := NewStore()
	s.SetInventory(baseInventory())

	batch := []models.PestDetection{
		{LocationID: "L1", PestType: "weevil", DetectedAt: tm("2026-01-10T08:00:00Z")},
		{LocationID: "L2", PestType: "borer", DetectedAt: tm("2026-01-12T09:00:00Z")},
	}
	s.ApplyPest(batch)
	once := s.Snapshot()
	s.ApplyPest(batch)
	twice := s.Snapshot()

	if !reflect.DeepEqual(once, twice) {
		t.Error("applying the same pest batch twice changed the snapshot")
	}
}

func TestMergeIgnoresUnknownLocations(t *testing.T) {
	s := NewStore()
	s.SetInventory(baseInventory())

	s.ApplySensors([]models.SensorReading{{LocationID: "L9", SensorType: "temperature", Value: 3}})
	s.ApplyPest([]models.PestDetection{{LocationID: "L9", PestType: "weevil", DetectedAt: tm("2026-01-10T08:00:00Z")}})

	for _, it := range s.Snapshot() {
		if it.IoTLatest != nil || it.PestLatest != nil {
			t.Errorf("item %s picked up telemetry for an unrelated location", it.BookingID)
		}
	}
}

func TestSetInventoryReattachesRetainedTelemetry(t *testing.T) {
	s := NewStore()
	s.SetInventory(baseInventory())
	s.ApplySensors([]models.SensorReading{{LocationID: "L1", SensorType: "temperature", Value: 4.5}})

	// A fresh inventory poll replaces the base items; retained telemetry
	// must still attach to matching locations.
	s.SetInventory([]models.InventoryItem{
		{BookingID: "bk3", CropType: "onion", QuantityKg: 200, LocationID: "L1"},
	})

	snap := s.Snapshot()
	if len(snap) != 1 || len(snap[0].IoTLatest) != 1 {
		t.Fatal("retained readings were not re-attached after inventory replacement")
	}
	if snap[0].CropType != "onion" {
		t.Errorf("crop = %s, want onion", snap[0].CropType)
	}
}
