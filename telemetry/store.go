package telemetry

import (
	"sync"
	"time"

	"storageguard/models"
)

// Store holds the farmer's inventory snapshot together with the latest
// sensor readings and pest detection per storage location. It is the one
// piece of state multiple refresh loops write into, so every mutation goes
// through the mutex and readers only ever see materialized copies.
type Store struct {
	mu      sync.RWMutex
	items   []models.InventoryItem
	sensors map[string][]models.SensorReading
	pests   map[string]models.PestDetection
}

func NewStore() *Store {
	return &Store{
		sensors: make(map[string][]models.SensorReading),
		pests:   make(map[string]models.PestDetection),
	}
}

// SetInventory replaces the base inventory wholesale. Retained sensor and
// pest state is untouched; the next Snapshot re-attaches it by location.
func (s *Store) SetInventory(items []models.InventoryItem) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = make([]models.InventoryItem, len(items))
	copy(s.items, items)
}

// ApplySensors groups a reading batch by location and replaces each
// touched location's reading list. Locations absent from the batch keep
// their previous readings. Applying the same batch twice is a no-op.
func (s *Store) ApplySensors(readings []models.SensorReading) {
	grouped := make(map[string][]models.SensorReading)
	for _, r := range readings {
		if r.LocationID == "" {
			continue
		}
		grouped[r.LocationID] = append(grouped[r.LocationID], r)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for loc, list := range grouped {
		s.sensors[loc] = list
	}
}

// ApplyPest keeps, per location, the single event with the latest
// DetectedAt. On a timestamp tie the event seen later in the batch wins;
// the same rule makes a replayed batch converge to the same state. A
// retained newer event is never overwritten by a staler one.
func (s *Store) ApplyPest(events []models.PestDetection) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range events {
		if e.LocationID == "" {
			continue
		}
		cur, ok := s.pests[e.LocationID]
		if !ok || !eventTime(e).Before(eventTime(cur)) {
			s.pests[e.LocationID] = e
		}
	}
}

func eventTime(e models.PestDetection) time.Time {
	if e.DetectedAt == nil {
		return time.Time{}
	}
	return *e.DetectedAt
}

// Snapshot materializes the enriched inventory: every item whose location
// has retained telemetry gets the latest readings and pest event attached;
// items with no matching location come back untouched. The returned slice
// and its reading lists are copies, safe to hand to encoders.
func (s *Store) Snapshot() []models.InventoryItem {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.InventoryItem, len(s.items))
	for i, it := range s.items {
		if list, ok := s.sensors[it.LocationID]; ok {
			it.IoTLatest = make([]models.SensorReading, len(list))
			copy(it.IoTLatest, list)
		}
		if pest, ok := s.pests[it.LocationID]; ok {
			p := pest
			it.PestLatest = &p
		}
		out[i] = it
	}
	return out
}

// PestFor returns the retained latest pest event for a location.
func (s *Store) PestFor(locationID string) (models.PestDetection, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.pests[locationID]
	return p, ok
}

// SensorsFor returns a copy of the retained readings for a location.
func (s *Store) SensorsFor(locationID string) []models.SensorReading {
	s.mu.RLock()
	defer s.mu.RUnlock()
	list, ok := s.sensors[locationID]
	if !ok {
		return nil
	}
	out := make([]models.SensorReading, len(list))
	copy(out, list)
	return out
}
