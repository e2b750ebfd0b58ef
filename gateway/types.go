package gateway

import (
	"time"

	"storageguard/models"
)

// Wire envelopes for the storage-service API. The upstream emits a few
// field aliases (value/last_value, detections/pest_detections); they are
// normalized here and nowhere else.

type rfqEnvelope struct {
	RFQs []models.RFQ `json:"rfqs"`
}

type wireBid struct {
	ID       string                  `json:"id"`
	Price    string                  `json:"price_text"`
	ETAHours int                     `json:"eta_hours"`
	Vendor   *models.Vendor          `json:"vendor,omitempty"`
	Location *models.StorageLocation `json:"location,omitempty"`
	Notes    string                  `json:"notes,omitempty"`
}

func (wb wireBid) normalize(rfqID string) models.Bid {
	return models.Bid{
		ID:        wb.ID,
		RFQID:     rfqID,
		PriceText: wb.Price,
		UnitPrice: ParseUnitPrice(wb.Price),
		ETAHours:  wb.ETAHours,
		Vendor:    wb.Vendor,
		Location:  wb.Location,
		Notes:     wb.Notes,
	}
}

type bidEnvelope struct {
	Bids []wireBid `json:"bids"`
}

type acceptEnvelope struct {
	Job struct {
		ID string `json:"id"`
	} `json:"job"`
	Booking struct {
		TotalPrice float64 `json:"total_price"`
	} `json:"booking"`
}

// AcceptResult is what callers of AcceptBid get back.
type AcceptResult struct {
	JobID      string
	TotalPrice float64
}

type wireSensor struct {
	LocationID  string     `json:"location_id"`
	SensorType  string     `json:"sensor_type"`
	Value       *float64   `json:"value,omitempty"`
	LastValue   *float64   `json:"last_value,omitempty"`
	Unit        string     `json:"unit"`
	ReadingTime *time.Time `json:"reading_time,omitempty"`
	Status      string     `json:"status"`
}

func (ws wireSensor) normalize() models.SensorReading {
	var value float64
	switch {
	case ws.Value != nil:
		value = *ws.Value
	case ws.LastValue != nil:
		value = *ws.LastValue
	}
	return models.SensorReading{
		LocationID:  ws.LocationID,
		SensorType:  ws.SensorType,
		Value:       value,
		Unit:        ws.Unit,
		ReadingTime: ws.ReadingTime,
		Status:      ws.Status,
	}
}

type sensorEnvelope struct {
	Sensors []wireSensor `json:"sensors"`
}

type pestEnvelope struct {
	Detections     []models.PestDetection `json:"detections"`
	PestDetections []models.PestDetection `json:"pest_detections"`
}

// all merges the two alias fields; the upstream only ever fills one.
func (pe pestEnvelope) all() []models.PestDetection {
	if len(pe.Detections) > 0 {
		return pe.Detections
	}
	return pe.PestDetections
}

type inventoryEnvelope struct {
	Inventory []models.InventoryItem `json:"inventory"`
}

type dashboardEnvelope struct {
	Summary models.DashboardSummary `json:"summary"`
}

type wireMetric struct {
	Label  string  `json:"label"`
	Metric string  `json:"metric"`
	Value  float64 `json:"value"`
}

func (wm wireMetric) normalize() models.Metric {
	label := wm.Label
	if label == "" {
		label = wm.Metric
	}
	return models.Metric{Label: label, Value: wm.Value}
}

type metricsEnvelope struct {
	Metrics []wireMetric `json:"metrics"`
}
