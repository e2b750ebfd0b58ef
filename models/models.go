package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RFQ statuses as reported by the storage service.
const (
	RFQStatusOpen    = "OPEN"
	RFQStatusAwarded = "AWARDED"
)

// RFQ is a farmer's open call for storage vendors to bid.
type RFQ struct {
	ID           string     `json:"id" validate:"required"`
	Crop         string     `json:"crop"`
	Status       string     `json:"status" validate:"required"`
	QuantityKg   float64    `json:"quantity_kg" validate:"gt=0"`
	DurationDays int        `json:"duration_days" validate:"gt=0"`
	MaxBudget    *float64   `json:"max_budget,omitempty"`
	CreatedAt    *time.Time `json:"created_at,omitempty"`
}

// UnitPrice is the parsed form of a bid's "₹<n>/quintal/month" price text.
// Parsed is false when the text contained no digits; Amount then holds the
// sentinel so the bid still sorts, last.
type UnitPrice struct {
	Amount float64 `json:"amount"`
	Parsed bool    `json:"parsed"`
}

type Vendor struct {
	Name     string  `json:"name"`
	Phone    string  `json:"phone"`
	Rating   float64 `json:"rating"`
	Verified bool    `json:"verified"`
}

type StorageLocation struct {
	Name         string `json:"name"`
	Address      string `json:"address"`
	CapacityText string `json:"capacity_text"`
}

// Bid is a vendor's priced offer against an RFQ. Bids are read-only
// snapshots from the storage service; the only client-side mutation is the
// optimistic Accepted flag after a successful accept call.
type Bid struct {
	ID        string           `json:"id" validate:"required"`
	RFQID     string           `json:"rfq_id"`
	PriceText string           `json:"price_text"`
	UnitPrice UnitPrice        `json:"unit_price"`
	ETAHours  int              `json:"eta_hours"`
	Vendor    *Vendor          `json:"vendor,omitempty"`
	Location  *StorageLocation `json:"location,omitempty"`
	Notes     string           `json:"notes,omitempty"`
	Accepted  bool             `json:"accepted"`
}

// CostEstimate is derived per (Bid, RFQ) pair, never persisted.
type CostEstimate struct {
	Quintals       float64 `json:"quintals"`
	Months         int     `json:"months"`
	EstimatedTotal float64 `json:"estimated_total"`
	WithinBudget   bool    `json:"within_budget"`
}

// SensorReading is one reading from an IoT sensor at a storage location.
// Ephemeral: held only in the telemetry store, sourced from polling.
type SensorReading struct {
	LocationID  string     `json:"location_id" validate:"required"`
	SensorType  string     `json:"sensor_type"`
	Value       float64    `json:"value"`
	Unit        string     `json:"unit"`
	ReadingTime *time.Time `json:"reading_time,omitempty"`
	Status      string     `json:"status"`
}

// PestDetection is a pest event at a storage location. Only the latest
// event per location is retained for display.
type PestDetection struct {
	LocationID      string     `json:"location_id" validate:"required"`
	PestType        string     `json:"pest_type"`
	Severity        string     `json:"severity"`
	ConfidenceScore float64    `json:"confidence_score"`
	DetectedAt      *time.Time `json:"detected_at,omitempty"`
}

// InventoryItem is a booking snapshot enriched in-memory with the most
// recent sensor readings and pest detection for its location.
type InventoryItem struct {
	BookingID     string          `json:"booking_id" validate:"required"`
	CropType      string          `json:"crop_type"`
	QuantityKg    float64         `json:"quantity_kg"`
	Status        string          `json:"status"`
	LocationID    string          `json:"location_id"`
	VendorID      string          `json:"vendor_id"`
	CertificateID string          `json:"certificate_id,omitempty"`
	IoTLatest     []SensorReading `json:"iot_latest,omitempty"`
	PestLatest    *PestDetection  `json:"pest_latest,omitempty"`
}

type DashboardSummary struct {
	TotalBookings     int     `json:"total_bookings"`
	ActiveBookings    int     `json:"active_bookings"`
	CompletedBookings int     `json:"completed_bookings"`
	TotalSpent        float64 `json:"total_spent"`
}

type Metric struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// Farmer is a registered dashboard user.
type Farmer struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	FarmerID     string             `bson:"farmerid" json:"farmer_id"`
	Username     string             `bson:"username" json:"username"`
	Password     string             `bson:"password" json:"-"`
	Phone        string             `bson:"phone" json:"phone,omitempty"`
	CreatedAt    time.Time          `bson:"created_at" json:"created_at"`
	LastLogin    time.Time          `bson:"last_login,omitempty" json:"-"`
	RefreshToken string             `bson:"refresh_token,omitempty" json:"-"`
}

// AwardRecord is written when a farmer accepts a bid, so the award survives
// upstream restarts and backs the vendor order view.
type AwardRecord struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	RFQID      string             `bson:"rfqid" json:"rfq_id"`
	BidID      string             `bson:"bidid" json:"bid_id"`
	FarmerID   string             `bson:"farmerid" json:"farmer_id"`
	TotalPrice float64            `bson:"total_price" json:"total_price"`
	AwardedAt  time.Time          `bson:"awarded_at" json:"awarded_at"`
}

// Certificate is an issued storage quality certificate.
type Certificate struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	CertID     string             `bson:"certid" json:"cert_id"`
	BookingID  string             `bson:"bookingid" json:"booking_id"`
	FarmerID   string             `bson:"farmerid" json:"farmer_id"`
	CropType   string             `bson:"crop_type" json:"crop_type"`
	QuantityKg float64            `bson:"quantity_kg" json:"quantity_kg"`
	LocationID string             `bson:"locationid" json:"location_id"`
	UniqueCode string             `bson:"uniquecode" json:"unique_code"`
	IssuedAt   time.Time          `bson:"issued_at" json:"issued_at"`
}

// Vendor order statuses.
const (
	OrderStatusPending   = "PENDING"
	OrderStatusConfirmed = "CONFIRMED"
	OrderStatusStored    = "STORED"
	OrderStatusReleased  = "RELEASED"
	OrderStatusCancelled = "CANCELLED"
)

// VendorOrder is a storage order as seen from the vendor side.
type VendorOrder struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	OrderID    string             `bson:"orderid" json:"order_id"`
	VendorID   string             `bson:"vendorid" json:"vendor_id"`
	FarmerID   string             `bson:"farmerid" json:"farmer_id"`
	RFQID      string             `bson:"rfqid,omitempty" json:"rfq_id,omitempty"`
	CropType   string             `bson:"crop_type" json:"crop_type"`
	QuantityKg float64            `bson:"quantity_kg" json:"quantity_kg"`
	Status     string             `bson:"status" json:"status"`
	Notes      string             `bson:"notes,omitempty" json:"notes,omitempty"`
	CreatedAt  time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt  time.Time          `bson:"updated_at" json:"updated_at"`
}

// SummarySnapshot is the daily archived dashboard summary.
type SummarySnapshot struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	FarmerID string             `bson:"farmerid" json:"farmer_id"`
	Summary  DashboardSummary   `bson:"summary" json:"summary"`
	TakenAt  time.Time          `bson:"taken_at" json:"taken_at"`
}
