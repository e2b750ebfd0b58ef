package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"time"

	"storageguard/models"

	"github.com/go-playground/validator/v10"
)

// ErrBadPayload marks a response that decoded but failed shape validation.
var ErrBadPayload = errors.New("gateway: malformed upstream payload")

// StatusError is returned for non-2xx upstream responses.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("gateway: upstream returned %d: %s", e.Code, e.Body)
}

// Client is the typed HTTP client for the external storage-service API.
// All methods take a context, perform exactly one round trip, and validate
// payload shape at this boundary so callers never see partial structs.
type Client struct {
	baseURL  string
	http     *http.Client
	validate *validator.Validate
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:  baseURL,
		http:     &http.Client{Timeout: 15 * time.Second},
		validate: validator.New(),
	}
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out interface{}) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}
	return c.do(req, out)
}

func (c *Client) post(ctx context.Context, path string, query url.Values, body, out interface{}) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return err
		}
		rdr = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, rdr)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out interface{}) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return &StatusError{Code: resp.StatusCode, Body: string(b)}
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: %v", ErrBadPayload, err)
	}
	return nil
}

// GetRFQs lists the farmer's RFQs. Invalid entries are quarantined (logged
// and dropped) rather than failing the whole batch.
func (c *Client) GetRFQs(ctx context.Context) ([]models.RFQ, error) {
	var env rfqEnvelope
	if err := c.get(ctx, "/storage-guard/rfqs", nil, &env); err != nil {
		return nil, err
	}

	rfqs := make([]models.RFQ, 0, len(env.RFQs))
	for _, r := range env.RFQs {
		if err := c.validate.Struct(r); err != nil {
			log.Printf("gateway: dropping invalid rfq: %v", err)
			continue
		}
		rfqs = append(rfqs, r)
	}
	return rfqs, nil
}

// GetBids lists bids for one RFQ, parsing each price text into a typed
// UnitPrice here so ranking never touches raw strings.
func (c *Client) GetBids(ctx context.Context, rfqID string) ([]models.Bid, error) {
	var env bidEnvelope
	if err := c.get(ctx, "/storage-guard/rfqs/"+url.PathEscape(rfqID)+"/bids", nil, &env); err != nil {
		return nil, err
	}

	bids := make([]models.Bid, 0, len(env.Bids))
	for _, wb := range env.Bids {
		b := wb.normalize(rfqID)
		if err := c.validate.Struct(b); err != nil {
			log.Printf("gateway: dropping invalid bid for rfq %s: %v", rfqID, err)
			continue
		}
		bids = append(bids, b)
	}
	return bids, nil
}

// AcceptBid accepts a bid upstream and returns the booked total price.
func (c *Client) AcceptBid(ctx context.Context, rfqID, bidID, farmerID string) (*AcceptResult, error) {
	q := url.Values{}
	q.Set("bid_id", bidID)
	q.Set("farmer_id", farmerID)

	var env acceptEnvelope
	if err := c.post(ctx, "/storage-guard/rfqs/"+url.PathEscape(rfqID)+"/accept-bid", q, nil, &env); err != nil {
		return nil, err
	}
	return &AcceptResult{TotalPrice: env.Booking.TotalPrice, JobID: env.Job.ID}, nil
}

// GetSensors returns the latest sensor readings across all locations.
func (c *Client) GetSensors(ctx context.Context) ([]models.SensorReading, error) {
	var env sensorEnvelope
	if err := c.get(ctx, "/storage-guard/iot-sensors", nil, &env); err != nil {
		return nil, err
	}

	readings := make([]models.SensorReading, 0, len(env.Sensors))
	for _, ws := range env.Sensors {
		s := ws.normalize()
		if err := c.validate.Struct(s); err != nil {
			log.Printf("gateway: dropping invalid sensor reading: %v", err)
			continue
		}
		readings = append(readings, s)
	}
	return readings, nil
}

// GetPestDetections returns the latest pest events across all locations.
func (c *Client) GetPestDetections(ctx context.Context) ([]models.PestDetection, error) {
	var env pestEnvelope
	if err := c.get(ctx, "/storage-guard/pest-detection", nil, &env); err != nil {
		return nil, err
	}

	events := make([]models.PestDetection, 0, len(env.all()))
	for _, e := range env.all() {
		if err := c.validate.Struct(e); err != nil {
			log.Printf("gateway: dropping invalid pest event: %v", err)
			continue
		}
		events = append(events, e)
	}
	return events, nil
}

// GetInventory returns the farmer's booking inventory snapshot.
func (c *Client) GetInventory(ctx context.Context, farmerID string) ([]models.InventoryItem, error) {
	q := url.Values{}
	q.Set("farmer_id", farmerID)

	var env inventoryEnvelope
	if err := c.get(ctx, "/storage-guard/inventory", q, &env); err != nil {
		return nil, err
	}

	items := make([]models.InventoryItem, 0, len(env.Inventory))
	for _, it := range env.Inventory {
		if err := c.validate.Struct(it); err != nil {
			log.Printf("gateway: dropping invalid inventory item: %v", err)
			continue
		}
		items = append(items, it)
	}
	return items, nil
}

// GetDashboard returns the summary counters for a farmer.
func (c *Client) GetDashboard(ctx context.Context, farmerID string) (*models.DashboardSummary, error) {
	q := url.Values{}
	q.Set("farmer_id", farmerID)

	var env dashboardEnvelope
	if err := c.get(ctx, "/storage-guard/farmer-dashboard", q, &env); err != nil {
		return nil, err
	}
	return &env.Summary, nil
}

// GetMetrics returns the performance metrics for a farmer.
func (c *Client) GetMetrics(ctx context.Context, farmerID string) ([]models.Metric, error) {
	q := url.Values{}
	q.Set("farmer_id", farmerID)

	var env metricsEnvelope
	if err := c.get(ctx, "/storage-guard/metrics", q, &env); err != nil {
		return nil, err
	}

	metrics := make([]models.Metric, 0, len(env.Metrics))
	for _, wm := range env.Metrics {
		metrics = append(metrics, wm.normalize())
	}
	return metrics, nil
}
