// Package soap implements remote.Client over the forest service's SOAP 1.1
// endpoints. It also exposes the envelope codec and record mappings so the
// reference server can speak the same wire format.
package soap

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/hashicorp/go-cleanhttp"

	"github.com/thenoetrevino/arbor/internal/metrics"
	"github.com/thenoetrevino/arbor/internal/models"
	"github.com/thenoetrevino/arbor/internal/remote"
)

// Default endpoints of the forest service
const (
	DefaultSpeciesEndpoint = "http://localhost:8282/TreeSpeciesCrudService"
	DefaultZonesEndpoint   = "http://localhost:8081/SistemaForestalFinal/ZoneCrudService"
)

// DefaultTimeout bounds every HTTP exchange
const DefaultTimeout = 15 * time.Second

const maxResponseBytes = 16 << 20

// Request outcomes recorded in metrics
const (
	outcomeOK        = "ok"
	outcomeFault     = "fault"
	outcomeTransport = "transport"
)

// Endpoints holds the URL serving each kind
type Endpoints struct {
	Species            string
	Zones              string
	ConservationStates string
}

// DefaultEndpoints returns the stock deployment layout. Conservation states
// are served by the species endpoint.
func DefaultEndpoints() Endpoints {
	return Endpoints{
		Species:            DefaultSpeciesEndpoint,
		Zones:              DefaultZonesEndpoint,
		ConservationStates: DefaultSpeciesEndpoint,
	}
}

// For returns the endpoint serving kind
func (e Endpoints) For(kind models.Kind) string {
	switch kind {
	case models.KindZone:
		return e.Zones
	case models.KindConservationState:
		if e.ConservationStates != "" {
			return e.ConservationStates
		}
		return e.Species
	default:
		return e.Species
	}
}

// Client talks to the forest service. It is safe for concurrent use and never retries.
type Client struct {
	endpoints Endpoints
	http      *http.Client
	timeout   time.Duration
	logger    *slog.Logger
	metrics   *metrics.Metrics
}

var (
	_ remote.Client = (*Client)(nil)
	_ remote.Pinger = (*Client)(nil)
)

// Option configures a Client
type Option func(*Client)

// WithHTTPClient replaces the pooled HTTP client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.http = hc
	}
}

// WithTimeout bounds each request
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithLogger sets the logger
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithMetrics records request outcomes and latency
func WithMetrics(m *metrics.Metrics) Option {
	return func(c *Client) {
		c.metrics = m
	}
}

// New creates a Client for endpoints
func New(endpoints Endpoints, opts ...Option) *Client {
	c := &Client{
		endpoints: endpoints,
		timeout:   DefaultTimeout,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.http == nil {
		c.http = cleanhttp.DefaultPooledClient()
	}
	if c.http.Timeout == 0 {
		c.http.Timeout = c.timeout
	}
	return c
}

// call posts op to the endpoint of kind and returns its <return> elements
func (c *Client) call(ctx context.Context, kind models.Kind, op string, params []Field) ([]Return, error) {
	start := time.Now()
	returns, err := c.exchange(ctx, c.endpoints.For(kind), op, params)

	outcome := outcomeOK
	switch {
	case remote.IsFault(err):
		outcome = outcomeFault
	case err != nil:
		outcome = outcomeTransport
	}
	c.metrics.ObserveRequest(op, outcome, time.Since(start))
	if err != nil {
		c.logger.Warn("soap call failed", "op", op, "kind", kind, "error", err)
	} else {
		c.logger.Debug("soap call", "op", op, "kind", kind, "returns", len(returns), "duration", time.Since(start))
	}
	return returns, err
}

func (c *Client) exchange(ctx context.Context, endpoint, op string, params []Field) ([]Return, error) {
	body, err := EncodeRequest(op, params)
	if err != nil {
		return nil, fmt.Errorf("%s: encode request: %w", op, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, &remote.TransportError{Op: op, Err: err}
	}
	req.Header.Set("Content-Type", "text/xml; charset=utf-8")
	req.Header.Set("SOAPAction", `""`)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &remote.TransportError{Op: op, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, &remote.TransportError{Op: op, Err: err}
	}

	returns, err := DecodeResponse(data)
	var fault *Fault
	if errors.As(err, &fault) {
		return nil, &remote.ServiceFault{Op: op, Code: fault.Code, Message: fault.String}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &remote.TransportError{Op: op, Err: fmt.Errorf("unexpected status %s", resp.Status)}
	}
	if err != nil {
		return nil, &remote.TransportError{Op: op, Err: err}
	}
	return returns, nil
}

// Ping fetches the WSDL of the endpoint serving kind
func (c *Client) Ping(ctx context.Context, kind models.Kind) error {
	endpoint := c.endpoints.For(kind)
	op := "ping " + string(kind)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?wsdl", nil)
	if err != nil {
		return &remote.TransportError{Op: op, Err: err}
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return &remote.TransportError{Op: op, Err: err}
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	_ = resp.Body.Close()
	if resp.StatusCode >= 500 {
		return &remote.TransportError{Op: op, Err: fmt.Errorf("unexpected status %s", resp.Status)}
	}
	return nil
}

func single(returns []Return) (Return, bool) {
	if len(returns) == 0 {
		return Return{}, false
	}
	return returns[0], true
}

// createdID reads the id answered by a create operation. Services that only
// answer true report id 0. Digits are always an id.
func createdID(op string, returns []Return) (int, error) {
	r, ok := single(returns)
	if !ok {
		return 0, remote.NewFault(op, "empty response")
	}
	text := strings.TrimSpace(r.Text)
	if id, err := strconv.Atoi(text); err == nil {
		return id, nil
	}
	switch {
	case strings.EqualFold(text, "true"):
		return 0, nil
	case strings.EqualFold(text, "false"):
		return 0, remote.NewFault(op, "rejected")
	}
	return 0, &remote.TransportError{Op: op, Err: fmt.Errorf("%w: non-numeric id %q", ErrMalformed, text)}
}

// confirmed reads the boolean answered by update and delete operations
func confirmed(op string, returns []Return) (bool, error) {
	r, ok := single(returns)
	if !ok {
		return false, nil
	}
	b, err := strconv.ParseBool(strings.TrimSpace(r.Text))
	if err != nil {
		return false, &remote.TransportError{Op: op, Err: fmt.Errorf("%w: non-boolean answer %q", ErrMalformed, r.Text)}
	}
	return b, nil
}

func decodeAll[T any](op string, returns []Return, decode func(Return) (T, error)) ([]T, error) {
	out := make([]T, 0, len(returns))
	for _, r := range returns {
		v, err := decode(r)
		if err != nil {
			return nil, &remote.TransportError{Op: op, Err: fmt.Errorf("%w: %v", ErrMalformed, err)}
		}
		out = append(out, v)
	}
	return out, nil
}

func decodeOne[T any](op string, id int, returns []Return, decode func(Return) (T, error)) (*T, error) {
	r, ok := single(returns)
	if !ok || (r.Fields == nil && r.Text == "") {
		return nil, fmt.Errorf("%s %d: %w", op, id, remote.ErrNotFound)
	}
	v, err := decode(r)
	if err != nil {
		return nil, &remote.TransportError{Op: op, Err: fmt.Errorf("%w: %v", ErrMalformed, err)}
	}
	return &v, nil
}

// GetAllSpecies implements remote.SpeciesClient
func (c *Client) GetAllSpecies(ctx context.Context) ([]models.Species, error) {
	returns, err := c.call(ctx, models.KindSpecies, remote.OpGetAllSpecies, nil)
	if err != nil {
		return nil, err
	}
	return decodeAll(remote.OpGetAllSpecies, returns, SpeciesFromReturn)
}

// GetSpeciesByID implements remote.SpeciesClient
func (c *Client) GetSpeciesByID(ctx context.Context, id int) (*models.Species, error) {
	returns, err := c.call(ctx, models.KindSpecies, remote.OpGetSpeciesByID, IDParam(id))
	if err != nil {
		return nil, err
	}
	return decodeOne(remote.OpGetSpeciesByID, id, returns, SpeciesFromReturn)
}

// CreateSpecies implements remote.SpeciesClient
func (c *Client) CreateSpecies(ctx context.Context, s models.Species) (int, error) {
	returns, err := c.call(ctx, models.KindSpecies, remote.OpCreateSpecies, SpeciesParams(s, false))
	if err != nil {
		return 0, err
	}
	return createdID(remote.OpCreateSpecies, returns)
}

// UpdateSpecies implements remote.SpeciesClient
func (c *Client) UpdateSpecies(ctx context.Context, s models.Species) (bool, error) {
	returns, err := c.call(ctx, models.KindSpecies, remote.OpUpdateSpecies, SpeciesParams(s, true))
	if err != nil {
		return false, err
	}
	return confirmed(remote.OpUpdateSpecies, returns)
}

// DeleteSpecies implements remote.SpeciesClient
func (c *Client) DeleteSpecies(ctx context.Context, id int) (bool, error) {
	returns, err := c.call(ctx, models.KindSpecies, remote.OpDeleteSpecies, IDParam(id))
	if err != nil {
		return false, err
	}
	return confirmed(remote.OpDeleteSpecies, returns)
}

// GetAllZones implements remote.ZoneClient
func (c *Client) GetAllZones(ctx context.Context) ([]models.Zone, error) {
	returns, err := c.call(ctx, models.KindZone, remote.OpGetAllZones, nil)
	if err != nil {
		return nil, err
	}
	return decodeAll(remote.OpGetAllZones, returns, ZoneFromReturn)
}

// GetZoneByID implements remote.ZoneClient
func (c *Client) GetZoneByID(ctx context.Context, id int) (*models.Zone, error) {
	returns, err := c.call(ctx, models.KindZone, remote.OpGetZoneByID, IDParam(id))
	if err != nil {
		return nil, err
	}
	return decodeOne(remote.OpGetZoneByID, id, returns, ZoneFromReturn)
}

// CreateZone implements remote.ZoneClient
func (c *Client) CreateZone(ctx context.Context, z models.Zone) (int, error) {
	returns, err := c.call(ctx, models.KindZone, remote.OpCreateZone, ZoneParams(z, false))
	if err != nil {
		return 0, err
	}
	return createdID(remote.OpCreateZone, returns)
}

// UpdateZone implements remote.ZoneClient
func (c *Client) UpdateZone(ctx context.Context, z models.Zone) (bool, error) {
	returns, err := c.call(ctx, models.KindZone, remote.OpUpdateZone, ZoneParams(z, true))
	if err != nil {
		return false, err
	}
	return confirmed(remote.OpUpdateZone, returns)
}

// DeleteZone implements remote.ZoneClient
func (c *Client) DeleteZone(ctx context.Context, id int) (bool, error) {
	returns, err := c.call(ctx, models.KindZone, remote.OpDeleteZone, IDParam(id))
	if err != nil {
		return false, err
	}
	return confirmed(remote.OpDeleteZone, returns)
}

// GetAllConservationStates implements remote.ConservationStateClient
func (c *Client) GetAllConservationStates(ctx context.Context) ([]models.ConservationState, error) {
	returns, err := c.call(ctx, models.KindConservationState, remote.OpGetAllConservationStates, nil)
	if err != nil {
		return nil, err
	}
	return decodeAll(remote.OpGetAllConservationStates, returns, ConservationStateFromReturn)
}

// GetConservationStateByID implements remote.ConservationStateClient
func (c *Client) GetConservationStateByID(ctx context.Context, id int) (*models.ConservationState, error) {
	returns, err := c.call(ctx, models.KindConservationState, remote.OpGetConservationStateByID, IDParam(id))
	if err != nil {
		return nil, err
	}
	return decodeOne(remote.OpGetConservationStateByID, id, returns, ConservationStateFromReturn)
}

// CreateConservationState implements remote.ConservationStateClient
func (c *Client) CreateConservationState(ctx context.Context, s models.ConservationState) (int, error) {
	returns, err := c.call(ctx, models.KindConservationState, remote.OpCreateConservationState, ConservationStateParams(s, false))
	if err != nil {
		return 0, err
	}
	return createdID(remote.OpCreateConservationState, returns)
}

// UpdateConservationState implements remote.ConservationStateClient
func (c *Client) UpdateConservationState(ctx context.Context, s models.ConservationState) (bool, error) {
	returns, err := c.call(ctx, models.KindConservationState, remote.OpUpdateConservationState, ConservationStateParams(s, true))
	if err != nil {
		return false, err
	}
	return confirmed(remote.OpUpdateConservationState, returns)
}

// DeleteConservationState implements remote.ConservationStateClient
func (c *Client) DeleteConservationState(ctx context.Context, id int) (bool, error) {
	returns, err := c.call(ctx, models.KindConservationState, remote.OpDeleteConservationState, IDParam(id))
	if err != nil {
		return false, err
	}
	return confirmed(remote.OpDeleteConservationState, returns)
}
