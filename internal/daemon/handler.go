package daemon

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/thenoetrevino/arbor/internal/metrics"
	"github.com/thenoetrevino/arbor/internal/remote"
	"github.com/thenoetrevino/arbor/internal/remote/soap"
)

const maxRequestBytes = 1 << 20

// errUnknownOperation is answered as a client fault
var errUnknownOperation = errors.New("unknown operation")

// operation executes one decoded request against the backend
type operation func(ctx context.Context, params []soap.Field) ([]soap.Return, error)

// soapHandler serves every forest operation on a single endpoint
type soapHandler struct {
	backend    remote.Client
	operations map[string]operation
	stats      *Stats
	metrics    *metrics.Metrics
	logger     *slog.Logger
}

func newSOAPHandler(backend remote.Client, stats *Stats, m *metrics.Metrics, logger *slog.Logger) *soapHandler {
	h := &soapHandler{backend: backend, stats: stats, metrics: m, logger: logger}
	h.operations = map[string]operation{
		remote.OpGetAllSpecies:  h.getAllSpecies,
		remote.OpGetSpeciesByID: h.getSpeciesByID,
		remote.OpCreateSpecies:  h.createSpecies,
		remote.OpUpdateSpecies:  h.updateSpecies,
		remote.OpDeleteSpecies:  h.deleteSpecies,

		remote.OpGetAllZones: h.getAllZones,
		remote.OpGetZoneByID: h.getZoneByID,
		remote.OpCreateZone:  h.createZone,
		remote.OpUpdateZone:  h.updateZone,
		remote.OpDeleteZone:  h.deleteZone,

		remote.OpGetAllConservationStates: h.getAllConservationStates,
		remote.OpGetConservationStateByID: h.getConservationStateByID,
		remote.OpCreateConservationState:  h.createConservationState,
		remote.OpUpdateConservationState:  h.updateConservationState,
		remote.OpDeleteConservationState:  h.deleteConservationState,
	}
	return h
}

func (h *soapHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		if _, ok := r.URL.Query()["wsdl"]; ok {
			h.serveDescription(w, r)
			return
		}
		http.Error(w, "SOAP endpoint: POST an envelope or GET ?wsdl", http.StatusMethodNotAllowed)
		return
	case http.MethodPost:
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	h.stats.RequestsTotal.Add(1)
	h.stats.InFlight.Add(1)
	defer h.stats.InFlight.Add(-1)

	start := time.Now()
	body, err := io.ReadAll(io.LimitReader(r.Body, maxRequestBytes))
	if err != nil {
		h.fault(w, "unknown", "S:Client", "failed to read request", start)
		return
	}

	op, params, err := soap.DecodeRequest(body)
	if err != nil {
		h.fault(w, "unknown", "S:Client", err.Error(), start)
		return
	}

	handle, ok := h.operations[op]
	if !ok {
		h.fault(w, op, "S:Client", fmt.Sprintf("%s: %s", errUnknownOperation, op), start)
		return
	}

	returns, err := handle(r.Context(), params)
	if err != nil {
		var sf *remote.ServiceFault
		if errors.As(err, &sf) {
			h.fault(w, op, "S:Server", sf.Message, start)
			return
		}
		h.logger.Error("operation failed", "op", op, "error", err)
		h.fault(w, op, "S:Server", "internal error", start)
		return
	}

	data, err := soap.EncodeResponse(op, returns)
	if err != nil {
		h.logger.Error("failed to encode response", "op", op, "error", err)
		h.fault(w, op, "S:Server", "internal error", start)
		return
	}
	h.metrics.ObserveRequest(op, "ok", time.Since(start))
	h.logger.Debug("served", "op", op, "returns", len(returns), "duration", time.Since(start))
	writeXML(w, http.StatusOK, data)
}

func (h *soapHandler) fault(w http.ResponseWriter, op, code, message string, start time.Time) {
	h.stats.FaultsTotal.Add(1)
	h.metrics.ObserveRequest(op, "fault", time.Since(start))
	h.logger.Info("fault", "op", op, "code", code, "message", message)

	data, err := soap.EncodeFault(soap.Fault{Code: code, String: message})
	if err != nil {
		http.Error(w, message, http.StatusInternalServerError)
		return
	}
	writeXML(w, http.StatusInternalServerError, data)
}

func writeXML(w http.ResponseWriter, status int, data []byte) {
	w.Header().Set("Content-Type", "text/xml; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(data)
}

// serveDescription answers ?wsdl probes with the list of operations
func (h *soapHandler) serveDescription(w http.ResponseWriter, r *http.Request) {
	returns := make([]soap.Return, 0, len(h.operations))
	for name := range h.operations {
		returns = append(returns, soap.Return{Text: name})
	}
	data, err := soap.EncodeResponse("describe", returns)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeXML(w, http.StatusOK, data)
}

func records[T any](items []T, fields func(T) []soap.Field) []soap.Return {
	out := make([]soap.Return, 0, len(items))
	for _, item := range items {
		out = append(out, soap.Return{Fields: fields(item)})
	}
	return out
}

func scalar(v string) []soap.Return {
	return []soap.Return{{Text: v}}
}

func boolean(ok bool, err error) ([]soap.Return, error) {
	if err != nil {
		return nil, err
	}
	return scalar(fmt.Sprint(ok)), nil
}

func created(id int, err error) ([]soap.Return, error) {
	if err != nil {
		return nil, err
	}
	return scalar(fmt.Sprint(id)), nil
}

// byID answers an empty response for unknown ids
func byID[T any](v *T, err error, fields func(T) []soap.Field) ([]soap.Return, error) {
	if errors.Is(err, remote.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return []soap.Return{{Fields: fields(*v)}}, nil
}

func clientFault(op string, err error) error {
	return remote.NewFault(op, "invalid parameters: "+err.Error())
}

func (h *soapHandler) getAllSpecies(ctx context.Context, _ []soap.Field) ([]soap.Return, error) {
	species, err := h.backend.GetAllSpecies(ctx)
	if err != nil {
		return nil, err
	}
	return records(species, soap.SpeciesFields), nil
}

func (h *soapHandler) getSpeciesByID(ctx context.Context, params []soap.Field) ([]soap.Return, error) {
	id, err := soap.IDFromParams(params)
	if err != nil {
		return nil, clientFault(remote.OpGetSpeciesByID, err)
	}
	s, err := h.backend.GetSpeciesByID(ctx, id)
	return byID(s, err, soap.SpeciesFields)
}

func (h *soapHandler) createSpecies(ctx context.Context, params []soap.Field) ([]soap.Return, error) {
	s, err := soap.SpeciesFromParams(params)
	if err != nil {
		return nil, clientFault(remote.OpCreateSpecies, err)
	}
	return created(h.backend.CreateSpecies(ctx, s))
}

func (h *soapHandler) updateSpecies(ctx context.Context, params []soap.Field) ([]soap.Return, error) {
	s, err := soap.SpeciesFromParams(params)
	if err != nil {
		return nil, clientFault(remote.OpUpdateSpecies, err)
	}
	return boolean(h.backend.UpdateSpecies(ctx, s))
}

func (h *soapHandler) deleteSpecies(ctx context.Context, params []soap.Field) ([]soap.Return, error) {
	id, err := soap.IDFromParams(params)
	if err != nil {
		return nil, clientFault(remote.OpDeleteSpecies, err)
	}
	return boolean(h.backend.DeleteSpecies(ctx, id))
}

func (h *soapHandler) getAllZones(ctx context.Context, _ []soap.Field) ([]soap.Return, error) {
	zones, err := h.backend.GetAllZones(ctx)
	if err != nil {
		return nil, err
	}
	return records(zones, soap.ZoneFields), nil
}

func (h *soapHandler) getZoneByID(ctx context.Context, params []soap.Field) ([]soap.Return, error) {
	id, err := soap.IDFromParams(params)
	if err != nil {
		return nil, clientFault(remote.OpGetZoneByID, err)
	}
	z, err := h.backend.GetZoneByID(ctx, id)
	return byID(z, err, soap.ZoneFields)
}

func (h *soapHandler) createZone(ctx context.Context, params []soap.Field) ([]soap.Return, error) {
	z, err := soap.ZoneFromParams(params)
	if err != nil {
		return nil, clientFault(remote.OpCreateZone, err)
	}
	return created(h.backend.CreateZone(ctx, z))
}

func (h *soapHandler) updateZone(ctx context.Context, params []soap.Field) ([]soap.Return, error) {
	z, err := soap.ZoneFromParams(params)
	if err != nil {
		return nil, clientFault(remote.OpUpdateZone, err)
	}
	return boolean(h.backend.UpdateZone(ctx, z))
}

func (h *soapHandler) deleteZone(ctx context.Context, params []soap.Field) ([]soap.Return, error) {
	id, err := soap.IDFromParams(params)
	if err != nil {
		return nil, clientFault(remote.OpDeleteZone, err)
	}
	return boolean(h.backend.DeleteZone(ctx, id))
}

func (h *soapHandler) getAllConservationStates(ctx context.Context, _ []soap.Field) ([]soap.Return, error) {
	states, err := h.backend.GetAllConservationStates(ctx)
	if err != nil {
		return nil, err
	}
	return records(states, soap.ConservationStateFields), nil
}

func (h *soapHandler) getConservationStateByID(ctx context.Context, params []soap.Field) ([]soap.Return, error) {
	id, err := soap.IDFromParams(params)
	if err != nil {
		return nil, clientFault(remote.OpGetConservationStateByID, err)
	}
	s, err := h.backend.GetConservationStateByID(ctx, id)
	return byID(s, err, soap.ConservationStateFields)
}

func (h *soapHandler) createConservationState(ctx context.Context, params []soap.Field) ([]soap.Return, error) {
	s, err := soap.ConservationStateFromParams(params)
	if err != nil {
		return nil, clientFault(remote.OpCreateConservationState, err)
	}
	return created(h.backend.CreateConservationState(ctx, s))
}

func (h *soapHandler) updateConservationState(ctx context.Context, params []soap.Field) ([]soap.Return, error) {
	s, err := soap.ConservationStateFromParams(params)
	if err != nil {
		return nil, clientFault(remote.OpUpdateConservationState, err)
	}
	return boolean(h.backend.UpdateConservationState(ctx, s))
}

func (h *soapHandler) deleteConservationState(ctx context.Context, params []soap.Field) ([]soap.Return, error) {
	id, err := soap.IDFromParams(params)
	if err != nil {
		return nil, clientFault(remote.OpDeleteConservationState, err)
	}
	return boolean(h.backend.DeleteConservationState(ctx, id))
}
