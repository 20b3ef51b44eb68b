package manager

import (
	"context"
	"fmt"

	"github.com/thenoetrevino/arbor/internal/async"
	"github.com/thenoetrevino/arbor/internal/cache"
	"github.com/thenoetrevino/arbor/internal/models"
	"github.com/thenoetrevino/arbor/internal/remote"
)

// ConnectionReport maps each kind to the error its endpoint returned, nil when reachable
type ConnectionReport map[models.Kind]error

// Connected returns how many endpoints answered
func (r ConnectionReport) Connected() int {
	n := 0
	for _, err := range r {
		if err == nil {
			n++
		}
	}
	return n
}

// CheckConnection probes every endpoint. Clients implementing remote.Pinger
// are pinged; others are asked for their full collection, bypassing the cache.
// The result fails only when no endpoint answers.
func (m *Manager) CheckConnection(cb Callback[ConnectionReport]) {
	err := async.Go(m.runner, "check connection", func(ctx context.Context) (ConnectionReport, error) {
		return m.probe(ctx), nil
	}, func(report ConnectionReport, _ error) {
		connected := report.Connected()
		msg := fmt.Sprintf("Connected to %d of %d services", connected, len(report))
		if connected == 0 {
			r := fail[ConnectionReport](report[models.KindSpecies], "No connection to the forest service")
			r.Value = report
			cb.deliver(r)
			return
		}
		cb.deliver(succeed(report, msg))
	})
	if err != nil {
		cb.deliver(fail[ConnectionReport](err, "Error checking connection"))
	}
}

func (m *Manager) probe(ctx context.Context) ConnectionReport {
	report := make(ConnectionReport, len(models.Kinds()))
	pinger, canPing := m.client.(remote.Pinger)
	for _, kind := range models.Kinds() {
		var err error
		switch {
		case canPing:
			err = pinger.Ping(ctx, kind)
		case kind == models.KindSpecies:
			_, err = m.client.GetAllSpecies(ctx)
		case kind == models.KindZone:
			_, err = m.client.GetAllZones(ctx)
		default:
			_, err = m.client.GetAllConservationStates(ctx)
		}
		if err != nil {
			m.logger.Warn("endpoint unreachable", "kind", kind, "error", err)
		}
		report[kind] = err
	}
	return report
}

// ZoneName resolves a zone id against the cached zones, stale or not
func (m *Manager) ZoneName(id int) string {
	zones, _, _ := cache.Peek[models.Zone](m.cache, models.KindZone)
	return models.ZoneName(id, zones)
}

// ConservationStateName resolves a state id against the cached states, stale or not
func (m *Manager) ConservationStateName(id int) string {
	states, _, _ := cache.Peek[models.ConservationState](m.cache, models.KindConservationState)
	return models.ConservationStateName(id, states)
}
