package daemon

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thenoetrevino/arbor/internal/database"
	"github.com/thenoetrevino/arbor/internal/models"
	"github.com/thenoetrevino/arbor/internal/remote"
	"github.com/thenoetrevino/arbor/internal/remote/soap"
)

// setupTestServer starts a server over an in-memory sqlite backend
func setupTestServer(t *testing.T) (*Server, *soap.Client) {
	t.Helper()

	db, err := database.InitDB(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	server, err := NewServer("127.0.0.1:0", database.NewRepository(db), WithShutdownTimeout(time.Second))
	require.NoError(t, err)
	t.Cleanup(func() { _ = server.Shutdown() })

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go func() { _ = server.Start(ctx) }()

	client := soap.New(soap.Endpoints{
		Species:            server.URL() + SpeciesPath,
		Zones:              server.URL() + ZonesPath,
		ConservationStates: server.URL() + SpeciesPath,
	}, soap.WithTimeout(2*time.Second))
	return server, client
}

func TestNewServer_RequiresBackend(t *testing.T) {
	_, err := NewServer("127.0.0.1:0", nil)
	require.Error(t, err)
}

func TestServer_RoundTripsCRUD(t *testing.T) {
	_, client := setupTestServer(t)
	ctx := context.Background()

	zoneID, err := client.CreateZone(ctx, models.Zone{
		Name: "Montane Belt", ForestType: models.ForestMontane, AreaHectares: 125.5, Active: true,
	})
	require.NoError(t, err)
	assert.Positive(t, zoneID)

	states, err := client.GetAllConservationStates(ctx)
	require.NoError(t, err)
	require.Len(t, states, 5, "the default IUCN states are seeded")

	id, err := client.CreateSpecies(ctx, models.NewSpecies("Silver Fir", "Abies alba", zoneID, states[0].ID))
	require.NoError(t, err)
	assert.Positive(t, id)

	got, err := client.GetSpeciesByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Silver Fir", got.CommonName)
	assert.Equal(t, "Montane Belt", got.ZoneName)
	assert.Equal(t, states[0].Name, got.ConservationStateName)
	assert.True(t, got.Active)
	assert.False(t, got.CreatedAt.IsZero())

	got.ScientificName = "Abies alba Mill."
	ok, err := client.UpdateSpecies(ctx, *got)
	require.NoError(t, err)
	assert.True(t, ok)

	all, err := client.GetAllSpecies(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "Abies alba Mill.", all[0].ScientificName)

	ok, err = client.DeleteSpecies(ctx, id)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestServer_UnknownIDIsNotFound(t *testing.T) {
	_, client := setupTestServer(t)

	_, err := client.GetSpeciesByID(context.Background(), 999)
	assert.ErrorIs(t, err, remote.ErrNotFound)

	_, err = client.GetZoneByID(context.Background(), 999)
	assert.ErrorIs(t, err, remote.ErrNotFound)
}

func TestServer_UnknownIDMutationReturnsFalse(t *testing.T) {
	_, client := setupTestServer(t)

	ok, err := client.DeleteZone(context.Background(), 999)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestServer_ConstraintBecomesFault(t *testing.T) {
	server, client := setupTestServer(t)
	ctx := context.Background()

	zone := models.Zone{Name: "Lowland", ForestType: models.ForestDry, AreaHectares: 1, Active: true}
	_, err := client.CreateZone(ctx, zone)
	require.NoError(t, err)

	_, err = client.CreateZone(ctx, zone)
	var fault *remote.ServiceFault
	require.True(t, errors.As(err, &fault), "expected service fault, got %v", err)
	assert.Equal(t, "S:Server", fault.Code)
	assert.Contains(t, fault.Message, "already exists")

	assert.Equal(t, int64(1), server.Stats().FaultsTotal.Load())
}

func TestServer_UnknownOperation(t *testing.T) {
	server, _ := setupTestServer(t)

	body, err := soap.EncodeRequest("plantTree", nil)
	require.NoError(t, err)

	resp, err := http.Post(server.URL()+SpeciesPath, "text/xml", bytes.NewReader(body))
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	_, err = soap.DecodeResponse(data)
	var fault *soap.Fault
	require.True(t, errors.As(err, &fault))
	assert.Equal(t, "S:Client", fault.Code)
	assert.Contains(t, fault.String, "plantTree")
}

func TestServer_MalformedEnvelope(t *testing.T) {
	server, _ := setupTestServer(t)

	resp, err := http.Post(server.URL()+ZonesPath, "text/xml", strings.NewReader("<not-soap"))
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
}

func TestServer_PingBothEndpoints(t *testing.T) {
	_, client := setupTestServer(t)

	for _, kind := range models.Kinds() {
		assert.NoError(t, client.Ping(context.Background(), kind), kind.Label())
	}
}

func TestServer_RejectsOtherMethods(t *testing.T) {
	server, _ := setupTestServer(t)

	req, err := http.NewRequest(http.MethodDelete, server.URL()+SpeciesPath, nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}

func TestServer_HealthAndMetrics(t *testing.T) {
	server, client := setupTestServer(t)

	_, err := client.GetAllZones(context.Background())
	require.NoError(t, err)

	resp, err := http.Get(server.URL() + "/healthz")
	require.NoError(t, err)
	var snap StatsSnapshot
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&snap))
	_ = resp.Body.Close()
	assert.Equal(t, "ok", snap.Status)
	assert.Equal(t, int64(1), snap.RequestsTotal)
	assert.Zero(t, snap.InFlight)

	resp, err = http.Get(server.URL() + "/metrics")
	require.NoError(t, err)
	data, err := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	require.NoError(t, err)
	assert.Contains(t, string(data), `arbor_soap_requests_total{operation="getAllZones",outcome="ok"} 1`)
}

func TestServer_ShutdownIsIdempotent(t *testing.T) {
	server, _ := setupTestServer(t)

	require.NoError(t, server.Shutdown())
	assert.NoError(t, server.Shutdown())

	_, err := http.Get(server.URL() + "/healthz")
	assert.Error(t, err)
}

func TestServer_StartReturnsOnCancel(t *testing.T) {
	db, err := database.InitDB(context.Background(), ":memory:")
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	server, err := NewServer("127.0.0.1:0", database.NewRepository(db))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- server.Start(ctx) }()

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Start did not return after cancel")
	}
}
