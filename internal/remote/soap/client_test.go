package soap

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thenoetrevino/arbor/internal/models"
	"github.com/thenoetrevino/arbor/internal/remote"
)

const (
	speciesURL = "http://forest.test/TreeSpeciesCrudService"
	zonesURL   = "http://forest.test/ZoneCrudService"
)

func newMockedClient(t *testing.T) (*Client, *httpmock.MockTransport) {
	t.Helper()
	mt := httpmock.NewMockTransport()
	c := New(Endpoints{Species: speciesURL, Zones: zonesURL},
		WithHTTPClient(&http.Client{Transport: mt}),
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	)
	return c, mt
}

// respond answers every POST to url with the given returns for the operation named in the request
func respond(t *testing.T, mt *httpmock.MockTransport, url string, returns ...Return) {
	t.Helper()
	mt.RegisterResponder(http.MethodPost, url, func(req *http.Request) (*http.Response, error) {
		body, err := io.ReadAll(req.Body)
		if err != nil {
			return nil, err
		}
		op, _, err := DecodeRequest(body)
		if err != nil {
			return httpmock.NewStringResponse(http.StatusBadRequest, err.Error()), nil
		}
		data, err := EncodeResponse(op, returns)
		if err != nil {
			return nil, err
		}
		return httpmock.NewBytesResponse(http.StatusOK, data), nil
	})
}

func TestGetAllSpecies(t *testing.T) {
	c, mt := newMockedClient(t)
	respond(t, mt, speciesURL,
		Return{Fields: SpeciesFields(models.Species{ID: 1, CommonName: "Pino Candelabro", ZoneID: 2, ZoneName: "Norte", Active: true})},
		Return{Fields: SpeciesFields(models.Species{ID: 2, CommonName: "Ceiba", Active: false})},
	)

	species, err := c.GetAllSpecies(context.Background())
	require.NoError(t, err)
	require.Len(t, species, 2)
	assert.Equal(t, "Pino Candelabro", species[0].CommonName)
	assert.Equal(t, "Norte", species[0].ZoneName)
	assert.False(t, species[1].Active)
	assert.Equal(t, 1, mt.GetCallCountInfo()["POST "+speciesURL])
}

func TestRequestHeadersAndBody(t *testing.T) {
	c, mt := newMockedClient(t)
	mt.RegisterResponder(http.MethodPost, speciesURL, func(req *http.Request) (*http.Response, error) {
		assert.Equal(t, "text/xml; charset=utf-8", req.Header.Get("Content-Type"))
		assert.Equal(t, `""`, req.Header.Get("SOAPAction"))

		body, _ := io.ReadAll(req.Body)
		op, params, err := DecodeRequest(body)
		require.NoError(t, err)
		assert.Equal(t, "createTreeSpecies", op)
		s, err := SpeciesFromParams(params)
		require.NoError(t, err)
		assert.Equal(t, "Roble", s.CommonName)
		assert.Zero(t, s.ID)

		data, _ := EncodeResponse(op, []Return{{Text: "41"}})
		return httpmock.NewBytesResponse(http.StatusOK, data), nil
	})

	id, err := c.CreateSpecies(context.Background(), models.NewSpecies("Roble", "", 1, 2))
	require.NoError(t, err)
	assert.Equal(t, 41, id)
}

func TestCreate_LegacyBooleanAnswer(t *testing.T) {
	c, mt := newMockedClient(t)

	respond(t, mt, zonesURL, Return{Text: "true"})
	id, err := c.CreateZone(context.Background(), models.Zone{Name: "Norte", AreaHectares: 3})
	require.NoError(t, err)
	assert.Zero(t, id)

	respond(t, mt, zonesURL, Return{Text: "false"})
	_, err = c.CreateZone(context.Background(), models.Zone{Name: "Norte", AreaHectares: 3})
	var fault *remote.ServiceFault
	require.ErrorAs(t, err, &fault)
	assert.Equal(t, "rejected", fault.Message)
}

func TestCreate_NumericAnswerIsAlwaysAnID(t *testing.T) {
	tests := []struct {
		answer string
		want   int
	}{
		{"1", 1},
		{"0", 0},
		{" 7 ", 7},
		{"1024", 1024},
	}
	for _, tt := range tests {
		t.Run(tt.answer, func(t *testing.T) {
			c, mt := newMockedClient(t)
			respond(t, mt, zonesURL, Return{Text: tt.answer})

			id, err := c.CreateZone(context.Background(), models.Zone{Name: "Norte", AreaHectares: 3})
			require.NoError(t, err)
			assert.Equal(t, tt.want, id)
		})
	}
}

func TestCreate_LegacyBooleanIgnoresCase(t *testing.T) {
	c, mt := newMockedClient(t)

	respond(t, mt, speciesURL, Return{Text: "TRUE"})
	id, err := c.CreateSpecies(context.Background(), models.NewSpecies("Roble", "", 1, 2))
	require.NoError(t, err)
	assert.Zero(t, id)

	respond(t, mt, speciesURL, Return{Text: "yes"})
	_, err = c.CreateSpecies(context.Background(), models.NewSpecies("Roble", "", 1, 2))
	var transportErr *remote.TransportError
	require.ErrorAs(t, err, &transportErr)
	assert.ErrorIs(t, err, ErrMalformed)
}

func TestGetByID_NotFound(t *testing.T) {
	c, mt := newMockedClient(t)
	respond(t, mt, speciesURL)

	s, err := c.GetSpeciesByID(context.Background(), 99)
	assert.Nil(t, s)
	assert.ErrorIs(t, err, remote.ErrNotFound)
}

func TestGetZoneByID(t *testing.T) {
	c, mt := newMockedClient(t)
	respond(t, mt, zonesURL, Return{Fields: ZoneFields(models.Zone{ID: 3, Name: "Sur", ForestType: models.ForestDry, AreaHectares: 9.5, Active: true})})

	z, err := c.GetZoneByID(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, "Sur", z.Name)
	assert.Equal(t, models.ForestDry, z.ForestType)
}

func TestUpdateAndDelete_Booleans(t *testing.T) {
	c, mt := newMockedClient(t)
	ctx := context.Background()

	respond(t, mt, speciesURL, Return{Text: "true"})
	ok, err := c.UpdateSpecies(ctx, models.Species{ID: 1, CommonName: "Ceiba"})
	require.NoError(t, err)
	assert.True(t, ok)

	respond(t, mt, speciesURL, Return{Text: "false"})
	ok, err = c.DeleteSpecies(ctx, 1)
	require.NoError(t, err)
	assert.False(t, ok)

	respond(t, mt, speciesURL, Return{Text: "maybe"})
	_, err = c.DeleteConservationState(ctx, 1)
	assert.True(t, remote.IsTransport(err))
	assert.ErrorIs(t, err, ErrMalformed)
}

func TestFaultBecomesServiceFault(t *testing.T) {
	c, mt := newMockedClient(t)
	fault, err := EncodeFault(Fault{Code: "S:Server", String: "a species named \"Ceiba\" already exists"})
	require.NoError(t, err)
	mt.RegisterResponder(http.MethodPost, speciesURL, httpmock.NewBytesResponder(http.StatusInternalServerError, fault))

	_, err = c.CreateSpecies(context.Background(), models.NewSpecies("Ceiba", "", 1, 1))
	var sf *remote.ServiceFault
	require.ErrorAs(t, err, &sf)
	assert.Equal(t, remote.OpCreateSpecies, sf.Op)
	assert.Equal(t, "S:Server", sf.Code)
	assert.Contains(t, sf.Message, "already exists")
}

func TestTransportErrors(t *testing.T) {
	tests := []struct {
		name      string
		responder httpmock.Responder
	}{
		{"connection refused", httpmock.NewErrorResponder(errors.New("dial tcp: connection refused"))},
		{"bad gateway without fault", httpmock.NewStringResponder(http.StatusBadGateway, "<html>bad gateway</html>")},
		{"ok but not soap", httpmock.NewStringResponder(http.StatusOK, "hello")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, mt := newMockedClient(t)
			mt.RegisterResponder(http.MethodPost, zonesURL, tt.responder)

			_, err := c.GetAllZones(context.Background())
			var te *remote.TransportError
			require.ErrorAs(t, err, &te)
			assert.Equal(t, remote.OpGetAllZones, te.Op)
			assert.False(t, remote.IsFault(err))
		})
	}
}

func TestTimeoutIsReported(t *testing.T) {
	c, mt := newMockedClient(t)
	mt.RegisterResponder(http.MethodPost, speciesURL, func(req *http.Request) (*http.Response, error) {
		<-req.Context().Done()
		return nil, req.Context().Err()
	})

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err := c.GetAllSpecies(ctx)
	var te *remote.TransportError
	require.ErrorAs(t, err, &te)
	assert.True(t, te.Timeout())
}

func TestConservationStatesUseSpeciesEndpointByDefault(t *testing.T) {
	c, mt := newMockedClient(t)
	respond(t, mt, speciesURL, Return{Fields: ConservationStateFields(models.ConservationState{ID: 1, Name: "Least Concern"})})

	states, err := c.GetAllConservationStates(context.Background())
	require.NoError(t, err)
	require.Len(t, states, 1)
	assert.Equal(t, "Least Concern", states[0].Name)
}

func TestPing(t *testing.T) {
	c, mt := newMockedClient(t)
	mt.RegisterResponder(http.MethodGet, speciesURL+"?wsdl", httpmock.NewStringResponder(http.StatusOK, "<definitions/>"))
	mt.RegisterResponder(http.MethodGet, zonesURL+"?wsdl", httpmock.NewErrorResponder(errors.New("connection refused")))

	assert.NoError(t, c.Ping(context.Background(), models.KindSpecies))
	assert.NoError(t, c.Ping(context.Background(), models.KindConservationState))

	err := c.Ping(context.Background(), models.KindZone)
	assert.True(t, remote.IsTransport(err))
}

func TestEndpointsFor(t *testing.T) {
	e := DefaultEndpoints()
	assert.Equal(t, DefaultSpeciesEndpoint, e.For(models.KindSpecies))
	assert.Equal(t, DefaultZonesEndpoint, e.For(models.KindZone))
	assert.Equal(t, DefaultSpeciesEndpoint, e.For(models.KindConservationState))

	e.ConservationStates = ""
	assert.Equal(t, DefaultSpeciesEndpoint, e.For(models.KindConservationState))
	assert.True(t, strings.HasPrefix(e.For(models.KindZone), "http://"))
}
