package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thenoetrevino/arbor/internal/manager"
	"github.com/thenoetrevino/arbor/internal/models"
)

func newTestFormatter(jsonOut, quiet bool) (*OutputFormatter, *bytes.Buffer, *bytes.Buffer) {
	var out, errOut bytes.Buffer
	return &OutputFormatter{JSON: jsonOut, Quiet: quiet, Out: &out, Err: &errOut}, &out, &errOut
}

func decode(t *testing.T, b *bytes.Buffer) map[string]any {
	t.Helper()
	var result map[string]any
	require.NoError(t, json.Unmarshal(b.Bytes(), &result), b.String())
	return result
}

func TestOutputFormatter_Success(t *testing.T) {
	zone := models.Zone{ID: 7, Name: "Delta", ForestType: models.ForestMangrove}

	t.Run("json", func(t *testing.T) {
		f, out, _ := newTestFormatter(true, false)
		require.NoError(t, f.Success(zone))

		result := decode(t, out)
		assert.Equal(t, true, result["success"])
		data := result["data"].(map[string]any)
		assert.Equal(t, float64(7), data["ID"])
		assert.Equal(t, "Mangrove", data["ForestType"])
	})

	t.Run("quiet prints the id", func(t *testing.T) {
		f, out, _ := newTestFormatter(false, true)
		require.NoError(t, f.Success(zone))
		assert.Equal(t, "7\n", out.String())
	})

	t.Run("quiet without an id prints nothing", func(t *testing.T) {
		f, out, _ := newTestFormatter(false, true)
		require.NoError(t, f.Success(map[string]any{"id": 1}))
		assert.Empty(t, out.String())
	})

	t.Run("human", func(t *testing.T) {
		f, out, _ := newTestFormatter(false, false)
		require.NoError(t, f.Success(models.ForestDry))
		assert.Equal(t, "Dry\n", out.String())
	})
}

func TestOutputFormatter_Error(t *testing.T) {
	t.Run("json with suggestion", func(t *testing.T) {
		f, out, errOut := newTestFormatter(true, false)
		require.NoError(t, f.ErrorWithSuggestion("NOT_FOUND", "zone 3 not found", "run arbor zone list"))

		assert.Empty(t, errOut.String())
		result := decode(t, out)
		assert.Equal(t, false, result["success"])
		errData := result["error"].(map[string]any)
		assert.Equal(t, "NOT_FOUND", errData["code"])
		assert.Equal(t, "run arbor zone list", errData["suggestion"])
	})

	t.Run("human goes to stderr", func(t *testing.T) {
		f, out, errOut := newTestFormatter(false, false)
		require.NoError(t, f.ErrorWithSuggestion("X", "boom", "retry"))

		assert.Empty(t, out.String())
		assert.Contains(t, errOut.String(), "❌ Error: boom")
		assert.Contains(t, errOut.String(), "💡 Suggestion: retry")
	})
}

func TestReport(t *testing.T) {
	f, _, errOut := newTestFormatter(false, false)

	assert.NoError(t, Report(f, manager.Result[int]{Value: 1}))

	cause := errors.New("bad name")
	err := Report(f, manager.Result[int]{Err: cause, Kind: manager.KindValidation, Message: "Name is required"})
	require.Error(t, err)
	assert.Equal(t, ExitValidation, ExitCode(err))
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, errOut.String(), "Name is required")
}

func TestPrintList(t *testing.T) {
	zones := []models.Zone{{ID: 1, Name: "Norte"}, {ID: 4, Name: "Sur"}}
	line := func(z models.Zone) string { return z.Name }

	t.Run("human", func(t *testing.T) {
		f, out, _ := newTestFormatter(false, false)
		require.NoError(t, PrintList(f, zones, "zones", line))
		assert.Equal(t, "Found 2 zones:\n\n  Norte\n  Sur\n", out.String())
	})

	t.Run("quiet", func(t *testing.T) {
		f, out, _ := newTestFormatter(false, true)
		require.NoError(t, PrintList(f, zones, "zones", line))
		assert.Equal(t, "1\n4\n", out.String())
	})

	t.Run("json empty list is an array", func(t *testing.T) {
		f, out, _ := newTestFormatter(true, false)
		require.NoError(t, PrintList[models.Zone](f, nil, "zones", line))
		data, ok := decode(t, out)["data"].([]any)
		require.True(t, ok)
		assert.Empty(t, data)
	})

	t.Run("human empty", func(t *testing.T) {
		f, out, _ := newTestFormatter(false, false)
		require.NoError(t, PrintList[models.Zone](f, nil, "zones", line))
		assert.Equal(t, "No zones found\n", out.String())
	})
}

func TestExitCodes(t *testing.T) {
	tests := []struct {
		kind manager.ErrorKind
		want int
	}{
		{manager.KindNone, ExitSuccess},
		{manager.KindValidation, ExitValidation},
		{manager.KindTransport, ExitUnavailable},
		{manager.KindUnavailable, ExitUnavailable},
		{manager.KindService, ExitError},
		{manager.KindInternal, ExitError},
	}
	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, CodeFor(tt.kind))
		})
	}

	assert.Equal(t, ExitSuccess, ExitCode(nil))
	assert.Equal(t, ExitError, ExitCode(errors.New("plain")))
	assert.Equal(t, ExitNotFound, ExitCode(&ExitCodeError{Code: ExitNotFound}))
	assert.Equal(t, "exit status 3", (&ExitCodeError{Code: ExitNotFound}).Error())
}
