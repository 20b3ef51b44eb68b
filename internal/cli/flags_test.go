package cli

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thenoetrevino/arbor/internal/models"
)

func parsed(t *testing.T, args ...string) *cobra.Command {
	t.Helper()
	cmd := &cobra.Command{Use: "test"}
	cmd.Flags().Int("id", 0, "")
	cmd.Flags().Int("zone", 0, "")
	cmd.Flags().Bool("active", false, "")
	cmd.Flags().String("after", "", "")
	require.NoError(t, cmd.Flags().Parse(args))
	return cmd
}

func TestParseID(t *testing.T) {
	id, err := ParseID(parsed(t, "--id", "4"), "id")
	require.NoError(t, err)
	assert.Equal(t, 4, id)

	_, err = ParseID(parsed(t, "--id", "-1"), "id")
	assert.EqualError(t, err, "id must be greater than 0")
}

func TestOptionalFlags(t *testing.T) {
	cmd := parsed(t, "--zone", "0")
	zone, err := OptionalInt(cmd, "zone")
	require.NoError(t, err)
	require.NotNil(t, zone)
	assert.Equal(t, 0, *zone)

	active, err := OptionalBool(cmd, "active")
	require.NoError(t, err)
	assert.Nil(t, active)

	active, err = OptionalBool(parsed(t, "--active"), "active")
	require.NoError(t, err)
	require.NotNil(t, active)
	assert.True(t, *active)
}

func TestParseDate(t *testing.T) {
	t.Run("unset", func(t *testing.T) {
		d, err := ParseDate(parsed(t), "after", false)
		require.NoError(t, err)
		assert.Nil(t, d)
	})

	t.Run("start of day", func(t *testing.T) {
		d, err := ParseDate(parsed(t, "--after", "2024-03-15"), "after", false)
		require.NoError(t, err)
		assert.Equal(t, time.Date(2024, 3, 15, 0, 0, 0, 0, time.Local), *d)
	})

	t.Run("end of day", func(t *testing.T) {
		d, err := ParseDate(parsed(t, "--after", "2024-03-15"), "after", true)
		require.NoError(t, err)
		assert.Equal(t, time.Date(2024, 3, 15, 23, 59, 59, 999999999, time.Local), *d)
	})

	t.Run("rfc3339", func(t *testing.T) {
		d, err := ParseDate(parsed(t, "--after", "2024-03-15T08:30:00Z"), "after", true)
		require.NoError(t, err)
		assert.True(t, d.Equal(time.Date(2024, 3, 15, 8, 30, 0, 0, time.UTC)))
	})

	t.Run("malformed", func(t *testing.T) {
		_, err := ParseDate(parsed(t, "--after", "yesterday"), "after", false)
		assert.ErrorContains(t, err, "must be a date like 2024-01-31")
	})
}

func TestParseForestType(t *testing.T) {
	for input, want := range map[string]models.ForestType{
		"dry":             models.ForestDry,
		"Humid Tropical":  models.ForestHumidTropical,
		"humid_tropical":  models.ForestHumidTropical,
		"Manglar":         models.ForestMangrove,
		"other":           models.ForestOther,
		"Otro":            models.ForestOther,
		"  montane  ":     models.ForestMontane,
	} {
		got, err := ParseForestType(input)
		require.NoError(t, err, input)
		assert.Equal(t, want, got, input)
	}

	_, err := ParseForestType("tundra")
	assert.ErrorContains(t, err, "expected one of: dry, humid tropical, montane, mangrove, other")
}

func TestConfirm(t *testing.T) {
	for input, want := range map[string]bool{"y\n": true, "YES\n": true, "n\n": false, "\n": false, "": false} {
		cmd := &cobra.Command{}
		var out bytes.Buffer
		cmd.SetOut(&out)
		cmd.SetIn(strings.NewReader(input))

		assert.Equal(t, want, Confirm(cmd, "Delete?"), "input %q", input)
		assert.Equal(t, "Delete? (y/N): ", out.String())
	}
}
