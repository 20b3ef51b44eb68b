package zone

import (
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thenoetrevino/arbor/internal/cli"
	"github.com/thenoetrevino/arbor/internal/models"
	"github.com/thenoetrevino/arbor/internal/remote"
	"github.com/thenoetrevino/arbor/internal/testutil"
	clitest "github.com/thenoetrevino/arbor/internal/testutil/cli"
)

func TestCreateZone(t *testing.T) {
	_, app := clitest.SetupCLITest(t)

	t.Run("json keeps the forest type readable", func(t *testing.T) {
		output, err := clitest.ExecuteCLICommand(t, app, CreateCmd(), []string{
			"--name", "Delta", "--forest-type", "mangrove", "--area", "80.5", "--json",
		})
		require.NoError(t, err)

		data := testutil.ParseJSON(t, output)["data"].(map[string]any)
		assert.Equal(t, "Delta", data["Name"])
		assert.Equal(t, "Mangrove", data["ForestType"])
		assert.Equal(t, 80.5, data["AreaHectares"])
		assert.Positive(t, data["ID"])
	})

	t.Run("service names are accepted", func(t *testing.T) {
		output, err := clitest.ExecuteCLICommand(t, app, CreateCmd(), []string{
			"--name", "Selva", "--forest-type", "Húmedo Tropical", "--area", "10", "--quiet",
		})
		require.NoError(t, err)
		assert.Regexp(t, `^\d+$`, strings.TrimSpace(output))
	})

	t.Run("unknown forest type", func(t *testing.T) {
		output, err := clitest.ExecuteCLICommand(t, app, CreateCmd(), []string{
			"--name", "Pampa", "--forest-type", "grassland", "--area", "10",
		})
		require.Error(t, err)
		assert.Equal(t, cli.ExitDataErr, cli.ExitCode(err))
		assert.Contains(t, output, `unknown forest type "grassland"`)
	})

	t.Run("area must be positive", func(t *testing.T) {
		_, err := clitest.ExecuteCLICommand(t, app, CreateCmd(), []string{
			"--name", "Pampa", "--area", "0",
		})
		require.Error(t, err)
		assert.Equal(t, cli.ExitValidation, cli.ExitCode(err))
	})
}

func TestListAndShowZones(t *testing.T) {
	fake, app := clitest.SetupCLITest(t)
	zones, _, _ := clitest.SeedRegistry(t, fake)

	output, err := clitest.ExecuteCLICommand(t, app, ListCmd(), nil)
	require.NoError(t, err)
	assert.Contains(t, output, "Found 2 zones")
	assert.Contains(t, output, "Reserva Norte - Montane, 1250.0 ha")

	output, err = clitest.ExecuteCLICommand(t, app, ShowCmd(), []string{"--id", strconv.Itoa(zones[1])})
	require.NoError(t, err)
	assert.Contains(t, output, "Zone #"+strconv.Itoa(zones[1])+": Delta")
	assert.Contains(t, output, "Forest type: Mangrove")

	_, err = clitest.ExecuteCLICommand(t, app, ShowCmd(), []string{"--id", "999"})
	require.Error(t, err)
	assert.Equal(t, cli.ExitNotFound, cli.ExitCode(err))
}

func TestUpdateZone(t *testing.T) {
	fake, app := clitest.SetupCLITest(t)
	zones, _, _ := clitest.SeedRegistry(t, fake)
	id := strconv.Itoa(zones[0])

	output, err := clitest.ExecuteCLICommand(t, app, UpdateCmd(), []string{"--id", id, "--area", "1300", "--forest-type", "dry"})
	require.NoError(t, err)
	assert.Contains(t, output, "✓ Zone 'Reserva Norte' updated")

	output, err = clitest.ExecuteCLICommand(t, app, ShowCmd(), []string{"--id", id, "--json"})
	require.NoError(t, err)
	data := testutil.ParseJSON(t, output)["data"].(map[string]any)
	assert.Equal(t, float64(1300), data["AreaHectares"])
	assert.Equal(t, models.ForestDry.String(), data["ForestType"])

	_, err = clitest.ExecuteCLICommand(t, app, UpdateCmd(), []string{"--id", id})
	require.Error(t, err)
	assert.Equal(t, cli.ExitUsage, cli.ExitCode(err))
}

func TestDeleteZone(t *testing.T) {
	fake, app := clitest.SetupCLITest(t)
	zones, _, _ := clitest.SeedRegistry(t, fake)

	output, err := clitest.ExecuteCLICommand(t, app, DeleteCmd(), []string{"--id", strconv.Itoa(zones[1]), "--force"})
	require.NoError(t, err)
	assert.Contains(t, output, "✓ Zone "+strconv.Itoa(zones[1])+" deleted")
	assert.Equal(t, 1, fake.Calls(remote.OpDeleteZone))

	output, err = clitest.ExecuteCLICommand(t, app, ListCmd(), nil)
	require.NoError(t, err)
	assert.Contains(t, output, "Delta - Mangrove, 80.0 ha [inactive]")
}
