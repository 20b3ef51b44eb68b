package state

import (
	"context"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thenoetrevino/arbor/internal/cli"
	"github.com/thenoetrevino/arbor/internal/models"
	"github.com/thenoetrevino/arbor/internal/testutil"
	clitest "github.com/thenoetrevino/arbor/internal/testutil/cli"
)

func TestListStates_LocalBackend(t *testing.T) {
	app := clitest.SetupLocalCLITest(t)

	output, err := clitest.ExecuteCLICommand(t, app, ListCmd(), nil)
	require.NoError(t, err)
	assert.Contains(t, output, "Found 5 conservation states")
	assert.Contains(t, output, "Critically Endangered (critical)")

	output, err = clitest.ExecuteCLICommand(t, app, ListCmd(), []string{"--quiet"})
	require.NoError(t, err)
	assert.Len(t, strings.Fields(output), 5)
}

func TestCreateUpdateShowState(t *testing.T) {
	app := clitest.SetupLocalCLITest(t)

	output, err := clitest.ExecuteCLICommand(t, app, CreateCmd(), []string{
		"--name", "Extinct in the Wild", "--risk-level", "extreme", "--quiet",
	})
	require.NoError(t, err)
	id := strings.TrimSpace(output)
	assert.Regexp(t, `^\d+$`, id)

	output, err = clitest.ExecuteCLICommand(t, app, UpdateCmd(), []string{
		"--id", id, "--description", "Survives only in cultivation",
	})
	require.NoError(t, err)
	assert.Contains(t, output, "✓ Conservation state 'Extinct in the Wild' updated")

	output, err = clitest.ExecuteCLICommand(t, app, ShowCmd(), []string{"--id", id, "--json"})
	require.NoError(t, err)
	data := testutil.ParseJSON(t, output)["data"].(map[string]any)
	assert.Equal(t, "Extinct in the Wild", data["Name"])
	assert.Equal(t, "extreme", data["RiskLevel"])
	assert.Equal(t, "Survives only in cultivation", data["Description"])
}

func TestCreateState_EmptyName(t *testing.T) {
	app := clitest.SetupLocalCLITest(t)

	output, err := clitest.ExecuteCLICommand(t, app, CreateCmd(), []string{"--name", ""})
	require.Error(t, err)
	assert.Equal(t, cli.ExitValidation, cli.ExitCode(err))
	assert.Contains(t, output, "State name")
}

func TestDeleteState(t *testing.T) {
	app := clitest.SetupLocalCLITest(t)
	ctx := context.Background()

	zoneID, err := app.Client.CreateZone(ctx, models.Zone{Name: "Norte", ForestType: models.ForestDry, AreaHectares: 5, Active: true})
	require.NoError(t, err)
	_, err = app.Client.CreateSpecies(ctx, models.NewSpecies("Ceibo", "", zoneID, 1))
	require.NoError(t, err)

	t.Run("state in use is refused", func(t *testing.T) {
		output, err := clitest.ExecuteCLICommand(t, app, DeleteCmd(), []string{"--id", "1", "--force"})
		require.Error(t, err)
		assert.Equal(t, cli.ExitError, cli.ExitCode(err))
		assert.Contains(t, output, "used by 1 species")
	})

	t.Run("unused state is removed", func(t *testing.T) {
		output, err := clitest.ExecuteCLICommand(t, app, DeleteCmd(), []string{"--id", "2", "--force", "--json"})
		require.NoError(t, err)
		assert.Equal(t, true, testutil.ParseJSON(t, output)["success"])

		_, err = clitest.ExecuteCLICommand(t, app, ShowCmd(), []string{"--id", strconv.Itoa(2)})
		require.Error(t, err)
		assert.Equal(t, cli.ExitNotFound, cli.ExitCode(err))
	})
}
