package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/custodia-labs/fieldlens-cli/internal/adapters/driving/tui"
)

func TestNewTUIPorts(t *testing.T) {
	jobs := &MockJobService{}
	previews := &MockPreviewService{}
	exports := &MockExportService{}
	SetServices(Services{Jobs: jobs, Preview: previews, Export: exports})
	t.Cleanup(func() { SetServices(Services{}) })

	ports := newTUIPorts()

	assert.NoError(t, ports.Validate())
	assert.Same(t, exports, ports.Export)
	assert.Nil(t, ports.Settings)
}

func TestNewTUIPorts_MissingServices(t *testing.T) {
	SetServices(Services{})

	assert.ErrorIs(t, newTUIPorts().Validate(), tui.ErrMissingJobService)
}

func TestMCPServe_RequiresServices(t *testing.T) {
	_, err := executeCommand(t, Services{}, "", "mcp", "serve")

	assert.Error(t, err)
}
