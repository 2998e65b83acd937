package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"timekeeper/entity"
)

func TestEncodeDecodeScenario(t *testing.T) {
	scn := entity.NewScenario("work_time_report")
	scn.EnsureStep(2)
	scn.SetResult(1, "31.12.2026")
	scn.CurrentStep = 2

	data, err := Encode(scn)
	require.NoError(t, err)
	require.NotEmpty(t, data)

	restored := &entity.Scenario{}
	require.NoError(t, Decode(data, restored))

	assert.Equal(t, scn.Name, restored.Name)
	assert.Equal(t, scn.CurrentStep, restored.CurrentStep)
	require.Len(t, restored.Steps, 2)
	require.NotNil(t, restored.Steps[0].Result)
	assert.Equal(t, "31.12.2026", *restored.Steps[0].Result)
	assert.Nil(t, restored.Steps[1].Result, "unanswered step survives the round trip as nil")
}

func TestEncodeDecodeList(t *testing.T) {
	clients := []entity.Client{
		{Name: "Acme"},
		{Name: "Globex", Completed: true},
	}

	data, err := EncodeList(ClientsKey(), clients)
	require.NoError(t, err)
	require.Len(t, data, 1, "list is wrapped under a single field")

	restored, err := DecodeList[entity.Client](data, ClientsKey())
	require.NoError(t, err)
	assert.Equal(t, clients, restored)
}

func TestDecodeListMissingField(t *testing.T) {
	restored, err := DecodeList[entity.Client](map[string]any{"other": 1}, ClientsKey())

	require.NoError(t, err)
	assert.Empty(t, restored)
}

func TestEncodeListEmpty(t *testing.T) {
	data, err := EncodeList(WorkTypesKey(), []entity.WorkType{})

	require.NoError(t, err)
	// Still one field: an empty cached list is distinguishable from a miss.
	assert.Len(t, data, 1)
}
