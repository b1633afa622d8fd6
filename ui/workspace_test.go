package ui

import (
	"fmt"
	"sync"
	"testing"

	"gopairs/domain/core"
	"gopairs/domain/factor"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorkspaceStoreSnapshots(t *testing.T) {
	store := NewWorkspaceStore()
	ws := store.Create(factor.Example())

	ws.Model.Factors[0].Name = "mutated"

	got, err := store.Get(ws.ID)
	require.NoError(t, err)
	assert.Equal(t, "主食", got.Model.Factors[0].Name)
}

func TestWorkspaceStoreFailedEditLeavesModel(t *testing.T) {
	store := NewWorkspaceStore()
	ws := store.Create(factor.Example())

	_, err := store.Update(ws.ID, func(m *factor.Model) error {
		m.AddFactor("partial", "x", "y")
		return fmt.Errorf("rejected")
	})
	require.Error(t, err)

	got, err := store.Get(ws.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, got.Model.Len())
}

func TestWorkspaceStoreUnknownID(t *testing.T) {
	store := NewWorkspaceStore()

	_, err := store.Get(core.NewWorkspaceID())
	assert.True(t, core.IsNotFoundError(err))
	assert.True(t, core.IsNotFoundError(store.Delete(core.NewWorkspaceID())))
}

func TestWorkspaceStoreConcurrentEdits(t *testing.T) {
	store := NewWorkspaceStore()
	ws := store.Create(factor.Example())

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := store.Update(ws.ID, func(m *factor.Model) error {
				return m.AddValue(0, fmt.Sprintf("v%d", i))
			})
			assert.NoError(t, err)
			_, err = store.Get(ws.ID)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	got, err := store.Get(ws.ID)
	require.NoError(t, err)
	assert.Len(t, got.Model.Factors[0].Values, 23)
}
