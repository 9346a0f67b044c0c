package ecs_test

import (
	"testing"

	"github.com/plus3/asteroids/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestViewRequiredComponents(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	storage.Spawn(Position{X: 1}, Velocity{DX: 1})
	storage.Spawn(Position{X: 2}, Velocity{DX: 2}, Health{Current: 10})
	storage.Spawn(Position{X: 3})
	storage.Spawn(Velocity{DX: 4})

	view := ecs.NewView[struct {
		*Position
		*Velocity
	}](storage)

	sum := float32(0)
	for item := range view.Values() {
		require.NotNil(t, item.Position)
		require.NotNil(t, item.Velocity)
		sum += item.Position.X
	}

	assert.Equal(t, 2, countView(view))
	assert.Equal(t, 2, view.Count())
	assert.Equal(t, float32(3), sum)
}

func TestViewMutatesThroughPointers(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	id := storage.Spawn(Position{X: 1}, Velocity{DX: 2})

	view := ecs.NewView[struct {
		*Position
		*Velocity
	}](storage)

	for item := range view.Values() {
		item.Position.X += item.Velocity.DX
	}

	assert.Equal(t, float32(3), ecs.ReadComponent[Position](storage, id).X)
}

func TestViewOptionalComponents(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	storage.Spawn(Position{X: 1})
	storage.Spawn(Position{X: 2}, Health{Current: 5})

	view := ecs.NewView[struct {
		*Position
		Health *Health `ecs:"optional"`
	}](storage)

	withHealth, withoutHealth := 0, 0
	for item := range view.Values() {
		if item.Health == nil {
			withoutHealth++
		} else {
			withHealth++
			assert.Equal(t, 5, item.Health.Current)
		}
	}

	assert.Equal(t, 1, withHealth)
	assert.Equal(t, 1, withoutHealth)
}

func TestViewWithoutFilter(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	player := storage.Spawn(Position{X: 1}, PlayerController{})
	enemy := storage.Spawn(Position{X: 2}, Enemy{})
	neutral := storage.Spawn(Position{X: 3})

	notEnemies := ecs.NewView[struct {
		ecs.EntityId
		*Position
		_ *Enemy `ecs:"without"`
	}](storage)

	seen := map[ecs.EntityId]bool{}
	for item := range notEnemies.Values() {
		seen[item.EntityId] = true
	}

	assert.Equal(t, map[ecs.EntityId]bool{player: true, neutral: true}, seen)
	assert.Nil(t, notEnemies.Get(enemy))
	assert.NotNil(t, notEnemies.Get(player))
}

func TestViewMarkerComponent(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	storage.Spawn(Position{X: 1}, Enemy{})
	storage.Spawn(Position{X: 2}, Enemy{})
	storage.Spawn(Position{X: 3})

	enemies := ecs.NewView[struct {
		*Position
		*Enemy
	}](storage)

	assert.Equal(t, 2, countView(enemies))
}

func TestViewEntityIdField(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	id := storage.Spawn(Position{X: 7})

	view := ecs.NewView[struct {
		Id ecs.EntityId
		*Position
	}](storage)

	for entityId, item := range view.Iter() {
		assert.Equal(t, id, entityId)
		assert.Equal(t, id, item.Id)
	}
}

func TestViewGetSkipsDeleted(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	id := storage.Spawn(Position{X: 7})

	view := ecs.NewView[struct{ *Position }](storage)
	require.NotNil(t, view.Get(id))

	storage.Delete(id)
	assert.Nil(t, view.Get(id))
	assert.Equal(t, 0, countView(view))
}

func TestViewIterationOrderIsStable(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	for i := range 10 {
		storage.Spawn(Position{X: float32(i)}, Name{Value: "a"})
		storage.Spawn(Position{X: float32(i)}, Velocity{})
		storage.Spawn(Position{X: float32(i)}, Health{})
	}

	view := ecs.NewView[struct {
		ecs.EntityId
		*Position
	}](storage)

	var first []ecs.EntityId
	for id := range view.Iter() {
		first = append(first, id)
	}
	for range 5 {
		var again []ecs.EntityId
		for id := range view.Iter() {
			again = append(again, id)
		}
		assert.Equal(t, first, again)
	}
}

func TestViewInvalidDefinitions(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	assert.Panics(t, func() { ecs.NewView[int](storage) })
	assert.Panics(t, func() { ecs.NewView[struct{ Position }](storage) })
	assert.Panics(t, func() {
		ecs.NewView[struct {
			P *Position `ecs:"maybe"`
		}](storage)
	})
}
