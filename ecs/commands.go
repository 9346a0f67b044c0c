package ecs

import "github.com/kamstrup/intmap"

// Commands provides a buffer for deferred ECS operations. The Scheduler
// flushes it after every system, so structural changes never happen while
// a system is iterating the storage.
type Commands struct {
	spawns  []spawnCommand
	deletes []EntityId
	defers  []func()

	// queued tracks ids already in deletes.
	queued *intmap.Map[EntityId, struct{}]
}

type spawnCommand struct {
	components []any
}

func newCommands() *Commands {
	return &Commands{
		queued: intmap.New[EntityId, struct{}](32),
	}
}

// Defer queues a function to run after the spawns and deletes of the flush.
func (c *Commands) Defer(fn func()) {
	c.defers = append(c.defers, fn)
}

// Spawn queues an entity spawn operation with the given components.
func (c *Commands) Spawn(components ...any) {
	c.spawns = append(c.spawns, spawnCommand{components: components})
}

// Delete queues an entity deletion. Queuing the same entity more than once
// before a flush deletes it once.
func (c *Commands) Delete(entity EntityId) {
	if _, ok := c.queued.Get(entity); ok {
		return
	}
	c.queued.Put(entity, struct{}{})
	c.deletes = append(c.deletes, entity)
}

// Deleting reports whether a delete for the entity is pending.
func (c *Commands) Deleting(entity EntityId) bool {
	_, ok := c.queued.Get(entity)
	return ok
}

// Pending returns the number of queued spawns and deletes.
func (c *Commands) Pending() (spawns, deletes int) {
	return len(c.spawns), len(c.deletes)
}

// Flush flushes all commands to the provided storage, reseting the buffer state
func (c *Commands) Flush(storage *Storage) {
	for _, id := range c.deletes {
		storage.Delete(id)
	}

	for _, cmd := range c.spawns {
		storage.Spawn(cmd.components...)
	}

	for _, fn := range c.defers {
		fn()
	}

	clear(c.spawns)
	c.spawns = c.spawns[:0]
	c.deletes = c.deletes[:0]
	clear(c.defers)
	c.defers = c.defers[:0]
	c.queued.Clear()
}
