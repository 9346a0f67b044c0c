package ecs

import "iter"

// Query wraps a View with caching for repeated iteration. It caches the
// matching archetypes and a snapshot of the matching entities. The snapshot
// is rebuilt lazily when the storage changed structurally since it was taken,
// so iteration within one system always sees the state the system started
// with.
type Query[T any] struct {
	view               *View[T]
	storage            *Storage
	cachedArchetypes   []*Archetype
	lastArchetypeCount int

	cachedEntities   []EntityId
	cachedComponents []T
	cacheVersion     uint64
	cacheValid       bool
}

// NewQuery creates a new Query with archetype-level caching.
func NewQuery[T any](storage *Storage) *Query[T] {
	q := &Query[T]{}
	q.Init(storage)
	return q
}

// Init initializes or re-initializes the Query with a storage.
// Called by the Scheduler during system registration.
func (q *Query[T]) Init(storage *Storage) {
	q.view = NewView[T](storage)
	q.storage = storage
	q.cachedArchetypes = nil
	q.lastArchetypeCount = -1
	q.cacheValid = false
}

// Execute rebuilds the entity and component snapshot.
func (q *Query[T]) Execute() {
	q.invalidateIfNeeded()
	q.ensureArchetypeCache()

	// Fresh slices: an iteration still running over the previous snapshot
	// keeps its own backing arrays.
	entities := make([]EntityId, 0, len(q.cachedEntities))
	components := make([]T, 0, len(q.cachedComponents))

	for _, archetype := range q.cachedArchetypes {
		for id, item := range q.view.iterArchetype(archetype) {
			entities = append(entities, id)
			components = append(components, item)
		}
	}

	q.cachedEntities = entities
	q.cachedComponents = components
	q.cacheVersion = q.storage.version
	q.cacheValid = true
}

func (q *Query[T]) invalidateIfNeeded() {
	currentCount := len(q.storage.order)
	if currentCount != q.lastArchetypeCount {
		q.cachedArchetypes = nil
		q.lastArchetypeCount = currentCount
	}
}

func (q *Query[T]) ensureArchetypeCache() {
	if q.cachedArchetypes != nil {
		return
	}

	q.cachedArchetypes = make([]*Archetype, 0)
	for _, archetype := range q.storage.order {
		if q.view.matchesArchetype(archetype) {
			q.cachedArchetypes = append(q.cachedArchetypes, archetype)
		}
	}
}

func (q *Query[T]) refresh() {
	if q.storage == nil {
		panic("Query used before Init")
	}
	if !q.cacheValid || q.cacheVersion != q.storage.version {
		q.Execute()
	}
}

// Iter returns an iterator over entity IDs and component data.
func (q *Query[T]) Iter() iter.Seq2[EntityId, T] {
	q.refresh()
	entities, components := q.cachedEntities, q.cachedComponents

	return func(yield func(EntityId, T) bool) {
		for i := range entities {
			if !yield(entities[i], components[i]) {
				return
			}
		}
	}
}

// Values returns an iterator over component data only.
func (q *Query[T]) Values() iter.Seq[T] {
	q.refresh()
	components := q.cachedComponents

	return func(yield func(T) bool) {
		for i := range components {
			if !yield(components[i]) {
				return
			}
		}
	}
}

// First returns the first match, if any.
func (q *Query[T]) First() (T, bool) {
	for _, item := range q.Iter() {
		return item, true
	}
	var zero T
	return zero, false
}

// Len returns the number of matches.
func (q *Query[T]) Len() int {
	q.refresh()
	return len(q.cachedEntities)
}

// Get returns the view struct for a single entity, bypassing the snapshot.
func (q *Query[T]) Get(id EntityId) *T {
	if q.view == nil {
		panic("Query used before Init")
	}
	return q.view.Get(id)
}
