package debugui

import (
	"cmp"
	"fmt"
	"reflect"
	"slices"
	"strings"
	"sync"

	"github.com/plus3/asteroids/ecs"
)

// EntityRow is one line of the entity browser.
type EntityRow struct {
	ID         ecs.EntityId
	Archetype  uint32
	Components []string
}

// Entity browser table columns.
const (
	ColumnID = iota
	ColumnArchetype
	ColumnComponents
	ColumnCount
)

// EntityRows lists every live entity in archetype creation order.
func EntityRows(storage *ecs.Storage) []EntityRow {
	var rows []EntityRow
	for _, archetype := range storage.Archetypes() {
		names := typeNames(archetype.Types())
		for id := range archetype.Iter() {
			rows = append(rows, EntityRow{ID: id, Archetype: archetype.ID(), Components: names})
		}
	}
	return rows
}

// FilterEntityRows keeps rows whose id, archetype or component names contain
// text, ignoring case. A non-nil archetype also restricts the rows to it.
func FilterEntityRows(rows []EntityRow, text string, archetype *uint32) []EntityRow {
	if text == "" && archetype == nil {
		return rows
	}

	needle := strings.ToLower(text)
	filtered := make([]EntityRow, 0, len(rows))
	for _, row := range rows {
		if archetype != nil && row.Archetype != *archetype {
			continue
		}
		if needle != "" &&
			!strings.Contains(row.ID.String(), needle) &&
			!strings.Contains(fmt.Sprintf("0x%x", row.Archetype), needle) &&
			!strings.Contains(strings.ToLower(strings.Join(row.Components, " ")), needle) {
			continue
		}
		filtered = append(filtered, row)
	}
	return filtered
}

// SortEntityRows sorts rows in place by one of the Column constants.
func SortEntityRows(rows []EntityRow, column int, ascending bool) {
	slices.SortStableFunc(rows, func(a, b EntityRow) int {
		var c int
		switch column {
		case ColumnArchetype:
			c = cmp.Compare(a.Archetype, b.Archetype)
		case ColumnComponents:
			c = cmp.Compare(strings.Join(a.Components, ","), strings.Join(b.Components, ","))
		case ColumnCount:
			c = cmp.Compare(len(a.Components), len(b.Components))
		default:
			c = cmp.Compare(a.ID, b.ID)
		}
		if !ascending {
			return -c
		}
		return c
	})
}

// SortArchetypes sorts archetype stats in place by archetype table column:
// id, component names, component count, then entity count.
func SortArchetypes(archetypes []ecs.ArchetypeStats, column int, ascending bool) {
	slices.SortStableFunc(archetypes, func(a, b ecs.ArchetypeStats) int {
		var c int
		switch column {
		case 0:
			c = cmp.Compare(a.ID, b.ID)
		case 1:
			c = cmp.Compare(strings.Join(a.ComponentTypes, ","), strings.Join(b.ComponentTypes, ","))
		case 2:
			c = cmp.Compare(len(a.ComponentTypes), len(b.ComponentTypes))
		default:
			c = cmp.Compare(a.EntityCount, b.EntityCount)
		}
		if !ascending {
			return -c
		}
		return c
	})
}

// ComponentTypes returns the sorted names of every component type that has
// an archetype in storage.
func ComponentTypes(storage *ecs.Storage) []string {
	seen := make(map[string]bool)
	for _, archetype := range storage.Archetypes() {
		for _, t := range archetype.Types() {
			seen[t.String()] = true
		}
	}

	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// MatchingArchetypes returns the non-empty archetypes holding every named
// component type, which is what a view over those types would visit.
func MatchingArchetypes(storage *ecs.Storage, required []string) []ecs.ArchetypeStats {
	if len(required) == 0 {
		return nil
	}

	var matching []ecs.ArchetypeStats
	for _, archetype := range storage.CollectStats().ArchetypeBreakdown {
		if containsAll(archetype.ComponentTypes, required) {
			matching = append(matching, archetype)
		}
	}
	return matching
}

func containsAll(have, want []string) bool {
	for _, name := range want {
		if !slices.Contains(have, name) {
			return false
		}
	}
	return true
}

func typeNames(types []reflect.Type) []string {
	names := make([]string, len(types))
	for i, t := range types {
		names[i] = t.String()
	}
	return names
}

// Field describes one exported struct field of a component.
type Field struct {
	Name  string
	Index int
	Type  reflect.Type
}

type fieldCache struct {
	mu     sync.RWMutex
	fields map[reflect.Type][]Field
}

var fields = &fieldCache{fields: make(map[reflect.Type][]Field)}

// Fields returns the exported fields of struct type t. Other kinds have none.
func Fields(t reflect.Type) []Field {
	fields.mu.RLock()
	cached, ok := fields.fields[t]
	fields.mu.RUnlock()
	if ok {
		return cached
	}

	var out []Field
	if t.Kind() == reflect.Struct {
		for i := range t.NumField() {
			f := t.Field(i)
			if !f.IsExported() {
				continue
			}
			out = append(out, Field{Name: f.Name, Index: i, Type: f.Type})
		}
	}

	fields.mu.Lock()
	fields.fields[t] = out
	fields.mu.Unlock()
	return out
}

// SetNumber stores n into a settable numeric value, converting to its kind.
// Values that would overflow, and negative values for unsigned kinds, are
// rejected.
func SetNumber(v reflect.Value, n float64) error {
	if !v.CanSet() {
		return fmt.Errorf("%s is not settable", v.Type())
	}

	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		i := int64(n)
		if v.OverflowInt(i) {
			return fmt.Errorf("%v overflows %s", n, v.Type())
		}
		v.SetInt(i)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		if n < 0 {
			return fmt.Errorf("%v is negative for %s", n, v.Type())
		}
		u := uint64(n)
		if v.OverflowUint(u) {
			return fmt.Errorf("%v overflows %s", n, v.Type())
		}
		v.SetUint(u)
	case reflect.Float32, reflect.Float64:
		if v.OverflowFloat(n) {
			return fmt.Errorf("%v overflows %s", n, v.Type())
		}
		v.SetFloat(n)
	default:
		return fmt.Errorf("%s is not numeric", v.Type())
	}
	return nil
}

// Component returns an addressable value for the entity's component of type
// t, or an invalid value when the entity is gone or lacks the component.
func Component(storage *ecs.Storage, id ecs.EntityId, t reflect.Type) reflect.Value {
	if !storage.Alive(id) {
		return reflect.Value{}
	}
	component := storage.GetComponent(id, t)
	if component == nil {
		return reflect.Value{}
	}

	v := reflect.ValueOf(component)
	if v.Kind() == reflect.Pointer {
		v = v.Elem()
	}
	return v
}

// ArchetypeOf returns the archetype holding id, or nil.
func ArchetypeOf(storage *ecs.Storage, id ecs.EntityId) *ecs.Archetype {
	for _, archetype := range storage.Archetypes() {
		if archetype.ID() == id.ArchetypeId() {
			return archetype
		}
	}
	return nil
}
