package formstate

import (
	"slices"
	"time"

	"github.com/goliatone/go-formstate/valuetree"
)

// SetCollectionKeys replaces the ordered key sequence for a collection
// name. Accepts a literal sequence or a function of the previous one.
func (s *Store) SetCollectionKeys(name string, keys Updater[[]string]) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.collections[name] = slices.Clone(keys.resolve(slices.Clone(s.collections[name])))
}

// CollectionKeys returns a copy of the current key sequence for name.
func (s *Store) CollectionKeys(name string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.collections[name])
}

// InsertCollectionValues splices values into the collection at index.
// Negative indexes count from the end (-1 appends). Each inserted value gets
// a fresh opaque key; existing items keep theirs, so identity survives the
// splice.
//
// The paired value-array write is deferred: the new key sequence must be
// visible before the array lands, and the array write goes through the
// SetValues injection path so the usual validation and pristine rules apply.
// The deferred write runs once this action has committed.
func (s *Store) InsertCollectionValues(name string, index int, values []any) {
	start := time.Now()
	s.mu.Lock()

	keys := s.collections[name]
	if keys == nil {
		keys = s.seedKeysLocked(name)
	}
	effective := index
	if index < 0 {
		effective = len(keys) + 1 + index
	}
	effective = min(max(effective, 0), len(keys))

	fresh := make([]string, len(values))
	for i := range fresh {
		fresh[i] = s.generateKey()
	}
	s.collections[name] = slices.Insert(slices.Clone(keys), effective, fresh...)

	next := spliceValues(s.collectionValueLocked(name), effective, values)
	s.enqueueEffect(func() {
		s.SetValues(valuetree.Set(nil, name, next), SetValuesOptions{})
	})

	s.mu.Unlock()
	s.logAction("collection.insert", name, start, nil)
	s.drainEffects()
}

// InsertCollectionValue splices a single value at index.
func (s *Store) InsertCollectionValue(name string, index int, value any) {
	s.InsertCollectionValues(name, index, []any{value})
}

// PrependCollectionValue inserts value at the head of the collection.
func (s *Store) PrependCollectionValue(name string, value any) {
	s.InsertCollectionValues(name, 0, []any{value})
}

// AppendCollectionValue inserts value after the last item.
func (s *Store) AppendCollectionValue(name string, value any) {
	s.InsertCollectionValues(name, -1, []any{value})
}

// RemoveCollectionValues discards the keys at the given positions. Negative
// indexes count from the end. The value array is left alone: compacting it
// belongs to whichever collaborator owns the array value, and the length
// invariant is restored by the next full value write.
func (s *Store) RemoveCollectionValues(name string, indexes []int) {
	start := time.Now()
	s.mu.Lock()
	keys := s.collections[name]
	if keys == nil {
		s.mu.Unlock()
		return
	}
	drop := make(map[int]struct{}, len(indexes))
	for _, index := range indexes {
		if index < 0 {
			index = len(keys) + index
		}
		if index >= 0 && index < len(keys) {
			drop[index] = struct{}{}
		}
	}
	remaining := make([]string, 0, len(keys))
	for i, key := range keys {
		if _, dropped := drop[i]; !dropped {
			remaining = append(remaining, key)
		}
	}
	s.collections[name] = remaining
	s.mu.Unlock()
	s.logAction("collection.remove", name, start, nil)
}

// RemoveCollectionValue discards the key at a single position.
func (s *Store) RemoveCollectionValue(name string, index int) {
	s.RemoveCollectionValues(name, []int{index})
}

// seedKeysLocked initializes a key sequence matching the collection's
// current array value, keeping the key-count/value-length invariant before
// the first splice.
func (s *Store) seedKeysLocked(name string) []string {
	values := s.collectionValueLocked(name)
	keys := make([]string, len(values))
	for i := range keys {
		keys[i] = s.generateKey()
	}
	s.collections[name] = keys
	return keys
}

// collectionValueLocked resolves the current array value backing the
// collection, preferring a registered field over the pending value trees.
func (s *Store) collectionValueLocked(name string) []any {
	for _, fieldID := range s.fieldOrder {
		field := s.fields[fieldID]
		if field.descriptor.Name == name {
			if values, ok := field.value.([]any); ok {
				return values
			}
			return nil
		}
	}
	for _, tree := range []valuetree.Tree{s.externalValues, s.initialValues, s.defaultValues} {
		if value, ok := valuetree.Get(tree, name); ok {
			if values, ok := value.([]any); ok {
				return values
			}
		}
	}
	return nil
}

// spliceValues builds the deferred array write: the old items up to the
// insertion point (padded with nil placeholders when the old array is
// shorter), the inserted values, then the remaining old items.
func spliceValues(old []any, index int, values []any) []any {
	next := make([]any, 0, max(len(old), index)+len(values))
	for i := 0; i < index; i++ {
		if i < len(old) {
			next = append(next, old[i])
		} else {
			next = append(next, nil)
		}
	}
	next = append(next, values...)
	if index < len(old) {
		next = append(next, old[index:]...)
	}
	return next
}

// resyncCollectionsLocked realigns every known key sequence with the item
// count implied by the freshly resolved initial values. Surviving positions
// keep their keys; newly appearing positions get fresh ones.
func (s *Store) resyncCollectionsLocked(initialValues valuetree.Tree) {
	for name, keys := range s.collections {
		count := 0
		if value, ok := valuetree.Get(initialValues, name); ok {
			if values, ok := value.([]any); ok {
				count = len(values)
			}
		}
		if len(keys) > count {
			s.collections[name] = slices.Clone(keys[:count])
			continue
		}
		next := slices.Clone(keys)
		for len(next) < count {
			next = append(next, s.generateKey())
		}
		s.collections[name] = next
	}
}
