package clipboard

import (
	"bytes"
	"sync"
)

// Memory is an in-process Store. It models a pasteboard holding several
// items, each with several representations.
type Memory struct {
	mu        sync.Mutex
	items     [][]Representation
	transient bool
}

func NewMemory() *Memory {
	return &Memory{}
}

// Seed replaces the contents with the given items.
func (m *Memory) Seed(items ...[]Representation) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items = nil
	for _, it := range items {
		m.items = append(m.items, Snapshot(it).Clone())
	}
	m.transient = false
}

func (m *Memory) ReadAll() (Snapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out Snapshot
	for _, it := range m.items {
		for _, r := range it {
			out = append(out, Representation{Type: r.Type, Data: bytes.Clone(r.Data)})
		}
	}
	return out, nil
}

func (m *Memory) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items = nil
	m.transient = false
	return nil
}

func (m *Memory) WriteText(text string, transient bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items = [][]Representation{{{Type: TypeText, Data: []byte(text)}}}
	m.transient = transient
	return nil
}

func (m *Memory) WriteRaw(typ string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.items) == 0 {
		m.items = append(m.items, nil)
	}
	last := len(m.items) - 1
	m.items[last] = append(m.items[last], Representation{Type: typ, Data: bytes.Clone(data)})
	return nil
}

// Transient reports whether the current contents were written with the
// transient hint.
func (m *Memory) Transient() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.transient
}

// Items reports how many items the store holds.
func (m *Memory) Items() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.items)
}
