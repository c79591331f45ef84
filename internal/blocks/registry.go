package blocks

import (
	"fmt"
	"sort"
	"sync"
)

// Metadata describes a block type for the editor palette.
type Metadata struct {
	Type        BlockType `json:"type"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Category    Category  `json:"category"`
	Icon        string    `json:"icon,omitempty"`
	Container   bool      `json:"container,omitempty"`
}

// Descriptor wires a block type to its content variant and defaults.
type Descriptor struct {
	Metadata Metadata
	// Empty returns a zero value of the content variant, used as decode target.
	Empty func() Content
	// Defaults returns freshly allocated default content.
	Defaults func() Content
	// Styles returns default styles. Nil means BaseStyles.
	Styles func() ResponsiveStyles
	order  int
}

// Registry stores block descriptors by type.
type Registry struct {
	mu          sync.RWMutex
	descriptors map[BlockType]*Descriptor
	next        int
}

// NewRegistry creates an empty block registry.
func NewRegistry() *Registry {
	return &Registry{descriptors: make(map[BlockType]*Descriptor)}
}

// Register adds or replaces the descriptor for its type.
func (r *Registry) Register(desc Descriptor) error {
	if r == nil {
		return fmt.Errorf("registry is nil")
	}
	blockType := Normalize(desc.Metadata.Type.String())
	if blockType == "" {
		return fmt.Errorf("block type is empty")
	}
	if desc.Empty == nil || desc.Defaults == nil {
		return fmt.Errorf("content factories are nil for type %s", blockType)
	}
	desc.Metadata.Type = blockType

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.descriptors == nil {
		r.descriptors = make(map[BlockType]*Descriptor)
	}
	if existing, ok := r.descriptors[blockType]; ok {
		desc.order = existing.order
	} else {
		desc.order = r.next
		r.next++
	}
	r.descriptors[blockType] = &desc
	return nil
}

// MustRegister registers the descriptor and panics if registration fails.
func (r *Registry) MustRegister(desc Descriptor) {
	if err := r.Register(desc); err != nil {
		panic(err)
	}
}

// Get retrieves the descriptor for a block type.
func (r *Registry) Get(blockType BlockType) (Descriptor, bool) {
	if r == nil {
		return Descriptor{}, false
	}
	blockType = Normalize(blockType.String())
	if blockType == "" {
		return Descriptor{}, false
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	desc, ok := r.descriptors[blockType]
	if !ok {
		return Descriptor{}, false
	}
	return *desc, true
}

// Has reports whether the type is registered.
func (r *Registry) Has(blockType BlockType) bool {
	_, ok := r.Get(blockType)
	return ok
}

// Types returns registered types in registration order.
func (r *Registry) Types() []BlockType {
	list := r.sorted()
	types := make([]BlockType, 0, len(list))
	for _, desc := range list {
		types = append(types, desc.Metadata.Type)
	}
	return types
}

// ListMetadata returns metadata in registration order.
func (r *Registry) ListMetadata() []Metadata {
	list := r.sorted()
	result := make([]Metadata, 0, len(list))
	for _, desc := range list {
		result = append(result, desc.Metadata)
	}
	return result
}

func (r *Registry) sorted() []*Descriptor {
	if r == nil {
		return nil
	}
	r.mu.RLock()
	list := make([]*Descriptor, 0, len(r.descriptors))
	for _, desc := range r.descriptors {
		list = append(list, desc)
	}
	r.mu.RUnlock()

	sort.Slice(list, func(i, j int) bool { return list[i].order < list[j].order })
	return list
}

// Clone creates a copy of the registry with the same descriptors.
func (r *Registry) Clone() *Registry {
	if r == nil {
		return NewRegistry()
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	cloned := NewRegistry()
	for key, desc := range r.descriptors {
		copied := *desc
		cloned.descriptors[key] = &copied
	}
	cloned.next = r.next
	return cloned
}
