package postprocessors

import (
	"fmt"
	"sort"

	"github.com/custodia-labs/narrator-cli/internal/core/domain"
)

// SplitFunc splits text into segment texts of roughly length words.
type SplitFunc func(text string, length int) []string

// Registry maps segmentation methods to their split functions.
type Registry struct {
	splitters map[domain.SegmentMethod]SplitFunc
}

// NewRegistry creates a new segmentation registry.
func NewRegistry() *Registry {
	return &Registry{
		splitters: make(map[domain.SegmentMethod]SplitFunc),
	}
}

// Register adds a split function for a method, replacing any existing one.
func (r *Registry) Register(method domain.SegmentMethod, fn SplitFunc) {
	r.splitters[method] = fn
}

// Get returns the split function for a method.
// Returns an error wrapping domain.ErrInvalidInput if the method is not registered.
func (r *Registry) Get(method domain.SegmentMethod) (SplitFunc, error) {
	fn, ok := r.splitters[method]
	if !ok {
		return nil, fmt.Errorf("%w: no splitter for method %q", domain.ErrInvalidInput, method)
	}
	return fn, nil
}

// Has returns true if a split function is registered for the method.
func (r *Registry) Has(method domain.SegmentMethod) bool {
	_, ok := r.splitters[method]
	return ok
}

// Methods returns all registered methods, sorted.
func (r *Registry) Methods() []domain.SegmentMethod {
	methods := make([]domain.SegmentMethod, 0, len(r.splitters))
	for m := range r.splitters {
		methods = append(methods, m)
	}
	sort.Slice(methods, func(i, j int) bool { return methods[i] < methods[j] })
	return methods
}
