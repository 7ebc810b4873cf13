package jdbi

import (
	"errors"
	"fmt"
	"reflect"
)

// ContainerFactory builds a caller-chosen container from a slice of mapped
// values. Factories are keyed by the reflect.Type of the container they
// produce and looked up when [GeneratedKeys.FirstAs] or
// [GeneratedKeys.ListAs] is called.
type ContainerFactory func(values []any) (any, error)

type containerRegistry struct {
	factories map[reflect.Type]ContainerFactory
}

// lookup finds the factory for a container type. There is no registration
// surface yet, so every lookup reports [errors.ErrUnsupported].
func (r *containerRegistry) lookup(typ reflect.Type) (ContainerFactory, error) {
	if f, ok := r.factories[typ]; ok {
		return f, nil
	}

	return nil, fmt.Errorf("jdbi: no container factory registered for %s: %w", typ, errors.ErrUnsupported)
}

var containers = &containerRegistry{}
