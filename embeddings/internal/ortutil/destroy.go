// Package ortutil holds small helpers shared by the embedding pipelines.
package ortutil

import (
	"errors"
	"reflect"
)

// Destroyer is any runtime resource with an explicit release step.
type Destroyer interface {
	Destroy() error
}

// DestroyAll releases the resources in order and joins every failure.
// Nil entries, including typed nils left behind by partial construction,
// are skipped.
func DestroyAll(resources ...Destroyer) error {
	var errs []error
	for _, resource := range resources {
		if isNil(resource) {
			continue
		}
		if err := resource.Destroy(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func isNil(resource Destroyer) bool {
	if resource == nil {
		return true
	}
	v := reflect.ValueOf(resource)
	switch v.Kind() {
	case reflect.Chan, reflect.Func, reflect.Interface, reflect.Map, reflect.Pointer, reflect.Slice:
		return v.IsNil()
	default:
		return false
	}
}
