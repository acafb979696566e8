package enum

import (
	"fmt"
	"reflect"
	"sync"
)

var (
	mutex       sync.RWMutex
	enumManager = map[reflect.Type][]string{}
)

// New registers value as a member of its string-based type and returns it,
// so enums can be declared as package-level variables.
func New[T ~string](value T) T {
	mutex.Lock()
	defer mutex.Unlock()

	t := reflect.TypeOf(value)
	enumManager[t] = append(enumManager[t], string(value))
	return value
}

func ToEnum[T ~string](s string) (T, error) {
	var zero T

	mutex.RLock()
	defer mutex.RUnlock()

	members, ok := enumManager[reflect.TypeOf(zero)]
	if !ok {
		return zero, fmt.Errorf("not found enum type %T", zero)
	}

	for _, m := range members {
		if m == s {
			return T(m), nil
		}
	}

	return zero, fmt.Errorf("not found value %s in enum %T", s, zero)
}

// Values lists the registered members in declaration order.
func Values[T ~string]() []T {
	var zero T

	mutex.RLock()
	defer mutex.RUnlock()

	members := enumManager[reflect.TypeOf(zero)]
	result := make([]T, 0, len(members))
	for _, m := range members {
		result = append(result, T(m))
	}

	return result
}
