package configs

import "errors"

// First returns the first value at path. Invalid config files panic.
func First[T any](loader Loader, path string) (T, bool) {
	var value T
	if err := loader.Decode(path, &value); err != nil {
		if errors.Is(err, ErrValueNotFound) {
			return value, false
		}
		panic(err)
	}
	return value, true
}
