package configs

// Configurable values are read from configuration files under ConfigKey.
type Configurable interface {
	ConfigKey() string
}

func Lookup[T Configurable](loader Loader) (T, bool) {
	var key T
	return First[T](loader, key.ConfigKey())
}
