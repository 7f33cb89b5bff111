package config

// Loader loads configuration into a target struct and reports changes
type Loader interface {
	Load(target any) error

	// Watch invokes callback whenever the source changes
	Watch(callback func()) error
}
