// Package fetchmock mocks the outbound HTTP traffic of component tests.
//
// Tests declare mock descriptors (package mock), run the code under test with
// the client of an interception adapter (packages intercept and wrap), then
// assert on the requests that were sent (package expect).
//
// This package holds the process-wide configuration shared by every adapter.
package fetchmock

import (
	"github.com/snapp-incubator/fetchmock/internal/config"
)

// LoadConfig loads the config from the YAML file at path, then from FETCHMOCK_
// environment variables. An empty path only reads the environment.
func LoadConfig(path string) error {
	_, err := config.Load(path)
	return err
}

// SetDefaultHost sets the host used by descriptors declaring none.
func SetDefaultHost(host string) {
	c := config.Current()
	c.DefaultHost = host
	config.Set(c)
}

// SetHandleQueryParams makes query strings insignificant for matching, unless
// a descriptor sets CatchParams.
func SetHandleQueryParams(b bool) {
	c := config.Current()
	c.HandleQueryParams = b
	config.Set(c)
}

// SetDebug logs a warning for every unmatched request and exhausted mock.
func SetDebug(b bool) {
	c := config.Current()
	c.Debug = b
	config.Set(c)
}

// ResetConfig restores the built-in config.
func ResetConfig() {
	config.Reset()
}
