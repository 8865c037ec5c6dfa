package intercept

import (
	"github.com/snapp-incubator/fetchmock/internal/config"
	"github.com/snapp-incubator/fetchmock/internal/storage"
)

// Option configures an Adapter. Unset values come from the process-wide config.
type Option func(*options)

type options struct {
	cfg     config.Config
	storage storage.Storage
	// storageSet is true when WithStorage overrides the configured export.
	storageSet bool
}

// WithDefaultHost sets the host of descriptors declaring none.
func WithDefaultHost(h string) Option {
	return func(o *options) { o.cfg.DefaultHost = h }
}

// WithHandleQueryParams ignores query strings unless a descriptor sets CatchParams.
func WithHandleQueryParams(b bool) Option {
	return func(o *options) { o.cfg.HandleQueryParams = b }
}

// WithDebug logs unmatched requests and exhausted descriptors.
func WithDebug(b bool) Option {
	return func(o *options) { o.cfg.Debug = b }
}

// WithStorage exports every intercepted request to s. A nil s disables the export.
func WithStorage(s storage.Storage) Option {
	return func(o *options) { o.storage, o.storageSet = s, true }
}
