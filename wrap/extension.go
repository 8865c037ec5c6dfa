package wrap

import (
	"errors"
	"fmt"
	"net/http"
	"sync"

	"github.com/snapp-incubator/fetchmock/mock"
)

// NetworkMocker is the part of the interception adapter extensions may drive.
type NetworkMocker interface {
	Register(descs ...mock.Descriptor) error
	Reset()
	Client() *http.Client
}

// Extension contributes descriptors to a Wrapper under the name it is registered with.
type Extension interface {
	AddResponses(args ...any) ([]mock.Descriptor, error)
}

// NetworkMockerSetter is implemented by extensions which need the network
// mocker of the wrapper. SetNetworkMocker is called before AddResponses.
type NetworkMockerSetter interface {
	SetNetworkMocker(NetworkMocker)
}

// ExtensionFunc adapts a function to Extension.
type ExtensionFunc func(args ...any) ([]mock.Descriptor, error)

// AddResponses calls f.
func (f ExtensionFunc) AddResponses(args ...any) ([]mock.Descriptor, error) {
	return f(args...)
}

var (
	extensionsMu sync.RWMutex
	extensions   = map[string]Extension{}
)

func init() {
	RegisterExtension("fixtures", ExtensionFunc(fixtures))
}

// RegisterExtension makes ext available to every Wrapper under name. It panics
// if ext is nil or name is already taken.
func RegisterExtension(name string, ext Extension) {
	extensionsMu.Lock()
	defer extensionsMu.Unlock()

	if ext == nil {
		panic("wrap: RegisterExtension extension is nil")
	}
	if _, dup := extensions[name]; dup {
		panic("wrap: RegisterExtension called twice for extension " + name)
	}
	extensions[name] = ext
}

func lookupExtension(name string) (Extension, bool) {
	extensionsMu.RLock()
	defer extensionsMu.RUnlock()

	ext, ok := extensions[name]
	return ext, ok
}

// fixtures loads descriptors from the YAML files given as arguments.
func fixtures(args ...any) ([]mock.Descriptor, error) {
	if len(args) == 0 {
		return nil, errors.New("fixtures expects at least one file path")
	}

	var out []mock.Descriptor
	for _, a := range args {
		path, ok := a.(string)
		if !ok {
			return nil, fmt.Errorf("fixtures expects file paths, got %T", a)
		}

		descs, err := mock.LoadFixtures(path)
		if err != nil {
			return nil, err
		}
		out = append(out, descs...)
	}
	return out, nil
}
