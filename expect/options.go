package expect

// Option narrows the requests an assertion looks at.
type Option func(*options)

type options struct {
	host        string
	method      string
	body        any
	hasBody     bool
	catchParams bool
}

// Host sets the host of the path, the default host being used otherwise.
func Host(h string) Option {
	return func(o *options) { o.host = h }
}

// Method only keeps requests sent with method m.
func Method(m string) Option {
	return func(o *options) { o.method = m }
}

// Body expects a request whose JSON body deep-equals b. Only ToHaveBeenFetchedWith uses it.
func Body(b any) Option {
	return func(o *options) { o.body, o.hasBody = b, true }
}

// CatchParams makes the query string significant even when the config ignores it.
func CatchParams() Option {
	return func(o *options) { o.catchParams = true }
}

func newOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
