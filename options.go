package tst

// defaultSeparator is '/' (0x2F), the default segment delimiter for
// Search's segment projection.
const defaultSeparator = '/'

type config struct {
	separator byte
	noLock    bool
}

func defaultConfig() config {
	return config{separator: defaultSeparator}
}

// Option configures Open/OpenFile. The teacher passes a plain
// CreateRemoteOptions/RemoteConfig struct directly rather than closures;
// this uses the functional-options idiom instead, favoring it over a
// long positional parameter list or a caller-constructed config struct.
type Option func(*config)

// WithoutLock disables the advisory single-writer lock OpenFile would
// otherwise take on the database path.
func WithoutLock() Option {
	return func(c *config) { c.noLock = true }
}

// WithSeparator sets the initial segment delimiter byte used by Search's
// segment projection; the default is '/' (0x2F).
func WithSeparator(b byte) Option {
	return func(c *config) { c.separator = b }
}
