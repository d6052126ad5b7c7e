package shell

var (
	FilterEnvironment = filterEnvironment
	LookPath          = lookPath
)

// WithEnviron replaces the environment source of e.
func (e *Executor) WithEnviron(environ func() []string) *Executor {
	e.environ = environ
	return e
}
