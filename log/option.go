package log

// Option applies a configuration option to settings.
type Option func(settings) settings

func apply(s settings, opts ...Option) settings {
	for _, opt := range opts {
		if opt != nil {
			s = opt(s)
		}
	}

	return s
}
