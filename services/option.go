package services

import "github.com/ardnew/svcdb/log"

// Option configures a parse of a whole source.
type Option func(options) options

type options struct {
	logger log.Logger
	report *Report
}

func makeOptions(opts ...Option) options {
	var o options

	for _, opt := range opts {
		if opt != nil {
			o = opt(o)
		}
	}

	return o
}

// WithLogger returns an option that traces skipped and dropped lines at
// debug level to logger. By default nothing is logged.
func WithLogger(logger log.Logger) Option {
	return func(o options) options {
		o.logger = logger

		return o
	}
}

// WithReport returns an option that records statistics and a [Diagnostic]
// for every malformed line into report. The report is reset when the parse
// begins.
func WithReport(report *Report) Option {
	return func(o options) options {
		o.report = report

		return o
	}
}
