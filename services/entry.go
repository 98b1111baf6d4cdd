package services

import (
	"iter"
	"log/slog"
	"slices"
	"strconv"
)

// Entry is one service record of the database.
type Entry struct {
	// Name is the official name of the service.
	Name string `json:"name" yaml:"name"`
	// Port is the port number the service uses.
	Port uint `json:"port" yaml:"port"`
	// Protocol is the transport protocol, e.g. "tcp" or "udp".
	Protocol string `json:"protocol" yaml:"protocol"`
	// Aliases are the alternative names of the service, in file order.
	Aliases []string `json:"aliases" yaml:"aliases"`
}

// Endpoint returns the port and protocol of the entry as "port/protocol".
func (e Entry) Endpoint() string {
	return strconv.FormatUint(uint64(e.Port), 10) + "/" + e.Protocol
}

// Names returns an iterator over the official name followed by the aliases.
func (e Entry) Names() iter.Seq[string] {
	return func(yield func(string) bool) {
		if !yield(e.Name) {
			return
		}

		for _, alias := range e.Aliases {
			if !yield(alias) {
				return
			}
		}
	}
}

// HasName reports whether name is the official name or an alias of the entry.
func (e Entry) HasName(name string) bool {
	return e.Name == name || slices.Contains(e.Aliases, name)
}

// Equal reports whether e and other describe the same record, including the
// order of aliases.
func (e Entry) Equal(other Entry) bool {
	return e.Name == other.Name &&
		e.Port == other.Port &&
		e.Protocol == other.Protocol &&
		slices.Equal(e.Aliases, other.Aliases)
}

// LogValue implements [slog.LogValuer].
func (e Entry) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.String("name", e.Name),
		slog.Uint64("port", uint64(e.Port)),
		slog.String("protocol", e.Protocol),
	}

	if len(e.Aliases) > 0 {
		attrs = append(attrs, slog.Any("aliases", e.Aliases))
	}

	return slog.GroupValue(attrs...)
}
