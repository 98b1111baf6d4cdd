package query

import (
	"strconv"

	"github.com/ardnew/svcdb/services"
)

// ByName returns the entries whose official name or an alias equals name.
// If protocol is not empty, only entries of that protocol are returned.
func ByName(entries []services.Entry, name, protocol string) []services.Entry {
	return collect(entries, func(e services.Entry) bool {
		return e.HasName(name) && (protocol == "" || e.Protocol == protocol)
	})
}

// ByPort returns the entries using port. If protocol is not empty, only
// entries of that protocol are returned.
func ByPort(entries []services.Entry, port uint, protocol string) []services.Entry {
	return collect(entries, func(e services.Entry) bool {
		return e.Port == port && (protocol == "" || e.Protocol == protocol)
	})
}

// Lookup dispatches to [ByPort] if key is a decimal port number, and to
// [ByName] otherwise.
func Lookup(entries []services.Entry, key, protocol string) []services.Entry {
	if port, err := strconv.ParseUint(key, 10, strconv.IntSize); err == nil {
		return ByPort(entries, uint(port), protocol)
	}

	return ByName(entries, key, protocol)
}

func collect(entries []services.Entry, keep func(services.Entry) bool) []services.Entry {
	found := make([]services.Entry, 0)

	for _, e := range entries {
		if keep(e) {
			found = append(found, e)
		}
	}

	return found
}
