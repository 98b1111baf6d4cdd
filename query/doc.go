// Package query selects entries from a parsed services database.
//
// [Filter] evaluates a boolean expr-lang expression against every entry.
// The expression sees the variables name, port, protocol, and aliases:
//
//	port < 1024 && protocol == "udp"
//	"www" in aliases || name startsWith "http"
//
// [Search] ranks entries by fuzzy similarity of their names and aliases to
// a pattern, and [ByName], [ByPort], and [Lookup] perform exact lookups.
package query
