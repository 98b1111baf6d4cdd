// Package services parses the network services database described in
// services(5), conventionally installed at /etc/services.
//
// Each non-blank, non-comment line of the database names one service:
//
//	name  port/protocol  [alias ...]  [# comment]
//
// [ParseLine] converts one such line into an [Entry]. [ParseFile],
// [ParseReader], and [ParseDefault] apply it to every line of a source,
// skipping blank and comment lines, and either abort on the first malformed
// line or drop malformed lines silently, depending on the ignoreErrors
// policy:
//
//	entries, err := services.ParseDefault(true)
//	if err != nil {
//		return err
//	}
//
//	for _, e := range entries {
//		fmt.Println(e.Name, e.Port, e.Protocol)
//	}
//
// Failures are reported as [*Error] values classified by [Kind]. Use
// [errors.Is] with the sentinel errors ([ErrMalformedPort], ...) or
// [KindOf] to inspect them.
//
// The package holds no global mutable state; independent sources may be
// parsed concurrently.
package services
