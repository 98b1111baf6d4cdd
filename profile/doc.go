// Package profile provides optional runtime profiling for svcdb.
//
// Profiling is built on [github.com/pkg/profile] and compiled in only with
// the "pprof" build tag:
//
//	go build -tags pprof .
//
// Without the tag, [Modes] is empty and every [Profiler] is a no-op.
//
// # Modes
//
//   - allocs:    memory allocation profiling (all allocations)
//   - block:     block (synchronization) profiling
//   - clock:     wall-clock profiling
//   - cpu:       CPU profiling
//   - goroutine: goroutine profiling
//   - heap:      heap profiling (live allocations)
//   - mem:       general memory profiling
//   - mutex:     mutex contention profiling
//   - thread:    thread creation profiling
//   - trace:     execution trace
//
// # Usage
//
//	p := profile.New(
//		profile.WithMode("cpu"),
//		profile.WithPath("/tmp/svcdb"),
//	)
//	defer p.Start().Stop()
//
// Profiles are written to the configured directory as <mode>.pprof and can
// be inspected with go tool pprof:
//
//	go tool pprof -http=: ./svcdb /tmp/svcdb/cpu.pprof
//
// Builds with the tag also import [net/http/pprof], which registers the
// /debug/pprof/ handlers on [net/http.DefaultServeMux].
package profile

// Tag is the build tag required to enable pprof profiling.
const Tag = `pprof`
