package query

import (
	"errors"
	"slices"
	"strings"
	"testing"

	"github.com/ardnew/svcdb/services"
)

const db = `
echo        7/tcp
echo        7/udp
ftp         21/tcp
ssh         22/tcp
domain      53/udp  nameserver dns
http        80/tcp  www www-http
https       443/tcp
ntp         123/udp
postgresql  5432/tcp postgres
`

func entries(t testing.TB) []services.Entry {
	t.Helper()

	es, err := services.ParseReader(strings.NewReader(db), false)
	if err != nil {
		t.Fatal(err)
	}

	return es
}

func names(es []services.Entry) []string {
	out := make([]string, len(es))
	for i, e := range es {
		out[i] = e.Endpoint() + ":" + e.Name
	}

	return out
}

func TestFilter(t *testing.T) {
	tests := []struct {
		source string
		want   []string
	}{
		{"", []string{
			"7/tcp:echo", "7/udp:echo", "21/tcp:ftp", "22/tcp:ssh", "53/udp:domain",
			"80/tcp:http", "443/tcp:https", "123/udp:ntp", "5432/tcp:postgresql",
		}},
		{`protocol == "udp"`, []string{"7/udp:echo", "53/udp:domain", "123/udp:ntp"}},
		{`port < 50 && protocol == "tcp"`, []string{"7/tcp:echo", "21/tcp:ftp", "22/tcp:ssh"}},
		{`"www" in aliases`, []string{"80/tcp:http"}},
		{`name startsWith "http"`, []string{"80/tcp:http", "443/tcp:https"}},
		{`len(aliases) > 1`, []string{"53/udp:domain", "80/tcp:http"}},
		{`port > 60000`, []string{}},
		{`port == 80 || 443 == port`, []string{"80/tcp:http", "443/tcp:https"}},
		{`port != 7 && port >= -1 && port <= 22`, []string{"21/tcp:ftp", "22/tcp:ssh"}},
	}

	es := entries(t)

	for _, tt := range tests {
		t.Run(tt.source, func(t *testing.T) {
			got, err := Filter(es, tt.source)
			if err != nil {
				t.Fatalf("Filter(%q) error: %v", tt.source, err)
			}

			if !slices.Equal(names(got), tt.want) {
				t.Errorf("Filter(%q) = %q, want %q", tt.source, names(got), tt.want)
			}
		})
	}
}

func TestFilter_LargePort(t *testing.T) {
	big, err := services.ParseLine("big 18446744073709551615/tcp")
	if err != nil {
		t.Skipf("platform uint cannot hold port: %v", err)
	}

	es := append(entries(t), big)

	for _, source := range []string{
		`port > 65535`,
		`port > 9223372036854775807`,
		`port >= 65536 && port != 0`,
		`65535 < port`,
		`!(port <= 65535)`,
	} {
		got, err := Filter(es, source)
		if err != nil {
			t.Fatalf("Filter(%q) error: %v", source, err)
		}

		if want := []string{"18446744073709551615/tcp:big"}; !slices.Equal(names(got), want) {
			t.Errorf("Filter(%q) = %q, want %q", source, names(got), want)
		}
	}
}

func TestFilter_CompileErrors(t *testing.T) {
	for _, source := range []string{
		`port +`,
		`port + 1`,
		`unknown == 1`,
		`name`,
	} {
		_, err := Filter(entries(t), source)
		if !errors.Is(err, ErrFilterCompile) {
			t.Errorf("Filter(%q) error = %v, want %v", source, err, ErrFilterCompile)
		}
	}
}

func TestFilter_EvalError(t *testing.T) {
	_, err := Filter(entries(t), `aliases[5] == "x"`)
	if !errors.Is(err, ErrFilterEval) {
		t.Errorf("error = %v, want %v", err, ErrFilterEval)
	}
}

func TestPredicate_Reuse(t *testing.T) {
	p, err := Compile(`protocol == "tcp"`)
	if err != nil {
		t.Fatal(err)
	}

	if p.String() != `protocol == "tcp"` {
		t.Errorf("String() = %q", p.String())
	}

	es := entries(t)

	for range 3 {
		got, err := p.Filter(es)
		if err != nil {
			t.Fatal(err)
		}

		if len(got) != 6 {
			t.Errorf("Filter() kept %d entries, want 6", len(got))
		}
	}
}

func TestSearch(t *testing.T) {
	es := entries(t)

	got := Search(es, "pg")
	if len(got) == 0 || got[0].Entry.Name != "postgresql" {
		t.Fatalf("Search(pg) = %+v", got)
	}

	got = Search(es, "dns")
	if len(got) == 0 || got[0].Entry.Name != "domain" || got[0].Name != "dns" {
		t.Errorf("Search(dns) best = %+v", got)
	}

	// Each entry appears once.
	got = Search(es, "http")
	seen := map[int]bool{}

	for _, m := range got {
		if seen[m.Index] {
			t.Errorf("entry %d reported twice", m.Index)
		}

		seen[m.Index] = true

		if !strings.Contains(m.Name, "h") {
			t.Errorf("unexpected match %+v", m)
		}
	}

	if !seen[5] || !seen[6] {
		t.Errorf("Search(http) missing http/https: %+v", got)
	}

	for i := 1; i < len(got); i++ {
		if got[i-1].Score < got[i].Score {
			t.Errorf("results not sorted by score: %+v", got)
		}
	}

	if got := Search(es, "zzzz"); len(got) != 0 {
		t.Errorf("Search(zzzz) = %+v", got)
	}
}

func TestSearch_EmptyPattern(t *testing.T) {
	es := entries(t)
	got := Search(es, "")

	if len(got) != len(es) {
		t.Fatalf("Search(\"\") returned %d, want %d", len(got), len(es))
	}

	for i, m := range got {
		if m.Index != i || !m.Entry.Equal(es[i]) {
			t.Errorf("match %d = %+v", i, m)
		}
	}
}

func TestLookup(t *testing.T) {
	es := entries(t)

	tests := []struct {
		key, protocol string
		want          []string
	}{
		{"echo", "", []string{"7/tcp:echo", "7/udp:echo"}},
		{"echo", "udp", []string{"7/udp:echo"}},
		{"www", "", []string{"80/tcp:http"}},
		{"postgres", "udp", []string{}},
		{"7", "", []string{"7/tcp:echo", "7/udp:echo"}},
		{"443", "tcp", []string{"443/tcp:https"}},
		{"9", "", []string{}},
		{"nothing", "", []string{}},
	}

	for _, tt := range tests {
		got := Lookup(es, tt.key, tt.protocol)
		if !slices.Equal(names(got), tt.want) {
			t.Errorf("Lookup(%q, %q) = %q, want %q", tt.key, tt.protocol, names(got), tt.want)
		}
	}

	if got := ByPort(es, 53, "udp"); len(got) != 1 || got[0].Name != "domain" {
		t.Errorf("ByPort(53, udp) = %+v", got)
	}

	if got := ByName(es, "dns", ""); len(got) != 1 || got[0].Port != 53 {
		t.Errorf("ByName(dns) = %+v", got)
	}
}

func BenchmarkSearch(b *testing.B) {
	es := entries(b)

	for b.Loop() {
		Search(es, "ht")
	}
}

func BenchmarkFilter(b *testing.B) {
	es := entries(b)

	p, err := Compile(`port < 1024 && protocol == "tcp"`)
	if err != nil {
		b.Fatal(err)
	}

	for b.Loop() {
		if _, err := p.Filter(es); err != nil {
			b.Fatal(err)
		}
	}
}
