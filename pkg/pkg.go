//nolint:gochecknoglobals
package pkg

import (
	_ "embed"
	"strings"
)

// version is the raw content of the embedded VERSION file.
//
//go:embed VERSION
var version string

// Version is the semantic version of the svcdb module embedded at build time.
var Version = strings.TrimSpace(version)

const (
	// Name is the canonical command and module identifier used across the
	// project. It appears in help text, default config paths, and as the
	// prefix of environment variables.
	Name = "svcdb"
	// Description is a short, human-readable summary of the project used in
	// help output.
	Description = "Query the services(5) network services database"
)

// AuthorInfo represents an individual author's name and email address.
type AuthorInfo struct {
	// Name is the author's preferred name or handle.
	Name string
	// Email is the author's contact email address.
	Email string
}

// Author lists the primary author(s) of the project for display in metadata.
var Author = []AuthorInfo{
	{"ardnew", "andrew@ardnew.com"},
}
