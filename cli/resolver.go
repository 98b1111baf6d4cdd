package cli

import (
	"errors"
	"io"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/goccy/go-yaml"
)

// resolve is a [kong.ConfigurationLoader] that reads YAML config files.
//
// It can be used with [kong.Configuration] like this:
//
//	kong.Configuration(resolve, "/path/to/config.yaml")
//
// Keys name flags with either hyphens or underscores, and nested mappings
// are joined with hyphens, so these documents are equivalent:
//
//	log-level: debug
//	log_level: debug
//	log:
//	  level: debug
//
// Command-line flags and environment variables override config file values.
func resolve(r io.Reader) (kong.Resolver, error) {
	var doc map[string]any

	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return config{}, nil
		}

		return nil, err
	}

	cfg := config{}
	cfg.flatten("", doc)

	return cfg, nil
}

// config implements [kong.Resolver] for YAML configs.
type config map[string]any

// flatten copies doc into r, joining nested keys with '-' and converting
// scalars to the string form Kong parses.
func (r config) flatten(prefix string, doc map[string]any) {
	for key, value := range doc {
		name := strings.ReplaceAll(key, "_", "-")
		if prefix != "" {
			name = prefix + "-" + name
		}

		switch v := value.(type) {
		case map[string]any:
			r.flatten(name, v)

		case []any:
			items := make([]any, len(v))
			for i, item := range v {
				items[i] = scalar(item)
			}

			r[name] = items

		default:
			r[name] = scalar(v)
		}
	}
}

// scalar converts numbers to strings, which Kong requires for parsing.
func scalar(value any) any {
	switch v := value.(type) {
	case int64:
		return strconv.FormatInt(v, 10)
	case uint64:
		return strconv.FormatUint(v, 10)
	case int:
		return strconv.Itoa(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return v
	}
}

// Validate implements [kong.Resolver].
func (r config) Validate(*kong.Application) error {
	return nil
}

// Resolve implements [kong.Resolver].
func (r config) Resolve(
	_ *kong.Context,
	_ *kong.Path,
	flag *kong.Flag,
) (any, error) {
	if value, ok := r[flag.Name]; ok {
		return value, nil
	}

	// Not found - return nil to let Kong use defaults
	return nil, nil
}
