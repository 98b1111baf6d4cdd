package services

import (
	"log/slog"
	"strconv"
	"strings"
)

// CommentMarker introduces a comment that extends to the end of the line.
const CommentMarker = '#'

// isComment reports whether s begins with the comment marker.
func isComment(s string) bool {
	return len(s) > 0 && s[0] == CommentMarker
}

// ParseLine parses a single entry line of the form
//
//	name port/protocol [alias ...] [# comment]
//
// Tokens are separated by runs of Unicode whitespace. Scanning of aliases
// stops at the first token that begins with '#'.
//
// The caller is expected to skip blank and comment lines; a line without any
// token is reported as [ErrMalformedInput].
func ParseLine(text string) (Entry, error) {
	fields := strings.Fields(text)

	if len(fields) == 0 || isComment(fields[0]) {
		return Entry{}, ErrMalformedInput.
			With(slog.String("text", text))
	}

	name := fields[0]

	if len(fields) < 2 {
		return Entry{}, ErrMissingPortProtocolField.
			With(slog.String("name", name))
	}

	portText, protocol, hasProtocol := strings.Cut(fields[1], "/")
	if isComment(portText) {
		return Entry{}, ErrMissingPortProtocolField.
			With(slog.String("name", name))
	}

	port, err := strconv.ParseUint(portText, 10, strconv.IntSize)
	if err != nil {
		return Entry{}, ErrMalformedPort.
			Wrap(err).
			With(slog.String("name", name), slog.String("port", portText))
	}

	if !hasProtocol || protocol == "" || isComment(protocol) {
		return Entry{}, ErrMissingProtocolField.
			With(slog.String("name", name), slog.String("field", fields[1]))
	}

	aliases := make([]string, 0, len(fields)-2)

	for _, alias := range fields[2:] {
		if isComment(alias) {
			break
		}

		aliases = append(aliases, alias)
	}

	return Entry{
		Name:     name,
		Port:     uint(port),
		Protocol: protocol,
		Aliases:  aliases,
	}, nil
}
