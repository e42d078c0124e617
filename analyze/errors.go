package analyze

import (
	"errors"
	"strings"
)

type kind int

const (
	kindEngine kind = iota
	kindIO
	kindCatalog
	kindUsage
)

// errUsage marks validation failures the user can fix on the command line.
var errUsage = errors.New("invalid usage")

var (
	ioMarkers = []string{
		"IO Error",
		"No files found",
		"Could not open",
		"no such file",
		"permission denied",
	}
	catalogMarkers = []string{
		"Catalog Error",
		"does not exist",
		"already exists",
	}
)

func classify(err error) kind {
	msg := err.Error()
	// cli reports unset required flags on its own
	if errors.Is(err, errUsage) || strings.Contains(msg, "Required flag") {
		return kindUsage
	}
	for _, marker := range ioMarkers {
		if strings.Contains(msg, marker) {
			return kindIO
		}
	}
	for _, marker := range catalogMarkers {
		if strings.Contains(msg, marker) {
			return kindCatalog
		}
	}
	return kindEngine
}

// Describe maps a failure to the short reason printed for the user.
func Describe(err error) string {
	switch classify(err) {
	case kindUsage:
		return "invalid arguments"
	case kindIO:
		return "io failure"
	case kindCatalog:
		return "catalog failure"
	default:
		return "query failed"
	}
}
