package auth

import (
	"bufio"
	"os"
	"strings"

	"github.com/minderapp/minder/internal/logger"
)

// PasswordSet is an immutable lookup set of passwords too common to allow.
// It is built once at startup and passed by reference into the verifier.
type PasswordSet struct {
	entries map[string]struct{}
}

// LoadPasswordSet reads a newline-delimited password list. A missing or
// unreadable file is logged and yields an empty set rather than failing
// startup; the password policy still applies without the list.
func LoadPasswordSet(path string) *PasswordSet {
	set := &PasswordSet{entries: make(map[string]struct{})}
	if path == "" {
		return set
	}

	file, err := os.Open(path)
	if err != nil {
		logger.Warn("Unable to load common password list", logger.F("path", path), logger.F("error", err))
		return set
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		if entry := strings.TrimSpace(scanner.Text()); entry != "" {
			set.entries[entry] = struct{}{}
		}
	}
	if err := scanner.Err(); err != nil {
		logger.Warn("Error reading common password list", logger.F("path", path), logger.F("error", err))
	}

	logger.Info("Loaded common password list",
		logger.F("path", path), logger.F("entries", len(set.entries)))
	return set
}

// Contains reports whether a password is on the common list
func (s *PasswordSet) Contains(password string) bool {
	_, ok := s.entries[password]
	return ok
}

// Len reports the number of loaded entries
func (s *PasswordSet) Len() int {
	return len(s.entries)
}
