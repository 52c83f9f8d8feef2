package auth

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidPassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		want     bool
	}{
		{"meets policy", "Str0ng!Passw0rd1", true},
		{"too short", "Sh0rt!Pass", false},
		{"too long", "Str0ng!Passw0rd12345", false},
		{"no uppercase", "str0ng!passw0rd1", false},
		{"no lowercase", "STR0NG!PASSW0RD1", false},
		{"no digit", "Strong!Passwords", false},
		{"no special", "Str0ngPassw0rd12", false},
		{"disallowed character", "Str0ng! Passw0rd1", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidPassword(tt.password))
		})
	}
}

func TestValidUsername(t *testing.T) {
	assert.False(t, ValidUsername("abc"))
	assert.True(t, ValidUsername("abcd"))
	assert.True(t, ValidUsername("  abcd  "), "whitespace is trimmed before measuring")
	assert.True(t, ValidUsername("nineteen-chars-long"))
	assert.False(t, ValidUsername("twenty-characters-xx"))
	assert.False(t, ValidUsername("    "))
	assert.False(t, ValidUsername("日本語"), "three characters even though nine bytes")
	assert.True(t, ValidUsername("日本語人"))
}

func TestValidEmail(t *testing.T) {
	assert.True(t, ValidEmail("johndoe@example.com"))
	assert.True(t, ValidEmail("a.b+c@sub.example.org"))
	assert.False(t, ValidEmail("johndoe"))
	assert.False(t, ValidEmail("john@doe"))
	assert.False(t, ValidEmail("@example.com"))
}

func TestHashPasswordSaltedByUser(t *testing.T) {
	hash, err := HashPassword("user-1", "Str0ng!Passw0rd1")
	require.NoError(t, err)

	assert.True(t, CheckPassword("user-1", "Str0ng!Passw0rd1", hash))
	assert.False(t, CheckPassword("user-2", "Str0ng!Passw0rd1", hash),
		"hash is bound to the owning user id")
	assert.False(t, CheckPassword("user-1", "wrong", hash))
}

func TestLoadPasswordSet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "common.txt")
	require.NoError(t, os.WriteFile(path, []byte("password123\n  hunter2  \n\nqwerty\n"), 0644))

	set := LoadPasswordSet(path)
	assert.Equal(t, 3, set.Len())
	assert.True(t, set.Contains("password123"))
	assert.True(t, set.Contains("hunter2"), "entries are trimmed")
	assert.False(t, set.Contains("notinlist"))
}

func TestLoadPasswordSetMissingFile(t *testing.T) {
	set := LoadPasswordSet(filepath.Join(t.TempDir(), "nope.txt"))
	assert.Equal(t, 0, set.Len(), "missing list degrades to an empty set")
}
