// Package testutil provides test helpers for CLI tests.
package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// RequireShell skips the test when /bin/sh is missing. Fake compilers are
// shell scripts.
func RequireShell(t *testing.T) {
	t.Helper()
	if _, err := os.Stat("/bin/sh"); err != nil {
		t.Skip("/bin/sh not available")
	}
}

// UnsetEnv clears the given environment variables for the duration of the test.
func UnsetEnv(t *testing.T, keys ...string) {
	t.Helper()
	for _, key := range keys {
		t.Setenv(key, "")
		if err := os.Unsetenv(key); err != nil {
			t.Fatalf("failed to unset %s: %v", key, err)
		}
	}
}

// WriteFile creates a file with the given content in the specified directory.
func WriteFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("failed to create parent dirs for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write file %s: %v", path, err)
	}
	return path
}

// FakeCompiler writes a compiler script to dir that discards its request and
// prints response. It returns the command to run it.
func FakeCompiler(t *testing.T, dir, response string) []string {
	t.Helper()
	script := "cat >/dev/null\ncat <<'JSON'\n" + response + "\nJSON\n"
	return []string{"/bin/sh", WriteFile(t, dir, "compiler.sh", script)}
}

// EchoCompiler writes a compiler script to dir that answers every request
// with {"code": <the request itself>}, so tests can inspect what was sent.
func EchoCompiler(t *testing.T, dir string) []string {
	t.Helper()
	script := `req=$(cat)
esc=$(printf '%s' "$req" | sed -e 's/\\/\\\\/g' -e 's/"/\\"/g')
printf '{"code":"%s"}' "$esc"
`
	return []string{"/bin/sh", WriteFile(t, dir, "echo-compiler.sh", script)}
}
