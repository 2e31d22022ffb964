package version

import (
	"strings"
	"testing"
)

func TestString(t *testing.T) {
	old := Version
	t.Cleanup(func() { Version = old })
	Version = "v1.2.3"

	s := String()
	if !strings.HasPrefix(s, "cohesion v1.2.3 ") {
		t.Errorf("String() = %q", s)
	}
	if !strings.Contains(s, Commit) {
		t.Errorf("String() = %q lacks commit", s)
	}
}
