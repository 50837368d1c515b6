package version

import (
	"strings"
	"testing"
)

func TestString_IncludesAllFields(t *testing.T) {
	s := String()
	for _, part := range []string{Version, GitSHA, BuildTime} {
		if !strings.Contains(s, part) {
			t.Errorf("version line %q missing %q", s, part)
		}
	}
}
