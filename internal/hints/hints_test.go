package hints

// Notes:
// - ForBrowserConnect tests cannot use t.Parallel(): they call t.Setenv and
//   replace the package-level IsInContainer.

import (
	"strings"
	"testing"
)

func stubContainer(t *testing.T, in bool) {
	t.Helper()
	orig := IsInContainer
	t.Cleanup(func() { IsInContainer = orig })
	IsInContainer = func() bool { return in }
}

// ---------------------------------------------------------------------------
// TestForBrowserConnect
// ---------------------------------------------------------------------------

func TestForBrowserConnect(t *testing.T) {
	tests := []struct {
		name        string
		container   bool
		env         map[string]string
		wantSandbox bool
		wantBin     bool
	}{
		{
			name:        "ci without sandbox setting",
			env:         map[string]string{"CI": "true", "ROD_NO_SANDBOX": "", "ROD_BROWSER_BIN": ""},
			wantSandbox: true,
			wantBin:     true,
		},
		{
			name:        "docker",
			container:   true,
			env:         map[string]string{"CI": "", "ROD_NO_SANDBOX": "", "ROD_BROWSER_BIN": ""},
			wantSandbox: true,
			wantBin:     true,
		},
		{
			name:      "sandbox already disabled",
			container: true,
			env:       map[string]string{"CI": "", "ROD_NO_SANDBOX": "1", "ROD_BROWSER_BIN": ""},
			wantBin:   true,
		},
		{
			name: "local with custom browser",
			env:  map[string]string{"CI": "", "GITHUB_ACTIONS": "", "GITLAB_CI": "", "JENKINS_URL": "", "ROD_NO_SANDBOX": "", "ROD_BROWSER_BIN": "/usr/bin/chrome"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stubContainer(t, tt.container)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			hint := ForBrowserConnect()

			if !strings.HasPrefix(hint, "\n  hint: ") {
				t.Errorf("hint format inconsistent: %q", hint)
			}
			if got := strings.Contains(hint, "ROD_NO_SANDBOX"); got != tt.wantSandbox {
				t.Errorf("ROD_NO_SANDBOX suggested = %v, want %v (%q)", got, tt.wantSandbox, hint)
			}
			if got := strings.Contains(hint, "ROD_BROWSER_BIN"); got != tt.wantBin {
				t.Errorf("ROD_BROWSER_BIN suggested = %v, want %v (%q)", got, tt.wantBin, hint)
			}
			if !strings.Contains(hint, "docx") {
				t.Errorf("hint should mention browser-free formats, got %q", hint)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestForConfigNotFound
// ---------------------------------------------------------------------------

func TestForConfigNotFound(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		paths    []string
		contains string
		excludes string
	}{
		{
			name:     "no paths",
			paths:    nil,
			contains: "--config",
			excludes: "create",
		},
		{
			name:     "user config path suggested",
			paths:    []string{"work.yaml", "/home/u/.config/go-mdconvert/work.yaml"},
			contains: "create /home/u/.config/go-mdconvert/work.yaml",
		},
		{
			name:     "local paths only",
			paths:    []string{"work.yaml", "work.yml"},
			contains: "--config",
			excludes: "create",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			hint := ForConfigNotFound(tt.paths)
			if !strings.Contains(hint, tt.contains) {
				t.Errorf("hint = %q, want to contain %q", hint, tt.contains)
			}
			if tt.excludes != "" && strings.Contains(hint, tt.excludes) {
				t.Errorf("hint = %q, should not contain %q", hint, tt.excludes)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestForUnsupportedFormat
// ---------------------------------------------------------------------------

func TestForUnsupportedFormat(t *testing.T) {
	t.Parallel()

	if got := ForUnsupportedFormat(nil); got != "" {
		t.Errorf("ForUnsupportedFormat(nil) = %q, want empty", got)
	}
	got := ForUnsupportedFormat([]string{"html", "pdf", "docx"})
	if !strings.Contains(got, "available: html, pdf, docx") {
		t.Errorf("ForUnsupportedFormat() = %q", got)
	}
}

// ---------------------------------------------------------------------------
// TestFormat_Consistency
// ---------------------------------------------------------------------------

func TestFormat_Consistency(t *testing.T) {
	t.Parallel()

	hints := map[string]string{
		"timeout":          ForTimeout(),
		"output directory": ForOutputDirectory(),
		"style fallback":   ForStyleFallback(),
		"config":           ForConfigNotFound(nil),
	}
	for name, h := range hints {
		if !strings.HasPrefix(h, "\n  hint: ") {
			t.Errorf("%s hint format inconsistent: %q", name, h)
		}
	}
	if !strings.Contains(ForTimeout(), "--timeout") {
		t.Error("timeout hint should mention --timeout")
	}
	if formatHints(nil) != "" || format("") != "" {
		t.Error("empty hints should format to empty string")
	}
}
