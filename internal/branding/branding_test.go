package branding

import "testing"

func TestEmbeddedValues(t *testing.T) {
	if got := CLIName(); got != "extlaunch" {
		t.Errorf("CLIName = %q, want %q", got, "extlaunch")
	}
	if got := HomeDir(); got != ".extframework" {
		t.Errorf("HomeDir = %q, want %q", got, ".extframework")
	}
}

func TestEnvVar(t *testing.T) {
	if got := EnvVar("log_level"); got != "EXTFRAMEWORK_LOG_LEVEL" {
		t.Errorf("EnvVar = %q, want %q", got, "EXTFRAMEWORK_LOG_LEVEL")
	}
}
