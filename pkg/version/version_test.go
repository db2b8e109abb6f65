package version

import "testing"

func TestFullString(t *testing.T) {
	old := Version
	defer func() { Version = old }()

	Version = "dev"
	if got := FullString(); got != "jenkins-action development version" {
		t.Errorf("FullString() = %q", got)
	}

	Version = "1.2.3"
	if got := FullString(); got != "jenkins-action 1.2.3" {
		t.Errorf("FullString() = %q", got)
	}
	if got := UserAgent(); got != "jenkins-action/1.2.3" {
		t.Errorf("UserAgent() = %q", got)
	}
	if got := Info()["version"]; got != "1.2.3" {
		t.Errorf("Info()[version] = %q", got)
	}
}
