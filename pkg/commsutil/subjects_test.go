package commsutil

import "testing"

func TestBuildExtensionSubject(t *testing.T) {
	if got := BuildExtensionSubject("kubernetes"); got != "settings.kubernetes.ext" {
		t.Errorf("BuildExtensionSubject = %q, want settings.kubernetes.ext", got)
	}
}

func TestBuildChangeSubject(t *testing.T) {
	if got := BuildChangeSubject("kubernetes", "v1"); got != "settings.changed.kubernetes.v1" {
		t.Errorf("BuildChangeSubject = %q, want settings.changed.kubernetes.v1", got)
	}
}
