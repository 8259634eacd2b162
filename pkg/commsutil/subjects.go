package commsutil

import "fmt"

// Default COMMS subjects.
const (
	SubjectPrefix      = "settings"
	SubjectChangeEvent = "settings.changed"
)

// BuildExtensionSubject builds the request/reply subject an extension serves.
func BuildExtensionSubject(extension string) string {
	return fmt.Sprintf("%s.%s.ext", SubjectPrefix, extension)
}

// BuildChangeSubject builds a granular change event subject.
func BuildChangeSubject(extension, version string) string {
	return fmt.Sprintf("%s.%s.%s", SubjectChangeEvent, extension, version)
}
