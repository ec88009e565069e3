package runtime

import "strings"

// dotEscape is the reserved two-character sequence substituted for "." when
// sanitizing tool names for providers that reject dotted identifiers
// (§4.3.5). It must never itself appear in a legitimate tool name.
const dotEscape = "__"

// SanitizeToolName replaces dots with the reserved escape sequence before a
// tool name is sent to the model.
func SanitizeToolName(name string) string {
	return strings.ReplaceAll(name, ".", dotEscape)
}

// DesanitizeToolName restores dots in a tool name received from the model.
func DesanitizeToolName(name string) string {
	return strings.ReplaceAll(name, dotEscape, ".")
}
