package render

import "strings"

// filenameSanitizer replaces the characters that are unsafe in file names on
// common filesystems. All other characters (dots and dashes included) pass
// through unchanged.
var filenameSanitizer = strings.NewReplacer(
	`\`, "_",
	"/", "_",
	":", "_",
	"*", "_",
	"?", "_",
	`"`, "_",
	"<", "_",
	">", "_",
	"|", "_",
)

// SanitizeFilename returns name with every occurrence of \ / : * ? " < > |
// replaced by an underscore, suitable as an output file stem.
func SanitizeFilename(name string) string {
	return filenameSanitizer.Replace(name)
}
