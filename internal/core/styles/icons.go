package styles

// Tip: To find icons use https://github.com/loichyan/nerdfix

var (
	IconTranslate = "\U000F05CA"
	IconBook      = ""
	IconCheck     = ""
	IconMissing   = ""
	IconSearch    = ""
)

// File type icons
var (
	IconFileDefault = " "
	IconFileJS      = "\U000F031E "
	IconFileTS      = "\U000F06E6 "
)

// FileIcon returns the icon for a source file extension.
func FileIcon(ext string) string {
	switch ext {
	case ".js", ".mjs", ".cjs", ".jsx":
		return IconFileJS
	case ".ts", ".mts", ".cts", ".tsx":
		return IconFileTS
	default:
		return IconFileDefault
	}
}
