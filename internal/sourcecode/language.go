package sourcecode

import (
	"path/filepath"
	"strings"
)

// NoHighlight disables client side highlighting.
const NoHighlight = "no-highlight"

var filenameLanguages = map[string]string{
	"makefile":       "makefile",
	"gnumakefile":    "makefile",
	"makefile.am":    "makefile",
	"makefile.in":    "makefile",
	"cmakelists.txt": "cmake",
	"dockerfile":     "dockerfile",
	"rules":          "makefile",
	"changelog":      "plaintext",
	"configure.ac":   "bash",
	"meson.build":    "python",
}

var extLanguages = map[string]string{
	".c":     "cpp",
	".h":     "cpp",
	".cc":    "cpp",
	".cpp":   "cpp",
	".cxx":   "cpp",
	".hpp":   "cpp",
	".hh":    "cpp",
	".m":     "objectivec",
	".py":    "python",
	".pl":    "perl",
	".pm":    "perl",
	".rb":    "ruby",
	".sh":    "bash",
	".bash":  "bash",
	".zsh":   "bash",
	".go":    "go",
	".rs":    "rust",
	".java":  "java",
	".scala": "scala",
	".js":    "javascript",
	".ts":    "typescript",
	".json":  "json",
	".html":  "xml",
	".htm":   "xml",
	".xml":   "xml",
	".css":   "css",
	".php":   "php",
	".lua":   "lua",
	".sql":   "sql",
	".hs":    "haskell",
	".ml":    "ocaml",
	".mli":   "ocaml",
	".el":    "lisp",
	".lisp":  "lisp",
	".scm":   "scheme",
	".tex":   "tex",
	".md":    "markdown",
	".diff":  "diff",
	".patch": "diff",
	".ini":   "ini",
	".cmake": "cmake",
	".mk":    "makefile",
	".vala":  "vala",
	".cs":    "cs",
	".f":     "fortran",
	".f90":   "fortran",
	".erl":   "erlang",
	".tcl":   "tcl",
	".yaml":  "yaml",
	".yml":   "yaml",
}

var interpreterLanguages = map[string]string{
	"sh":     "bash",
	"bash":   "bash",
	"dash":   "bash",
	"zsh":    "bash",
	"python": "python",
	"perl":   "perl",
	"ruby":   "ruby",
	"php":    "php",
	"node":   "javascript",
	"lua":    "lua",
	"tclsh":  "tcl",
	"make":   "makefile",
}

// Language guesses the highlight.js class of a file from an explicit
// choice, its name, or the interpreter named on a #! first line.
func Language(filename, firstLine, lang string) string {
	if lang != "" {
		return lang
	}
	base := strings.ToLower(filepath.Base(filename))
	if l, ok := filenameLanguages[base]; ok {
		return l
	}
	if l, ok := extLanguages[filepath.Ext(base)]; ok {
		return l
	}
	if l := shebangLanguage(firstLine); l != "" {
		return l
	}
	return NoHighlight
}

func shebangLanguage(line string) string {
	if !strings.HasPrefix(line, "#!") {
		return ""
	}
	fields := strings.Fields(strings.TrimPrefix(line, "#!"))
	if len(fields) == 0 {
		return ""
	}
	interp := filepath.Base(fields[0])
	if interp == "env" && len(fields) > 1 {
		interp = fields[1]
	}
	// python3, perl5.36
	interp = strings.TrimRight(interp, "0123456789.")
	return interpreterLanguages[interp]
}
