package counter

import "strings"

// Version control and editor directories every template excludes.
var (
	CommonVCSDirs = []string{".git", ".svn", ".hg", ".bzr", ".cvs"}
	CommonIDEDirs = []string{".idea", ".settings", ".classpath", ".project", ".metadata", ".vscode", "*.iml", "nbproject", ".vs"}
)

// CustomTemplate is the template that starts from an empty extension list.
const CustomTemplate = "Custom"

// Template is a named preset of extensions and build output directories.
type Template struct {
	Name          string   `json:"name"`
	Extensions    []string `json:"extensions"`
	BuildExcludes []string `json:"build_excludes"`
}

// Templates lists the presets in display order.
var Templates = []Template{
	{
		Name:          "Java Web",
		Extensions:    []string{".java", ".jsp", ".jspx", ".ftl", ".vm", ".html", ".htm", ".css", ".js", ".xml", ".properties", ".yml", ".yaml"},
		BuildExcludes: []string{"target", "build", ".gradle", "bin", "node_modules"},
	},
	{
		Name:          "Java Swing/JavaFX",
		Extensions:    []string{".java", ".fxml", ".css", ".xml", ".properties", ".yml", ".yaml"},
		BuildExcludes: []string{"target", "build", ".gradle", "bin", "dist", "native-lib"},
	},
	{
		Name:          "Java Backend",
		Extensions:    []string{".java", ".xml", ".properties", ".yml", ".yaml", ".sql"},
		BuildExcludes: []string{"target", "build", ".gradle", "bin"},
	},
	{
		Name:          "Frontend",
		Extensions:    []string{".html", ".htm", ".css", ".js", ".jsx", ".ts", ".tsx", ".vue", ".scss", ".less"},
		BuildExcludes: []string{"node_modules", "dist", "build", ".next", ".nuxt", "coverage", "bower_components"},
	},
	{
		Name:          "C++",
		Extensions:    []string{".cpp", ".cc", ".cxx", ".c", ".h", ".hpp", ".hxx"},
		BuildExcludes: []string{"build", "cmake-build-debug", "cmake-build-release", "out", "Debug", "Release", "x64", "x86"},
	},
	{
		Name:          "PHP",
		Extensions:    []string{".php", ".php3", ".html", ".htm", ".css", ".js", ".json", ".lock", ".env", ".xml", ".twig", ".phtml", ".latte"},
		BuildExcludes: []string{"vendor", "node_modules", "cache", "storage"},
	},
	{
		Name:          "Python",
		Extensions:    []string{".py", ".txt", ".cfg", ".toml", ".ini", ".json", ".yaml", ".yml"},
		BuildExcludes: []string{"__pycache__", ".venv", "venv", "env", ".tox", "dist", "build", ".eggs", "*.egg-info"},
	},
	{Name: CustomTemplate},
}

// LookupTemplate finds a template by name, ignoring case.
func LookupTemplate(name string) (Template, bool) {
	for _, t := range Templates {
		if strings.EqualFold(t.Name, strings.TrimSpace(name)) {
			return t, true
		}
	}
	return Template{}, false
}

// ExcludeDirs returns the VCS, editor and build directories the template skips.
func (t Template) ExcludeDirs() []string {
	out := make([]string, 0, len(CommonVCSDirs)+len(CommonIDEDirs)+len(t.BuildExcludes))
	out = append(out, CommonVCSDirs...)
	out = append(out, CommonIDEDirs...)
	return append(out, t.BuildExcludes...)
}

// Apply returns opts with the template's extensions and exclusions.
func (t Template) Apply(opts Options) Options {
	opts.Extensions = append([]string(nil), t.Extensions...)
	opts.ExcludeDirs = t.ExcludeDirs()
	return opts
}
