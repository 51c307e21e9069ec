package defs

// Common file and directory names used across the project.
const (
	// ProjectConfigJSON is the mock server route and middleware configuration.
	ProjectConfigJSON = "config.json"

	// SettingsYAML is the tool settings file (server address, logging, panel).
	SettingsYAML = "schism.yaml"

	// RequirementsTxt is the Python dependency manifest consumed by setup.
	RequirementsTxt = "requirements.txt"

	// EnvDir is the virtual environment directory created by setup.
	EnvDir = "venv"

	// LauncherSh is the generated POSIX launcher.
	LauncherSh = "run_gui.sh"

	// LauncherBat is the generated Windows launcher.
	LauncherBat = "run_gui.bat"

	// DocTemplateMD is the hand-written preamble for generated API docs.
	DocTemplateMD = "template.md"

	// DocOutputMD is the generated API documentation file.
	DocOutputMD = "output.md"
)

// Dataset file name helpers. A dataset named "users" lives in users.json
// with its generation schema in users-config.json.
const (
	DatasetSuffix = ".json"
	SchemaSuffix  = "-config.json"
)
