package api

// Generation is one unit of text produced by a completion backend.
type Generation struct {
	GeneratedText string `json:"generated_text"`
}

// Ide identifies the editor or tool that originated a completion request.
// The wire value is lowercase; Tag returns the form used in user agents.
type Ide string

const (
	IdeNeovim       Ide = "neovim"
	IdeVSCode       Ide = "vscode"
	IdeJetBrains    Ide = "jetbrains"
	IdeEmacs        Ide = "emacs"
	IdeJupyter      Ide = "jupyter"
	IdeSublime      Ide = "sublime"
	IdeVisualStudio Ide = "visualstudio"
	IdeUnknown      Ide = "unknown"
)

var ideTags = map[Ide]string{
	IdeNeovim:       "Neovim",
	IdeVSCode:       "VSCode",
	IdeJetBrains:    "JetBrains",
	IdeEmacs:        "Emacs",
	IdeJupyter:      "Jupyter",
	IdeSublime:      "Sublime",
	IdeVisualStudio: "VisualStudio",
	IdeUnknown:      "Unknown",
}

// Tag returns the identity string embedded in the User-Agent header.
// Unrecognized values are returned verbatim; an empty value maps to "Unknown".
func (i Ide) Tag() string {
	if tag, ok := ideTags[i]; ok {
		return tag
	}
	if i == "" {
		return ideTags[IdeUnknown]
	}
	return string(i)
}
