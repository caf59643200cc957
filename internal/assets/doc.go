// Package assets provides the stylesheets and HTML templates used by the
// markup and paginated outputs.
//
// # Loaders
//
//	AssetLoader (interface)
//	    │
//	    ├── EmbeddedLoader  - built-in styles and templates (go:embed)
//	    └── StyleResolver   - a user stylesheet file with embedded fallback
//
// EmbeddedLoader serves the default stylesheet and the footer template
// compiled into the binary.
//
// StyleResolver reads a stylesheet the user points at. When the file is
// missing, unreadable or not CSS, it returns the embedded default together
// with a non-nil fallback error; callers report it as a warning and carry on.
//
// # Directory Structure
//
//	styles/
//	└── {name}.css       # built-in stylesheets
//	templates/
//	└── {name}.html      # built-in templates (footer)
//
// # Security
//
// Built-in asset names are validated to prevent path traversal. User
// stylesheet files are size-capped and must carry a .css extension.
package assets
