// Package assets provides the lexicon files and HTML page styles go-mdnorm
// ships with, plus user-supplied overrides from a directory on disk.
//
// # Loader Architecture
//
//	AssetLoader (interface)
//	    │
//	    ├── EmbeddedLoader    - loads from go:embed filesystem (built-in assets)
//	    ├── FilesystemLoader  - loads from custom directory on disk
//	    └── AssetResolver     - combines both with custom-first fallback
//
// A lexicon is the YAML word and pattern list behind the heuristic passes
// (prose starters, heading stop words, math indicators, ...). Overriding the
// "default" lexicon from a custom directory replaces it entirely; any other
// name adds a new lexicon next to the built-in one.
//
// # Directory Structure
//
//	{basePath}/
//	├── lexicons/
//	│   └── {name}.yaml          # e.g. default.yaml, legal.yaml
//	└── styles/
//	    └── {name}.css           # page style for standalone HTML output
//
// # Security
//
// Asset names are validated to prevent path traversal attacks.
// FilesystemLoader resolves symlinks and verifies paths stay within basePath.
package assets
