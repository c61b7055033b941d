// Package ui provides the embedded single-page web UI.
package ui

import (
	_ "embed"
)

// IndexHTML is the analyze/download page served at "/".
//
//go:embed index.html
var IndexHTML []byte
