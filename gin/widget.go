package gin

import _ "embed"

// widgetHTML is the single-page chat widget served at the root path.
//
//go:embed widget.html
var widgetHTML []byte
