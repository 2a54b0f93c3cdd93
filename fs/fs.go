package appfs

import "embed"

// FS holds files needed at runtime; migrations are applied from here so the
// binary stays self-contained.
//go:embed migrations
var FS embed.FS
