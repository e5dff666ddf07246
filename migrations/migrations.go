// Package migrations embeds the versioned schema so the binary can apply it
// without the source tree.
package migrations

import "embed"

//go:embed *.sql atlas.sum
var FS embed.FS
