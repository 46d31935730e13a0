// Package migrations embeds the SQL schema migrations so the binary can
// apply them on boot without a migrations directory on disk.
package migrations

import (
	"embed"
	"io/fs"
)

//go:embed *.sql
var files embed.FS

// FS returns the embedded migration files.
func FS() fs.FS {
	return files
}
