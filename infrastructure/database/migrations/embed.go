package migrations

import "embed"

// FS contém os scripts versionados de cada driver (postgres/, sqlite/)
//
//go:embed postgres/*.sql sqlite/*.sql
var FS embed.FS
