// Package migrations ships the SQL schema with the binary so the stores do
// not depend on the working directory.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
