package permissions

import _ "embed"

// Schema groups the core permissions on the role permission matrix.
//
//go:embed schema.yaml
var Schema []byte
