package permissions

import _ "embed"

//go:embed schema.yaml
var Schema []byte
