package configs

import (
	"encoding/json"
	"io"

	"github.com/invopop/jsonschema"
)

// GenConfigSchema writes the JSON schema of the configuration to w, for use
// by editors validating config files.
func GenConfigSchema(w io.Writer) error {
	reflector := jsonschema.Reflector{
		ExpandedStruct: true,
		DoNotReference: false,
	}
	schema := reflector.Reflect(&Config{})

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(schema)
}
