package defaults

import (
	"bytes"
	"fmt"
	"path"
	"strings"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-schema-defaults/pkg/schema"
)

// decodeDocument parses an external reference document. YAML documents are
// recognized by extension; everything else is treated as JSON.
func decodeDocument(doc schema.Document) (any, error) {
	raw := bytes.TrimSpace(doc.Raw())
	if len(raw) == 0 {
		return nil, fmt.Errorf("defaults: external ref %q is empty", doc.Location())
	}

	var payload any
	switch strings.ToLower(path.Ext(doc.Location())) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(raw, &payload); err != nil {
			return nil, fmt.Errorf("defaults: parse %s: %w", doc.Location(), err)
		}
	default:
		if err := json.Unmarshal(raw, &payload); err != nil {
			return nil, fmt.Errorf("defaults: parse %s: %w", doc.Location(), err)
		}
	}
	return payload, nil
}
