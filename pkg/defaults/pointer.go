package defaults

import (
	"fmt"
	"strings"
)

// resolveLocal walks a "#/a/b" style pointer from the schema root, treating
// each segment as a key lookup. Traditionally the referenced nodes live under
// a top level "definitions" object, but any root-level path works. A pointer
// that does not land on an object is a hard error rather than a silent miss.
func resolveLocal(root map[string]any, ref string) (map[string]any, error) {
	segments := strings.Split(ref, "/")
	if segments[0] != "#" {
		return nil, fmt.Errorf("defaults: invalid local ref %q", ref)
	}

	current := any(root)
	for _, segment := range segments[1:] {
		mapped, ok := current.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("defaults: local ref %q not found", ref)
		}
		next, ok := mapped[segment]
		if !ok {
			return nil, fmt.Errorf("defaults: local ref %q not found", ref)
		}
		current = next
	}

	target, ok := current.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("defaults: local ref %q is not an object", ref)
	}
	return target, nil
}
