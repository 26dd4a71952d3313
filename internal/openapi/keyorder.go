package openapi

import (
	"sort"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// keyOrder maps a JSON-pointer path to the mapping keys found there, in document order.
// Only "properties" mappings and the components/schemas mapping are recorded.
type keyOrder map[string][]string

const schemasPath = "/components/schemas"

// extractKeyOrder walks the raw YAML (or JSON) node tree. The parsed OpenAPI
// model stores schemas and properties in Go maps, which lose this order.
func extractKeyOrder(data []byte) (keyOrder, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, err
	}

	order := make(keyOrder)
	var walk func(n *yaml.Node, path string)
	walk = func(n *yaml.Node, path string) {
		switch n.Kind {
		case yaml.DocumentNode:
			for _, c := range n.Content {
				walk(c, path)
			}
		case yaml.MappingNode:
			names := make([]string, 0, len(n.Content)/2)
			for i := 0; i+1 < len(n.Content); i += 2 {
				key := n.Content[i].Value
				names = append(names, key)
				walk(n.Content[i+1], joinPath(path, key))
			}
			if path == schemasPath || strings.HasSuffix(path, "/properties") {
				order[path] = names
			}
		case yaml.SequenceNode:
			for i, c := range n.Content {
				walk(c, joinPath(path, strconv.Itoa(i)))
			}
		case yaml.AliasNode:
			if n.Alias != nil {
				walk(n.Alias, path)
			}
		}
	}
	walk(&root, "")
	return order, nil
}

// keys returns the keys of m in document order. Keys missing from the
// recorded order are appended sorted, so the result is always deterministic.
func keys[V any](o keyOrder, path string, m map[string]V) []string {
	result := make([]string, 0, len(m))
	seen := make(map[string]bool, len(m))
	for _, key := range o[path] {
		if _, ok := m[key]; ok && !seen[key] {
			result = append(result, key)
			seen[key] = true
		}
	}

	var rest []string
	for key := range m {
		if !seen[key] {
			rest = append(rest, key)
		}
	}
	sort.Strings(rest)
	return append(result, rest...)
}

var pointerEscaper = strings.NewReplacer("~", "~0", "/", "~1")

func joinPath(path, key string) string {
	return path + "/" + pointerEscaper.Replace(key)
}
