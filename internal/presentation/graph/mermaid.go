// Package graph renders feature graphs for visualization tools.
package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/lumen/pkg/feature"
)

// GenerateMermaid produces a Mermaid flowchart syntax string from a feature
// graph description. It applies semantic styling:
// - Combinators (sequence, repeat, maybe, wrap): [[Subroutine]]
// - Content features: [Rectangle], annotated with their property names.
func GenerateMermaid(info *feature.Info) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")
	counter := 0
	writeNode(&sb, info, &counter)
	return sb.String()
}

// writeNode emits one node and its edges, returning the node's Mermaid ID.
func writeNode(sb *strings.Builder, info *feature.Info, counter *int) string {
	id := fmt.Sprintf("n%d", *counter)
	*counter++

	opener, closer := "[", "]"
	if isCombinator(info.Name) {
		opener, closer = "[[", "]]"
	}

	label := sanitizeMermaidLabel(info.Name)
	if len(info.Properties) > 0 {
		label = fmt.Sprintf("%s <br/> %s", label, strings.Join(info.Properties, ", "))
	}
	fmt.Fprintf(sb, "    %s%s\"%s\"%s\n", id, opener, label, closer)

	for _, child := range info.Children {
		childID := writeNode(sb, child, counter)
		fmt.Fprintf(sb, "    %s --> %s\n", id, childID)
	}
	return id
}

func isCombinator(name string) bool {
	switch {
	case name == "sequence", name == "repeat":
		return true
	case strings.HasPrefix(name, "maybe("), strings.Contains(name, "("):
		return true
	}
	return false
}

// sanitizeMermaidLabel strips characters that break Mermaid string labels.
func sanitizeMermaidLabel(label string) string {
	replacer := strings.NewReplacer("\"", "'", "\n", " ")
	return replacer.Replace(label)
}
