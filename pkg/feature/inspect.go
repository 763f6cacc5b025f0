package feature

import (
	"fmt"
	"strings"
)

// Info is a static description of a feature node, used by introspection and
// visualization tools.
type Info struct {
	Name       string   `json:"name"`
	Properties []string `json:"properties,omitempty"`
	Children   []*Info  `json:"children,omitempty"`
}

// Inspect walks the graph and returns its structural description.
// Repeat nodes report the copies of the last completed update cycle.
func Inspect(f Feature) *Info {
	info := &Info{
		Name:       f.Name(),
		Properties: f.Properties().Names(),
	}
	for _, child := range f.Children() {
		info.Children = append(info.Children, Inspect(child))
	}
	return info
}

// String renders the description as an indented tree.
func (i *Info) String() string {
	var sb strings.Builder
	i.render(&sb, 0)
	return sb.String()
}

func (i *Info) render(sb *strings.Builder, depth int) {
	indent := strings.Repeat("  ", depth)
	if len(i.Properties) > 0 {
		fmt.Fprintf(sb, "%s%s [%s]\n", indent, i.Name, strings.Join(i.Properties, ", "))
	} else {
		fmt.Fprintf(sb, "%s%s\n", indent, i.Name)
	}
	for _, child := range i.Children {
		child.render(sb, depth+1)
	}
}
