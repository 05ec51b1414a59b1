package runk

import (
	"io"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Dump writes the variables, functions and labels of the program as YAML.
// Entries are sorted by name so dumps of equal states are equal.
func (state *State) Dump(w io.Writer) error {
	doc := &yaml.Node{Kind: yaml.MappingNode}
	doc.Content = append(doc.Content,
		scalar("variables"), state.variablesNode(),
		scalar("functions"), state.functionsNode(),
		scalar("labels"), state.labelsNode(),
	)

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return err
	}
	return enc.Close()
}

func (state *State) variablesNode() *yaml.Node {
	node := &yaml.Node{Kind: yaml.MappingNode}
	for _, name := range sortedKeys(state.vars) {
		v := state.vars[name]
		node.Content = append(node.Content, scalar(name), &yaml.Node{
			Kind: yaml.MappingNode,
			Content: []*yaml.Node{
				scalar("type"), scalar(v.Kind().String()),
				scalar("value"), scalar(v.String()),
			},
		})
	}
	return node
}

func (state *State) functionsNode() *yaml.Node {
	node := &yaml.Node{Kind: yaml.MappingNode}
	for _, name := range sortedKeys(state.funcs) {
		node.Content = append(node.Content, scalar(name), scalar(state.funcs[name].Args.String()))
	}
	return node
}

func (state *State) labelsNode() *yaml.Node {
	node := &yaml.Node{Kind: yaml.MappingNode}
	for _, name := range sortedKeys(state.labels) {
		node.Content = append(node.Content, scalar(name), &yaml.Node{
			Kind:  yaml.ScalarNode,
			Tag:   "!!int",
			Value: strconv.Itoa(state.labels[name]),
		})
	}
	return node
}

// scalar returns a string node; the tag keeps values such as "5" or "" from
// being read back as other types.
func scalar(s string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: s}
}
