package autocomplete

import (
	"github.com/agentstation/acgen/pkg/errors"
)

// psNodeKind tags a node of the powershell command tree.
type psNodeKind int

const (
	psTopic psNodeKind = iota
	psCommand
	psCoTopic
)

// psNode is a node of the command tree serialized into the powershell
// completer. Topics carry a summary, commands carry their completion and
// co-topics carry both a command and children.
type psNode struct {
	kind     psNodeKind
	key      string
	summary  string
	command  CommandCompletion
	children []*psNode
}

// buildPSTree returns the top-level nodes of the command tree of m.
func buildPSTree(m *Metadata) ([]*psNode, error) {
	return psChildren(m, "")
}

func psChildren(m *Metadata, parent string) ([]*psNode, error) {
	var nodes []*psNode
	taken := make(map[string]bool)

	for _, t := range m.childTopics(parent) {
		key := lastSegment(t.Name)
		taken[key] = true

		children, err := psChildren(m, t.Name)
		if err != nil {
			return nil, err
		}
		node := &psNode{kind: psTopic, key: key, summary: t.Description, children: children}
		if m.IsCommandTopic(t.Name) {
			cmd, ok := m.Command(t.Name)
			if !ok {
				return nil, errors.NewInternalError("powershell", "no command for co-topic "+t.Name)
			}
			node.kind = psCoTopic
			node.command = cmd
		}
		nodes = append(nodes, node)
	}

	for _, c := range m.childCommands(parent) {
		key := lastSegment(c.ID)
		if taken[key] || m.IsCommandTopic(c.ID) {
			continue
		}
		taken[key] = true
		nodes = append(nodes, &psNode{kind: psCommand, key: key, command: c})
	}
	return nodes, nil
}
