package wm

import (
	"strings"

	"github.com/samber/lo"
)

// Node types as reported by get_tree.
const (
	TypeRoot        = "root"
	TypeOutput      = "output"
	TypeWorkspace   = "workspace"
	TypeCon         = "con"
	TypeFloatingCon = "floating_con"
)

// Node is a read-only view of one entry of the sway scene graph. Null
// JSON values decode to empty strings.
type Node struct {
	ID               int64            `json:"id"`
	Type             string           `json:"type"`
	Name             string           `json:"name"`
	AppID            string           `json:"app_id"`
	Representation   string           `json:"representation"`
	Focused          bool             `json:"focused"`
	WindowProperties WindowProperties `json:"window_properties"`
	Nodes            []Node           `json:"nodes"`
	FloatingNodes    []Node           `json:"floating_nodes"`
}

// WindowProperties is only set for XWayland windows.
type WindowProperties struct {
	Class    string `json:"class"`
	Instance string `json:"instance"`
	Title    string `json:"title"`
}

// Workspace is one element of get_workspaces.
type Workspace struct {
	Num            int
	Name           string
	Output         string
	Focused        bool
	Visible        bool
	Representation string
}

// IsContainer reports whether the node can hold a view.
func (n *Node) IsContainer() bool {
	return n.Type == TypeCon || n.Type == TypeFloatingCon
}

// Identifier returns the application id, falling back to the display name.
func (n *Node) Identifier() string {
	if n.AppID != "" {
		return n.AppID
	}
	return n.Name
}

// Children returns the ordinary children followed by the floating ones.
func (n *Node) Children() []*Node {
	out := make([]*Node, 0, len(n.Nodes)+len(n.FloatingNodes))
	for i := range n.Nodes {
		out = append(out, &n.Nodes[i])
	}
	for i := range n.FloatingNodes {
		out = append(out, &n.FloatingNodes[i])
	}
	return out
}

func (n *Node) entry() (Entry, bool) {
	if !n.IsContainer() {
		return Entry{}, false
	}
	if n.AppID != "" {
		return Entry{Label: n.AppID, Field: FieldAppID}, true
	}
	if n.Name != "" {
		return Entry{Label: n.Name, Field: FieldTitle}, true
	}
	return Entry{}, false
}

// Collect flattens the tree into menu entries, depth first, parent
// before children and ordinary children before floating ones.
func Collect(root *Node) []Entry {
	if root == nil {
		return nil
	}
	var entries []Entry
	collect(root, &entries)
	return entries
}

func collect(n *Node, entries *[]Entry) {
	if e, ok := n.entry(); ok {
		*entries = append(*entries, e)
	}
	for _, child := range n.Children() {
		collect(child, entries)
	}
}

// Apps returns the newline separated identifiers found under root.
func Apps(root *Node) string {
	return strings.Join(Labels(Collect(root)), "\n")
}

// Labels extracts the menu labels.
func Labels(entries []Entry) []string {
	return lo.Map(entries, func(e Entry, _ int) string {
		return e.Label
	})
}

// Count returns the number of nodes in the tree.
func Count(root *Node) int {
	if root == nil {
		return 0
	}
	total := 1
	for _, child := range root.Children() {
		total += Count(child)
	}
	return total
}
