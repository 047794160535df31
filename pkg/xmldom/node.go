// Package xmldom is a DOM-style XML document model over the reflected
// object system. Every entity in a document is a Node discriminated by
// kind; children form a circular doubly-linked list within their parent
// and attribute order is preserved. The whole tree is owned by a single
// Document root.
package xmldom

import (
	"strings"

	"github.com/metercore/mcore/pkg/errs"
	"github.com/metercore/mcore/pkg/object"
)

// Kind discriminates the node types a document can contain.
type Kind int

const (
	NodeDocument Kind = iota
	NodeElement
	NodePCDATA
	NodeCDATA
	NodeComment
	NodePI
	NodeDeclaration
	NodeDoctype
)

func (k Kind) String() string {
	switch k {
	case NodeDocument:
		return "Document"
	case NodeElement:
		return "Element"
	case NodePCDATA:
		return "PCDATA"
	case NodeCDATA:
		return "CDATA"
	case NodeComment:
		return "Comment"
	case NodePI:
		return "PI"
	case NodeDeclaration:
		return "Declaration"
	case NodeDoctype:
		return "DOCTYPE"
	default:
		return "Unknown"
	}
}

// hasName reports whether this kind carries an element/target name.
func (k Kind) hasName() bool {
	switch k {
	case NodeElement, NodePI, NodeDeclaration:
		return true
	default:
		return false
	}
}

// hasChildren reports whether this kind may own child nodes.
func (k Kind) hasChildren() bool {
	return k == NodeDocument || k == NodeElement
}

// Attribute is one name="value" pair on an element or declaration.
type Attribute struct {
	Name  string
	Value string
}

// Node is one entity of an XML document.
type Node struct {
	object.Base

	kind   Kind
	name   string
	value  string
	doc    *Document
	parent *Node

	// children form a circular doubly-linked list: firstChild.prev is
	// lastChild and lastChild.next is firstChild.
	firstChild *Node
	lastChild  *Node
	prev       *Node
	next       *Node

	attrs []Attribute
}

func newNode(doc *Document, kind Kind) *Node {
	n := &Node{kind: kind, doc: doc}
	n.Base = object.NewBase(xmlNodeClass, n)
	return n
}

// NodeType returns the node's kind.
func (n *Node) NodeType() Kind { return n.kind }

// Document returns the owning document.
func (n *Node) Document() *Document { return n.doc }

// Parent returns the parent node, nil on the document root.
func (n *Node) Parent() *Node { return n.parent }

// Name returns the node's name; empty for kinds that have none.
func (n *Node) Name() string { return n.name }

// SetName renames the node, refusing kinds that carry no name.
func (n *Node) SetName(name string) error {
	if !n.kind.hasName() {
		return errs.UnsupportedType("cannot set name on a %s node", n.kind)
	}
	n.name = name
	return nil
}

// Value returns the node's own text payload (PCDATA/CDATA/comment text,
// PI content, DOCTYPE body).
func (n *Node) Value() string { return n.value }

// SetValue replaces the node's text payload.
func (n *Node) SetValue(value string) error {
	switch n.kind {
	case NodeDocument, NodeElement:
		return errs.UnsupportedType("cannot set value on a %s node; set Text instead", n.kind)
	}
	n.value = value
	return nil
}

// HasChildren reports whether the node has at least one child.
func (n *Node) HasChildren() bool { return n.firstChild != nil }

// FirstChild returns the first child, or nil.
func (n *Node) FirstChild() *Node { return n.firstChild }

// LastChild returns the last child, or nil.
func (n *Node) LastChild() *Node { return n.lastChild }

// NextSibling returns the following sibling in document order, nil at the
// end (the underlying list is circular; the accessor hides the wrap).
func (n *Node) NextSibling() *Node {
	if n.parent == nil || n == n.parent.lastChild {
		return nil
	}
	return n.next
}

// PreviousSibling returns the preceding sibling, nil at the start.
func (n *Node) PreviousSibling() *Node {
	if n.parent == nil || n == n.parent.firstChild {
		return nil
	}
	return n.prev
}

// Children returns the child nodes in document order.
func (n *Node) Children() []*Node {
	var out []*Node
	for c := n.firstChild; c != nil; c = c.NextSibling() {
		out = append(out, c)
	}
	return out
}

// AppendChild adds a new node of the given kind at the end of the child
// list, refusing leaf kinds as parents.
func (n *Node) AppendChild(kind Kind) (*Node, error) {
	if !n.kind.hasChildren() {
		return nil, errs.UnsupportedType("cannot add a child to a %s node", n.kind)
	}
	if kind == NodeDocument {
		return nil, errs.UnsupportedType("cannot add a %s node as a child", kind)
	}
	child := newNode(n.doc, kind)
	n.linkLast(child)
	return child, nil
}

// AppendChildElement adds a named element child.
func (n *Node) AppendChildElement(name string) (*Node, error) {
	child, err := n.AppendChild(NodeElement)
	if err != nil {
		return nil, err
	}
	child.name = name
	return child, nil
}

// PrependChild adds a new node of the given kind at the start of the
// child list.
func (n *Node) PrependChild(kind Kind) (*Node, error) {
	if !n.kind.hasChildren() {
		return nil, errs.UnsupportedType("cannot add a child to a %s node", n.kind)
	}
	if kind == NodeDocument {
		return nil, errs.UnsupportedType("cannot add a %s node as a child", kind)
	}
	child := newNode(n.doc, kind)
	n.linkLast(child)
	if n.firstChild != child { // rotate the circular list one step back
		n.firstChild = child
		n.lastChild = child.prev
	}
	return child, nil
}

func (n *Node) linkLast(child *Node) {
	child.parent = n
	if n.firstChild == nil {
		child.prev = child
		child.next = child
		n.firstChild = child
		n.lastChild = child
		return
	}
	first, last := n.firstChild, n.lastChild
	child.prev = last
	child.next = first
	last.next = child
	first.prev = child
	n.lastChild = child
}

// RemoveChild detaches child from this node, reporting whether it was
// found among the children.
func (n *Node) RemoveChild(child *Node) bool {
	for c := n.firstChild; c != nil; c = c.NextSibling() {
		if c != child {
			continue
		}
		if n.firstChild == n.lastChild {
			n.firstChild = nil
			n.lastChild = nil
		} else {
			c.prev.next = c.next
			c.next.prev = c.prev
			if n.firstChild == c {
				n.firstChild = c.next
			}
			if n.lastChild == c {
				n.lastChild = c.prev
			}
		}
		c.parent = nil
		c.prev = nil
		c.next = nil
		return true
	}
	return false
}

// RemoveAllChildren detaches every child.
func (n *Node) RemoveAllChildren() {
	for c := n.firstChild; c != nil; {
		next := c.NextSibling()
		c.parent = nil
		c.prev = nil
		c.next = nil
		c = next
	}
	n.firstChild = nil
	n.lastChild = nil
}

// Child returns the first child with the given name, nil when absent.
func (n *Node) Child(name string) *Node {
	for c := n.firstChild; c != nil; c = c.NextSibling() {
		if c.name == name {
			return c
		}
	}
	return nil
}

// ExistingChild returns the named child or fails when it is absent.
func (n *Node) ExistingChild(name string) (*Node, error) {
	if c := n.Child(name); c != nil {
		return c, nil
	}
	return nil, errs.UnknownItem("node %s has no child %s", errs.Quote(n.name), errs.Quote(name))
}

// IsChildPresent reports whether a child with the given name exists.
func (n *Node) IsChildPresent(name string) bool { return n.Child(name) != nil }

// Text returns the first PCDATA child's value, empty when there is none.
func (n *Node) Text() string {
	for c := n.firstChild; c != nil; c = c.NextSibling() {
		if c.kind == NodePCDATA {
			return c.value
		}
	}
	return ""
}

// SetText replaces the first PCDATA child's value, creating the child
// when absent.
func (n *Node) SetText(text string) error {
	for c := n.firstChild; c != nil; c = c.NextSibling() {
		if c.kind == NodePCDATA {
			c.value = text
			return nil
		}
	}
	child, err := n.AppendChild(NodePCDATA)
	if err != nil {
		return err
	}
	child.value = text
	return nil
}

// Attributes returns the attribute list in document order.
func (n *Node) Attributes() []Attribute {
	out := make([]Attribute, len(n.attrs))
	copy(out, n.attrs)
	return out
}

// AttributeNames returns the attribute names in document order.
func (n *Node) AttributeNames() []string {
	out := make([]string, len(n.attrs))
	for i, a := range n.attrs {
		out[i] = a.Name
	}
	return out
}

// IsAttributePresent reports whether the named attribute exists.
func (n *Node) IsAttributePresent(name string) bool {
	for _, a := range n.attrs {
		if a.Name == name {
			return true
		}
	}
	return false
}

// Attribute returns the named attribute's value and whether it exists.
func (n *Node) Attribute(name string) (string, bool) {
	for _, a := range n.attrs {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

// ExistingAttribute returns the named attribute's value or fails.
func (n *Node) ExistingAttribute(name string) (string, error) {
	if v, ok := n.Attribute(name); ok {
		return v, nil
	}
	return "", errs.UnknownItem("node %s has no attribute %s", errs.Quote(n.name), errs.Quote(name))
}

// SetAttribute replaces the named attribute's value in place, appending a
// new attribute when absent. It reports whether a new attribute was added.
func (n *Node) SetAttribute(name, value string) bool {
	for i := range n.attrs {
		if n.attrs[i].Name == name {
			n.attrs[i].Value = value
			return false
		}
	}
	n.attrs = append(n.attrs, Attribute{Name: name, Value: value})
	return true
}

// RemoveAttribute removes the named attribute, reporting whether it
// existed.
func (n *Node) RemoveAttribute(name string) bool {
	for i := range n.attrs {
		if n.attrs[i].Name == name {
			n.attrs = append(n.attrs[:i], n.attrs[i+1:]...)
			return true
		}
	}
	return false
}

// RemoveAllAttributes clears the attribute list.
func (n *Node) RemoveAllAttributes() { n.attrs = nil }

// Path joins the names of the node's ancestors (and its own) with the
// document's path delimiter, starting at the root.
func (n *Node) Path() string {
	delim := byte('/')
	if n.doc != nil {
		delim = n.doc.pathDelimiter
	}
	var names []string
	for c := n; c != nil && c.kind != NodeDocument; c = c.parent {
		names = append(names, c.name)
	}
	var b strings.Builder
	for i := len(names) - 1; i >= 0; i-- {
		b.WriteByte(delim)
		b.WriteString(names[i])
	}
	return b.String()
}

// FirstElementByPath walks the delimiter-separated path from this node,
// returning nil when any segment is missing.
func (n *Node) FirstElementByPath(path string) *Node {
	delim := byte('/')
	if n.doc != nil {
		delim = n.doc.pathDelimiter
	}
	cur := n
	for _, segment := range strings.Split(path, string(delim)) {
		if segment == "" {
			continue
		}
		cur = cur.Child(segment)
		if cur == nil {
			return nil
		}
	}
	return cur
}
