// Package expr provides the expression tree produced by parsing a license string.
package expr

import (
	"fmt"
	"slices"
	"strings"
)

type Kind int

const (
	KindIdentifier Kind = iota + 1
	KindAnd
	KindOr
)

func (k Kind) String() string {
	switch k {
	case KindIdentifier:
		return "identifier"
	case KindAnd:
		return "and"
	case KindOr:
		return "or"
	}
	return fmt.Sprintf("<invalid kind: %d>", int(k))
}

// Node is a node of a license expression tree. An identifier node holds a non-empty Token and has no
// children. An and/or node always has both Left and Right.
type Node struct {
	Kind  Kind
	Token string
	Left  *Node
	Right *Node
}

func NewIdentifier(token string) *Node {
	return &Node{
		Kind:  KindIdentifier,
		Token: token,
	}
}

func NewAnd(left, right *Node) *Node {
	return &Node{
		Kind:  KindAnd,
		Left:  left,
		Right: right,
	}
}

func NewOr(left, right *Node) *Node {
	return &Node{
		Kind:  KindOr,
		Left:  left,
		Right: right,
	}
}

// Copy returns a deep copy of the tree.
func (n *Node) Copy() *Node {
	if n == nil {
		return nil
	}
	return &Node{
		Kind:  n.Kind,
		Token: n.Token,
		Left:  n.Left.Copy(),
		Right: n.Right.Copy(),
	}
}

// Equal reports whether two trees have the same shape and the same identifiers.
func (n *Node) Equal(m *Node) bool {
	if n == nil || m == nil {
		return n == m
	}
	if n.Kind != m.Kind || n.Token != m.Token {
		return false
	}
	return n.Left.Equal(m.Left) && n.Right.Equal(m.Right)
}

// Walk visits the tree in pre-order.
func (n *Node) Walk(visit func(*Node)) {
	if n == nil {
		return
	}
	visit(n)
	n.Left.Walk(visit)
	n.Right.Walk(visit)
}

// Licenses returns the identifiers the tree refers to, without duplicates and sorted in ascending order.
func Licenses(root *Node) []string {
	var ids []string
	root.Walk(func(n *Node) {
		if n.Kind != KindIdentifier {
			return
		}
		ids = append(ids, n.Token)
	})
	slices.Sort(ids)
	return slices.Compact(ids)
}

// Format renders the tree as an expression using the given keywords. Every and/or node is enclosed in
// parentheses except the root.
func (n *Node) Format(andKW, orKW string) string {
	var b strings.Builder
	n.format(&b, andKW, orKW, true)
	return b.String()
}

func (n *Node) format(b *strings.Builder, andKW, orKW string, root bool) {
	if n == nil {
		return
	}
	if n.Kind == KindIdentifier {
		b.WriteString(n.Token)
		return
	}
	kw := andKW
	if n.Kind == KindOr {
		kw = orKW
	}
	if !root {
		b.WriteString("(")
	}
	n.Left.format(b, andKW, orKW, false)
	fmt.Fprintf(b, " %v ", kw)
	n.Right.format(b, andKW, orKW, false)
	if !root {
		b.WriteString(")")
	}
}

// String renders the expression with the SPDX keywords.
func (n *Node) String() string {
	return n.Format("AND", "OR")
}
