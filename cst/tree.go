package cst

import (
	"fmt"
	"io"
)

// Node is one element of the materialized tree. Leaves carry the text of a
// single raw slot; composites carry the kind a marker was closed with. Error
// regions have Error set and Message holding the diagnostic text. End is
// exclusive.
type Node struct {
	Kind     string
	Text     string
	Start    int
	End      int
	Error    bool
	Message  string
	Children []*Node
}

func (b *Builder) slotStart(i int) int {
	if i >= len(b.slots) {
		return len(b.text)
	}
	return b.slots[i].Start
}

func (b *Builder) slotEnd(i int) int {
	return b.slotStart(i + 1)
}

func (b *Builder) leaf(i int) *Node {
	start := b.slotStart(i)
	end := b.slotEnd(i)
	return &Node{
		Kind:  b.kinds.Name(b.slots[i].Kind),
		Text:  b.text[start:end],
		Start: start,
		End:   end,
	}
}

type buildFrame struct {
	node   *Node
	marker int
	rawPos int
}

// TreeBuilt replays the operation log into a tree. The log must describe
// exactly one outermost region, every marker must have been closed, and
// closes must nest; anything else panics, because an unbalanced log means the
// tree-building contract was broken by the caller.
//
// Trivia slots never consumed by AdvanceLexer are attached while replaying:
// trivia preceding a region boundary belongs to the enclosing region, trivia
// between two consumed tokens belongs to the region that consumed them, and
// trailing trivia belongs to the outermost region.
func (b *Builder) TreeBuilt() *Node {
	var stack []*buildFrame
	var root *Node
	nextSlot := 0

	top := func() *buildFrame {
		if len(stack) == 0 {
			panic("tree operation outside any open marker")
		}
		return stack[len(stack)-1]
	}
	// Attach slots in [nextSlot, upto) to node. Anything here is trivia the
	// converter stepped over.
	flush := func(node *Node, upto int) {
		for ; nextSlot < upto && nextSlot < len(b.slots); nextSlot++ {
			node.Children = append(node.Children, b.leaf(nextSlot))
		}
	}
	closeFrame := func(o op) *buildFrame {
		f := top()
		if f.marker != o.marker {
			panic(fmt.Sprintf("marker %v closed out of order (expected %v)", o.marker, f.marker))
		}
		if len(stack) == 1 {
			// The outermost region absorbs everything left over, trailing
			// trivia included.
			flush(f.node, len(b.slots))
		}
		stack = stack[:len(stack)-1]
		return f
	}
	finish := func(f *buildFrame) {
		n := f.node
		if len(n.Children) > 0 {
			n.Start = n.Children[0].Start
			n.End = n.Children[len(n.Children)-1].End
		} else {
			n.Start = b.slotStart(f.rawPos)
			n.End = n.Start
		}
		if len(stack) > 0 {
			parent := top().node
			parent.Children = append(parent.Children, n)
			return
		}
		if root != nil {
			panic("more than one outermost region")
		}
		root = n
	}

	for _, o := range b.ops {
		switch o.code {
		case opMark:
			if len(stack) > 0 {
				flush(top().node, o.slot)
			}
			stack = append(stack, &buildFrame{
				node:   &Node{},
				marker: o.marker,
				rawPos: o.slot,
			})
		case opAdvance:
			f := top()
			flush(f.node, o.slot)
			f.node.Children = append(f.node.Children, b.leaf(o.slot))
			nextSlot = o.slot + 1
		case opDone:
			f := closeFrame(o)
			f.node.Kind = o.kind
			finish(f)
		case opError:
			f := closeFrame(o)
			f.node.Kind = "error"
			f.node.Error = true
			f.node.Message = o.msg
			finish(f)
		case opDrop:
			f := closeFrame(o)
			if len(stack) == 0 {
				panic("cannot drop the outermost marker")
			}
			parent := top().node
			parent.Children = append(parent.Children, f.node.Children...)
		}
	}

	if len(stack) != 0 {
		panic(fmt.Sprintf("%v marker(s) left open", len(stack)))
	}
	if root == nil {
		panic("no outermost region was built")
	}
	return root
}

func PrintTree(w io.Writer, node *Node) {
	printTree(w, node, "", "")
}

func printTree(w io.Writer, node *Node, ruledLine string, childRuledLinePrefix string) {
	if node == nil {
		return
	}

	switch {
	case node.Error:
		fmt.Fprintf(w, "%v!%v %#v\n", ruledLine, node.Kind, node.Message)
	case node.Text != "":
		fmt.Fprintf(w, "%v%v %#v\n", ruledLine, node.Kind, node.Text)
	default:
		fmt.Fprintf(w, "%v%v\n", ruledLine, node.Kind)
	}

	num := len(node.Children)
	for i, child := range node.Children {
		var line string
		if num > 1 && i < num-1 {
			line = "├─ "
		} else {
			line = "└─ "
		}

		var prefix string
		if i >= num-1 {
			prefix = "   "
		} else {
			prefix = "│  "
		}

		printTree(w, child, childRuledLinePrefix+line, childRuledLinePrefix+prefix)
	}
}
