package solar

import (
	"fmt"

	"github.com/goki/mat32"
)

// NodeKind tells the renderer what, if anything, a node draws.
type NodeKind int

const (
	NodeGroup      NodeKind = iota // transform only
	NodePivot                      // orbit pivot, transform only
	NodeBody                       // textured sphere
	NodeAtmosphere                 // translucent shell around a body
	NodeRing                       // flat annulus
	NodeOrbitPath                  // circular polyline
	NodeLight
)

func (k NodeKind) String() string {
	switch k {
	case NodeGroup:
		return "group"
	case NodePivot:
		return "pivot"
	case NodeBody:
		return "body"
	case NodeAtmosphere:
		return "atmosphere"
	case NodeRing:
		return "ring"
	case NodeOrbitPath:
		return "orbit-path"
	case NodeLight:
		return "light"
	default:
		return "unknown"
	}
}

// Renderable holds the draw parameters of a node. Ring radii are in the
// owning body's units; Radius is used by orbit paths.
type Renderable struct {
	Color    RGB
	Texture  string
	BumpMap  string
	AlphaMap string
	Unlit    bool
	Opacity  float32
	Inner    float32
	Outer    float32
	Radius   float32
	Segments int
}

// Node is one transform in the scene tree. The local rotation is a tilt
// about X followed by a spin (Angle) about the tilted Y axis, so an
// inclined orbit pivot revolves its child within the inclined plane.
type Node struct {
	Name  string
	Kind  NodeKind
	Pos   mat32.Vec3
	Scale float32
	Tilt  float64
	Angle float64

	Matrix      mat32.Mat4
	WorldMatrix mat32.Mat4

	Render *Renderable
	Light  *Light

	parent   *Node
	children []*Node
}

func NewNode(name string, kind NodeKind) *Node {
	return &Node{Name: name, Kind: kind, Scale: 1}
}

func (n *Node) Parent() *Node     { return n.parent }
func (n *Node) Children() []*Node { return n.children }

// AddChild attaches c under n. A node has at most one parent and may
// not be attached below itself.
func (n *Node) AddChild(c *Node) error {
	if c.parent != nil {
		return fmt.Errorf("add %q to %q: already a child of %q", c.Name, n.Name, c.parent.Name)
	}
	for p := n; p != nil; p = p.parent {
		if p == c {
			return fmt.Errorf("add %q to %q: would create a cycle", c.Name, n.Name)
		}
	}
	c.parent = n
	n.children = append(n.children, c)
	return nil
}

// Destroy detaches n from its parent and tears down its subtree.
func (n *Node) Destroy() {
	if p := n.parent; p != nil {
		for i, c := range p.children {
			if c == n {
				p.children = append(p.children[:i], p.children[i+1:]...)
				break
			}
		}
		n.parent = nil
	}
	for _, c := range n.children {
		c.parent = nil
		c.Destroy()
	}
	n.children = nil
}

// Walk visits n and its subtree depth first, stopping descent into a
// node's children when fn returns false.
func (n *Node) Walk(fn func(*Node) bool) {
	if !fn(n) {
		return
	}
	for _, c := range n.children {
		c.Walk(fn)
	}
}

// UpdateMatrix rebuilds the local matrix from Pos, Tilt, Angle and Scale.
func (n *Node) UpdateMatrix() {
	var q mat32.Quat
	q.SetFromAxisAngle(mat32.Vec3{X: 1}, float32(n.Tilt))
	q.SetMul(mat32.NewQuatAxisAngle(mat32.Vec3{Y: 1}, float32(n.Angle)))
	n.Matrix.SetTransform(n.Pos, q, mat32.Vec3{X: n.Scale, Y: n.Scale, Z: n.Scale})
}

// UpdateWorld recomputes local and world matrices for the subtree.
func (n *Node) UpdateWorld(parWorld *mat32.Mat4) {
	n.UpdateMatrix()
	if parWorld == nil {
		n.WorldMatrix = n.Matrix
	} else {
		n.WorldMatrix.MulMatrices(parWorld, &n.Matrix)
	}
	for _, c := range n.children {
		c.UpdateWorld(&n.WorldMatrix)
	}
}

// WorldPos returns the node origin in scene coordinates as of the last
// UpdateWorld.
func (n *Node) WorldPos() mat32.Vec3 {
	pos := mat32.Vec3{}
	pos.SetFromMatrixPos(&n.WorldMatrix)
	return pos
}
