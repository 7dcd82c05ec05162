package solar

import "github.com/goki/mat32"

type LightKind int

const (
	LightAmbient LightKind = iota
	LightPoint
	LightDirectional
)

// Light is attached to a NodeLight node. Point and directional lights take
// their position from the node's world matrix; directional lights shine
// from that position toward the origin.
type Light struct {
	Kind      LightKind
	Color     RGB
	Intensity float32
	Range     float32 // 0 means unlimited
	Decay     float32
}

const (
	ambientIntensity     = 0.07
	fillIntensity        = 0.02
	fillDistance         = 1000
	starLightDecay       = 0.05
	DefaultLightStrength = 1.5
)

var white = RGB{R: 0xFF, G: 0xFF, B: 0xFF}

// fillPositions places one weak directional light on each horizontal axis
// so the night side of every planet stays faintly visible.
var fillPositions = [4]mat32.Vec3{
	{Z: fillDistance},
	{Z: -fillDistance},
	{X: fillDistance},
	{X: -fillDistance},
}

func newLightNodes() (star *Node, others []*Node) {
	star = NewNode("light:star", NodeLight)
	star.Light = &Light{Kind: LightPoint, Color: white, Intensity: DefaultLightStrength, Decay: starLightDecay}

	amb := NewNode("light:ambient", NodeLight)
	amb.Light = &Light{Kind: LightAmbient, Color: white, Intensity: ambientIntensity}
	others = append(others, amb)

	names := [4]string{"light:fill+z", "light:fill-z", "light:fill+x", "light:fill-x"}
	for i, p := range fillPositions {
		n := NewNode(names[i], NodeLight)
		n.Pos = p
		n.Light = &Light{Kind: LightDirectional, Color: white, Intensity: fillIntensity}
		others = append(others, n)
	}
	return star, others
}
