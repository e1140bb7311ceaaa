// Package mesh generates the primitive shapes a scene is composed from and
// uploads them to the GPU.
package mesh

import (
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/Faultbox/stilllife/pkg/math"
)

// Kind names a primitive shape.
type Kind string

const (
	Plane           Kind = "plane"
	Box             Kind = "box"
	Pyramid4        Kind = "pyramid4"
	Cylinder        Kind = "cylinder"
	TaperedCylinder Kind = "tapered_cylinder"
	Torus           Kind = "torus"
	Sphere          Kind = "sphere"
)

var builders = map[Kind]func() Geometry{
	Plane:           buildPlane,
	Box:             buildBox,
	Pyramid4:        buildPyramid4,
	Cylinder:        func() Geometry { return buildCylinder(1, 1, cylinderSegments) },
	TaperedCylinder: func() Geometry { return buildCylinder(1, 0.5, cylinderSegments) },
	Torus:           buildTorus,
	Sphere:          buildSphere,
}

// Kinds returns every known primitive, sorted by name.
func Kinds() []Kind {
	kinds := make([]Kind, 0, len(builders))
	for k := range builders {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	return kinds
}

// Valid reports whether k names a known primitive.
func (k Kind) Valid() bool {
	_, ok := builders[k]
	return ok
}

// HasCaps reports whether the shape has separately drawable end caps.
func (k Kind) HasCaps() bool {
	return k == Cylinder || k == TaperedCylinder
}

// Build generates the geometry for k.
func Build(k Kind) (Geometry, error) {
	b, ok := builders[k]
	if !ok {
		return Geometry{}, fmt.Errorf("unknown primitive %q", k)
	}
	return b(), nil
}

// Vertex is the interleaved layout uploaded to the GPU: position at
// location 0, normal at 1, texture coordinate at 2.
type Vertex struct {
	Position [3]float32
	Normal   [3]float32
	TexCoord [2]float32
}

// Part identifies a separately drawable section of a shape.
type Part uint8

const (
	PartSide Part = iota
	PartTop
	PartBottom
)

// Group is a contiguous range of indices belonging to one part.
type Group struct {
	Part  Part
	Start int32
	Count int32
}

// Caps selects which parts of a capped shape are drawn. Shapes without
// caps draw their body when Side is set.
type Caps struct {
	Top    bool `yaml:"top"`
	Bottom bool `yaml:"bottom"`
	Side   bool `yaml:"side"`
}

// AllCaps draws the whole shape.
var AllCaps = Caps{Top: true, Bottom: true, Side: true}

// UnmarshalYAML decodes a caps mapping. Parts the mapping leaves out are
// drawn, so `{top: false}` hides only the top.
func (c *Caps) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: caps must be a mapping of top, bottom and side", value.Line)
	}
	for i := 0; i+1 < len(value.Content); i += 2 {
		switch key := value.Content[i]; key.Value {
		case "top", "bottom", "side":
		default:
			return fmt.Errorf("line %d: unknown cap %q", key.Line, key.Value)
		}
	}

	type plain Caps
	p := plain(AllCaps)
	if err := value.Decode(&p); err != nil {
		return err
	}
	*c = Caps(p)
	return nil
}

func (c Caps) includes(p Part) bool {
	switch p {
	case PartTop:
		return c.Top
	case PartBottom:
		return c.Bottom
	default:
		return c.Side
	}
}

// Geometry is CPU-side shape data.
type Geometry struct {
	Vertices []Vertex
	Indices  []uint32
	Groups   []Group
}

// Ranges returns the groups selected by caps, in order.
func (g Geometry) Ranges(caps Caps) []Group {
	var out []Group
	for _, grp := range g.Groups {
		if caps.includes(grp.Part) {
			out = append(out, grp)
		}
	}
	return out
}

// builder accumulates vertices and indices and orients every triangle so
// its winding is counter-clockwise when seen from the side its vertex
// normals point to.
type builder struct {
	g          Geometry
	groupStart int
}

func (b *builder) vertex(p, n [3]float32, uv [2]float32) uint32 {
	b.g.Vertices = append(b.g.Vertices, Vertex{Position: p, Normal: n, TexCoord: uv})
	return uint32(len(b.g.Vertices) - 1)
}

func (b *builder) tri(i0, i1, i2 uint32) {
	v0, v1, v2 := b.g.Vertices[i0], b.g.Vertices[i1], b.g.Vertices[i2]
	face := faceNormal(v0.Position, v1.Position, v2.Position)
	n := vec(v0.Normal).Add(vec(v1.Normal)).Add(vec(v2.Normal))
	if face.Dot(n) < 0 {
		i1, i2 = i2, i1
	}
	b.g.Indices = append(b.g.Indices, i0, i1, i2)
}

func (b *builder) quad(a, c, d, e uint32) {
	b.tri(a, c, d)
	b.tri(a, d, e)
}

// close ends the current group.
func (b *builder) close(p Part) {
	end := len(b.g.Indices)
	if end == b.groupStart {
		return
	}
	b.g.Groups = append(b.g.Groups, Group{Part: p, Start: int32(b.groupStart), Count: int32(end - b.groupStart)})
	b.groupStart = end
}

func faceNormal(a, b, c [3]float32) math.Vec3 {
	return vec(b).Sub(vec(a)).Cross(vec(c).Sub(vec(a)))
}

func vec(a [3]float32) math.Vec3 {
	return math.V3(a[0], a[1], a[2])
}
