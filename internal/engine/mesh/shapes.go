package mesh

import (
	gomath "math"

	"github.com/Faultbox/stilllife/pkg/math"
)

const (
	cylinderSegments = 36
	torusMajor       = 1.0
	torusMinor       = 0.25
	torusSegments    = 36
	torusSides       = 18
	sphereSegments   = 36
	sphereRings      = 18
)

// buildPlane is a 2x2 square in the XZ plane facing +Y.
func buildPlane() Geometry {
	var b builder
	up := [3]float32{0, 1, 0}
	b.quad(
		b.vertex([3]float32{-1, 0, -1}, up, [2]float32{0, 1}),
		b.vertex([3]float32{1, 0, -1}, up, [2]float32{1, 1}),
		b.vertex([3]float32{1, 0, 1}, up, [2]float32{1, 0}),
		b.vertex([3]float32{-1, 0, 1}, up, [2]float32{0, 0}),
	)
	b.close(PartSide)
	return b.g
}

// buildBox is a unit cube centered on the origin with one quad per face.
func buildBox() Geometry {
	var b builder
	faces := []struct{ n, u, v math.Vec3 }{
		{math.V3(1, 0, 0), math.V3(0, 0, 1), math.V3(0, 1, 0)},
		{math.V3(-1, 0, 0), math.V3(0, 0, 1), math.V3(0, 1, 0)},
		{math.V3(0, 1, 0), math.V3(1, 0, 0), math.V3(0, 0, 1)},
		{math.V3(0, -1, 0), math.V3(1, 0, 0), math.V3(0, 0, 1)},
		{math.V3(0, 0, 1), math.V3(1, 0, 0), math.V3(0, 1, 0)},
		{math.V3(0, 0, -1), math.V3(1, 0, 0), math.V3(0, 1, 0)},
	}
	corners := [4][2]float32{{-1, -1}, {1, -1}, {1, 1}, {-1, 1}}
	for _, f := range faces {
		var idx [4]uint32
		for i, c := range corners {
			p := f.n.Add(f.u.Scale(c[0])).Add(f.v.Scale(c[1])).Scale(0.5)
			uv := [2]float32{(c[0] + 1) / 2, (c[1] + 1) / 2}
			idx[i] = b.vertex(p.Array(), f.n.Array(), uv)
		}
		b.quad(idx[0], idx[1], idx[2], idx[3])
	}
	b.close(PartSide)
	return b.g
}

// buildPyramid4 is a square pyramid with its base at y=-0.5 and apex at
// y=0.5. Each face has its own flat normal.
func buildPyramid4() Geometry {
	var b builder
	apex := math.V3(0, 0.5, 0)
	base := [4]math.Vec3{
		math.V3(-0.5, -0.5, -0.5),
		math.V3(0.5, -0.5, -0.5),
		math.V3(0.5, -0.5, 0.5),
		math.V3(-0.5, -0.5, 0.5),
	}
	for i := range base {
		p0, p1 := base[i], base[(i+1)%4]
		n := p1.Sub(p0).Cross(apex.Sub(p0)).Normalize()
		centroid := p0.Add(p1).Add(apex).Scale(1.0 / 3)
		if n.Dot(centroid) < 0 {
			n = n.Scale(-1)
		}
		b.tri(
			b.vertex(p0.Array(), n.Array(), [2]float32{0, 0}),
			b.vertex(p1.Array(), n.Array(), [2]float32{1, 0}),
			b.vertex(apex.Array(), n.Array(), [2]float32{0.5, 1}),
		)
	}
	down := [3]float32{0, -1, 0}
	b.quad(
		b.vertex(base[0].Array(), down, [2]float32{0, 0}),
		b.vertex(base[1].Array(), down, [2]float32{1, 0}),
		b.vertex(base[2].Array(), down, [2]float32{1, 1}),
		b.vertex(base[3].Array(), down, [2]float32{0, 1}),
	)
	b.close(PartSide)
	return b.g
}

// buildCylinder spans y=0 to y=1 with the given bottom and top radii. The
// side, top cap and bottom cap are separate groups.
func buildCylinder(bottom, top float32, segments int) Geometry {
	var b builder
	ring := func(i int) (float32, float32) {
		theta := 2 * gomath.Pi * float64(i) / float64(segments)
		return float32(gomath.Cos(theta)), float32(gomath.Sin(theta))
	}

	for i := 0; i < segments; i++ {
		c0, s0 := ring(i)
		c1, s1 := ring(i + 1)
		u0 := float32(i) / float32(segments)
		u1 := float32(i+1) / float32(segments)
		n0 := math.V3(c0, bottom-top, s0).Normalize().Array()
		n1 := math.V3(c1, bottom-top, s1).Normalize().Array()
		b.quad(
			b.vertex([3]float32{c0 * bottom, 0, s0 * bottom}, n0, [2]float32{u0, 0}),
			b.vertex([3]float32{c1 * bottom, 0, s1 * bottom}, n1, [2]float32{u1, 0}),
			b.vertex([3]float32{c1 * top, 1, s1 * top}, n1, [2]float32{u1, 1}),
			b.vertex([3]float32{c0 * top, 1, s0 * top}, n0, [2]float32{u0, 1}),
		)
	}
	b.close(PartSide)

	capFan := func(y, radius float32, n [3]float32, part Part) {
		center := b.vertex([3]float32{0, y, 0}, n, [2]float32{0.5, 0.5})
		for i := 0; i < segments; i++ {
			c0, s0 := ring(i)
			c1, s1 := ring(i + 1)
			b.tri(center,
				b.vertex([3]float32{c0 * radius, y, s0 * radius}, n, [2]float32{c0*0.5 + 0.5, s0*0.5 + 0.5}),
				b.vertex([3]float32{c1 * radius, y, s1 * radius}, n, [2]float32{c1*0.5 + 0.5, s1*0.5 + 0.5}),
			)
		}
		b.close(part)
	}
	capFan(1, top, [3]float32{0, 1, 0}, PartTop)
	capFan(0, bottom, [3]float32{0, -1, 0}, PartBottom)
	return b.g
}

// buildTorus lies in the XZ plane around the Y axis.
func buildTorus() Geometry {
	var b builder
	row := torusSides + 1
	for i := 0; i <= torusSegments; i++ {
		theta := 2 * gomath.Pi * float64(i) / torusSegments
		ct, st := gomath.Cos(theta), gomath.Sin(theta)
		for j := 0; j <= torusSides; j++ {
			phi := 2 * gomath.Pi * float64(j) / torusSides
			cp, sp := gomath.Cos(phi), gomath.Sin(phi)
			n := [3]float32{float32(cp * ct), float32(sp), float32(cp * st)}
			p := [3]float32{
				float32((torusMajor + torusMinor*cp) * ct),
				float32(torusMinor * sp),
				float32((torusMajor + torusMinor*cp) * st),
			}
			b.vertex(p, n, [2]float32{float32(i) / torusSegments, float32(j) / torusSides})
		}
	}
	for i := 0; i < torusSegments; i++ {
		for j := 0; j < torusSides; j++ {
			a := uint32(i*row + j)
			next := a + uint32(row)
			b.quad(a, next, next+1, a+1)
		}
	}
	b.close(PartSide)
	return b.g
}

// buildSphere is a UV sphere of radius 1.
func buildSphere() Geometry {
	var b builder
	row := sphereSegments + 1
	for r := 0; r <= sphereRings; r++ {
		phi := float64(r) * gomath.Pi / sphereRings
		sp, cp := gomath.Sin(phi), gomath.Cos(phi)
		for s := 0; s <= sphereSegments; s++ {
			theta := float64(s) * 2 * gomath.Pi / sphereSegments
			n := [3]float32{float32(sp * gomath.Cos(theta)), float32(cp), float32(sp * gomath.Sin(theta))}
			b.vertex(n, n, [2]float32{float32(s) / sphereSegments, float32(r) / sphereRings})
		}
	}
	for r := 0; r < sphereRings; r++ {
		for s := 0; s < sphereSegments; s++ {
			cur := uint32(r*row + s)
			next := cur + uint32(row)
			b.tri(cur, next, cur+1)
			b.tri(cur+1, next, next+1)
		}
	}
	b.close(PartSide)
	return b.g
}
