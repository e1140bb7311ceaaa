package draw

import (
	"testing"

	"github.com/Faultbox/stilllife/internal/engine/material"
	"github.com/Faultbox/stilllife/internal/engine/shader/shadertest"
	"github.com/Faultbox/stilllife/internal/engine/texture"
	"github.com/Faultbox/stilllife/pkg/math"
)

type nullDevice struct{ next uint32 }

func (d *nullDevice) Upload(*texture.Image) (uint32, error) { d.next++; return d.next, nil }
func (d *nullDevice) Bind(int, uint32)                      {}
func (d *nullDevice) Delete([]uint32)                       {}

func newFixture(t *testing.T) (*Submitter, *shadertest.Recorder) {
	t.Helper()

	textures := texture.NewRegistry(&nullDevice{}, texture.DefaultDecodeOptions())
	px := &texture.Image{Width: 1, Height: 1, Channels: 3, Pix: []byte{0, 0, 0}}
	for _, tag := range []string{"onyx", "wood", "metal"} {
		if err := textures.Add(px, tag); err != nil {
			t.Fatalf("add %s: %v", tag, err)
		}
	}

	materials := material.NewRegistry()
	materials.Define(material.Material{
		Tag:           "tile",
		DiffuseColor:  [3]float32{0.3, 0.2, 0.1},
		SpecularColor: [3]float32{0.4, 0.5, 0.6},
		Shininess:     25,
	})

	rec := shadertest.New()
	return NewSubmitter(rec, textures, materials), rec
}

func TestSetTransform(t *testing.T) {
	s, rec := newFixture(t)

	s.SetTransform(math.V3(2, 1, 1), 0, 0, 90, math.V3(1, 0, 0))

	v, ok := rec.Value(UniformModel)
	if !ok {
		t.Fatal("model matrix not submitted")
	}
	m := v.(math.Mat4)
	p := m.TransformPoint([3]float32{1, 0, 0})
	want := [3]float32{1, 2, 0}
	for i := range p {
		if d := p[i] - want[i]; d > 1e-5 || d < -1e-5 {
			t.Fatalf("model * (1,0,0) = %v, want %v", p, want)
		}
	}
}

func TestSetColor(t *testing.T) {
	s, rec := newFixture(t)

	s.SetColor(0.3, 0.12, 0.08, 1)

	if v, _ := rec.Value(UniformUseTexture); v != false {
		t.Errorf("bUseTexture = %v, want false", v)
	}
	if v, _ := rec.Value(UniformObjectColor); v != [4]float32{0.3, 0.12, 0.08, 1} {
		t.Errorf("objectColor = %v", v)
	}
}

func TestSetTexture(t *testing.T) {
	s, rec := newFixture(t)

	if !s.SetTexture("metal") {
		t.Fatal("SetTexture(metal) reported not found")
	}
	if v, _ := rec.Value(UniformUseTexture); v != true {
		t.Errorf("bUseTexture = %v, want true", v)
	}
	if v, _ := rec.Value(UniformObjectTexture); v != int32(2) {
		t.Errorf("objectTexture = %v, want unit 2", v)
	}
}

func TestSetTextureUnknownIsContained(t *testing.T) {
	s, rec := newFixture(t)

	if s.SetTexture("wod") {
		t.Fatal("SetTexture(wod) reported found")
	}
	if v, _ := rec.Value(UniformObjectTexture); v != int32(texture.NotFound) {
		t.Errorf("objectTexture = %v, want sentinel %d", v, texture.NotFound)
	}

	// The next object is unaffected
	s.SetTransform(math.V3(1, 1, 1), 0, 0, 0, math.V3(0, 0, 0))
	if !s.SetTexture("wood") {
		t.Fatal("SetTexture(wood) reported not found")
	}
	if v, _ := rec.Value(UniformObjectTexture); v != int32(1) {
		t.Errorf("objectTexture after recovery = %v, want unit 1", v)
	}
	if v, _ := rec.Value(UniformModel); v != math.Identity() {
		t.Errorf("model after recovery = %v, want identity", v)
	}
}

func TestSetUVScale(t *testing.T) {
	s, rec := newFixture(t)
	s.SetUVScale(3, 2)
	if v, _ := rec.Value(UniformUVScale); v != [2]float32{3, 2} {
		t.Errorf("UVscale = %v, want [3 2]", v)
	}
}

func TestSetMaterial(t *testing.T) {
	s, rec := newFixture(t)

	if !s.SetMaterial("tile") {
		t.Fatal("SetMaterial(tile) reported not found")
	}
	if v, _ := rec.Value(UniformMaterialDiffuse); v != [3]float32{0.3, 0.2, 0.1} {
		t.Errorf("diffuse = %v", v)
	}
	if v, _ := rec.Value(UniformMaterialSpecular); v != [3]float32{0.4, 0.5, 0.6} {
		t.Errorf("specular = %v", v)
	}
	if v, _ := rec.Value(UniformMaterialShine); v != float32(25) {
		t.Errorf("shininess = %v", v)
	}
}

func TestSetMaterialUnknownSubmitsNothing(t *testing.T) {
	s, rec := newFixture(t)

	if s.SetMaterial("marble") {
		t.Fatal("SetMaterial(marble) reported found")
	}
	if len(rec.Calls) != 0 {
		t.Errorf("unexpected uniform writes: %v", rec.Names())
	}
}

func TestNilUniformsIsNoOp(t *testing.T) {
	textures := texture.NewRegistry(&nullDevice{}, texture.DefaultDecodeOptions())
	s := NewSubmitter(nil, textures, material.NewRegistry())

	s.SetTransform(math.V3(1, 1, 1), 0, 0, 0, math.V3(0, 0, 0))
	s.SetColor(1, 1, 1, 1)
	s.SetUVScale(1, 1)
	if s.SetTexture("none") {
		t.Error("SetTexture on empty registry reported found")
	}
	if s.SetMaterial("none") {
		t.Error("SetMaterial on empty registry reported found")
	}
	if err := s.Apply(Colored(1, 1, 1, 1, "")); err != nil {
		t.Errorf("Apply: %v", err)
	}
}

func TestStickyStateCarriesOver(t *testing.T) {
	s, rec := newFixture(t)

	s.SetTexture("onyx")
	s.SetUVScale(3, 2)
	s.SetMaterial("tile")

	// Second object only sets its transform: the texture state is reused
	s.SetTransform(math.V3(1, 1, 1), 0, 0, 0, math.V3(0, 0, 0))
	if v, _ := rec.Value(UniformUseTexture); v != true {
		t.Errorf("bUseTexture = %v, want the previous object's true", v)
	}
	if v, _ := rec.Value(UniformUVScale); v != [2]float32{3, 2} {
		t.Errorf("UVscale = %v, want the previous object's [3 2]", v)
	}
}

func TestApplyResetsEveryObjectUniform(t *testing.T) {
	s, rec := newFixture(t)

	if err := s.Apply(Textured("onyx", 3, 2, "tile")); err != nil {
		t.Fatalf("Apply textured: %v", err)
	}
	if err := s.Apply(Colored(1, 1, 1, 0.35, "")); err != nil {
		t.Fatalf("Apply colored: %v", err)
	}

	if v, _ := rec.Value(UniformUseTexture); v != false {
		t.Errorf("bUseTexture = %v, want false", v)
	}
	if v, _ := rec.Value(UniformUVScale); v != [2]float32{1, 1} {
		t.Errorf("UVscale = %v, want default [1 1]", v)
	}
	if v, _ := rec.Value(UniformMaterialShine); v != material.Neutral.Shininess {
		t.Errorf("shininess = %v, want neutral %v", v, material.Neutral.Shininess)
	}
}

func TestApplyReportsUnresolvedTags(t *testing.T) {
	s, rec := newFixture(t)

	err := s.Apply(Textured("onix", 1, 1, "tiles"))
	if err == nil {
		t.Fatal("expected error for unresolved tags")
	}
	if v, _ := rec.Value(UniformObjectTexture); v != int32(texture.NotFound) {
		t.Errorf("objectTexture = %v, want sentinel", v)
	}
	if v, _ := rec.Value(UniformMaterialDiffuse); v != material.Neutral.DiffuseColor {
		t.Errorf("diffuse = %v, want neutral fallback", v)
	}
}

func TestApplyOrder(t *testing.T) {
	s, rec := newFixture(t)

	if err := s.Apply(Textured("wood", 1.6, 1, "tile")); err != nil {
		t.Fatal(err)
	}

	want := []string{
		UniformUseTexture, UniformObjectTexture, UniformUVScale,
		UniformMaterialDiffuse, UniformMaterialSpecular, UniformMaterialShine,
	}
	got := rec.Names()
	if len(got) != len(want) {
		t.Fatalf("writes = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("write %d = %s, want %s", i, got[i], want[i])
		}
	}
}
