package draw

// Binding fully describes an object's surface for one draw call.
// Exactly one of Color or Texture applies: a non-empty Texture selects
// texture mode and Color is ignored.
type Binding struct {
	Color    [4]float32
	Texture  string
	UVScale  [2]float32 // zero means {1, 1}
	Material string     // empty selects material.Neutral
}

// Colored returns a flat-color binding.
func Colored(r, g, b, a float32, materialTag string) Binding {
	return Binding{Color: [4]float32{r, g, b, a}, Material: materialTag}
}

// Textured returns a texture binding with a UV scale.
func Textured(textureTag string, u, v float32, materialTag string) Binding {
	return Binding{Texture: textureTag, UVScale: [2]float32{u, v}, Material: materialTag}
}
