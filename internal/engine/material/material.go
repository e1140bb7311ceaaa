// Package material holds the scene's named shading parameter sets.
package material

// Material is a named set of Phong shading parameters.
type Material struct {
	Tag           string     `yaml:"tag"`
	DiffuseColor  [3]float32 `yaml:"diffuse"`
	SpecularColor [3]float32 `yaml:"specular"`
	Shininess     float32    `yaml:"shininess"`
}

// Neutral is submitted for objects that name no material: white diffuse,
// no specular highlight.
var Neutral = Material{
	Tag:          "neutral",
	DiffuseColor: [3]float32{1, 1, 1},
	Shininess:    1,
}

// Registry is an ordered list of materials. Tags are not required to be
// unique; lookups return the first definition.
type Registry struct {
	materials []Material
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Define appends m.
func (r *Registry) Define(m Material) {
	r.materials = append(r.materials, m)
}

// DefineAll appends every material in order.
func (r *Registry) DefineAll(ms []Material) {
	r.materials = append(r.materials, ms...)
}

// Reset removes every definition.
func (r *Registry) Reset() {
	r.materials = nil
}

// Find returns the first material defined under tag. It reports false when
// the registry is empty or no tag matches; the caller must check it.
func (r *Registry) Find(tag string) (Material, bool) {
	for _, m := range r.materials {
		if m.Tag == tag {
			return m, true
		}
	}
	return Material{}, false
}

// Len returns the number of definitions, duplicates included.
func (r *Registry) Len() int {
	return len(r.materials)
}

// Tags returns the defined tags in definition order.
func (r *Registry) Tags() []string {
	tags := make([]string, len(r.materials))
	for i, m := range r.materials {
		tags[i] = m.Tag
	}
	return tags
}
