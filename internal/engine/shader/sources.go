package shader

import _ "embed"

// SceneVertexShader transforms mesh vertices by the model, view and
// projection uniforms and scales texture coordinates by UVscale.
//
//go:embed glsl/scene.vert
var SceneVertexShader string

// SceneFragmentShader implements Phong shading with one directional light,
// MaxPointLights point lights and a spotlight, textured or flat colored.
//
//go:embed glsl/scene.frag
var SceneFragmentShader string

// MaxPointLights is the size of the pointLights array in SceneFragmentShader.
const MaxPointLights = 5
