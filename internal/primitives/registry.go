package primitives

import (
	"github.com/go-gl/mathgl/mgl32"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Kind names a cached mesh.
type Kind string

const (
	// Sphere is a unit-radius sphere; scale it by the globe radius.
	Sphere Kind = "sphere"
	// Quad is a 1×1 plane in XY facing +Z, centred on the origin. Markers are drawn with it.
	Quad Kind = "quad"
)

// cached holds mesh and material for a primitive. Created lazily on first Draw.
// texturedMtl is used when drawing with an albedo texture (same mesh, different material).
type cached struct {
	mesh        rl.Mesh
	mtl         rl.Material
	texturedMtl rl.Material
	// base is applied in model space before the caller's transform.
	base rl.Matrix
	lit  bool
}

// Registry maps primitive kinds to mesh+material. Meshes are created on first use
// so that GPU resources are allocated after the window/OpenGL context exists.
type Registry struct {
	style    Style
	cache    map[Kind]cached
	viewPos  [3]float32 // camera position, set each frame for lighting
	lightDir [3]float32 // direction to light (normalized), set each frame
}

// NewRegistry returns a registry with no primitives.
func NewRegistry(style Style) *Registry {
	return &Registry{
		style:    style.withDefaults(),
		cache:    make(map[Kind]cached),
		lightDir: [3]float32{0.5, 1, 0.5},
	}
}

// Style returns the appearance the registry draws with.
func (r *Registry) Style() Style { return r.style }

// SetView sets camera position and direction-to-light for this frame. Call once per frame
// before drawing so the lit sphere gets correct shading.
func (r *Registry) SetView(viewPos, lightDir [3]float32) {
	r.viewPos = viewPos
	r.lightDir = lightDir
}

func (r *Registry) ensure(kind Kind) (cached, bool) {
	if c, ok := r.cache[kind]; ok {
		return c, true
	}
	var c cached
	switch kind {
	case Sphere:
		c.mesh = rl.GenMeshSphere(1, int32(r.style.Rings), int32(r.style.Slices))
		c.base = rl.MatrixIdentity()
		c.lit = true
	case Quad:
		// raylib planes lie in XZ facing +Y; turn it to face +Z.
		c.mesh = rl.GenMeshPlane(1, 1, 1, 1)
		c.base = rl.MatrixRotateX(mgl32.DegToRad(90))
	default:
		return cached{}, false
	}
	c.mtl = rl.LoadMaterialDefault()
	if albedo := c.mtl.GetMap(rl.MapAlbedo); albedo != nil {
		albedo.Color = toColor(r.style.SphereColor)
	}
	c.texturedMtl = rl.LoadMaterialDefault()
	if albedo := c.texturedMtl.GetMap(rl.MapAlbedo); albedo != nil {
		albedo.Color = rl.White
	}
	if c.lit {
		if s := loadLitShader(); rl.IsShaderValid(s) {
			c.mtl.Shader = s
		}
		if ts := loadLitTexturedShader(); rl.IsShaderValid(ts) {
			c.texturedMtl.Shader = ts
		}
	}
	r.cache[kind] = c
	return c, true
}

// Both lit shaders share globeVS and globeLighting; the textured one multiplies the
// diffuse colour by the albedo map.
func loadLitShader() rl.Shader {
	return rl.LoadShaderFromMemory(globeVS, globeFS("colDiffuse"))
}

func loadLitTexturedShader() rl.Shader {
	return rl.LoadShaderFromMemory(globeVS, globeFS("texture(albedoMap, uv) * colDiffuse"))
}

const globeVS = `#version 330
in vec3 vertexPosition;
in vec2 vertexTexCoord;
in vec3 vertexNormal;
uniform mat4 matProjection;
uniform mat4 matView;
uniform mat4 matModel;
out vec3 pos;
out vec2 uv;
out vec3 normal;
void main() {
  vec4 world = matModel * vec4(vertexPosition, 1.0);
  pos = world.xyz;
  uv = vertexTexCoord;
  normal = mat3(matModel) * vertexNormal;
  gl_Position = matProjection * matView * world;
}
`

// globeLighting is Blinn-Phong with a fresnel rim so the limb of the globe stays visible
// against a dark background.
const globeLighting = `
uniform vec4 colDiffuse;
uniform sampler2D albedoMap;
uniform vec3 viewPos;
uniform vec3 lightDir;
uniform vec3 ambient;
uniform vec3 lightColor;
uniform float lightIntensity;
uniform float specularPower;
uniform float specularStrength;
uniform float rimStrength;
vec4 shade(vec4 base) {
  vec3 n = normalize(normal);
  vec3 l = normalize(lightDir);
  vec3 v = normalize(viewPos - pos);
  float lambert = max(dot(n, l), 0.0);
  float spec = lambert > 0.0 ? pow(max(dot(n, normalize(l + v)), 0.0), specularPower) * specularStrength : 0.0;
  float rim = pow(1.0 - max(dot(n, v), 0.0), 3.0) * rimStrength;
  vec3 rgb = base.rgb * (ambient + lambert * lightColor * lightIntensity) + lightColor * (spec + rim);
  return vec4(rgb, base.a);
}
`

func globeFS(base string) string {
	return "#version 330\nin vec3 pos;\nin vec2 uv;\nin vec3 normal;\nout vec4 finalColor;\n" +
		globeLighting +
		"void main() { finalColor = shade(" + base + "); }\n"
}

// setLitShaderUniforms uploads the frame's camera and light plus the style's lighting terms.
func (r *Registry) setLitShaderUniforms(shader rl.Shader) {
	if !rl.IsShaderValid(shader) {
		return
	}
	st := r.style
	vec3 := map[string][3]float32{
		"viewPos":    r.viewPos,
		"lightDir":   r.lightDir,
		"ambient":    st.Ambient,
		"lightColor": st.LightColor,
	}
	for name, v := range vec3 {
		if loc := rl.GetShaderLocation(shader, name); loc >= 0 {
			rl.SetShaderValueV(shader, loc, v[:], rl.ShaderUniformVec3, 1)
		}
	}
	scalars := map[string]float32{
		"lightIntensity":   st.LightIntensity,
		"specularPower":    st.SpecularPower,
		"specularStrength": st.SpecularStrength,
		"rimStrength":      st.RimStrength,
	}
	for name, v := range scalars {
		if loc := rl.GetShaderLocation(shader, name); loc >= 0 {
			rl.SetShaderValue(shader, loc, []float32{v}, rl.ShaderUniformFloat)
		}
	}
}

// Matrix converts a column-major mgl32 matrix to raylib's layout.
func Matrix(m mgl32.Mat4) rl.Matrix {
	return rl.Matrix{
		M0: m[0], M1: m[1], M2: m[2], M3: m[3],
		M4: m[4], M5: m[5], M6: m[6], M7: m[7],
		M8: m[8], M9: m[9], M10: m[10], M11: m[11],
		M12: m[12], M13: m[13], M14: m[14], M15: m[15],
	}
}

// Draw draws kind with the world transform world, untextured.
// Must be called between BeginMode3D and EndMode3D.
func (r *Registry) Draw(kind Kind, world mgl32.Mat4) {
	c, ok := r.ensure(kind)
	if !ok {
		return
	}
	r.setLitShaderUniforms(c.mtl.Shader)
	rl.DrawMesh(c.mesh, c.mtl, rl.MatrixMultiply(c.base, Matrix(world)))
}

// DrawWithTexture draws kind with tex as albedo, multiplied by alpha. Falls back to Draw
// when tex is not loaded. Quads are drawn double-sided.
func (r *Registry) DrawWithTexture(kind Kind, world mgl32.Mat4, tex rl.Texture2D, alpha float32) {
	if !rl.IsTextureValid(tex) {
		r.Draw(kind, world)
		return
	}
	c, ok := r.ensure(kind)
	if !ok {
		return
	}
	rl.SetMaterialTexture(&c.texturedMtl, rl.MapAlbedo, tex)
	if albedo := c.texturedMtl.GetMap(rl.MapAlbedo); albedo != nil {
		albedo.Color = rl.Fade(rl.White, alpha)
	}
	r.setLitShaderUniforms(c.texturedMtl.Shader)
	if kind == Quad {
		rl.DisableBackfaceCulling()
		defer rl.EnableBackfaceCulling()
	}
	rl.DrawMesh(c.mesh, c.texturedMtl, rl.MatrixMultiply(c.base, Matrix(world)))
}

// Unload frees every cached mesh and material.
func (r *Registry) Unload() {
	for k, c := range r.cache {
		rl.UnloadMesh(&c.mesh)
		delete(r.cache, k)
	}
}

func toColor(c [4]uint8) rl.Color {
	return rl.NewColor(c[0], c[1], c[2], c[3])
}
