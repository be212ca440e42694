package scene

import (
	"os"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/rs/zerolog"
)

// backdropScale is the half-size of the cube drawn around the camera; beyond the far
// globe but inside the camera's far plane.
const backdropScale = 80

// A panorama is an image between 1.8:1 and 2.2:1; anything else is treated as a cubemap strip.
const (
	panoramaMinAspect = 1.8
	panoramaMaxAspect = 2.2
)

// Skybox is the optional image drawn behind the globe.
type Skybox struct {
	path     string
	panorama bool
	ready    bool // GPU resources created
	tried    bool

	tex    rl.Texture2D
	mesh   rl.Mesh
	mtl    rl.Material
	camLoc int32
	texLoc int32
}

// NewSkybox prepares the backdrop image at path. An empty or missing path draws nothing.
func NewSkybox(path string, log zerolog.Logger) *Skybox {
	s := &Skybox{}
	if path == "" {
		return s
	}
	if _, err := os.Stat(path); err != nil {
		log.Warn().Err(err).Str("path", path).Msg("backdrop unavailable")
		return s
	}
	img := rl.LoadImage(path)
	if img == nil || img.Width <= 0 || img.Height <= 0 {
		log.Warn().Str("path", path).Msg("backdrop is not a readable image")
		return s
	}
	aspect := float32(img.Width) / float32(img.Height)
	rl.UnloadImage(img)
	s.path = path
	s.panorama = aspect >= panoramaMinAspect && aspect <= panoramaMaxAspect
	return s
}

// load creates the texture, cube and material on the first Draw.
func (s *Skybox) load() {
	s.tried = true
	if s.path == "" {
		return
	}
	if s.panorama {
		s.tex = rl.LoadTexture(s.path)
		if !rl.IsTextureValid(s.tex) {
			return
		}
		shader := rl.LoadShaderFromMemory(panoramaVS, panoramaFS)
		if !rl.IsShaderValid(shader) {
			rl.UnloadTexture(s.tex)
			return
		}
		s.mtl = rl.LoadMaterialDefault()
		s.mtl.Shader = shader
		s.camLoc = rl.GetShaderLocation(shader, "eye")
		s.texLoc = rl.GetShaderLocation(shader, "panorama")
	} else {
		img := rl.LoadImage(s.path)
		if img == nil {
			return
		}
		s.tex = rl.LoadTextureCubemap(img, rl.CubemapLayoutAutoDetect)
		rl.UnloadImage(img)
		if !rl.IsTextureValid(s.tex) {
			return
		}
		s.mtl = rl.LoadMaterialDefault()
		rl.SetMaterialTexture(&s.mtl, rl.MapCubemap, s.tex)
	}
	s.mesh = rl.GenMeshCube(1, 1, 1)
	s.ready = true
}

// panoramaVS/FS map the view direction to equirectangular texture coordinates.
const (
	panoramaVS = `#version 330
in vec3 vertexPosition;
uniform mat4 matProjection;
uniform mat4 matView;
uniform mat4 matModel;
out vec3 worldPos;
void main() {
  vec4 p = matModel * vec4(vertexPosition, 1.0);
  worldPos = p.xyz;
  gl_Position = matProjection * matView * p;
}
`
	panoramaFS = `#version 330
in vec3 worldPos;
out vec4 finalColor;
uniform sampler2D panorama;
uniform vec3 eye;
const float PI = 3.14159265359;
void main() {
  vec3 d = normalize(worldPos - eye);
  vec2 uv = vec2(atan(d.z, d.x) / (2.0 * PI) + 0.5, 0.5 - asin(clamp(d.y, -1.0, 1.0)) / PI);
  finalColor = texture(panorama, uv);
}
`
)

// Draw draws the backdrop centred on camera. Call inside BeginMode3D before the globe.
func (s *Skybox) Draw(camera rl.Vector3) {
	if !s.tried {
		s.load()
	}
	if !s.ready {
		return
	}
	if s.panorama {
		if s.camLoc >= 0 {
			rl.SetShaderValueV(s.mtl.Shader, s.camLoc, []float32{camera.X, camera.Y, camera.Z}, rl.ShaderUniformVec3, 1)
		}
		if s.texLoc >= 0 {
			rl.SetShaderValueTexture(s.mtl.Shader, s.texLoc, s.tex)
		}
	}
	rl.DisableDepthMask()
	rl.DisableBackfaceCulling()
	world := rl.MatrixMultiply(
		rl.MatrixScale(backdropScale, backdropScale, backdropScale),
		rl.MatrixTranslate(camera.X, camera.Y, camera.Z),
	)
	rl.DrawMesh(s.mesh, s.mtl, world)
	rl.EnableBackfaceCulling()
	rl.EnableDepthMask()
}

// Unload frees the backdrop's GPU resources.
func (s *Skybox) Unload() {
	if !s.ready {
		return
	}
	if s.panorama {
		rl.UnloadShader(s.mtl.Shader)
	}
	rl.UnloadTexture(s.tex)
	rl.UnloadMesh(&s.mesh)
	s.ready = false
}
