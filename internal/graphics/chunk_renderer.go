package graphics

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"infinivox/internal/meshing"
	"infinivox/internal/world"
)

const chunkVertexShader = `
#version 330 core
layout (location = 0) in vec3 aPos;
layout (location = 1) in vec3 aNormal;
layout (location = 2) in vec3 aColor;

uniform mat4 view;
uniform mat4 projection;
uniform vec3 lightPos;

out vec3 FragPos;
out vec3 Normal;
out vec3 Color;
out vec3 LightPos;

void main() {
    FragPos = aPos;
    Normal = aNormal;
    Color = aColor;
    LightPos = lightPos;

    gl_Position = projection * view * vec4(FragPos, 1.0);
}
`

const chunkFragmentShader = `
#version 330 core
in vec3 FragPos;
in vec3 Normal;
in vec3 Color;
in vec3 LightPos;

out vec4 FragColor;

void main() {
    vec3 lightColor = vec3(1.0, 1.0, 0.9);
    vec3 ambient = 0.4 * lightColor;

    vec3 norm = normalize(Normal);
    vec3 lightDir = normalize(LightPos - FragPos);
    float diff = max(dot(norm, lightDir), 0.0);
    vec3 diffuse = diff * lightColor;

    vec3 result = (ambient + diffuse) * Color;
    FragColor = vec4(result, 1.0);
}
`

// chunkBuffers holds the GPU objects for one chunk mesh. head and size
// identify the uploaded slice so unchanged meshes skip the re-upload.
type chunkBuffers struct {
	vao  uint32
	vbo  uint32
	head *float32
	size int
}

// ChunkRenderer uploads chunk meshes to the GPU and draws them. It
// implements the world's render sink; Begin sets per-frame state, then
// DrawChunk is called once per visible chunk.
type ChunkRenderer struct {
	shader *Shader
	bufs   map[world.ChunkCoord]*chunkBuffers
}

// NewChunkRenderer compiles the terrain shader. Requires a current GL
// context.
func NewChunkRenderer() (*ChunkRenderer, error) {
	shader, err := NewShader(chunkVertexShader, chunkFragmentShader)
	if err != nil {
		return nil, fmt.Errorf("terrain shader: %w", err)
	}
	return &ChunkRenderer{
		shader: shader,
		bufs:   make(map[world.ChunkCoord]*chunkBuffers),
	}, nil
}

// Begin sets the frame's camera and light uniforms. Call once per frame
// before the world render pass.
func (r *ChunkRenderer) Begin(view, projection mgl32.Mat4, lightPos mgl32.Vec3) {
	r.shader.Use()
	r.shader.SetMatrix4("view", &view[0])
	r.shader.SetMatrix4("projection", &projection[0])
	r.shader.SetVector3("lightPos", lightPos.X(), lightPos.Y(), lightPos.Z())
}

// DrawChunk uploads the mesh if it changed since the last frame and
// issues the draw call.
func (r *ChunkRenderer) DrawChunk(coord world.ChunkCoord, vertices []float32) {
	b, ok := r.bufs[coord]
	if !ok {
		b = &chunkBuffers{}
		gl.GenVertexArrays(1, &b.vao)
		gl.GenBuffers(1, &b.vbo)
		r.bufs[coord] = b
	}

	gl.BindVertexArray(b.vao)

	// A rebuilt mesh is a fresh slice, so pointer or length differing
	// means the data changed.
	if b.head != &vertices[0] || b.size != len(vertices) {
		gl.BindBuffer(gl.ARRAY_BUFFER, b.vbo)
		gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*4, gl.Ptr(vertices), gl.STATIC_DRAW)

		stride := int32(meshing.VertexStride * 4)
		gl.VertexAttribPointer(0, 3, gl.FLOAT, false, stride, gl.PtrOffset(0))
		gl.EnableVertexAttribArray(0)
		gl.VertexAttribPointer(1, 3, gl.FLOAT, false, stride, gl.PtrOffset(3*4))
		gl.EnableVertexAttribArray(1)
		gl.VertexAttribPointer(2, 3, gl.FLOAT, false, stride, gl.PtrOffset(6*4))
		gl.EnableVertexAttribArray(2)

		b.head = &vertices[0]
		b.size = len(vertices)
	}

	gl.DrawArrays(gl.TRIANGLES, 0, int32(len(vertices)/meshing.VertexStride))
	gl.BindVertexArray(0)
}

// Prune releases GPU buffers for chunks the world no longer keeps
// resident. Frustum-culled chunks stay cached; only unloaded ones are
// released.
func (r *ChunkRenderer) Prune(resident []world.ChunkCoord) {
	alive := make(map[world.ChunkCoord]struct{}, len(resident))
	for _, c := range resident {
		alive[c] = struct{}{}
	}
	for coord, b := range r.bufs {
		if _, ok := alive[coord]; ok {
			continue
		}
		gl.DeleteVertexArrays(1, &b.vao)
		gl.DeleteBuffers(1, &b.vbo)
		delete(r.bufs, coord)
	}
}

// Dispose releases all GPU resources.
func (r *ChunkRenderer) Dispose() {
	for coord, b := range r.bufs {
		gl.DeleteVertexArrays(1, &b.vao)
		gl.DeleteBuffers(1, &b.vbo)
		delete(r.bufs, coord)
	}
	r.shader.Delete()
}
