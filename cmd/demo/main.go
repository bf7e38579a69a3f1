// Command demo opens a window and renders sprites from a generated texture
// atlas, cycling GPU state through snapshots.
package main

import (
	"flag"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"log"
	"math/rand"
	"runtime"
	"time"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/forgegl/forge"
	"github.com/forgegl/forge/atlas"
	"github.com/forgegl/forge/debug"
	"github.com/forgegl/forge/gl"
	"github.com/forgegl/forge/mesh"
	"github.com/forgegl/forge/texture"
)

func init() {
	// GL contexts are bound to their thread.
	runtime.LockOSThread()
}

var (
	vsync   = flag.Int("v", 1, "vsync value for glfw.SwapInterval")
	sprites = flag.Int("n", 64, "number of sprites to draw")
)

const vertexShader = `#version 410 core
layout(location = 0) in vec3 aPos;
layout(location = 1) in vec4 aColor;
layout(location = 3) in vec2 aUV;
uniform mat4 uMVP;
out vec4 vColor;
out vec2 vUV;
void main() {
	gl_Position = uMVP * vec4(aPos, 1.0);
	vColor = aColor;
	vUV = aUV;
}`

const fragmentShader = `#version 410 core
in vec4 vColor;
in vec2 vUV;
uniform sampler2D uTexture;
out vec4 fragColor;
void main() {
	fragColor = texture(uTexture, vUV) * vColor;
}`

// spriteImage draws a flat colored square with a darker border.
func spriteImage(sz int, c color.RGBA) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, sz, sz))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.RGBA{R: c.R / 2, G: c.G / 2, B: c.B / 2, A: 255}), image.Point{}, draw.Src)
	draw.Draw(img, img.Bounds().Inset(2), image.NewUniform(c), image.Point{}, draw.Src)
	return img
}

func buildAtlasSet(dev forge.Device) (*atlas.Set, []atlas.Identifier, error) {
	b := atlas.NewSetBuilder(dev, 256, 256, 1, 1,
		texture.Filter(forge.MinLinearMipmapLinear, forge.MagNearest))
	palette := []color.RGBA{
		{R: 255, A: 255},
		{G: 255, A: 255},
		{B: 255, A: 255},
		{R: 255, G: 255, A: 255},
		{G: 255, B: 255, A: 255},
		{R: 255, B: 255, A: 255},
	}
	var ids []atlas.Identifier
	for i, c := range palette {
		for sz := 16; sz <= 64; sz *= 2 {
			id := atlas.Identifier(fmt.Sprintf("sprite-%d-%d", i, sz))
			if err := b.Add(id, spriteImage(sz, c)); err != nil {
				return nil, nil, err
			}
			ids = append(ids, id)
		}
	}
	set, err := b.Build()
	if err != nil {
		return nil, nil, err
	}
	return set, ids, nil
}

type sprite struct {
	id   atlas.Identifier
	x, y float32
	tint forge.Color
}

func main() {
	flag.Parse()

	if err := glfw.Init(); err != nil {
		log.Fatal(err)
	}
	defer glfw.Terminate()

	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.Samples, 4)

	window, err := glfw.CreateWindow(1280, 720, "forge demo", nil, nil)
	if err != nil {
		log.Fatal(err)
	}
	window.MakeContextCurrent()
	glfw.SwapInterval(*vsync)

	dev, err := gl.NewDevice()
	if err != nil {
		log.Fatal(err)
	}
	log.Print("glfw ", glfw.GetVersionString())

	vs, err := gl.NewShader(gl.VertexShader, vertexShader)
	if err != nil {
		log.Fatal(err)
	}
	fs, err := gl.NewShader(gl.FragmentShader, fragmentShader)
	if err != nil {
		log.Fatal(err)
	}
	program, err := gl.NewProgram(vs, fs)
	if err != nil {
		log.Fatal(err)
	}
	vs.Delete()
	fs.Delete()

	set, ids, err := buildAtlasSet(dev)
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("atlas set: %d images on %d pages", len(ids), set.Len())

	m := forge.NewManager(dev)
	m.SetBlending(true)
	m.SetBlendFunc(forge.BlendSrcAlpha, forge.BlendOneMinusSrcAlpha)

	w, h := window.GetFramebufferSize()
	m.SetViewport(forge.Box{0, 0, int32(w), int32(h)})
	window.SetFramebufferSizeCallback(func(_ *glfw.Window, w, h int) {
		m.SetViewport(forge.Box{0, 0, int32(w), int32(h)})
	})

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	scene := make([]sprite, *sprites)
	for i := range scene {
		scene[i] = sprite{
			id:   ids[rng.Intn(len(ids))],
			x:    rng.Float32()*2 - 1,
			y:    rng.Float32()*2 - 1,
			tint: forge.RGBf(0.5+rng.Float32()/2, 0.5+rng.Float32()/2, 0.5+rng.Float32()/2),
		}
	}

	buf := mesh.NewBufferBuilder(program.NativeID(), mesh.SimpleFormat{Color: true, UV: true})
	stack := forge.NewMatrixStack()

	var frameTime debug.Timer
	lastTitle := time.Now()

	for !window.ShouldClose() {
		start := time.Now()

		snap := m.Snapshot()
		m.SetDepthTest(false)

		stack.Push()
		stack.Scale(mgl32.Vec3{float32(h) / float32(w), 1, 1})
		buf.SetUniform("uMVP", forge.UniformMat4(stack.Transform()))

		// group sprites by page so each draw samples a single texture
		for p := 0; p < set.Len(); p++ {
			page := set.Page(p).Texture()
			queued := 0
			for _, s := range scene {
				tex, r, ok := set.Lookup(s.id)
				if !ok || tex != page {
					continue
				}
				u0, v0, u1, v1 := r.UV()
				sz := float32(r.Width) / 256
				quad(buf, s.x, s.y, sz, u0, v0, u1, v1, s.tint)
				queued++
			}
			if queued == 0 {
				continue
			}
			buf.SetSampler("uTexture", 0, page.NativeID())
			if err := buf.Render(m); err != nil {
				log.Fatal(err)
			}
		}
		stack.Pop()
		snap.Release()

		window.SwapBuffers()
		glfw.PollEvents()

		frameTime.Add(time.Since(start))
		if time.Since(lastTitle) > time.Second {
			window.SetTitle(fmt.Sprintf("forge demo - %.0f fps", frameTime.AveragePerSecond()))
			lastTitle = time.Now()
		}
	}

	set.Destroy()
	m.DestroyProgram(program.NativeID())
}

func quad(b *mesh.BufferBuilder, x, y, sz, u0, v0, u1, v1 float32, tint forge.Color) {
	b.AddVertex(mgl32.Vec3{x, y, 0}).SetColor(tint).SetUV(mgl32.Vec2{u0, v0})
	b.AddVertex(mgl32.Vec3{x + sz, y, 0}).SetColor(tint).SetUV(mgl32.Vec2{u1, v0})
	b.AddVertex(mgl32.Vec3{x, y + sz, 0}).SetColor(tint).SetUV(mgl32.Vec2{u0, v1})
	b.AddVertex(mgl32.Vec3{x + sz, y, 0}).SetColor(tint).SetUV(mgl32.Vec2{u1, v0})
	b.AddVertex(mgl32.Vec3{x + sz, y + sz, 0}).SetColor(tint).SetUV(mgl32.Vec2{u1, v1})
	b.AddVertex(mgl32.Vec3{x, y + sz, 0}).SetColor(tint).SetUV(mgl32.Vec2{u0, v1})
}
