package game

import (
	"fmt"
	"log"
	"time"

	"portalgun/internal/audio"
	"portalgun/internal/config"
	"portalgun/internal/portal"
	"portalgun/internal/render"
	"portalgun/internal/world"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

type Game struct {
	Session   *Session
	Renderer  *world.Renderer
	Pipeline  *render.Pipeline
	Watcher   *config.Watcher // optional, reloads ConfigPath on change
	DebugMode bool

	ConfigPath string

	// Debug timing (ms)
	updateMs float64
	portalMs float64
	drawMs   float64
}

func New(cfg config.Config, sink audio.Sink) *Game {
	return &Game{
		Session: NewSession(cfg, sink),
	}
}

func (g *Game) Run() {
	rl.SetConfigFlags(rl.FlagWindowHighdpi | rl.FlagWindowResizable | rl.FlagMsaa4xHint)
	rl.InitWindow(1280, 720, "Portal Gun")
	defer rl.CloseWindow()

	rl.SetTargetFPS(120)
	rl.DisableCursor()

	// Renderer and pipeline need the GL context
	g.Renderer = world.NewRenderer(g.Session.World)
	g.Renderer.Initialize()
	defer g.Renderer.Unload()

	g.Pipeline = render.NewPipeline(g.Renderer, world.NewGLStencil(), g.Session.Config.Render.TargetSize)
	defer g.Pipeline.Close()
	g.applyRender(g.Session.Config)

	log.Printf("Game: %s", g.Session.World)

	for !rl.WindowShouldClose() {
		g.Update()
		g.Draw()
	}
}

func (g *Game) applyRender(cfg config.Config) {
	g.Renderer.FOV = cfg.Render.FOV
	g.Renderer.Brightness = cfg.Render.Brightness
	cfg.ApplyPipeline(g.Pipeline)
}

// reload re-reads the config file. A bad file keeps the running tuning.
func (g *Game) reload() {
	cfg, err := config.Load(g.ConfigPath)
	if err != nil {
		log.Printf("Config: reload rejected: %v", err)
		return
	}
	g.Session.Apply(cfg)
	g.applyRender(cfg)
	log.Printf("Config: reloaded %s", g.ConfigPath)
}

func (g *Game) pollConfig() {
	if g.Watcher == nil {
		return
	}
	if err := g.Watcher.PollError(); err != nil {
		log.Printf("Config: watcher: %v", err)
	}
	if _, changed := g.Watcher.Poll(); changed {
		g.reload()
	}
}

func (g *Game) Update() {
	updateStart := time.Now()

	g.pollConfig()

	if rl.IsKeyPressed(rl.KeyF1) {
		g.DebugMode = !g.DebugMode
		if g.DebugMode {
			rl.EnableCursor()
		} else {
			rl.DisableCursor()
		}
	}

	in := ReadInput(g.Session.Config.Look.Sensitivity, !g.DebugMode)
	g.Session.Step(in, rl.GetFrameTime())

	g.Pipeline.UpdatePreview(g.Session.Pair, g.Session.Aim)
	g.Pipeline.Sync(g.Session.Pair)

	if rl.IsWindowResized() {
		g.Pipeline.Resize(rl.GetRenderWidth(), rl.GetRenderHeight())
	}

	g.updateMs = float64(time.Since(updateStart).Microseconds()) / 1000.0
}

func (g *Game) Draw() {
	view := g.Session.Player.ViewPose()

	// Portal passes go to off-screen targets before the main pass
	portalStart := time.Now()
	g.Pipeline.RenderPortals(view)
	g.portalMs = float64(time.Since(portalStart).Microseconds()) / 1000.0

	rl.BeginDrawing()

	drawStart := time.Now()
	g.Renderer.DrawMain(view, g.Pipeline.Composite)
	g.drawMs = float64(time.Since(drawStart).Microseconds()) / 1000.0

	g.DrawUI()
	rl.EndDrawing()
}

func (g *Game) DrawUI() {
	screenW := int32(rl.GetScreenWidth())
	screenH := int32(rl.GetScreenHeight())

	selected := g.Session.Pair.Selected()
	crosshair := rl.SkyBlue
	if selected == portal.Orange {
		crosshair = rl.Orange
	}
	cx, cy := screenW/2, screenH/2
	rl.DrawLine(cx-8, cy, cx+8, cy, crosshair)
	rl.DrawLine(cx, cy-8, cx, cy+8, crosshair)

	rl.DrawText("WASD to move, Space to jump, Mouse to look, Click to fire", 10, 10, 20, rl.LightGray)
	rl.DrawText(fmt.Sprintf("Q/E select portal (%s), F1 debug", selected), 10, 35, 20, rl.LightGray)
	rl.DrawFPS(10, 60)

	if !g.DebugMode {
		return
	}

	y := int32(90)
	line := func(text string, color rl.Color) {
		rl.DrawText(text, 10, y, 16, color)
		y += 20
	}

	for _, c := range []portal.Color{portal.Blue, portal.Orange} {
		pt := g.Session.Pair.Get(c)
		if !pt.Active {
			line(fmt.Sprintf("%s: inactive", c), rl.Gray)
			continue
		}
		line(fmt.Sprintf("%s: (%.2f, %.2f, %.2f) n=(%.2f, %.2f, %.2f) rendered=%v", c,
			pt.Anchor.X, pt.Anchor.Y, pt.Anchor.Z, pt.Normal.X, pt.Normal.Y, pt.Normal.Z,
			g.Pipeline.Rendered(c)), rl.Yellow)
	}

	tp := g.Session.Teleporter
	p := g.Session.Player
	line(fmt.Sprintf("Cooldown: %.2f s  Last used: %s", tp.CooldownRemaining(), tp.LastUsed()), rl.Yellow)
	line(fmt.Sprintf("Position: (%.2f, %.2f, %.2f) grounded=%v", p.Position.X, p.Position.Y, p.Position.Z, p.Grounded), rl.Yellow)
	line(fmt.Sprintf("Velocity: (%.2f, %.2f, %.2f)", p.Velocity.X, p.Velocity.Y, p.Velocity.Z), rl.Yellow)

	line(fmt.Sprintf("Update:  %.2f ms", g.updateMs), rl.Green)
	line(fmt.Sprintf("Portals: %.2f ms", g.portalMs), rl.Green)
	line(fmt.Sprintf("Draw:    %.2f ms", g.drawMs), rl.Green)
	line(fmt.Sprintf("Total:   %.2f ms", g.updateMs+g.portalMs+g.drawMs), rl.Lime)

	g.drawTuning(screenW)
}

// drawTuning is the live render tuning panel. Changes here are not written
// back to the config file.
func (g *Game) drawTuning(screenW int32) {
	x := float32(screenW - 230)
	rl.DrawRectangle(int32(x)-10, 10, 230, 100, rl.Fade(rl.Black, 0.6))
	rl.DrawText("Render", int32(x), 18, 16, rl.RayWhite)

	if g.Pipeline.StencilSupported() {
		clipping := g.Pipeline.Clipping()
		bounds := rl.Rectangle{X: x, Y: 45, Width: 16, Height: 16}
		if checked := gui.CheckBox(bounds, "Stencil clipping", clipping); checked != clipping {
			g.Pipeline.SetClipping(checked)
		}
	} else {
		rl.DrawText("No stencil buffer", int32(x), 45, 16, rl.Red)
	}

	sliderBounds := rl.Rectangle{X: x + 70, Y: 75, Width: 100, Height: 16}
	g.Renderer.Brightness = gui.Slider(sliderBounds, "Brightness", fmt.Sprintf("%.2f", g.Renderer.Brightness), g.Renderer.Brightness, 0.5, 3)
}
