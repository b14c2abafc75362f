package game

import (
	"log"

	"portalgun/internal/audio"
	"portalgun/internal/config"
	"portalgun/internal/physics"
	"portalgun/internal/player"
	"portalgun/internal/portal"
	"portalgun/internal/world"
)

// Input is one frame of player input, already translated from devices.
type Input struct {
	player.Intent
	Select portal.Color // None keeps the current selection
	Fire   bool
}

// Session is the simulation half of the game. It owns no GL state, so it runs
// the same with or without a window.
type Session struct {
	Config     config.Config
	World      *world.World
	Player     *player.Player
	Controller *player.Controller
	Resolver   *player.CollisionResolver
	Pair       *portal.Pair
	Teleporter *portal.Teleporter
	Sink       audio.Sink

	// last aim raycast, nil when nothing is in range
	Aim *physics.RaycastHit
}

func NewSession(cfg config.Config, sink audio.Sink) *Session {
	if sink == nil {
		sink = audio.Nop{}
	}

	w := world.New()
	p := player.New(w.Spawn)
	s := &Session{
		Config:     cfg,
		World:      w,
		Player:     p,
		Controller: player.NewController(p, w),
		Resolver:   player.NewCollisionResolver(p, w.StaticVolumes(), w.DynamicVolumes()),
		Pair:       portal.NewPair(),
		Sink:       sink,
	}
	s.Teleporter = portal.NewTeleporter(p, s.Pair)
	s.Apply(cfg)

	s.Controller.OnJump.AddListener(func() { s.Sink.OnJump() })
	s.Controller.OnFootstep.AddListener(func() { s.Sink.OnFootstep() })
	s.Teleporter.OnTeleport.AddListener(func(entered portal.Color) {
		log.Printf("Player: entered %s portal", entered)
		s.Sink.OnTeleport()
	})

	w.Start()
	return s
}

// Apply pushes tuning onto every gameplay collaborator.
func (s *Session) Apply(cfg config.Config) {
	s.Config = cfg
	cfg.ApplyController(s.Controller)
	cfg.ApplyCollision(s.Resolver)
	cfg.ApplyPortal(s.Pair, s.Teleporter)
}

// Step advances the simulation by one frame.
func (s *Session) Step(in Input, deltaTime float32) {
	deltaTime = ClampDelta(deltaTime, s.Config.Physics.MaxDelta)

	if in.Select != portal.None {
		s.Pair.SelectColor(in.Select)
	}

	s.Player.BeginTick()
	s.Controller.ApplyIntent(in.Intent, deltaTime)
	s.Controller.Update(deltaTime)
	s.Resolver.Update()
	s.Teleporter.Update(deltaTime)

	s.World.Update(deltaTime)

	s.Aim = s.aim()
	if in.Fire {
		s.fire()
	}
}

func (s *Session) aim() *physics.RaycastHit {
	origin, direction := portal.AimRay(s.Player.ViewPose())
	hit, ok := s.World.Raycast(origin, direction, s.Config.Portal.AimDistance, s.World.Static)
	if !ok {
		return nil
	}
	return &hit
}

func (s *Session) fire() {
	if s.Aim == nil {
		return
	}
	color, result := s.Pair.Place(*s.Aim)
	if result == portal.Placed {
		s.Sink.OnPortalFired(color)
	}
}

// ClampDelta bounds a frame's delta time so a stall can not tunnel the player
// through geometry.
func ClampDelta(deltaTime, max float32) float32 {
	if deltaTime < 0 {
		return 0
	}
	if max > 0 && deltaTime > max {
		return max
	}
	return deltaTime
}
