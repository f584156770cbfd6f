package platformer

import (
	"errors"
	"fmt"
	"math"

	"github.com/vovakirdan/tui-platformer/internal/core"
)

// Phase is the session state.
type Phase int

const (
	PhaseStart Phase = iota
	PhasePlaying
	PhaseWon
	PhaseGameOver
)

func (p Phase) String() string {
	switch p {
	case PhaseStart:
		return "start"
	case PhasePlaying:
		return "playing"
	case PhaseWon:
		return "won"
	case PhaseGameOver:
		return "game_over"
	default:
		return fmt.Sprintf("Phase(%d)", int(p))
	}
}

// Terminal reports whether the phase ends the session.
func (p Phase) Terminal() bool {
	return p == PhaseWon || p == PhaseGameOver
}

// Particle burst sizes and spreads.
const (
	landingParticles = 5
	jumpParticles    = 8
	burstParticles   = 10
	particleSpread   = 6
	particleGravity  = 0.2
)

// Session is one run of a level. It owns every entity it simulates; the
// level itself is only read. Restarting never reuses a session.
type Session struct {
	level *Level
	rules Rules
	seed  int64
	obs   core.Observer

	resolve Resolver

	phase        Phase
	tick         int
	score        int
	distance     int
	player       Player
	enemies      []Enemy
	collectibles []Collectible
	particles    *Particles
	camera       Camera
}

// NewSession validates the level and rules and builds a session in
// PhaseStart. obs may be nil.
func NewSession(level *Level, rules Rules, seed int64, obs core.Observer) (*Session, error) {
	if level == nil {
		return nil, errors.New("platformer: nil level")
	}
	if err := rules.validate(); err != nil {
		return nil, fmt.Errorf("platformer: rules: %w", err)
	}
	if err := level.Validate(rules.PlayerSize); err != nil {
		return nil, fmt.Errorf("platformer: level %q: %w", level.ID, err)
	}
	if obs == nil {
		obs = core.ObserverFunc(func(core.Event) {})
	}

	s := &Session{
		level:     level,
		rules:     rules,
		seed:      seed,
		obs:       obs,
		resolve:   rules.resolver(),
		particles: NewParticles(seed, rules.ParticleDecay, particleGravity),
		camera: Camera{
			Lead:        rules.CameraLead,
			Smoothing:   rules.CameraSmoothing,
			ViewportW:   rules.Viewport.X,
			LevelLength: level.Length,
		},
	}

	s.player = Player{
		Body:        Body{Pos: level.Spawn, Size: rules.PlayerSize},
		FacingRight: true,
		Lives:       rules.Lives,
	}
	s.player.Grounded = s.standing(&s.player.Body)

	s.enemies = make([]Enemy, 0, len(level.Enemies))
	for _, sp := range level.Enemies {
		s.enemies = append(s.enemies, Enemy{
			Body:        Body{Pos: sp.Pos, Size: rules.EnemySize},
			Kind:        sp.Kind,
			StartX:      sp.Pos.X,
			PatrolRange: sp.PatrolRange,
			Dir:         1,
		})
	}

	s.collectibles = make([]Collectible, len(level.Collectibles))
	for i, box := range level.Collectibles {
		s.collectibles[i] = Collectible{Box: box}
	}

	s.distance = int(math.Floor(level.Spawn.X))
	s.camera.Snap(s.player.Pos.X)
	return s, nil
}

// standing checks one unit below the body for a supporting platform.
func (s *Session) standing(b *Body) bool {
	feet := core.Box{X: b.Pos.X, Y: b.Pos.Y + b.Size.Y, W: b.Size.X, H: 1}
	for _, p := range s.level.Platforms {
		if p.Box.Intersects(feet) && p.Box.Y >= b.Pos.Y+b.Size.Y {
			return true
		}
	}
	return false
}

// Start moves a fresh session into PhasePlaying. It is a no-op in any other
// phase.
func (s *Session) Start() {
	if s.phase == PhaseStart {
		s.phase = PhasePlaying
	}
}

// Restart builds a new playing session from the same level, rules, seed and
// observer. The receiver is left untouched.
func (s *Session) Restart() (*Session, error) {
	next, err := NewSession(s.level, s.rules, s.seed, s.obs)
	if err != nil {
		return nil, err
	}
	next.Start()
	return next, nil
}

// Step advances the simulation by one tick. dt is the frame time as a
// fraction of a nominal 60 Hz frame and is clamped before use. Outside
// PhasePlaying the call does nothing.
func (s *Session) Step(in core.Intents, dt float64) {
	if s.phase != PhasePlaying {
		return
	}
	dt = core.ClampDT(dt)
	s.tick++

	// Protection is decided from the counter as it stood when the tick began.
	shielded := s.player.Invulnerable > 0
	if s.player.Invulnerable > 0 {
		s.player.Invulnerable--
	}

	s.updatePlayer(in, dt)
	s.updateEnemies(dt)
	if s.phase == PhasePlaying {
		s.updateAttack()
		s.checkEnemyContacts(shielded)
	}
	if s.phase == PhasePlaying {
		s.checkCollectibles()
	}

	s.particles.Update(dt)
	s.camera.Follow(s.player.Pos.X, dt)

	if s.phase != PhasePlaying {
		return
	}
	s.trackDistance()
	if s.level.Goal.Reached(s.player.Box()) {
		s.finish(PhaseWon)
	}
}

func (s *Session) updatePlayer(in core.Intents, dt float64) {
	p := &s.player
	m := s.rules.Motion

	dir := in.Direction()
	if dir > 0 {
		p.FacingRight = true
	} else if dir < 0 {
		p.FacingRight = false
	}
	m.Horizontal(&p.Body, dir, dt)

	if in.Attack && s.rules.AttackTicks > 0 && !p.Attacking {
		p.Attacking = true
		p.AttackTimer = s.rules.AttackTicks
		s.emit(core.Sound{Cue: core.CueAttack})
	}

	if in.Jump && p.Grounded {
		p.Vel.Y = m.JumpVelocity
		p.Grounded = false
		s.particles.Burst(s.feet(), jumpParticles, core.ColorGray, particleSpread)
		s.emit(core.Sound{Cue: core.CueJump})
	}

	m.Fall(&p.Body, in.Jump, dt)
	p.Integrate(dt)

	maxX := math.Max(0, s.level.Length-p.Size.X)
	if p.Pos.X < 0 || p.Pos.X > maxX {
		p.Pos.X = core.ClampF(p.Pos.X, 0, maxX)
		p.Vel.X = 0
	}

	wasGrounded := p.Grounded
	c := s.resolve(&p.Body, s.level.Platforms)
	p.Grounded = c.Grounded
	if p.Grounded && !wasGrounded {
		s.particles.Burst(s.feet(), landingParticles, core.ColorWhite, particleSpread)
	}

	if p.Pos.Y > s.rules.FallLimit {
		s.hurtPlayer()
	}
}

func (s *Session) updateEnemies(dt float64) {
	m := s.rules.Motion
	for i := range s.enemies {
		e := &s.enemies[i]
		if e.Dead {
			continue
		}
		e.Patrol(s.rules.EnemySpeed, dt)
		if s.rules.EnemyGravity {
			e.Vel.Y = math.Min(e.Vel.Y+m.Gravity*dt, m.MaxFallSpeed)
			e.Pos.Y += e.Vel.Y * dt
		}
		c := s.resolve(&e.Body, s.level.Platforms)
		e.bounceOffWall(c)
		e.keepInRange()

		if e.Pos.Y > s.rules.FallLimit {
			e.Dead = true
		}
	}
}

func (s *Session) updateAttack() {
	p := &s.player
	if !p.Attacking {
		return
	}
	hitbox := p.AttackBox(s.rules.AttackReach)
	for i := range s.enemies {
		e := &s.enemies[i]
		if !e.Dead && hitbox.Intersects(e.Box()) {
			s.killEnemy(e)
		}
	}
	p.AttackTimer--
	if p.AttackTimer <= 0 {
		p.AttackTimer = 0
		p.Attacking = false
	}
}

// checkEnemyContacts judges every touched enemy against the player as it
// was on contact, so landing across two enemies stomps both.
func (s *Session) checkEnemyContacts(shielded bool) {
	p := &s.player
	contact := p.Body
	stomped := false
	for i := range s.enemies {
		e := &s.enemies[i]
		if e.Dead || !contact.Box().Intersects(e.Box()) {
			continue
		}
		if IsStomp(contact, e.Body) {
			s.killEnemy(e)
			stomped = true
			continue
		}
		if shielded || p.Invulnerable > 0 {
			continue
		}
		// A hit respawns the player or ends the run; either way the
		// remaining contacts no longer apply.
		s.hurtPlayer()
		return
	}
	if stomped {
		p.Vel.Y = s.rules.StompBounce
	}
}

func (s *Session) checkCollectibles() {
	box := s.player.Box()
	for i := range s.collectibles {
		c := &s.collectibles[i]
		if !c.Collect(box) {
			continue
		}
		s.particles.Burst(c.Box.Center(), burstParticles, core.ColorYellow, particleSpread)
		s.emit(core.Sound{Cue: core.CueCoin})
		s.addScore(s.rules.CollectReward)
	}
}

func (s *Session) killEnemy(e *Enemy) {
	e.Dead = true
	s.particles.Burst(e.Box().Center(), burstParticles, core.ColorRed, particleSpread)
	s.emit(core.Sound{Cue: core.CueEnemyDeath})
	s.addScore(s.rules.StompReward)
}

// hurtPlayer costs a life, or ends the session in single-life modes.
func (s *Session) hurtPlayer() {
	p := &s.player
	s.particles.Burst(p.Box().Center(), burstParticles, core.ColorRed, particleSpread)
	s.emit(core.Sound{Cue: core.CueHit})

	if s.rules.Lives == 0 {
		s.finish(PhaseGameOver)
		return
	}

	p.Lives--
	s.emit(core.LivesChanged{Lives: p.Lives})
	if p.Lives <= 0 {
		p.Lives = 0
		s.finish(PhaseGameOver)
		return
	}

	p.Pos = s.level.Spawn
	p.Vel = core.Vec2{}
	p.Attacking = false
	p.AttackTimer = 0
	p.Invulnerable = s.rules.InvulnerableTicks
	p.Grounded = s.standing(&p.Body)
}

func (s *Session) trackDistance() {
	if !s.rules.TrackDistance {
		return
	}
	if d := int(math.Floor(s.player.Pos.X)); d > s.distance {
		s.distance = d
		s.emit(core.DistanceChanged{Distance: d})
	}
}

func (s *Session) finish(phase Phase) {
	if s.phase.Terminal() {
		return
	}
	s.phase = phase
	if phase == PhaseWon {
		s.emit(core.Sound{Cue: core.CueWin})
		s.emit(core.Won{FinalScore: s.score})
		return
	}
	s.emit(core.Sound{Cue: core.CueGameOver})
	s.emit(core.GameOver{FinalScore: s.score})
}

func (s *Session) addScore(n int) {
	if n == 0 {
		return
	}
	s.score += n
	s.emit(core.ScoreChanged{Score: s.score})
}

func (s *Session) emit(e core.Event) {
	s.obs.Notify(e)
}

func (s *Session) feet() core.Vec2 {
	box := s.player.Box()
	return core.V(box.CenterX(), box.Bottom())
}

func (s *Session) Phase() Phase          { return s.phase }
func (s *Session) Score() int            { return s.score }
func (s *Session) Lives() int            { return s.player.Lives }
func (s *Session) Distance() int         { return s.distance }
func (s *Session) Tick() int             { return s.tick }
func (s *Session) CameraX() float64      { return s.camera.X }
func (s *Session) Level() *Level         { return s.level }
func (s *Session) Rules() Rules          { return s.rules }
func (s *Session) Particles() []Particle { return s.particles.All() }

// Player returns a copy of the player.
func (s *Session) Player() Player { return s.player }

// Enemies returns the enemy slice, dead ones included. Callers must not
// modify it.
func (s *Session) Enemies() []Enemy { return s.enemies }

// Collectibles returns the pickups, collected ones included. Callers must
// not modify it.
func (s *Session) Collectibles() []Collectible { return s.collectibles }

// SetEnemySpeed changes the patrol speed mid-run, for difficulty ramps.
func (s *Session) SetEnemySpeed(speed float64) {
	if speed >= 0 {
		s.rules.EnemySpeed = speed
	}
}
