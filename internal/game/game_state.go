package game

import (
	"fmt"
	"math/rand"
	"strconv"
	"time"

	"github.com/Tombarr/pacman-kaios/internal/assets"
	"github.com/Tombarr/pacman-kaios/internal/config"
	"github.com/Tombarr/pacman-kaios/internal/entities"
	tm "github.com/Tombarr/pacman-kaios/internal/tilemap"
	"github.com/Tombarr/pacman-kaios/internal/timer"
)

// maxStep caps the simulated time of one frame so a stalled host does not
// make entities skip over pellets.
const maxStep = 50 * time.Millisecond

// Options carries the collaborators shared by every session.
type Options struct {
	Config *config.Config
	// LoadLevel resolves a profile's map name. Defaults to the embedded levels.
	LoadLevel func(name string) (*tm.TileMap, error)
	Clock     timer.Clock
	Rand      *rand.Rand
	Sound     SoundPlayer
}

func (o *Options) fill() {
	if o.LoadLevel == nil {
		o.LoadLevel = assets.LoadLevel
	}
	if o.Clock == nil {
		o.Clock = timer.SystemClock{}
	}
	if o.Rand == nil {
		o.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if o.Sound == nil {
		o.Sound = silence{}
	}
}

// Session is one level being played. It owns its entities and a scheduler
// whose tasks die with it.
type Session struct {
	Level int
	Lives int
	Score int
	Multi int

	active       bool
	notification string

	cfg     *config.Config
	profile *config.Profile
	tileMap *tm.TileMap
	sched   *timer.Scheduler
	rnd     *rand.Rand
	sound   SoundPlayer

	pacman *entities.Pacman
	ghosts [entities.GhostCount]*entities.Ghost

	pellets     []*Item
	pills       []*Item
	bonuses     []*Item
	portals     []*Portal
	pelletsLeft int

	lastElapsed time.Duration
}

// NewSession builds a level from the profile for level and starts it.
func NewSession(level, lives, score int, opts Options) (*Session, error) {
	opts.fill()
	if opts.Config == nil {
		return nil, config.ErrNoLevels
	}
	profile := opts.Config.Profile(level)
	m, err := opts.LoadLevel(profile.Map)
	if err != nil {
		return nil, fmt.Errorf("game: level %d: %w", level, err)
	}
	s := &Session{
		Level:   level,
		Lives:   max(lives, 0),
		Score:   max(score, 0),
		Multi:   profile.Multiplier,
		active:  true,
		cfg:     opts.Config,
		profile: profile,
		tileMap: m,
		sched:   timer.New(opts.Clock),
		rnd:     opts.Rand,
		sound:   opts.Sound,
	}
	s.createPortals()
	s.createItems()
	s.createGhosts()
	s.createPacman()
	s.sound.Play(SoundIntro)
	return s, nil
}

func (s *Session) createPortals() {
	half := float64(s.tileMap.TileSize) / 2
	for _, o := range s.tileMap.ObjectsByType(tm.ObjPortal) {
		x, y := s.tileMap.TileCenter(o.Marker())
		s.portals = append(s.portals, &Portal{Marker: o.Marker(), X: x, Y: y, Index: o.Index, Target: o.Target, half: half})
	}
}

func (s *Session) createItems() {
	for _, o := range s.tileMap.ObjectsByType(tm.ObjPellet) {
		s.pellets = append(s.pellets, newItem(ItemPellet, s.tileMap, o.Marker()))
	}
	for _, o := range s.tileMap.ObjectsByType(tm.ObjPill) {
		s.pills = append(s.pills, newItem(ItemPill, s.tileMap, o.Marker()))
	}
	s.pelletsLeft = len(s.pellets)
}

func (s *Session) createGhosts() {
	hx, hy, _ := s.tileMap.RespawnPoint(entities.Blinky.String())
	home := s.tileMap.MarkerAt(hx, hy)
	px, py, _ := s.tileMap.RespawnPoint("pacman")
	roam := s.tileMap.Reachable(s.tileMap.MarkerAt(px, py))
	speed := s.profile.GhostSpeed
	for name := entities.Blinky; name < entities.GhostCount; name++ {
		x, y, _ := s.tileMap.RespawnPoint(name.String())
		corner, _ := s.tileMap.TargetPoint(name.String())
		s.ghosts[name] = entities.NewGhost(name, x, y, entities.GhostConfig{
			TileSize:        s.tileMap.TileSize,
			Speed:           speed,
			FrightenedSpeed: speed * s.profile.FrightenedFactor,
			EatenSpeed:      speed * s.profile.EatenFactor,
			Corner:          corner,
			Home:            home,
			Waves:           s.profile.GhostWaves(),
			Roam:            roam,
			Rand:            rand.New(rand.NewSource(s.rnd.Int63())),
		})
	}
}

func (s *Session) createPacman() {
	x, y, _ := s.tileMap.RespawnPoint("pacman")
	s.pacman = entities.NewPacman(x, y, s.tileMap.TileSize, s.profile.PacmanSpeed, s.sched, s.profile.DeathDuration)
	s.pacman.AfterStart(s.afterPacmanRun)
}

// afterPacmanRun releases the ghosts once the player starts moving.
func (s *Session) afterPacmanRun() {
	s.sound.Stop(SoundIntro)
	for _, g := range s.ghosts {
		g.EscapeFromHome(s.sched, s.profile.ReleaseDelay(g.Name))
	}
}

// Active reports whether the level is still being played. An inactive
// session waits for the player to confirm a restart.
func (s *Session) Active() bool { return s.active }

func (s *Session) Notification() string { return s.notification }

func (s *Session) showNotification(text string) { s.notification = text }

func (s *Session) hideNotification() { s.notification = "" }

// ScoreText is the HUD score, "00" before anything is eaten.
func (s *Session) ScoreText() string {
	if s.Score == 0 {
		return "00"
	}
	return strconv.Itoa(s.Score)
}

func (s *Session) Map() *tm.TileMap                           { return s.tileMap }
func (s *Session) Profile() *config.Profile                   { return s.profile }
func (s *Session) Pacman() *entities.Pacman                   { return s.pacman }
func (s *Session) Ghost(n entities.GhostName) *entities.Ghost { return s.ghosts[n] }
func (s *Session) PelletsLeft() int                           { return s.pelletsLeft }
func (s *Session) Portals() []*Portal                         { return s.portals }

// Ghosts returns the ghosts indexed by name.
func (s *Session) Ghosts() [entities.GhostCount]*entities.Ghost { return s.ghosts }

// Items returns the collectibles still on the board.
func (s *Session) Items() []*Item {
	out := make([]*Item, 0, s.pelletsLeft+len(s.pills)+len(s.bonuses))
	for _, group := range [][]*Item{s.pellets, s.pills, s.bonuses} {
		for _, it := range group {
			if it.alive {
				out = append(out, it)
			}
		}
	}
	return out
}

func (s *Session) addScore(points int) {
	s.Score += max(points, 0)
}

func (s *Session) stopAll() {
	s.pacman.Stop()
	for _, g := range s.ghosts {
		g.Stop()
	}
}

func (s *Session) Paused() bool { return s.sched.Paused() }

// Pause freezes the session and its timers.
func (s *Session) Pause() {
	if s.sched.Paused() {
		return
	}
	s.sched.Pause()
	s.showNotification(banner(msgPaused))
}

func (s *Session) Resume() {
	if !s.sched.Paused() {
		return
	}
	s.sched.Resume()
	s.hideNotification()
}

// Close stops the session's timers and sounds so nothing it scheduled can
// touch the next session.
func (s *Session) Close() {
	s.sched.Stop()
	s.sound.Stop(SoundIntro)
	s.sound.Stop(SoundMunch)
	s.sound.Stop(SoundIntermission)
}
