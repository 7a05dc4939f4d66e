package game

import (
	"github.com/Tombarr/pacman-kaios/internal/entities"
)

// checkOverlaps resolves overlaps in a fixed order: teleports first so the
// collectible checks see post-teleport positions.
func (s *Session) checkOverlaps() {
	for _, g := range s.ghosts {
		if g.Mode() != entities.GhostHome {
			s.overlapPortals(&g.Movable)
		}
	}
	if !s.pacman.Alive() {
		return
	}
	s.overlapPortals(&s.pacman.Movable)

	pb := s.pacman.Bounds()
	for _, it := range s.pellets {
		if it.alive && pb.Overlaps(it.Bounds()) {
			s.collect(it)
		}
	}
	for _, it := range s.bonuses {
		if it.alive && pb.Overlaps(it.Bounds()) {
			s.bonus(it)
		}
	}
	for _, it := range s.pills {
		if it.alive && pb.Overlaps(it.Bounds()) {
			s.powerMode(it)
		}
	}
	var touching []*entities.Ghost
	for _, g := range s.ghosts {
		if g.Mode() != entities.GhostHome && pb.Overlaps(g.Bounds()) {
			touching = append(touching, g)
		}
	}
	s.meetGhosts(touching)
}

// overlapPortals teleports u through the first portal it overlaps. The
// portal it arrived on is ignored until u has walked off it.
func (s *Session) overlapPortals(u *entities.Movable) {
	b := u.Bounds()
	touching := false
	for _, p := range s.portals {
		if !b.Overlaps(p.Bounds()) {
			continue
		}
		touching = true
		if u.ArrivedAt(p.Marker) {
			continue
		}
		s.teleport(u, p)
		return
	}
	if !touching {
		u.ClearArrival()
	}
}

// teleport moves u onto the portal paired with portal, keeping its
// direction. A portal without a partner does nothing.
func (s *Session) teleport(u *entities.Movable, portal *Portal) {
	for _, p := range s.portals {
		if p.Index == portal.Target {
			u.Teleport(p.X, p.Y)
			return
		}
	}
}

// collect eats a pellet or pill. The last pellet completes the level;
// otherwise the eaten-pellet count may place a bonus fruit.
func (s *Session) collect(it *Item) {
	if !s.active || !it.alive {
		return
	}
	it.alive = false
	s.addScore(it.points() * s.Multi)
	if it.Kind != ItemPellet {
		return
	}
	s.pelletsLeft = max(s.pelletsLeft-1, 0)
	s.sound.Play(SoundMunch)

	if s.pelletsLeft == 0 {
		s.completeLevel()
		return
	}
	if fruit, ok := bonusThresholds[len(s.pellets)-s.pelletsLeft]; ok {
		s.placeBonus(fruit)
	}
}

func (s *Session) completeLevel() {
	s.sound.Stop(SoundMunch)
	final := s.Level >= s.cfg.FinalLevel()
	text := banner(msgLevelCompleted, s.Level)
	if final {
		text = banner(msgGameCompleted)
		s.sound.Play(SoundWin)
	}
	s.Level++
	s.active = false
	s.pacman.EndPowerMode()
	s.sound.Stop(SoundIntermission)
	s.stopAll()
	s.showNotification(text)
}

// placeBonus puts a fruit on the tile of a random remaining pellet.
func (s *Session) placeBonus(fruit Fruit) {
	var left []*Item
	for _, it := range s.pellets {
		if it.alive {
			left = append(left, it)
		}
	}
	if len(left) == 0 {
		return
	}
	at := left[s.rnd.Intn(len(left))]
	b := newItem(ItemBonus, s.tileMap, at.Marker)
	b.Fruit = fruit
	s.bonuses = append(s.bonuses, b)
}

// bonus eats a fruit. The multiplier goes back to the level's base once the
// bonus window has passed; each fruit schedules its own reset.
func (s *Session) bonus(it *Item) {
	if !it.alive {
		return
	}
	it.alive = false
	s.sound.Play(SoundFruit)
	s.Multi *= it.Fruit.Factor()
	s.sched.After(s.cfg.BonusWindow, func() {
		s.Multi = s.profile.Multiplier
	})
}

// powerMode eats a pill and arms pacman's power timer.
func (s *Session) powerMode(it *Item) {
	s.collect(it)
	if !s.active {
		return
	}
	s.pacman.EnablePowerMode(s.profile.PowerModeTime, s.onPowerModeStart, s.onPowerModeEnd)
}

func (s *Session) onPowerModeStart() {
	s.sound.Play(SoundIntermission)
	for _, g := range s.ghosts {
		g.EnableSensitiveMode()
	}
}

func (s *Session) onPowerModeEnd() {
	s.sound.Stop(SoundIntermission)
	s.sound.Play(SoundRegenerate)
	for _, g := range s.ghosts {
		g.DisableSensitiveMode()
	}
}

// meetGhosts resolves pacman touching ghosts in one tick. A powered pacman
// eats every frightened ghost first; any other live ghost then costs a
// single life.
func (s *Session) meetGhosts(touching []*entities.Ghost) {
	if !s.active || !s.pacman.Alive() {
		return
	}
	lethal := false
	for _, g := range touching {
		if !g.Alive() {
			continue
		}
		if g.Mode() == entities.GhostFrightened && s.pacman.Mode == entities.PacmanPower {
			if g.Die() {
				s.addScore(ghostPoints)
			}
			continue
		}
		lethal = true
	}
	if lethal {
		s.loseLife()
	}
}

func (s *Session) loseLife() {
	for _, gh := range s.ghosts {
		gh.Stop()
	}
	s.Lives = max(s.Lives-1, 0)
	s.sound.Stop(SoundIntermission)

	if s.Lives == 0 {
		s.sound.Stop(SoundMunch)
		s.sound.Play(SoundOver)
		s.active = false
		s.pacman.EndPowerMode()
		s.pacman.Stop()
		s.showNotification(banner(msgGameOver))
		return
	}
	s.sound.Play(SoundDeath)
	s.pacman.Die()
	for _, gh := range s.ghosts {
		gh.Respawn()
	}
}
