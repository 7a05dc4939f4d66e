package game

type Sound int

const (
	SoundIntro Sound = iota
	SoundMunch
	SoundFruit
	SoundIntermission
	SoundRegenerate
	SoundDeath
	SoundOver
	SoundWin

	soundCount
)

var soundNames = [soundCount]string{
	"intro", "munch", "fruit", "intermission", "regenerate", "death", "over", "win",
}

func (s Sound) String() string {
	if s < 0 || s >= soundCount {
		return "unknown"
	}
	return soundNames[s]
}

// Sounds lists every sound effect, in declaration order.
func Sounds() []Sound {
	out := make([]Sound, 0, soundCount)
	for s := Sound(0); s < soundCount; s++ {
		out = append(out, s)
	}
	return out
}

// SoundPlayer plays the game's sound effects. Hosts without audio pass nil.
type SoundPlayer interface {
	Play(Sound)
	Stop(Sound)
	SetMuted(bool)
}

type silence struct{}

func (silence) Play(Sound)    {}
func (silence) Stop(Sound)    {}
func (silence) SetMuted(bool) {}
