//go:build ci

package sound

type SoundManager struct{}

func NewSoundManager(string) *SoundManager {
	return &SoundManager{}
}

func (sm *SoundManager) Init() error {
	return nil
}

func (sm *SoundManager) Has(string) bool {
	return false
}

func (sm *SoundManager) Play(string) {
	// No-op
}

func (sm *SoundManager) Close() {
	// No-op
}
