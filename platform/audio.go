package platform

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/audio/vorbis"
	"github.com/hajimehoshi/ebiten/v2/audio/wav"
	"github.com/plus3/asteroids/game"
)

const SampleRate = 44100

// Audio plays the bullet sound pool. Sounds are decoded to PCM up front so
// Play never touches the filesystem.
type Audio struct {
	context *audio.Context
	sounds  [][]byte
	logger  *slog.Logger
}

func NewAudio(logger *slog.Logger) *Audio {
	context := audio.CurrentContext()
	if context == nil {
		context = audio.NewContext(SampleRate)
	}
	return &Audio{context: context, logger: logger}
}

// Load decodes every file in paths, resolved against dir, replacing the
// current pool. Files that fail to load are left out of the pool and
// reported in the returned error.
func (a *Audio) Load(dir string, paths []string) error {
	sounds := make([][]byte, 0, len(paths))
	var errs []error
	for _, path := range paths {
		pcm, err := loadSound(ResolvePath(dir, path), a.context.SampleRate())
		if err != nil {
			errs = append(errs, err)
			continue
		}
		sounds = append(sounds, pcm)
	}

	a.sounds = sounds
	a.logger.Debug("sounds loaded", "count", len(sounds), "failed", len(errs))
	return errors.Join(errs...)
}

// Len returns the number of playable sounds.
func (a *Audio) Len() int {
	return len(a.sounds)
}

func (a *Audio) Play(sound game.SoundID) {
	if int(sound) < 0 || int(sound) >= len(a.sounds) {
		return
	}
	a.context.NewPlayerFromBytes(a.sounds[sound]).Play()
}

func loadSound(path string, sampleRate int) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading sound: %w", err)
	}
	return decodeSound(path, data, sampleRate)
}

// decodeSound converts a wav or ogg file into PCM at sampleRate.
func decodeSound(name string, data []byte, sampleRate int) ([]byte, error) {
	var stream io.Reader
	var err error

	switch strings.ToLower(filepath.Ext(name)) {
	case ".wav":
		stream, err = wav.DecodeWithSampleRate(sampleRate, bytes.NewReader(data))
	case ".ogg":
		stream, err = vorbis.DecodeWithSampleRate(sampleRate, bytes.NewReader(data))
	default:
		return nil, fmt.Errorf("decode %q: unsupported sound format", name)
	}
	if err != nil {
		return nil, fmt.Errorf("decode %q: %w", name, err)
	}

	pcm, err := io.ReadAll(stream)
	if err != nil {
		return nil, fmt.Errorf("decode %q: %w", name, err)
	}
	return pcm, nil
}
