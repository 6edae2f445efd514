//go:build !ci

package sound

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/gopxl/beep/v2/generators"
	"github.com/gopxl/beep/v2/mp3"
	"github.com/gopxl/beep/v2/speaker"
	"github.com/gopxl/beep/v2/wav"
)

const sampleRate = beep.SampleRate(44100)

// 内置音效：频率 (Hz) 与时长
var tones = map[string]struct {
	freq float64
	dur  time.Duration
}{
	Deal:      {880, 40 * time.Millisecond},
	Correct:   {1320, 120 * time.Millisecond},
	Wrong:     {220, 200 * time.Millisecond},
	Exhausted: {440, 300 * time.Millisecond},
}

type SoundManager struct {
	dir    string
	output func(...beep.Streamer)

	// Play 在界面协程调用，Init 可能在别的协程
	mu      sync.RWMutex
	buffers map[string]*beep.Buffer
	enabled bool
}

// NewSoundManager creates a disabled manager. Files in dir override the
// built-in tones by base name.
func NewSoundManager(dir string) *SoundManager {
	return &SoundManager{
		dir:     dir,
		output:  speaker.Play,
		buffers: make(map[string]*beep.Buffer),
	}
}

// Init opens the speaker and loads every effect. Play stays silent until all
// buffers are ready.
func (sm *SoundManager) Init() error {
	// Init speaker with smaller buffer for lower latency
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		return fmt.Errorf("failed to initialize speaker: %w", err)
	}

	buffers := make(map[string]*beep.Buffer)
	if err := sm.synthesize(buffers); err != nil {
		return err
	}
	if err := sm.loadSoundFiles(buffers); err != nil {
		return err
	}
	sm.publish(buffers)
	return nil
}

func (sm *SoundManager) publish(buffers map[string]*beep.Buffer) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.buffers = buffers
	sm.enabled = true
}

func standardFormat() beep.Format {
	return beep.Format{
		SampleRate:  sampleRate,
		NumChannels: 2,
		Precision:   4,
	}
}

// synthesize 生成内置的短促音
func (sm *SoundManager) synthesize(buffers map[string]*beep.Buffer) error {
	for name, tone := range tones {
		sine, err := generators.SineTone(sampleRate, tone.freq)
		if err != nil {
			return fmt.Errorf("failed to generate %s tone: %w", name, err)
		}
		quiet := &effects.Gain{Streamer: sine, Gain: -0.7}

		buffer := beep.NewBuffer(standardFormat())
		buffer.Append(beep.Take(sampleRate.N(tone.dur), quiet))
		buffers[name] = buffer
	}
	return nil
}

// loadSoundFiles loads mp3 and wav files from the configured directory
func (sm *SoundManager) loadSoundFiles(buffers map[string]*beep.Buffer) error {
	if sm.dir == "" {
		return nil
	}
	files, err := os.ReadDir(sm.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read sound directory: %w", err)
	}

	for _, file := range files {
		if file.IsDir() {
			continue
		}
		name := file.Name()
		ext := strings.ToLower(filepath.Ext(name))
		if ext != ".mp3" && ext != ".wav" {
			continue
		}
		// 单个文件失败不影响其他音效
		_ = sm.loadSoundFile(buffers, name, strings.TrimSuffix(name, filepath.Ext(name)), ext)
	}
	return nil
}

func (sm *SoundManager) loadSoundFile(buffers map[string]*beep.Buffer, name, baseName, ext string) error {
	f, err := os.Open(filepath.Clean(filepath.Join(sm.dir, name)))
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	var streamer beep.StreamSeekCloser
	var format beep.Format

	switch ext {
	case ".mp3":
		streamer, format, err = mp3.Decode(f)
	case ".wav":
		streamer, format, err = wav.Decode(f)
	}
	if err != nil {
		return err
	}
	defer func() { _ = streamer.Close() }()

	var resampled beep.Streamer = streamer
	if format.SampleRate != sampleRate {
		resampled = beep.Resample(4, format.SampleRate, sampleRate, streamer)
	}

	buffer := beep.NewBuffer(standardFormat())
	buffer.Append(resampled)
	buffers[baseName] = buffer
	return nil
}

func (sm *SoundManager) Play(name string) {
	sm.mu.RLock()
	buffer, ok := sm.buffers[name]
	enabled := sm.enabled
	sm.mu.RUnlock()
	if !enabled || !ok {
		return
	}
	sm.output(buffer.Streamer(0, buffer.Len()))
}

func (sm *SoundManager) Close() {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.enabled = false
}
