// ABOUTME: Player application driving sounds from an input file
// ABOUTME: Acts as tag source and frame timeline for static and streaming playback
package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"os"
	"time"

	"github.com/Resonate-Protocol/swfsound-go/pkg/audio"
	"github.com/Resonate-Protocol/swfsound-go/pkg/audio/decode"
	"github.com/Resonate-Protocol/swfsound-go/pkg/audio/output"
	"github.com/Resonate-Protocol/swfsound-go/pkg/playback"
	"github.com/Resonate-Protocol/swfsound-go/pkg/sound"
	avsync "github.com/Resonate-Protocol/swfsound-go/pkg/sync"
)

// Playback modes
const (
	ModeStatic = "static"
	ModeStream = "stream"
)

var (
	// ErrNoBlocks is returned when the input yields nothing to stream
	ErrNoBlocks = errors.New("input produced no stream blocks")

	// ErrStereoPCMStream is returned for stereo PCM in stream mode: stream
	// times divide seek offsets by the channel count, so a stereo PCM
	// timeline would run at twice the audio rate.
	ErrStereoPCMStream = errors.New("stereo PCM can only be played in static mode")
)

// Config holds player configuration
type Config struct {
	Mode         string
	Format       audio.SoundFormat
	Rate         int // sample-rate table index
	Size         int // 8 or 16
	Stereo       bool
	SamplesCount int // static sounds; 0 derives it from the data
	FrameRate    float64

	Factory  output.Factory
	OnStatus func(Status)
}

// Status is reported once per timeline tick
type Status struct {
	Mode        string
	Format      audio.SoundFormat
	SampleRate  int
	Channels    int
	BitDepth    int
	Title       string
	Artist      string
	Frame       int
	TotalFrames int
	TargetTime  float64
	ElementTime float64
	Skip        int
	Sync        avsync.Stats
	Done        bool
}

// Player plays one input through the sound pipeline
type Player struct {
	config  Config
	manager *playback.Manager
}

// New creates a new player
func New(config Config) *Player {
	if config.FrameRate <= 0 {
		config.FrameRate = avsync.DefaultFrameRate
	}
	if config.Mode == "" {
		config.Mode = ModeStream
	}
	if config.Size == 0 {
		config.Size = sound.SoundSize16Bit
	}

	return &Player{
		config:  config,
		manager: playback.NewManager(),
	}
}

// Run plays the file at path until it ends or ctx is cancelled
func (p *Player) Run(ctx context.Context, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}

	meta := Metadata{}
	if p.config.Format == audio.MP3 {
		meta = ReadMetadata(path)
		data = StripID3(data)
	}

	return p.RunData(ctx, data, meta)
}

// RunData plays raw sound data until it ends or ctx is cancelled
func (p *Player) RunData(ctx context.Context, data []byte, meta Metadata) error {
	if p.config.Factory == nil {
		return errors.New("no sound factory configured")
	}
	defer p.manager.StopAll()

	switch p.config.Mode {
	case ModeStatic:
		return p.runStatic(ctx, data, meta)
	case ModeStream:
		return p.runStream(ctx, data, meta)
	default:
		return fmt.Errorf("unknown mode: %s", p.config.Mode)
	}
}

func (p *Player) channels() int {
	if p.config.Stereo {
		return 2
	}
	return 1
}

func (p *Player) baseStatus(meta Metadata) Status {
	rate, _ := audio.SampleRateForIndex(p.config.Rate)
	return Status{
		Mode:       p.config.Mode,
		Format:     p.config.Format,
		SampleRate: rate,
		Channels:   p.channels(),
		BitDepth:   p.config.Size,
		Title:      meta.Title,
		Artist:     meta.Artist,
	}
}

func (p *Player) report(st Status) {
	if p.config.OnStatus != nil {
		p.config.OnStatus(st)
	}
}

// staticSamplesCount derives the sample frame count a static tag would carry
func (p *Player) staticSamplesCount(data []byte) int {
	if p.config.SamplesCount > 0 {
		return p.config.SamplesCount
	}
	switch p.config.Format {
	case audio.ADPCM:
		return decode.ADPCMSampleCount(data, p.channels())
	case audio.PCMBigEndian, audio.PCMLittleEndian:
		return len(data) / (p.channels() * p.config.Size / 8)
	}
	return 0
}

func (p *Player) runStatic(ctx context.Context, data []byte, meta Metadata) error {
	if p.config.Format == audio.MP3 {
		// static MP3 payloads carry a 2-byte seek prefix
		data = append([]byte{0, 0}, data...)
	}

	def := sound.Define(sound.SoundTag{
		ID:           1,
		Format:       p.config.Format,
		Rate:         p.config.Rate,
		Size:         p.config.Size,
		Stereo:       p.config.Stereo,
		SamplesCount: p.staticSamplesCount(data),
		Data:         data,
	})
	if def.Packaged == nil {
		return fmt.Errorf("static sound: %w: %s", decode.ErrUnsupportedFormat, p.config.Format)
	}

	snd, err := p.config.Factory.NewSound(*def.Packaged)
	if err != nil {
		return fmt.Errorf("failed to create sound: %w", err)
	}
	defer func() { _ = snd.Close() }()

	if err := snd.Play(0); err != nil {
		return fmt.Errorf("failed to play sound: %w", err)
	}
	p.manager.AddActive(snd)
	log.Printf("Playing static %s sound: %dHz %dch", p.config.Format, def.SampleRate, def.Channels)

	ticker := time.NewTicker(p.frameInterval())
	defer ticker.Stop()

	st := p.baseStatus(meta)
	for frame := 0; ; frame++ {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}

		st.Frame = frame
		st.TargetTime = float64(frame) / p.config.FrameRate
		st.ElementTime = snd.CurrentTime()
		if !snd.IsPlaying() {
			st.Done = true
			p.report(st)
			return nil
		}
		p.report(st)
	}
}

// streamBlocks slices the input the way a container would store it
func (p *Player) streamBlocks(data []byte) ([][]byte, int, error) {
	rate, ok := audio.SampleRateForIndex(p.config.Rate)
	if !ok {
		return nil, 0, fmt.Errorf("invalid rate index %d", p.config.Rate)
	}

	switch p.config.Format {
	case audio.PCMBigEndian, audio.PCMLittleEndian:
		if p.config.Stereo {
			return nil, 0, ErrStereoPCMStream
		}
		spf := SamplesPerFrame(rate, p.config.FrameRate)
		frameSize := p.channels() * p.config.Size / 8
		return PCMBlocks(data, spf, frameSize), spf, nil
	case audio.MP3:
		info, err := output.Probe(audio.Packaged{Data: data, MimeType: audio.MimeMPEG})
		if err != nil {
			return nil, 0, fmt.Errorf("failed to probe MP3 input: %w", err)
		}
		if info.SampleRate != rate {
			log.Printf("Warning: MP3 input is %dHz but the stream head says %dHz", info.SampleRate, rate)
		}
		spf := int(float64(rate) / p.config.FrameRate)
		count := int(math.Ceil(info.Duration() * p.config.FrameRate))
		return MP3Blocks(data, count, spf), spf, nil
	case audio.ADPCM:
		return nil, 0, errors.New("adpcm input can only be played in static mode")
	default:
		return nil, 0, fmt.Errorf("stream: %w: %s", decode.ErrUnsupportedFormat, p.config.Format)
	}
}

func (p *Player) runStream(ctx context.Context, data []byte, meta Metadata) error {
	blocks, spf, err := p.streamBlocks(data)
	if err != nil {
		return err
	}
	if len(blocks) == 0 {
		return ErrNoBlocks
	}

	stream := playback.NewStream(sound.StreamHead{
		Compression:  p.config.Format,
		Rate:         p.config.Rate,
		Size:         p.config.Size,
		Stereo:       p.config.Stereo,
		SamplesCount: spf,
	}, playback.Config{
		FrameRate: p.config.FrameRate,
		Factory:   p.config.Factory,
		Manager:   p.manager,
	})
	defer stream.SetStopped(true)

	for frame, block := range blocks {
		stream.AppendBlock(frame, block)
	}
	log.Printf("Streaming %d blocks of %s audio at %.1f fps", len(blocks), p.config.Format, p.config.FrameRate)

	ticker := time.NewTicker(p.frameInterval())
	defer ticker.Stop()

	st := p.baseStatus(meta)
	st.TotalFrames = len(blocks)
	frame := 0
	for frame < len(blocks) {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}

		skip := stream.PlayFrame(frame)
		if skip != 0 {
			log.Printf("Frame %d: audio drift of %d frames", frame, skip)
		}

		st.Frame = frame
		st.TargetTime, _ = stream.Sound().TimeForFrame(frame)
		st.ElementTime = st.TargetTime + stream.Stats().LastDrift
		st.Skip = skip
		st.Sync = stream.Stats()
		p.report(st)

		frame = NextFrame(frame, skip)
	}

	st.Done = true
	p.report(st)
	return nil
}

func (p *Player) frameInterval() time.Duration {
	return time.Duration(float64(time.Second) / p.config.FrameRate)
}
