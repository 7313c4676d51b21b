// ABOUTME: Headless drift check for streaming sounds
// ABOUTME: Plays a stream against the wall-clock sound with a skewed clock and prints every correction
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Resonate-Protocol/swfsound-go/internal/app"
	"github.com/Resonate-Protocol/swfsound-go/pkg/audio"
	"github.com/Resonate-Protocol/swfsound-go/pkg/audio/output"
)

var (
	formatName = flag.String("format", "pcm-le", "Sound format of the input file")
	rate       = flag.Int("rate", 1, "Sample rate index: 0=5512 1=11250 2=22500 3=44100")
	size       = flag.Int("size", 16, "Bits per sample: 8 or 16")
	stereo     = flag.Bool("stereo", false, "Input is stereo (MP3 only; stereo PCM streams are rejected)")
	fps        = flag.Float64("fps", 25, "Timeline frame rate")
	skew       = flag.Float64("skew", 1.02, "Audio clock speed relative to wall time")
	seconds    = flag.Float64("seconds", 4, "Length of generated silence when no file is given")
)

func main() {
	flag.Parse()

	log.SetFlags(log.Ltime | log.Lmicroseconds)

	format, err := audio.ParseSoundFormat(*formatName)
	if err != nil {
		log.Fatalf("Invalid -format: %v", err)
	}

	fmt.Println("=== Drift Check ===")
	fmt.Printf("Audio clock runs at %.3fx wall time, timeline at %.1f fps\n", *skew, *fps)
	fmt.Println()
	fmt.Printf("%6s %10s %10s %6s %s\n", "frame", "target", "audio", "skip", "quality")

	factory := &output.ClockFactory{Now: time.Now, Speed: *skew}
	player := app.New(app.Config{
		Mode:      app.ModeStream,
		Format:    format,
		Rate:      *rate,
		Size:      *size,
		Stereo:    *stereo,
		FrameRate: *fps,
		Factory:   factory,
		OnStatus: func(st app.Status) {
			if st.Done {
				fmt.Printf("\n%d frames, %d corrections, max drift %.1fms\n",
					st.TotalFrames, st.Sync.Corrections, st.Sync.MaxDrift*1000)
				return
			}
			fmt.Printf("%6d %10.3f %10.3f %+6d %s\n",
				st.Frame, st.TargetTime, st.ElementTime, st.Skip, st.Sync.Quality)
		},
	})

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if flag.NArg() > 0 {
		err = player.Run(ctx, flag.Arg(0))
	} else {
		err = player.RunData(ctx, silence(format), app.Metadata{Title: "silence"})
	}
	if err != nil {
		log.Printf("Drift check failed: %v", err)
		os.Exit(1)
	}
}

// silence generates PCM for the configured layout
func silence(format audio.SoundFormat) []byte {
	if format == audio.MP3 || format == audio.ADPCM {
		log.Fatalf("Generated input is PCM only; pass a %s file instead", format)
	}

	hz, ok := audio.SampleRateForIndex(*rate)
	if !ok {
		log.Fatalf("Invalid -rate: %d", *rate)
	}
	channels := 1
	if *stereo {
		channels = 2
	}

	frames := int(float64(hz) * *seconds)
	data := make([]byte, frames*channels*(*size/8))
	if *size == 8 {
		// unsigned 8-bit silence
		for i := range data {
			data[i] = 0x80
		}
	}
	return data
}
