// ABOUTME: Entry point for the SWF sound player
// ABOUTME: Parses CLI flags and plays a sound file as a static or streaming sound
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/Resonate-Protocol/swfsound-go/internal/app"
	"github.com/Resonate-Protocol/swfsound-go/internal/ui"
	"github.com/Resonate-Protocol/swfsound-go/internal/version"
	"github.com/Resonate-Protocol/swfsound-go/pkg/audio"
	"github.com/Resonate-Protocol/swfsound-go/pkg/audio/output"
	tea "github.com/charmbracelet/bubbletea"
)

var (
	mode        = flag.String("mode", app.ModeStream, "Playback mode: static or stream")
	formatName  = flag.String("format", "pcm-le", "Sound format: pcm-be, pcm-le, adpcm, mp3, nellymoser, speex")
	rate        = flag.Int("rate", 3, "Sample rate index: 0=5512 1=11250 2=22500 3=44100")
	size        = flag.Int("size", 16, "Bits per sample: 8 or 16")
	stereo      = flag.Bool("stereo", false, "Input is stereo (PCM: static mode only)")
	samples     = flag.Int("samples", 0, "Sample frames of a static sound (default: derived from the data)")
	fps         = flag.Float64("fps", 25, "Timeline frame rate")
	logFile     = flag.String("log-file", "swfsound.log", "Log file path")
	noTUI       = flag.Bool("no-tui", false, "Disable TUI, use streaming logs instead")
	showVersion = flag.Bool("version", false, "Print version and exit")
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [flags] <file>\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if *showVersion {
		fmt.Printf("%s %s (%s)\n", version.Product, version.Version, version.Manufacturer)
		return
	}

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}
	path := flag.Arg(0)

	format, err := audio.ParseSoundFormat(*formatName)
	if err != nil {
		log.Fatalf("Invalid -format: %v", err)
	}

	useTUI := !*noTUI

	// Set up logging
	f, err := os.OpenFile(*logFile, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666)
	if err != nil {
		log.Fatalf("error opening log file: %v", err)
	}
	defer func() { _ = f.Close() }()

	if useTUI {
		// TUI mode: log only to file
		log.SetOutput(f)
	} else {
		// Streaming logs mode: log to both stdout and file
		log.SetOutput(io.MultiWriter(os.Stdout, f))
		log.Printf("Starting %s %s", version.Product, version.Version)
	}

	factory, err := output.NewOtoFactory()
	if err != nil {
		log.Fatalf("Failed to open audio device: %v", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// TUI setup
	var tuiProg *tea.Program
	tuiDone := make(chan struct{})

	if useTUI {
		tuiProg = ui.Run()
		go func() {
			defer close(tuiDone)
			if _, err := tuiProg.Run(); err != nil {
				log.Printf("TUI error: %v", err)
			}
			// quitting the TUI stops playback
			cancel()
		}()
	} else {
		close(tuiDone)
	}

	player := app.New(app.Config{
		Mode:         *mode,
		Format:       format,
		Rate:         *rate,
		Size:         *size,
		Stereo:       *stereo,
		SamplesCount: *samples,
		FrameRate:    *fps,
		Factory:      factory,
		OnStatus: func(st app.Status) {
			if tuiProg != nil {
				tuiProg.Send(statusMsg(st))
			}
		},
	})

	runErr := player.Run(ctx, path)
	if runErr != nil {
		log.Printf("Playback failed: %v", runErr)
	}

	if tuiProg != nil {
		tuiProg.Quit()
	}
	<-tuiDone

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", runErr)
		os.Exit(1)
	}
	log.Printf("Player stopped")
}

// statusMsg converts a player status to a TUI update
func statusMsg(st app.Status) ui.StatusMsg {
	return ui.StatusMsg{
		Mode:        st.Mode,
		Format:      st.Format.String(),
		SampleRate:  st.SampleRate,
		Channels:    st.Channels,
		BitDepth:    st.BitDepth,
		Title:       st.Title,
		Artist:      st.Artist,
		Frame:       st.Frame,
		TotalFrames: st.TotalFrames,
		TargetTime:  st.TargetTime,
		ElementTime: st.ElementTime,
		Skip:        st.Skip,
		SyncQuality: st.Sync.Quality,
		Corrections: st.Sync.Corrections,
		MaxDrift:    st.Sync.MaxDrift,
		LastDrift:   st.Sync.LastDrift,
		Done:        st.Done,
	}
}
