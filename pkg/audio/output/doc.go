// ABOUTME: Platform sound package for playing packaged audio
// ABOUTME: Provides the Sound handle interface plus oto and clock backends
// Package output provides the platform sound primitive the playback
// adapters drive.
//
// A Factory turns one packaged buffer (WAV or MP3) into a Sound handle.
// Two backends exist: an oto-backed device sound and a wall-clock sound
// that only tracks time.
//
// Example:
//
//	f, err := output.NewOtoFactory()
//	snd, err := f.NewSound(packaged)
//	err = snd.Play(0)
//	t := snd.CurrentTime()
package output
