// ABOUTME: Input file metadata and ID3 handling
// ABOUTME: Reads titles with id3v2 and strips ID3v2 tags ahead of MP3 frames
package app

import (
	"path/filepath"
	"strings"

	"github.com/bogem/id3v2/v2"
)

const id3HeaderSize = 10

// Metadata holds song information.
type Metadata struct {
	Title  string
	Artist string
	Album  string
}

// ReadMetadata reads ID3v2 tags from a file, falling back to the filename.
func ReadMetadata(path string) Metadata {
	tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err == nil {
		defer tag.Close()
		m := Metadata{
			Title:  strings.TrimSpace(tag.Title()),
			Artist: strings.TrimSpace(tag.Artist()),
			Album:  strings.TrimSpace(tag.Album()),
		}
		if m.Title != "" {
			return m
		}
	}

	base := filepath.Base(path)
	return Metadata{
		Title: strings.TrimSuffix(base, filepath.Ext(base)),
	}
}

// StripID3 returns data without a leading ID3v2 tag.
// The tag size is a 28-bit synchsafe integer excluding the 10-byte header;
// a footer adds another 10 bytes when flag 0x10 is set.
func StripID3(data []byte) []byte {
	if len(data) < id3HeaderSize || string(data[:3]) != "ID3" {
		return data
	}

	size := int(data[6]&0x7f)<<21 | int(data[7]&0x7f)<<14 | int(data[8]&0x7f)<<7 | int(data[9]&0x7f)
	end := id3HeaderSize + size
	if data[5]&0x10 != 0 {
		end += id3HeaderSize
	}
	if end > len(data) {
		return data[:0]
	}
	return data[end:]
}
