// Package audio locates the recording file for a lecture on disk. Files are
// named by hand when they are dropped into the audio directory, so lookup
// tries a few naming conventions before giving up.
package audio

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ckearl/senahpark.com/db"
)

// ErrNotFound is returned when no file in the audio directory matches any
// naming convention for the lecture.
var ErrNotFound = errors.New("audio: file not found")

// Extensions lists the audio formats tried for each candidate name.
var Extensions = []string{".mp3", ".m4a", ".wav", ".ogg"}

// Resolver finds audio files under a single directory.
type Resolver struct {
	dir string
}

// NewResolver returns a Resolver rooted at dir.
func NewResolver(dir string) *Resolver {
	return &Resolver{dir: dir}
}

// Dir returns the directory the resolver searches.
func (r *Resolver) Dir() string {
	return r.dir
}

// Resolve returns the path of the lecture's audio file. Candidates are tried
// in order and the first existing file wins. The returned error wraps
// ErrNotFound when nothing matches.
func (r *Resolver) Resolve(lec db.Lecture) (string, error) {
	for _, name := range Candidates(lec) {
		for _, ext := range Extensions {
			path := filepath.Join(r.dir, name+ext)
			if info, err := os.Stat(path); err == nil && !info.IsDir() {
				return path, nil
			}
		}
	}
	return "", fmt.Errorf("%w: no file for %q in %s", ErrNotFound, lec.Title, r.dir)
}

// Candidates returns the basenames (without extension) tried for a lecture,
// most specific first. Duplicates are dropped.
func Candidates(lec db.Lecture) []string {
	title := Sanitize(lec.Title)
	class := Sanitize(lec.ClassNumber)
	date := lec.Date

	raw := []string{
		date + "_" + title,
		date + "_" + class + "_" + title,
		date + "_" + class,
		title,
	}

	seen := make(map[string]bool)
	var out []string
	for _, name := range raw {
		name = strings.Trim(name, "_")
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		out = append(out, name)
	}
	return out
}

// Sanitize converts free-form text into a filename token: lowercase, with
// runs of anything outside [a-z0-9] collapsed to single underscores.
func Sanitize(s string) string {
	var b strings.Builder
	lastUnderscore := true
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastUnderscore = false
		default:
			if !lastUnderscore {
				b.WriteByte('_')
				lastUnderscore = true
			}
		}
	}
	return strings.Trim(b.String(), "_")
}
