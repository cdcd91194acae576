package asset

import (
	"io/fs"
	"path"
	"strings"

	"golang.org/x/exp/slices"
)

const (
	BackgroundDir = "assets/backgrounds"
	PeopleDir     = "assets/people"
)

var defaultBackgrounds = []Path{
	"assets/background1.jpg",
	"assets/background2.jpg",
	"assets/background3.webp",
}

var defaultPeople = []Path{
	"assets/chill-guy.png",
}

// Backgrounds lists the selectable background images: the built-in set
// followed by any images found under BackgroundDir.
func Backgrounds() []Path {
	return catalog(defaultBackgrounds, BackgroundDir)
}

// People lists the selectable overlay images, like Backgrounds.
func People() []Path {
	return catalog(defaultPeople, PeopleDir)
}

func catalog(defaults []Path, dir string) []Path {
	out := slices.Clone(defaults)
	found, err := discover(dir)
	if err != nil {
		log().Warn("asset: catalog discovery failed", "dir", dir, "err", err)
	}
	for _, p := range found {
		if !slices.Contains(out, p) {
			out = append(out, p)
		}
	}
	return out
}

// discover returns the decodable images directly below dir in every
// registered file system, sorted by path. Only the directories leading to
// dir are entered.
func discover(dir string) ([]Path, error) {
	var found []Path
	err := WalkFiles(func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if p == "." || p == dir || strings.HasPrefix(dir, p+"/") {
				return nil
			}
			return fs.SkipDir
		}
		if path.Dir(p) != dir || !IsImage(p) {
			return nil
		}
		if !slices.Contains(found, Path(p)) {
			found = append(found, Path(p))
		}
		return nil
	})
	slices.Sort(found)
	return found, err
}

var imageExtensions = []string{".png", ".jpg", ".jpeg", ".webp"}

// IsImage reports whether name has an extension Decode understands.
func IsImage(name string) bool {
	return slices.Contains(imageExtensions, strings.ToLower(path.Ext(name)))
}
