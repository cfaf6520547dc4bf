package templates

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"ai-resumelab-be/internal/apperr"

	"github.com/patrickmn/go-cache"
)

var idRe = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

// Loader reads .tex seed templates from a directory, keyed by a sanitized
// id. Templates only change on deploy, so loads are cached.
type Loader struct {
	dir   string
	cache *cache.Cache
}

func NewLoader(dir string) *Loader {
	return &Loader{
		dir:   dir,
		cache: cache.New(10*time.Minute, 30*time.Minute),
	}
}

// SanitizeID returns id when it is safe to use as a file name, "" otherwise.
func SanitizeID(id string) string {
	if idRe.MatchString(id) {
		return id
	}
	return ""
}

// Load returns the template content for id. Unsafe ids are rejected before
// touching the filesystem.
func (l *Loader) Load(id string) (string, error) {
	safe := SanitizeID(id)
	if safe == "" {
		return "", &apperr.InvalidInputError{Field: "template id", Reason: "must match [a-zA-Z0-9_-]+"}
	}

	if x, found := l.cache.Get(safe); found {
		return x.(string), nil
	}

	file := filepath.Join(l.dir, safe+".tex")
	// Traversal guard. SanitizeID already forbids separators, this catches
	// surprises from a hostile dir value.
	if !strings.HasPrefix(file, filepath.Clean(l.dir)) {
		return "", &apperr.InvalidInputError{Field: "template id", Reason: "resolves outside templates dir"}
	}

	content, err := os.ReadFile(file)
	if err != nil {
		return "", err
	}

	l.cache.Set(safe, string(content), cache.DefaultExpiration)
	return string(content), nil
}
