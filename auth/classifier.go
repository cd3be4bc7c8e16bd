package auth

import (
	"path"
	"strings"
)

// PathClass is the access category a request path falls into.
type PathClass int

const (
	PathOther     PathClass = iota // Not gated, no identity consulted
	PathPublic                     // Login, registration and auth callbacks
	PathProtected                  // Pages and APIs requiring a session
	PathAdmin                      // Admin console
)

func (c PathClass) String() string {
	switch c {
	case PathPublic:
		return "public"
	case PathProtected:
		return "protected"
	case PathAdmin:
		return "admin"
	default:
		return "other"
	}
}

// exactSuffix marks a path set entry that matches only the literal path.
const exactSuffix = "$"

// PathSets holds the ordered prefix lists used for classification.
// An entry ending in "/" covers a directory and everything below it; an entry
// ending in "$" matches its path exactly instead of as a prefix.
type PathSets struct {
	Public    []string
	Protected []string
	Admin     []string
}

// Classifier maps request paths to a PathClass. It is immutable once built.
type Classifier struct {
	public    []string
	protected []string
	admin     []string
}

func NewClassifier(sets PathSets) *Classifier {
	return &Classifier{
		public:    normalizeEntries(sets.Public),
		protected: normalizeEntries(sets.Protected),
		admin:     normalizeEntries(sets.Admin),
	}
}

// Classify evaluates the admin set first, then public, then protected.
func (c *Classifier) Classify(requestPath string) PathClass {
	p := NormalizePath(requestPath)
	switch {
	case matchAny(c.admin, p):
		return PathAdmin
	case matchAny(c.public, p):
		return PathPublic
	case matchAny(c.protected, p):
		return PathProtected
	default:
		return PathOther
	}
}

// NormalizePath cleans a request path so "/admin/../lobby" and "//lobby" classify as "/lobby".
func NormalizePath(p string) string {
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return path.Clean(p)
}

func normalizeEntries(entries []string) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		e = strings.TrimSpace(e)
		if e == "" {
			continue
		}
		exact := strings.HasSuffix(e, exactSuffix)
		e = strings.TrimSuffix(e, exactSuffix)
		dir := !exact && len(e) > 1 && strings.HasSuffix(e, "/")
		e = NormalizePath(e)
		switch {
		case exact:
			e += exactSuffix
		case dir && e != "/":
			e += "/"
		}
		out = append(out, e)
	}
	return out
}

// matchAny reports whether p matches one of the entries. A plain entry is a prefix,
// an entry ending in "/" also matches the bare directory, and an entry ending in "$"
// matches only itself.
func matchAny(entries []string, p string) bool {
	for _, e := range entries {
		if exact, ok := strings.CutSuffix(e, exactSuffix); ok {
			if p == exact {
				return true
			}
			continue
		}
		if strings.HasPrefix(p, e) {
			return true
		}
		if dir, ok := strings.CutSuffix(e, "/"); ok && dir != "" && p == dir {
			return true
		}
	}
	return false
}
