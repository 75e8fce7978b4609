package pathsvc

import (
	"fmt"
	"strings"
	"sync"

	"github.com/golang/groupcache/lru"
	"github.com/pkg/errors"

	"github.com/zerofs-dev/zerofs/name"
	"github.com/zerofs-dev/zerofs/pathtype"
)

// parseCacheSize bounds the LRU cache of recently parsed path strings.
const parseCacheSize = 4096

// Service implements PathService: it is configured with a
// PathType, ordered display/canonical normalization chains, and whether
// equality uses the canonical form.
type Service struct {
	pathType      pathtype.PathType
	displayNorm   []name.Normalization
	canonicalNorm []name.Normalization
	canonicalEq   bool

	cacheMu sync.Mutex
	cache   *lru.Cache
}

type cacheKey string

// NewService constructs a PathService. canonicalEquality selects whether
// path comparison uses canonical or display name forms.
func NewService(pt pathtype.PathType, displayNorm, canonicalNorm []name.Normalization, canonicalEquality bool) *Service {
	return &Service{
		pathType:      pt,
		displayNorm:   displayNorm,
		canonicalNorm: canonicalNorm,
		canonicalEq:   canonicalEquality,
		cache:         lru.New(parseCacheSize),
	}
}

// PathType returns the configured path grammar.
func (s *Service) PathType() pathtype.PathType { return s.pathType }

// Name constructs a Name from a raw path-component string, applying the
// configured normalization chains.
func (s *Service) Name(raw string) name.Name {
	return name.New(raw, s.displayNorm, s.canonicalNorm)
}

func (s *Service) nameEqual(a, b name.Name) bool {
	if s.canonicalEq {
		return a.EqualCanonical(b)
	}
	return a.EqualDisplay(b)
}

func (s *Service) nameForm(n name.Name) string {
	if s.canonicalEq {
		return n.Canonical()
	}
	return n.Display()
}

// ParsePath joins non-empty segments with
// the path type's separator, then delegates to the PathType, then converts
// each returned name string into a Name.
func (s *Service) ParsePath(first string, more ...string) (Path, error) {
	segments := make([]string, 0, 1+len(more))
	if first != "" {
		segments = append(segments, first)
	}
	for _, m := range more {
		if m != "" {
			segments = append(segments, m)
		}
	}
	joined := strings.Join(segments, string(s.pathType.Separator()))

	key := cacheKey(joined)
	s.cacheMu.Lock()
	if cached, ok := s.cache.Get(key); ok {
		s.cacheMu.Unlock()
		return cached.(Path), nil
	}
	s.cacheMu.Unlock()

	rootStr, nameStrs, err := s.pathType.ParsePath(joined)
	if err != nil {
		return Path{}, errors.Wrap(err, "unable to parse path")
	}

	var rootName *name.Name
	if rootStr != "" {
		r := s.Name(rootStr)
		rootName = &r
	}

	names := make([]name.Name, 0, len(nameStrs))
	for _, n := range nameStrs {
		nm := s.Name(n)
		if nm.IsEmpty() {
			continue
		}
		names = append(names, nm)
	}
	if rootName == nil && len(names) == 0 {
		names = []name.Name{name.EMPTY}
	}

	p := Path{service: s, root: rootName, names: names}

	s.cacheMu.Lock()
	s.cache.Add(key, p)
	s.cacheMu.Unlock()

	return p, nil
}

// NewPath builds a Path directly from a root flag and a list of Names,
// bypassing string parsing. Used internally by the tree/view layers when
// assembling resolved paths.
func (s *Service) NewPath(root *name.Name, names []name.Name) Path {
	return Path{service: s, root: root, names: append([]name.Name{}, names...)}
}

// Compare orders paths lexicographically on root then
// names, using the configured name form.
func (s *Service) Compare(a, b Path) int {
	if a.service != b.service {
		panic("paths belong to different services")
	}
	if (a.root == nil) != (b.root == nil) {
		if a.root == nil {
			return -1
		}
		return 1
	}
	if a.root != nil {
		if c := strings.Compare(s.nameForm(*a.root), s.nameForm(*b.root)); c != 0 {
			return c
		}
	}
	for i := 0; i < len(a.names) && i < len(b.names); i++ {
		if c := strings.Compare(s.nameForm(a.names[i]), s.nameForm(b.names[i])); c != 0 {
			return c
		}
	}
	return len(a.names) - len(b.names)
}

// ToURI renders an absolute path as the path segment of a hierarchical URI.
// It is only valid on absolute paths.
func (s *Service) ToURI(scheme, host string, p Path) (string, error) {
	if !p.IsAbsolute() {
		return "", errors.New("toUri is only valid on absolute paths")
	}
	rootStr := ""
	if r, ok := p.Root(); ok {
		rootStr = r.Display()
	}
	names := make([]string, 0, len(p.names))
	for _, n := range p.names {
		names = append(names, n.Display())
	}
	uriPath := s.pathType.ToURIPath(rootStr, names)
	return fmt.Sprintf("%s://%s%s", scheme, host, uriPath), nil
}
