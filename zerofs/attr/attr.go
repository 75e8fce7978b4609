// Package attr implements the attribute-provider contract and dispatch
// engine: a named Provider declares a view, optional
// inheritance from other providers, and get/set hooks; AttributeService
// dispatches reads/writes and handles inheritance cascades.
package attr

import (
	"strings"

	"github.com/pkg/errors"

	"github.com/zerofs-dev/zerofs/core"
	zerr "github.com/zerofs-dev/zerofs/errors"
)

// Provider is the external attribute-provider contract.
type Provider interface {
	// Name is the view name this provider serves ("basic", "posix", ...).
	Name() string
	// Inherits lists other provider names this provider's "*" reads and
	// fallback writes cascade to.
	Inherits() []string
	// Get reads a single named attribute from file.
	Get(file *core.File, attr string) (any, bool)
	// Set writes a single named attribute on file. create indicates whether
	// this call is part of initial file creation (some providers reject
	// post-creation writes to certain attributes).
	Set(file *core.File, attr string, value any, create bool) error
	// Attributes lists every attribute name this provider itself (not its
	// inherited providers) can read, used to serve "view:*".
	Attributes(file *core.File) map[string]any
}

// Service dispatches attribute reads/writes to registered providers,
// handling the inheritance cascade and the "view:attr" string syntax.
type Service struct {
	providers map[string]Provider
	defaults  map[string]map[string]any
}

// NewService constructs an AttributeService with the given providers
// installed, keyed by their own Name().
func NewService(providers ...Provider) *Service {
	s := &Service{
		providers: make(map[string]Provider, len(providers)),
		defaults:  make(map[string]map[string]any),
	}
	for _, p := range providers {
		s.providers[p.Name()] = p
	}
	return s
}

// SetDefault installs a default value for view:attr applied to newly
// created files that don't specify it explicitly.
func (s *Service) SetDefault(view, attr string, value any) {
	if s.defaults[view] == nil {
		s.defaults[view] = make(map[string]any)
	}
	s.defaults[view][attr] = value
}

// ApplyDefaults writes every configured default attribute onto a newly
// created file.
func (s *Service) ApplyDefaults(file *core.File) {
	for view, attrs := range s.defaults {
		p, ok := s.providers[view]
		if !ok {
			continue
		}
		for attr, value := range attrs {
			_ = p.Set(file, attr, value, true)
		}
	}
}

// parseAttributeString parses the file-attribute string syntax:
// "attr" -> (basic, attr); "view:attr" -> (view, attr); "view:a,b,c"
// -> bulk names; "view:*" -> all attributes. Any other ':' layout is
// rejected.
func parseAttributeString(s string) (view string, names []string, err error) {
	idx := strings.IndexByte(s, ':')
	if idx == -1 {
		return "basic", []string{s}, nil
	}
	if idx == 0 || idx == len(s)-1 && s[idx+1:] == "" {
		return "", nil, errors.New("malformed attribute string")
	}
	if strings.IndexByte(s[idx+1:], ':') != -1 {
		return "", nil, errors.New("malformed attribute string")
	}
	view = s[:idx]
	rest := s[idx+1:]
	if rest == "*" {
		return view, []string{"*"}, nil
	}
	return view, strings.Split(rest, ","), nil
}

// Read implements the read side of the attribute-string syntax,
// returning a flat map of attribute name -> value (or, for bulk/"*"
// reads, every requested name found).
func (s *Service) Read(file *core.File, attribute string) (map[string]any, error) {
	view, names, err := parseAttributeString(attribute)
	if err != nil {
		return nil, zerr.Wrap("readAttributes", "", zerr.KindIllegalArgument, err)
	}
	provider, ok := s.providers[view]
	if !ok {
		return nil, zerr.New("readAttributes", "", zerr.KindUnsupportedOperation)
	}

	result := make(map[string]any)
	if len(names) == 1 && names[0] == "*" {
		for k, v := range s.readAll(provider, file) {
			result[k] = v
		}
		return result, nil
	}
	for _, n := range names {
		if v, ok := s.readCascade(provider, file, n); ok {
			result[n] = v
		}
	}
	return result, nil
}

// readCascade reads a single attribute from provider, cascading to its
// inherited providers in declared order if provider itself does not
// supply it.
func (s *Service) readCascade(provider Provider, file *core.File, attr string) (any, bool) {
	if v, ok := provider.Get(file, attr); ok {
		return v, true
	}
	for _, inherited := range provider.Inherits() {
		if p, ok := s.providers[inherited]; ok {
			if v, ok := s.readCascade(p, file, attr); ok {
				return v, true
			}
		}
	}
	return nil, false
}

// readAll gathers every attribute from provider plus its inherited
// providers.
func (s *Service) readAll(provider Provider, file *core.File) map[string]any {
	out := make(map[string]any)
	for k, v := range provider.Attributes(file) {
		out[k] = v
	}
	for _, inherited := range provider.Inherits() {
		if p, ok := s.providers[inherited]; ok {
			for k, v := range s.readAll(p, file) {
				if _, exists := out[k]; !exists {
					out[k] = v
				}
			}
		}
	}
	return out
}

// Write dispatches a write to the first provider that
// supports the attribute (self, then inherited, in declared order);
// no support anywhere yields UnsupportedOperation.
func (s *Service) Write(file *core.File, attribute string, value any) error {
	view, names, err := parseAttributeString(attribute)
	if err != nil {
		return zerr.Wrap("setAttribute", "", zerr.KindIllegalArgument, err)
	}
	if len(names) != 1 || names[0] == "*" {
		return zerr.New("setAttribute", "", zerr.KindIllegalArgument)
	}
	provider, ok := s.providers[view]
	if !ok {
		return zerr.New("setAttribute", "", zerr.KindUnsupportedOperation)
	}
	if s.writeCascade(provider, file, names[0], value) {
		return nil
	}
	return zerr.New("setAttribute", "", zerr.KindUnsupportedOperation)
}

// CopyAttributes copies attribute values from src to dst for use by
// FileSystemView.Copy. When basicOnly is
// true, only the "basic" provider's own attributes are copied (excluding
// size/fileKey, which are derived rather than settable); otherwise every
// registered provider's own attributes are copied.
func (s *Service) CopyAttributes(src, dst *core.File, basicOnly bool) {
	for name, provider := range s.providers {
		if basicOnly && name != "basic" {
			continue
		}
		for attr, value := range provider.Attributes(src) {
			if name == "basic" {
				switch attr {
				case "size", "fileKey", "isDirectory", "isRegularFile", "isSymbolicLink", "isOther":
					continue
				}
			}
			_ = provider.Set(dst, attr, value, true)
		}
	}
}

func (s *Service) writeCascade(provider Provider, file *core.File, attr string, value any) bool {
	if provider.Set(file, attr, value, false) == nil {
		return true
	}
	for _, inherited := range provider.Inherits() {
		if p, ok := s.providers[inherited]; ok {
			if s.writeCascade(p, file, attr, value) {
				return true
			}
		}
	}
	return false
}
