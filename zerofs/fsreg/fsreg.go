// Package fsreg implements the process-wide file-system-instance registry:
// every constructed file system is assigned a URI of the
// form "zerofs://<instance-id>/<root>" and can be looked up by that URI,
// mirroring a FileSystemProvider's registry of open FileSystems.
package fsreg

import (
	"fmt"
	"sync"

	"github.com/google/uuid"

	zerr "github.com/zerofs-dev/zerofs/errors"
)

// Instance is anything registrable by instance id: zerofs.FileSystem
// implements this via its Store's InstanceID, but fsreg itself stays
// independent of the view/store packages to avoid a dependency cycle.
type Instance interface {
	InstanceID() uuid.UUID
}

// scheme is the URI scheme used for zerofs instance URIs.
const scheme = "zerofs"

var (
	mu        sync.Mutex
	instances = make(map[uuid.UUID]Instance)
)

// Register adds inst to the process-wide registry, keyed by its own
// instance id. Registering an id that is already present replaces the
// prior entry, matching "closing and reopening a file system at the same
// instance id" semantics.
func Register(inst Instance) {
	mu.Lock()
	defer mu.Unlock()
	instances[inst.InstanceID()] = inst
}

// Unregister removes inst's instance id from the registry, if present.
func Unregister(inst Instance) {
	mu.Lock()
	defer mu.Unlock()
	delete(instances, inst.InstanceID())
}

// Lookup resolves an instance id to its registered Instance.
func Lookup(id uuid.UUID) (Instance, error) {
	mu.Lock()
	defer mu.Unlock()
	inst, ok := instances[id]
	if !ok {
		return nil, zerr.New("lookup", id.String(), zerr.KindNoSuchFile)
	}
	return inst, nil
}

// URI builds the "zerofs://<instance-id>/<root-relative-path>" URI for a
// file system instance and a root-relative, slash-joined path.
func URI(id uuid.UUID, rootRelativePath string) string {
	return fmt.Sprintf("%s://%s/%s", scheme, id.String(), rootRelativePath)
}

// ParseURI splits a zerofs instance URI into its instance id and
// root-relative path.
func ParseURI(uriStr string) (uuid.UUID, string, error) {
	var host, path string
	prefix := scheme + "://"
	if len(uriStr) < len(prefix) || uriStr[:len(prefix)] != prefix {
		return uuid.Nil, "", zerr.New("parse", uriStr, zerr.KindInvalidPath)
	}
	rest := uriStr[len(prefix):]
	for i := 0; i < len(rest); i++ {
		if rest[i] == '/' {
			host, path = rest[:i], rest[i+1:]
			break
		}
	}
	if host == "" {
		host, path = rest, ""
	}
	id, err := uuid.Parse(host)
	if err != nil {
		return uuid.Nil, "", zerr.New("parse", uriStr, zerr.KindInvalidPath)
	}
	return id, path, nil
}
