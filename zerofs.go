// Package zerofs wires the zerofs/* packages into a single FileSystem
// facade matching a FileSystemProvider's newFileSystem contract:
// given a Configuration, construct a FileStore, populate its roots, attach
// an AttributeService built from the configured views, and return a
// FileSystemView plus the FileSystemState that owns its open channels,
// streams, and watch keys.
package zerofs

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/zerofs-dev/zerofs/attr"
	"github.com/zerofs-dev/zerofs/config"
	"github.com/zerofs-dev/zerofs/disk"
	"github.com/zerofs-dev/zerofs/fsreg"
	"github.com/zerofs-dev/zerofs/name"
	"github.com/zerofs-dev/zerofs/pathsvc"
	"github.com/zerofs-dev/zerofs/pathtype"
	"github.com/zerofs-dev/zerofs/state"
	"github.com/zerofs-dev/zerofs/store"
	"github.com/zerofs-dev/zerofs/view"
	"github.com/zerofs-dev/zerofs/watch"
)

// FileSystem bundles the collaborating objects a configured zerofs
// instance needs: the backing store, the default view, the lifecycle
// state, and (lazily) a watch service.
type FileSystem struct {
	Store *store.FileStore
	View  *view.FileSystemView
	State *state.FileSystemState

	pathSvc *pathsvc.Service

	watchMu sync.Mutex
	watch   *watch.Service
}

// InstanceID implements fsreg.Instance.
func (f *FileSystem) InstanceID() uuid.UUID { return f.Store.InstanceID() }

// providerFor maps a configured attribute view name to its Provider
// implementation.
func providerFor(viewName string) (attr.Provider, error) {
	switch viewName {
	case "basic":
		return attr.Basic{}, nil
	case "posix":
		return attr.Posix{}, nil
	case "owner":
		return attr.Owner{}, nil
	case "user":
		return attr.User{}, nil
	case "dos":
		return attr.Dos{}, nil
	case "acl":
		return attr.Acl{}, nil
	default:
		return nil, errors.Errorf("unrecognized attribute view: %s", viewName)
	}
}

// New constructs a FileSystem from cfg: a path service, a block-pool disk,
// an attribute service with the configured views, a FileStore with every
// configured root created, and a default view rooted at the configured
// working directory. The instance is registered in fsreg under its
// generated instance id.
func New(cfg *config.Configuration) (*FileSystem, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var pt pathtype.PathType
	switch cfg.PathType {
	case config.Windows:
		pt = pathtype.WindowsType
	default:
		pt = pathtype.UnixType
	}
	pathSvc := pathsvc.NewService(pt, cfg.NameDisplayNormalization, cfg.NameCanonicalNormalization, cfg.PathEqualityUsesCanonical)

	providers := make([]attr.Provider, 0, len(cfg.AttributeViews))
	for _, v := range cfg.AttributeViews {
		p, err := providerFor(v)
		if err != nil {
			return nil, err
		}
		providers = append(providers, p)
	}
	attrSvc := attr.NewService(providers...)
	for viewName, attrs := range cfg.DefaultAttributeValues {
		for attrName, value := range attrs {
			attrSvc.SetDefault(viewName, attrName, value)
		}
	}

	maxBlockCount := cfg.MaxSize / cfg.BlockSize
	if maxBlockCount < 1 {
		maxBlockCount = 1
	}
	maxCacheBlockCount := -1
	if cfg.MaxCacheSize >= 0 {
		maxCacheBlockCount = cfg.MaxCacheSize / cfg.BlockSize
	}
	d := disk.New(cfg.BlockSize, maxBlockCount, maxCacheBlockCount)

	var now store.TimeSource = time.Now
	fileStore := store.New(pathSvc, d, attrSvc, now)

	for _, root := range cfg.Roots {
		rootName := pathSvc.Name(root)
		fileStore.AddRoot(rootName)
	}

	workingDirPath, err := pathSvc.ParsePath(cfg.WorkingDirectory)
	if err != nil {
		return nil, errors.Wrap(err, "invalid working directory")
	}
	rootName, ok := workingDirPath.Root()
	if !ok {
		return nil, errors.New("working directory must be absolute")
	}
	workingDir, ok := fileStore.Tree().Root(rootName)
	if !ok {
		return nil, errors.Errorf("working directory root %q was not configured", rootName.Display())
	}

	features := make([]view.Feature, 0, len(cfg.SupportedFeatures))
	for _, f := range cfg.SupportedFeatures {
		features = append(features, view.Feature(f))
	}

	fsView := view.New(fileStore, workingDir, workingDirPath, features...)
	fsState := state.New(time.Now, nil)

	fs := &FileSystem{Store: fileStore, View: fsView, State: fsState, pathSvc: pathSvc}
	fsreg.Register(fs)
	return fs, nil
}

// Watch lazily constructs (or returns the existing) watch.Service for this
// file system, polling at the configured interval.
func (f *FileSystem) Watch(cfg *config.Configuration) *watch.Service {
	f.watchMu.Lock()
	defer f.watchMu.Unlock()
	if f.watch == nil {
		interval := cfg.WatchService.Interval
		if interval <= 0 {
			interval = 200 * time.Millisecond
		}
		f.watch = watch.New(view.NewWatchSnapshotter(f.View), interval)
	}
	return f.watch
}

// URI returns this instance's zerofs:// URI for the given root-relative,
// slash-joined path.
func (f *FileSystem) URI(rootRelativePath string) string {
	return fsreg.URI(f.Store.InstanceID(), rootRelativePath)
}

// Close shuts down the watch service (if one was started) and the
// lifecycle state (which in turn closes every registered channel, stream,
// and watch key), then removes the instance from the process registry.
// Idempotent.
func (f *FileSystem) Close() error {
	defer fsreg.Unregister(f)
	f.watchMu.Lock()
	w := f.watch
	f.watchMu.Unlock()

	var firstErr error
	if w != nil {
		if err := w.Close(); err != nil {
			firstErr = err
		}
	}
	if err := f.State.Close(); err != nil && firstErr == nil {
		firstErr = err
	}
	return firstErr
}

// ParsePath exposes the instance's PathService for callers building paths
// to pass to View's operations.
func (f *FileSystem) ParsePath(first string, more ...string) (pathsvc.Path, error) {
	return f.pathSvc.ParsePath(first, more...)
}

// Name exposes the instance's name-construction helper (normalization
// chains applied per cfg).
func (f *FileSystem) Name(raw string) name.Name {
	return f.pathSvc.Name(raw)
}
