package attr

import (
	"time"

	"github.com/pkg/errors"

	"github.com/zerofs-dev/zerofs/core"
)

// Basic implements the mandatory "basic" attribute view: size,
// creation/access/modified times, the file's kind flags, and its fileKey.
type Basic struct{}

func (Basic) Name() string       { return "basic" }
func (Basic) Inherits() []string { return nil }

func (Basic) Get(file *core.File, attr string) (any, bool) {
	creation, access, modified := file.Times()
	switch attr {
	case "size":
		if file.Kind() == core.KindRegularFile {
			return file.Size(), true
		}
		return int64(0), true
	case "creationTime":
		return creation, true
	case "lastAccessTime":
		return access, true
	case "lastModifiedTime":
		return modified, true
	case "isDirectory":
		return file.Kind() == core.KindDirectory, true
	case "isRegularFile":
		return file.Kind() == core.KindRegularFile, true
	case "isSymbolicLink":
		return file.Kind() == core.KindSymbolicLink, true
	case "isOther":
		return false, true
	case "fileKey":
		return file.Key(), true
	}
	return nil, false
}

func (Basic) Set(file *core.File, attr string, value any, create bool) error {
	t, ok := value.(time.Time)
	if !ok {
		return errors.Errorf("basic view does not support writing %q with a non-time value", attr)
	}
	switch attr {
	case "lastModifiedTime":
		file.SetLastModifiedTime(t)
		return nil
	case "lastAccessTime":
		file.SetLastAccessTime(t)
		return nil
	}
	return errors.Errorf("basic view does not support writing %q", attr)
}

func (b Basic) Attributes(file *core.File) map[string]any {
	out := make(map[string]any)
	for _, attr := range []string{
		"size", "creationTime", "lastAccessTime", "lastModifiedTime",
		"isDirectory", "isRegularFile", "isSymbolicLink", "isOther", "fileKey",
	} {
		if v, ok := b.Get(file, attr); ok {
			out[attr] = v
		}
	}
	return out
}
