package view

import (
	zerr "github.com/zerofs-dev/zerofs/errors"
)

// Feature names a gate-able capability.
type Feature string

const (
	FeatureLinks                  Feature = "LINKS"
	FeatureSymbolicLinks          Feature = "SYMBOLIC_LINKS"
	FeatureSecureDirectoryStream  Feature = "SECURE_DIRECTORY_STREAM"
	FeatureFileChannel            Feature = "FILE_CHANNEL"
)

// OpenOptions mirrors the options a caller passes to open a file channel or
// byte channel.
type OpenOptions struct {
	Read             bool
	Write            bool
	Append           bool
	Create           bool
	CreateNew        bool
	TruncateExisting bool
}

// Normalize applies the open-options normalisation rules.
func (o OpenOptions) Normalize() (OpenOptions, error) {
	if !o.Read && !o.Write && !o.Append && !o.Create && !o.CreateNew && !o.TruncateExisting {
		o.Read = true
		return o, nil
	}
	if o.Append && o.Read {
		return o, zerr.New("open", "", zerr.KindUnsupportedOperation)
	}
	if o.Append {
		o.Write = true
	}
	if !o.Read && !o.Write {
		// Default write mode: WRITE + CREATE + TRUNCATE_EXISTING.
		o.Write = true
		o.Create = true
		o.TruncateExisting = true
	}
	return o, nil
}

// DeleteMode controls which file kinds deleteFile will remove.
type DeleteMode int

const (
	DeleteAny DeleteMode = iota
	DeleteDirectoryOnly
	DeleteNonDirectoryOnly
)

// AttributeCopyOption controls which attributes copy carries over.
type AttributeCopyOption int

const (
	CopyAttributesNone AttributeCopyOption = iota
	CopyAttributesBasic
	CopyAttributesAll
)

// CopyOptions bundles the options accepted by FileSystemView.Copy.
type CopyOptions struct {
	ReplaceExisting bool
	AtomicMove      bool
	Attributes      AttributeCopyOption
	// ExplicitAttributes records whether Attributes was set by the caller;
	// when false, Attributes is ignored and Copy uses BASIC for a copy and
	// NONE for a move.
	ExplicitAttributes bool
}
