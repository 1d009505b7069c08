// SPDX-License-Identifier: MPL-2.0

package rpmbuild

// FileOptions describes how a single staged file is installed by the
// package: destination path, ownership, mode and classification flags.
// Methods use value receivers so a partially built options record can be
// reused without aliasing.
type FileOptions struct {
	dest    string
	user    string
	group   string
	mode    uint32
	modeSet bool
	config  bool
	doc     bool
}

// NewFileOptions creates options for the given absolute install destination.
func NewFileOptions(dest string) FileOptions {
	return FileOptions{dest: dest}
}

// User sets the owning user name.
func (o FileOptions) User(user string) FileOptions {
	o.user = user
	return o
}

// Group sets the owning group name.
func (o FileOptions) Group(group string) FileOptions {
	o.group = group
	return o
}

// Mode sets the full file mode, type bits included.
func (o FileOptions) Mode(mode uint32) FileOptions {
	o.mode = mode
	o.modeSet = true
	return o
}

// AsConfig marks the file as a configuration file preserved across upgrades.
func (o FileOptions) AsConfig() FileOptions {
	o.config = true
	return o
}

// AsDoc marks the file as documentation.
func (o FileOptions) AsDoc() FileOptions {
	o.doc = true
	return o
}

// Dest returns the install destination.
func (o FileOptions) Dest() string { return o.dest }

// Owner returns the owning user and group names; empty strings mean the
// package default applies.
func (o FileOptions) Owner() (user, group string) { return o.user, o.group }

// FileMode returns the staged mode and whether one was set explicitly.
func (o FileOptions) FileMode() (uint32, bool) { return o.mode, o.modeSet }

// IsConfig reports the configuration-file flag.
func (o FileOptions) IsConfig() bool { return o.config }

// IsDoc reports the documentation flag.
func (o FileOptions) IsDoc() bool { return o.doc }
