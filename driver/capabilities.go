package driver

import (
	"fmt"
	"strings"
)

// Capabilities is a bitset of what a storage allows.
type Capabilities uint8

const (
	// CapabilityBrowsable allows listing folders.
	CapabilityBrowsable Capabilities = 1 << iota
	// CapabilityPublic allows files to be served by public URL.
	CapabilityPublic
	// CapabilityWritable allows modifying the storage.
	CapabilityWritable

	// DefaultCapabilities is the set a driver starts with.
	DefaultCapabilities = CapabilityBrowsable | CapabilityPublic | CapabilityWritable
)

var capabilityNames = []struct {
	c    Capabilities
	name string
}{
	{CapabilityBrowsable, "browsable"},
	{CapabilityPublic, "public"},
	{CapabilityWritable, "writable"},
}

// Has reports whether every bit of c is set in caps.
func (caps Capabilities) Has(c Capabilities) bool {
	return caps&c == c
}

// String lists the set capabilities, e.g. "browsable|writable".
func (caps Capabilities) String() string {
	var names []string
	for _, n := range capabilityNames {
		if caps.Has(n.c) {
			names = append(names, n.name)
		}
	}
	if len(names) == 0 {
		return "none"
	}
	return strings.Join(names, "|")
}

// ParseCapabilities converts capability names into a bitset.
func ParseCapabilities(names []string) (Capabilities, error) {
	var caps Capabilities
	for _, name := range names {
		found := false
		for _, n := range capabilityNames {
			if strings.EqualFold(name, n.name) {
				caps |= n.c
				found = true
				break
			}
		}
		if !found {
			return 0, fmt.Errorf("unknown capability %q", name)
		}
	}
	return caps, nil
}
