// Package fstest provides a conformance test suite for validating storage
// backends against the core.Backend contract.
//
// Backend packages import this package from their tests and run the suite
// against a fresh backend per group:
//
//	func TestMemoryBackend(t *testing.T) {
//	    fstest.TestSuite(t, func() core.Backend {
//	        return billy.NewMemory()
//	    })
//	}
//
// The suite validates the port contract, not backend-specific behavior.
// Backends whose directories only exist through their children (object
// stores without directory markers) declare that through FSTestConfig.
package fstest

import (
	"slices"
	"testing"

	"github.com/jmgilman/go/fsdriver/fs/core"
)

// FSTestConfig configures the test suite to match backend behavior characteristics.
type FSTestConfig struct {
	// VirtualDirectories indicates directories exist only while they have
	// children. When true, a parent created implicitly by Write may vanish
	// once its last child is deleted.
	VirtualDirectories bool

	// SkipTests lists specific test names to skip (for edge cases).
	// Format: "Group/SubTest" (e.g., "Manage/RenameDirectory").
	SkipTests []string
}

// DefaultTestConfig returns the configuration for backends that persist
// directories explicitly (local, memory, badger, object stores with
// directory markers).
func DefaultTestConfig() FSTestConfig {
	return FSTestConfig{}
}

// TestSuite runs all conformance tests against a backend.
// The newBackend function should return a fresh, empty backend for each group.
// Uses DefaultTestConfig().
func TestSuite(t *testing.T, newBackend func() core.Backend) {
	TestSuiteWithConfig(t, newBackend, DefaultTestConfig())
}

// TestSuiteWithConfig runs conformance tests with behavior configuration.
func TestSuiteWithConfig(t *testing.T, newBackend func() core.Backend, config FSTestConfig) {
	groups := []struct {
		name string
		fn   func(*testing.T, core.Backend, FSTestConfig)
	}{
		{"Read", TestReadWithConfig},
		{"Write", TestWriteWithConfig},
		{"Manage", TestManageWithConfig},
		{"List", TestListWithConfig},
		{"Capabilities", TestCapabilitiesWithConfig},
	}

	for _, g := range groups {
		t.Run(g.name, func(t *testing.T) {
			if config.skip(g.name) {
				t.Skip("Skipped by backend configuration")
				return
			}
			g.fn(t, newBackend(), config)
		})
	}
}

func (c FSTestConfig) skip(name string) bool {
	return slices.Contains(c.SkipTests, name)
}

// run executes a named subtest of group unless it is listed in SkipTests.
func run(t *testing.T, config FSTestConfig, group, name string, fn func(t *testing.T)) {
	t.Run(name, func(t *testing.T) {
		if config.skip(group + "/" + name) {
			t.Skip("Skipped by backend configuration")
			return
		}
		fn(t)
	})
}
