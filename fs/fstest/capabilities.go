package fstest

import (
	"strings"
	"testing"

	"github.com/jmgilman/go/fsdriver/fs/core"
)

// TestCapabilities tests the optional capability interfaces a backend
// implements. Capabilities the backend lacks are skipped.
// Uses DefaultTestConfig().
func TestCapabilities(t *testing.T, backend core.Backend) {
	TestCapabilitiesWithConfig(t, backend, DefaultTestConfig())
}

// TestCapabilitiesWithConfig tests optional capabilities with behavior configuration.
func TestCapabilitiesWithConfig(t *testing.T, backend core.Backend, config FSTestConfig) {
	run(t, config, "Capabilities", "Type", func(t *testing.T) {
		if backend.Type() == core.BackendTypeUnknown {
			t.Errorf("Type() = %v, want a known backend type", backend.Type())
		}
	})
	run(t, config, "Capabilities", "MimeType", func(t *testing.T) {
		detector, ok := backend.(core.MimeTypeDetector)
		if !ok {
			t.Skip("Backend does not implement core.MimeTypeDetector")
			return
		}
		mustWrite(t, backend, "doc.txt", "plain text content\n")
		mtype, err := detector.MimeType("doc.txt")
		if err != nil {
			t.Fatalf("MimeType(doc.txt): got error %v, want nil", err)
		}
		if !strings.HasPrefix(mtype, "text/plain") {
			t.Errorf("MimeType(doc.txt) = %q, want text/plain", mtype)
		}
	})
	run(t, config, "Capabilities", "Copy", func(t *testing.T) {
		copier, ok := backend.(core.Copier)
		if !ok {
			t.Skip("Backend does not implement core.Copier")
			return
		}
		mustWrite(t, backend, "orig.txt", "copy me")
		if err := copier.Copy("orig.txt", "copies/dup.txt"); err != nil {
			t.Fatalf("Copy(orig.txt, copies/dup.txt): got error %v, want nil", err)
		}
		assertContent(t, backend, "orig.txt", "copy me")
		assertContent(t, backend, "copies/dup.txt", "copy me")
	})
	run(t, config, "Capabilities", "CopyTree", func(t *testing.T) {
		mustWrite(t, backend, "tpl/index.html", "<html></html>")
		mustWrite(t, backend, "tpl/css/site.css", "body{}")
		if err := core.CopyTree(backend, "tpl", "site"); err != nil {
			t.Fatalf("CopyTree(tpl, site): got error %v, want nil", err)
		}
		assertContent(t, backend, "site/index.html", "<html></html>")
		assertContent(t, backend, "site/css/site.css", "body{}")
		assertContent(t, backend, "tpl/index.html", "<html></html>")
	})
}
