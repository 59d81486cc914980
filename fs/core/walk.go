package core

import (
	"errors"
	"slices"
	"strings"
)

// Walk returns every entry below the directory at p, sorted by path.
// Backends implementing RecursiveLister list natively; others are walked
// one level at a time.
func Walk(b Backend, p string) ([]Entry, error) {
	if rl, ok := b.(RecursiveLister); ok {
		entries, err := rl.ListRecursive(p)
		if !errors.Is(err, ErrUnsupported) {
			return entries, err
		}
	}

	entries, err := walk(b, p)
	if err != nil {
		return nil, err
	}
	slices.SortFunc(entries, func(a, b Entry) int { return strings.Compare(a.Path, b.Path) })
	return entries, nil
}

func walk(b Backend, p string) ([]Entry, error) {
	children, err := b.List(p)
	if err != nil {
		return nil, err
	}

	var out []Entry
	for _, e := range children {
		out = append(out, e)
		if !e.IsDir() {
			continue
		}
		below, err := walk(b, e.Path)
		if err != nil {
			return nil, err
		}
		out = append(out, below...)
	}
	return out, nil
}
