// Package grouper buckets scanned files by their case-insensitive prefix for prefixsub.
package grouper

import (
	"prefixsub/internal/scanner"
	"prefixsub/internal/splitter"
)

// Group holds the files sharing one prefix key, in the order they were listed.
type Group struct {
	Key   string
	Files []scanner.FileEntry
}

// CanonicalPrefix returns the prefix as spelled by the group's first file.
// Later members never change it, whatever their casing.
func (g *Group) CanonicalPrefix(delimiter string) string {
	if len(g.Files) == 0 {
		return ""
	}
	return splitter.Prefix(splitter.Split(g.Files[0].Name, delimiter))
}

// Eligible reports whether the group has enough members to be reorganized.
func (g *Group) Eligible() bool {
	return len(g.Files) > 1
}

// Groups maps prefix keys to groups and remembers the order keys were first seen.
type Groups struct {
	keys   []string
	groups map[string]*Group
}

// Options configures grouping behavior.
type Options struct {
	// OnNewKey is called once for every key the first time it is seen.
	OnNewKey func(key string)
}

// GroupByPrefix buckets entries by the lowercased first segment of their names.
// Entries whose name does not contain the delimiter are left out entirely.
func GroupByPrefix(entries []scanner.FileEntry, delimiter string) *Groups {
	return GroupByPrefixWithOptions(entries, delimiter, Options{})
}

// GroupByPrefixWithOptions is GroupByPrefix with an optional new-key callback.
func GroupByPrefixWithOptions(entries []scanner.FileEntry, delimiter string, opts Options) *Groups {
	result := &Groups{
		keys:   make([]string, 0),
		groups: make(map[string]*Group),
	}

	for _, entry := range entries {
		segments := splitter.Split(entry.Name, delimiter)
		if len(segments) <= 1 {
			continue
		}

		key := splitter.Key(splitter.Prefix(segments))
		group, ok := result.groups[key]
		if !ok {
			if opts.OnNewKey != nil {
				opts.OnNewKey(key)
			}
			group = &Group{Key: key}
			result.groups[key] = group
			result.keys = append(result.keys, key)
		}
		group.Files = append(group.Files, entry)
	}

	return result
}

// Len returns the number of distinct prefix keys.
func (g *Groups) Len() int {
	return len(g.keys)
}

// Keys returns the prefix keys in first-seen order.
func (g *Groups) Keys() []string {
	keys := make([]string, len(g.keys))
	copy(keys, g.keys)
	return keys
}

// Get returns the group for key, if any.
func (g *Groups) Get(key string) (*Group, bool) {
	group, ok := g.groups[key]
	return group, ok
}

// Eligible returns the groups with more than one member, in first-seen key order.
func (g *Groups) Eligible() []*Group {
	eligible := make([]*Group, 0)
	for _, key := range g.keys {
		if group := g.groups[key]; group.Eligible() {
			eligible = append(eligible, group)
		}
	}
	return eligible
}
