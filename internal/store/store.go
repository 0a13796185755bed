// Package store loads, mutates, filters, and persists the matches of a
// single espanso match file.
package store

import (
	"fmt"
	"os"
	"path/filepath"

	"matchman/internal/errors"
	"matchman/internal/log"
	"matchman/pkg/types"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// Store holds the in-memory match collection of one file. Loading keeps the
// decoded YAML document tree around so that saving can rewrite only the
// matches sequence: file-level options and unknown fields of entries that
// were not edited survive a round-trip.
type Store struct {
	path    string
	status  types.LoadStatus
	entries []types.Entry

	// doc is the document node of the last successful parse, nil when the
	// file was absent or empty. nodes maps entry identities to the sequence
	// item they were decoded from.
	doc   *yaml.Node
	nodes map[uuid.UUID]*yaml.Node
}

// Open creates a store for path and loads it.
func Open(path string) *Store {
	s := &Store{path: path}
	s.Reload()
	return s
}

// Path returns the file the store reads and writes.
func (s *Store) Path() string {
	return s.path
}

// Status reports how the last load went.
func (s *Store) Status() types.LoadStatus {
	return s.status
}

// Entries returns a snapshot of the current collection in order.
func (s *Store) Entries() []types.Entry {
	out := make([]types.Entry, len(s.entries))
	copy(out, s.entries)
	return out
}

// Len returns the number of matches currently held.
func (s *Store) Len() int {
	return len(s.entries)
}

// Reload re-reads the file from disk, replacing the in-memory collection.
// Every surviving match gets a fresh identity.
func (s *Store) Reload() {
	s.entries = nil
	s.doc = nil
	s.nodes = make(map[uuid.UUID]*yaml.Node)

	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Warnf("cannot read %s: %v", s.path, err)
		}
		s.status = types.LoadNotFound
		return
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		log.WithFields(log.F("file", s.path)).Warnf("match file is not valid YAML: %v", err)
		s.status = types.LoadParseFailed
		return
	}

	s.status = types.LoadOK
	if doc.Kind == 0 || len(doc.Content) == 0 {
		return // empty file
	}
	s.doc = &doc

	seq := findMapValue(doc.Content[0], "matches")
	if seq == nil || seq.Kind != yaml.SequenceNode {
		return
	}

	for _, item := range seq.Content {
		if item.Kind != yaml.MappingNode {
			continue
		}
		trigger, okT := stringValue(item, "trigger")
		replace, okR := stringValue(item, "replace")
		if !okT || !okR {
			// Entries missing either field are dropped, not surfaced.
			continue
		}
		entry := types.NewEntry(types.Match{Trigger: trigger, Replace: replace})
		s.entries = append(s.entries, entry)
		s.nodes[entry.ID] = item
	}
}

// Filter returns the entries whose trigger or replacement contains the query
// case-insensitively, in original order. An empty query returns everything.
func (s *Store) Filter(query string) []types.Entry {
	out := make([]types.Entry, 0, len(s.entries))
	for _, e := range s.entries {
		if e.Contains(query) {
			out = append(out, e)
		}
	}
	return out
}

// Upsert appends a new match (target nil) or replaces the identified one in
// place, then persists. Empty trigger or replacement is rejected; a target
// that no longer exists indicates stale caller state and is rejected too.
func (s *Store) Upsert(target *uuid.UUID, trigger, replace string) error {
	if trigger == "" || replace == "" {
		return errors.ErrEmptyFields
	}
	if target == nil {
		return s.append(trigger, replace)
	}
	return s.update(*target, trigger, replace)
}

func (s *Store) append(trigger, replace string) error {
	entry := types.NewEntry(types.Match{Trigger: trigger, Replace: replace})
	s.entries = append(s.entries, entry)
	if err := s.Save(); err != nil {
		s.entries = s.entries[:len(s.entries)-1]
		return err
	}
	return nil
}

func (s *Store) update(id uuid.UUID, trigger, replace string) error {
	i := s.indexOf(id)
	if i < 0 {
		log.WithFields(log.F("file", s.path)).Error("update targets a match that no longer exists")
		return errors.ErrStaleTarget
	}
	prev := s.entries[i].Match
	s.entries[i].Match = types.Match{Trigger: trigger, Replace: replace}
	if err := s.Save(); err != nil {
		s.entries[i].Match = prev
		return err
	}
	return nil
}

// Delete removes the identified match and persists. Deleting a match that is
// already gone is a no-op, logged because it points at stale caller state.
func (s *Store) Delete(id uuid.UUID) error {
	i := s.indexOf(id)
	if i < 0 {
		log.WithFields(log.F("file", s.path)).Warn("delete targets a match that no longer exists")
		return nil
	}
	removed := s.entries[i]
	s.entries = append(s.entries[:i], s.entries[i+1:]...)
	if err := s.Save(); err != nil {
		s.entries = append(s.entries[:i], append([]types.Entry{removed}, s.entries[i:]...)...)
		return err
	}
	delete(s.nodes, id)
	return nil
}

// Save writes the current collection back to disk, splicing it into the
// retained document tree. If the last load failed to parse, saving would
// replace content we never understood, so it is refused; use SaveTruncating
// after the user has confirmed.
func (s *Store) Save() error {
	if s.status == types.LoadParseFailed {
		return errors.ErrUnparsedContent
	}
	return s.write()
}

// SaveTruncating writes even over a file whose content failed to parse,
// discarding whatever was there. Callers must have confirmed this with the
// user first.
func (s *Store) SaveTruncating() error {
	if s.status == types.LoadParseFailed {
		log.WithFields(log.F("file", s.path)).Warn("overwriting unparsed content on explicit request")
		s.doc = nil
	}
	if err := s.write(); err != nil {
		return err
	}
	s.status = types.LoadOK
	return nil
}

func (s *Store) write() error {
	doc := s.renderDocument()

	data, err := yaml.Marshal(doc)
	if err != nil {
		return errors.NewFileError("failed to encode matches", s.path, errors.WriteFailed, err)
	}

	// Write to a temp file in the same directory, then rename over the
	// target so a failed write never leaves a half-written match file.
	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, ".matchman-*.tmp")
	if err != nil {
		return errors.NewFileError("failed to write matches", s.path, errors.WriteFailed, err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return errors.NewFileError("failed to write matches", s.path, errors.WriteFailed, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return errors.NewFileError("failed to write matches", s.path, errors.WriteFailed, err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return errors.NewFileError("failed to write matches", s.path, errors.WriteFailed, err)
	}

	if s.status == types.LoadNotFound {
		s.status = types.LoadOK
	}
	return nil
}

// renderDocument produces the document to persist: the retained tree with
// the matches sequence replaced, or a fresh {matches: [...]} document when
// there is no tree to preserve.
func (s *Store) renderDocument() *yaml.Node {
	seq := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
	for _, e := range s.entries {
		seq.Content = append(seq.Content, s.renderEntry(e))
	}

	if s.doc != nil && len(s.doc.Content) > 0 && s.doc.Content[0].Kind == yaml.MappingNode {
		root := s.doc.Content[0]
		if existing := findMapValue(root, "matches"); existing != nil {
			*existing = *seq
		} else {
			root.Content = append(root.Content,
				scalarNode("matches"), seq)
		}
		return s.doc
	}

	root := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	root.Content = append(root.Content, scalarNode("matches"), seq)
	doc := &yaml.Node{Kind: yaml.DocumentNode, Content: []*yaml.Node{root}}
	s.doc = doc
	return doc
}

// renderEntry reuses the sequence item a match was decoded from when there
// is one, so fields this tool does not model (vars, word, propagate_case...)
// stay on the entry; otherwise it builds a fresh two-field mapping.
func (s *Store) renderEntry(e types.Entry) *yaml.Node {
	if orig, ok := s.nodes[e.ID]; ok && orig.Kind == yaml.MappingNode {
		setStringValue(orig, "trigger", e.Trigger)
		setStringValue(orig, "replace", e.Replace)
		return orig
	}

	item := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	item.Content = append(item.Content,
		scalarNode("trigger"), scalarNode(e.Trigger),
		scalarNode("replace"), scalarNode(e.Replace))
	s.nodes[e.ID] = item
	return item
}

func (s *Store) indexOf(id uuid.UUID) int {
	for i, e := range s.entries {
		if e.ID == id {
			return i
		}
	}
	return -1
}

// findMapValue returns the value node for key in a mapping node, or nil.
func findMapValue(mapping *yaml.Node, key string) *yaml.Node {
	if mapping == nil || mapping.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		if mapping.Content[i].Value == key {
			return mapping.Content[i+1]
		}
	}
	return nil
}

// stringValue extracts key from a mapping as a string. Non-string values
// report false so the caller drops the record.
func stringValue(mapping *yaml.Node, key string) (string, bool) {
	v := findMapValue(mapping, key)
	if v == nil || v.Kind != yaml.ScalarNode || v.Tag != "!!str" {
		return "", false
	}
	return v.Value, true
}

func setStringValue(mapping *yaml.Node, key, value string) {
	if v := findMapValue(mapping, key); v != nil {
		v.SetString(value)
		return
	}
	mapping.Content = append(mapping.Content, scalarNode(key), scalarNode(value))
}

func scalarNode(value string) *yaml.Node {
	n := &yaml.Node{}
	n.SetString(value)
	return n
}

// Describe returns a short status line for the UI.
func (s *Store) Describe() string {
	switch s.status {
	case types.LoadParseFailed:
		return fmt.Sprintf("%s could not be parsed", filepath.Base(s.path))
	case types.LoadNotFound:
		return "no matches yet"
	default:
		return fmt.Sprintf("%d matches", len(s.entries))
	}
}
