package snapshot

import (
	"encoding/json"
	"io"
	"os"
	"strconv"

	"github.com/cris-achiardi/figma-plugins-sub000/pkg/errors"
)

// Parse decodes a snapshot document from r and validates its structure.
func Parse(r io.Reader) (*Snapshot, error) {
	var s Snapshot
	dec := json.NewDecoder(r)
	if err := dec.Decode(&s); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode snapshot")
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// ParseFile reads and decodes a snapshot document from a JSON file.
func ParseFile(path string) (*Snapshot, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "open %s", path)
	}
	defer f.Close()
	return Parse(f)
}

// Marshal serializes a snapshot to indented JSON.
func Marshal(s *Snapshot) ([]byte, error) {
	return json.MarshalIndent(s, "", "  ")
}

// Validate checks the structural requirements the engine cannot degrade
// around: a snapshot needs a root node and every node needs a kind tag.
// These are the only fatal-tier conditions; everything else downgrades to
// a warning during reconstruction.
func (s *Snapshot) Validate() error {
	if s == nil || s.Document == nil {
		return errors.New(errors.ErrCodeInvalidSnapshot, "snapshot has no root document node")
	}
	return validateNode(s.Document, "document")
}

func validateNode(n *Node, path string) error {
	if n.Type == "" {
		return errors.New(errors.ErrCodeInvalidSnapshot, "node %q at %s has no type tag", n.Name, path)
	}
	for i, c := range n.Children {
		if c == nil {
			return errors.New(errors.ErrCodeInvalidSnapshot, "node %q at %s has a null child", n.Name, path)
		}
		if err := validateNode(c, childPath(path, i)); err != nil {
			return err
		}
	}
	return nil
}

func childPath(parent string, i int) string {
	return parent + "/" + strconv.Itoa(i)
}
