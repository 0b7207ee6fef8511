package store

import (
	"path/filepath"
	"strings"

	"github.com/Dheebz/spotify-cli-sub001/internal/paths"
)

// Pin is a user-named shortcut to a remote URL. Names collapse
// case-insensitively: re-adding "radar" over "Radar" replaces the entry.
type Pin struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

type pinsDoc struct {
	Items []Pin `json:"items"`
}

// Pins persists pinned shortcuts with upsert-by-name semantics.
type Pins struct {
	file *File[pinsDoc]
}

// NewPins builds the pin store under the cache root.
func NewPins(root string) *Pins {
	return &Pins{file: NewFile[pinsDoc](filepath.Join(root, paths.PinsFile))}
}

// List returns all pins in stored order.
func (p *Pins) List() ([]Pin, error) {
	doc, err := p.file.Load()
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, nil
	}
	return doc.Items, nil
}

// Get returns the pin whose name matches case-insensitively, or nil.
func (p *Pins) Get(name string) (*Pin, error) {
	items, err := p.List()
	if err != nil {
		return nil, err
	}
	key := strings.ToLower(name)
	for i := range items {
		if strings.ToLower(items[i].Name) == key {
			return &items[i], nil
		}
	}
	return nil, nil
}

// Upsert adds a pin, replacing any existing entry with the same lowercased
// name. URL and original-case name are overwritten in place.
func (p *Pins) Upsert(name, url string) error {
	doc, err := p.file.Load()
	if err != nil {
		return err
	}
	items := []Pin{}
	if doc != nil {
		items = doc.Items
	}
	key := strings.ToLower(name)
	replaced := false
	for i := range items {
		if strings.ToLower(items[i].Name) == key {
			items[i] = Pin{Name: name, URL: url}
			replaced = true
			break
		}
	}
	if !replaced {
		items = append(items, Pin{Name: name, URL: url})
	}
	return p.file.Save(pinsDoc{Items: items})
}

// Remove deletes the pin with the given name (case-insensitive) and reports
// whether it was present.
func (p *Pins) Remove(name string) (bool, error) {
	doc, err := p.file.Load()
	if err != nil {
		return false, err
	}
	if doc == nil {
		return false, nil
	}
	key := strings.ToLower(name)
	kept := doc.Items[:0]
	removed := false
	for _, pin := range doc.Items {
		if strings.ToLower(pin.Name) == key {
			removed = true
			continue
		}
		kept = append(kept, pin)
	}
	if !removed {
		return false, nil
	}
	return true, p.file.Save(pinsDoc{Items: kept})
}
