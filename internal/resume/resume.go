// Package resume discovers resume files and manages collections of them.
package resume

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// supportedExtensions are the formats the pipeline can turn into features:
// plain text resumes and pre-extracted feature payloads.
var supportedExtensions = map[string]struct{}{
	".txt":  {},
	".json": {},
}

// Source is a single discovered resume file. The ID is the file name and
// identifies the candidate throughout the pipeline.
type Source struct {
	ID   string `json:"id"`
	Path string `json:"path"`
	Ext  string `json:"ext"`
}

// Supported reports whether the pipeline can process this source.
func (s *Source) Supported() bool {
	_, ok := supportedExtensions[s.Ext]
	return ok
}

// Sources is an ordered collection of discovered resume files. Order is
// preserved by every operation because it breaks ranking ties.
type Sources struct {
	Items []*Source `json:"items"`
}

// Discover lists the files of dir (non-recursively) as sources.
func Discover(dir string) (*Sources, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading resumes directory: %w", err)
	}

	sources := &Sources{}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		sources.Items = append(sources.Items, &Source{
			ID:   name,
			Path: filepath.Join(dir, name),
			Ext:  strings.ToLower(filepath.Ext(name)),
		})
	}

	return sources, nil
}

func (s *Sources) Len() int {
	return len(s.Items)
}

// IDs returns the identifiers of all sources, in order.
func (s *Sources) IDs() []string {
	ids := make([]string, 0, len(s.Items))
	for _, source := range s.Items {
		ids = append(ids, source.ID)
	}
	return ids
}

func (s *Sources) FindByID(id string) *Source {
	for _, source := range s.Items {
		if source.ID == id {
			return source
		}
	}
	return nil
}

// Exclude removes the sources with the given IDs, preserving the order of
// the remaining items, and returns the IDs actually removed.
func (s *Sources) Exclude(ids []string) []string {
	drop := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		drop[id] = struct{}{}
	}

	var excluded []string
	kept := make([]*Source, 0, len(s.Items))
	for _, source := range s.Items {
		if _, ok := drop[source.ID]; ok {
			excluded = append(excluded, source.ID)
			continue
		}
		kept = append(kept, source)
	}
	s.Items = kept

	return excluded
}

// ExcludeUnsupported removes sources the pipeline cannot process and returns
// their IDs.
func (s *Sources) ExcludeUnsupported() []string {
	var unsupported []string
	for _, source := range s.Items {
		if !source.Supported() {
			unsupported = append(unsupported, source.ID)
		}
	}
	return s.Exclude(unsupported)
}
