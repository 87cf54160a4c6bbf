package resume

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// ExcludedSources is the persisted list of resumes to skip on future runs.
type ExcludedSources struct {
	Items []*ExcludedSource `json:"items"`
}

// ExcludedSource records one skipped resume and why it was skipped.
type ExcludedSource struct {
	ID         string    `json:"id"`
	Reason     string    `json:"reason,omitempty"`
	ExcludedAt time.Time `json:"excluded_at"`
}

// ExcludedFromFile loads an exclude list. An empty file yields an empty list.
func ExcludedFromFile(path string) (*ExcludedSources, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	stat, err := file.Stat()
	if err != nil {
		return nil, err
	}

	if stat.Size() == 0 {
		return &ExcludedSources{}, nil
	}

	var excluded ExcludedSources
	if err := json.NewDecoder(file).Decode(&excluded); err != nil {
		return nil, fmt.Errorf("decoding exclude file: %w", err)
	}

	return &excluded, nil
}

// ToFile writes the exclude list to path, creating the file when needed.
func (e *ExcludedSources) ToFile(path string) error {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	return enc.Encode(e)
}

func (e *ExcludedSources) Append(other *ExcludedSources) {
	e.Items = append(e.Items, other.Items...)
}

// IDs returns the identifiers of all excluded sources.
func (e *ExcludedSources) IDs() []string {
	ids := make([]string, 0, len(e.Items))
	for _, item := range e.Items {
		ids = append(ids, item.ID)
	}
	return ids
}

// NewExcluded builds exclude entries for the given IDs with a shared reason.
func NewExcluded(ids []string, reason string) *ExcludedSources {
	excluded := &ExcludedSources{}
	now := time.Now().UTC()
	for _, id := range ids {
		excluded.Items = append(excluded.Items, &ExcludedSource{
			ID:         id,
			Reason:     reason,
			ExcludedAt: now,
		})
	}
	return excluded
}
