package store

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"jobscout-engine/internal/domain"
)

// FileStore persists the full record collection as one JSON document.
// Read once at run start, written once at run end.
type FileStore struct {
	Path string
}

// Load reads the whole collection. A missing or unreadable file degrades to
// an empty collection; a corrupt run must not kill the pipeline.
func (s FileStore) Load() []domain.JobRecord {
	b, err := os.ReadFile(s.Path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("[store] read %s failed, starting empty: %v", s.Path, err)
		}
		return nil
	}

	var records []domain.JobRecord
	if err := json.Unmarshal(b, &records); err != nil {
		log.Printf("[store] parse %s failed, starting empty: %v", s.Path, err)
		return nil
	}
	return records
}

// Save writes the collection atomically: tmp file, current becomes .bak,
// tmp renamed into place.
func (s FileStore) Save(records []domain.JobRecord) error {
	if records == nil {
		records = []domain.JobRecord{}
	}
	b, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal records: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.Path), 0o755); err != nil {
		return err
	}

	tmp := s.Path + ".tmp"
	bak := s.Path + ".bak"

	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return err
	}

	_ = os.Remove(bak)
	_ = os.Rename(s.Path, bak)

	return os.Rename(tmp, s.Path)
}
