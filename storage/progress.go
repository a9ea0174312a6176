package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	bolt "go.etcd.io/bbolt"
)

var progressBucket = []byte("progress")

// Progress records the outcome status per PMID so an interrupted batch can
// resume where it stopped.
type Progress struct {
	db *bolt.DB
	mu sync.RWMutex
}

// OpenProgress opens (or creates) the progress database at path.
func OpenProgress(path string) (*Progress, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory for progress db: %w", err)
	}

	db, err := bolt.Open(path, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open progress db: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(progressBucket)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create bucket: %w", err)
	}

	return &Progress{db: db}, nil
}

// Done reports whether pmid has already been processed.
func (p *Progress) Done(pmid string) (bool, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	var done bool
	err := p.db.View(func(tx *bolt.Tx) error {
		done = tx.Bucket(progressBucket).Get([]byte(pmid)) != nil
		return nil
	})
	return done, err
}

// MarkDone records the final status for pmid.
func (p *Progress) MarkDone(pmid, status string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(progressBucket).Put([]byte(pmid), []byte(status))
	})
}

// Status returns the recorded status for pmid, if any.
func (p *Progress) Status(pmid string) (string, bool, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	var status string
	var ok bool
	err := p.db.View(func(tx *bolt.Tx) error {
		if v := tx.Bucket(progressBucket).Get([]byte(pmid)); v != nil {
			status, ok = string(v), true
		}
		return nil
	})
	return status, ok, err
}

// Close closes the underlying database.
func (p *Progress) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.db != nil {
		return p.db.Close()
	}
	return nil
}
