package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/yourname/fitplanner/internal"
)

// FileStorage reads the catalog from a JSON file and keeps generated plans in
// a second JSON file. Plan writes are batched by a background worker.
type FileStorage struct {
	*MemoryCatalog

	plans         map[string]*internal.GeneratedPlan   // id -> plan
	userPlanIndex map[string][]*internal.GeneratedPlan // userID -> plans, newest first
	mu            sync.RWMutex
	catalogFile   string
	plansFile     string
	savePlansChan chan struct{}
	shutdownChan  chan struct{}
	closeOnce     sync.Once
	saveDelay     time.Duration
	logger        internal.Logger
}

func NewFileStorage(catalogFile, plansFile string, logger internal.Logger) (*FileStorage, error) {
	s := &FileStorage{
		plans:         make(map[string]*internal.GeneratedPlan),
		userPlanIndex: make(map[string][]*internal.GeneratedPlan),
		catalogFile:   catalogFile,
		plansFile:     plansFile,
		savePlansChan: make(chan struct{}, 1),
		shutdownChan:  make(chan struct{}),
		saveDelay:     500 * time.Millisecond,
		logger:        logger,
	}

	catalog, err := s.loadCatalog()
	if err != nil {
		logger.Errorf("storage: failed to load catalog: %v", err)
		return nil, err
	}
	s.MemoryCatalog = NewMemoryCatalog(catalog)

	if err := s.loadPlans(); err != nil {
		logger.Errorf("storage: failed to load plans: %v", err)
		return nil, err
	}

	go s.savePlansWorker()

	return s, nil
}

// loadCatalog falls back to the built-in seed when the file does not exist
// and writes the seed out so it can be edited.
func (s *FileStorage) loadCatalog() (*Catalog, error) {
	file, err := os.Open(s.catalogFile)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, err
		}
		s.logger.Warnf("storage: catalog %s not found, using built-in seed", s.catalogFile)
		seed, err := SeedCatalog()
		if err != nil {
			return nil, err
		}
		if err := atomicWriteFileJSON(s.catalogFile, seed); err != nil {
			s.logger.Warnf("storage: could not write seed catalog: %v", err)
		}
		return seed, nil
	}
	defer file.Close()
	return DecodeCatalog(file)
}

// Refresh re-reads the catalog file so edits show up without a restart.
func (s *FileStorage) Refresh(ctx context.Context) error {
	catalog, err := s.loadCatalog()
	if err != nil {
		s.logger.Errorf("storage: failed to reload catalog: %v", err)
		return err
	}
	s.Replace(catalog)
	return nil
}

func (s *FileStorage) loadPlans() error {
	file, err := os.Open(s.plansFile)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	defer file.Close()

	var plans []*internal.GeneratedPlan
	if err := json.NewDecoder(file).Decode(&plans); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range plans {
		s.plans[p.ID] = p
		s.userPlanIndex[p.UserID] = append(s.userPlanIndex[p.UserID], p)
	}
	for userID := range s.userPlanIndex {
		idx := s.userPlanIndex[userID]
		sort.Slice(idx, func(i, j int) bool {
			return idx[i].CreatedAt.After(idx[j].CreatedAt)
		})
	}
	return nil
}

func atomicWriteFileJSON(filePath string, data interface{}) error {
	if dir := filepath.Dir(filePath); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	tempFile := filePath + ".tmp"
	f, err := os.Create(tempFile)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(data); err != nil {
		f.Close()
		os.Remove(tempFile)
		return err
	}

	if err := f.Sync(); err != nil {
		f.Close()
		os.Remove(tempFile)
		return err
	}

	if err := f.Close(); err != nil {
		os.Remove(tempFile)
		return err
	}

	return os.Rename(tempFile, filePath)
}

func (s *FileStorage) savePlans() error {
	s.mu.RLock()
	plans := make([]*internal.GeneratedPlan, 0, len(s.plans))
	for _, p := range s.plans {
		plans = append(plans, p)
	}
	s.mu.RUnlock()
	sort.Slice(plans, func(i, j int) bool { return plans[i].ID < plans[j].ID })
	return atomicWriteFileJSON(s.plansFile, plans)
}

func (s *FileStorage) savePlansWorker() {
	timer := time.NewTimer(s.saveDelay)
	timer.Stop()

	for {
		select {
		case <-s.savePlansChan:
			timer.Reset(s.saveDelay)
		case <-timer.C:
			if err := s.savePlans(); err != nil {
				s.logger.Errorf("storage: error saving plans: %v", err)
			}
		case <-s.shutdownChan:
			timer.Stop()
			return
		}
	}
}

// Close stops the save worker and flushes plans synchronously.
func (s *FileStorage) Close() error {
	var err error
	s.closeOnce.Do(func() {
		close(s.shutdownChan)
		err = s.savePlans()
	})
	return err
}

// --- PlanRepository ---
func (s *FileStorage) SavePlan(ctx context.Context, plan *internal.GeneratedPlan) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := *plan
	if old, ok := s.plans[plan.ID]; ok {
		s.removeFromIndex(old)
	}
	s.plans[plan.ID] = &stored

	idx := s.userPlanIndex[plan.UserID]
	inserted := false
	for i, existing := range idx {
		if existing.CreatedAt.Before(stored.CreatedAt) {
			idx = append(idx[:i], append([]*internal.GeneratedPlan{&stored}, idx[i:]...)...)
			inserted = true
			break
		}
	}
	if !inserted {
		idx = append(idx, &stored)
	}
	s.userPlanIndex[plan.UserID] = idx

	select {
	case s.savePlansChan <- struct{}{}:
	default:
	}
	return nil
}

func (s *FileStorage) removeFromIndex(p *internal.GeneratedPlan) {
	idx := s.userPlanIndex[p.UserID]
	for i, existing := range idx {
		if existing == p {
			s.userPlanIndex[p.UserID] = append(idx[:i], idx[i+1:]...)
			return
		}
	}
}

func (s *FileStorage) GetPlan(ctx context.Context, id string) (*internal.GeneratedPlan, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.plans[id]
	if !ok {
		return nil, fmt.Errorf("storage: plan %s: %w", id, internal.ErrNotFound)
	}
	out := *p
	return &out, nil
}

func (s *FileStorage) ListPlans(ctx context.Context, userID string) ([]internal.GeneratedPlan, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	idx := s.userPlanIndex[userID]
	plans := make([]internal.GeneratedPlan, len(idx))
	for i, p := range idx {
		plans[i] = *p
	}
	return plans, nil
}

// --- Compile-time assertions ---
var _ CatalogRepository = (*FileStorage)(nil)
var _ PlanRepository = (*FileStorage)(nil)
