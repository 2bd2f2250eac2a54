package storage

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/xCAELESTISOx/pacificapp--backend/internal"
)

// collection is one JSON file on disk with its own debounced save worker.
type collection struct {
	path     string
	saveChan chan struct{}
	snapshot func() any
}

// FileStorage keeps everything in memory, indexed per user, and persists
// each collection to a JSON file in dataDir. Writes are batched by a save
// worker per file and flushed synchronously on Close.
type FileStorage struct {
	stress          map[string][]*internal.StressRecord // userID -> ascending by CreatedAt
	sleep           map[string][]*internal.SleepRecord  // userID -> ascending by Date
	work            map[string][]*internal.WorkActivity // userID -> ascending by Date
	assessments     map[string][]*internal.BurnoutRiskAssessment
	recommendations []*internal.Recommendation
	userRecs        map[string][]*internal.UserRecommendation
	mu              sync.RWMutex

	stressFile, sleepFile, workFile, assessmentFile, catalogFile, userRecFile *collection

	saveDelay    time.Duration
	shutdownChan chan struct{}
	workers      sync.WaitGroup
	closeOnce    sync.Once
	logger       internal.Logger
}

func NewFileStorage(dataDir string, logger internal.Logger) (*FileStorage, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		logger.Errorf("storage: failed to create data dir: %v", err)
		return nil, err
	}
	s := &FileStorage{
		stress:       make(map[string][]*internal.StressRecord),
		sleep:        make(map[string][]*internal.SleepRecord),
		work:         make(map[string][]*internal.WorkActivity),
		assessments:  make(map[string][]*internal.BurnoutRiskAssessment),
		userRecs:     make(map[string][]*internal.UserRecommendation),
		saveDelay:    500 * time.Millisecond,
		shutdownChan: make(chan struct{}),
		logger:       logger,
	}
	s.stressFile = s.newCollection(dataDir, "stress_records.json", func() any { return flatten(s.stress) })
	s.sleepFile = s.newCollection(dataDir, "sleep_records.json", func() any { return flatten(s.sleep) })
	s.workFile = s.newCollection(dataDir, "work_activities.json", func() any { return flatten(s.work) })
	s.assessmentFile = s.newCollection(dataDir, "burnout_risks.json", func() any { return flatten(s.assessments) })
	s.catalogFile = s.newCollection(dataDir, "recommendations.json", func() any { return nonNil(s.recommendations) })
	s.userRecFile = s.newCollection(dataDir, "user_recommendations.json", func() any { return flatten(s.userRecs) })

	if err := s.load(); err != nil {
		logger.Errorf("storage: failed to load data: %v", err)
		return nil, err
	}

	for _, c := range s.collections() {
		s.workers.Add(1)
		go s.saveWorker(c)
	}
	return s, nil
}

func (s *FileStorage) newCollection(dir, name string, snapshot func() any) *collection {
	return &collection{
		path:     filepath.Join(dir, name),
		saveChan: make(chan struct{}, 1),
		snapshot: snapshot,
	}
}

func (s *FileStorage) collections() []*collection {
	return []*collection{s.stressFile, s.sleepFile, s.workFile, s.assessmentFile, s.catalogFile, s.userRecFile}
}

func (s *FileStorage) load() error {
	stress, err := loadJSON[internal.StressRecord](s.stressFile.path)
	if err != nil {
		return err
	}
	sleep, err := loadJSON[internal.SleepRecord](s.sleepFile.path)
	if err != nil {
		return err
	}
	work, err := loadJSON[internal.WorkActivity](s.workFile.path)
	if err != nil {
		return err
	}
	assessments, err := loadJSON[internal.BurnoutRiskAssessment](s.assessmentFile.path)
	if err != nil {
		return err
	}
	catalog, err := loadJSON[internal.Recommendation](s.catalogFile.path)
	if err != nil {
		return err
	}
	userRecs, err := loadJSON[internal.UserRecommendation](s.userRecFile.path)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range stress {
		s.stress[r.UserID] = insertSorted(s.stress[r.UserID], r, stressLess)
	}
	for _, r := range sleep {
		s.sleep[r.UserID] = insertSorted(s.sleep[r.UserID], r, sleepLess)
	}
	for _, r := range work {
		s.work[r.UserID] = insertSorted(s.work[r.UserID], r, workLess)
	}
	for _, a := range assessments {
		s.assessments[a.UserID] = insertSorted(s.assessments[a.UserID], a, assessmentLess)
	}
	sort.SliceStable(catalog, func(i, j int) bool { return catalog[i].CreatedAt.Before(catalog[j].CreatedAt) })
	s.recommendations = catalog
	for _, ur := range userRecs {
		s.userRecs[ur.UserID] = insertSorted(s.userRecs[ur.UserID], ur, userRecLess)
	}
	return nil
}

func loadJSON[T any](path string) ([]*T, error) {
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	defer file.Close()

	var items []*T
	if err := json.NewDecoder(file).Decode(&items); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, err
	}
	return items, nil
}

func atomicWriteFileJSON(filePath string, data interface{}) error {
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

func (s *FileStorage) save(c *collection) error {
	s.mu.RLock()
	data := c.snapshot()
	s.mu.RUnlock()
	return atomicWriteFileJSON(c.path, data)
}

func (s *FileStorage) saveWorker(c *collection) {
	defer s.workers.Done()
	timer := time.NewTimer(s.saveDelay)
	defer timer.Stop()

	for {
		select {
		case <-c.saveChan:
			timer.Reset(s.saveDelay)
		case <-timer.C:
			if err := s.save(c); err != nil {
				s.logger.Errorf("storage: error saving %s: %v", filepath.Base(c.path), err)
			}
		case <-s.shutdownChan:
			return
		}
	}
}

// signal asks the collection's worker to save soon. Never blocks.
func signal(c *collection) {
	select {
	case c.saveChan <- struct{}{}:
	default:
	}
}

// Close stops the save workers and flushes every collection to disk.
func (s *FileStorage) Close() error {
	var err error
	s.closeOnce.Do(func() {
		close(s.shutdownChan)
		s.workers.Wait()
		for _, c := range s.collections() {
			if saveErr := s.save(c); saveErr != nil && err == nil {
				err = saveErr
			}
		}
	})
	return err
}

// --- StressRepository ---
func (s *FileStorage) SaveStress(ctx context.Context, rec *internal.StressRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *rec
	s.stress[rec.UserID] = insertSorted(s.stress[rec.UserID], &cp, stressLess)
	signal(s.stressFile)
	return nil
}

func (s *FileStorage) ListStress(ctx context.Context, userID string) ([]internal.StressRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return reversed(s.stress[userID]), nil
}

func (s *FileStorage) CountStress(ctx context.Context, userID string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.stress[userID]), nil
}

func (s *FileStorage) LatestStress(ctx context.Context, userID string, asOf time.Time) (*internal.StressRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return latest(s.stress[userID], asOf, func(r *internal.StressRecord) time.Time { return r.CreatedAt }), nil
}

func (s *FileStorage) StressInRange(ctx context.Context, userID string, start, end time.Time) ([]internal.StressRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return inRange(s.stress[userID], start, end, func(r *internal.StressRecord) time.Time { return r.CreatedAt }), nil
}

// --- SleepRepository ---
func (s *FileStorage) SaveSleep(ctx context.Context, rec *internal.SleepRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *rec
	s.sleep[rec.UserID] = insertSorted(s.sleep[rec.UserID], &cp, sleepLess)
	signal(s.sleepFile)
	return nil
}

func (s *FileStorage) ListSleep(ctx context.Context, userID string) ([]internal.SleepRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return reversed(s.sleep[userID]), nil
}

func (s *FileStorage) CountSleep(ctx context.Context, userID string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sleep[userID]), nil
}

func (s *FileStorage) LatestSleep(ctx context.Context, userID string, asOf time.Time) (*internal.SleepRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return latest(s.sleep[userID], asOf, func(r *internal.SleepRecord) time.Time { return r.Date }), nil
}

func (s *FileStorage) SleepInRange(ctx context.Context, userID string, start, end time.Time) ([]internal.SleepRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return inRange(s.sleep[userID], start, end, func(r *internal.SleepRecord) time.Time { return r.Date }), nil
}

// --- WorkRepository ---
func (s *FileStorage) SaveWork(ctx context.Context, rec *internal.WorkActivity) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *rec
	s.work[rec.UserID] = insertSorted(s.work[rec.UserID], &cp, workLess)
	signal(s.workFile)
	return nil
}

func (s *FileStorage) ListWork(ctx context.Context, userID string) ([]internal.WorkActivity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return reversed(s.work[userID]), nil
}

func (s *FileStorage) CountWork(ctx context.Context, userID string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.work[userID]), nil
}

func (s *FileStorage) LatestWork(ctx context.Context, userID string, asOf time.Time) (*internal.WorkActivity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return latest(s.work[userID], asOf, func(r *internal.WorkActivity) time.Time { return r.Date }), nil
}

func (s *FileStorage) WorkInRange(ctx context.Context, userID string, start, end time.Time) ([]internal.WorkActivity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return inRange(s.work[userID], start, end, func(r *internal.WorkActivity) time.Time { return r.Date }), nil
}

// --- AssessmentRepository ---
func (s *FileStorage) SaveAssessment(ctx context.Context, a *internal.BurnoutRiskAssessment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *a
	s.assessments[a.UserID] = insertSorted(s.assessments[a.UserID], &cp, assessmentLess)
	signal(s.assessmentFile)
	return nil
}

func (s *FileStorage) ListAssessments(ctx context.Context, userID string, limit int) ([]internal.BurnoutRiskAssessment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := reversed(s.assessments[userID])
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// --- RecommendationRepository ---
func (s *FileStorage) SaveRecommendation(ctx context.Context, rec *internal.Recommendation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *rec
	s.recommendations = append(s.recommendations, &cp)
	signal(s.catalogFile)
	return nil
}

func (s *FileStorage) ListRecommendations(ctx context.Context) ([]internal.Recommendation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]internal.Recommendation, len(s.recommendations))
	for i, r := range s.recommendations {
		out[i] = *r
	}
	return out, nil
}

func (s *FileStorage) SaveUserRecommendation(ctx context.Context, ur *internal.UserRecommendation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *ur
	s.userRecs[ur.UserID] = insertSorted(s.userRecs[ur.UserID], &cp, userRecLess)
	signal(s.userRecFile)
	return nil
}

func (s *FileStorage) UpdateUserRecommendation(ctx context.Context, ur *internal.UserRecommendation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, existing := range s.userRecs[ur.UserID] {
		if existing.ID == ur.ID {
			cp := *ur
			s.userRecs[ur.UserID][i] = &cp
			signal(s.userRecFile)
			return nil
		}
	}
	return ErrNotFound
}

func (s *FileStorage) GetUserRecommendation(ctx context.Context, userID, id string) (*internal.UserRecommendation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, ur := range s.userRecs[userID] {
		if ur.ID == id {
			cp := *ur
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (s *FileStorage) ListUserRecommendations(ctx context.Context, userID string) ([]internal.UserRecommendation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return reversed(s.userRecs[userID]), nil
}

func (s *FileStorage) DeleteUserRecommendations(ctx context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.userRecs, userID)
	signal(s.userRecFile)
	return nil
}

// --- index helpers ---

func stressLess(a, b *internal.StressRecord) bool { return a.CreatedAt.Before(b.CreatedAt) }

func sleepLess(a, b *internal.SleepRecord) bool {
	if !a.Date.Equal(b.Date) {
		return a.Date.Before(b.Date)
	}
	return a.CreatedAt.Before(b.CreatedAt)
}

func workLess(a, b *internal.WorkActivity) bool {
	if !a.Date.Equal(b.Date) {
		return a.Date.Before(b.Date)
	}
	return a.CreatedAt.Before(b.CreatedAt)
}

func assessmentLess(a, b *internal.BurnoutRiskAssessment) bool {
	return a.CreatedAt.Before(b.CreatedAt)
}

func userRecLess(a, b *internal.UserRecommendation) bool { return a.CreatedAt.Before(b.CreatedAt) }

// insertSorted places rec after every element not greater than it, so
// equal keys keep insertion order.
func insertSorted[T any](list []*T, rec *T, less func(a, b *T) bool) []*T {
	i := sort.Search(len(list), func(i int) bool { return less(rec, list[i]) })
	list = append(list, nil)
	copy(list[i+1:], list[i:])
	list[i] = rec
	return list
}

func latest[T any](list []*T, asOf time.Time, key func(*T) time.Time) *T {
	day := internal.Day(asOf)
	for i := len(list) - 1; i >= 0; i-- {
		if !internal.Day(key(list[i])).After(day) {
			cp := *list[i]
			return &cp
		}
	}
	return nil
}

func inRange[T any](list []*T, start, end time.Time, key func(*T) time.Time) []T {
	from, to := internal.Day(start), internal.Day(end)
	out := []T{}
	for _, r := range list {
		d := internal.Day(key(r))
		if !d.Before(from) && !d.After(to) {
			out = append(out, *r)
		}
	}
	return out
}

func reversed[T any](list []*T) []T {
	out := make([]T, len(list))
	for i, r := range list {
		out[len(list)-1-i] = *r
	}
	return out
}

func flatten[T any](m map[string][]*T) []*T {
	out := make([]*T, 0)
	for _, list := range m {
		out = append(out, list...)
	}
	return out
}

func nonNil[T any](list []*T) []*T {
	if list == nil {
		return make([]*T, 0)
	}
	return list
}

// --- Compile-time assertions ---
var _ Store = (*FileStorage)(nil)
