package storage

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"os"
	"sort"
	"sync"
	"time"

	"github.com/RadyaI/learning-tracker-journal/internal"
)

// FileStorage keeps everything in memory and persists to JSON files
// with debounced background writers. Good enough for single-instance
// personal deployments; sqlite or postgres take over beyond that.
type FileStorage struct {
	sessions      map[string]*internal.Session   // id -> session
	ownerIndex    map[string][]*internal.Session // ownerID -> sessions, CreatedAt descending
	resources     map[string]*internal.Resource  // id -> resource
	users         map[string]*internal.User      // token -> user
	mu            sync.RWMutex
	sessionsFile  string
	resourcesFile string
	usersFile     string
	saveSessChan  chan struct{}
	saveResChan   chan struct{}
	shutdownChan  chan struct{}
	saveDelay     time.Duration
	logger        internal.Logger
}

func NewFileStorage(sessionsFile, resourcesFile, usersFile string, logger internal.Logger) (*FileStorage, error) {
	s := &FileStorage{
		sessions:      make(map[string]*internal.Session),
		ownerIndex:    make(map[string][]*internal.Session),
		resources:     make(map[string]*internal.Resource),
		users:         make(map[string]*internal.User),
		sessionsFile:  sessionsFile,
		resourcesFile: resourcesFile,
		usersFile:     usersFile,
		saveSessChan:  make(chan struct{}, 1),
		saveResChan:   make(chan struct{}, 1),
		shutdownChan:  make(chan struct{}),
		saveDelay:     500 * time.Millisecond,
		logger:        logger,
	}

	if err := s.loadSessions(); err != nil {
		logger.Errorf("storage: failed to load sessions: %v", err)
		return nil, err
	}
	if err := s.loadResources(); err != nil {
		logger.Errorf("storage: failed to load resources: %v", err)
		return nil, err
	}
	if err := s.loadUsers(); err != nil {
		logger.Errorf("storage: failed to load users: %v", err)
		return nil, err
	}

	go s.saveWorker(s.saveSessChan, s.saveSessions, "sessions")
	go s.saveWorker(s.saveResChan, s.saveResources, "resources")

	return s, nil
}

func decodeJSONFile(path string, v interface{}) error {
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	defer file.Close()

	if err := json.NewDecoder(file).Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return err
	}
	return nil
}

func (s *FileStorage) loadSessions() error {
	var sessions []*internal.Session
	if err := decodeJSONFile(s.sessionsFile, &sessions); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, sess := range sessions {
		s.sessions[sess.ID] = sess
		s.ownerIndex[sess.OwnerID] = append(s.ownerIndex[sess.OwnerID], sess)
	}
	for ownerID := range s.ownerIndex {
		sortSessionsDesc(s.ownerIndex[ownerID])
	}
	return nil
}

func (s *FileStorage) loadResources() error {
	var resources []*internal.Resource
	if err := decodeJSONFile(s.resourcesFile, &resources); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range resources {
		s.resources[r.ID] = r
	}
	return nil
}

func (s *FileStorage) loadUsers() error {
	var users []*internal.User
	if err := decodeJSONFile(s.usersFile, &users); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range users {
		s.users[u.Token] = u
	}
	return nil
}

func sortSessionsDesc(sessions []*internal.Session) {
	sort.Slice(sessions, func(i, j int) bool {
		return sessions[i].CreatedAt.After(sessions[j].CreatedAt)
	})
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

func (s *FileStorage) saveSessions() error {
	s.mu.RLock()
	sessions := make([]*internal.Session, 0, len(s.sessions))
	for _, sess := range s.sessions {
		sessions = append(sessions, sess)
	}
	s.mu.RUnlock()

	return atomicWriteFileJSON(s.sessionsFile, sessions)
}

func (s *FileStorage) saveResources() error {
	s.mu.RLock()
	resources := make([]*internal.Resource, 0, len(s.resources))
	for _, r := range s.resources {
		resources = append(resources, r)
	}
	s.mu.RUnlock()

	return atomicWriteFileJSON(s.resourcesFile, resources)
}

// saveWorker debounces save signals to avoid a disk write per request.
func (s *FileStorage) saveWorker(signal <-chan struct{}, save func() error, what string) {
	timer := time.NewTimer(s.saveDelay)
	defer timer.Stop()

	for {
		select {
		case <-signal:
			timer.Reset(s.saveDelay)
		case <-timer.C:
			if err := save(); err != nil {
				s.logger.Errorf("storage: error saving %s: %v", what, err)
			}
		case <-s.shutdownChan:
			return
		}
	}
}

func (s *FileStorage) signal(ch chan struct{}) {
	select {
	case ch <- struct{}{}:
	default:
	}
}

// Close stops the workers and flushes pending data synchronously.
func (s *FileStorage) Close() error {
	close(s.shutdownChan)

	if err := s.saveSessions(); err != nil {
		return err
	}
	return s.saveResources()
}

// --- SessionRepository ---

func (s *FileStorage) SaveSession(ctx context.Context, sess *internal.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sessions[sess.ID] = sess
	index := s.ownerIndex[sess.OwnerID]
	inserted := false
	for i, existing := range index {
		if existing.CreatedAt.Before(sess.CreatedAt) {
			index = append(index[:i], append([]*internal.Session{sess}, index[i:]...)...)
			inserted = true
			break
		}
	}
	if !inserted {
		index = append(index, sess)
	}
	s.ownerIndex[sess.OwnerID] = index

	s.signal(s.saveSessChan)
	return nil
}

func (s *FileStorage) GetSession(ctx context.Context, id string) (*internal.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *sess
	return &copied, nil
}

func (s *FileStorage) UpdateSession(ctx context.Context, sess *internal.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.sessions[sess.ID]
	if !ok {
		return ErrNotFound
	}
	// Only the editable fields move, mirroring the column set the sql
	// backends update. DateString, OwnerID and CreatedAt stay as
	// written at creation, which also keeps the owner index sorted.
	existing.DurationMinutes = sess.DurationMinutes
	existing.Content = sess.Content
	existing.Mood = sess.Mood
	existing.IsEmergency = sess.IsEmergency
	existing.Category = sess.Category

	s.signal(s.saveSessChan)
	return nil
}

func (s *FileStorage) DeleteSession(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	if !ok {
		return ErrNotFound
	}
	delete(s.sessions, id)

	index := s.ownerIndex[sess.OwnerID]
	for i, existing := range index {
		if existing.ID == id {
			s.ownerIndex[sess.OwnerID] = append(index[:i], index[i+1:]...)
			break
		}
	}

	s.signal(s.saveSessChan)
	return nil
}

func (s *FileStorage) ListSessions(ctx context.Context, ownerID string) ([]internal.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	index, ok := s.ownerIndex[ownerID]
	if !ok {
		return []internal.Session{}, nil
	}
	sessions := make([]internal.Session, len(index))
	for i, sess := range index {
		sessions[i] = *sess
	}
	return sessions, nil
}

// --- ResourceRepository ---

func (s *FileStorage) SaveResource(ctx context.Context, r *internal.Resource) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resources[r.ID] = r
	s.signal(s.saveResChan)
	return nil
}

func (s *FileStorage) DeleteResource(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.resources[id]; !ok {
		return ErrNotFound
	}
	delete(s.resources, id)
	s.signal(s.saveResChan)
	return nil
}

func (s *FileStorage) ListResources(ctx context.Context, ownerID string) ([]internal.Resource, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	resources := make([]internal.Resource, 0)
	for _, r := range s.resources {
		if r.OwnerID == ownerID {
			resources = append(resources, *r)
		}
	}
	sort.Slice(resources, func(i, j int) bool {
		return resources[i].CreatedAt.After(resources[j].CreatedAt)
	})
	return resources, nil
}

// --- UserRepository ---

func (s *FileStorage) GetUserByToken(ctx context.Context, token string) (*internal.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[token]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *u
	return &copied, nil
}

func (s *FileStorage) ListUsers(ctx context.Context) ([]internal.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	users := make([]internal.User, 0, len(s.users))
	for _, u := range s.users {
		users = append(users, *u)
	}
	return users, nil
}

// --- Compile-time assertions ---
var _ SessionRepository = (*FileStorage)(nil)
var _ ResourceRepository = (*FileStorage)(nil)
var _ UserRepository = (*FileStorage)(nil)
