package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fadilmartias/resume-screener/internal/apperror"
	"github.com/fadilmartias/resume-screener/internal/model"
	"github.com/fadilmartias/resume-screener/internal/service"
)

// memoryStore mirrors the gorm repositories closely enough for usecase tests,
// including the floored candidate count.
type memoryStore struct {
	mu          sync.Mutex
	projects    map[string]*model.Project
	files       []*model.UploadedFile
	assessments map[string][]model.AssessmentResult
	nextFileID  uint
}

func newMemoryStore() *memoryStore {
	return &memoryStore{projects: map[string]*model.Project{}, assessments: map[string][]model.AssessmentResult{}}
}

func (m *memoryStore) CreateProject(p *model.Project) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *p
	m.projects[p.ID] = &cp
	return nil
}

func (m *memoryStore) FindProjectByID(id string) (*model.Project, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.projects[id]
	if !ok {
		return nil, apperror.NewNotFoundError("project", id)
	}
	cp := *p
	return &cp, nil
}

func (m *memoryStore) GetProjects(page, pageSize int) ([]model.Project, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	all := make([]model.Project, 0, len(m.projects))
	for _, p := range m.projects {
		all = append(all, *p)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].LastUpdated.After(all[j].LastUpdated) })
	start := (page - 1) * pageSize
	if start > len(all) {
		start = len(all)
	}
	end := start + pageSize
	if end > len(all) {
		end = len(all)
	}
	return all[start:end], int64(len(all)), nil
}

func (m *memoryStore) UpdateStatus(id, status string) (*model.Project, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.projects[id]
	if !ok {
		return nil, apperror.NewNotFoundError("project", id)
	}
	p.Status = status
	cp := *p
	return &cp, nil
}

func (m *memoryStore) adjustCandidates(projectID string, delta int) {
	p, ok := m.projects[projectID]
	if !ok {
		return
	}
	p.Candidates += delta
	if p.Candidates < 0 {
		p.Candidates = 0
	}
	p.LastUpdated = time.Now()
}

func (m *memoryStore) CreateFile(f *model.UploadedFile) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextFileID++
	f.ID = m.nextFileID
	cp := *f
	m.files = append(m.files, &cp)
	return nil
}

func (m *memoryStore) setStatus(f *model.UploadedFile, status string) {
	for _, stored := range m.files {
		if stored.ID == f.ID {
			stored.Status = status
		}
	}
	f.Status = status
}

func (m *memoryStore) MarkDone(f *model.UploadedFile) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.setStatus(f, model.FileStatusDone)
	m.adjustCandidates(f.ProjectID, 1)
	return nil
}

func (m *memoryStore) MarkFailed(f *model.UploadedFile) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.setStatus(f, model.FileStatusFailed)
	return nil
}

func (m *memoryStore) FindFilesByProject(projectID string) ([]model.UploadedFile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.UploadedFile
	for _, f := range m.files {
		if f.ProjectID == projectID {
			out = append(out, *f)
		}
	}
	return out, nil
}

func (m *memoryStore) DeleteFiles(fileName, projectID string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	kept := m.files[:0]
	removed := 0
	for _, f := range m.files {
		if f.Name == fileName && (projectID == "" || f.ProjectID == projectID) {
			removed++
			if f.ProjectID != "" && f.Status == model.FileStatusDone {
				m.adjustCandidates(f.ProjectID, -1)
			}
			continue
		}
		kept = append(kept, f)
	}
	m.files = kept
	return removed, nil
}

func (m *memoryStore) ReplaceResults(projectID string, results []model.AssessmentResult) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.assessments[projectID] = append([]model.AssessmentResult(nil), results...)
	return nil
}

func (m *memoryStore) FindResultsByProject(projectID string) ([]model.AssessmentResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]model.AssessmentResult(nil), m.assessments[projectID]...), nil
}

func (m *memoryStore) addProject(id, jobTitle, description string, candidates int) {
	m.projects[id] = &model.Project{
		ID:          id,
		Name:        jobTitle + " hiring",
		JobTitle:    jobTitle,
		Description: description,
		Status:      model.ProjectStatusActive,
		Candidates:  candidates,
		Criteria:    model.DefaultCriteria(),
	}
}

type fakeExtractor struct {
	mu    sync.Mutex
	texts map[string]string
	fail  map[string]error
	calls []string
}

func (f *fakeExtractor) ExtractText(ctx context.Context, storageKey string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, storageKey)
	if err, ok := f.fail[storageKey]; ok {
		return "", &apperror.ExtractionError{Key: storageKey, Err: err}
	}
	return f.texts[storageKey], nil
}

type llmCall struct {
	system     string
	user       string
	structured bool
}

// fakeLLM answers by looking for a marker in the user prompt.
type fakeLLM struct {
	mu      sync.Mutex
	calls   []llmCall
	answers map[string]string
	fail    map[string]error
	delay   map[string]time.Duration
}

func (f *fakeLLM) Call(ctx context.Context, systemPrompt, userPrompt string, structured bool) (string, error) {
	f.mu.Lock()
	f.calls = append(f.calls, llmCall{system: systemPrompt, user: userPrompt, structured: structured})
	var (
		answer string
		err    error
		wait   time.Duration
		found  bool
	)
	for marker, a := range f.answers {
		if strings.Contains(userPrompt, marker) {
			answer, wait, found = a, f.delay[marker], true
		}
	}
	for marker, e := range f.fail {
		if strings.Contains(userPrompt, marker) {
			err, found = e, true
		}
	}
	f.mu.Unlock()

	if wait > 0 {
		time.Sleep(wait)
	}
	if err != nil {
		return "", &apperror.ModelCallError{Message: err.Error(), Err: err}
	}
	if !found {
		return "", errors.New("no scripted answer")
	}
	return answer, nil
}

type fakeStorage struct {
	mu      sync.Mutex
	objects map[string][]byte
	putErr  error
	delErr  error
	signed  []string
	signs   int
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{objects: map[string][]byte{}}
}

func (f *fakeStorage) Put(ctx context.Context, data []byte, name string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.putErr != nil {
		return "", f.putErr
	}
	key := service.NormalizeKey(name)
	f.objects[key] = data
	return key, nil
}

func (f *fakeStorage) Get(ctx context.Context, name string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	data, ok := f.objects[service.NormalizeKey(name)]
	if !ok {
		return nil, apperror.NewNotFoundError("file", name)
	}
	return data, nil
}

func (f *fakeStorage) Delete(ctx context.Context, name string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.delErr != nil {
		return f.delErr
	}
	delete(f.objects, service.NormalizeKey(name))
	return nil
}

func (f *fakeStorage) SignedURL(ctx context.Context, name string, ttl time.Duration, disposition string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.signs++
	f.signed = append(f.signed, disposition)
	return fmt.Sprintf("https://bucket.s3.local/%s?sig=%d", service.NormalizeKey(name), f.signs), nil
}
