package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/fadilmartias/resume-screener/internal/apperror"
	"github.com/fadilmartias/resume-screener/internal/model"
	"github.com/fadilmartias/resume-screener/internal/service"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
)

type fakeStorage struct {
	mu      sync.Mutex
	objects map[string][]byte
	calls   int
	signs   int
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{objects: map[string][]byte{}}
}

func (f *fakeStorage) Put(ctx context.Context, data []byte, name string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	key := service.NormalizeKey(name)
	f.objects[key] = data
	return key, nil
}

func (f *fakeStorage) Get(ctx context.Context, name string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	data, ok := f.objects[service.NormalizeKey(name)]
	if !ok {
		return nil, apperror.NewNotFoundError("file", name)
	}
	return data, nil
}

func (f *fakeStorage) Delete(ctx context.Context, name string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	delete(f.objects, service.NormalizeKey(name))
	return nil
}

func (f *fakeStorage) SignedURL(ctx context.Context, name string, ttl time.Duration, disposition string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.signs++
	return fmt.Sprintf("https://bucket.s3.local/%s?X-Amz-Signature=%d", service.NormalizeKey(name), f.signs), nil
}

// fakeStore keeps projects and file records in memory.
type fakeStore struct {
	mu       sync.Mutex
	projects map[string]*model.Project
	files    []model.UploadedFile
	results  map[string][]model.AssessmentResult
	nextID   uint
}

func newFakeStore() *fakeStore {
	return &fakeStore{projects: map[string]*model.Project{}, results: map[string][]model.AssessmentResult{}}
}

func (s *fakeStore) CreateProject(p *model.Project) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *p
	s.projects[p.ID] = &cp
	return nil
}

func (s *fakeStore) FindProjectByID(id string) (*model.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.projects[id]
	if !ok {
		return nil, apperror.NewNotFoundError("project", id)
	}
	cp := *p
	return &cp, nil
}

func (s *fakeStore) GetProjects(page, pageSize int) ([]model.Project, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Project, 0, len(s.projects))
	for _, p := range s.projects {
		out = append(out, *p)
	}
	return out, int64(len(out)), nil
}

func (s *fakeStore) UpdateStatus(id, status string) (*model.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.projects[id]
	if !ok {
		return nil, apperror.NewNotFoundError("project", id)
	}
	p.Status = status
	cp := *p
	return &cp, nil
}

func (s *fakeStore) adjust(projectID string, delta int) {
	if p, ok := s.projects[projectID]; ok {
		p.Candidates = max(p.Candidates+delta, 0)
	}
}

func (s *fakeStore) CreateFile(f *model.UploadedFile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	f.ID = s.nextID
	s.files = append(s.files, *f)
	return nil
}

func (s *fakeStore) mark(f *model.UploadedFile, status string) {
	for i := range s.files {
		if s.files[i].ID == f.ID {
			s.files[i].Status = status
		}
	}
	f.Status = status
}

func (s *fakeStore) MarkDone(f *model.UploadedFile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mark(f, model.FileStatusDone)
	s.adjust(f.ProjectID, 1)
	return nil
}

func (s *fakeStore) MarkFailed(f *model.UploadedFile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mark(f, model.FileStatusFailed)
	return nil
}

func (s *fakeStore) FindFilesByProject(projectID string) ([]model.UploadedFile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.UploadedFile
	for _, f := range s.files {
		if f.ProjectID == projectID {
			out = append(out, f)
		}
	}
	return out, nil
}

func (s *fakeStore) DeleteFiles(fileName, projectID string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.files[:0]
	removed := 0
	for _, f := range s.files {
		if f.Name == fileName && (projectID == "" || f.ProjectID == projectID) {
			removed++
			if f.ProjectID != "" && f.Status == model.FileStatusDone {
				s.adjust(f.ProjectID, -1)
			}
			continue
		}
		kept = append(kept, f)
	}
	s.files = kept
	return removed, nil
}

func (s *fakeStore) ReplaceResults(projectID string, results []model.AssessmentResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.results[projectID] = append([]model.AssessmentResult(nil), results...)
	return nil
}

func (s *fakeStore) FindResultsByProject(projectID string) ([]model.AssessmentResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.AssessmentResult(nil), s.results[projectID]...), nil
}

type fakeExtractor struct {
	texts map[string]string
}

func (f *fakeExtractor) ExtractText(ctx context.Context, storageKey string) (string, error) {
	text, ok := f.texts[storageKey]
	if !ok {
		return "", &apperror.ExtractionError{Key: storageKey, Err: apperror.NewNotFoundError("file", storageKey)}
	}
	return text, nil
}

// fakeLLM hands back whatever respond returns for the prompts it sees.
type fakeLLM struct {
	mu      sync.Mutex
	prompts []string
	respond func(userPrompt string, structured bool) (string, error)
}

func (f *fakeLLM) Call(ctx context.Context, systemPrompt, userPrompt string, structured bool) (string, error) {
	f.mu.Lock()
	f.prompts = append(f.prompts, userPrompt)
	f.mu.Unlock()
	return f.respond(userPrompt, structured)
}

func newTestApp() *fiber.App {
	return fiber.New(fiber.Config{BodyLimit: 10 * 1024 * 1024})
}

func doJSON(t *testing.T, app *fiber.App, method, target string, body any) (*http.Response, map[string]any) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		switch b := body.(type) {
		case string:
			reader = strings.NewReader(b)
		default:
			raw, err := json.Marshal(b)
			require.NoError(t, err)
			reader = bytes.NewReader(raw)
		}
	}
	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp, decodeBody(t, resp)
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	out := map[string]any{}
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &out), string(raw))
	}
	return out
}

func multipartUpload(t *testing.T, fileName, contentType string, data []byte, fields map[string]string) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	if fileName != "" {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename="%s"`, fileName))
		h.Set("Content-Type", contentType)
		part, err := w.CreatePart(h)
		require.NoError(t, err)
		_, err = part.Write(data)
		require.NoError(t, err)
	}
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(fiber.MethodPost, "/upload", &buf)
	req.Header.Set(fiber.HeaderContentType, w.FormDataContentType())
	return req
}
