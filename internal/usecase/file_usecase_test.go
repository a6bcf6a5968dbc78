package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/fadilmartias/resume-screener/internal/apperror"
	"github.com/fadilmartias/resume-screener/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newFileFixture() (*FileUsecase, *memoryStore, *fakeStorage) {
	store := newMemoryStore()
	storage := newFakeStorage()
	uc := NewFileUsecase(storage, store, store, zap.NewNop())
	uc.now = func() time.Time { return time.Date(2024, 3, 9, 23, 30, 0, 0, time.UTC) }
	return uc, store, storage
}

func TestUpload_RejectsNonPDFBeforeStorage(t *testing.T) {
	uc, store, storage := newFileFixture()
	store.addProject("p1", "Backend Engineer", "", 0)

	_, err := uc.Upload(context.Background(), UploadInput{FileName: "cv.docx", ContentType: "application/msword", Data: []byte("x"), ProjectID: "p1"})

	var verr *apperror.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, 400, apperror.StatusCode(err))
	assert.Empty(t, storage.objects)
	assert.Empty(t, store.files)
}

func TestUpload_WithoutProject(t *testing.T) {
	uc, store, storage := newFileFixture()

	resp, err := uc.Upload(context.Background(), UploadInput{FileName: "cv.pdf", ContentType: "application/pdf", Data: []byte("%PDF")})
	require.NoError(t, err)

	assert.Equal(t, "uploads/cv.pdf", resp.Path)
	assert.Equal(t, "2024-03-09", resp.UploadDate)
	assert.Equal(t, model.FileStatusDone, resp.Status)
	assert.Equal(t, []byte("%PDF"), storage.objects["uploads/cv.pdf"])
	assert.Empty(t, store.files)
}

func TestUpload_TracksProjectFile(t *testing.T) {
	uc, store, _ := newFileFixture()
	store.addProject("p1", "Backend Engineer", "", 0)

	_, err := uc.Upload(context.Background(), UploadInput{FileName: "cv.pdf", ContentType: "application/pdf; charset=binary", Data: []byte("%PDF"), ProjectID: "p1"})
	require.NoError(t, err)

	files, err := uc.ProjectFiles("p1")
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, model.FileStatusDone, files[0].Status)
	assert.Equal(t, "2024-03-09", files[0].UploadDate)

	project, err := store.FindProjectByID("p1")
	require.NoError(t, err)
	assert.Equal(t, 1, project.Candidates)
}

func TestUpload_StorageFailureMarksFailed(t *testing.T) {
	uc, store, storage := newFileFixture()
	store.addProject("p1", "Backend Engineer", "", 0)
	storage.putErr = &apperror.StorageError{Op: "upload", Key: "uploads/cv.pdf", Err: errors.New("access denied")}

	_, err := uc.Upload(context.Background(), UploadInput{FileName: "cv.pdf", ContentType: "application/pdf", Data: []byte("%PDF"), ProjectID: "p1"})
	require.Error(t, err)
	assert.Equal(t, 500, apperror.StatusCode(err))

	files, err := store.FindFilesByProject("p1")
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, model.FileStatusFailed, files[0].Status)

	project, _ := store.FindProjectByID("p1")
	assert.Zero(t, project.Candidates)
}

func TestUpload_UnknownProject(t *testing.T) {
	uc, _, storage := newFileFixture()

	_, err := uc.Upload(context.Background(), UploadInput{FileName: "cv.pdf", ContentType: "application/pdf", ProjectID: "nope"})

	assert.Equal(t, 404, apperror.StatusCode(err))
	assert.Empty(t, storage.objects)
}

func TestDelete_CandidateCountNeverNegative(t *testing.T) {
	uc, store, storage := newFileFixture()
	store.addProject("p1", "Backend Engineer", "", 0)
	// counted record on a project whose count already reads zero
	require.NoError(t, store.CreateFile(&model.UploadedFile{Name: "cv.pdf", Status: model.FileStatusDone, ProjectID: "p1"}))
	storage.objects["uploads/cv.pdf"] = []byte("%PDF")

	require.NoError(t, uc.Delete(context.Background(), "uploads/cv.pdf", "p1"))

	project, err := store.FindProjectByID("p1")
	require.NoError(t, err)
	assert.Equal(t, 0, project.Candidates)
	assert.Empty(t, store.files)
	assert.Empty(t, storage.objects)
}

func TestDelete_UncountedRecordKeepsCandidateCount(t *testing.T) {
	uc, store, _ := newFileFixture()
	store.addProject("p1", "Backend Engineer", "", 0)
	_, err := uc.Upload(context.Background(), UploadInput{FileName: "a.pdf", ContentType: "application/pdf", ProjectID: "p1"})
	require.NoError(t, err)
	require.NoError(t, store.CreateFile(&model.UploadedFile{Name: "b.pdf", Status: model.FileStatusFailed, ProjectID: "p1"}))
	require.NoError(t, store.CreateFile(&model.UploadedFile{Name: "c.pdf", Status: model.FileStatusPending, ProjectID: "p1"}))

	require.NoError(t, uc.Delete(context.Background(), "b.pdf", "p1"))
	require.NoError(t, uc.Delete(context.Background(), "c.pdf", "p1"))

	project, err := store.FindProjectByID("p1")
	require.NoError(t, err)
	assert.Equal(t, 1, project.Candidates)
	files, err := store.FindFilesByProject("p1")
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, "a.pdf", files[0].Name)
}

func TestDelete_AfterUpload(t *testing.T) {
	uc, store, _ := newFileFixture()
	store.addProject("p1", "Backend Engineer", "", 0)
	_, err := uc.Upload(context.Background(), UploadInput{FileName: "a.pdf", ContentType: "application/pdf", ProjectID: "p1"})
	require.NoError(t, err)
	_, err = uc.Upload(context.Background(), UploadInput{FileName: "b.pdf", ContentType: "application/pdf", ProjectID: "p1"})
	require.NoError(t, err)

	require.NoError(t, uc.Delete(context.Background(), "a.pdf", "p1"))

	project, _ := store.FindProjectByID("p1")
	assert.Equal(t, 1, project.Candidates)
	files, _ := store.FindFilesByProject("p1")
	require.Len(t, files, 1)
	assert.Equal(t, "b.pdf", files[0].Name)
}

func TestDelete_Validation(t *testing.T) {
	uc, _, _ := newFileFixture()

	err := uc.Delete(context.Background(), "", "")

	assert.Equal(t, 400, apperror.StatusCode(err))
}

func TestDownloadURL_DistinctPerCall(t *testing.T) {
	uc, _, storage := newFileFixture()

	first, err := uc.DownloadURL(context.Background(), "uploads/cv.pdf")
	require.NoError(t, err)
	second, err := uc.DownloadURL(context.Background(), "uploads/cv.pdf")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.Equal(t, `attachment; filename="cv.pdf"`, storage.signed[0])
}

func TestViewURL(t *testing.T) {
	uc, _, storage := newFileFixture()

	url, err := uc.ViewURL(context.Background(), "cv.pdf")
	require.NoError(t, err)
	assert.Contains(t, url, "uploads/cv.pdf")
	assert.Equal(t, "inline", storage.signed[0])

	_, err = uc.ViewURL(context.Background(), "")
	assert.Equal(t, 400, apperror.StatusCode(err))
}
