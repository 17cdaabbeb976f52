package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portfolio-backend/internal/domains/photo/model"
	"portfolio-backend/internal/shared/middleware"
)

const (
	testPhotoID = "6f1b4a2c-9d3e-4f5a-8b6c-7d8e9f0a1b2c"
	// unsigned token with {"email":"cindy@example.com"} claims
	testToken = "eyJhbGciOiJub25lIiwidHlwIjoiSldUIn0.eyJlbWFpbCI6ImNpbmR5QGV4YW1wbGUuY29tIn0."
)

type stubPhotoService struct {
	photos      map[string]*model.Photo
	bulkCalled  bool
	deleteCalls int
}

func newStubPhotoService() *stubPhotoService {
	return &stubPhotoService{photos: map[string]*model.Photo{}}
}

func (s *stubPhotoService) GenerateUploadURL(_ context.Context, req model.UploadURLRequest) (*model.UploadURLResponse, error) {
	return &model.UploadURLResponse{
		UploadURL: "https://storage.test/uploads/x.jpg?signature=test",
		PhotoID:   testPhotoID,
		ObjectKey: "uploads/x.jpg",
		ExpiresAt: time.Now().Add(300 * time.Second),
	}, nil
}

func (s *stubPhotoService) Create(_ context.Context, req model.CreatePhotoRequest, uploadedBy string) (*model.Photo, error) {
	p := &model.Photo{ID: req.PhotoID, Title: req.Title, Status: model.StatusPending, UploadedBy: uploadedBy, ObjectKey: "uploads/" + req.PhotoID + ".jpg"}
	s.photos[p.ID] = p
	return p, nil
}

func (s *stubPhotoService) Get(_ context.Context, id string) (*model.Photo, error) {
	p, ok := s.photos[id]
	if !ok {
		return nil, model.ErrPhotoNotFound
	}
	return p, nil
}

func (s *stubPhotoService) List(_ context.Context, status string, _ int) ([]*model.Photo, error) {
	var out []*model.Photo
	for _, p := range s.photos {
		if p.Status == status {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *stubPhotoService) Update(_ context.Context, id string, _ model.UpdatePhotoRequest) (*model.Photo, error) {
	p, ok := s.photos[id]
	if !ok {
		return nil, model.ErrPhotoNotFound
	}
	return p, nil
}

func (s *stubPhotoService) Delete(_ context.Context, id string) (*model.DeleteResult, error) {
	s.deleteCalls++
	if _, ok := s.photos[id]; !ok {
		return nil, model.ErrPhotoNotFound
	}
	return &model.DeleteResult{PhotoID: id, Status: model.StatusArchived}, nil
}

func (s *stubPhotoService) BulkUpdate(_ context.Context, req model.BulkUpdateRequest) (*model.BulkUpdateResult, error) {
	s.bulkCalled = true
	return &model.BulkUpdateResult{Updated: req.PhotoIDs, Failed: []model.BulkFailure{}}, nil
}

func (s *stubPhotoService) PublicURL(key string) string {
	return "https://cdn.test/" + key
}

func setupRouter(svc *stubPhotoService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewPhotoHandler(svc)

	r := gin.New()
	photos := r.Group("/api/v1/photos")
	photos.GET("", middleware.OptionalAuth(), h.ListPhotos)
	photos.GET("/:photoId", middleware.OptionalAuth(), h.GetPhoto)
	photos.POST("", middleware.RequireAuth(), h.CreatePhoto)
	photos.POST("/upload-url", middleware.RequireAuth(), h.GenerateUploadURL)
	photos.PATCH("/:photoId", middleware.RequireAuth(), h.UpdatePhoto)
	photos.DELETE("/:photoId", middleware.RequireAuth(), h.DeletePhoto)
	photos.POST("/bulk", middleware.RequireAuth(), h.BulkUpdatePhotos)
	return r
}

func doJSON(r *gin.Engine, method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		data, _ := json.Marshal(body)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func errorTypeOf(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	errType, _ := body["errorType"].(string)
	return errType
}

func TestGetPhotoRejectsMalformedID(t *testing.T) {
	r := setupRouter(newStubPhotoService())

	w := doJSON(r, http.MethodGet, "/api/v1/photos/not-a-uuid", nil, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "ValidationError", errorTypeOf(t, w))
}

func TestGetPhotoNotFound(t *testing.T) {
	r := setupRouter(newStubPhotoService())

	w := doJSON(r, http.MethodGet, "/api/v1/photos/"+testPhotoID, nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "NotFoundError", errorTypeOf(t, w))
}

func TestGetPendingPhotoHiddenFromAnonymous(t *testing.T) {
	svc := newStubPhotoService()
	svc.photos[testPhotoID] = &model.Photo{ID: testPhotoID, Status: model.StatusPending, ObjectKey: "uploads/x.jpg"}
	r := setupRouter(svc)

	w := doJSON(r, http.MethodGet, "/api/v1/photos/"+testPhotoID, nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(r, http.MethodGet, "/api/v1/photos/"+testPhotoID, nil, testToken)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestGetPhotoStripsUploaderForAnonymous(t *testing.T) {
	svc := newStubPhotoService()
	svc.photos[testPhotoID] = &model.Photo{
		ID:         testPhotoID,
		Status:     model.StatusPublished,
		UploadedBy: "cindy@example.com",
		ObjectKey:  "originals/x.jpg",
	}
	r := setupRouter(svc)

	w := doJSON(r, http.MethodGet, "/api/v1/photos/"+testPhotoID, nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), "uploadedBy")

	w = doJSON(r, http.MethodGet, "/api/v1/photos/"+testPhotoID, nil, testToken)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "cindy@example.com")
}

func TestListUnpublishedForbiddenForAnonymous(t *testing.T) {
	r := setupRouter(newStubPhotoService())

	w := doJSON(r, http.MethodGet, "/api/v1/photos?status=pending", nil, "")
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "ForbiddenError", errorTypeOf(t, w))

	w = doJSON(r, http.MethodGet, "/api/v1/photos?status=pending", nil, testToken)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestListRejectsUnknownStatus(t *testing.T) {
	r := setupRouter(newStubPhotoService())

	w := doJSON(r, http.MethodGet, "/api/v1/photos?status=starred", nil, testToken)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "ValidationError", errorTypeOf(t, w))
}

func TestListRejectsBadLimit(t *testing.T) {
	r := setupRouter(newStubPhotoService())

	w := doJSON(r, http.MethodGet, "/api/v1/photos?limit=zero", nil, testToken)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreatePhotoRequiresAuth(t *testing.T) {
	r := setupRouter(newStubPhotoService())

	w := doJSON(r, http.MethodPost, "/api/v1/photos", model.CreatePhotoRequest{
		PhotoID: testPhotoID, Title: "T", Alt: "A",
	}, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "UnauthorizedError", errorTypeOf(t, w))
}

func TestCreatePhotoRecordsUploaderIdentity(t *testing.T) {
	svc := newStubPhotoService()
	r := setupRouter(svc)

	w := doJSON(r, http.MethodPost, "/api/v1/photos", model.CreatePhotoRequest{
		PhotoID: testPhotoID, Title: "T", Alt: "A",
	}, testToken)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "cindy@example.com", svc.photos[testPhotoID].UploadedBy)
}

func TestCreatePhotoValidatesBody(t *testing.T) {
	r := setupRouter(newStubPhotoService())

	w := doJSON(r, http.MethodPost, "/api/v1/photos", model.CreatePhotoRequest{
		PhotoID: "nope", Title: "T", Alt: "A",
	}, testToken)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "ValidationError", errorTypeOf(t, w))
}

func TestUploadURLRejectsOversizedFile(t *testing.T) {
	r := setupRouter(newStubPhotoService())

	w := doJSON(r, http.MethodPost, "/api/v1/photos/upload-url", model.UploadURLRequest{
		FileType: "image/jpeg",
		FileSize: model.MaxUploadSize + 1,
	}, testToken)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUploadURLRejectsUnsupportedType(t *testing.T) {
	r := setupRouter(newStubPhotoService())

	w := doJSON(r, http.MethodPost, "/api/v1/photos/upload-url", model.UploadURLRequest{
		FileType: "image/tiff",
		FileSize: 1024,
	}, testToken)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdatePhotoRejectsEmptyBody(t *testing.T) {
	svc := newStubPhotoService()
	svc.photos[testPhotoID] = &model.Photo{ID: testPhotoID, Status: model.StatusPending, ObjectKey: "uploads/x.jpg"}
	r := setupRouter(svc)

	w := doJSON(r, http.MethodPatch, "/api/v1/photos/"+testPhotoID, map[string]interface{}{}, testToken)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestBulkUpdateRejectsTooManyIDs(t *testing.T) {
	svc := newStubPhotoService()
	r := setupRouter(svc)

	ids := make([]string, model.MaxBulkPhotos+1)
	for i := range ids {
		ids[i] = fmt.Sprintf("6f1b4a2c-9d3e-4f5a-8b6c-%012d", i)
	}
	gallery := "landscapes"
	w := doJSON(r, http.MethodPost, "/api/v1/photos/bulk", model.BulkUpdateRequest{
		PhotoIDs: ids,
		Updates:  model.UpdatePhotoRequest{Gallery: &gallery},
	}, testToken)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.False(t, svc.bulkCalled, "bulk update must be rejected before touching the service")
}

func TestBulkUpdateRejectsEmptyUpdates(t *testing.T) {
	r := setupRouter(newStubPhotoService())

	w := doJSON(r, http.MethodPost, "/api/v1/photos/bulk", model.BulkUpdateRequest{
		PhotoIDs: []string{testPhotoID},
	}, testToken)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDeletePhotoRequiresAuth(t *testing.T) {
	svc := newStubPhotoService()
	svc.photos[testPhotoID] = &model.Photo{ID: testPhotoID, Status: model.StatusPending}
	r := setupRouter(svc)

	w := doJSON(r, http.MethodDelete, "/api/v1/photos/"+testPhotoID, nil, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Zero(t, svc.deleteCalls)
}
