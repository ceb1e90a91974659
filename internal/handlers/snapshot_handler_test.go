package handlers

import (
	"Shoebox/internal/config"
	"Shoebox/internal/dto"
	"Shoebox/internal/models"
	"Shoebox/internal/services"
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockSnapshotService struct {
	mock.Mock
}

func (m *MockSnapshotService) Export(root *models.Node, onProgress services.ProgressFunc) ([]byte, error) {
	args := m.Called(root, onProgress)
	if data, ok := args.Get(0).([]byte); ok {
		return data, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockSnapshotService) Import(data []byte) (*models.Node, []*models.Node, error) {
	args := m.Called(data)
	root, _ := args.Get(0).(*models.Node)
	files, _ := args.Get(1).([]*models.Node)
	return root, files, args.Error(2)
}

func (m *MockSnapshotService) CountViewableFiles(root *models.Node) int {
	args := m.Called(root)
	return args.Int(0)
}

type MockLibraryService struct {
	mock.Mock
}

func (m *MockLibraryService) Record(name string, artifact []byte, fileCount int) (*models.SnapshotRecord, error) {
	args := m.Called(name, artifact, fileCount)
	if record, ok := args.Get(0).(*models.SnapshotRecord); ok {
		return record, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockLibraryService) GetRecords() ([]models.SnapshotRecord, error) {
	args := m.Called()
	if records, ok := args.Get(0).([]models.SnapshotRecord); ok {
		return records, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockLibraryService) GetRecordByID(id uint) (*models.SnapshotRecord, error) {
	args := m.Called(id)
	if record, ok := args.Get(0).(*models.SnapshotRecord); ok {
		return record, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockLibraryService) ReadArtifact(record *models.SnapshotRecord) ([]byte, error) {
	args := m.Called(record)
	if data, ok := args.Get(0).([]byte); ok {
		return data, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockLibraryService) DeleteRecord(id uint) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockLibraryService) GetTrashedBefore(cutoff time.Time) ([]models.SnapshotRecord, error) {
	args := m.Called(cutoff)
	if records, ok := args.Get(0).([]models.SnapshotRecord); ok {
		return records, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockLibraryService) Purge(record *models.SnapshotRecord) error {
	args := m.Called(record)
	return args.Error(0)
}

func newSnapshotHandlerKit(configuration *config.Configuration) (*SnapshotHandler, *MockWorkspaceService, *MockSnapshotService, *MockLibraryService) {
	if configuration == nil {
		configuration = &config.Configuration{}
	}
	mockWorkspace := new(MockWorkspaceService)
	mockSnapshot := new(MockSnapshotService)
	mockLibrary := new(MockLibraryService)
	handler := NewSnapshotHandler(mockWorkspace, mockSnapshot, mockLibrary, newTestLogService(), configuration)
	return handler, mockWorkspace, mockSnapshot, mockLibrary
}

func TestExportSnapshot_Success(t *testing.T) {
	handler, mockWorkspace, mockSnapshot, mockLibrary := newSnapshotHandlerKit(nil)
	app := fiber.New()
	app.Post("/snapshots/export", handler.Export)

	root, _ := buildHandlerTree()
	artifact := []byte(`{"id":"","type":"folder","children":[]}`)
	record := &models.SnapshotRecord{Name: "Holiday", FileName: "holiday-20240101-000000-abcd1234.afm"}

	mockWorkspace.On("WithTree", mock.Anything).Return(root, nil).Once()
	mockSnapshot.On("CountViewableFiles", root).Return(1).Once()
	mockSnapshot.On("Export", root, mock.Anything).Run(func(args mock.Arguments) {
		if onProgress, ok := args.Get(1).(services.ProgressFunc); ok && onProgress != nil {
			onProgress()
		}
	}).Return(artifact, nil).Once()
	mockLibrary.On("Record", "Holiday", artifact, 1).Return(record, nil).Once()

	req := httptest.NewRequest(http.MethodPost, "/snapshots/export?name=Holiday", nil)
	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, artifact, body)
	assert.Equal(t, "application/json", resp.Header.Get(fiber.HeaderContentType))
	assert.Contains(t, resp.Header.Get(fiber.HeaderContentDisposition), record.FileName)

	// the gauge saw the whole run and is idle again
	progress := handler.Progress()
	assert.False(t, progress.Active)
	assert.Equal(t, 1, progress.Processed)
	assert.Equal(t, 1, progress.Total)

	mockWorkspace.AssertExpectations(t)
	mockSnapshot.AssertExpectations(t)
	mockLibrary.AssertExpectations(t)
}

func TestExportSnapshot_NoWorkspace(t *testing.T) {
	handler, mockWorkspace, _, _ := newSnapshotHandlerKit(nil)
	app := fiber.New()
	app.Post("/snapshots/export", handler.Export)

	mockWorkspace.On("WithTree", mock.Anything).Return(nil, services.ErrNoWorkspace).Once()

	resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/snapshots/export", nil))
	assert.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	mockWorkspace.AssertExpectations(t)
}

func TestExportSnapshot_SerializerFailure(t *testing.T) {
	handler, mockWorkspace, mockSnapshot, _ := newSnapshotHandlerKit(nil)
	app := fiber.New()
	app.Post("/snapshots/export", handler.Export)

	root, _ := buildHandlerTree()
	mockWorkspace.On("WithTree", mock.Anything).Return(root, nil).Once()
	mockSnapshot.On("CountViewableFiles", root).Return(1).Once()
	mockSnapshot.On("Export", root, mock.Anything).Return(nil, errors.New("transcoder is closed")).Once()

	resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/snapshots/export", nil))
	assert.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)

	// a failed export must not leave the gauge active
	assert.False(t, handler.Progress().Active)
}

func TestExportSnapshot_TooLarge(t *testing.T) {
	configuration := &config.Configuration{}
	configuration.Server.SnapshotConfig.MaxExportMB = 1
	handler, mockWorkspace, mockSnapshot, _ := newSnapshotHandlerKit(configuration)
	app := fiber.New()
	app.Post("/snapshots/export", handler.Export)

	root, _ := buildHandlerTree()
	oversized := bytes.Repeat([]byte("x"), 1024*1024+1)
	mockWorkspace.On("WithTree", mock.Anything).Return(root, nil).Once()
	mockSnapshot.On("CountViewableFiles", root).Return(1).Once()
	mockSnapshot.On("Export", root, mock.Anything).Return(oversized, nil).Once()

	resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/snapshots/export", nil))
	assert.NoError(t, err)
	assert.Equal(t, http.StatusRequestEntityTooLarge, resp.StatusCode)
}

func TestExportSnapshot_LibraryFailureStillServes(t *testing.T) {
	handler, mockWorkspace, mockSnapshot, mockLibrary := newSnapshotHandlerKit(nil)
	app := fiber.New()
	app.Post("/snapshots/export", handler.Export)

	root, _ := buildHandlerTree()
	artifact := []byte(`{}`)
	mockWorkspace.On("WithTree", mock.Anything).Return(root, nil).Once()
	mockSnapshot.On("CountViewableFiles", root).Return(0).Once()
	mockSnapshot.On("Export", root, mock.Anything).Return(artifact, nil).Once()
	mockLibrary.On("Record", "workspace", artifact, 0).Return(nil, errors.New("library disk full")).Once()

	resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/snapshots/export", nil))
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get(fiber.HeaderContentDisposition), "workspace"+models.SnapshotExt)
}

func TestImportSnapshot_Scenarios(t *testing.T) {
	artifact := []byte(`{"id":"","type":"folder","children":[]}`)

	tests := []struct {
		name          string
		buildRequest  func(t *testing.T) *http.Request
		setupMock     func(workspace *MockWorkspaceService, snapshot *MockSnapshotService)
		expectedCode  int
		checkResponse func(*testing.T, *http.Response)
	}{
		{
			name: "Raw body restores the workspace",
			buildRequest: func(t *testing.T) *http.Request {
				req := httptest.NewRequest(http.MethodPost, "/snapshots/import", bytes.NewReader(artifact))
				req.Header.Set("Content-Type", "application/json")
				return req
			},
			setupMock: func(workspace *MockWorkspaceService, snapshot *MockSnapshotService) {
				root, files := buildHandlerTree()
				snapshot.On("Import", artifact).Return(root, files, nil).Once()
				workspace.On("Load", root, files).Return().Once()
			},
			expectedCode: http.StatusOK,
			checkResponse: func(t *testing.T, resp *http.Response) {
				var tree dto.NodeGetDTO
				body, _ := io.ReadAll(resp.Body)
				assert.NoError(t, json.Unmarshal(body, &tree))
				assert.Equal(t, "photos", tree.Children[0].Name)
			},
		},
		{
			name: "Multipart upload",
			buildRequest: func(t *testing.T) *http.Request {
				body := &bytes.Buffer{}
				writer := multipart.NewWriter(body)
				part, err := writer.CreateFormFile("file", "trip.afm")
				assert.NoError(t, err)
				_, err = part.Write(artifact)
				assert.NoError(t, err)
				assert.NoError(t, writer.Close())
				req := httptest.NewRequest(http.MethodPost, "/snapshots/import", body)
				req.Header.Set("Content-Type", writer.FormDataContentType())
				return req
			},
			setupMock: func(workspace *MockWorkspaceService, snapshot *MockSnapshotService) {
				root, files := buildHandlerTree()
				snapshot.On("Import", mock.MatchedBy(func(data []byte) bool {
					return bytes.Equal(data, artifact)
				})).Return(root, files, nil).Once()
				workspace.On("Load", root, files).Return().Once()
			},
			expectedCode:  http.StatusOK,
			checkResponse: func(t *testing.T, resp *http.Response) {},
		},
		{
			name: "Empty body",
			buildRequest: func(t *testing.T) *http.Request {
				return httptest.NewRequest(http.MethodPost, "/snapshots/import", nil)
			},
			setupMock:     func(workspace *MockWorkspaceService, snapshot *MockSnapshotService) {},
			expectedCode:  http.StatusBadRequest,
			checkResponse: func(t *testing.T, resp *http.Response) {},
		},
		{
			name: "Invalid document",
			buildRequest: func(t *testing.T) *http.Request {
				req := httptest.NewRequest(http.MethodPost, "/snapshots/import", bytes.NewReader([]byte("not a snapshot")))
				req.Header.Set("Content-Type", "application/json")
				return req
			},
			setupMock: func(workspace *MockWorkspaceService, snapshot *MockSnapshotService) {
				snapshot.On("Import", []byte("not a snapshot")).Return(nil, nil, services.ErrInvalidSnapshot).Once()
			},
			expectedCode:  http.StatusBadRequest,
			checkResponse: func(t *testing.T, resp *http.Response) {},
		},
		{
			name: "Rebuild failure",
			buildRequest: func(t *testing.T) *http.Request {
				req := httptest.NewRequest(http.MethodPost, "/snapshots/import", bytes.NewReader(artifact))
				req.Header.Set("Content-Type", "application/json")
				return req
			},
			setupMock: func(workspace *MockWorkspaceService, snapshot *MockSnapshotService) {
				snapshot.On("Import", artifact).Return(nil, nil, errors.New("blob store unavailable")).Once()
			},
			expectedCode:  http.StatusInternalServerError,
			checkResponse: func(t *testing.T, resp *http.Response) {},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler, mockWorkspace, mockSnapshot, _ := newSnapshotHandlerKit(nil)
			app := fiber.New()
			app.Post("/snapshots/import", handler.Import)

			tt.setupMock(mockWorkspace, mockSnapshot)

			resp, err := app.Test(tt.buildRequest(t))
			assert.NoError(t, err)
			assert.Equal(t, tt.expectedCode, resp.StatusCode)
			tt.checkResponse(t, resp)

			mockWorkspace.AssertExpectations(t)
			mockSnapshot.AssertExpectations(t)
		})
	}
}
