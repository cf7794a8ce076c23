package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zwennpay/statements/src/config"
	"github.com/zwennpay/statements/src/models"
	"github.com/zwennpay/statements/src/services"
)

type stubStatementService struct {
	result  *models.BatchResult
	archive []byte
	err     error

	gotMasterFilename  string
	gotSummaryFilename string
	gotPeriod          models.PeriodWindow
	gotNotify          bool
}

func (s *stubStatementService) GenerateStatements(
	masterFile io.Reader, masterFilename string,
	summaryFile io.Reader, summaryFilename string,
	period models.PeriodWindow, notify bool,
) (*models.BatchResult, []byte, error) {
	s.gotMasterFilename = masterFilename
	s.gotSummaryFilename = summaryFilename
	s.gotPeriod = period
	s.gotNotify = notify
	return s.result, s.archive, s.err
}

func (s *stubStatementService) GetBatchResult(batchID string) (*models.BatchResult, bool) {
	if s.result != nil && s.result.BatchID == batchID {
		return s.result, true
	}
	return nil, false
}

func init() {
	config.Cfg = &config.AppConfig{MaxUploadSizeBytes: 10 << 20}
}

func attachCSV(t *testing.T, w *multipart.Writer, field, filename, content string) {
	t.Helper()
	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", `form-data; name="`+field+`"; filename="`+filename+`"`)
	header.Set("Content-Type", "text/csv")
	part, err := w.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
}

func generateRequest(t *testing.T, fields map[string]string) *http.Request {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	attachCSV(t, w, "master_file", "master.csv", "Merchant_Name,Email\nAcme,a@x.com\n")
	attachCSV(t, w, "summary_file", "summary.csv", "TradeName,Total TransactionAmount\nAcme,100\n")
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/statements/generate", &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func TestHandleGenerateStreamsArchive(t *testing.T) {
	stub := &stubStatementService{
		result:  &models.BatchResult{BatchID: "batch-1", SuccessCount: 1},
		archive: []byte("zip-bytes"),
	}
	h := NewStatementHandler(stub)

	req := generateRequest(t, map[string]string{
		"start_date": "01 November 2025",
		"end_date":   "30 November 2025",
		"notify":     "true",
	})
	rec := httptest.NewRecorder()
	h.HandleGenerate(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "application/zip", rec.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="Statements_01_November_2025_30_November_2025.zip"`, rec.Header().Get("Content-Disposition"))
	assert.Equal(t, "batch-1", rec.Header().Get("X-Batch-Id"))
	assert.Equal(t, "0", rec.Header().Get("X-Batch-Error-Count"))
	assert.Equal(t, "zip-bytes", rec.Body.String())

	assert.Equal(t, "master.csv", stub.gotMasterFilename)
	assert.Equal(t, "summary.csv", stub.gotSummaryFilename)
	assert.True(t, stub.gotNotify)
	assert.Equal(t, time.Date(2025, time.November, 1, 0, 0, 0, 0, time.UTC), stub.gotPeriod.Start)
}

func TestHandleGenerateRejectsBadPeriodDate(t *testing.T) {
	h := NewStatementHandler(&stubStatementService{})

	req := generateRequest(t, map[string]string{
		"start_date": "2025-11-01",
		"end_date":   "30 November 2025",
	})
	rec := httptest.NewRecorder()
	h.HandleGenerate(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleGenerateMissingDatasetFile(t *testing.T) {
	h := NewStatementHandler(&stubStatementService{})

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	attachCSV(t, w, "master_file", "master.csv", "Merchant_Name\nAcme\n")
	require.NoError(t, w.WriteField("start_date", "01 November 2025"))
	require.NoError(t, w.WriteField("end_date", "30 November 2025"))
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/statements/generate", &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	rec := httptest.NewRecorder()
	h.HandleGenerate(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleGenerateBatchFailureListsErrors(t *testing.T) {
	stub := &stubStatementService{
		result: &models.BatchResult{
			BatchID: "batch-2",
			Errors:  []string{"no master record matched key 'beta stores'"},
		},
		err: services.ErrBatchFailed,
	}
	h := NewStatementHandler(stub)

	req := generateRequest(t, map[string]string{
		"start_date": "01 November 2025",
		"end_date":   "30 November 2025",
	})
	rec := httptest.NewRecorder()
	h.HandleGenerate(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var payload struct {
		Error  string   `json:"error"`
		Errors []string `json:"errors"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&payload))
	assert.Equal(t, "No statements were generated", payload.Error)
	assert.Equal(t, stub.result.Errors, payload.Errors)
}

func TestHandleGenerateInternalError(t *testing.T) {
	stub := &stubStatementService{
		result: &models.BatchResult{BatchID: "batch-3"},
		err:    errors.New("disk on fire"),
	}
	h := NewStatementHandler(stub)

	req := generateRequest(t, map[string]string{
		"start_date": "01 November 2025",
		"end_date":   "30 November 2025",
	})
	rec := httptest.NewRecorder()
	h.HandleGenerate(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "disk on fire")
}

func TestHandleGetBatchResult(t *testing.T) {
	stub := &stubStatementService{
		result: &models.BatchResult{BatchID: "batch-4", SuccessCount: 2},
	}
	h := NewStatementHandler(stub)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/statements/batches/{id}", h.HandleGetBatchResult)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/statements/batches/batch-4", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var got models.BatchResult
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	assert.Equal(t, "batch-4", got.BatchID)
	assert.Equal(t, 2, got.SuccessCount)

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/statements/batches/unknown", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandleHealth(t *testing.T) {
	h := NewStatementHandler(&stubStatementService{})
	rec := httptest.NewRecorder()
	h.HandleHealth(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}
