package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/zwennpay/statements/src/config"
	"github.com/zwennpay/statements/src/logger"
	"github.com/zwennpay/statements/src/models"
	"github.com/zwennpay/statements/src/security/validation"
	"github.com/zwennpay/statements/src/services"
	"github.com/zwennpay/statements/src/utils"
)

type StatementHandler struct {
	statementService services.StatementService
}

func NewStatementHandler(service services.StatementService) *StatementHandler {
	return &StatementHandler{
		statementService: service,
	}
}

// HandleGenerate accepts the two dataset workbooks plus the period boundaries
// and streams back the statement archive. Concurrent generate requests are
// independent; each batch builds its archive in memory.
func (h *StatementHandler) HandleGenerate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(config.Cfg.MaxUploadSizeBytes); err != nil {
		logger.L.Warn("Failed to parse multipart form or request too large", "error", err, "limit", config.Cfg.MaxUploadSizeBytes)
		utils.SendJSONError(w, fmt.Sprintf("Failed to parse form or request too large (max %d MB)", config.Cfg.MaxUploadSizeBytes/(1024*1024)), http.StatusBadRequest)
		return
	}

	masterFile, masterHeader, err := h.datasetFile(w, r, "master_file")
	if err != nil {
		return // response already written
	}
	defer masterFile.Close()
	summaryFile, summaryHeader, err := h.datasetFile(w, r, "summary_file")
	if err != nil {
		return
	}
	defer summaryFile.Close()

	startDate, err := utils.ParsePeriodDate(r.FormValue("start_date"))
	if err != nil {
		utils.SendJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}
	endDate, err := utils.ParsePeriodDate(r.FormValue("end_date"))
	if err != nil {
		utils.SendJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}
	period := models.PeriodWindow{Start: startDate, End: endDate}

	notify := r.FormValue("notify") == "true" || r.FormValue("notify") == "1"

	logger.L.Info("Processing statement generation request",
		"master", masterHeader.Filename, "summary", summaryHeader.Filename,
		"period", period.StartLabel()+" - "+period.EndLabel(), "notify", notify)

	result, archive, err := h.statementService.GenerateStatements(
		masterFile, masterHeader.Filename,
		summaryFile, summaryHeader.Filename,
		period, notify,
	)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrBatchFailed):
			logger.L.Warn("Batch produced no statements", "batchID", result.BatchID, "errors", len(result.Errors))
			utils.SendJSONErrorList(w, "No statements were generated", result.Errors, http.StatusBadRequest)
		case errors.Is(err, services.ErrValidationFailed):
			utils.SendJSONError(w, err.Error(), http.StatusBadRequest)
		case errors.Is(err, services.ErrParsingFailed):
			utils.SendJSONError(w, fmt.Sprintf("Error parsing dataset file: %v", err), http.StatusBadRequest)
		default:
			logger.L.Error("Internal error generating statements", "error", err)
			utils.SendJSONError(w, "An internal error occurred while generating statements. Please try again later.", http.StatusInternalServerError)
		}
		return
	}

	archiveName := fmt.Sprintf("Statements_%s_%s.zip",
		utils.SanitizeFilenamePart(period.StartLabel()),
		utils.SanitizeFilenamePart(period.EndLabel()))

	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", archiveName))
	w.Header().Set("Content-Length", strconv.Itoa(len(archive)))
	w.Header().Set("X-Batch-Id", result.BatchID)
	w.Header().Set("X-Batch-Error-Count", strconv.Itoa(len(result.Errors)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(archive); err != nil {
		logger.L.Error("Error writing archive response", "batchID", result.BatchID, "error", err)
	}
}

// datasetFile pulls one uploaded dataset out of the form and validates its
// size, declared content type and magic bytes. On failure the error response
// has already been written.
func (h *StatementHandler) datasetFile(w http.ResponseWriter, r *http.Request, field string) (multipart.File, *multipart.FileHeader, error) {
	file, fileHeader, err := r.FormFile(field)
	if err != nil {
		logger.L.Warn("Failed to retrieve file from request", "field", field, "error", err)
		utils.SendJSONError(w, fmt.Sprintf("Failed to retrieve %q from request. Ensure both dataset files are attached.", field), http.StatusBadRequest)
		return nil, nil, err
	}

	if fileHeader.Size > config.Cfg.MaxUploadSizeBytes {
		file.Close()
		logger.L.Warn("Uploaded file too large", "field", field, "fileSize", fileHeader.Size, "limit", config.Cfg.MaxUploadSizeBytes)
		utils.SendJSONError(w, fmt.Sprintf("File too large, max %d MB", config.Cfg.MaxUploadSizeBytes/(1024*1024)), http.StatusBadRequest)
		return nil, nil, fmt.Errorf("file too large")
	}

	clientContentType := fileHeader.Header.Get("Content-Type")
	if err := validation.ValidateClientContentType(clientContentType); err != nil {
		file.Close()
		utils.SendJSONError(w, err.Error(), http.StatusBadRequest)
		return nil, nil, err
	}

	if _, err := validation.ValidateDatasetContent(file, fileHeader.Filename); err != nil {
		file.Close()
		logger.L.Warn("Server-side file content validation failed", "field", field, "filename", fileHeader.Filename, "error", err)
		utils.SendJSONError(w, err.Error(), http.StatusBadRequest)
		return nil, nil, err
	}

	return file, fileHeader, nil
}

// HandleGetBatchResult returns a finished batch result by id while it is
// still held in the result cache.
func (h *StatementHandler) HandleGetBatchResult(w http.ResponseWriter, r *http.Request) {
	batchID := r.PathValue("id")
	if batchID == "" {
		utils.SendJSONError(w, "batch id is required", http.StatusBadRequest)
		return
	}

	result, found := h.statementService.GetBatchResult(batchID)
	if !found {
		utils.SendJSONError(w, "batch result not found or expired", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(result); err != nil {
		logger.L.Error("Error encoding JSON response for batch result", "batchID", batchID, "error", err)
	}
}

func (h *StatementHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}
