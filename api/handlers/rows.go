package handlers

import (
	"net/http"

	"github.com/igorsal/api-console/api/middleware"
	"github.com/igorsal/api-console/internal/interfaces"
	"github.com/igorsal/api-console/internal/models"
	"github.com/igorsal/api-console/internal/sheet"
	pkgerrors "github.com/igorsal/api-console/pkg/errors"
)

// multipartMemory is the part of an upload kept in memory; the rest spills to
// temporary files.
const multipartMemory = 8 << 20

type RowsResponse struct {
	Rows     []models.CSVRow `json:"rows"`
	RowCount int             `json:"rowCount"`
}

// RowsHandler turns an uploaded spreadsheet into rows for the bulk endpoints
type RowsHandler struct {
	logger       interfaces.Logger
	maxBodyBytes int64
}

func NewRowsHandler(logger interfaces.Logger, maxBodyBytes int64) *RowsHandler {
	return &RowsHandler{
		logger:       logger,
		maxBodyBytes: maxBodyBytes,
	}
}

func (h *RowsHandler) Parse(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBodyBytes)
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		middleware.WriteError(w, r, h.logger, pkgerrors.NewValidationError("expected a multipart upload").WithCause(err))
		return
	}
	defer func() { _ = r.MultipartForm.RemoveAll() }()

	file, header, err := r.FormFile("file")
	if err != nil {
		middleware.WriteError(w, r, h.logger, pkgerrors.NewValidationError("file is required"))
		return
	}
	defer file.Close()

	rows, err := sheet.Parse(header.Filename, file)
	if err != nil {
		middleware.WriteError(w, r, h.logger, err)
		return
	}

	h.logger.Info("Spreadsheet parsed", "filename", header.Filename, "rows", len(rows))
	writeJSON(w, h.logger, http.StatusOK, RowsResponse{Rows: rows, RowCount: len(rows)})
}
