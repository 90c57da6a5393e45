package handlers

import (
	"context"
	"net/http"

	"github.com/igorsal/api-console/api/middleware"
	"github.com/igorsal/api-console/internal/interfaces"
	"github.com/igorsal/api-console/internal/models"
	pkgerrors "github.com/igorsal/api-console/pkg/errors"
)

// VendorHandler exposes single and bulk vendor sends
type VendorHandler struct {
	importer     interfaces.Importer
	logger       interfaces.Logger
	maxBodyBytes int64
}

func NewVendorHandler(importer interfaces.Importer, logger interfaces.Logger, maxBodyBytes int64) *VendorHandler {
	return &VendorHandler{
		importer:     importer,
		logger:       logger,
		maxBodyBytes: maxBodyBytes,
	}
}

func (h *VendorHandler) SendProduct(w http.ResponseWriter, r *http.Request) {
	h.send(w, r, h.importer.SendProduct)
}

func (h *VendorHandler) SendInventoryAdjustment(w http.ResponseWriter, r *http.Request) {
	h.send(w, r, h.importer.SendInventoryAdjustment)
}

// send answers 500 with the echo when the vendor could not be reached.
func (h *VendorHandler) send(w http.ResponseWriter, r *http.Request, fn func(context.Context, models.SendRequest) (*models.SendResult, error)) {
	var req models.SendRequest
	if err := decodeJSON(w, r, h.maxBodyBytes, &req); err != nil {
		middleware.WriteError(w, r, h.logger, err)
		return
	}

	result, err := fn(r.Context(), req)
	if err != nil {
		if result == nil || pkgerrors.IsType(err, pkgerrors.ErrorTypeValidation) {
			middleware.WriteError(w, r, h.logger, err)
			return
		}
		writeJSON(w, h.logger, http.StatusInternalServerError, result)
		return
	}

	writeJSON(w, h.logger, http.StatusOK, result)
}

func (h *VendorHandler) BulkImport(w http.ResponseWriter, r *http.Request) {
	var req models.ProductImportRequest
	if err := decodeJSON(w, r, h.maxBodyBytes, &req); err != nil {
		middleware.WriteError(w, r, h.logger, err)
		return
	}

	result, err := h.importer.ImportProducts(r.Context(), req)
	if err != nil {
		middleware.WriteError(w, r, h.logger, err)
		return
	}

	writeJSON(w, h.logger, http.StatusOK, result)
}

func (h *VendorHandler) BulkInventoryAdjustment(w http.ResponseWriter, r *http.Request) {
	var req models.InventoryImportRequest
	if err := decodeJSON(w, r, h.maxBodyBytes, &req); err != nil {
		middleware.WriteError(w, r, h.logger, err)
		return
	}

	result, err := h.importer.AdjustInventory(r.Context(), req)
	if err != nil {
		middleware.WriteError(w, r, h.logger, err)
		return
	}

	writeJSON(w, h.logger, http.StatusOK, result)
}
