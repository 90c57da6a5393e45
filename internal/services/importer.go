package services

import (
	"bytes"
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/cespare/xxhash/v2"
	"golang.org/x/time/rate"

	"github.com/igorsal/api-console/internal/headers"
	"github.com/igorsal/api-console/internal/interfaces"
	"github.com/igorsal/api-console/internal/mapper"
	"github.com/igorsal/api-console/internal/models"
	"github.com/igorsal/api-console/internal/validation"
	"github.com/igorsal/api-console/io/vendor"
	pkgerrors "github.com/igorsal/api-console/pkg/errors"
)

const (
	kindProduct   = "product"
	kindInventory = "inventory"
)

// ProgressFunc observes a bulk run after each item
type ProgressFunc func(kind string, done, total int)

type ImporterService struct {
	vendor    interfaces.VendorClient
	defaults  mapper.ProductDefaults
	reasonID  string
	logger    interfaces.Logger
	metrics   interfaces.MetricsCollector
	validator *validation.Validator
	limiter   *rate.Limiter
	progress  ProgressFunc
	now       func() time.Time
}

var _ interfaces.Importer = (*ImporterService)(nil)

type Option func(*ImporterService)

// WithRateLimit spaces vendor calls to at most perSecond. Zero disables pacing.
func WithRateLimit(perSecond float64) Option {
	return func(s *ImporterService) {
		if perSecond > 0 {
			s.limiter = rate.NewLimiter(rate.Limit(perSecond), 1)
		}
	}
}

func WithProgress(fn ProgressFunc) Option {
	return func(s *ImporterService) { s.progress = fn }
}

func WithProductDefaults(d mapper.ProductDefaults) Option {
	return func(s *ImporterService) { s.defaults = d }
}

func WithClock(now func() time.Time) Option {
	return func(s *ImporterService) { s.now = now }
}

// NewImporterService creates the bulk orchestrator
func NewImporterService(vendorClient interfaces.VendorClient, reasonID string, logger interfaces.Logger, metrics interfaces.MetricsCollector, opts ...Option) *ImporterService {
	s := &ImporterService{
		vendor:    vendorClient,
		defaults:  mapper.DefaultProductDefaults(),
		reasonID:  reasonID,
		logger:    logger,
		metrics:   metrics,
		validator: validation.New(),
		now:       time.Now,
	}
	if s.reasonID == "" {
		s.reasonID = mapper.DefaultReasonID
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SendProduct POSTs a caller supplied product body once.
func (s *ImporterService) SendProduct(ctx context.Context, req models.SendRequest) (*models.SendResult, error) {
	if err := s.validateSend(req); err != nil {
		return nil, err
	}
	reply, err := s.vendor.CreateProduct(ctx, req.URL, headers.Vendor(req.Token), req.Body)
	return s.sendResult(req, reply, err)
}

// SendInventoryAdjustment PUTs a caller supplied adjustment body once.
func (s *ImporterService) SendInventoryAdjustment(ctx context.Context, req models.SendRequest) (*models.SendResult, error) {
	if err := s.validateSend(req); err != nil {
		return nil, err
	}
	reply, err := s.vendor.AdjustInventory(ctx, req.URL, headers.Vendor(req.Token), req.Body)
	return s.sendResult(req, reply, err)
}

// sendResult returns the echo in both cases; on transport failure the error is
// returned too and the echo carries status 500.
func (s *ImporterService) sendResult(req models.SendRequest, reply *models.UpstreamReply, err error) (*models.SendResult, error) {
	result := &models.SendResult{RequestBody: vendor.DecodeBody(req.Body)}
	if err != nil {
		s.logger.Error("Vendor send failed", err, "url", req.URL)
		result.HTTPStatusCode = 500
		result.ResponseBody = errorBody(err)
		return result, err
	}

	result.HTTPStatusCode = reply.StatusCode
	result.ResponseBody = vendor.DecodeBody(reply.Body)
	return result, nil
}

// ImportProducts maps and POSTs each row in order. Per-row failures are
// recorded, never returned.
func (s *ImporterService) ImportProducts(ctx context.Context, req models.ProductImportRequest) (*models.ProductImportResult, error) {
	if err := s.validate(req); err != nil {
		return nil, err
	}

	start := s.now()
	shared := headers.Vendor(req.Token)
	total := len(req.Rows)
	result := &models.ProductImportResult{
		Summary: models.ProductSummary{
			TotalRows: total,
			Results:   make([]models.ProductResult, 0, total),
		},
		LogEntries: make([]models.ProductLogEntry, 0, total),
	}

	s.logger.Info("Starting product import", "rows", total, "url", req.URL)

	for i, row := range req.Rows {
		rowNumber := i + 1
		payload := mapper.MapRowToProduct(row, s.defaults)
		body, digest := encodePayload(payload)

		entry := models.ProductLogEntry{
			RowNumber:     rowNumber,
			ProductNumber: payload.ProductNumber,
			RequestBody:   payload,
			RequestDigest: digest,
		}

		reply, err := s.call(ctx, func() (*models.UpstreamReply, error) {
			return s.vendor.CreateProduct(ctx, req.URL, shared, body)
		})
		entry.Timestamp = s.timestamp()

		o := classify(reply, err, models.StatusCreated)
		entry.HTTPStatusCode = o.code
		entry.Status = o.status
		entry.ResponseBody = o.body
		entry.Message = o.message
		entry.Details = o.details

		if o.status == models.StatusCreated {
			result.Summary.Succeeded++
		} else {
			result.Summary.Failed++
		}

		result.LogEntries = append(result.LogEntries, entry)
		result.Summary.Results = append(result.Summary.Results, models.ProductResult{
			RowNumber:     rowNumber,
			Status:        entry.Status,
			HTTPCode:      entry.HTTPStatusCode,
			ProductNumber: entry.ProductNumber,
			Message:       entry.Message,
			Details:       entry.Details,
		})

		s.logger.Debug("Product row processed",
			"row", rowNumber,
			"product_number", entry.ProductNumber,
			"status", entry.Status,
			"http_status", entry.HTTPStatusCode,
		)
		s.itemDone(kindProduct, entry.Status, rowNumber, total)
	}

	s.runDone(kindProduct, start, total, result.Summary.Succeeded, result.Summary.Failed)
	return result, nil
}

// AdjustInventory groups rows by branch and PUTs one payload per branch in
// first-appearance order.
func (s *ImporterService) AdjustInventory(ctx context.Context, req models.InventoryImportRequest) (*models.InventoryImportResult, error) {
	if err := s.validate(req); err != nil {
		return nil, err
	}

	start := s.now()
	shared := headers.Vendor(req.Token)
	payloads := mapper.GroupRowsByBranch(req.Rows, s.reasonID)
	total := len(payloads)
	result := &models.InventoryImportResult{
		Summary: models.InventorySummary{
			TotalPayloads: total,
			TotalRows:     len(req.Rows),
			Results:       make([]models.InventoryResult, 0, total),
		},
		LogEntries: make([]models.InventoryLogEntry, 0, total),
	}

	s.logger.Info("Starting inventory adjustment", "rows", len(req.Rows), "payloads", total, "url", req.URL)

	for i, payload := range payloads {
		payloadNumber := i + 1
		body, digest := encodePayload(payload)

		entry := models.InventoryLogEntry{
			PayloadNumber:   payloadNumber,
			BranchID:        payload.BranchID,
			AdjustmentCount: len(payload.AdjustmentLines),
			RequestBody:     payload,
			RequestDigest:   digest,
		}

		reply, err := s.call(ctx, func() (*models.UpstreamReply, error) {
			return s.vendor.AdjustInventory(ctx, req.URL, shared, body)
		})
		entry.Timestamp = s.timestamp()

		o := classify(reply, err, models.StatusSuccess)
		entry.HTTPStatusCode = o.code
		entry.Status = o.status
		entry.ResponseBody = o.body
		entry.Message = o.message
		entry.Details = o.details

		if o.status == models.StatusSuccess {
			result.Summary.Succeeded++
		} else {
			result.Summary.Failed++
		}

		result.LogEntries = append(result.LogEntries, entry)
		result.Summary.Results = append(result.Summary.Results, models.InventoryResult{
			PayloadNumber:   payloadNumber,
			BranchID:        entry.BranchID,
			AdjustmentCount: entry.AdjustmentCount,
			Status:          entry.Status,
			HTTPCode:        entry.HTTPStatusCode,
			Message:         entry.Message,
			Details:         entry.Details,
		})

		s.logger.Debug("Inventory payload processed",
			"payload", payloadNumber,
			"branch_id", entry.BranchID,
			"status", entry.Status,
			"http_status", entry.HTTPStatusCode,
		)
		s.itemDone(kindInventory, entry.Status, payloadNumber, total)
	}

	s.runDone(kindInventory, start, total, result.Summary.Succeeded, result.Summary.Failed)
	return result, nil
}

// call waits for the pacing limiter, if any, then issues fn.
func (s *ImporterService) call(ctx context.Context, fn func() (*models.UpstreamReply, error)) (*models.UpstreamReply, error) {
	if s.limiter != nil {
		if err := s.limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}
	return fn()
}

type outcome struct {
	code    int
	status  string
	body    any
	message string
	details []string
}

// classify maps a vendor reply, or the transport error that replaced it, to a
// row outcome. A transport error is recorded as status 500.
func classify(reply *models.UpstreamReply, err error, okStatus string) outcome {
	if err != nil {
		return outcome{
			code:    500,
			status:  models.StatusFailed,
			body:    errorBody(err),
			message: err.Error(),
		}
	}

	o := outcome{
		code: reply.StatusCode,
		body: vendor.DecodeBody(reply.Body),
	}
	if reply.IsSuccess() {
		o.status = okStatus
		return o
	}

	o.status = models.StatusFailed
	o.message = vendor.ErrorMessage(reply.Body)
	o.details = vendor.ErrorDetails(reply.Body)
	return o
}

func errorBody(err error) map[string]string {
	return map[string]string{"error": err.Error()}
}

// encodePayload serializes a mapped payload once; the digest identifies the
// exact bytes sent.
func encodePayload(payload any) (json.RawMessage, string) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, ""
	}
	return body, strconv.FormatUint(xxhash.Sum64(body), 16)
}

func (s *ImporterService) timestamp() string {
	return s.now().UTC().Format(time.RFC3339)
}

func (s *ImporterService) itemDone(kind, status string, done, total int) {
	s.metrics.IncrementCounter("bulk_items_total", map[string]string{"kind": kind, "status": status})
	if total > 0 {
		s.metrics.SetGauge("bulk_progress_ratio", float64(done)/float64(total), map[string]string{"kind": kind})
	}
	if s.progress != nil {
		s.progress(kind, done, total)
	}
}

func (s *ImporterService) runDone(kind string, start time.Time, total, succeeded, failed int) {
	s.metrics.RecordDuration("bulk_run_duration_seconds", s.now().Sub(start).Seconds(), map[string]string{"kind": kind})
	s.logger.Info("Bulk run completed",
		"kind", kind,
		"total", total,
		"succeeded", succeeded,
		"failed", failed,
	)
}

func (s *ImporterService) validate(req any) error {
	return s.validator.Struct(req)
}

// validateSend also rejects an explicit JSON null body.
func (s *ImporterService) validateSend(req models.SendRequest) error {
	if err := s.validate(req); err != nil {
		return err
	}
	if bytes.Equal(bytes.TrimSpace(req.Body), []byte("null")) {
		return pkgerrors.NewValidationError("body is required")
	}
	return nil
}
