package handlers

import (
	"net/http"

	"github.com/DanBrus/IB-frontend/application/ports"
	"github.com/DanBrus/IB-frontend/pkg/api"
	"github.com/DanBrus/IB-frontend/pkg/errors"
	"go.uber.org/zap"
)

// GraphHandler serves the graph service endpoints
type GraphHandler struct {
	boards       ports.BoardRepository
	errorHandler *errors.ErrorHandler
	logger       *zap.Logger
}

// NewGraphHandler creates a new graph handler
func NewGraphHandler(boards ports.BoardRepository, errorHandler *errors.ErrorHandler, logger *zap.Logger) *GraphHandler {
	return &GraphHandler{
		boards:       boards,
		errorHandler: errorHandler,
		logger:       logger,
	}
}

// GetBoard handles GET /graph/board?version=
func (h *GraphHandler) GetBoard(w http.ResponseWriter, r *http.Request) {
	version := r.URL.Query().Get("version")
	if version == "" {
		h.errorHandler.Handle(w, r, errors.NewValidationError("version is required"))
		return
	}

	board, err := h.boards.GetBoard(r.Context(), version)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	respondJSON(w, h.logger, http.StatusOK, api.BoardFromDomain(board))
}

// PutBoard handles PUT /graph/board
func (h *GraphHandler) PutBoard(w http.ResponseWriter, r *http.Request) {
	var req api.PutBoardRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	board := api.Board{Nodes: req.Nodes, Edges: req.Edges}.ToDomain()
	if err := h.boards.SaveBoard(r.Context(), req.Version, board); err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	h.logger.Info("Board saved",
		zap.String("version", req.Version),
		zap.Int("nodes", len(req.Nodes)),
		zap.Int("edges", len(req.Edges)),
	)
	respondJSON(w, h.logger, http.StatusOK, api.Ack{Status: "ok"})
}

// ListVersions handles GET /graph/versions
func (h *GraphHandler) ListVersions(w http.ResponseWriter, r *http.Request) {
	versions, err := h.boards.ListVersions(r.Context())
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	out := make([]api.Version, 0, len(versions))
	for _, v := range versions {
		out = append(out, api.VersionFromDomain(v))
	}
	respondJSON(w, h.logger, http.StatusOK, out)
}

// ActiveVersion handles GET /graph/active_version
func (h *GraphHandler) ActiveVersion(w http.ResponseWriter, r *http.Request) {
	active, err := h.boards.ActiveVersion(r.Context())
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}
	respondJSON(w, h.logger, http.StatusOK, api.ActiveVersion{Version: active})
}

// CreateVersion handles POST /graph/versions
func (h *GraphHandler) CreateVersion(w http.ResponseWriter, r *http.Request) {
	var req api.Version
	if err := decodeJSON(w, r, &req); err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	if err := h.boards.CreateVersion(r.Context(), req.ToDomain()); err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	h.logger.Info("Version created", zap.String("version", req.Version))
	respondJSON(w, h.logger, http.StatusCreated, api.Ack{Status: "created"})
}

// DeleteVersion handles POST /graph/versions/delete
func (h *GraphHandler) DeleteVersion(w http.ResponseWriter, r *http.Request) {
	var req api.DeleteVersionRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	if err := h.boards.DeleteVersion(r.Context(), req.Version); err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	h.logger.Info("Version deleted", zap.String("version", req.Version))
	respondJSON(w, h.logger, http.StatusOK, api.Ack{Status: "deleted"})
}
