package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"event-registry-service/internal/blob"
)

// BlobHandler exposes the raw blob proxy surface: the boundary between the
// service and the external object store. Entity handlers are the intended
// API; these routes exist for the deployment variants that talk to the
// store directly.
type BlobHandler struct {
	client *blob.Client
	log    *zap.Logger
}

// NewBlobHandler creates a new BlobHandler instance
func NewBlobHandler(client *blob.Client, log *zap.Logger) *BlobHandler {
	return &BlobHandler{
		client: client,
		log:    log,
	}
}

// updatePayload is the body of the POST /blob/update upsert variant.
type updatePayload struct {
	Key  string          `json:"key" binding:"required"`
	Data json.RawMessage `json:"data" binding:"required"`
}

// List handles GET /list?prefix=
func (h *BlobHandler) List(c *gin.Context) {
	blobs, err := h.client.List(c.Request.Context(), c.Query("prefix"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"blobs": blobs})
}

// Get handles GET /blob/*key and the POST fetch variant.
func (h *BlobHandler) Get(c *gin.Context) {
	key := keyParam(c)

	data, err := h.client.Get(c.Request.Context(), key)
	if err != nil {
		if errors.Is(err, blob.ErrObjectNotFound) {
			c.JSON(http.StatusNotFound, Response{Success: false, Error: "blob not found"})
			return
		}
		respondError(c, h.log, err)
		return
	}

	c.Data(http.StatusOK, "application/json", data)
}

// Post handles POST /blob/*key. The reserved key "update" upserts by a
// {key, data} body; any other key behaves like a fetch.
func (h *BlobHandler) Post(c *gin.Context) {
	if keyParam(c) != "update" {
		h.Get(c)
		return
	}

	var req updatePayload
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Warn("invalid blob update request", zap.Error(err))
		c.JSON(http.StatusBadRequest, Response{Success: false, Error: err.Error()})
		return
	}

	if err := h.client.Put(c.Request.Context(), req.Key, req.Data); err != nil {
		respondError(c, h.log, err)
		return
	}

	respondSuccess(c)
}

// Put handles PUT /blob/*key: a raw write of the request body.
func (h *BlobHandler) Put(c *gin.Context) {
	key := keyParam(c)

	data, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, Response{Success: false, Error: "failed to read request body"})
		return
	}

	if err := h.client.Put(c.Request.Context(), key, data); err != nil {
		respondError(c, h.log, err)
		return
	}

	respondSuccess(c)
}

// Delete handles DELETE /blob/*key
func (h *BlobHandler) Delete(c *gin.Context) {
	if err := h.client.Delete(c.Request.Context(), keyParam(c)); err != nil {
		respondError(c, h.log, err)
		return
	}

	respondSuccess(c)
}

// keyParam strips the leading slash gin leaves on wildcard parameters.
func keyParam(c *gin.Context) string {
	return strings.TrimPrefix(c.Param("key"), "/")
}
