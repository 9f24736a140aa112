package handler

import (
	"context"
	"errors"
	"net/http"

	"spotfinder/internal/models"
	"spotfinder/internal/service"

	"github.com/gin-gonic/gin"
)

// LocationHandler handles location lookup and management requests
type LocationHandler struct {
	service LocationService
}

// Service interface for dependency injection
type LocationService interface {
	Find(ctx context.Context, address string) (*models.Location, error)
	Add(ctx context.Context, address string, lat, lng float64) (bool, error)
	Update(ctx context.Context, address string, lat, lng float64) (bool, error)
	Delete(ctx context.Context, address string) (bool, error)
	Suggest(ctx context.Context, prefix string) ([]string, error)
}

// LocationRequest carries coordinates as the raw text the user typed.
type LocationRequest struct {
	Address   string `json:"address" binding:"required" example:"Liberty Village Annex"`
	Latitude  string `json:"latitude" binding:"required" example:"43.64"`
	Longitude string `json:"longitude" binding:"required" example:"-79.42"`
}

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error string `json:"error" example:"address not found"`
}

// NewLocationHandler creates a new location handler
func NewLocationHandler(svc LocationService) *LocationHandler {
	return &LocationHandler{service: svc}
}

// Find handles GET /locations requests
//
//	@Summary	Look up a location by address
//	@Tags		locations
//	@Produce	json
//	@Param		address	query		string	true	"Address, matched case-insensitively"
//	@Success	200		{object}	models.Location
//	@Failure	400		{object}	ErrorResponse
//	@Failure	404		{object}	ErrorResponse
//	@Failure	500		{object}	ErrorResponse
//	@Router		/locations [get]
func (h *LocationHandler) Find(c *gin.Context) {
	address := c.Query("address")
	if address == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing required query parameter 'address'"})
		return
	}

	location, err := h.service.Find(c.Request.Context(), address)
	if err != nil {
		respondError(c, err)
		return
	}

	if location == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "address not found"})
		return
	}

	c.JSON(http.StatusOK, location)
}

// Add handles POST /locations requests
//
//	@Summary	Add a new location
//	@Tags		locations
//	@Accept		json
//	@Produce	json
//	@Param		location	body		LocationRequest	true	"Location to add"
//	@Success	201			{object}	models.Location
//	@Failure	400			{object}	ErrorResponse
//	@Failure	409			{object}	ErrorResponse
//	@Failure	500			{object}	ErrorResponse
//	@Router		/locations [post]
func (h *LocationHandler) Add(c *gin.Context) {
	address, lat, lng, ok := bindLocation(c)
	if !ok {
		return
	}

	added, err := h.service.Add(c.Request.Context(), address, lat, lng)
	if err != nil {
		respondError(c, err)
		return
	}

	if !added {
		c.JSON(http.StatusConflict, gin.H{"error": "address already exists"})
		return
	}

	h.respondLocation(c, http.StatusCreated, address)
}

// Update handles PUT /locations requests
//
//	@Summary	Move an existing location
//	@Tags		locations
//	@Accept		json
//	@Produce	json
//	@Param		location	body		LocationRequest	true	"Address and new coordinates"
//	@Success	200			{object}	models.Location
//	@Failure	400			{object}	ErrorResponse
//	@Failure	404			{object}	ErrorResponse
//	@Failure	500			{object}	ErrorResponse
//	@Router		/locations [put]
func (h *LocationHandler) Update(c *gin.Context) {
	address, lat, lng, ok := bindLocation(c)
	if !ok {
		return
	}

	updated, err := h.service.Update(c.Request.Context(), address, lat, lng)
	if err != nil {
		respondError(c, err)
		return
	}

	if !updated {
		c.JSON(http.StatusNotFound, gin.H{"error": "address not found"})
		return
	}

	h.respondLocation(c, http.StatusOK, address)
}

// Delete handles DELETE /locations requests
//
//	@Summary	Delete a location
//	@Tags		locations
//	@Produce	json
//	@Param		address	query	string	true	"Address, matched case-insensitively"
//	@Success	204
//	@Failure	400	{object}	ErrorResponse
//	@Failure	404	{object}	ErrorResponse
//	@Failure	500	{object}	ErrorResponse
//	@Router		/locations [delete]
func (h *LocationHandler) Delete(c *gin.Context) {
	address := c.Query("address")
	if address == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing required query parameter 'address'"})
		return
	}

	deleted, err := h.service.Delete(c.Request.Context(), address)
	if err != nil {
		respondError(c, err)
		return
	}

	if !deleted {
		c.JSON(http.StatusNotFound, gin.H{"error": "address not found"})
		return
	}

	c.Status(http.StatusNoContent)
}

// respondLocation reads the stored record back so the response carries the
// normalized address and the assigned id.
func (h *LocationHandler) respondLocation(c *gin.Context, status int, address string) {
	location, err := h.service.Find(c.Request.Context(), address)
	if err != nil {
		respondError(c, err)
		return
	}

	if location == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "address not found"})
		return
	}

	c.JSON(status, location)
}

func bindLocation(c *gin.Context) (string, float64, float64, bool) {
	var req LocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "address, latitude and longitude are required"})
		return "", 0, 0, false
	}

	lat, err := models.ParseCoordinate(req.Latitude)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid latitude format"})
		return "", 0, 0, false
	}

	lng, err := models.ParseCoordinate(req.Longitude)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid longitude format"})
		return "", 0, 0, false
	}

	return req.Address, lat, lng, true
}

func respondError(c *gin.Context, err error) {
	if errors.Is(err, service.ErrInvalidInput) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "address cannot be empty"})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
}
