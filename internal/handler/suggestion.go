package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Suggest handles GET /suggestions requests
//
//	@Summary	Autocomplete addresses by prefix
//	@Tags		locations
//	@Produce	json
//	@Param		q	query		string	false	"Address prefix"
//	@Success	200	{array}		string
//	@Failure	500	{object}	ErrorResponse
//	@Router		/suggestions [get]
func (h *LocationHandler) Suggest(c *gin.Context) {
	suggestions, err := h.service.Suggest(c.Request.Context(), c.Query("q"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, suggestions)
}
