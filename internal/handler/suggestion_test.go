package handler

import (
	"net/http"
	"net/url"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestLocationHandler_Suggest(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name            string
		query           string
		mockSuggestions []string
		mockError       error
		expectedStatus  int
		expectedBody    string
	}{
		{
			name:            "no query",
			query:           "",
			mockSuggestions: []string{},
			expectedStatus:  http.StatusOK,
			expectedBody:    `[]`,
		},
		{
			name:            "matches",
			query:           "Ma",
			mockSuggestions: []string{"malton", "malvern", "markham"},
			expectedStatus:  http.StatusOK,
			expectedBody:    `["malton","malvern","markham"]`,
		},
		{
			name:            "service error",
			query:           "ma",
			mockSuggestions: nil,
			mockError:       assert.AnError,
			expectedStatus:  http.StatusInternalServerError,
			expectedBody:    `{"error":"internal server error"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockSvc := new(MockLocationService)
			handler := NewLocationHandler(mockSvc)

			mockSvc.On("Suggest", mock.Anything, tt.query).Return(tt.mockSuggestions, tt.mockError)

			c, w := newTestContext(http.MethodGet, "/suggestions?q="+url.QueryEscape(tt.query), "")

			handler.Suggest(c)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.JSONEq(t, tt.expectedBody, w.Body.String())
			mockSvc.AssertExpectations(t)
		})
	}
}
