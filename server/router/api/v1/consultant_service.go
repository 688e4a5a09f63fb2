package v1

import (
	"net/http"

	"github.com/labstack/echo/v5"

	"github.com/useadvisor/advisor/store"
)

type consultantResponse struct {
	ConsultantID      string   `json:"consultantId"`
	Name              string   `json:"name"`
	SystemInstruction string   `json:"systemInstruction"`
	TopicScope        []string `json:"topicScope"`
	IsActive          bool     `json:"isActive"`
	CreatedTs         int64    `json:"createdTs"`
	UpdatedTs         int64    `json:"updatedTs"`
}

func (s *APIV1Service) handleLiveness(c *echo.Context) error {
	return c.String(http.StatusOK, "伺服器運行中。請使用 /sse/stream 路由進行對話。")
}

// listConsultants returns every active consultant persona.
func (s *APIV1Service) listConsultants(c *echo.Context) error {
	active := true
	consultants, err := s.Store.ListConsultants(c.Request().Context(), &store.FindConsultant{IsActive: &active})
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	resp := make([]consultantResponse, 0, len(consultants))
	for _, consultant := range consultants {
		resp = append(resp, consultantResponse{
			ConsultantID:      consultant.ConsultantID,
			Name:              consultant.Name,
			SystemInstruction: consultant.SystemInstruction,
			TopicScope:        consultant.TopicScope,
			IsActive:          consultant.IsActive,
			CreatedTs:         consultant.CreatedTs,
			UpdatedTs:         consultant.UpdatedTs,
		})
	}
	return c.JSON(http.StatusOK, resp)
}
