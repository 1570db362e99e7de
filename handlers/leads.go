package handlers

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mmdatafocus/portal_backend/leads"
	"github.com/mmdatafocus/portal_backend/models"
	"github.com/mmdatafocus/portal_backend/utils"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type LeadService interface {
	Submit(ctx context.Context, sub leads.Submission) (*models.Lead, error)
	List(ctx context.Context, filter models.LeadFilter, page, limit int) (*leads.Page, error)
	Update(ctx context.Context, leadId string, req leads.UpdateRequest) (*models.Lead, error)
	Export(ctx context.Context, filter models.LeadFilter, w io.Writer) error
}

func SubmitLead(svc LeadService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var sub leads.Submission
		if err := c.ShouldBindJSON(&sub); err != nil {
			respondError(c, fmt.Errorf("%w: %v", utils.ErrInvalidArgument, err))
			return
		}
		lead, err := svc.Submit(c.Request.Context(), sub)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"data": gin.H{"lead_id": lead.LeadId}})
	}
}

func ListLeads(svc LeadService) gin.HandlerFunc {
	return func(c *gin.Context) {
		filter, err := leads.ParseFilter(c.Query("status"))
		if err != nil {
			respondError(c, err)
			return
		}
		page, limit := leads.ParsePaging(c.Query("page"), c.Query("limit"))
		result, err := svc.List(c.Request.Context(), filter, page, limit)
		if err != nil {
			respondError(c, err)
			return
		}
		respondData(c, result)
	}
}

func UpdateLead(svc LeadService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req leads.UpdateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, fmt.Errorf("%w: %v", utils.ErrInvalidArgument, err))
			return
		}
		lead, err := svc.Update(c.Request.Context(), c.Param("id"), req)
		if err != nil {
			respondError(c, err)
			return
		}
		respondData(c, lead)
	}
}

func ExportLeads(svc LeadService) gin.HandlerFunc {
	return func(c *gin.Context) {
		filter, err := leads.ParseFilter(c.Query("status"))
		if err != nil {
			respondError(c, err)
			return
		}
		var buf bytes.Buffer
		if err := svc.Export(c.Request.Context(), filter, &buf); err != nil {
			respondError(c, err)
			return
		}
		filename := fmt.Sprintf("leads-%s.xlsx", time.Now().UTC().Format("20060102"))
		c.Header("Content-Disposition", "attachment; filename="+filename)
		c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
	}
}
