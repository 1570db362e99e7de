package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mmdatafocus/portal_backend/middlewares"
	"github.com/mmdatafocus/portal_backend/models"
)

// Dependencies are the collaborators the HTTP surface is wired to.
type Dependencies struct {
	Content ContentResolver
	Auth    AuthService
	Consent ConsentRecorder
	Leads   LeadService

	ContractGuard     Authorizer[models.Contract]
	InvoiceGuard      Authorizer[models.Invoice]
	Contracts         OwnedLister[models.Contract]
	Invoices          OwnedLister[models.Invoice]
	ContractDocuments Generator
	InvoiceDocuments  Generator
}

func RegisterRoutes(r gin.IRouter, d Dependencies) {
	r.POST("/auth/login", Login(d.Auth))
	r.POST("/auth/logout", middlewares.RequireIdentity(), Logout(d.Auth))
	r.GET("/auth/me", Me())

	api := r.Group("/api")
	api.GET("/content", GetPageContent(d.Content))
	api.GET("/content/:pageKey", GetPageContent(d.Content))
	api.POST("/consent", RecordConsent(d.Consent))
	api.POST("/leads", SubmitLead(d.Leads))

	// Ownership is checked per record; RequireIdentity only turns anonymous
	// callers away early.
	portal := api.Group("", middlewares.RequireIdentity())
	portal.GET("/contracts", ListOwned(d.Contracts))
	portal.GET("/contracts/:id", GetOwned(d.ContractGuard))
	portal.POST("/contracts/:id/document", GenerateDocument(d.ContractGuard, d.ContractDocuments, true))
	portal.GET("/invoices", ListOwned(d.Invoices))
	portal.GET("/invoices/:id", GetOwned(d.InvoiceGuard))
	portal.POST("/invoices/:id/document", GenerateDocument(d.InvoiceGuard, d.InvoiceDocuments, true))

	admin := api.Group("/admin", middlewares.RequireAdmin())
	admin.GET("/leads", ListLeads(d.Leads))
	admin.GET("/leads/export", ExportLeads(d.Leads))
	admin.PATCH("/leads/:id", UpdateLead(d.Leads))
	admin.POST("/contracts/:id/document", GenerateDocument(d.ContractGuard, d.ContractDocuments, false))
	admin.POST("/invoices/:id/document", GenerateDocument(d.InvoiceGuard, d.InvoiceDocuments, false))
}

func NotFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, gin.H{"error": "route not found"})
}
