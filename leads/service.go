package leads

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/mmdatafocus/portal_backend/config"
	"github.com/mmdatafocus/portal_backend/events"
	"github.com/mmdatafocus/portal_backend/models"
	"github.com/mmdatafocus/portal_backend/utils"
	"github.com/sirupsen/logrus"
)

const (
	DefaultPageLimit = 20
	MaxPageLimit     = 100
	// MaxPage keeps (page-1)*limit from overflowing the query offset.
	MaxPage = math.MaxInt / MaxPageLimit
	leadIdPrefix     = "lead_"
	leadIdLength     = 16
)

type Store interface {
	Create(ctx context.Context, lead *models.Lead) error
	List(ctx context.Context, filter models.LeadFilter, page, limit int) ([]models.Lead, int64, error)
	All(ctx context.Context, filter models.LeadFilter) ([]models.Lead, error)
	Update(ctx context.Context, leadId string, patch models.LeadPatch) (*models.Lead, error)
}

// Submission is the public contact/consultation form.
type Submission struct {
	Name    string `json:"name" validate:"required,max=200"`
	Email   string `json:"email" validate:"required,email,max=191"`
	Phone   string `json:"phone" validate:"max=32"`
	Company string `json:"company" validate:"max=200"`
	Service string `json:"service" validate:"max=100"`
	Message string `json:"message" validate:"max=5000"`
	Source  string `json:"source" validate:"max=100"`
}

type UpdateRequest struct {
	Status *string `json:"status"`
	Notes  *string `json:"notes"`
}

type Page struct {
	Leads []models.Lead `json:"leads"`
	Total int64         `json:"total"`
	Page  int           `json:"page"`
	Limit int           `json:"limit"`
}

// ValidationError lists the offending fields. It matches utils.ErrInvalidArgument.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return "invalid fields: " + strings.Join(e.Fields, ", ")
}

func (e *ValidationError) Unwrap() error { return utils.ErrInvalidArgument }

type Service struct {
	store     Store
	validate  *validator.Validate
	publisher events.Publisher
	logger    *logrus.Logger
	region    string
	newID     func() (string, error)
}

func NewService(store Store, publisher events.Publisher, logger *logrus.Logger) *Service {
	return &Service{
		store:     store,
		validate:  validator.New(),
		publisher: publisher,
		logger:    logger,
		region:    config.GetEnv("LEAD_PHONE_REGION", "US"),
		newID: func() (string, error) {
			return utils.GenerateID(leadIdPrefix, leadIdLength)
		},
	}
}

func (s *Service) Submit(ctx context.Context, sub Submission) (*models.Lead, error) {
	sub.Name = strings.TrimSpace(sub.Name)
	sub.Email = strings.ToLower(strings.TrimSpace(sub.Email))
	sub.Company = strings.TrimSpace(sub.Company)
	sub.Service = strings.TrimSpace(sub.Service)
	sub.Message = strings.TrimSpace(sub.Message)
	sub.Source = strings.TrimSpace(sub.Source)
	sub.Phone = utils.NormalizePhoneNumber(sub.Phone, s.region)

	if err := s.validate.Struct(sub); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			fields := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				fields = append(fields, strings.ToLower(fe.Field()))
			}
			return nil, &ValidationError{Fields: fields}
		}
		return nil, fmt.Errorf("%w: %v", utils.ErrInvalidArgument, err)
	}

	id, err := s.newID()
	if err != nil {
		return nil, err
	}
	lead := &models.Lead{
		LeadId:  id,
		Name:    sub.Name,
		Email:   sub.Email,
		Phone:   sub.Phone,
		Company: sub.Company,
		Service: sub.Service,
		Message: sub.Message,
		Source:  sub.Source,
		Status:  models.LeadStatusNew,
	}
	if err := s.store.Create(ctx, lead); err != nil {
		config.LogError(s.logger, "leads", "Submit", "create lead", map[string]interface{}{"lead_id": id}, err)
		return nil, err
	}

	events.Emit(ctx, s.publisher, s.logger, events.EventLeadCreated, events.LeadCreated{
		LeadId:  lead.LeadId,
		Email:   lead.Email,
		Service: lead.Service,
		Source:  lead.Source,
	})
	return lead, nil
}

// ParseFilter turns the status query parameter into a filter. Empty means all.
func ParseFilter(rawStatus string) (models.LeadFilter, error) {
	if strings.TrimSpace(rawStatus) == "" {
		return models.LeadFilter{}, nil
	}
	st, ok := models.ParseLeadStatus(rawStatus)
	if !ok {
		return models.LeadFilter{}, fmt.Errorf("%w: unknown lead status %q", utils.ErrInvalidArgument, rawStatus)
	}
	return models.LeadFilter{Status: &st}, nil
}

// ParsePaging applies the defaults: page 1, limit 20, limit capped at 100.
// Unparseable or out-of-range values fall back to the defaults.
func ParsePaging(rawPage, rawLimit string) (page, limit int) {
	page, err := strconv.Atoi(strings.TrimSpace(rawPage))
	if err != nil || page < 1 || page > MaxPage {
		page = 1
	}
	limit, err = strconv.Atoi(strings.TrimSpace(rawLimit))
	if err != nil || limit < 1 {
		limit = DefaultPageLimit
	}
	if limit > MaxPageLimit {
		limit = MaxPageLimit
	}
	return page, limit
}

func (s *Service) List(ctx context.Context, filter models.LeadFilter, page, limit int) (*Page, error) {
	leads, total, err := s.store.List(ctx, filter, page, limit)
	if err != nil {
		return nil, err
	}
	if leads == nil {
		leads = []models.Lead{}
	}
	return &Page{Leads: leads, Total: total, Page: page, Limit: limit}, nil
}

// Update changes status and/or notes. Concurrent admin edits are
// last-write-wins with no history.
func (s *Service) Update(ctx context.Context, leadId string, req UpdateRequest) (*models.Lead, error) {
	leadId = strings.TrimSpace(leadId)
	if leadId == "" {
		return nil, fmt.Errorf("%w: lead id is required", utils.ErrInvalidArgument)
	}
	if req.Status == nil && req.Notes == nil {
		return nil, fmt.Errorf("%w: nothing to update", utils.ErrInvalidArgument)
	}

	var patch models.LeadPatch
	if req.Status != nil {
		st, ok := models.ParseLeadStatus(*req.Status)
		if !ok {
			return nil, fmt.Errorf("%w: unknown lead status %q", utils.ErrInvalidArgument, *req.Status)
		}
		patch.Status = &st
	}
	if req.Notes != nil {
		notes := strings.TrimSpace(*req.Notes)
		patch.Notes = &notes
	}
	return s.store.Update(ctx, leadId, patch)
}
