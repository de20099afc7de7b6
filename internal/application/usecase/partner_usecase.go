package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/tradelink-ng/edibridge-api/internal/application/dto"
	"github.com/tradelink-ng/edibridge-api/internal/domain"
	"github.com/tradelink-ng/edibridge-api/internal/domain/entity"
	"github.com/tradelink-ng/edibridge-api/internal/domain/repository"
)

// PartnerService casos de uso de socios comerciales, siempre acotados al tenant.
type PartnerService struct {
	repo   repository.TradingPartnerRepository
	limits *LimitService
}

// NewPartnerService construye el servicio de partners.
func NewPartnerService(repo repository.TradingPartnerRepository, limits *LimitService) *PartnerService {
	return &PartnerService{repo: repo, limits: limits}
}

// Create da de alta un socio comercial. Aplica el techo trading_partners del
// plan antes de insertar.
func (s *PartnerService) Create(ctx context.Context, m *entity.Membership, in dto.CreatePartnerRequest) (*dto.PartnerResponse, error) {
	if in.PartnerCode == "" || in.CompanyName == "" || in.EDIID == "" || in.Qualifier == "" {
		return nil, domain.ErrInvalidInput
	}
	if err := s.limits.CheckPartnerQuota(ctx, m); err != nil {
		return nil, err
	}
	now := time.Now()
	country := in.Country
	if country == "" {
		country = "NG"
	}
	p := &entity.TradingPartner{
		ID:          uuid.New().String(),
		CompanyID:   m.Company.ID,
		PartnerCode: in.PartnerCode,
		CompanyName: in.CompanyName,
		EDIID:       in.EDIID,
		Qualifier:   in.Qualifier,
		ContactName: in.ContactName,
		Email:       in.Email,
		Phone:       in.Phone,
		City:        in.City,
		State:       in.State,
		Country:     country,
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return toPartnerResponse(p), nil
}

// GetByID obtiene un partner del tenant.
func (s *PartnerService) GetByID(ctx context.Context, m *entity.Membership, id string) (*dto.PartnerResponse, error) {
	p, err := s.repo.GetByID(ctx, m.Company.ID, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	return toPartnerResponse(p), nil
}

// Update edita los campos de contacto de un partner.
func (s *PartnerService) Update(ctx context.Context, m *entity.Membership, id string, in dto.UpdatePartnerRequest) (*dto.PartnerResponse, error) {
	p, err := s.repo.GetByID(ctx, m.Company.ID, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	if in.CompanyName != "" {
		p.CompanyName = in.CompanyName
	}
	p.ContactName = in.ContactName
	p.Email = in.Email
	p.Phone = in.Phone
	p.City = in.City
	p.State = in.State
	if in.Country != "" {
		p.Country = in.Country
	}
	p.UpdatedAt = time.Now()
	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return toPartnerResponse(p), nil
}

// List pagina los partners del tenant.
func (s *PartnerService) List(ctx context.Context, m *entity.Membership, page dto.PageRequest) ([]*dto.PartnerResponse, error) {
	page.DefaultPage()
	list, err := s.repo.ListByCompany(ctx, m.Company.ID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.PartnerResponse, 0, len(list))
	for _, p := range list {
		out = append(out, toPartnerResponse(p))
	}
	return out, nil
}

// Deactivate baja lógica del partner.
func (s *PartnerService) Deactivate(ctx context.Context, m *entity.Membership, id string) error {
	p, err := s.repo.GetByID(ctx, m.Company.ID, id)
	if err != nil {
		return err
	}
	if p == nil {
		return domain.ErrNotFound
	}
	return s.repo.Deactivate(ctx, m.Company.ID, id)
}

func toPartnerResponse(p *entity.TradingPartner) *dto.PartnerResponse {
	return &dto.PartnerResponse{
		ID:          p.ID,
		PartnerCode: p.PartnerCode,
		CompanyName: p.CompanyName,
		EDIID:       p.EDIID,
		Qualifier:   p.Qualifier,
		ContactName: p.ContactName,
		Email:       p.Email,
		Phone:       p.Phone,
		City:        p.City,
		State:       p.State,
		Country:     p.Country,
		IsActive:    p.IsActive,
		CreatedAt:   p.CreatedAt,
	}
}
