package address

import (
	"context"
	"regexp"
	"strings"

	"storefront-api/internal/domain"
	addressrepo "storefront-api/internal/repository/address"
)

var (
	phonePattern = regexp.MustCompile(`^[0-9]{10}$`)
	pinPattern   = regexp.MustCompile(`^[0-9]{6}$`)
)

type Service struct {
	repo addressRepo
}

type addressRepo interface {
	Create(ctx context.Context, in addressrepo.CreateAddressInput) (*domain.Address, error)
	GetByID(ctx context.Context, id string) (*domain.Address, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Address, error)
	Update(ctx context.Context, id string, in addressrepo.UpdateAddressInput) (*domain.Address, error)
	Delete(ctx context.Context, id string) error
	SetDefault(ctx context.Context, id string) (*domain.Address, error)
}

func New(repo addressrepo.Repository) *Service {
	return &Service{repo: repo}
}

type CreateInput struct {
	UserID      string `json:"userId"`
	Type        string `json:"type"`
	Name        string `json:"name"`
	PhoneNumber string `json:"phoneNumber"`
	Line1       string `json:"line1"`
	Line2       string `json:"line2"`
	City        string `json:"city"`
	State       string `json:"state"`
	PinCode     string `json:"pinCode"`
	IsDefault   bool   `json:"isDefault"`
	Landmark    string `json:"landmark"`
}

// UpdateInput is a partial update; nil fields keep their stored value.
type UpdateInput struct {
	Type        *string `json:"type"`
	Name        *string `json:"name"`
	PhoneNumber *string `json:"phoneNumber"`
	Line1       *string `json:"line1"`
	Line2       *string `json:"line2"`
	City        *string `json:"city"`
	State       *string `json:"state"`
	PinCode     *string `json:"pinCode"`
	IsDefault   *bool   `json:"isDefault"`
	Landmark    *string `json:"landmark"`
}

func (s *Service) Create(ctx context.Context, in CreateInput) (*domain.Address, error) {
	if strings.TrimSpace(in.UserID) == "" {
		return nil, domain.Validation("user is required")
	}
	if strings.TrimSpace(in.Name) == "" {
		return nil, domain.Validation("name is required")
	}
	if strings.TrimSpace(in.Line1) == "" {
		return nil, domain.Validation("address line 1 is required")
	}
	if strings.TrimSpace(in.City) == "" {
		return nil, domain.Validation("city is required")
	}
	if strings.TrimSpace(in.State) == "" {
		return nil, domain.Validation("state is required")
	}
	if !phonePattern.MatchString(in.PhoneNumber) {
		return nil, domain.Validation(in.PhoneNumber + " is not a valid phone number")
	}
	if !pinPattern.MatchString(in.PinCode) {
		return nil, domain.Validation(in.PinCode + " is not a valid PIN code")
	}
	addrType := in.Type
	if addrType == "" {
		addrType = domain.AddressTypeHome
	}
	if !domain.ValidAddressType(addrType) {
		return nil, domain.Validation("invalid address type")
	}

	return s.repo.Create(ctx, addressrepo.CreateAddressInput{
		UserID:      in.UserID,
		Type:        addrType,
		Name:        in.Name,
		PhoneNumber: in.PhoneNumber,
		Line1:       in.Line1,
		Line2:       in.Line2,
		City:        in.City,
		State:       in.State,
		PinCode:     in.PinCode,
		IsDefault:   in.IsDefault,
		Landmark:    in.Landmark,
	})
}

func (s *Service) ListByUser(ctx context.Context, userID string) ([]domain.Address, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (*domain.Address, error) {
	if in.PhoneNumber != nil && !phonePattern.MatchString(*in.PhoneNumber) {
		return nil, domain.Validation(*in.PhoneNumber + " is not a valid phone number")
	}
	if in.PinCode != nil && !pinPattern.MatchString(*in.PinCode) {
		return nil, domain.Validation(*in.PinCode + " is not a valid PIN code")
	}
	if in.Type != nil && !domain.ValidAddressType(*in.Type) {
		return nil, domain.Validation("invalid address type")
	}
	for field, v := range map[string]*string{
		"name":  in.Name,
		"line1": in.Line1,
		"city":  in.City,
		"state": in.State,
	} {
		if v != nil && strings.TrimSpace(*v) == "" {
			return nil, domain.Validation(field + " cannot be empty")
		}
	}

	return s.repo.Update(ctx, id, addressrepo.UpdateAddressInput{
		Type:        in.Type,
		Name:        in.Name,
		PhoneNumber: in.PhoneNumber,
		Line1:       in.Line1,
		Line2:       in.Line2,
		City:        in.City,
		State:       in.State,
		PinCode:     in.PinCode,
		IsDefault:   in.IsDefault,
		Landmark:    in.Landmark,
	})
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

func (s *Service) SetDefault(ctx context.Context, id string) (*domain.Address, error) {
	return s.repo.SetDefault(ctx, id)
}
