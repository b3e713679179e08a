package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/eproc-api/internal/application/dto"
	"github.com/jhoicas/eproc-api/internal/application/ports"
	"github.com/jhoicas/eproc-api/internal/domain"
	"github.com/jhoicas/eproc-api/internal/domain/entity"
	"github.com/jhoicas/eproc-api/internal/domain/repository"
	"github.com/jhoicas/eproc-api/pkg/brdoc"
)

// sheetProductLimit productos listados en la ficha PDF.
const sheetProductLimit = 100

// SupplierUseCase casos de uso CRUD de proveedores.
type SupplierUseCase struct {
	repo        repository.SupplierRepository
	productRepo repository.ProductRepository
	tx          TxRunner
	sheet       ports.SupplierSheetGenerator
}

// NewSupplierUseCase construye el caso de uso. sheet puede ser nil si no se expone la ficha PDF.
func NewSupplierUseCase(repo repository.SupplierRepository, productRepo repository.ProductRepository, tx TxRunner, sheet ports.SupplierSheetGenerator) *SupplierUseCase {
	return &SupplierUseCase{repo: repo, productRepo: productRepo, tx: tx, sheet: sheet}
}

// Create valida y persiste un nuevo proveedor.
func (uc *SupplierUseCase) Create(ctx context.Context, in dto.CreateSupplierRequest) (*dto.SupplierResponse, error) {
	s, err := buildSupplier(in)
	if err != nil {
		return nil, err
	}
	if err := uc.ensureEmailFree(ctx, s.Email, ""); err != nil {
		return nil, err
	}
	now := time.Now()
	s.ID = uuid.New().String()
	s.CreatedAt = now
	s.UpdatedAt = now
	if err := uc.repo.Create(ctx, s); err != nil {
		return nil, err
	}
	return toSupplierResponse(s), nil
}

// GetByID obtiene un proveedor. Devuelve nil, nil si no existe.
func (uc *SupplierUseCase) GetByID(ctx context.Context, id string) (*dto.SupplierResponse, error) {
	s, err := uc.repo.GetByID(ctx, id)
	if err != nil || s == nil {
		return nil, err
	}
	return toSupplierResponse(s), nil
}

// Update reemplaza los datos del proveedor. El email sigue siendo único, excluyendo al propio proveedor.
func (uc *SupplierUseCase) Update(ctx context.Context, id string, in dto.UpdateSupplierRequest) (*dto.SupplierResponse, error) {
	current, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, nil
	}
	s, err := buildSupplier(in)
	if err != nil {
		return nil, err
	}
	if err := uc.ensureEmailFree(ctx, s.Email, id); err != nil {
		return nil, err
	}
	s.ID = current.ID
	s.CreatedAt = current.CreatedAt
	s.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, s); err != nil {
		return nil, err
	}
	return toSupplierResponse(s), nil
}

// List busca por nombre o email y pagina (page empieza en 1).
func (uc *SupplierUseCase) List(ctx context.Context, search string, page, limit int) (*dto.SupplierListResponse, error) {
	page, limit = normalizePage(page, limit)
	list, total, err := uc.repo.List(ctx, entity.SupplierFilter{
		Search: strings.TrimSpace(search),
		Limit:  limit,
		Offset: (page - 1) * limit,
	})
	if err != nil {
		return nil, err
	}
	items := make([]dto.SupplierResponse, 0, len(list))
	for _, s := range list {
		items = append(items, *toSupplierResponse(s))
	}
	return &dto.SupplierListResponse{Items: items, Page: dto.NewPageResponse(page, limit, total)}, nil
}

// Delete elimina el proveedor si no tiene productos asociados.
func (uc *SupplierUseCase) Delete(ctx context.Context, id string) error {
	return uc.tx.Run(ctx, func(suppliers repository.SupplierRepository, products repository.ProductRepository) error {
		s, err := suppliers.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if s == nil {
			return domain.ErrNotFound
		}
		n, err := products.CountBySupplier(ctx, id)
		if err != nil {
			return err
		}
		if n > 0 {
			return fmt.Errorf("%w: existen %d producto(s) asociado(s)", domain.ErrSupplierHasProducts, n)
		}
		return suppliers.Delete(ctx, id)
	})
}

// Sheet genera la ficha PDF del proveedor con sus productos.
func (uc *SupplierUseCase) Sheet(ctx context.Context, id string) ([]byte, error) {
	if uc.sheet == nil {
		return nil, fmt.Errorf("generador de fichas no configurado")
	}
	s, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, domain.ErrNotFound
	}
	products, _, err := uc.productRepo.List(ctx, entity.ProductFilter{SupplierID: id, Limit: sheetProductLimit})
	if err != nil {
		return nil, err
	}
	return uc.sheet.GenerateSupplierSheet(ctx, s, products)
}

func (uc *SupplierUseCase) ensureEmailFree(ctx context.Context, email, selfID string) error {
	other, err := uc.repo.GetByEmail(ctx, email)
	if err != nil {
		return err
	}
	if other != nil && other.ID != selfID {
		return domain.ErrEmailAlreadyExists
	}
	return nil
}

// buildSupplier normaliza la entrada y aplica las reglas de documento según el tipo de persona.
func buildSupplier(in dto.CreateSupplierRequest) (*entity.Supplier, error) {
	name := strings.TrimSpace(in.Name)
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if name == "" || email == "" {
		return nil, fmt.Errorf("%w: nombre y email son obligatorios", domain.ErrInvalidInput)
	}
	personType := in.PersonType
	if personType == "" {
		personType = entity.PersonJuridica
	}

	doc := brdoc.OnlyDigits(in.Document)
	switch {
	case doc == "":
	case personType == entity.PersonJuridica && !brdoc.ValidCNPJ(doc):
		return nil, fmt.Errorf("%w: CNPJ inválido", domain.ErrInvalidInput)
	case personType == entity.PersonFisica && !brdoc.ValidCPF(doc):
		return nil, fmt.Errorf("%w: CPF inválido", domain.ErrInvalidInput)
	}

	tradeName := strings.TrimSpace(in.TradeName)
	if tradeName == "" && personType == entity.PersonJuridica {
		tradeName = name
	}

	return &entity.Supplier{
		PersonType:            personType,
		Document:              doc,
		Name:                  name,
		TradeName:             tradeName,
		StateRegistration:     strings.TrimSpace(in.StateRegistration),
		MunicipalRegistration: strings.TrimSpace(in.MunicipalRegistration),
		CNAECode:              brdoc.OnlyDigits(in.CNAECode),
		CNAEDescription:       strings.TrimSpace(in.CNAEDescription),
		TaxRegime:             in.TaxRegime,
		IEIndicator:           in.IEIndicator,
		Address:               toAddress(in.Address),
		Email:                 email,
		Phone:                 brdoc.NormalizePhone(in.Phone),
		Website:               strings.TrimSpace(in.Website),
		Observations:          strings.TrimSpace(in.Observations),
	}, nil
}

func toAddress(a dto.AddressDTO) entity.Address {
	return entity.Address{
		PostalCode:   brdoc.FormatCEP(a.PostalCode),
		Street:       strings.TrimSpace(a.Street),
		Number:       strings.TrimSpace(a.Number),
		Complement:   strings.TrimSpace(a.Complement),
		Neighborhood: strings.TrimSpace(a.Neighborhood),
		City:         strings.TrimSpace(a.City),
		State:        strings.ToUpper(strings.TrimSpace(a.State)),
		Latitude:     a.Latitude,
		Longitude:    a.Longitude,
	}
}

// ToAddressDTO convierte la dirección de dominio al DTO de salida.
func ToAddressDTO(a entity.Address) dto.AddressDTO {
	return dto.AddressDTO{
		PostalCode:   a.PostalCode,
		Street:       a.Street,
		Number:       a.Number,
		Complement:   a.Complement,
		Neighborhood: a.Neighborhood,
		City:         a.City,
		State:        a.State,
		Latitude:     a.Latitude,
		Longitude:    a.Longitude,
	}
}

func toSupplierResponse(s *entity.Supplier) *dto.SupplierResponse {
	if s == nil {
		return nil
	}
	return &dto.SupplierResponse{
		ID:                    s.ID,
		PersonType:            s.PersonType,
		Document:              s.Document,
		Name:                  s.Name,
		TradeName:             s.TradeName,
		StateRegistration:     s.StateRegistration,
		MunicipalRegistration: s.MunicipalRegistration,
		CNAECode:              s.CNAECode,
		CNAEDescription:       s.CNAEDescription,
		TaxRegime:             s.TaxRegime,
		IEIndicator:           s.IEIndicator,
		Address:               ToAddressDTO(s.Address),
		Email:                 s.Email,
		Phone:                 s.Phone,
		Website:               s.Website,
		Observations:          s.Observations,
		CreatedAt:             s.CreatedAt,
		UpdatedAt:             s.UpdatedAt,
	}
}

// normalizePage aplica page >= 1 y limit en [1, 100] (20 por defecto).
func normalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	return page, limit
}
