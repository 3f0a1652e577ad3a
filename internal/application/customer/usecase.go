package customer

import (
	"github.com/google/uuid"

	"github.com/tu-usuario/cobranza-api/internal/application/dto"
	"github.com/tu-usuario/cobranza-api/internal/domain"
	"github.com/tu-usuario/cobranza-api/internal/domain/entity"
	"github.com/tu-usuario/cobranza-api/internal/domain/repository"
)

// UseCase altas y mantenimiento de clientes. Un cliente nace asignado a
// una ruta; su posición dentro de ella la administra el enrutador.
type UseCase struct {
	customerRepo repository.CustomerRepository
	routeRepo    repository.RouteRepository
	clock        domain.Clock
}

// NewUseCase construye el mantenimiento de clientes.
func NewUseCase(customerRepo repository.CustomerRepository, routeRepo repository.RouteRepository, clock domain.Clock) *UseCase {
	return &UseCase{customerRepo: customerRepo, routeRepo: routeRepo, clock: clock}
}

// Create registra un cliente nuevo al final de su ruta. El DNI es único
// por empresa.
func (uc *UseCase) Create(companyID string, in dto.CreateCustomerRequest) (*dto.CustomerResponse, error) {
	if in.Name == "" || in.DNI == "" || in.RouteID == "" {
		return nil, domain.ErrInvalidInput
	}

	route, err := uc.routeRepo.GetByID(companyID, in.RouteID)
	if err != nil {
		return nil, err
	}
	if route == nil {
		return nil, domain.ErrNotFound
	}

	existing, err := uc.customerRepo.GetByDNI(companyID, in.DNI)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}

	count, err := uc.customerRepo.CountByRoute(companyID, in.RouteID)
	if err != nil {
		return nil, err
	}

	now := uc.clock.Now()
	c := &entity.Customer{
		ID:            uuid.New().String(),
		CompanyID:     companyID,
		DNI:           in.DNI,
		Name:          in.Name,
		Phone:         in.Phone,
		Address:       in.Address,
		District:      in.District,
		BusinessRef:   in.BusinessRef,
		RouteID:       in.RouteID,
		RoutePosition: int(count) + 1,
		Lat:           in.Lat,
		Lon:           in.Lon,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.customerRepo.Create(c); err != nil {
		return nil, err
	}
	return toResponse(c), nil
}

// Get devuelve un cliente por ID.
func (uc *UseCase) Get(companyID, customerID string) (*dto.CustomerResponse, error) {
	c, err := uc.customerRepo.GetByID(companyID, customerID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	return toResponse(c), nil
}

// Update edita los datos del cliente, incluido refrescar su coordenada GPS.
// La ruta y la posición no se tocan aquí; eso es del enrutador.
func (uc *UseCase) Update(companyID, customerID string, in dto.UpdateCustomerRequest) (*dto.CustomerResponse, error) {
	c, err := uc.customerRepo.GetByID(companyID, customerID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != "" {
		c.Name = in.Name
	}
	c.Phone = in.Phone
	c.Address = in.Address
	c.District = in.District
	c.BusinessRef = in.BusinessRef
	if in.Lat != nil && in.Lon != nil {
		c.Lat = in.Lat
		c.Lon = in.Lon
	}
	c.UpdatedAt = uc.clock.Now()

	if err := uc.customerRepo.Update(c); err != nil {
		return nil, err
	}
	return toResponse(c), nil
}

// List devuelve los clientes de la empresa, paginados.
func (uc *UseCase) List(companyID string, page dto.PageRequest) ([]*dto.CustomerResponse, error) {
	page.DefaultPage()
	customers, err := uc.customerRepo.ListByCompany(companyID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	return toResponses(customers), nil
}

// Search busca por nombre o DNI (el buscador rápido del cobrador).
func (uc *UseCase) Search(companyID, term string) ([]*dto.CustomerResponse, error) {
	if term == "" {
		return nil, domain.ErrInvalidInput
	}
	customers, err := uc.customerRepo.Search(companyID, term, 20)
	if err != nil {
		return nil, err
	}
	return toResponses(customers), nil
}

func toResponses(customers []*entity.Customer) []*dto.CustomerResponse {
	out := make([]*dto.CustomerResponse, 0, len(customers))
	for _, c := range customers {
		out = append(out, toResponse(c))
	}
	return out
}

func toResponse(c *entity.Customer) *dto.CustomerResponse {
	return &dto.CustomerResponse{
		ID:            c.ID,
		DNI:           c.DNI,
		Name:          c.Name,
		Phone:         c.Phone,
		Address:       c.Address,
		District:      c.District,
		BusinessRef:   c.BusinessRef,
		RouteID:       c.RouteID,
		RoutePosition: c.RoutePosition,
		Lat:           c.Lat,
		Lon:           c.Lon,
		HasGPS:        c.HasGPS(),
		CreatedAt:     c.CreatedAt,
	}
}
