package routing

import (
	"github.com/google/uuid"

	"github.com/tu-usuario/cobranza-api/internal/application/dto"
	"github.com/tu-usuario/cobranza-api/internal/domain"
	domcredit "github.com/tu-usuario/cobranza-api/internal/domain/credit"
	"github.com/tu-usuario/cobranza-api/internal/domain/entity"
	"github.com/tu-usuario/cobranza-api/internal/domain/geo"
	"github.com/tu-usuario/cobranza-api/internal/domain/repository"
	domrouting "github.com/tu-usuario/cobranza-api/internal/domain/routing"
	"github.com/tu-usuario/cobranza-api/pkg/config"
	"github.com/tu-usuario/cobranza-api/pkg/logger"
)

// UseCase administra el orden de visita de las rutas de cobro y la vista
// diaria del cobrador. El orden propuesto nunca se persiste solo: el flujo
// es proponer → revisar → confirmar.
type UseCase struct {
	customerRepo repository.CustomerRepository
	creditRepo   repository.CreditRepository
	routeRepo    repository.RouteRepository
	clock        domain.Clock
	cfg          config.CreditoConfig
	log          *logger.Logger
}

// NewUseCase construye el enrutador.
func NewUseCase(customerRepo repository.CustomerRepository, creditRepo repository.CreditRepository, routeRepo repository.RouteRepository, clock domain.Clock, cfg config.CreditoConfig, log *logger.Logger) *UseCase {
	return &UseCase{
		customerRepo: customerRepo,
		creditRepo:   creditRepo,
		routeRepo:    routeRepo,
		clock:        clock,
		cfg:          cfg,
		log:          log.WithComponent("rutas"),
	}
}

// CreateRoute da de alta una ruta de cobro, opcionalmente con cobrador asignado.
func (uc *UseCase) CreateRoute(companyID, name, collectorID string) (*dto.RouteResponse, error) {
	if name == "" {
		return nil, domain.ErrInvalidInput
	}
	r := &entity.Route{
		ID:          uuid.New().String(),
		CompanyID:   companyID,
		Name:        name,
		CollectorID: collectorID,
		Status:      true,
		CreatedAt:   uc.clock.Now(),
	}
	if err := uc.routeRepo.Create(r); err != nil {
		return nil, err
	}
	return toRouteResponse(r), nil
}

// ListRoutes devuelve las rutas de la empresa.
func (uc *UseCase) ListRoutes(companyID string) ([]*dto.RouteResponse, error) {
	routes, err := uc.routeRepo.ListByCompany(companyID)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.RouteResponse, 0, len(routes))
	for _, r := range routes {
		out = append(out, toRouteResponse(r))
	}
	return out, nil
}

func toRouteResponse(r *entity.Route) *dto.RouteResponse {
	return &dto.RouteResponse{
		ID:          r.ID,
		Name:        r.Name,
		CollectorID: r.CollectorID,
		Status:      r.Status,
	}
}

// ProposeSequence corre el vecino más cercano sobre los clientes de la ruta
// que tienen crédito activo (a los demás no hay que visitarlos) y devuelve
// el orden propuesto sin tocar la base. Los clientes sin GPS van al final.
func (uc *UseCase) ProposeSequence(companyID, routeID string) (*dto.SequenceProposalResponse, error) {
	if err := uc.routeExists(companyID, routeID); err != nil {
		return nil, err
	}

	customers, err := uc.customerRepo.ListByRoute(companyID, routeID)
	if err != nil {
		return nil, err
	}
	active, err := uc.creditRepo.ListActiveByRoute(companyID, routeID)
	if err != nil {
		return nil, err
	}

	withCredit := make(map[string]bool, len(active))
	for _, c := range active {
		withCredit[c.CustomerID] = true
	}
	visitable := make([]*entity.Customer, 0, len(customers))
	for _, c := range customers {
		if withCredit[c.ID] {
			visitable = append(visitable, c)
		}
	}
	if len(visitable) == 0 {
		return &dto.SequenceProposalResponse{RouteID: routeID}, nil
	}

	ordered, err := domrouting.AutoSequence(visitable)
	if err != nil {
		return nil, err
	}

	out := &dto.SequenceProposalResponse{
		RouteID:   routeID,
		Customers: make([]*dto.CustomerResponse, 0, len(ordered)),
	}
	for i, c := range ordered {
		r := toCustomerResponse(c)
		r.RoutePosition = i + 1 // posición propuesta, aún sin confirmar
		out.Customers = append(out.Customers, r)
	}
	return out, nil
}

// CommitOrder persiste un orden confirmado asignando posiciones densas
// 1..N en una sola operación. Los IDs deben ser exactamente los clientes
// de la ruta; cualquier discrepancia rechaza el commit completo.
func (uc *UseCase) CommitOrder(companyID, routeID string, in dto.CommitOrderRequest) error {
	if err := uc.routeExists(companyID, routeID); err != nil {
		return err
	}
	if len(in.OrderedCustomerIDs) == 0 {
		return domain.ErrInvalidInput
	}

	customers, err := uc.customerRepo.ListByRoute(companyID, routeID)
	if err != nil {
		return err
	}
	inRoute := make(map[string]bool, len(customers))
	for _, c := range customers {
		inRoute[c.ID] = true
	}
	seen := make(map[string]bool, len(in.OrderedCustomerIDs))
	for _, id := range in.OrderedCustomerIDs {
		if !inRoute[id] || seen[id] {
			return domain.ErrInvalidInput
		}
		seen[id] = true
	}

	return uc.customerRepo.UpdatePositions(companyID, routeID, in.OrderedCustomerIDs)
}

// MovePosition reubica manualmente a un cliente dentro de su ruta y
// persiste el orden resultante completo, manteniendo posiciones densas.
func (uc *UseCase) MovePosition(companyID, routeID string, in dto.MovePositionRequest) error {
	if err := uc.routeExists(companyID, routeID); err != nil {
		return err
	}

	customers, err := uc.customerRepo.ListByRoute(companyID, routeID)
	if err != nil {
		return err
	}
	reordered, err := domrouting.MoveToPosition(customers, in.CustomerID, in.NewPosition)
	if err != nil {
		return err
	}

	ids := make([]string, 0, len(reordered))
	for _, c := range reordered {
		ids = append(ids, c.ID)
	}
	return uc.customerRepo.UpdatePositions(companyID, routeID, ids)
}

// BulkReassignRoute migra todos los clientes de una ruta a otra. Exige
// autorización explícita del admin, valida ambas rutas y reporta cuántos
// clientes movió. Cero clientes es un no-op válido, no un error.
func (uc *UseCase) BulkReassignRoute(companyID string, in dto.ReassignRouteRequest) (*dto.ReassignRouteResponse, error) {
	if in.FromRouteID == in.ToRouteID {
		return nil, domain.ErrInvalidInput
	}
	if !in.Override {
		return nil, domain.ErrOverrideRequired
	}
	if err := uc.routeExists(companyID, in.FromRouteID); err != nil {
		return nil, err
	}
	if err := uc.routeExists(companyID, in.ToRouteID); err != nil {
		return nil, err
	}

	// El conteo previo solo decide el no-op. El Moved reportado debe salir
	// de ReassignRoute (filas afectadas por el UPDATE atómico), nunca de
	// este count: entre ambas lecturas la ruta pudo cambiar.
	count, err := uc.customerRepo.CountByRoute(companyID, in.FromRouteID)
	if err != nil {
		return nil, err
	}
	if count == 0 {
		return &dto.ReassignRouteResponse{Moved: 0}, nil
	}

	moved, err := uc.customerRepo.ReassignRoute(companyID, in.FromRouteID, in.ToRouteID)
	if err != nil {
		return nil, err
	}

	uc.log.Warn().
		Str("from_route", in.FromRouteID).
		Str("to_route", in.ToRouteID).
		Int64("moved", moved).
		Msg("migración masiva de clientes entre rutas")

	return &dto.ReassignRouteResponse{Moved: moved}, nil
}

// CollectionStops arma la vista de cobro del día: los créditos activos de
// la ruta en el orden de visita, con semáforo de mora recalculado. Si el
// cobrador envía su posición, cada parada lleva la distancia y la alerta
// de "lejos del cliente" contra el radio configurado.
func (uc *UseCase) CollectionStops(companyID, routeID string, agentLat, agentLon *float64) ([]*dto.CollectionStopResponse, error) {
	if err := uc.routeExists(companyID, routeID); err != nil {
		return nil, err
	}

	customers, err := uc.customerRepo.ListByRoute(companyID, routeID)
	if err != nil {
		return nil, err
	}
	active, err := uc.creditRepo.ListActiveByRoute(companyID, routeID)
	if err != nil {
		return nil, err
	}
	byCustomer := make(map[string]*entity.Credit, len(active))
	for _, c := range active {
		byCustomer[c.CustomerID] = c
	}

	now := uc.clock.Now()
	stops := make([]*dto.CollectionStopResponse, 0, len(active))
	for _, cust := range customers {
		credit, ok := byCustomer[cust.ID]
		if !ok {
			continue
		}
		stop := &dto.CollectionStopResponse{
			Position:          len(stops) + 1,
			CustomerID:        cust.ID,
			CustomerName:      cust.Name,
			District:          cust.District,
			CreditID:          credit.ID,
			Balance:           credit.Balance,
			InstallmentAmount: credit.InstallmentAmount,
			DelinquencyTier:   domcredit.DelinquencyTier(credit, now),
		}
		if agentLat != nil && agentLon != nil && cust.HasGPS() {
			d := geo.Distance(*agentLat, *agentLon, *cust.Lat, *cust.Lon)
			stop.DistanceM = &d
			stop.FarFromAgent = !geo.WithinRadius(*agentLat, *agentLon, *cust.Lat, *cust.Lon, float64(uc.cfg.RadioProximidadM))
		}
		stops = append(stops, stop)
	}
	return stops, nil
}

func (uc *UseCase) routeExists(companyID, routeID string) error {
	r, err := uc.routeRepo.GetByID(companyID, routeID)
	if err != nil {
		return err
	}
	if r == nil {
		return domain.ErrNotFound
	}
	return nil
}

func toCustomerResponse(c *entity.Customer) *dto.CustomerResponse {
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
