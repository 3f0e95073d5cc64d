package memory

import (
	"context"

	"robinrocks-be/internal/entity"
	"robinrocks-be/internal/repository/contract"
	"robinrocks-be/internal/repository/specification"

	"github.com/google/uuid"
)

type contractRepository struct {
	rows *store[uuid.UUID, entity.Contract]
}

func NewContractRepository() contract.ContractRepository {
	return &contractRepository{rows: newStore(func(c *entity.Contract) uuid.UUID { return c.Id }, seedContracts()...)}
}

func (r *contractRepository) FindOne(ctx context.Context, specs ...specification.Specification[*entity.Contract]) (*entity.Contract, error) {
	return r.rows.findOne(specs...), nil
}

func (r *contractRepository) FindAll(ctx context.Context, specs ...specification.Specification[*entity.Contract]) ([]*entity.Contract, error) {
	return r.rows.findAll(specs...), nil
}

func seedContracts() []entity.Contract {
	return []entity.Contract{
		{
			Id: SeedID("contract-1"), PropertyAddress: "Hoofdstraat 123, Amsterdam",
			Tenant: "Tech Solutions BV", Landlord: "Property Invest NV", Area: "Amsterdam Centrum",
			Type: entity.ContractOffice, StartDate: date("2022-01-15"), EndDate: date("2025-01-14"),
			MonthlyRent: 2500, IndexationDate: date("2025-01-15"), LastIndexation: date("2024-01-15"),
			Status: entity.ContractActive,
		},
		{
			Id: SeedID("contract-2"), PropertyAddress: "Winkelstraat 45, Rotterdam",
			Tenant: "Fashion Store", Landlord: "Retail Properties BV", Area: "Rotterdam Zuid",
			Type: entity.ContractShop, StartDate: date("2023-03-01"), EndDate: date("2025-12-28"),
			MonthlyRent: 3200, IndexationDate: date("2025-03-01"), LastIndexation: date("2024-03-01"),
			Status: entity.ContractExpiring,
		},
		{
			Id: SeedID("contract-3"), PropertyAddress: "Kerkstraat 78, Utrecht",
			Tenant: "Consulting Group", Landlord: "Office Real Estate NV", Area: "Utrecht Centrum",
			Type: entity.ContractOffice, StartDate: date("2021-06-01"), EndDate: date("2024-05-31"),
			MonthlyRent: 1800, IndexationDate: date("2024-06-01"), LastIndexation: date("2023-06-01"),
			Status: entity.ContractExpired,
		},
		{
			Id: SeedID("contract-4"), PropertyAddress: "Marktplein 12, Den Haag",
			Tenant: "Coffee Corner", Landlord: "City Properties BV", Area: "Den Haag Centrum",
			Type: entity.ContractShop, StartDate: date("2023-09-01"), EndDate: date("2025-12-20"),
			MonthlyRent: 2100, IndexationDate: date("2025-09-01"), LastIndexation: date("2024-09-01"),
			Status: entity.ContractExpiring,
		},
		{
			Id: SeedID("contract-5"), PropertyAddress: "Bedrijvenweg 234, Amsterdam",
			Tenant: "Logistics Co", Landlord: "Industrial Estates NV", Area: "Amsterdam Noord",
			Type: entity.ContractOffice, StartDate: date("2022-11-01"), EndDate: date("2027-10-31"),
			MonthlyRent: 4500, IndexationDate: date("2025-11-01"), LastIndexation: date("2024-11-01"),
			Status: entity.ContractActive,
		},
		{
			Id: SeedID("contract-6"), PropertyAddress: "Singel 89, Amsterdam",
			Tenant: "Design Studio", Landlord: "Heritage Properties BV", Area: "Amsterdam Centrum",
			Type: entity.ContractOffice, StartDate: date("2023-02-15"), EndDate: date("2026-02-14"),
			MonthlyRent: 2800, IndexationDate: date("2026-02-15"), LastIndexation: date("2024-02-15"),
			Status: entity.ContractActive,
		},
	}
}
