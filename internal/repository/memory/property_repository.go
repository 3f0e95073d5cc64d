package memory

import (
	"context"

	"robinrocks-be/internal/entity"
	"robinrocks-be/internal/repository/contract"
	"robinrocks-be/internal/repository/specification"

	"github.com/google/uuid"
)

type propertyRepository struct {
	rows *store[uuid.UUID, entity.Property]
}

func NewPropertyRepository() contract.PropertyRepository {
	return &propertyRepository{rows: newStore(func(p *entity.Property) uuid.UUID { return p.Id }, seedProperties()...)}
}

func (r *propertyRepository) FindAll(ctx context.Context, specs ...specification.Specification[*entity.Property]) ([]*entity.Property, error) {
	return r.rows.findAll(specs...), nil
}

// ROI and foot traffic are estimates the advisor quotes for residential
// listings; the listing cards do not show them.
func seedProperties() []entity.Property {
	return []entity.Property{
		{
			Id: SeedID("property-1"), Address: "123 Ocean View Drive, Unit 12A", PropertyType: "Apartment",
			Price: 650000, M2: 85, Bedrooms: 2, Bathrooms: 2,
			EnvironmentalScore: 92, EnergyRating: "A+", CarbonFootprint: "Low",
			SustainableFeatures: []string{"Solar panels", "Smart thermostat", "LED lighting", "Water-efficient fixtures"},
			MatchScore:          95,
			SellingPoints: []string{
				"Perfect size for young professionals",
				"Excellent environmental credentials",
				"Prime location with ocean views",
				"Modern energy-efficient systems",
			},
			ROI: 5.8, FootTraffic: "Medium",
		},
		{
			Id: SeedID("property-2"), Address: "456 Downtown Plaza, Apartment 8B", PropertyType: "Apartment",
			Price: 580000, M2: 75, Bedrooms: 2, Bathrooms: 1,
			EnvironmentalScore: 78, EnergyRating: "B+", CarbonFootprint: "Medium",
			SustainableFeatures: []string{"Double glazing", "Insulation upgrade", "Recycling facilities"},
			MatchScore:          82,
			SellingPoints: []string{
				"Great urban location",
				"Good value for money",
				"Close to public transport",
				"Building amenities included",
			},
			ROI: 6.4, FootTraffic: "High",
		},
		{
			Id: SeedID("property-3"), Address: "789 Suburban Lane, Single Family Home", PropertyType: "House",
			Price: 750000, M2: 120, Bedrooms: 3, Bathrooms: 2,
			EnvironmentalScore: 88, EnergyRating: "A", CarbonFootprint: "Low",
			SustainableFeatures: []string{"Solar panels", "Rainwater harvesting", "Native landscaping", "Smart home system"},
			MatchScore:          88,
			SellingPoints: []string{
				"Spacious family home",
				"Large outdoor space",
				"Excellent schools nearby",
				"Strong environmental features",
			},
			ROI: 4.9, FootTraffic: "Low",
		},
	}
}

type commercialPropertyRepository struct {
	rows *store[string, entity.CommercialProperty]
}

func NewCommercialPropertyRepository() contract.CommercialPropertyRepository {
	return &commercialPropertyRepository{rows: newStore(func(p *entity.CommercialProperty) string { return p.Id }, seedCommercial()...)}
}

func (r *commercialPropertyRepository) FindAll(ctx context.Context, specs ...specification.Specification[*entity.CommercialProperty]) ([]*entity.CommercialProperty, error) {
	return r.rows.findAll(specs...), nil
}

var cityListingCounts = map[string]int{
	"amsterdam": 1247,
	"rotterdam": 856,
	"den-haag":  623,
	"utrecht":   542,
	"eindhoven": 387,
	"tilburg":   298,
	"groningen": 267,
}

func (r *commercialPropertyRepository) CityListingCounts(ctx context.Context) map[string]int {
	out := make(map[string]int, len(cityListingCounts))
	for k, v := range cityListingCounts {
		out[k] = v
	}
	return out
}

func seedCommercial() []entity.CommercialProperty {
	return []entity.CommercialProperty{
		{
			Id: "comp1", Address: "Zuidas Financial District, Unit 401A", PropertyType: "Office Space",
			Price: 920000, MonthlyRent: 13200, M2: 220, ROI: 8.6, FootTraffic: "Very High",
			BuildingClass: "Class A+", YearBuilt: 2019, ParkingSpaces: 18, TechInfrastructure: 97,
			OperatingCosts: 3100, Zoning: "Commercial", LeaseTerm: "3-7 years", Visibility: "Premium",
			MatchScore: 96, Source: "ERA Makelaars", City: "Amsterdam", District: "Zuidas",
			BusinessFeatures: []string{"Premium fiber", "Executive suites", "Concierge", "Rooftop terrace", "Smart building"},
			LocationBenefits: []string{
				"Premium Zuidas location with international visibility",
				"Direct access to financial institutions",
				"World-class business environment",
				"Excellent public transport connections",
				"High-end corporate amenities",
			},
		},
		{
			Id: "comp2", Address: "Canal Ring Historic Office, Herengracht 123", PropertyType: "Historic Office",
			Price: 1150000, MonthlyRent: 15800, M2: 185, ROI: 7.4, FootTraffic: "High",
			BuildingClass: "Heritage Premium", YearBuilt: 1680, ParkingSpaces: 8, TechInfrastructure: 85,
			OperatingCosts: 4200, Zoning: "Historic Commercial", LeaseTerm: "5-15 years", Visibility: "Historic Premium",
			MatchScore: 89, Source: "Funda Business", City: "Amsterdam", District: "Canal Ring",
			BusinessFeatures: []string{"Historic charm", "Canal views", "Restored interior", "Meeting rooms", "Heritage protection"},
			LocationBenefits: []string{
				"Prestigious Canal Ring address with heritage value",
				"Unique historic character for brand prestige",
				"Central Amsterdam location",
				"Tourist and business foot traffic",
				"Protected heritage investment",
			},
		},
		{
			Id: "comp3", Address: "Rotterdam Port Industrial Complex B7", PropertyType: "Industrial/Logistics",
			Price: 680000, MonthlyRent: 9400, M2: 420, ROI: 9.8, FootTraffic: "Medium",
			BuildingClass: "Industrial A", YearBuilt: 2017, ParkingSpaces: 35, TechInfrastructure: 82,
			OperatingCosts: 2200, Zoning: "Industrial Port", LeaseTerm: "5-20 years", Visibility: "High Industrial",
			MatchScore: 92, Source: "VBO Makelaars", City: "Rotterdam", District: "Port Area",
			BusinessFeatures: []string{"Port access", "Heavy logistics", "Rail connection", "Container handling", "24/7 operations"},
			LocationBenefits: []string{
				"Direct port access for international shipping",
				"Major European logistics hub location",
				"Excellent freight rail connections",
				"Scalable industrial operations",
				"Strategic supply chain position",
			},
		},
	}
}
