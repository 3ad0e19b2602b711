// Package seed populates empty collections with a fixed demo dataset:
// 12 counterparties, 13 properties and 15 requests with known analytics
// results, used by demos and the integration tests.
package seed

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/opensource-realty/casa/internal/domain"
	"github.com/shopspring/decimal"
)

// Apply seeds the repository if the counterparty collection is empty.
// A non-empty collection means the store already holds data and the seed
// is skipped entirely.
func Apply(ctx context.Context, repo domain.Repository) error {
	existing, err := repo.Counterparties().List(ctx)
	if err != nil {
		return fmt.Errorf("failed to check existing data: %w", err)
	}
	if len(existing) > 0 {
		slog.Info("store already holds data, seed skipped", "counterparties", len(existing))
		return nil
	}

	counterparties := Counterparties()
	for _, c := range counterparties {
		if _, err := repo.Counterparties().Create(ctx, c); err != nil {
			return fmt.Errorf("failed to seed counterparty %s: %w", c.ID, err)
		}
	}
	slog.Info("counterparties seeded", "count", len(counterparties))

	properties := Properties()
	for _, p := range properties {
		if _, err := repo.Properties().Create(ctx, p); err != nil {
			return fmt.Errorf("failed to seed property %s: %w", p.ID, err)
		}
	}
	slog.Info("properties seeded", "count", len(properties))

	requests := Requests()
	for _, r := range requests {
		if _, err := repo.Requests().Create(ctx, r); err != nil {
			return fmt.Errorf("failed to seed request %s: %w", r.ID, err)
		}
	}
	slog.Info("requests seeded", "count", len(requests))

	return nil
}

// Counterparties returns the fixed counterparty dataset.
func Counterparties() []*domain.Counterparty {
	return []*domain.Counterparty{
		{ID: "00000000-0000-0000-0000-000000000001", FullName: "Иванов Иван Иванович", PassportNumber: "4501 123456", PhoneNumber: "+7-999-111-22-33"},
		{ID: "00000000-0000-0000-0000-000000000002", FullName: "Петрова Анна Сергеевна", PassportNumber: "4501 123457", PhoneNumber: "+7-999-111-22-34"},
		{ID: "00000000-0000-0000-0000-000000000003", FullName: "Сидоров Алексей Петрович", PassportNumber: "4501 123458", PhoneNumber: "+7-999-111-22-35"},
		{ID: "00000000-0000-0000-0000-000000000004", FullName: "Козлова Мария Владимировна", PassportNumber: "4501 123459", PhoneNumber: "+7-999-111-22-36"},
		{ID: "00000000-0000-0000-0000-000000000005", FullName: "Николаев Дмитрий Олегович", PassportNumber: "4501 123460", PhoneNumber: "+7-999-111-22-37"},
		{ID: "00000000-0000-0000-0000-000000000006", FullName: "Федоров Сергей Викторович", PassportNumber: "4501 123461", PhoneNumber: "+7-999-111-22-38"},
		{ID: "00000000-0000-0000-0000-000000000007", FullName: "Орлова Екатерина Дмитриевна", PassportNumber: "4501 123462", PhoneNumber: "+7-999-111-22-39"},
		{ID: "00000000-0000-0000-0000-000000000008", FullName: "Волков Павел Александрович", PassportNumber: "4501 123463", PhoneNumber: "+7-999-111-22-40"},
		{ID: "00000000-0000-0000-0000-000000000009", FullName: "Семенова Ольга Игоревна", PassportNumber: "4501 123464", PhoneNumber: "+7-999-111-22-41"},
		{ID: "00000000-0000-0000-0000-00000000000a", FullName: "Морозов Андрей Сергеевич", PassportNumber: "4501 123465", PhoneNumber: "+7-999-111-22-42"},
		{ID: "00000000-0000-0000-0000-00000000000b", FullName: "Зайцева Наталья Петровна", PassportNumber: "4501 123466", PhoneNumber: "+7-999-111-22-43"},
		{ID: "00000000-0000-0000-0000-00000000000c", FullName: "Белов Игорь Васильевич", PassportNumber: "4501 123467", PhoneNumber: "+7-999-111-22-44"},
	}
}

// Properties returns the fixed property dataset.
func Properties() []*domain.Property {
	return []*domain.Property{
		{ID: "10000000-0000-0000-0000-000000000001", Type: domain.PropertyApartment, Purpose: domain.PurposeResidential, CadastralNumber: "77:01:0001001:101", Address: "ул. Тверская, 15, кв. 34", TotalFloors: intPtr(9), TotalArea: 75.5, RoomsCount: intPtr(3), CeilingHeight: floatPtr(2.7), Floor: intPtr(5), HasEncumbrances: boolPtr(false)},
		{ID: "10000000-0000-0000-0000-000000000002", Type: domain.PropertyApartment, Purpose: domain.PurposeResidential, CadastralNumber: "77:01:0001002:102", Address: "ул. Арбат, 25, кв. 12", TotalFloors: intPtr(5), TotalArea: 45.0, RoomsCount: intPtr(2), CeilingHeight: floatPtr(2.5), Floor: intPtr(3), HasEncumbrances: boolPtr(true)},
		{ID: "10000000-0000-0000-0000-000000000003", Type: domain.PropertyApartment, Purpose: domain.PurposeResidential, CadastralNumber: "77:01:0001003:103", Address: "пр-т Мира, 10, кв. 78", TotalFloors: intPtr(12), TotalArea: 90.0, RoomsCount: intPtr(4), CeilingHeight: floatPtr(2.8), Floor: intPtr(8), HasEncumbrances: boolPtr(false)},
		{ID: "10000000-0000-0000-0000-000000000004", Type: domain.PropertyHouse, Purpose: domain.PurposeResidential, CadastralNumber: "77:02:0002001:201", Address: "Московская обл., коттеджный поселок 'Лесной', д. 12", TotalFloors: intPtr(2), TotalArea: 150.0, RoomsCount: intPtr(6), CeilingHeight: floatPtr(3.0), HasEncumbrances: boolPtr(false)},
		{ID: "10000000-0000-0000-0000-000000000005", Type: domain.PropertyHouse, Purpose: domain.PurposeResidential, CadastralNumber: "77:02:0002002:202", Address: "Московская обл., д. Пушкино, ул. Садовая, 5", TotalFloors: intPtr(1), TotalArea: 80.0, RoomsCount: intPtr(4), CeilingHeight: floatPtr(2.6), HasEncumbrances: boolPtr(true)},
		{ID: "10000000-0000-0000-0000-000000000006", Type: domain.PropertyTownhouse, Purpose: domain.PurposeResidential, CadastralNumber: "77:03:0003001:301", Address: "пос. Рублево, таунхаусный комплекс 'Резиденция', к. 7", TotalFloors: intPtr(3), TotalArea: 120.0, RoomsCount: intPtr(5), CeilingHeight: floatPtr(2.7), HasEncumbrances: boolPtr(false)},
		{ID: "10000000-0000-0000-0000-000000000007", Type: domain.PropertyTownhouse, Purpose: domain.PurposeResidential, CadastralNumber: "77:03:0003002:302", Address: "пос. Барвиха, таунхаусный комплекс 'Престиж', к. 3", TotalFloors: intPtr(2), TotalArea: 95.0, RoomsCount: intPtr(4), CeilingHeight: floatPtr(2.8), HasEncumbrances: boolPtr(false)},
		{ID: "10000000-0000-0000-0000-000000000008", Type: domain.PropertyCommercial, Purpose: domain.PurposeCommercial, CadastralNumber: "77:05:0005001:501", Address: "ул. Новый Арбат, 15, офис 300", TotalFloors: intPtr(10), TotalArea: 60.0, RoomsCount: intPtr(2), CeilingHeight: floatPtr(2.8), Floor: intPtr(3), HasEncumbrances: boolPtr(false)},
		{ID: "10000000-0000-0000-0000-000000000009", Type: domain.PropertyCommercial, Purpose: domain.PurposeCommercial, CadastralNumber: "77:05:0005002:502", Address: "ул. Тверская-Ямская, 8, магазин", TotalFloors: intPtr(3), TotalArea: 85.0, RoomsCount: intPtr(1), CeilingHeight: floatPtr(3.2), Floor: intPtr(1), HasEncumbrances: boolPtr(true)},
		{ID: "10000000-0000-0000-0000-00000000000a", Type: domain.PropertyParkingSpace, Purpose: domain.PurposeCommercial, CadastralNumber: "77:06:0006001:601", Address: "ул. Садовая-Кудринская, 1, подземный паркинг, место А-15", TotalArea: 12.5, CeilingHeight: floatPtr(2.2), Floor: intPtr(-1), HasEncumbrances: boolPtr(true)},
		{ID: "10000000-0000-0000-0000-00000000000b", Type: domain.PropertyParkingSpace, Purpose: domain.PurposeCommercial, CadastralNumber: "77:06:0006002:602", Address: "ул. Мясницкая, 20, паркинг, место Б-07", TotalArea: 13.0, CeilingHeight: floatPtr(2.3), Floor: intPtr(-2), HasEncumbrances: boolPtr(false)},
		{ID: "10000000-0000-0000-0000-00000000000c", Type: domain.PropertyWarehouse, Purpose: domain.PurposeIndustrial, CadastralNumber: "77:07:0007001:701", Address: "промзона 'Южные Ворота', складской комплекс №3", TotalFloors: intPtr(1), TotalArea: 500.0, CeilingHeight: floatPtr(6.0), HasEncumbrances: boolPtr(false)},
		{ID: "10000000-0000-0000-0000-00000000000d", Type: domain.PropertyWarehouse, Purpose: domain.PurposeIndustrial, CadastralNumber: "77:07:0007002:702", Address: "промзона 'Северная', склад №5", TotalFloors: intPtr(2), TotalArea: 350.0, CeilingHeight: floatPtr(5.5), HasEncumbrances: boolPtr(true)},
	}
}

// Requests returns the fixed request dataset. References are by index into
// the counterparty and property datasets; snapshots are attached the way
// the request service would store them.
func Requests() []*domain.Request {
	counterparties := Counterparties()
	properties := Properties()

	request := func(id string, counterpartyIdx, propertyIdx int, t domain.RequestType, amount int64, date time.Time) *domain.Request {
		return &domain.Request{
			ID:             id,
			CounterpartyID: counterparties[counterpartyIdx].ID,
			PropertyID:     properties[propertyIdx].ID,
			Counterparty:   counterparties[counterpartyIdx],
			Property:       properties[propertyIdx],
			Type:           t,
			Amount:         decimal.NewFromInt(amount),
			Date:           date,
		}
	}

	return []*domain.Request{
		request("20000000-0000-0000-0000-000000000001", 0, 0, domain.RequestSale, 25_000_000, date(2024, 1, 15)),
		request("20000000-0000-0000-0000-000000000002", 1, 1, domain.RequestSale, 18_000_000, date(2024, 2, 20)),
		request("20000000-0000-0000-0000-000000000003", 3, 3, domain.RequestSale, 42_000_000, date(2024, 3, 10)),
		request("20000000-0000-0000-0000-000000000004", 6, 5, domain.RequestSale, 35_000_000, date(2024, 4, 5)),
		request("20000000-0000-0000-0000-000000000005", 8, 7, domain.RequestSale, 32_000_000, date(2024, 5, 12)),
		request("20000000-0000-0000-0000-000000000006", 10, 9, domain.RequestSale, 1_500_000, date(2024, 6, 8)),
		request("20000000-0000-0000-0000-000000000007", 11, 11, domain.RequestSale, 85_000_000, date(2024, 7, 25)),
		request("20000000-0000-0000-0000-000000000008", 2, 2, domain.RequestPurchase, 22_000_000, date(2024, 1, 20)),
		request("20000000-0000-0000-0000-000000000009", 4, 4, domain.RequestPurchase, 15_000_000, date(2024, 2, 25)),
		request("20000000-0000-0000-0000-00000000000a", 5, 6, domain.RequestPurchase, 28_000_000, date(2024, 3, 15)),
		request("20000000-0000-0000-0000-00000000000b", 7, 8, domain.RequestPurchase, 25_000_000, date(2024, 4, 18)),
		request("20000000-0000-0000-0000-00000000000c", 9, 10, domain.RequestPurchase, 1_800_000, date(2024, 5, 22)),
		request("20000000-0000-0000-0000-00000000000d", 2, 12, domain.RequestPurchase, 60_000_000, date(2024, 6, 30)),
		request("20000000-0000-0000-0000-00000000000e", 1, 0, domain.RequestPurchase, 24_000_000, date(2024, 8, 10)),
		request("20000000-0000-0000-0000-00000000000f", 3, 1, domain.RequestSale, 19_000_000, date(2024, 9, 5)),
	}
}

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func intPtr(v int) *int {
	return &v
}

func floatPtr(v float64) *float64 {
	return &v
}

func boolPtr(v bool) *bool {
	return &v
}
