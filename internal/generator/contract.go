// Package generator fabricates plausible counterparty, property and request
// payloads and streams them onto the event bus.
package generator

import (
	"fmt"
	"math"
	"math/rand/v2"
	"time"

	"github.com/opensource-realty/casa/internal/domain"
	"github.com/shopspring/decimal"
)

var russianFirstNames = []string{
	"Александр", "Дмитрий", "Максим", "Сергей", "Андрей", "Алексей", "Артём", "Илья", "Кирилл", "Михаил",
	"Никита", "Матвей", "Роман", "Егор", "Арсений", "Иван", "Денис", "Евгений", "Даниил", "Тимофей",
	"Анна", "Мария", "Елена", "Дарья", "Алина", "Ирина", "Екатерина", "Ольга", "Татьяна", "Наталья",
	"Юлия", "Виктория", "Марина", "Светлана", "Анастасия", "Полина", "Софья", "Валерия", "Ксения", "Вера",
}

var russianLastNames = []string{
	"Иванов", "Смирнов", "Кузнецов", "Попов", "Васильев", "Петров", "Соколов", "Михайлов", "Новиков", "Федоров",
	"Морозов", "Волков", "Алексеев", "Лебедев", "Семёнов", "Егоров", "Павлов", "Козлов", "Степанов", "Николаев",
	"Орлов", "Андреев", "Макаров", "Никитин", "Захаров", "Зайцев", "Соловьёв", "Борисов", "Яковлев", "Григорьев",
}

var russianPatronymics = []string{
	"Александрович", "Дмитриевич", "Сергеевич", "Андреевич", "Алексеевич", "Михайлович", "Владимирович", "Николаевич",
	"Александровна", "Дмитриевна", "Сергеевна", "Андреевна", "Алексеевна", "Михайловна", "Владимировна", "Николаевна",
}

var russianCities = []string{
	"Москва", "Санкт-Петербург", "Новосибирск", "Екатеринбург", "Казань",
	"Нижний Новгород", "Челябинск", "Самара", "Омск", "Ростов-на-Дону",
}

var russianStreets = []string{
	"Ленина", "Мира", "Советская", "Гагарина", "Пушкина", "Комсомольская",
	"Центральная", "Победы", "Октябрьская", "Молодёжная", "Садовая", "Парковая",
}

// Contract fabricates create payloads. Content ranges are internally
// consistent: a floor never exceeds the total floors of its building.
type Contract struct {
	rng *rand.Rand
	now func() time.Time
}

// NewContract creates a generator with its own random source.
func NewContract() *Contract {
	return &Contract{
		rng: rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
		now: time.Now,
	}
}

// NewContractSeeded creates a deterministic generator for tests.
func NewContractSeeded(seed uint64) *Contract {
	return &Contract{
		rng: rand.New(rand.NewPCG(seed, seed)),
		now: time.Now,
	}
}

// Package is one (counterparty, property) pair published together.
type Package struct {
	Counterparty domain.CreateCounterparty
	Property     domain.CreateProperty
}

// NewPackage fabricates a counterparty and a property.
func (g *Contract) NewPackage() Package {
	return Package{
		Counterparty: g.Counterparty(),
		Property:     g.Property(),
	}
}

// Counterparty fabricates a counterparty payload with a Russian full name,
// a passport number and a mobile phone number.
func (g *Contract) Counterparty() domain.CreateCounterparty {
	firstName := pick(g.rng, russianFirstNames)
	lastName := pick(g.rng, russianLastNames)
	patronymic := pick(g.rng, russianPatronymics)

	return domain.CreateCounterparty{
		FullName:       fmt.Sprintf("%s %s %s", lastName, firstName, patronymic),
		PassportNumber: fmt.Sprintf("%d %d", g.intBetween(1000, 9999), g.intBetween(100000, 999999)),
		PhoneNumber:    fmt.Sprintf("+7%d%d", g.intBetween(900, 999), g.intBetween(1000000, 9999999)),
	}
}

// Property fabricates a property payload. The purpose follows the type's
// convention (ParkingSpace picks one at random), and the physical attributes
// use per-type ranges.
func (g *Contract) Property() domain.CreateProperty {
	propertyType := pick(g.rng, domain.PropertyTypes)

	purpose := domain.DefaultPurposeFor(propertyType)
	if propertyType == domain.PropertyParkingSpace {
		purpose = pick(g.rng, domain.PropertyPurposes)
	}

	city := pick(g.rng, russianCities)
	street := pick(g.rng, russianStreets)
	address := fmt.Sprintf("г. %s, ул. %s, д. %d", city, street, g.intBetween(1, 150))
	if propertyType == domain.PropertyApartment {
		address += fmt.Sprintf(", кв. %d", g.intBetween(1, 500))
	}

	cadastralNumber := fmt.Sprintf("%d:%d:%d:%d",
		g.intBetween(10, 99),
		g.intBetween(10, 99),
		g.intBetween(1000000, 9999999),
		g.intBetween(100, 999),
	)

	var totalFloors *int
	switch propertyType {
	case domain.PropertyApartment:
		totalFloors = intPtr(g.intBetween(5, 25))
	case domain.PropertyHouse:
		totalFloors = intPtr(g.intBetween(1, 4))
	case domain.PropertyTownhouse:
		totalFloors = intPtr(g.intBetween(2, 4))
	case domain.PropertyCommercial:
		totalFloors = intPtr(g.intBetween(1, 10))
	case domain.PropertyWarehouse:
		totalFloors = intPtr(g.intBetween(1, 3))
	case domain.PropertyParkingSpace:
		// No floors for a parking space.
	}

	var floor *int
	if totalFloors != nil {
		floor = intPtr(g.intBetween(1, *totalFloors))
	}

	var roomsCount *int
	switch propertyType {
	case domain.PropertyApartment:
		roomsCount = intPtr(g.intBetween(1, 5))
	case domain.PropertyHouse:
		roomsCount = intPtr(g.intBetween(3, 10))
	case domain.PropertyTownhouse:
		roomsCount = intPtr(g.intBetween(3, 8))
	}

	var totalArea float64
	switch propertyType {
	case domain.PropertyApartment:
		totalArea = g.floatBetween(25, 150)
	case domain.PropertyHouse:
		totalArea = g.floatBetween(80, 500)
	case domain.PropertyTownhouse:
		totalArea = g.floatBetween(100, 300)
	case domain.PropertyCommercial:
		totalArea = g.floatBetween(50, 1000)
	case domain.PropertyWarehouse:
		totalArea = g.floatBetween(200, 5000)
	case domain.PropertyParkingSpace:
		totalArea = g.floatBetween(12, 30)
	}

	var ceilingHeight *float64
	if g.rng.Float64() < 0.7 {
		h := round2(g.floatBetween(2.5, 4.0))
		ceilingHeight = &h
	}

	hasEncumbrances := g.rng.Float64() < 0.1

	return domain.CreateProperty{
		Type:            propertyType,
		Purpose:         purpose,
		CadastralNumber: cadastralNumber,
		Address:         address,
		TotalFloors:     totalFloors,
		TotalArea:       round2(totalArea),
		RoomsCount:      roomsCount,
		CeilingHeight:   ceilingHeight,
		Floor:           floor,
		HasEncumbrances: &hasEncumbrances,
	}
}

// Request fabricates a request payload for existing entity ids. The amount
// falls in [1,000,000; 50,000,000] and the date in the trailing two years.
func (g *Contract) Request(counterpartyID, propertyID string) domain.CreateRequest {
	requestType := domain.RequestPurchase
	if g.rng.IntN(2) == 1 {
		requestType = domain.RequestSale
	}

	amount := decimal.NewFromFloat(g.floatBetween(1_000_000, 50_000_000)).Round(2)

	now := g.now()
	windowStart := now.AddDate(-2, 0, 0)
	offset := time.Duration(g.rng.Int64N(int64(now.Sub(windowStart))))

	return domain.CreateRequest{
		CounterpartyID: counterpartyID,
		PropertyID:     propertyID,
		Type:           requestType,
		Amount:         amount,
		Date:           windowStart.Add(offset),
	}
}

func (g *Contract) intBetween(low, high int) int {
	return low + g.rng.IntN(high-low+1)
}

func (g *Contract) floatBetween(low, high float64) float64 {
	return low + g.rng.Float64()*(high-low)
}

func pick[T any](rng *rand.Rand, items []T) T {
	return items[rng.IntN(len(items))]
}

func intPtr(v int) *int {
	return &v
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
