package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/opensource-realty/casa/internal/domain"
	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Collection names, one per entity kind.
const (
	collCounterparties = "counterparties"
	collProperties     = "properties"
	collRequests       = "requests"
)

// Mongo implements domain.Repository on a MongoDB database. Enumerations are
// stored as strings and amounts as decimal strings, so documents stay
// readable and stable across schema evolution.
type Mongo struct {
	client         *mongo.Client
	counterparties *mongoCollection[*domain.Counterparty, counterpartyDoc]
	properties     *mongoCollection[*domain.Property, propertyDoc]
	requests       *mongoCollection[*domain.Request, requestDoc]
}

// NewMongo connects to MongoDB and verifies the connection with a ping.
func NewMongo(ctx context.Context, cfg domain.RepositoryConfig) (*Mongo, error) {
	timeout := time.Duration(cfg.ConnectTimeout) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	connectCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongo: %w", err)
	}

	if err := client.Ping(connectCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping mongo: %w", err)
	}

	db := client.Database(cfg.MongoDatabase)

	return &Mongo{
		client: client,
		counterparties: &mongoCollection[*domain.Counterparty, counterpartyDoc]{
			coll:   db.Collection(collCounterparties),
			entity: domain.EntityCounterparty,
			clone:  (*domain.Counterparty).Clone,
			getID:  func(c *domain.Counterparty) string { return c.ID },
			setID:  func(c *domain.Counterparty, id string) { c.ID = id },
			encode: encodeCounterparty,
			decode: decodeCounterparty,
		},
		properties: &mongoCollection[*domain.Property, propertyDoc]{
			coll:   db.Collection(collProperties),
			entity: domain.EntityProperty,
			clone:  (*domain.Property).Clone,
			getID:  func(p *domain.Property) string { return p.ID },
			setID:  func(p *domain.Property, id string) { p.ID = id },
			encode: encodeProperty,
			decode: decodeProperty,
		},
		requests: &mongoCollection[*domain.Request, requestDoc]{
			coll:   db.Collection(collRequests),
			entity: domain.EntityRequest,
			clone:  (*domain.Request).Clone,
			getID:  func(r *domain.Request) string { return r.ID },
			setID:  func(r *domain.Request, id string) { r.ID = id },
			encode: encodeRequest,
			decode: decodeRequest,
		},
	}, nil
}

func (m *Mongo) Counterparties() domain.CRUDRepository[*domain.Counterparty] {
	return m.counterparties
}

func (m *Mongo) Properties() domain.CRUDRepository[*domain.Property] {
	return m.properties
}

func (m *Mongo) Requests() domain.CRUDRepository[*domain.Request] {
	return m.requests
}

// Ping checks database connectivity.
func (m *Mongo) Ping(ctx context.Context) error {
	return m.client.Ping(ctx, readpref.Primary())
}

// Close disconnects the client.
func (m *Mongo) Close(ctx context.Context) error {
	return m.client.Disconnect(ctx)
}

// mongoCollection adapts one Mongo collection to the generic CRUD contract.
// T is the domain entity, D its BSON document shape.
type mongoCollection[T any, D any] struct {
	coll   *mongo.Collection
	entity string
	clone  func(T) T
	getID  func(T) string
	setID  func(T, string)
	encode func(T) D
	decode func(D) (T, error)
}

func (c *mongoCollection[T, D]) List(ctx context.Context) ([]T, error) {
	cursor, err := c.coll.Find(ctx, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", c.entity, err)
	}
	defer cursor.Close(ctx)

	var out []T
	for cursor.Next(ctx) {
		var doc D
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode %s document: %w", c.entity, err)
		}
		entity, err := c.decode(doc)
		if err != nil {
			return nil, err
		}
		out = append(out, entity)
	}
	return out, cursor.Err()
}

func (c *mongoCollection[T, D]) Get(ctx context.Context, id string) (T, error) {
	var zero T

	var doc D
	err := c.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return zero, domain.NewNotFound(c.entity, id)
	}
	if err != nil {
		return zero, fmt.Errorf("failed to get %s: %w", c.entity, err)
	}
	return c.decode(doc)
}

func (c *mongoCollection[T, D]) Create(ctx context.Context, entity T) (T, error) {
	var zero T

	stored := c.clone(entity)
	if c.getID(stored) == "" {
		c.setID(stored, uuid.New().String())
	}

	if _, err := c.coll.InsertOne(ctx, c.encode(stored)); err != nil {
		return zero, fmt.Errorf("failed to insert %s: %w", c.entity, err)
	}
	return stored, nil
}

func (c *mongoCollection[T, D]) Update(ctx context.Context, id string, entity T) (T, error) {
	var zero T

	stored := c.clone(entity)
	c.setID(stored, id)

	res, err := c.coll.ReplaceOne(ctx, bson.M{"_id": id}, c.encode(stored))
	if err != nil {
		return zero, fmt.Errorf("failed to update %s: %w", c.entity, err)
	}
	if res.MatchedCount == 0 {
		return zero, domain.NewNotFound(c.entity, id)
	}
	return stored, nil
}

func (c *mongoCollection[T, D]) Delete(ctx context.Context, id string) (bool, error) {
	res, err := c.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return false, fmt.Errorf("failed to delete %s: %w", c.entity, err)
	}
	return res.DeletedCount > 0, nil
}

type counterpartyDoc struct {
	ID             string `bson:"_id"`
	FullName       string `bson:"full_name"`
	PassportNumber string `bson:"passport_number"`
	PhoneNumber    string `bson:"phone_number"`
}

type propertyDoc struct {
	ID              string   `bson:"_id"`
	Type            string   `bson:"type"`
	Purpose         string   `bson:"purpose"`
	CadastralNumber string   `bson:"cadastral_number"`
	Address         string   `bson:"address"`
	TotalFloors     *int     `bson:"total_floors,omitempty"`
	TotalArea       float64  `bson:"total_area"`
	RoomsCount      *int     `bson:"rooms_count,omitempty"`
	CeilingHeight   *float64 `bson:"ceiling_height,omitempty"`
	Floor           *int     `bson:"floor,omitempty"`
	HasEncumbrances *bool    `bson:"has_encumbrances,omitempty"`
}

type requestDoc struct {
	ID             string           `bson:"_id"`
	CounterpartyID string           `bson:"counterparty_id"`
	PropertyID     string           `bson:"property_id"`
	Counterparty   *counterpartyDoc `bson:"counterparty,omitempty"`
	Property       *propertyDoc     `bson:"property,omitempty"`
	Type           string           `bson:"type"`
	Amount         string           `bson:"amount"`
	Date           time.Time        `bson:"date"`
}

func encodeCounterparty(c *domain.Counterparty) counterpartyDoc {
	return counterpartyDoc{
		ID:             c.ID,
		FullName:       c.FullName,
		PassportNumber: c.PassportNumber,
		PhoneNumber:    c.PhoneNumber,
	}
}

func decodeCounterparty(doc counterpartyDoc) (*domain.Counterparty, error) {
	return &domain.Counterparty{
		ID:             doc.ID,
		FullName:       doc.FullName,
		PassportNumber: doc.PassportNumber,
		PhoneNumber:    doc.PhoneNumber,
	}, nil
}

func encodeProperty(p *domain.Property) propertyDoc {
	return propertyDoc{
		ID:              p.ID,
		Type:            string(p.Type),
		Purpose:         string(p.Purpose),
		CadastralNumber: p.CadastralNumber,
		Address:         p.Address,
		TotalFloors:     p.TotalFloors,
		TotalArea:       p.TotalArea,
		RoomsCount:      p.RoomsCount,
		CeilingHeight:   p.CeilingHeight,
		Floor:           p.Floor,
		HasEncumbrances: p.HasEncumbrances,
	}
}

func decodeProperty(doc propertyDoc) (*domain.Property, error) {
	return &domain.Property{
		ID:              doc.ID,
		Type:            domain.PropertyType(doc.Type),
		Purpose:         domain.PropertyPurpose(doc.Purpose),
		CadastralNumber: doc.CadastralNumber,
		Address:         doc.Address,
		TotalFloors:     doc.TotalFloors,
		TotalArea:       doc.TotalArea,
		RoomsCount:      doc.RoomsCount,
		CeilingHeight:   doc.CeilingHeight,
		Floor:           doc.Floor,
		HasEncumbrances: doc.HasEncumbrances,
	}, nil
}

func encodeRequest(r *domain.Request) requestDoc {
	doc := requestDoc{
		ID:             r.ID,
		CounterpartyID: r.CounterpartyID,
		PropertyID:     r.PropertyID,
		Type:           string(r.Type),
		Amount:         r.Amount.String(),
		Date:           r.Date.UTC(),
	}
	if r.Counterparty != nil {
		snapshot := encodeCounterparty(r.Counterparty)
		doc.Counterparty = &snapshot
	}
	if r.Property != nil {
		snapshot := encodeProperty(r.Property)
		doc.Property = &snapshot
	}
	return doc
}

func decodeRequest(doc requestDoc) (*domain.Request, error) {
	amount, err := decimal.NewFromString(doc.Amount)
	if err != nil {
		return nil, fmt.Errorf("failed to parse request amount %q: %w", doc.Amount, err)
	}

	r := &domain.Request{
		ID:             doc.ID,
		CounterpartyID: doc.CounterpartyID,
		PropertyID:     doc.PropertyID,
		Type:           domain.RequestType(doc.Type),
		Amount:         amount,
		Date:           doc.Date,
	}
	if doc.Counterparty != nil {
		snapshot, _ := decodeCounterparty(*doc.Counterparty)
		r.Counterparty = snapshot
	}
	if doc.Property != nil {
		snapshot, _ := decodeProperty(*doc.Property)
		r.Property = snapshot
	}
	return r, nil
}
