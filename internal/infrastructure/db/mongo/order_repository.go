package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/gemlab/assessment-portal/internal/core/domain"
	"github.com/gemlab/assessment-portal/internal/core/ports"
)

const collectionOrders = "orders"

// OrderRepository implements ports.OrderRepository using MongoDB.
type OrderRepository struct {
	col *mongo.Collection
}

func NewOrderRepository(db *mongo.Database) *OrderRepository {
	return &OrderRepository{col: db.Collection(collectionOrders)}
}

// Create inserts a new order document, assigning its ID up front so
// callers can reference the order immediately.
func (r *OrderRepository) Create(ctx context.Context, order *domain.Order) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if order.ID == "" {
		order.ID = primitive.NewObjectID().Hex()
	}
	_, err := r.col.InsertOne(ctx, order)
	return err
}

// FindByOrderNumber retrieves an order by number. When customerID is
// non-empty, an additional filter by customer_id is applied so customers
// cannot read each other's orders.
func (r *OrderRepository) FindByOrderNumber(ctx context.Context, orderNumber, customerID string) (*domain.Order, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"order_number": orderNumber}
	if customerID != "" {
		filter["customer_id"] = customerID
	}

	var o domain.Order
	if err := r.col.FindOne(ctx, filter).Decode(&o); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrOrderNotFound
		}
		return nil, err
	}
	return &o, nil
}

// FindByIdempotencyKey retrieves an existing order created with the given key.
func (r *OrderRepository) FindByIdempotencyKey(ctx context.Context, key string) (*domain.Order, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var o domain.Order
	if err := r.col.FindOne(ctx, bson.M{"idempotency_key": key}).Decode(&o); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrOrderNotFound
		}
		return nil, err
	}
	return &o, nil
}

// List pages through orders matching the filter, newest first.
func (r *OrderRepository) List(ctx context.Context, filter ports.ListOrdersFilter) ([]domain.Order, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := bson.M{}
	if filter.CustomerID != "" {
		query["customer_id"] = filter.CustomerID
	}
	if filter.Status != "" {
		query["status"] = filter.Status
	}

	total, err := r.col.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(int64((filter.Page - 1) * filter.Limit)).
		SetLimit(int64(filter.Limit))

	cur, err := r.col.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cur.Close(ctx)

	var orders []domain.Order
	if err := cur.All(ctx, &orders); err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

// UpdateStatus atomically sets the order status and appends a history entry.
func (r *OrderRepository) UpdateStatus(ctx context.Context, orderNumber string, status domain.OrderStatus, ts time.Time, notes string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	historyEntry := bson.M{
		"status":    string(status),
		"timestamp": ts.UTC(),
		"notes":     notes,
	}

	res, err := r.col.UpdateOne(ctx,
		bson.M{"order_number": orderNumber},
		bson.M{
			"$set":  bson.M{"status": string(status)},
			"$push": bson.M{"status_history": historyEntry},
		})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrOrderNotFound
	}
	return nil
}

// EnsureIndexes creates necessary indexes on the orders collection.
func (r *OrderRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "order_number", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "customer_id", Value: 1}}},
		{Keys: bson.D{{Key: "idempotency_key", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
