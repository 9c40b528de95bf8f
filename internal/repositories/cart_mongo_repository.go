package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"rapidreads/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type mongoCartItem struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	UserID    interface{}        `bson:"userId"` // ObjectID for store users, string otherwise
	ProductID int                `bson:"productId"`
	Quantity  int                `bson:"quantity"`
	AddedAt   time.Time          `bson:"addedAt"`
}

// MongoCartRepository implements CartRepository on MongoDB.
//
// Transactions need a replica set, so AddItem relies on a single-document
// conditional update for the inventory and compensates the same document if
// the cart insert fails afterwards.
type MongoCartRepository struct {
	products *mongo.Collection
	cart     *mongo.Collection
}

// NewMongoCartRepository creates a new MongoDB backed cart repository.
func NewMongoCartRepository(db *mongo.Database) *MongoCartRepository {
	return &MongoCartRepository{
		products: db.Collection(ProductsCollection),
		cart:     db.Collection(CartCollection),
	}
}

func (r *MongoCartRepository) AddItem(ctx context.Context, item *models.CartItem) error {
	if item.AddedAt.IsZero() {
		item.AddedAt = time.Now().UTC()
	}

	var decremented struct {
		ID primitive.ObjectID `bson:"_id"`
	}
	err := r.products.FindOneAndUpdate(ctx,
		bson.M{"id": item.ProductID, "AvailableInventory": bson.M{"$gte": item.Quantity}},
		bson.M{"$inc": bson.M{"AvailableInventory": -item.Quantity}},
		options.FindOneAndUpdate().SetProjection(bson.M{"_id": 1}),
	).Decode(&decremented)
	if errors.Is(err, mongo.ErrNoDocuments) {
		n, err := r.products.CountDocuments(ctx, bson.M{"id": item.ProductID})
		if err != nil {
			return fmt.Errorf("check product %d: %w", item.ProductID, err)
		}
		if n == 0 {
			return fmt.Errorf("product with legacy id %d: %w", item.ProductID, ErrNotFound)
		}
		return ErrInsufficientInventory
	}
	if err != nil {
		return fmt.Errorf("decrement inventory for product %d: %w", item.ProductID, err)
	}

	doc := mongoCartItem{
		UserID:    item.UserID,
		ProductID: item.ProductID,
		Quantity:  item.Quantity,
		AddedAt:   item.AddedAt,
	}
	if oid, err := primitive.ObjectIDFromHex(item.UserID); err == nil {
		doc.UserID = oid
	}

	ins, err := r.cart.InsertOne(ctx, doc)
	if err != nil {
		if _, restoreErr := r.products.UpdateByID(ctx,
			decremented.ID,
			bson.M{"$inc": bson.M{"AvailableInventory": item.Quantity}},
		); restoreErr != nil {
			return fmt.Errorf("insert cart item: %w (inventory restore failed: %v)", err, restoreErr)
		}
		return fmt.Errorf("insert cart item: %w", err)
	}
	if oid, ok := ins.InsertedID.(primitive.ObjectID); ok {
		item.ID = oid.Hex()
	}
	return nil
}

// NewMongoStore wires the MongoDB repositories into a Store.
func NewMongoStore(db *mongo.Database, closeFn func(ctx context.Context) error) *Store {
	return NewStore(NewMongoUserRepository(db), NewMongoProductRepository(db), NewMongoCartRepository(db), closeFn)
}
