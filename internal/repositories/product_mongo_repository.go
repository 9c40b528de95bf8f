package repositories

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"rapidreads/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Collection names used by the MongoDB backend.
const (
	UsersCollection    = "Users"
	ProductsCollection = "Products"
	CartCollection     = "Cart"
)

// mongoProduct is the document shape of the Products collection.
type mongoProduct struct {
	ID                 primitive.ObjectID `bson:"_id,omitempty"`
	LegacyID           int                `bson:"id"`
	Title              string             `bson:"title"`
	Author             string             `bson:"author"`
	Genre              string             `bson:"genre"`
	Price              float64            `bson:"price"`
	Image              string             `bson:"image"`
	AvailableInventory int                `bson:"AvailableInventory"`
	Description        string             `bson:"description"`
}

func (d *mongoProduct) model() models.Product {
	return models.Product{
		ID:                 d.ID.Hex(),
		LegacyID:           d.LegacyID,
		Title:              d.Title,
		Author:             d.Author,
		Genre:              d.Genre,
		Price:              d.Price,
		Image:              d.Image,
		AvailableInventory: d.AvailableInventory,
		Description:        d.Description,
	}
}

// MongoProductRepository implements ProductRepository on MongoDB.
type MongoProductRepository struct {
	collection *mongo.Collection
}

// NewMongoProductRepository creates a new MongoDB backed product repository.
func NewMongoProductRepository(db *mongo.Database) *MongoProductRepository {
	return &MongoProductRepository{
		collection: db.Collection(ProductsCollection),
	}
}

func (r *MongoProductRepository) GetAll(ctx context.Context) ([]models.Product, error) {
	return r.find(ctx, bson.M{})
}

func (r *MongoProductRepository) GetByLegacyID(ctx context.Context, legacyID int) (*models.Product, error) {
	return r.findOne(ctx, bson.M{"id": legacyID})
}

func (r *MongoProductRepository) GetByID(ctx context.Context, id string) (*models.Product, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("product with ID %s: %w", id, ErrNotFound)
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

// IsValidID reports whether id is a hex ObjectID.
func (r *MongoProductRepository) IsValidID(id string) bool {
	return primitive.IsValidObjectID(id)
}

// Search escapes query so it is matched literally.
func (r *MongoProductRepository) Search(ctx context.Context, query string) ([]models.Product, error) {
	re := primitive.Regex{Pattern: regexp.QuoteMeta(query), Options: "i"}
	return r.find(ctx, bson.M{
		"$or": bson.A{
			bson.M{"title": re},
			bson.M{"author": re},
			bson.M{"genre": re},
			bson.M{"description": re},
		},
	})
}

func (r *MongoProductRepository) Count(ctx context.Context) (int64, error) {
	n, err := r.collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("count products: %w", err)
	}
	return n, nil
}

func (r *MongoProductRepository) Create(ctx context.Context, product *models.Product) error {
	doc := mongoProduct{
		LegacyID:           product.LegacyID,
		Title:              product.Title,
		Author:             product.Author,
		Genre:              product.Genre,
		Price:              product.Price,
		Image:              product.Image,
		AvailableInventory: product.AvailableInventory,
		Description:        product.Description,
	}
	if product.ID != "" {
		oid, err := primitive.ObjectIDFromHex(product.ID)
		if err != nil {
			return fmt.Errorf("invalid product ID %s: %w", product.ID, err)
		}
		doc.ID = oid
	}

	res, err := r.collection.InsertOne(ctx, doc)
	if err != nil {
		return fmt.Errorf("insert product: %w", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		product.ID = oid.Hex()
	}
	return nil
}

func (r *MongoProductRepository) findOne(ctx context.Context, filter bson.M) (*models.Product, error) {
	var doc mongoProduct
	if err := r.collection.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("product %v: %w", filter, ErrNotFound)
		}
		return nil, fmt.Errorf("find product: %w", err)
	}
	product := doc.model()
	return &product, nil
}

func (r *MongoProductRepository) find(ctx context.Context, filter bson.M) ([]models.Product, error) {
	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("find products: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []mongoProduct
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode products: %w", err)
	}

	products := make([]models.Product, 0, len(docs))
	for i := range docs {
		products = append(products, docs[i].model())
	}
	return products, nil
}
