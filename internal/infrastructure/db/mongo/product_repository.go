package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/marketsquare/marketplace-api/internal/core/domain"
	"github.com/marketsquare/marketplace-api/internal/core/ports"
)

const (
	productsCollection = "products"
	countersCollection = "counters"
	productIDCounter   = "product_id"
)

// ProductRepository persists products in MongoDB. Product ids come from a
// server-side $inc on a counters document, so assignment is atomic and ids
// are never reused after deletions.
type ProductRepository struct {
	coll     *mongo.Collection
	counters *mongo.Collection
}

func NewProductRepository(db *mongo.Database) *ProductRepository {
	return &ProductRepository{
		coll:     db.Collection(productsCollection),
		counters: db.Collection(countersCollection),
	}
}

func (r *ProductRepository) nextID(ctx context.Context) (int64, error) {
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var doc struct {
		Seq int64 `bson:"seq"`
	}
	err := r.counters.FindOneAndUpdate(
		ctx,
		bson.M{"_id": productIDCounter},
		bson.M{"$inc": bson.M{"seq": int64(1)}},
		opts,
	).Decode(&doc)
	if err != nil {
		return 0, fmt.Errorf("next product id: %w", err)
	}
	return doc.Seq, nil
}

func (r *ProductRepository) Insert(ctx context.Context, name string, price float64, seller string) (*domain.Product, error) {
	id, err := r.nextID(ctx)
	if err != nil {
		return nil, err
	}

	product := domain.Product{
		ID:     id,
		Name:   name,
		Price:  price,
		Seller: seller,
	}
	if _, err := r.coll.InsertOne(ctx, product); err != nil {
		return nil, fmt.Errorf("insert product: %w", err)
	}
	return &product, nil
}

func (r *ProductRepository) Update(ctx context.Context, id int64, patch ports.ProductPatch) (*domain.Product, error) {
	set := bson.M{}
	if patch.Name != nil {
		set["name"] = *patch.Name
	}
	if patch.Price != nil {
		set["price"] = *patch.Price
	}

	filter := bson.M{"_id": id}

	var product domain.Product
	if len(set) == 0 {
		// Nothing to change: return the current document.
		if err := r.coll.FindOne(ctx, filter).Decode(&product); err != nil {
			if err == mongo.ErrNoDocuments {
				return nil, domain.ErrProductNotFound
			}
			return nil, fmt.Errorf("find product: %w", err)
		}
		return &product, nil
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	err := r.coll.FindOneAndUpdate(ctx, filter, bson.M{"$set": set}, opts).Decode(&product)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrProductNotFound
		}
		return nil, fmt.Errorf("update product: %w", err)
	}
	return &product, nil
}

func (r *ProductRepository) Delete(ctx context.Context, id int64) error {
	if _, err := r.coll.DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	return nil
}

func (r *ProductRepository) List(ctx context.Context) ([]domain.Product, error) {
	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
	cursor, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer cursor.Close(ctx)

	products := make([]domain.Product, 0)
	if err := cursor.All(ctx, &products); err != nil {
		return nil, fmt.Errorf("decode products: %w", err)
	}
	return products, nil
}
