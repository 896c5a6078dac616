package repository

import (
	"context"
	"time"

	"catalog-importer/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type CategoryRepository struct {
	collection        *mongo.Collection
	productCollection *mongo.Collection
}

func NewCategoryRepository(db *mongo.Database) *CategoryRepository {
	return &CategoryRepository{
		collection:        db.Collection("categories"),
		productCollection: db.Collection("products"),
	}
}

func (r *CategoryRepository) FindAll(ctx context.Context) ([]models.Category, error) {
	filter := bson.M{"deleted_at": bson.M{"$exists": false}}
	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var categories []models.Category
	if err = cursor.All(ctx, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *CategoryRepository) FindBySlug(ctx context.Context, slug string) (*models.Category, error) {
	filter := bson.M{"slug": slug, "deleted_at": bson.M{"$exists": false}}
	var category models.Category
	err := r.collection.FindOne(ctx, filter).Decode(&category)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *CategoryRepository) Create(ctx context.Context, category *models.Category) error {
	_, err := r.collection.InsertOne(ctx, category)
	return err
}

func (r *CategoryRepository) Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error {
	set := bson.M{}
	for k, v := range updates {
		set[k] = v
	}
	delete(set, "_id")
	set["updated_at"] = time.Now().UTC()
	filter := bson.M{"_id": id, "deleted_at": bson.M{"$exists": false}}
	result, err := r.collection.UpdateOne(ctx, filter, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete performs a soft delete.
func (r *CategoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	filter := bson.M{"_id": id, "deleted_at": bson.M{"$exists": false}}
	update := bson.M{"$set": bson.M{"deleted_at": time.Now().UTC()}}
	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if result.ModifiedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// HasProducts reports whether any product still references the category.
func (r *CategoryRepository) HasProducts(ctx context.Context, categoryID uuid.UUID) (bool, error) {
	filter := bson.M{"category_ids": categoryID}
	count, err := r.productCollection.CountDocuments(ctx, filter)
	return count > 0, err
}

func (r *CategoryRepository) AssociateProduct(ctx context.Context, categoryID, productID uuid.UUID) error {
	filter := bson.M{"_id": categoryID, "deleted_at": bson.M{"$exists": false}}
	update := bson.M{
		"$addToSet": bson.M{"product_ids": productID},
		"$set":      bson.M{"updated_at": time.Now().UTC()},
	}
	_, err := r.collection.UpdateOne(ctx, filter, update)
	return err
}
