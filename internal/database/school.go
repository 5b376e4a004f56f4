package repository

import (
	"SchoolQL/entity"
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	schoolsCollection = "schools"
	schoolsDocumentID = "schools"
)

// schoolsDocument holds the whole collection. A single document write is
// atomic in MongoDB, which gives whole-collection replace semantics.
type schoolsDocument struct {
	ID        string          `bson:"_id"`
	Schools   []entity.School `bson:"schools"`
	UpdatedAt time.Time       `bson:"updated_at"`
}

// Init inserts an empty collection document unless one already exists.
func (m *MongoDB) Init(ctx context.Context) error {
	connection, err := m.connect(ctx)
	if err != nil {
		return err
	}
	defer m.disconnect(ctx, connection)

	collection := connection.Database(m.database).Collection(m.collection)

	filter := bson.D{{Key: "_id", Value: schoolsDocumentID}}
	update := bson.D{{Key: "$setOnInsert", Value: bson.D{
		{Key: "schools", Value: bson.A{}},
		{Key: "updated_at", Value: time.Now()},
	}}}
	opts := options.Update().SetUpsert(true)

	_, err = collection.UpdateOne(ctx, filter, update, opts)
	if err != nil {
		return fmt.Errorf("mongodb init error: %w", err)
	}
	return nil
}

// Load reads the collection document; a missing document is an empty collection.
func (m *MongoDB) Load(ctx context.Context) ([]entity.School, error) {
	connection, err := m.connect(ctx)
	if err != nil {
		return nil, err
	}
	defer m.disconnect(ctx, connection)

	collection := connection.Database(m.database).Collection(m.collection)

	filter := bson.D{{Key: "_id", Value: schoolsDocumentID}}

	var doc schoolsDocument
	err = collection.FindOne(ctx, filter).Decode(&doc)
	if err != nil {
		if err = m.findError(err); err != nil {
			return nil, err
		}
		return []entity.School{}, nil
	}
	if doc.Schools == nil {
		return []entity.School{}, nil
	}

	return doc.Schools, nil
}

// Persist replaces the collection document.
func (m *MongoDB) Persist(ctx context.Context, schools []entity.School) error {
	connection, err := m.connect(ctx)
	if err != nil {
		return err
	}
	defer m.disconnect(ctx, connection)

	collection := connection.Database(m.database).Collection(m.collection)

	if schools == nil {
		schools = []entity.School{}
	}
	doc := schoolsDocument{
		ID:        schoolsDocumentID,
		Schools:   schools,
		UpdatedAt: time.Now(),
	}
	filter := bson.D{{Key: "_id", Value: schoolsDocumentID}}
	opts := options.Replace().SetUpsert(true)

	_, err = collection.ReplaceOne(ctx, filter, doc, opts)
	if err != nil {
		return fmt.Errorf("mongodb replace error: %w", err)
	}
	return nil
}
