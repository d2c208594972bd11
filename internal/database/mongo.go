package database

import (
	"context"
	"errors"
	"fmt"
	"log"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"property-marketplace/internal/models"
	"property-marketplace/internal/normalize"
)

// MongoStore keeps listings submitted through the API as camelCase
// documents, one per listing, keyed by _id.
type MongoStore struct {
	client     *mongo.Client
	collection *mongo.Collection
}

func NewMongoStore(uri, dbName string) (*MongoStore, error) {
	client, err := mongo.Connect(context.TODO(), options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("error connecting to database: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("MongoDB ping failed: %w", err)
	}

	log.Println("Connected to MongoDB")
	return &MongoStore{
		client:     client,
		collection: client.Database(dbName).Collection("properties"),
	}, nil
}

func (m *MongoStore) Close() error {
	return m.client.Disconnect(context.TODO())
}

// SaveRaw upserts a raw record under its id
func (m *MongoStore) SaveRaw(ctx context.Context, id string, raw normalize.RawRecord) error {
	doc := bson.M{}
	for k, v := range raw {
		doc[k] = v
	}
	doc["_id"] = id
	_, err := m.collection.ReplaceOne(ctx, bson.M{"_id": id}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("failed to save listing %s: %w", id, err)
	}
	return nil
}

// ListRaw returns matching documents, newest first, as raw records
func (m *MongoStore) ListRaw(ctx context.Context, q Query) ([]normalize.RawRecord, error) {
	var and []bson.M
	if len(q.Statuses) > 0 {
		and = append(and, bson.M{"status": bson.M{"$regex": primitive.Regex{Pattern: statusPattern(q.Statuses), Options: "i"}}})
	}
	if q.City != "" {
		city := primitive.Regex{Pattern: regexp.QuoteMeta(q.City), Options: "i"}
		and = append(and, bson.M{"$or": bson.A{
			bson.M{"city": bson.M{"$regex": city}},
			bson.M{"location.city": bson.M{"$regex": city}},
		}})
	}
	filter := bson.M{}
	if len(and) > 0 {
		filter["$and"] = and
	}

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "created_at", Value: -1}})
	if q.Limit > 0 {
		opts.SetLimit(int64(q.Limit))
	}

	cursor, err := m.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query listings: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []bson.M
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode listings: %w", err)
	}
	records := make([]normalize.RawRecord, len(docs))
	for i, d := range docs {
		records[i] = fromBSON(d).(map[string]any)
	}
	return records, nil
}

// GetRaw retrieves one listing by id
func (m *MongoStore) GetRaw(ctx context.Context, id string) (normalize.RawRecord, error) {
	var doc bson.M
	err := m.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query listing %s: %w", id, err)
	}
	return fromBSON(doc).(map[string]any), nil
}

// UpdateStatus changes the moderation status of a listing
func (m *MongoStore) UpdateStatus(ctx context.Context, id string, status models.ListingStatus) error {
	res, err := m.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{
		"status":    string(status),
		"updatedAt": time.Now(),
	}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a listing
func (m *MongoStore) Delete(ctx context.Context, id string) error {
	res, err := m.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func statusPattern(statuses []models.ListingStatus) string {
	p := "^("
	for i, s := range lowerStatuses(statuses) {
		if i > 0 {
			p += "|"
		}
		p += regexp.QuoteMeta(s)
	}
	return p + ")$"
}

// fromBSON converts driver types into the plain values the normalizer reads
func fromBSON(v any) any {
	switch x := v.(type) {
	case bson.M:
		out := make(map[string]any, len(x))
		for k, val := range x {
			out[k] = fromBSON(val)
		}
		return out
	case bson.D:
		out := make(map[string]any, len(x))
		for _, e := range x {
			out[e.Key] = fromBSON(e.Value)
		}
		return out
	case bson.A:
		out := make([]any, len(x))
		for i, val := range x {
			out[i] = fromBSON(val)
		}
		return out
	case primitive.DateTime:
		return x.Time().UTC()
	case primitive.ObjectID:
		return x.Hex()
	case primitive.Decimal128:
		return x.String()
	case int32:
		return float64(x)
	case int64:
		return float64(x)
	}
	return v
}
