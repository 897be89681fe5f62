package repositories

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"lumina/app/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	defaultMongoDatabase = "lumina_blog"
	postsCollection      = "posts"
)

// MongoRepository stores posts as MongoDB documents with embedded comments.
// Posts are addressed by their own id field, not by _id.
type MongoRepository struct {
	client *mongo.Client
	posts  *mongo.Collection
}

// OpenMongo connects to uri and verifies the server answers within timeout.
func OpenMongo(ctx context.Context, uri string, timeout time.Duration) (*MongoRepository, error) {
	opts := options.Client().
		ApplyURI(uri).
		SetServerSelectionTimeout(timeout).
		SetConnectTimeout(timeout)
	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongo: %w", err)
	}

	r := &MongoRepository{
		client: client,
		posts:  client.Database(mongoDatabase(uri)).Collection(postsCollection),
	}

	indexCtx, cancelIndex := context.WithTimeout(ctx, timeout)
	defer cancelIndex()
	if _, err := r.posts.Indexes().CreateOne(indexCtx, mongo.IndexModel{
		Keys:    bson.D{{Key: "id", Value: 1}},
		Options: options.Index().SetUnique(true),
	}); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("create post index: %w", err)
	}
	return r, nil
}

// mongoDatabase extracts the database name from a connection string.
func mongoDatabase(uri string) string {
	u, err := url.Parse(uri)
	if err != nil {
		return defaultMongoDatabase
	}
	if name := strings.Trim(u.Path, "/"); name != "" {
		return name
	}
	return defaultMongoDatabase
}

func byID(id string) bson.M {
	return bson.M{"id": id}
}

func (r *MongoRepository) Name() string { return "mongo" }

func (r *MongoRepository) Ping(ctx context.Context) error {
	return r.client.Ping(ctx, readpref.Primary())
}

func (r *MongoRepository) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return r.client.Disconnect(ctx)
}

func (r *MongoRepository) List(ctx context.Context) ([]*models.Post, error) {
	cursor, err := r.posts.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("find posts: %w", err)
	}
	posts := []*models.Post{}
	if err := cursor.All(ctx, &posts); err != nil {
		return nil, fmt.Errorf("decode posts: %w", err)
	}
	for _, post := range posts {
		post.Normalize()
	}
	return posts, nil
}

func (r *MongoRepository) GetByID(ctx context.Context, id string) (*models.Post, error) {
	var post models.Post
	err := r.posts.FindOne(ctx, byID(id)).Decode(&post)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find post: %w", err)
	}
	post.Normalize()
	return &post, nil
}

func (r *MongoRepository) Create(ctx context.Context, post *models.Post) error {
	stored := post.Clone()
	stored.Normalize()
	if _, err := r.posts.InsertOne(ctx, stored); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("insert post: %w", err)
	}
	return nil
}

func (r *MongoRepository) Update(ctx context.Context, id string, patch models.PostPatch) (*models.Post, error) {
	fields := patch.Fields()
	if len(fields) == 0 {
		return r.GetByID(ctx, id)
	}
	set := bson.M{}
	for name, value := range fields {
		set[name] = value
	}

	var post models.Post
	err := r.posts.FindOneAndUpdate(ctx, byID(id), bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&post)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("update post: %w", err)
	}
	post.Normalize()
	return &post, nil
}

func (r *MongoRepository) Delete(ctx context.Context, id string) error {
	res, err := r.posts.DeleteOne(ctx, byID(id))
	if err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoRepository) Count(ctx context.Context) (int64, error) {
	return r.posts.CountDocuments(ctx, bson.M{})
}

func (r *MongoRepository) AppendComment(ctx context.Context, postID string, comment models.Comment) error {
	res, err := r.posts.UpdateOne(ctx, byID(postID), bson.M{"$push": bson.M{"comments": comment}})
	if err != nil {
		return fmt.Errorf("append comment: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
