package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/nhanstudio/portfolio-api/internal/core/domain"
)

const collectionProjects = "projects"

// ProjectRepository implements ports.ProjectRepository using MongoDB.
type ProjectRepository struct {
	conn *Connector
}

func NewProjectRepository(conn *Connector) *ProjectRepository {
	return &ProjectRepository{conn: conn}
}

type mongoTimelineItem struct {
	Type    string `bson:"type"`
	Content string `bson:"content"`
	ID      string `bson:"id"`
}

type mongoProject struct {
	ID              primitive.ObjectID  `bson:"_id,omitempty"`
	Title           string              `bson:"title"`
	Description     string              `bson:"description"`
	Image           string              `bson:"image"`
	Date            string              `bson:"date"`
	Technologies    []string            `bson:"technologies"`
	Link            string              `bson:"link"`
	Images          []string            `bson:"images"`
	Descriptions    []string            `bson:"descriptions"`
	ContentTimeline []mongoTimelineItem `bson:"contentTimeline"`
	CreatedBy       primitive.ObjectID  `bson:"createdBy"`
	CreatedAt       time.Time           `bson:"createdAt"`
	UpdatedAt       time.Time           `bson:"updatedAt"`
}

func (mp *mongoProject) toDomain() *domain.Project {
	return &domain.Project{
		ID:              mp.ID.Hex(),
		Title:           mp.Title,
		Description:     mp.Description,
		Image:           mp.Image,
		Date:            mp.Date,
		Technologies:    orEmpty(mp.Technologies),
		Link:            mp.Link,
		Images:          orEmpty(mp.Images),
		Descriptions:    orEmpty(mp.Descriptions),
		ContentTimeline: fromMongoTimeline(mp.ContentTimeline),
		CreatedBy:       mp.CreatedBy.Hex(),
		CreatedAt:       mp.CreatedAt.UTC(),
		UpdatedAt:       mp.UpdatedAt.UTC(),
	}
}

func (r *ProjectRepository) col(ctx context.Context) (*mongo.Collection, error) {
	return r.conn.Collection(ctx, collectionProjects)
}

// Create inserts a new project document.
func (r *ProjectRepository) Create(ctx context.Context, p *domain.Project) (*domain.Project, error) {
	owner, err := primitive.ObjectIDFromHex(p.CreatedBy)
	if err != nil {
		return nil, fmt.Errorf("insert project: invalid owner id %q", p.CreatedBy)
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	col, err := r.col(ctx)
	if err != nil {
		return nil, err
	}

	doc := mongoProject{
		ID:              primitive.NewObjectID(),
		Title:           p.Title,
		Description:     p.Description,
		Image:           p.Image,
		Date:            p.Date,
		Technologies:    orEmpty(p.Technologies),
		Link:            p.Link,
		Images:          orEmpty(p.Images),
		Descriptions:    orEmpty(p.Descriptions),
		ContentTimeline: toMongoTimeline(p.ContentTimeline),
		CreatedBy:       owner,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
	if _, err := col.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("insert project: %w", err)
	}
	return doc.toDomain(), nil
}

// FindByID treats a malformed id like an unknown one.
func (r *ProjectRepository) FindByID(ctx context.Context, id string) (*domain.Project, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrProjectNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	col, err := r.col(ctx)
	if err != nil {
		return nil, err
	}

	var mp mongoProject
	if err := col.FindOne(ctx, bson.M{"_id": oid}).Decode(&mp); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrProjectNotFound
		}
		return nil, fmt.Errorf("find project: %w", err)
	}
	return mp.toDomain(), nil
}

// List returns every project, newest first.
func (r *ProjectRepository) List(ctx context.Context) ([]*domain.Project, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	col, err := r.col(ctx)
	if err != nil {
		return nil, err
	}

	cur, err := col.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	var docs []mongoProject
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode projects: %w", err)
	}

	projects := make([]*domain.Project, len(docs))
	for i := range docs {
		projects[i] = docs[i].toDomain()
	}
	return projects, nil
}

// Update sets only the fields present in patch and bumps updatedAt in one
// atomic findOneAndUpdate. createdBy is never part of the $set.
func (r *ProjectRepository) Update(ctx context.Context, id string, patch domain.ProjectPatch) (*domain.Project, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrProjectNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	col, err := r.col(ctx)
	if err != nil {
		return nil, err
	}

	var mp mongoProject
	err = col.FindOneAndUpdate(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": patchToSet(patch, time.Now().UTC())},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&mp)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrProjectNotFound
		}
		return nil, fmt.Errorf("update project: %w", err)
	}
	return mp.toDomain(), nil
}

func (r *ProjectRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrProjectNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	col, err := r.col(ctx)
	if err != nil {
		return err
	}

	res, err := col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete project: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrProjectNotFound
	}
	return nil
}

// EnsureIndexes creates necessary indexes on the projects collection.
func (r *ProjectRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	col, err := r.col(ctx)
	if err != nil {
		return err
	}

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "createdBy", Value: 1}}},
		{Keys: bson.D{{Key: "createdAt", Value: -1}}},
	}
	_, err = col.Indexes().CreateMany(ctx, indexes)
	return err
}

func patchToSet(p domain.ProjectPatch, now time.Time) bson.M {
	set := bson.M{"updatedAt": now}
	if p.Title != nil {
		set["title"] = *p.Title
	}
	if p.Description != nil {
		set["description"] = *p.Description
	}
	if p.Image != nil {
		set["image"] = *p.Image
	}
	if p.Date != nil {
		set["date"] = *p.Date
	}
	if p.Technologies != nil {
		set["technologies"] = orEmpty(*p.Technologies)
	}
	if p.Link != nil {
		set["link"] = *p.Link
	}
	if p.Images != nil {
		set["images"] = orEmpty(*p.Images)
	}
	if p.Descriptions != nil {
		set["descriptions"] = orEmpty(*p.Descriptions)
	}
	if p.ContentTimeline != nil {
		set["contentTimeline"] = toMongoTimeline(*p.ContentTimeline)
	}
	return set
}

func toMongoTimeline(items []domain.TimelineItem) []mongoTimelineItem {
	out := make([]mongoTimelineItem, len(items))
	for i, it := range items {
		out[i] = mongoTimelineItem{Type: string(it.Kind), Content: it.Content, ID: it.ID}
	}
	return out
}

func fromMongoTimeline(items []mongoTimelineItem) []domain.TimelineItem {
	out := make([]domain.TimelineItem, len(items))
	for i, it := range items {
		out[i] = domain.TimelineItem{Kind: domain.TimelineKind(it.Type), Content: it.Content, ID: it.ID}
	}
	return out
}

func orEmpty(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
