package repositories

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/xoventechdev/Task-Manager-Project/domain"
)

type mongoProject struct {
	ID          primitive.ObjectID   `bson:"_id,omitempty"`
	Title       string               `bson:"title"`
	Description string               `bson:"description,omitempty"`
	Note        string               `bson:"note,omitempty"`
	StartDate   time.Time            `bson:"startDate"`
	EndDate     *time.Time           `bson:"endDate,omitempty"`
	Attachments []string             `bson:"attachments,omitempty"`
	OwnerID     primitive.ObjectID   `bson:"ownerID"`
	Tasks       []primitive.ObjectID `bson:"tasks,omitempty"`
	CreatedAt   time.Time            `bson:"createdAt"`
	UpdatedAt   time.Time            `bson:"updatedAt"`
}

func (m *mongoProject) toEntity() *domain.Project {
	tasks := make([]string, 0, len(m.Tasks))
	for _, t := range m.Tasks {
		tasks = append(tasks, t.Hex())
	}
	return &domain.Project{
		ID:          m.ID.Hex(),
		Title:       m.Title,
		Description: m.Description,
		Note:        m.Note,
		StartDate:   m.StartDate,
		EndDate:     m.EndDate,
		Attachments: m.Attachments,
		OwnerID:     m.OwnerID.Hex(),
		TaskIDs:     tasks,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

// ProjectRepositoryImpl implements domain.ProjectRepository on MongoDB
type ProjectRepositoryImpl struct {
	col    *mongo.Collection
	logger *zap.Logger
}

// NewProjectRepository creates a new project repository
func NewProjectRepository(db *mongo.Database, logger *zap.Logger) domain.ProjectRepository {
	return &ProjectRepositoryImpl{
		col:    db.Collection("projects"),
		logger: logger.Named("ProjectRepository"),
	}
}

// Create implements domain.ProjectRepository
func (r *ProjectRepositoryImpl) Create(ctx context.Context, project *domain.Project) error {
	ownerID, err := primitive.ObjectIDFromHex(project.OwnerID)
	if err != nil {
		return domain.ErrNotFound
	}

	doc := &mongoProject{
		ID:          primitive.NewObjectID(),
		Title:       project.Title,
		Description: project.Description,
		Note:        project.Note,
		StartDate:   project.StartDate,
		EndDate:     project.EndDate,
		Attachments: project.Attachments,
		OwnerID:     ownerID,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
	for _, t := range project.TaskIDs {
		if oid, err := primitive.ObjectIDFromHex(t); err == nil {
			doc.Tasks = append(doc.Tasks, oid)
		}
	}

	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		r.logger.Error("failed to insert project", zap.String("title", project.Title), zap.Error(err))
		return err
	}
	project.ID = doc.ID.Hex()
	project.CreatedAt = doc.CreatedAt
	project.UpdatedAt = doc.UpdatedAt
	return nil
}

// FindByID implements domain.ProjectRepository
func (r *ProjectRepositoryImpl) FindByID(ctx context.Context, id string) (*domain.Project, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrNotFound
	}
	var doc mongoProject
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return doc.toEntity(), nil
}

// FindByOwner implements domain.ProjectRepository
func (r *ProjectRepositoryImpl) FindByOwner(ctx context.Context, ownerID string) ([]*domain.Project, error) {
	oid, err := primitive.ObjectIDFromHex(ownerID)
	if err != nil {
		return nil, domain.ErrNotFound
	}
	cursor, err := r.col.Find(ctx, bson.M{"ownerID": oid})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var projects []*domain.Project
	for cursor.Next(ctx) {
		var doc mongoProject
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		projects = append(projects, doc.toEntity())
	}
	return projects, cursor.Err()
}

// Delete implements domain.ProjectRepository
func (r *ProjectRepositoryImpl) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrNotFound
	}
	result, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}
