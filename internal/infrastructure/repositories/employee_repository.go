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

type mongoEmployee struct {
	ID        primitive.ObjectID   `bson:"_id,omitempty"`
	Name      string               `bson:"name"`
	Email     string               `bson:"email"`
	Password  string               `bson:"password"`
	Photo     string               `bson:"photo,omitempty"`
	Mobile    string               `bson:"mobile,omitempty"`
	Status    string               `bson:"status"`
	UserID    primitive.ObjectID   `bson:"userID"`
	Note      string               `bson:"note,omitempty"`
	Projects  []primitive.ObjectID `bson:"projects,omitempty"`
	CreatedAt time.Time            `bson:"createdAt"`
	UpdatedAt time.Time            `bson:"updatedAt"`
}

func (m *mongoEmployee) toEntity() *domain.Employee {
	projects := make([]string, 0, len(m.Projects))
	for _, p := range m.Projects {
		projects = append(projects, p.Hex())
	}
	return &domain.Employee{
		ID:           m.ID.Hex(),
		Name:         m.Name,
		Email:        m.Email,
		PasswordHash: m.Password,
		Photo:        m.Photo,
		Mobile:       m.Mobile,
		Status:       m.Status,
		UserID:       m.UserID.Hex(),
		Note:         m.Note,
		ProjectIDs:   projects,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

// EmployeeRepositoryImpl implements domain.EmployeeRepository on MongoDB
type EmployeeRepositoryImpl struct {
	col    *mongo.Collection
	logger *zap.Logger
}

// NewEmployeeRepository creates a new employee repository
func NewEmployeeRepository(db *mongo.Database, logger *zap.Logger) domain.EmployeeRepository {
	return &EmployeeRepositoryImpl{
		col:    db.Collection("employees"),
		logger: logger.Named("EmployeeRepository"),
	}
}

// Create implements domain.EmployeeRepository
func (r *EmployeeRepositoryImpl) Create(ctx context.Context, employee *domain.Employee) error {
	userID, err := primitive.ObjectIDFromHex(employee.UserID)
	if err != nil {
		return domain.ErrNotFound
	}

	status := employee.Status
	if status == "" {
		status = "active"
	}

	doc := &mongoEmployee{
		ID:        primitive.NewObjectID(),
		Name:      employee.Name,
		Email:     employee.Email,
		Password:  employee.PasswordHash,
		Photo:     employee.Photo,
		Mobile:    employee.Mobile,
		Status:    status,
		UserID:    userID,
		Note:      employee.Note,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	for _, p := range employee.ProjectIDs {
		if oid, err := primitive.ObjectIDFromHex(p); err == nil {
			doc.Projects = append(doc.Projects, oid)
		}
	}

	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrEmailExists
		}
		r.logger.Error("failed to insert employee", zap.String("email", employee.Email), zap.Error(err))
		return err
	}
	employee.ID = doc.ID.Hex()
	employee.Status = doc.Status
	employee.CreatedAt = doc.CreatedAt
	employee.UpdatedAt = doc.UpdatedAt
	return nil
}

// FindByID implements domain.EmployeeRepository
func (r *EmployeeRepositoryImpl) FindByID(ctx context.Context, id string) (*domain.Employee, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrNotFound
	}
	var doc mongoEmployee
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return doc.toEntity(), nil
}

// FindByUser implements domain.EmployeeRepository
func (r *EmployeeRepositoryImpl) FindByUser(ctx context.Context, userID string) ([]*domain.Employee, error) {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, domain.ErrNotFound
	}
	cursor, err := r.col.Find(ctx, bson.M{"userID": oid})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var employees []*domain.Employee
	for cursor.Next(ctx) {
		var doc mongoEmployee
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		employees = append(employees, doc.toEntity())
	}
	return employees, cursor.Err()
}

// Delete implements domain.EmployeeRepository
func (r *EmployeeRepositoryImpl) Delete(ctx context.Context, id string) error {
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
