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

type mongoTaskComment struct {
	Author  primitive.ObjectID `bson:"author,omitempty"`
	Content string             `bson:"content"`
}

type mongoTask struct {
	ID            primitive.ObjectID `bson:"_id,omitempty"`
	Title         string             `bson:"title"`
	Description   string             `bson:"description,omitempty"`
	Status        string             `bson:"status"`
	Priority      string             `bson:"priority"`
	CompletedDate *time.Time         `bson:"completedDate,omitempty"`
	AssignedTo    primitive.ObjectID `bson:"assignedTo,omitempty"`
	ProjectID     primitive.ObjectID `bson:"projectId"`
	Comments      []mongoTaskComment `bson:"comments,omitempty"`
	CreatedAt     time.Time          `bson:"createdAt"`
	UpdatedAt     time.Time          `bson:"updatedAt"`
}

type mongoSubTask struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Title     string             `bson:"title"`
	Status    bool               `bson:"status"`
	TaskID    primitive.ObjectID `bson:"taskId"`
	CreatedAt time.Time          `bson:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt"`
}

func (m *mongoTask) toEntity() *domain.Task {
	task := &domain.Task{
		ID:            m.ID.Hex(),
		Title:         m.Title,
		Description:   m.Description,
		Status:        m.Status,
		Priority:      m.Priority,
		CompletedDate: m.CompletedDate,
		ProjectID:     m.ProjectID.Hex(),
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
	if !m.AssignedTo.IsZero() {
		task.AssignedTo = m.AssignedTo.Hex()
	}
	for _, c := range m.Comments {
		task.Comments = append(task.Comments, domain.TaskComment{
			AuthorID: c.Author.Hex(),
			Content:  c.Content,
		})
	}
	return task
}

func (m *mongoSubTask) toEntity() *domain.SubTask {
	return &domain.SubTask{
		ID:        m.ID.Hex(),
		Title:     m.Title,
		Done:      m.Status,
		TaskID:    m.TaskID.Hex(),
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// TaskRepositoryImpl implements domain.TaskRepository on MongoDB
type TaskRepositoryImpl struct {
	tasks    *mongo.Collection
	subTasks *mongo.Collection
	logger   *zap.Logger
}

// NewTaskRepository creates a new task repository
func NewTaskRepository(db *mongo.Database, logger *zap.Logger) domain.TaskRepository {
	return &TaskRepositoryImpl{
		tasks:    db.Collection("tasks"),
		subTasks: db.Collection("subtasks"),
		logger:   logger.Named("TaskRepository"),
	}
}

// Create implements domain.TaskRepository
func (r *TaskRepositoryImpl) Create(ctx context.Context, task *domain.Task) error {
	projectID, err := primitive.ObjectIDFromHex(task.ProjectID)
	if err != nil {
		return domain.ErrNotFound
	}

	status := task.Status
	if status == "" {
		status = domain.TaskStatusToDo
	}
	priority := task.Priority
	if priority == "" {
		priority = domain.TaskPriorityMedium
	}

	doc := &mongoTask{
		ID:            primitive.NewObjectID(),
		Title:         task.Title,
		Description:   task.Description,
		Status:        status,
		Priority:      priority,
		CompletedDate: task.CompletedDate,
		ProjectID:     projectID,
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}
	if task.AssignedTo != "" {
		if oid, err := primitive.ObjectIDFromHex(task.AssignedTo); err == nil {
			doc.AssignedTo = oid
		}
	}
	for _, c := range task.Comments {
		comment := mongoTaskComment{Content: c.Content}
		if oid, err := primitive.ObjectIDFromHex(c.AuthorID); err == nil {
			comment.Author = oid
		}
		doc.Comments = append(doc.Comments, comment)
	}

	if _, err := r.tasks.InsertOne(ctx, doc); err != nil {
		r.logger.Error("failed to insert task", zap.String("title", task.Title), zap.Error(err))
		return err
	}
	task.ID = doc.ID.Hex()
	task.Status = doc.Status
	task.Priority = doc.Priority
	task.CreatedAt = doc.CreatedAt
	task.UpdatedAt = doc.UpdatedAt
	return nil
}

// FindByID implements domain.TaskRepository
func (r *TaskRepositoryImpl) FindByID(ctx context.Context, id string) (*domain.Task, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrNotFound
	}
	var doc mongoTask
	if err := r.tasks.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return doc.toEntity(), nil
}

// FindByProject implements domain.TaskRepository
func (r *TaskRepositoryImpl) FindByProject(ctx context.Context, projectID string) ([]*domain.Task, error) {
	oid, err := primitive.ObjectIDFromHex(projectID)
	if err != nil {
		return nil, domain.ErrNotFound
	}
	cursor, err := r.tasks.Find(ctx, bson.M{"projectId": oid})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var tasks []*domain.Task
	for cursor.Next(ctx) {
		var doc mongoTask
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		tasks = append(tasks, doc.toEntity())
	}
	return tasks, cursor.Err()
}

// Delete implements domain.TaskRepository. Subtasks under the task are
// removed with it.
func (r *TaskRepositoryImpl) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrNotFound
	}
	result, err := r.tasks.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return domain.ErrNotFound
	}
	if _, err := r.subTasks.DeleteMany(ctx, bson.M{"taskId": oid}); err != nil {
		r.logger.Warn("failed to delete subtasks of task", zap.String("taskId", id), zap.Error(err))
	}
	return nil
}

// CreateSubTask implements domain.TaskRepository
func (r *TaskRepositoryImpl) CreateSubTask(ctx context.Context, subTask *domain.SubTask) error {
	taskID, err := primitive.ObjectIDFromHex(subTask.TaskID)
	if err != nil {
		return domain.ErrNotFound
	}

	doc := &mongoSubTask{
		ID:        primitive.NewObjectID(),
		Title:     subTask.Title,
		Status:    subTask.Done,
		TaskID:    taskID,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if _, err := r.subTasks.InsertOne(ctx, doc); err != nil {
		r.logger.Error("failed to insert subtask", zap.String("title", subTask.Title), zap.Error(err))
		return err
	}
	subTask.ID = doc.ID.Hex()
	subTask.CreatedAt = doc.CreatedAt
	subTask.UpdatedAt = doc.UpdatedAt
	return nil
}

// FindSubTasks implements domain.TaskRepository
func (r *TaskRepositoryImpl) FindSubTasks(ctx context.Context, taskID string) ([]*domain.SubTask, error) {
	oid, err := primitive.ObjectIDFromHex(taskID)
	if err != nil {
		return nil, domain.ErrNotFound
	}
	cursor, err := r.subTasks.Find(ctx, bson.M{"taskId": oid})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var subTasks []*domain.SubTask
	for cursor.Next(ctx) {
		var doc mongoSubTask
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		subTasks = append(subTasks, doc.toEntity())
	}
	return subTasks, cursor.Err()
}

// DeleteSubTask implements domain.TaskRepository
func (r *TaskRepositoryImpl) DeleteSubTask(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrNotFound
	}
	result, err := r.subTasks.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}
