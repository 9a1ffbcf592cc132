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

// mongoUser is the persisted shape of a user document. Field names follow the
// collection's existing camelCase keys. OTP fields use omitempty so a cleared
// code disappears from the document instead of persisting as null.
type mongoUser struct {
	ID              primitive.ObjectID   `bson:"_id,omitempty"`
	FirstName       string               `bson:"firstName"`
	LastName        string               `bson:"lastName"`
	Email           string               `bson:"email"`
	AltEmail        string               `bson:"altEmail,omitempty"`
	Password        string               `bson:"password"`
	Photo           string               `bson:"photo,omitempty"`
	Mobile          string               `bson:"mobile,omitempty"`
	IsEmailVerified bool                 `bson:"isEmailVerified"`
	OTP             string               `bson:"otp,omitempty"`
	OTPExpireTime   *time.Time           `bson:"otpExpireTime,omitempty"`
	Role            string               `bson:"role"`
	Projects        []primitive.ObjectID `bson:"projects,omitempty"`
	CreatedAt       time.Time            `bson:"createdAt"`
	UpdatedAt       time.Time            `bson:"updatedAt"`
}

func (m *mongoUser) toEntity() *domain.User {
	projects := make([]string, 0, len(m.Projects))
	for _, p := range m.Projects {
		projects = append(projects, p.Hex())
	}
	return &domain.User{
		ID:              m.ID.Hex(),
		FirstName:       m.FirstName,
		LastName:        m.LastName,
		Email:           m.Email,
		AltEmail:        m.AltEmail,
		PasswordHash:    m.Password,
		Photo:           m.Photo,
		Mobile:          m.Mobile,
		IsEmailVerified: m.IsEmailVerified,
		OTP:             m.OTP,
		OTPExpireTime:   m.OTPExpireTime,
		Role:            m.Role,
		ProjectIDs:      projects,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}

func userFromEntity(u *domain.User) (*mongoUser, error) {
	doc := &mongoUser{
		FirstName:       u.FirstName,
		LastName:        u.LastName,
		Email:           u.Email,
		AltEmail:        u.AltEmail,
		Password:        u.PasswordHash,
		Photo:           u.Photo,
		Mobile:          u.Mobile,
		IsEmailVerified: u.IsEmailVerified,
		OTP:             u.OTP,
		OTPExpireTime:   u.OTPExpireTime,
		Role:            u.Role,
		CreatedAt:       u.CreatedAt,
		UpdatedAt:       u.UpdatedAt,
	}
	if u.ID != "" {
		oid, err := primitive.ObjectIDFromHex(u.ID)
		if err != nil {
			return nil, domain.ErrUserNotFound
		}
		doc.ID = oid
	}
	for _, p := range u.ProjectIDs {
		oid, err := primitive.ObjectIDFromHex(p)
		if err != nil {
			continue
		}
		doc.Projects = append(doc.Projects, oid)
	}
	return doc, nil
}

// UserRepositoryImpl implements domain.UserRepository on MongoDB
type UserRepositoryImpl struct {
	col    *mongo.Collection
	logger *zap.Logger
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *mongo.Database, logger *zap.Logger) domain.UserRepository {
	return &UserRepositoryImpl{
		col:    db.Collection("users"),
		logger: logger.Named("UserRepository"),
	}
}

// Create implements domain.UserRepository
func (r *UserRepositoryImpl) Create(ctx context.Context, user *domain.User) error {
	doc, err := userFromEntity(user)
	if err != nil {
		return err
	}
	if doc.ID.IsZero() {
		doc.ID = primitive.NewObjectID()
	}
	now := time.Now()
	doc.CreatedAt = now
	doc.UpdatedAt = now

	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			r.logger.Warn("duplicate email on user create", zap.String("email", user.Email))
			return domain.ErrEmailExists
		}
		r.logger.Error("failed to insert user", zap.String("email", user.Email), zap.Error(err))
		return err
	}

	user.ID = doc.ID.Hex()
	user.CreatedAt = doc.CreatedAt
	user.UpdatedAt = doc.UpdatedAt
	return nil
}

// FindByID implements domain.UserRepository
func (r *UserRepositoryImpl) FindByID(ctx context.Context, id string) (*domain.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

// FindByEmail implements domain.UserRepository
func (r *UserRepositoryImpl) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

// FindByAltEmail implements domain.UserRepository
func (r *UserRepositoryImpl) FindByAltEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"altEmail": email})
}

// FindByResetToken implements domain.UserRepository. The token value itself
// is the query key; no email pairing is involved.
func (r *UserRepositoryImpl) FindByResetToken(ctx context.Context, token string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"otp": token})
}

// Update implements domain.UserRepository. The whole document is replaced so
// cleared OTP fields drop out of storage.
func (r *UserRepositoryImpl) Update(ctx context.Context, user *domain.User) error {
	doc, err := userFromEntity(user)
	if err != nil {
		return err
	}
	doc.UpdatedAt = time.Now()

	result, err := r.col.ReplaceOne(ctx, bson.M{"_id": doc.ID}, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			r.logger.Warn("duplicate email on user update", zap.String("userId", user.ID))
			return domain.ErrEmailExists
		}
		r.logger.Error("failed to update user", zap.String("userId", user.ID), zap.Error(err))
		return err
	}
	if result.MatchedCount == 0 {
		return domain.ErrUserNotFound
	}

	user.UpdatedAt = doc.UpdatedAt
	return nil
}

func (r *UserRepositoryImpl) findOne(ctx context.Context, filter bson.M) (*domain.User, error) {
	var doc mongoUser
	if err := r.col.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		r.logger.Error("failed to query user", zap.Error(err))
		return nil, err
	}
	return doc.toEntity(), nil
}
