package repositories

import (
	"errors"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/xoventechdev/Task-Manager-Project/domain"
)

func TestUserFromEntity_RejectsBadID(t *testing.T) {
	_, err := userFromEntity(&domain.User{ID: "not-an-object-id"})
	if !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestUserDocument_ClearedOTPDropsFromStorage(t *testing.T) {
	user := &domain.User{
		ID:        primitive.NewObjectID().Hex(),
		FirstName: "Test",
		LastName:  "User",
		Email:     "test@example.com",
		Role:      domain.RoleUser,
	}
	user.SetOTP("123456", time.Now().Add(10*time.Minute))

	doc, err := userFromEntity(user)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	raw, err := bson.Marshal(doc)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	var m bson.M
	if err := bson.Unmarshal(raw, &m); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if m["otp"] != "123456" {
		t.Errorf("expected staged otp in document, got %v", m["otp"])
	}
	if _, ok := m["otpExpireTime"]; !ok {
		t.Error("expected otpExpireTime in document")
	}

	user.ClearOTP()
	doc, err = userFromEntity(user)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	raw, err = bson.Marshal(doc)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	m = bson.M{}
	if err := bson.Unmarshal(raw, &m); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	// A replaced document must not carry empty otp keys, or the reset token
	// lookup would match users with no pending code.
	if _, ok := m["otp"]; ok {
		t.Error("expected otp key to drop after clearing")
	}
	if _, ok := m["otpExpireTime"]; ok {
		t.Error("expected otpExpireTime key to drop after clearing")
	}
}

func TestMongoUser_ToEntity(t *testing.T) {
	expireAt := time.Now().Add(10 * time.Minute)
	projectID := primitive.NewObjectID()
	doc := &mongoUser{
		ID:              primitive.NewObjectID(),
		FirstName:       "Test",
		LastName:        "User",
		Email:           "test@example.com",
		AltEmail:        "staged@example.com",
		Password:        "hash",
		IsEmailVerified: true,
		OTP:             "123456",
		OTPExpireTime:   &expireAt,
		Role:            domain.RoleEditor,
		Projects:        []primitive.ObjectID{projectID},
	}

	user := doc.toEntity()
	if user.ID != doc.ID.Hex() {
		t.Errorf("expected hex id, got %s", user.ID)
	}
	if user.PasswordHash != "hash" {
		t.Errorf("expected password hash mapped, got %s", user.PasswordHash)
	}
	if !user.HasPendingOTP() {
		t.Error("expected pending otp carried over")
	}
	if len(user.ProjectIDs) != 1 || user.ProjectIDs[0] != projectID.Hex() {
		t.Errorf("expected project references mapped, got %v", user.ProjectIDs)
	}
	if user.VerificationAddress() != "staged@example.com" {
		t.Errorf("expected staged address, got %s", user.VerificationAddress())
	}
}

func TestMongoTask_ToEntity(t *testing.T) {
	doc := &mongoTask{
		ID:        primitive.NewObjectID(),
		Title:     "Write report",
		Status:    domain.TaskStatusToDo,
		Priority:  domain.TaskPriorityMedium,
		ProjectID: primitive.NewObjectID(),
		Comments: []mongoTaskComment{
			{Author: primitive.NewObjectID(), Content: "first draft ready"},
		},
	}

	task := doc.toEntity()
	if task.AssignedTo != "" {
		t.Errorf("expected unassigned task to map to empty string, got %s", task.AssignedTo)
	}
	if len(task.Comments) != 1 || task.Comments[0].Content != "first draft ready" {
		t.Errorf("expected comments mapped, got %v", task.Comments)
	}
	if task.ProjectID != doc.ProjectID.Hex() {
		t.Errorf("expected project id mapped, got %s", task.ProjectID)
	}
}
