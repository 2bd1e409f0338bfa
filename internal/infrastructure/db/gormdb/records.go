package gormdb

import "github.com/tasktracker/task-api/internal/core/domain"

type userRecord struct {
	ID             string `gorm:"primaryKey;size:36"`
	Username       string `gorm:"size:255;not null;uniqueIndex"`
	HashedPassword string `gorm:"size:255;not null"`
}

func (userRecord) TableName() string { return "users" }

func (r userRecord) toDomain() *domain.User {
	return &domain.User{ID: r.ID, Username: r.Username, HashedPassword: r.HashedPassword}
}

type taskRecord struct {
	ID          int64  `gorm:"primaryKey;autoIncrement"`
	UserID      string `gorm:"size:36;not null;index"`
	Description string `gorm:"column:task_description;size:256;not null"`
}

func (taskRecord) TableName() string { return "tasks" }

func (r taskRecord) toDomain() domain.Task {
	return domain.Task{ID: r.ID, UserID: r.UserID, Description: r.Description}
}
