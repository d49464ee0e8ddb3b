package databases

// go generate: mockery --name FeedbackDatabase

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/barangaycms/barangay-cms-api/models"
)

const feedbackCollection = "feedback"

// FeedbackDatabase contains the methods to use with the feedback database
type FeedbackDatabase interface {
	FindOne(ctx context.Context, filter interface{}) (*models.Feedback, error)
	Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.Feedback, error)
	InsertOne(ctx context.Context, feedback models.Feedback) error
	UpdateOne(ctx context.Context, filter interface{}, update interface{}, opts ...*options.UpdateOptions) error
}

type feedbackDatabase struct {
	db DatabaseHelper
}

// NewFeedbackDatabase initializes a new instance of feedback database with the provided db connection
func NewFeedbackDatabase(db DatabaseHelper) FeedbackDatabase {
	return &feedbackDatabase{
		db: db,
	}
}

func (f *feedbackDatabase) FindOne(ctx context.Context, filter interface{}) (*models.Feedback, error) {
	feedback := &models.Feedback{}
	err := f.db.Collection(feedbackCollection).FindOne(ctx, filter).Decode(feedback)
	if err != nil {
		return nil, err
	}
	return feedback, nil
}

func (f *feedbackDatabase) Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.Feedback, error) {
	cursor, err := f.db.Collection(feedbackCollection).Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	var feedback []models.Feedback
	if err := cursor.Decode(&feedback); err != nil {
		return nil, err
	}
	return feedback, nil
}

func (f *feedbackDatabase) InsertOne(ctx context.Context, feedback models.Feedback) error {
	_, err := f.db.Collection(feedbackCollection).InsertOne(ctx, feedback)
	return err
}

func (f *feedbackDatabase) UpdateOne(ctx context.Context, filter interface{}, update interface{}, opts ...*options.UpdateOptions) error {
	_, err := f.db.Collection(feedbackCollection).UpdateOne(ctx, filter, update, opts...)
	return err
}
