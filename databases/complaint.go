package databases

// go generate: mockery --name ComplaintDatabase

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/barangaycms/barangay-cms-api/models"
)

const complaintCollection = "complaints"

// ComplaintDatabase contains the methods to use with the complaint database
type ComplaintDatabase interface {
	FindOne(ctx context.Context, filter interface{}) (*models.Complaint, error)
	Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.Complaint, error)
	InsertOne(ctx context.Context, complaint models.Complaint) error
	UpdateOne(ctx context.Context, filter interface{}, update interface{}, opts ...*options.UpdateOptions) error
	DeleteOne(ctx context.Context, filter interface{}) (int64, error)
}

type complaintDatabase struct {
	db DatabaseHelper
}

// NewComplaintDatabase initializes a new instance of complaint database with the provided db connection
func NewComplaintDatabase(db DatabaseHelper) ComplaintDatabase {
	return &complaintDatabase{
		db: db,
	}
}

func (c *complaintDatabase) FindOne(ctx context.Context, filter interface{}) (*models.Complaint, error) {
	complaint := &models.Complaint{}
	err := c.db.Collection(complaintCollection).FindOne(ctx, filter).Decode(complaint)
	if err != nil {
		return nil, err
	}
	return complaint, nil
}

func (c *complaintDatabase) Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.Complaint, error) {
	cursor, err := c.db.Collection(complaintCollection).Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	var complaints []models.Complaint
	if err := cursor.Decode(&complaints); err != nil {
		return nil, err
	}
	return complaints, nil
}

func (c *complaintDatabase) InsertOne(ctx context.Context, complaint models.Complaint) error {
	_, err := c.db.Collection(complaintCollection).InsertOne(ctx, complaint)
	return err
}

func (c *complaintDatabase) UpdateOne(ctx context.Context, filter interface{}, update interface{}, opts ...*options.UpdateOptions) error {
	_, err := c.db.Collection(complaintCollection).UpdateOne(ctx, filter, update, opts...)
	return err
}

func (c *complaintDatabase) DeleteOne(ctx context.Context, filter interface{}) (int64, error) {
	return c.db.Collection(complaintCollection).DeleteOne(ctx, filter)
}
