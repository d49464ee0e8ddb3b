package databases

// go generate: mockery --name NotificationDatabase

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/barangaycms/barangay-cms-api/models"
)

const notificationCollection = "notifications"

// NotificationDatabase contains the methods to use with the officials
// notification feed collection
type NotificationDatabase interface {
	Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.OfficialNotification, error)
	InsertOne(ctx context.Context, notification models.OfficialNotification) error
}

type notificationDatabase struct {
	db DatabaseHelper
}

// NewNotificationDatabase initializes a new instance of notification database with the provided db connection
func NewNotificationDatabase(db DatabaseHelper) NotificationDatabase {
	return &notificationDatabase{
		db: db,
	}
}

func (n *notificationDatabase) Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.OfficialNotification, error) {
	cursor, err := n.db.Collection(notificationCollection).Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	var notifications []models.OfficialNotification
	if err := cursor.Decode(&notifications); err != nil {
		return nil, err
	}
	return notifications, nil
}

func (n *notificationDatabase) InsertOne(ctx context.Context, notification models.OfficialNotification) error {
	_, err := n.db.Collection(notificationCollection).InsertOne(ctx, notification)
	return err
}
