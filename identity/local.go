package identity

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"

	"github.com/barangaycms/barangay-cms-api/databases"
)

const accountCollection = "auth_accounts"

type localAccount struct {
	UID          string `bson:"_id"`
	Email        string `bson:"email"`
	PasswordHash string `bson:"password_hash"`
	DisplayName  string `bson:"display_name"`
}

// LocalProvider implements Provider on a mongo collection with bcrypt
// hashes. It is selected when no hosted credentials are configured, so the
// system runs in development and tests without a Firebase project.
type LocalProvider struct {
	db databases.DatabaseHelper
}

// NewLocalProvider returns a provider backed by the auth_accounts collection.
func NewLocalProvider(db databases.DatabaseHelper) *LocalProvider {
	return &LocalProvider{db: db}
}

// CreateUser creates a new email/password account with a generated uid.
func (p *LocalProvider) CreateUser(ctx context.Context, email, password, displayName string) (*Record, error) {
	existing := localAccount{}
	err := p.db.Collection(accountCollection).FindOne(ctx, bson.M{"email": email}).Decode(&existing)
	if err == nil {
		return nil, ErrEmailExists
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	account := localAccount{
		UID:          uuid.New().String(),
		Email:        email,
		PasswordHash: string(hash),
		DisplayName:  displayName,
	}
	if _, err := p.db.Collection(accountCollection).InsertOne(ctx, account); err != nil {
		return nil, err
	}
	return &Record{UID: account.UID, Email: account.Email, DisplayName: account.DisplayName}, nil
}

// GetUserByEmail looks an account up by exact email.
func (p *LocalProvider) GetUserByEmail(ctx context.Context, email string) (*Record, error) {
	account := localAccount{}
	err := p.db.Collection(accountCollection).FindOne(ctx, bson.M{"email": email}).Decode(&account)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &Record{UID: account.UID, Email: account.Email, DisplayName: account.DisplayName}, nil
}

// DeleteUser removes the account for the given uid.
func (p *LocalProvider) DeleteUser(ctx context.Context, uid string) error {
	deleted, err := p.db.Collection(accountCollection).DeleteOne(ctx, bson.M{"_id": uid})
	if err != nil {
		return err
	}
	if deleted == 0 {
		return ErrUserNotFound
	}
	return nil
}

// VerifyPassword compares the stored bcrypt hash against the given password.
func (p *LocalProvider) VerifyPassword(ctx context.Context, email, password string) error {
	account := localAccount{}
	err := p.db.Collection(accountCollection).FindOne(ctx, bson.M{"email": email}).Decode(&account)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrUserNotFound
	}
	if err != nil {
		return err
	}
	return bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password))
}
