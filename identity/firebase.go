package identity

import (
	"context"

	firebase "firebase.google.com/go/v4"
	fbauth "firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"
)

// FirebaseProvider implements Provider against the Firebase Auth admin SDK.
type FirebaseProvider struct {
	client *fbauth.Client
}

// NewFirebaseProvider initializes the Firebase app from a service account
// credentials file and returns the auth-backed provider.
func NewFirebaseProvider(ctx context.Context, credentialsFile string) (*FirebaseProvider, error) {
	app, err := firebase.NewApp(ctx, nil, option.WithCredentialsFile(credentialsFile))
	if err != nil {
		return nil, err
	}
	client, err := app.Auth(ctx)
	if err != nil {
		return nil, err
	}
	return &FirebaseProvider{client: client}, nil
}

// CreateUser creates a new email/password account.
func (p *FirebaseProvider) CreateUser(ctx context.Context, email, password, displayName string) (*Record, error) {
	params := (&fbauth.UserToCreate{}).
		Email(email).
		Password(password).
		DisplayName(displayName)
	u, err := p.client.CreateUser(ctx, params)
	if err != nil {
		if fbauth.IsEmailAlreadyExists(err) {
			return nil, ErrEmailExists
		}
		return nil, err
	}
	return recordFromUser(u), nil
}

// GetUserByEmail looks an account up by exact email.
func (p *FirebaseProvider) GetUserByEmail(ctx context.Context, email string) (*Record, error) {
	u, err := p.client.GetUserByEmail(ctx, email)
	if err != nil {
		if fbauth.IsUserNotFound(err) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return recordFromUser(u), nil
}

// DeleteUser removes the account for the given uid.
func (p *FirebaseProvider) DeleteUser(ctx context.Context, uid string) error {
	err := p.client.DeleteUser(ctx, uid)
	if err != nil && fbauth.IsUserNotFound(err) {
		return ErrUserNotFound
	}
	return err
}

func recordFromUser(u *fbauth.UserRecord) *Record {
	return &Record{
		UID:         u.UID,
		Email:       u.Email,
		DisplayName: u.DisplayName,
	}
}
