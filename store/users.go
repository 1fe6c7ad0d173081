package store

import (
	"context"
	"time"

	"farmstand-backend/models"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
)

// Users reads and writes the users collection.
type Users struct {
	Client *firestore.Client
}

func NewUsers(client *firestore.Client) *Users {
	return &Users{Client: client}
}

func (u *Users) col() *firestore.CollectionRef {
	return u.Client.Collection("users")
}

func (u *Users) Get(ctx context.Context, id string) (models.User, error) {
	snap, err := u.col().Doc(id).Get(ctx)
	if err != nil {
		if IsNotFound(err) {
			return models.User{}, ErrNotFound
		}
		return models.User{}, err
	}
	return docToUser(snap)
}

func (u *Users) GetByEmail(ctx context.Context, email string) (models.User, error) {
	iter := u.col().Where("email", "==", email).Limit(1).Documents(ctx)
	defer iter.Stop()

	snap, err := iter.Next()
	if err == iterator.Done {
		return models.User{}, ErrNotFound
	}
	if err != nil {
		return models.User{}, err
	}
	return docToUser(snap)
}

// Create writes a new user document with a store-assigned id.
func (u *Users) Create(ctx context.Context, user models.User) (models.User, error) {
	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now

	ref := u.col().NewDoc()
	if _, err := ref.Create(ctx, user); err != nil {
		return models.User{}, err
	}
	user.ID = ref.ID
	return user, nil
}

// Update merges the given fields into the user document. Keys are document
// field names, e.g. "deliveryAddress".
func (u *Users) Update(ctx context.Context, id string, fields map[string]interface{}) error {
	fields["updatedAt"] = time.Now().UTC()
	_, err := u.col().Doc(id).Set(ctx, fields, firestore.MergeAll)
	if IsNotFound(err) {
		return ErrNotFound
	}
	return err
}

func docToUser(snap *firestore.DocumentSnapshot) (models.User, error) {
	var user models.User
	if err := snap.DataTo(&user); err != nil {
		return models.User{}, err
	}
	user.ID = snap.Ref.ID
	if user.Role == "" {
		user.Role = "customer"
	}
	return user, nil
}
