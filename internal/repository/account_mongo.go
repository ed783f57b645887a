package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/omaradel73/zamazon-v2/internal/domain"
)

type mongoAccountRepository struct {
	collection *mongo.Collection
}

func NewMongoAccountRepository(db *mongo.Database) AccountRepository {
	return &mongoAccountRepository{
		collection: db.Collection("accounts"),
	}
}

func (m *mongoAccountRepository) GetByID(ctx context.Context, id string) (*domain.Account, error) {
	var account domain.Account

	err := m.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&account)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to get account: %w", err)
	}

	return &account, nil
}

func (m *mongoAccountRepository) GetByEmail(ctx context.Context, email string) (*domain.Account, error) {
	var account domain.Account

	err := m.collection.FindOne(ctx, bson.M{"email": email}).Decode(&account)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to get account by email: %w", err)
	}

	return &account, nil
}

func (m *mongoAccountRepository) List(ctx context.Context) ([]domain.Account, error) {
	cursor, err := m.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	defer cursor.Close(ctx)

	var accounts []domain.Account
	if err := cursor.All(ctx, &accounts); err != nil {
		return nil, fmt.Errorf("failed to decode accounts: %w", err)
	}
	return accounts, nil
}

func (m *mongoAccountRepository) Insert(ctx context.Context, a *domain.Account) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now()
	}

	if _, err := m.collection.InsertOne(ctx, a); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicateEmail
		}
		return fmt.Errorf("failed to insert account: %w", err)
	}
	return nil
}

func (m *mongoAccountRepository) Update(ctx context.Context, a *domain.Account) error {
	// Every field is named explicitly so cleared codes overwrite the stored
	// values; marshaling the struct would drop empty omitempty fields and
	// leave a used code live.
	update := bson.M{"$set": bson.M{
		"name":              a.Name,
		"email":             a.Email,
		"password_hash":     a.PasswordHash,
		"role":              a.Role,
		"verified":          a.Verified,
		"verification_code": a.VerificationCode,
		"reset_code":        a.ResetCode,
		"reset_code_expiry": a.ResetCodeExpiry,
		"shipping":          a.Shipping,
	}}

	result, err := m.collection.UpdateOne(ctx, bson.M{"_id": a.ID}, update)
	if err != nil {
		return fmt.Errorf("failed to update account: %w", err)
	}
	if result.MatchedCount == 0 {
		return ErrAccountNotFound
	}
	return nil
}
