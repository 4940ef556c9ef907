package dynamodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"phonebook/contact"
	"phonebook/pbk"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// DefaultKey identifies the book item when no key is configured.
const DefaultKey = "phonebook"

var ErrBookNotFound = errors.New("dynamodb: book item not found")

// API is the part of the DynamoDB client the repository uses.
type API interface {
	GetItem(ctx context.Context, in *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	PutItem(ctx context.Context, in *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
}

// BookRepository implements contact.Repository. The book is one item whose
// "book" attribute holds the PBK1 encoding, so a save is a single atomic put.
type BookRepository struct {
	client API
	table  string
	key    string
	now    func() time.Time
}

type bookItem struct {
	ID      string `dynamodbav:"id"`
	Book    []byte `dynamodbav:"book"`
	SavedAt string `dynamodbav:"saved_at"`
}

func NewBookRepository(client API, table, key string) *BookRepository {
	if key == "" {
		key = DefaultKey
	}
	return &BookRepository{
		client: client,
		table:  table,
		key:    key,
		now:    time.Now,
	}
}

// EnsureInitialised puts an empty book unless the item already exists.
func (r *BookRepository) EnsureInitialised(ctx context.Context) error {
	err := r.put(ctx, nil, aws.String("attribute_not_exists(id)"))
	var exists *types.ConditionalCheckFailedException
	if errors.As(err, &exists) {
		return nil
	}
	return err
}

func (r *BookRepository) LoadContacts(ctx context.Context) ([]*contact.Contact, error) {
	if err := validateTable(r.table); err != nil {
		return nil, err
	}

	key, err := attributevalue.MarshalMap(map[string]string{"id": r.key})
	if err != nil {
		return nil, fmt.Errorf("dynamodb: marshal key: %w", err)
	}
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      &r.table,
		Key:            key,
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return nil, fmt.Errorf("dynamodb: get book: %w", err)
	}
	if len(out.Item) == 0 {
		return nil, ErrBookNotFound
	}

	var item bookItem
	if err := attributevalue.UnmarshalMap(out.Item, &item); err != nil {
		return nil, fmt.Errorf("dynamodb: unmarshal book: %w", err)
	}
	contacts, err := pbk.Unmarshal(item.Book)
	if err != nil {
		return nil, fmt.Errorf("dynamodb: decode book: %w", err)
	}
	return contacts, nil
}

func (r *BookRepository) SaveContacts(ctx context.Context, contacts []*contact.Contact) error {
	return r.put(ctx, contacts, nil)
}

func (r *BookRepository) put(ctx context.Context, contacts []*contact.Contact, condition *string) error {
	if err := validateTable(r.table); err != nil {
		return err
	}

	data, err := pbk.Marshal(contacts)
	if err != nil {
		return fmt.Errorf("dynamodb: encode book: %w", err)
	}
	av, err := attributevalue.MarshalMap(bookItem{
		ID:      r.key,
		Book:    data,
		SavedAt: r.now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		return fmt.Errorf("dynamodb: marshal book: %w", err)
	}

	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           &r.table,
		Item:                av,
		ConditionExpression: condition,
	})
	if err != nil {
		return fmt.Errorf("dynamodb: put book: %w", err)
	}
	return nil
}
