package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/commerceos/customer-system/internal/core/domain"
	"github.com/commerceos/customer-system/internal/core/ports"
)

const (
	collectionCustomers = "customers"
	collectionCounters  = "counters"

	customerCodeCounter = "customer_code"
)

// CustomerRepository persists customers in MongoDB. The numeric code is
// assigned from a counter document, and every check-then-mutate sequence is
// collapsed into a single FindOneAndUpdate so visibility and mutation are
// atomic per record.
type CustomerRepository struct {
	col      *mongo.Collection
	counters *mongo.Collection
}

func NewCustomerRepository(db *mongo.Database) *CustomerRepository {
	return &CustomerRepository{
		col:      db.Collection(collectionCustomers),
		counters: db.Collection(collectionCounters),
	}
}

// Create assigns the next code from the counter sequence and inserts the
// document.
func (r *CustomerRepository) Create(ctx context.Context, c *domain.Customer) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	code, err := r.nextCode(ctx)
	if err != nil {
		return fmt.Errorf("assign customer code: %w", err)
	}
	c.Code = code

	if _, err := r.col.InsertOne(ctx, c); err != nil {
		return err
	}
	return nil
}

// nextCode atomically increments and returns the customer code sequence.
func (r *CustomerRepository) nextCode(ctx context.Context) (int64, error) {
	var counter struct {
		Seq int64 `bson:"seq"`
	}
	err := r.counters.FindOneAndUpdate(ctx,
		bson.M{"_id": customerCodeCounter},
		bson.M{"$inc": bson.M{"seq": 1}},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&counter)
	if err != nil {
		return 0, err
	}
	return counter.Seq, nil
}

// FindByID retrieves a customer by id. Soft-deleted rows are treated as
// absent unless includeDeleted is set.
func (r *CustomerRepository) FindByID(ctx context.Context, id string, includeDeleted bool) (*domain.Customer, error) {
	return r.findOne(ctx, visibility(bson.M{"_id": id}, includeDeleted))
}

// FindByCode retrieves a customer by its numeric code, with the same
// visibility semantics as FindByID.
func (r *CustomerRepository) FindByCode(ctx context.Context, code int64, includeDeleted bool) (*domain.Customer, error) {
	return r.findOne(ctx, visibility(bson.M{"code": code}, includeDeleted))
}

func (r *CustomerRepository) findOne(ctx context.Context, filter bson.M) (*domain.Customer, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var c domain.Customer
	if err := r.col.FindOne(ctx, filter).Decode(&c); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrCustomerNotFound
		}
		return nil, err
	}
	return &c, nil
}

// List returns one page of customers and the total count under the same
// filter. Newest first; _id breaks creation-time ties so page boundaries
// stay deterministic.
func (r *CustomerRepository) List(ctx context.Context, filter ports.ListCustomersFilter) ([]*domain.Customer, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := visibility(bson.M{}, filter.IncludeDeleted)

	total, err := r.col.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, err
	}

	skip := int64(filter.Page-1) * int64(filter.Limit)
	cur, err := r.col.Find(ctx, query, options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}}).
		SetSkip(skip).
		SetLimit(int64(filter.Limit)))
	if err != nil {
		return nil, 0, err
	}
	defer cur.Close(ctx)

	var rows []*domain.Customer
	if err := cur.All(ctx, &rows); err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

// Update applies the patch in one conditional write gated on visibility and
// returns the post-image.
func (r *CustomerRepository) Update(ctx context.Context, id string, patch ports.CustomerPatch, updatedBy string, includeDeleted bool) (*domain.Customer, error) {
	set := bson.M{
		"updated_by_id": updatedBy,
		"updated_at":    time.Now().UTC(),
	}
	if patch.Name != nil {
		set["name"] = *patch.Name
	}
	if patch.Email != nil {
		set["email"] = *patch.Email
	}

	return r.updateOne(ctx, visibility(bson.M{"_id": id}, includeDeleted), bson.M{"$set": set})
}

// SoftDelete marks the row deleted. The predicate requires a live row, so a
// second delete of the same row reports not-found instead of refreshing the
// deletion stamp.
func (r *CustomerRepository) SoftDelete(ctx context.Context, id string, deletedBy string, at time.Time) (*domain.Customer, error) {
	filter := bson.M{"_id": id, "deleted_at": nil}
	update := bson.M{"$set": bson.M{
		"deleted_at":    at,
		"deleted_by_id": deletedBy,
		"updated_at":    at,
	}}
	return r.updateOne(ctx, filter, update)
}

// Restore clears the soft-delete marker. The filter matches regardless of
// deletion state so soft-deleted rows remain reachable.
func (r *CustomerRepository) Restore(ctx context.Context, id string) (*domain.Customer, error) {
	update := bson.M{
		"$set":   bson.M{"updated_at": time.Now().UTC()},
		"$unset": bson.M{"deleted_at": "", "deleted_by_id": ""},
	}
	return r.updateOne(ctx, bson.M{"_id": id}, update)
}

func (r *CustomerRepository) updateOne(ctx context.Context, filter, update bson.M) (*domain.Customer, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var c domain.Customer
	err := r.col.FindOneAndUpdate(ctx, filter, update,
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&c)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrCustomerNotFound
		}
		return nil, err
	}
	return &c, nil
}

// visibility appends the soft-delete predicate unless the caller may see
// deleted rows. {"deleted_at": nil} matches both a missing field and an
// explicit null.
func visibility(filter bson.M, includeDeleted bool) bson.M {
	if !includeDeleted {
		filter["deleted_at"] = nil
	}
	return filter
}

// EnsureIndexes creates the indexes backing the lookup and list paths.
func (r *CustomerRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "code", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}}},
		{Keys: bson.D{{Key: "deleted_at", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
