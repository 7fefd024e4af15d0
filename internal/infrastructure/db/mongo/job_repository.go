package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/trucklog/joblog-api/internal/core/domain"
	"github.com/trucklog/joblog-api/internal/core/ports"
)

const collectionJobs = "jobs"

// JobRepository implements ports.JobRepository over the jobs collection.
type JobRepository struct {
	coll *mongo.Collection
}

func NewJobRepository(db *mongo.Database) *JobRepository {
	return &JobRepository{coll: db.Collection(collectionJobs)}
}

type mongoJob struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	UserID      string             `bson:"user_id"`
	Username    string             `bson:"username"`
	Activity    string             `bson:"activity"`
	TruckType   string             `bson:"truck_type"`
	WeightKg    float64            `bson:"weight_kg"`
	Photo       string             `bson:"photo"`
	Status      string             `bson:"status"`
	CreatedAt   time.Time          `bson:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at"`
	EndDateTime *time.Time         `bson:"end_datetime,omitempty"`
}

func (mj mongoJob) toDomain() *domain.Job {
	return &domain.Job{
		ID:          mj.ID.Hex(),
		UserID:      mj.UserID,
		Username:    mj.Username,
		Activity:    mj.Activity,
		TruckType:   mj.TruckType,
		WeightKg:    mj.WeightKg,
		Photo:       mj.Photo,
		Status:      domain.JobStatus(mj.Status),
		CreatedAt:   mj.CreatedAt.UTC(),
		UpdatedAt:   mj.UpdatedAt.UTC(),
		EndDateTime: mj.EndDateTime,
	}
}

// Create inserts a new job document and returns its generated id.
func (r *JobRepository) Create(ctx context.Context, job *domain.Job) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoJob{
		UserID:      job.UserID,
		Username:    job.Username,
		Activity:    job.Activity,
		TruckType:   job.TruckType,
		WeightKg:    job.WeightKg,
		Photo:       job.Photo,
		Status:      string(job.Status),
		CreatedAt:   job.CreatedAt,
		UpdatedAt:   job.UpdatedAt,
		EndDateTime: job.EndDateTime,
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return "", fmt.Errorf("insert job: %w", err)
	}
	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", fmt.Errorf("insert job: unexpected id type %T", res.InsertedID)
	}
	return oid.Hex(), nil
}

func (r *JobRepository) FindByID(ctx context.Context, id string) (*domain.Job, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrJobNotFound
	}

	var mj mongoJob
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&mj); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrJobNotFound
		}
		return nil, fmt.Errorf("find job: %w", err)
	}
	return mj.toDomain(), nil
}

// FindByUserID returns all jobs with an exactly matching user_id, in the
// collection's natural order.
func (r *JobRepository) FindByUserID(ctx context.Context, userID string) ([]*domain.Job, error) {
	return r.find(ctx, bson.M{"user_id": userID})
}

func (r *JobRepository) FindAll(ctx context.Context) ([]*domain.Job, error) {
	return r.find(ctx, bson.M{})
}

func (r *JobRepository) find(ctx context.Context, filter bson.M) ([]*domain.Job, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("find jobs: %w", err)
	}
	defer cur.Close(ctx)

	var jobs []*domain.Job
	for cur.Next(ctx) {
		var mj mongoJob
		if err := cur.Decode(&mj); err != nil {
			return nil, fmt.Errorf("decode job: %w", err)
		}
		jobs = append(jobs, mj.toDomain())
	}
	return jobs, cur.Err()
}

// SetStatus updates the lifecycle state, stamping end_datetime when endAt is
// non-nil and leaving it untouched otherwise.
func (r *JobRepository) SetStatus(ctx context.Context, id string, status domain.JobStatus, endAt *time.Time, updatedAt time.Time) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrJobNotFound
	}

	set := bson.M{
		"status":     string(status),
		"updated_at": updatedAt,
	}
	if endAt != nil {
		set["end_datetime"] = *endAt
	}

	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("update job status: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrJobNotFound
	}
	return nil
}

// Update applies a partial merge; zero-value fields are left untouched.
func (r *JobRepository) Update(ctx context.Context, id string, fields ports.JobUpdate) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrJobNotFound
	}

	set := bson.M{"updated_at": fields.UpdatedAt}
	if fields.Activity != "" {
		set["activity"] = fields.Activity
	}
	if fields.TruckType != "" {
		set["truck_type"] = fields.TruckType
	}
	if fields.Photo != "" {
		set["photo"] = fields.Photo
	}
	if fields.WeightKg != nil {
		set["weight_kg"] = *fields.WeightKg
	}

	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("update job: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrJobNotFound
	}
	return nil
}

// DeleteIncomplete removes jobs whose photo is exactly the empty string.
// The equality predicate intentionally does not match missing or null photo
// fields.
func (r *JobRepository) DeleteIncomplete(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.DeleteMany(ctx, bson.M{"photo": ""})
	if err != nil {
		return 0, fmt.Errorf("delete incomplete jobs: %w", err)
	}
	return res.DeletedCount, nil
}

// EnsureIndexes creates the query indexes on the jobs collection.
func (r *JobRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "user_id", Value: 1}}},
		{Keys: bson.D{{Key: "status", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}
