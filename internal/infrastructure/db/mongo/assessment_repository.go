package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/gemlab/assessment-portal/internal/core/domain"
	"github.com/gemlab/assessment-portal/internal/core/ports"
)

const collectionAssessments = "assessments"

// AssessmentRepository implements ports.AssessmentRepository using MongoDB.
type AssessmentRepository struct {
	col *mongo.Collection
}

func NewAssessmentRepository(db *mongo.Database) *AssessmentRepository {
	return &AssessmentRepository{col: db.Collection(collectionAssessments)}
}

// Create inserts a new assessment document, assigning its ID up front.
func (r *AssessmentRepository) Create(ctx context.Context, a *domain.Assessment) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if a.ID == "" {
		a.ID = primitive.NewObjectID().Hex()
	}
	_, err := r.col.InsertOne(ctx, a)
	return err
}

// FindByOrderNumber retrieves the assessment attached to an order.
func (r *AssessmentRepository) FindByOrderNumber(ctx context.Context, orderNumber string) (*domain.Assessment, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var a domain.Assessment
	if err := r.col.FindOne(ctx, bson.M{"order_number": orderNumber}).Decode(&a); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrAssessmentNotFound
		}
		return nil, err
	}
	return &a, nil
}

// List pages through assessments matching the filter, oldest first so the
// work queue surfaces the longest-waiting items.
func (r *AssessmentRepository) List(ctx context.Context, filter ports.ListAssessmentsFilter) ([]domain.Assessment, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := bson.M{}
	if filter.Status != "" {
		query["status"] = filter.Status
	}
	if filter.AssessorID != "" {
		query["assessor_id"] = filter.AssessorID
	}

	total, err := r.col.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: 1}}).
		SetSkip(int64((filter.Page - 1) * filter.Limit)).
		SetLimit(int64(filter.Limit))

	cur, err := r.col.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cur.Close(ctx)

	var assessments []domain.Assessment
	if err := cur.All(ctx, &assessments); err != nil {
		return nil, 0, err
	}
	return assessments, total, nil
}

// ApplyTransition atomically updates status (plus assessor/grades when
// present) and appends a history entry.
func (r *AssessmentRepository) ApplyTransition(ctx context.Context, in ports.ApplyTransitionInput) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	set := bson.M{
		"status":     string(in.Status),
		"updated_at": in.Timestamp.UTC(),
	}
	if in.AssessorID != "" {
		set["assessor_id"] = in.AssessorID
	}
	if in.Grades != nil {
		set["grades"] = in.Grades
	}

	historyEntry := bson.M{
		"status":    string(in.Status),
		"timestamp": in.Timestamp.UTC(),
	}
	if in.ActorID != "" {
		historyEntry["actor_id"] = in.ActorID
	}
	if in.Notes != "" {
		historyEntry["notes"] = in.Notes
	}

	res, err := r.col.UpdateOne(ctx,
		bson.M{"order_number": in.OrderNumber},
		bson.M{
			"$set":  set,
			"$push": bson.M{"status_history": historyEntry},
		})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrAssessmentNotFound
	}
	return nil
}

// EnsureIndexes creates necessary indexes on the assessments collection.
func (r *AssessmentRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "order_number", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "status", Value: 1}}},
		{Keys: bson.D{{Key: "assessor_id", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
