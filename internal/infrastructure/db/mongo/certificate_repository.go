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
)

const collectionCertificates = "certificates"

// CertificateRepository implements ports.CertificateRepository using MongoDB.
type CertificateRepository struct {
	col *mongo.Collection
}

func NewCertificateRepository(db *mongo.Database) *CertificateRepository {
	return &CertificateRepository{col: db.Collection(collectionCertificates)}
}

// Create inserts a new certificate document, assigning its ID up front.
func (r *CertificateRepository) Create(ctx context.Context, cert *domain.Certificate) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if cert.ID == "" {
		cert.ID = primitive.NewObjectID().Hex()
	}
	_, err := r.col.InsertOne(ctx, cert)
	if err != nil && mongo.IsDuplicateKeyError(err) {
		return domain.ErrCertificateExists
	}
	return err
}

// FindByNumber retrieves a certificate by its public number.
func (r *CertificateRepository) FindByNumber(ctx context.Context, number string) (*domain.Certificate, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var c domain.Certificate
	if err := r.col.FindOne(ctx, bson.M{"number": number}).Decode(&c); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrCertificateNotFound
		}
		return nil, err
	}
	return &c, nil
}

// FindByAssessmentID retrieves the certificate issued for an assessment.
func (r *CertificateRepository) FindByAssessmentID(ctx context.Context, assessmentID string) (*domain.Certificate, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var c domain.Certificate
	if err := r.col.FindOne(ctx, bson.M{"assessment_id": assessmentID}).Decode(&c); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrCertificateNotFound
		}
		return nil, err
	}
	return &c, nil
}

// EnsureIndexes creates necessary indexes on the certificates collection.
func (r *CertificateRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "number", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "assessment_id", Value: 1}}, Options: options.Index().SetUnique(true)},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
