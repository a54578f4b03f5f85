package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"lostfound-hub/config"
	"lostfound-hub/models"
	"lostfound-hub/utils"
)

// ReportService writes reports and looks them up by id across both
// collections.
type ReportService struct {
	lost  *mongo.Collection
	found *mongo.Collection
}

func NewReportService(lost, found *mongo.Collection) *ReportService {
	return &ReportService{lost: lost, found: found}
}

func (s *ReportService) collectionFor(status string) *mongo.Collection {
	if status == models.StatusFound {
		return s.found
	}
	return s.lost
}

// CreateReport inserts one validated report into the collection for its
// variant, stamping status, date_submitted and the variant's date field, and
// attaching the submitter when known. Returns the generated id. Inserts are
// at-most-once: a failed insert is reported as ErrStoreUnavailable and never
// retried, and resubmitting creates a second record.
func (s *ReportService) CreateReport(ctx context.Context, in models.ReportInput, status, submitterID string) (string, error) {
	date, err := utils.ParseReportDate(in.DateValue(status))
	if err != nil {
		return "", fmt.Errorf("parse %s: %w", models.DateFieldName(status), err)
	}

	report := models.Report{
		ItemName:         in.ItemName,
		Category:         in.Category,
		LastSeenLocation: in.LastSeenLocation,
		Description:      in.Description,
		ContactEmail:     in.ContactEmail,
		Status:           status,
		DateSubmitted:    time.Now(),
		SubmitterID:      submitterID,
	}
	if status == models.StatusFound {
		report.DateFound = &date
	} else {
		report.DateLost = &date
	}

	col := s.collectionFor(status)
	res, err := col.InsertOne(ctx, report)
	if err != nil {
		config.GetLogger().WithField("collection", col.Name()).Error("insert failed: ", err)
		return "", fmt.Errorf("%w: insert into %s: %v", ErrStoreUnavailable, col.Name(), err)
	}

	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", fmt.Errorf("%w: insert into %s not acknowledged", ErrStoreUnavailable, col.Name())
	}
	return oid.Hex(), nil
}

// GetReportByID fetches a single report from either collection, lost first.
// The detail view is for contacting the reporter, so contact_email stays in.
// Malformed ids are rejected before any store access.
func (s *ReportService) GetReportByID(ctx context.Context, id string) (models.Report, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return models.Report{}, ErrInvalidID
	}

	var report models.Report
	err = s.lost.FindOne(ctx, bson.M{"_id": oid}).Decode(&report)
	if err == nil {
		return report, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		config.GetLogger().WithField("id", id).Error("lookup failed: ", err)
		return models.Report{}, fmt.Errorf("%w: %v", ErrQueryFailed, err)
	}

	err = s.found.FindOne(ctx, bson.M{"_id": oid}).Decode(&report)
	if err == nil {
		return report, nil
	}
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Report{}, ErrNotFound
	}
	config.GetLogger().WithField("id", id).Error("lookup failed: ", err)
	return models.Report{}, fmt.Errorf("%w: %v", ErrQueryFailed, err)
}
