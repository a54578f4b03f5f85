package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	StatusLost  = "Lost"
	StatusFound = "Found"
)

// Report is a lost or found item submission. Status is fixed at creation and
// decides which collection holds the record and which date field is set.
// ContactEmail is omitted from list responses (cleared before marshalling)
// and SubmitterID is never serialized at all.
type Report struct {
	ID               primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	ItemName         string             `json:"item_name" bson:"item_name"`
	Category         string             `json:"category" bson:"category"`
	LastSeenLocation string             `json:"last_seen_location" bson:"last_seen_location"`
	Description      string             `json:"description" bson:"description"`
	ContactEmail     string             `json:"contact_email,omitempty" bson:"contact_email,omitempty"`
	Status           string             `json:"status" bson:"status"`
	DateLost         *time.Time         `json:"date_lost,omitempty" bson:"date_lost,omitempty"`
	DateFound        *time.Time         `json:"date_found,omitempty" bson:"date_found,omitempty"`
	DateSubmitted    time.Time          `json:"date_submitted" bson:"date_submitted"`
	SubmitterID      string             `json:"-" bson:"submitter_id,omitempty"`
}

// ReportInput is the submission payload. The date arrives as a string
// (YYYY-MM-DD from a date picker, RFC3339 also accepted); only the field
// matching the variant is read.
type ReportInput struct {
	ItemName         string `json:"item_name"`
	Category         string `json:"category"`
	LastSeenLocation string `json:"last_seen_location"`
	Description      string `json:"description"`
	ContactEmail     string `json:"contact_email"`
	DateLost         string `json:"date_lost"`
	DateFound        string `json:"date_found"`
}

// DateValue returns the raw date string for the given variant.
func (in ReportInput) DateValue(status string) string {
	if status == StatusFound {
		return in.DateFound
	}
	return in.DateLost
}

// DateFieldName returns the name of the date field for the given variant.
func DateFieldName(status string) string {
	if status == StatusFound {
		return "date_found"
	}
	return "date_lost"
}
