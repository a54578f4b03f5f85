package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"lostfound-hub/models"
)

// These paths must fail before any store access, so a service with no
// collections wired is enough to exercise them.

func TestGetReportByIDRejectsMalformedID(t *testing.T) {
	svc := NewReportService(nil, nil)

	for _, id := range []string{"", "nope", "123", "zzzzzzzzzzzzzzzzzzzzzzzz", "65e0f1a2b3c4d5e6f7a8b9"} {
		_, err := svc.GetReportByID(context.Background(), id)
		require.ErrorIs(t, err, ErrInvalidID, "id %q", id)
	}
}

func TestCreateReportRejectsUnparseableDate(t *testing.T) {
	svc := NewReportService(nil, nil)

	in := models.ReportInput{
		ItemName:         "Black leather wallet",
		Category:         "Wallets/Bags",
		LastSeenLocation: "Central Station",
		Description:      "Contains a driver's license.",
		ContactEmail:     "owner@example.com",
		DateLost:         "garbage",
	}
	_, err := svc.CreateReport(context.Background(), in, models.StatusLost, "")
	require.Error(t, err)
}
