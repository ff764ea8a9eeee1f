package httpapi

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"sigil/domain/entities"
	"sigil/service"
)

// The review links live in an email, so responses render as small HTML
// pages rather than JSON.
const reviewPageTemplate = `<!DOCTYPE html><html><head><meta charset="utf-8"><title>%s</title></head>
<body style="font-family:system-ui,sans-serif;text-align:center;padding:60px 20px">
<h1>%s</h1><p>%s</p>
</body></html>`

func writeReviewPage(w http.ResponseWriter, title, message string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	fmt.Fprintf(w, reviewPageTemplate, title, title, message)
}

func (s *Server) handleAdminReview(w http.ResponseWriter, r *http.Request) {
	secret := r.URL.Query().Get("secret")
	if s.cfg.AdminSecret == "" ||
		subtle.ConstantTimeCompare([]byte(secret), []byte(s.cfg.AdminSecret)) != 1 {
		writeReviewPage(w, "Unauthorized", "Invalid admin secret.")
		return
	}

	epochDay, err := strconv.ParseInt(r.URL.Query().Get("day"), 10, 64)
	if err != nil || epochDay == 0 {
		writeReviewPage(w, "Bad Request", "Missing day or action parameter.")
		return
	}
	action := service.ReviewAction(r.URL.Query().Get("action"))

	result, err := s.review.Review(r.Context(), epochDay, action)
	if err != nil {
		switch {
		case errors.Is(err, entities.ErrClaimNotFound):
			writeReviewPage(w, "Not Found", fmt.Sprintf("No claim found for epoch day %d.", epochDay))
		case errors.Is(err, service.ErrInvalidMessage):
			writeReviewPage(w, "Bad Request", "Action must be approve or deny.")
		default:
			writeReviewPage(w, "Error", err.Error())
		}
		return
	}

	date := entities.FormatEpochDay(epochDay)
	switch {
	case result.AlreadyDone:
		writeReviewPage(w, "Already Done", fmt.Sprintf("This claim was already %sd.", action))
	case result.Action == service.ReviewApprove:
		writeReviewPage(w, "Approved", fmt.Sprintf("Billboard for %s is now live.", date))
	case result.RefundError != "":
		writeReviewPage(w, "Denied (Refund Failed)",
			fmt.Sprintf("Billboard for %s denied. Refund failed: %s. Manual refund needed.", date, result.RefundError))
	case result.RefundedLamports > 0:
		writeReviewPage(w, "Denied & Refunded",
			fmt.Sprintf("Billboard for %s denied. %.4f SOL refunded to the claimer.", date, float64(result.RefundedLamports)/1e9))
	default:
		writeReviewPage(w, "Denied", fmt.Sprintf("Billboard for %s denied. Nothing to refund.", date))
	}
}
