package httpapi

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"sigil/domain/entities"
	"sigil/service"
)

// Largest accepted billboard image upload.
const maxImageBytes = 4 << 20

type signedRequest struct {
	Wallet    string `json:"wallet"`
	Signature string `json:"signature"`
	Message   string `json:"message"`
}

func decodeSignedRequest(r *http.Request) (*signedRequest, error) {
	var req signedRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return nil, fmt.Errorf("%w: malformed JSON body", service.ErrInvalidMessage)
	}
	if req.Wallet == "" || req.Signature == "" || req.Message == "" {
		return nil, fmt.Errorf("%w: wallet, signature and message are required", service.ErrInvalidMessage)
	}
	return &req, nil
}

func (s *Server) handleCheckIn(w http.ResponseWriter, r *http.Request) {
	req, err := decodeSignedRequest(r)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	result, err := s.checkIns.CheckIn(r.Context(), req.Wallet, req.Signature, req.Message)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"epochDay":       result.EpochDay,
		"position":       result.Position,
		"weight":         result.Weight,
		"bonusEarned":    result.BonusEarned,
		"totalCheckedIn": result.TotalCheckedIn,
	})
}

func (s *Server) handleCheckInStatus(w http.ResponseWriter, r *http.Request) {
	wallet := r.URL.Query().Get("wallet")
	if wallet == "" {
		writeError(w, http.StatusBadRequest, "wallet is required")
		return
	}

	epochDay := entities.CurrentEpochDay()
	if day := r.URL.Query().Get("day"); day != "" {
		parsed, err := strconv.ParseInt(day, 10, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid day")
			return
		}
		epochDay = parsed
	}

	status, err := s.checkIns.Status(r.Context(), wallet, epochDay)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"epochDay":       epochDay,
		"checkedIn":      status.CheckedIn,
		"weight":         status.Weight,
		"totalCheckedIn": status.TotalCheckedIn,
		"eligible":       status.Eligible,
	})
}

// handleRedirect forwards visitors to the day's billboard link, logging
// the click on the way through. Unclaimed or linkless days fall back to
// the site root so the QR code never dead-ends.
func (s *Server) handleRedirect(w http.ResponseWriter, r *http.Request) {
	epochDay := entities.CurrentEpochDay()
	if day := r.URL.Query().Get("d"); day != "" {
		parsed, err := strconv.ParseInt(day, 10, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid day")
			return
		}
		epochDay = parsed
	}

	ipHash := sha256.Sum256([]byte(clientIP(r)))
	visitor := service.ClickVisitor{
		IPHash:    hex.EncodeToString(ipHash[:]),
		Referrer:  r.Header.Get("Referer"),
		UserAgent: r.Header.Get("User-Agent"),
	}

	target, err := s.analytics.Redirect(r.Context(), epochDay, visitor)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if target == "" {
		target = s.cfg.BaseURL
	}

	http.Redirect(w, r, target, http.StatusFound)
}

func (s *Server) handleAnalytics(w http.ResponseWriter, r *http.Request) {
	wallet := r.URL.Query().Get("wallet")
	if wallet == "" {
		writeError(w, http.StatusBadRequest, "wallet is required")
		return
	}

	report, err := s.analytics.Analytics(r.Context(), wallet)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, report)
}

func (s *Server) handleRewards(w http.ResponseWriter, r *http.Request) {
	wallet := r.URL.Query().Get("wallet")
	if wallet == "" {
		writeError(w, http.StatusBadRequest, "wallet is required")
		return
	}

	breakdown, err := s.rewards.Breakdown(r.Context(), wallet)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	days := make([]map[string]any, 0, len(breakdown.Days))
	for _, day := range breakdown.Days {
		days = append(days, map[string]any{
			"epochDay":          day.EpochDay,
			"weight":            day.Weight,
			"totalWeight":       day.TotalWeight,
			"incentiveLamports": day.IncentiveLamports,
			"earnedLamports":    day.EarnedLamports,
			"paidLamports":      day.PaidLamports,
			"pendingLamports":   day.PendingLamports,
		})
	}

	resp := map[string]any{
		"wallet":               wallet,
		"days":                 days,
		"totalEarnedLamports":  breakdown.TotalEarnedLamports,
		"totalPaidLamports":    breakdown.TotalPaidLamports,
		"totalPendingLamports": breakdown.TotalPendingLamports,
		"bonusDays":            breakdown.BonusDays,
		"todayPoolLamports":    breakdown.TodayPoolLamports,
	}
	if est := breakdown.TodayEstimate; est != nil {
		resp["todayEstimate"] = map[string]any{
			"epochDay":           est.EpochDay,
			"weight":             est.Weight,
			"currentTotalWeight": est.CurrentTotalWeight,
			"incentiveLamports":  est.IncentiveLamports,
			"estimatedLamports":  est.EstimatedLamports,
		}
	}

	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleClaimRewards(w http.ResponseWriter, r *http.Request) {
	req, err := decodeSignedRequest(r)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	result, err := s.rewards.ClaimRewards(r.Context(), req.Wallet, req.Signature, req.Message)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"amountLamports": result.AmountLamports,
		"txSignature":    result.TxSignature,
		"days":           result.Days,
	})
}

func (s *Server) handleClaimDay(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxImageBytes); err != nil {
		writeError(w, http.StatusBadRequest, "malformed multipart form")
		return
	}

	epochDay, err := strconv.ParseInt(r.FormValue("epochDay"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid epochDay")
		return
	}

	input := service.ClaimDayInput{
		TxSignature:       r.FormValue("txSignature"),
		EpochDay:          epochDay,
		LinkURL:           r.FormValue("linkUrl"),
		FarcasterUsername: r.FormValue("farcasterUsername"),
	}
	if raw := r.FormValue("incentiveLamports"); raw != "" {
		lamports, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || lamports < 0 {
			writeError(w, http.StatusBadRequest, "invalid incentiveLamports")
			return
		}
		input.IncentiveLamports = lamports
	}

	if file, header, err := r.FormFile("image"); err == nil {
		defer file.Close()
		data, err := io.ReadAll(io.LimitReader(file, maxImageBytes))
		if err != nil {
			writeError(w, http.StatusBadRequest, "failed to read image")
			return
		}
		input.ImageData = data
		input.ImageContentType = header.Header.Get("Content-Type")
	}

	result, err := s.claims.ClaimDay(r.Context(), input)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success":          true,
		"epochDay":         result.EpochDay,
		"claimerWallet":    result.ClaimerWallet,
		"imageUrl":         result.ImageURL,
		"moderationStatus": result.ModerationStatus,
	})
}

func (s *Server) handleCalendar(w http.ResponseWriter, r *http.Request) {
	days, today, err := s.calendar.Calendar(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"days": days, "today": today})
}

func (s *Server) handleCronSettle(w http.ResponseWriter, r *http.Request) {
	results, err := s.settlement.SettleAllPast(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}

	settled := make([]map[string]any, 0, len(results))
	for _, result := range results {
		settled = append(settled, map[string]any{
			"epochDay":    result.EpochDay,
			"status":      result.Status,
			"totalWeight": result.TotalWeight,
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true, "results": settled})
}

func (s *Server) handleCronNotify(w http.ResponseWriter, r *http.Request) {
	report, err := s.notify.Notify(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}

	resp := map[string]any{
		"ok":        true,
		"posted":    report.Posted,
		"platforms": report.Platforms,
		"today":     report.Today,
		"yesterday": report.Yesterday,
	}
	if len(report.Errors) > 0 {
		resp["errors"] = report.Errors
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleNFTMetadata(w http.ResponseWriter, r *http.Request) {
	claim, minted, err := s.calendar.TodayBillboard(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}

	controller := "No one yet"
	if claim != nil && claim.IsApproved() {
		controller = claim.DisplayName()
	}

	w.Header().Set("Cache-Control", "public, max-age=300, s-maxage=300, stale-while-revalidate=60")
	writeJSON(w, http.StatusOK, map[string]any{
		"name":         "Sigil",
		"symbol":       "SIGIL",
		"description":  fmt.Sprintf("A living NFT. Today's controller: %s. %d minted so far.", controller, minted),
		"external_url": s.cfg.BaseURL,
		"attributes": []map[string]string{
			{"trait_type": "Type", "value": "Living NFT"},
			{"trait_type": "Controller", "value": controller},
			{"trait_type": "Minted", "value": strconv.FormatInt(minted, 10)},
			{"trait_type": "Epoch Day", "value": strconv.FormatInt(entities.CurrentEpochDay(), 10)},
		},
	})
}
