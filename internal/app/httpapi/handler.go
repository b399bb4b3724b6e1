// Package httpapi exposes the marketplace REST API. Every response uses the
// standard envelope so clients can branch on success without inspecting the
// HTTP status.
package httpapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	app "github.com/growthlab-hq/apps-deals-service/internal/app"
	"github.com/growthlab-hq/apps-deals-service/internal/app/domain/celebration"
	"github.com/growthlab-hq/apps-deals-service/internal/app/domain/submission"
	"github.com/growthlab-hq/apps-deals-service/internal/seed"
)

// handler bundles HTTP endpoints for the application services.
type handler struct {
	app        *app.Application
	categories []seed.Category
}

// NewHandler returns a router exposing the marketplace REST API.
func NewHandler(application *app.Application) http.Handler {
	h := &handler{
		app:        application,
		categories: seed.DefaultCategories(),
	}

	r := mux.NewRouter()
	r.HandleFunc("/healthz", h.health).Methods(http.MethodGet)

	r.HandleFunc("/apps", h.listApps).Methods(http.MethodGet)
	r.HandleFunc("/apps", h.submitApp).Methods(http.MethodPost)
	r.HandleFunc("/apps/{id}", h.getApp).Methods(http.MethodGet)

	r.HandleFunc("/deals", h.listDeals).Methods(http.MethodGet)
	r.HandleFunc("/deals", h.submitDeal).Methods(http.MethodPost)
	r.HandleFunc("/deals/{id}", h.getDeal).Methods(http.MethodGet)
	r.HandleFunc("/deals/{id}/claim", h.claimDeal).Methods(http.MethodPost)

	r.HandleFunc("/categories", h.listCategories).Methods(http.MethodGet)
	r.HandleFunc("/startups/{id}", h.startupProfile).Methods(http.MethodGet)
	r.HandleFunc("/startups/{id}/badge", h.startupBadge).Methods(http.MethodGet)

	r.HandleFunc("/submissions", h.listSubmissions).Methods(http.MethodGet)
	r.HandleFunc("/submissions/{id}/approve", h.approveSubmission).Methods(http.MethodPost)
	r.HandleFunc("/submissions/{id}/reject", h.rejectSubmission).Methods(http.MethodPost)
	r.HandleFunc("/submissions/{id}/request-revision", h.requestRevision).Methods(http.MethodPost)

	r.HandleFunc("/celebrations/next", h.nextCelebration).Methods(http.MethodGet)
	r.HandleFunc("/celebrations/dismiss", h.dismissCelebration).Methods(http.MethodPost)

	return r
}

func (h *handler) health(w http.ResponseWriter, _ *http.Request) {
	writeData(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"service":   "apps-deals",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	}, nil)
}

// --- Listings ---------------------------------------------------------------

func (h *handler) listApps(w http.ResponseWriter, r *http.Request) {
	apps := h.app.Catalog.ApprovedApps(r.Context())

	category := strings.TrimSpace(r.URL.Query().Get("category"))
	q := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("q")))
	if category != "" || q != "" {
		filtered := apps[:0:0]
		for _, a := range apps {
			if category != "" && !strings.EqualFold(a.Category, category) {
				continue
			}
			if q != "" && !strings.Contains(strings.ToLower(a.Name), q) &&
				!strings.Contains(strings.ToLower(a.Description), q) {
				continue
			}
			filtered = append(filtered, a)
		}
		apps = filtered
	}

	writeData(w, http.StatusOK, apps, listMeta(len(apps)))
}

func (h *handler) getApp(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	a, ok := h.app.Catalog.AppByID(r.Context(), id)
	if !ok {
		writeError(w, http.StatusNotFound, fmt.Errorf("app %s not found", id))
		return
	}
	writeData(w, http.StatusOK, a, nil)
}

func (h *handler) listDeals(w http.ResponseWriter, r *http.Request) {
	deals := h.app.Catalog.ApprovedDeals(r.Context())

	category := strings.TrimSpace(r.URL.Query().Get("category"))
	q := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("q")))
	if category != "" || q != "" {
		filtered := deals[:0:0]
		for _, d := range deals {
			if category != "" && !strings.EqualFold(d.Category, category) {
				continue
			}
			if q != "" && !strings.Contains(strings.ToLower(d.Title), q) &&
				!strings.Contains(strings.ToLower(d.Description), q) {
				continue
			}
			filtered = append(filtered, d)
		}
		deals = filtered
	}

	writeData(w, http.StatusOK, deals, listMeta(len(deals)))
}

func (h *handler) getDeal(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	d, ok := h.app.Catalog.DealByID(r.Context(), id)
	if !ok {
		writeError(w, http.StatusNotFound, fmt.Errorf("deal %s not found", id))
		return
	}
	writeData(w, http.StatusOK, d, nil)
}

func (h *handler) claimDeal(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	var payload struct {
		UserID string `json:"userId"`
		Email  string `json:"email"`
	}
	if err := decodeJSON(r.Body, &payload); err != nil && err != io.EOF {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	claim, ok := h.app.Catalog.ClaimDeal(r.Context(), id, payload.UserID, payload.Email)
	if !ok {
		writeError(w, http.StatusNotFound, fmt.Errorf("deal %s not found", id))
		return
	}
	writeData(w, http.StatusOK, claim, nil)
}

func (h *handler) listCategories(w http.ResponseWriter, _ *http.Request) {
	writeData(w, http.StatusOK, h.categories, listMeta(len(h.categories)))
}

// --- Startups ---------------------------------------------------------------

type startupProfile struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Verified  bool     `json:"verified,omitempty"`
	About     string   `json:"about,omitempty"`
	Website   string   `json:"website,omitempty"`
	AppIDs    []string `json:"appIds"`
	DealIDs   []string `json:"dealIds"`
	AppCount  int      `json:"appCount"`
	DealCount int      `json:"dealCount"`
}

type startupBadge struct {
	HasApps       bool    `json:"hasApps"`
	AppCount      int     `json:"appCount"`
	HasDeals      bool    `json:"hasDeals"`
	DealCount     int     `json:"dealCount"`
	IsVerified    bool    `json:"isVerified,omitempty"`
	AverageRating float64 `json:"averageRating,omitempty"`
}

func (h *handler) resolveStartup(r *http.Request, id string) (startupProfile, float64, bool) {
	profile := startupProfile{ID: id, AppIDs: []string{}, DealIDs: []string{}}
	var ratingSum float64
	var ratingCount int

	for _, a := range h.app.Catalog.ApprovedApps(r.Context()) {
		if a.Publisher.ID != id {
			continue
		}
		profile.Name = a.Publisher.Name
		profile.Verified = profile.Verified || a.Publisher.Verified
		if profile.About == "" {
			profile.About = a.Publisher.About
		}
		if profile.Website == "" {
			profile.Website = a.Publisher.Website
		}
		profile.AppIDs = append(profile.AppIDs, a.ID)
		if a.Rating > 0 {
			ratingSum += a.Rating
			ratingCount++
		}
	}
	for _, d := range h.app.Catalog.ApprovedDeals(r.Context()) {
		if d.Publisher.ID != id {
			continue
		}
		if profile.Name == "" {
			profile.Name = d.Publisher.Name
		}
		profile.Verified = profile.Verified || d.Publisher.Verified
		profile.DealIDs = append(profile.DealIDs, d.ID)
	}

	profile.AppCount = len(profile.AppIDs)
	profile.DealCount = len(profile.DealIDs)

	var avg float64
	if ratingCount > 0 {
		avg = ratingSum / float64(ratingCount)
	}
	return profile, avg, profile.AppCount > 0 || profile.DealCount > 0
}

func (h *handler) startupProfile(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	profile, _, ok := h.resolveStartup(r, id)
	if !ok {
		writeError(w, http.StatusNotFound, fmt.Errorf("startup %s not found", id))
		return
	}
	writeData(w, http.StatusOK, profile, nil)
}

func (h *handler) startupBadge(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	profile, avg, ok := h.resolveStartup(r, id)
	if !ok {
		writeError(w, http.StatusNotFound, fmt.Errorf("startup %s not found", id))
		return
	}
	writeData(w, http.StatusOK, startupBadge{
		HasApps:       profile.AppCount > 0,
		AppCount:      profile.AppCount,
		HasDeals:      profile.DealCount > 0,
		DealCount:     profile.DealCount,
		IsVerified:    profile.Verified,
		AverageRating: avg,
	}, nil)
}

// --- Submissions ------------------------------------------------------------

type submitAppRequest struct {
	ID             string                 `json:"id"`
	SubmittedBy    string                 `json:"submittedBy"`
	SubmitterEmail string                 `json:"submitterEmail"`
	Priority       submission.Priority    `json:"priority"`
	Data           submission.AppFormData `json:"data"`
}

type submitDealRequest struct {
	ID             string                  `json:"id"`
	SubmittedBy    string                  `json:"submittedBy"`
	SubmitterEmail string                  `json:"submitterEmail"`
	Priority       submission.Priority     `json:"priority"`
	Data           submission.DealFormData `json:"data"`
}

func (h *handler) submitApp(w http.ResponseWriter, r *http.Request) {
	var payload submitAppRequest
	if err := decodeJSON(r.Body, &payload); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if payload.Data.Title == "" || payload.Data.Company == "" {
		writeError(w, http.StatusBadRequest, fmt.Errorf("title and company are required"))
		return
	}

	sub := submission.Submission{
		ID:             submissionID(payload.ID),
		Kind:           submission.KindApp,
		Title:          payload.Data.Title,
		Company:        payload.Data.Company,
		Description:    payload.Data.Description,
		Status:         submission.StatusPending,
		Priority:       defaultPriority(payload.Priority),
		SubmittedAt:    time.Now().UTC(),
		SubmittedBy:    payload.SubmittedBy,
		SubmitterEmail: firstNonEmpty(payload.SubmitterEmail, payload.Data.ContactEmail),
		AppData:        &payload.Data,
	}
	h.app.Submissions.Add(r.Context(), sub)
	writeMessage(w, http.StatusCreated, map[string]string{"id": sub.ID}, "submission received")
}

func (h *handler) submitDeal(w http.ResponseWriter, r *http.Request) {
	var payload submitDealRequest
	if err := decodeJSON(r.Body, &payload); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if payload.Data.Title == "" || payload.Data.Company == "" {
		writeError(w, http.StatusBadRequest, fmt.Errorf("title and company are required"))
		return
	}

	sub := submission.Submission{
		ID:             submissionID(payload.ID),
		Kind:           submission.KindDeal,
		Title:          payload.Data.Title,
		Company:        payload.Data.Company,
		Description:    payload.Data.Description,
		Status:         submission.StatusPending,
		Priority:       defaultPriority(payload.Priority),
		SubmittedAt:    time.Now().UTC(),
		SubmittedBy:    payload.SubmittedBy,
		SubmitterEmail: firstNonEmpty(payload.SubmitterEmail, payload.Data.ContactEmail),
		DealData:       &payload.Data,
	}
	h.app.Submissions.Add(r.Context(), sub)
	writeMessage(w, http.StatusCreated, map[string]string{"id": sub.ID}, "submission received")
}

func (h *handler) listSubmissions(w http.ResponseWriter, r *http.Request) {
	subs := h.app.Submissions.List(r.Context())
	writeData(w, http.StatusOK, subs, listMeta(len(subs)))
}

func (h *handler) approveSubmission(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	updated := h.app.Submissions.Approve(r.Context(), id)
	sub, found := findSubmission(updated, id)
	if !found {
		writeError(w, http.StatusNotFound, fmt.Errorf("submission %s not found", id))
		return
	}
	writeData(w, http.StatusOK, sub, nil)
}

func (h *handler) rejectSubmission(w http.ResponseWriter, r *http.Request) {
	h.review(w, r, h.app.Submissions.Reject)
}

func (h *handler) requestRevision(w http.ResponseWriter, r *http.Request) {
	h.review(w, r, h.app.Submissions.RequestRevision)
}

func (h *handler) review(w http.ResponseWriter, r *http.Request, apply func(ctx context.Context, id, notes string) []submission.Submission) {
	id := mux.Vars(r)["id"]
	var payload struct {
		Notes string `json:"notes"`
	}
	if err := decodeJSON(r.Body, &payload); err != nil && err != io.EOF {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	updated := apply(r.Context(), id, payload.Notes)
	sub, found := findSubmission(updated, id)
	if !found {
		writeError(w, http.StatusNotFound, fmt.Errorf("submission %s not found", id))
		return
	}
	writeData(w, http.StatusOK, sub, nil)
}

func findSubmission(subs []submission.Submission, id string) (submission.Submission, bool) {
	for _, sub := range subs {
		if sub.ID == id {
			return sub, true
		}
	}
	return submission.Submission{}, false
}

// --- Celebrations -----------------------------------------------------------

func (h *handler) nextCelebration(w http.ResponseWriter, r *http.Request) {
	ev, ok := h.app.Celebrations.Next(r.Context())
	if !ok {
		writeMessage(w, http.StatusOK, nil, "no pending celebration")
		return
	}
	writeData(w, http.StatusOK, ev, nil)
}

func (h *handler) dismissCelebration(w http.ResponseWriter, r *http.Request) {
	var ev celebration.Event
	if err := decodeJSON(r.Body, &ev); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if ev.AppID == "" || ev.Kind == "" {
		writeError(w, http.StatusBadRequest, fmt.Errorf("kind and appId are required"))
		return
	}
	h.app.Celebrations.Dismiss(r.Context(), ev)
	writeMessage(w, http.StatusOK, nil, "celebration dismissed")
}

// --- Helpers ----------------------------------------------------------------

func submissionID(requested string) string {
	if strings.TrimSpace(requested) != "" {
		return requested
	}
	return "sub-" + uuid.NewString()
}

func defaultPriority(p submission.Priority) submission.Priority {
	if p == "" {
		return submission.PriorityNormal
	}
	return p
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func decodeJSON(body io.ReadCloser, dst interface{}) error {
	defer body.Close()
	dec := json.NewDecoder(body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}
