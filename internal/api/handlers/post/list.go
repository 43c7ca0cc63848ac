package post

import (
	"net/http"
	"strconv"

	"Socialsphere/internal/api/handlers"
	"Socialsphere/internal/api/middleware"
	"Socialsphere/internal/core/feed"
)

// ListResponse is the paginated listing envelope
type ListResponse struct {
	Next     *string         `json:"next"`
	Previous *string         `json:"previous"`
	Results  []feed.PostView `json:"results"`
	Count    int             `json:"count"`
}

// ListHandler handles the post listing
type ListHandler struct {
	service feed.Service
}

// NewListHandler creates a new list handler
func NewListHandler(service feed.Service) *ListHandler {
	return &ListHandler{service: service}
}

// HandleList handles GET /api/posts?page=N
func (h *ListHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	page := 1
	if raw := r.URL.Query().Get("page"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			handlers.WriteError(w, http.StatusNotFound, "NotFound", "Invalid page.")
			return
		}
		page = n
	}

	result, err := h.service.ListPosts(r.Context(), middleware.GetPrincipal(r), page)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	resp := ListResponse{Count: result.Count, Results: result.Results}
	if result.HasNext {
		resp.Next = pageURL(r, result.Page+1)
	}
	if result.HasPrevious {
		resp.Previous = pageURL(r, result.Page-1)
	}
	handlers.WriteJSON(w, http.StatusOK, resp)
}

// pageURL builds an absolute link to another page; page 1 carries no page parameter
func pageURL(r *http.Request, page int) *string {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if proto := r.Header.Get("X-Forwarded-Proto"); proto != "" {
		scheme = proto
	}

	q := r.URL.Query()
	if page <= 1 {
		q.Del("page")
	} else {
		q.Set("page", strconv.Itoa(page))
	}

	u := scheme + "://" + r.Host + r.URL.Path
	if encoded := q.Encode(); encoded != "" {
		u += "?" + encoded
	}
	return &u
}
