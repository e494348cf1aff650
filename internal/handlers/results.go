package handlers

import (
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"encoding/xml"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/drodber/results-service/internal/entity"
	"github.com/drodber/results-service/internal/middleware"
	"github.com/drodber/results-service/internal/repo"
	"github.com/drodber/results-service/internal/services"
	"github.com/gin-gonic/gin"
)

// RutaAPI is the base path of the results collection.
const RutaAPI = "/api/v1/results"

// StatusContentReturned distinguishes "update succeeded and here is the
// new state" from a plain 204 acknowledgement.
const StatusContentReturned = 209

const (
	FormatJSON = "json"
	FormatXML  = "xml"

	headerETag         = "ETag"
	headerCacheControl = "Cache-Control"
	headerAllow        = "Allow"

	forbiddenMessage = "`Forbidden`: you don't have permission to access"
)

type ResultHandler struct {
	resultService *services.ResultService
}

func NewResultHandler(resultService *services.ResultService) *ResultHandler {
	return &ResultHandler{resultService: resultService}
}

// resultBody is the single-item envelope: {"result": {...}}.
type resultBody struct {
	XMLName xml.Name      `json:"-" xml:"response"`
	Result  entity.Result `json:"result" xml:"result"`
}

// resultWrap is one element of the collection envelope, each record
// wrapped the same way an item response wraps it.
type resultWrap struct {
	Result entity.Result `json:"result" xml:"result"`
}

type resultsBody struct {
	XMLName xml.Name     `json:"-" xml:"response"`
	Results []resultWrap `json:"results" xml:"results>result"`
}

// resultRequest is the create/update payload. Pointer fields make
// "omitted" distinguishable from a zero value.
type resultRequest struct {
	Result *int64  `json:"result" xml:"result"`
	User   *int64  `json:"user" xml:"user"`
	Time   *string `json:"time" xml:"time"`
}

// formatOf picks the serialization from the .json/.xml path suffix,
// defaulting to json.
func formatOf(c *gin.Context) string {
	path := c.Request.URL.Path
	if strings.HasSuffix(path, "."+FormatXML) || strings.Contains(path, "."+FormatXML+"/") {
		return FormatXML
	}
	return FormatJSON
}

// trimFormat strips a trailing .json/.xml from a path parameter.
func trimFormat(param string) string {
	for _, format := range []string{"." + FormatJSON, "." + FormatXML} {
		if strings.HasSuffix(param, format) {
			return strings.TrimSuffix(param, format)
		}
	}
	return param
}

func respond(c *gin.Context, code int, format string, payload any) {
	if format == FormatXML {
		c.XML(code, payload)
		return
	}
	c.JSON(code, payload)
}

func respondError(c *gin.Context, format string, code int) {
	respond(c, code, format, entity.NewMessage(code, http.StatusText(code)))
}

func respondForbidden(c *gin.Context, format string) {
	respond(c, http.StatusForbidden, format, entity.NewMessage(http.StatusForbidden, forbiddenMessage))
}

// etagOf fingerprints the serialized payload the same way for both
// formats, so the validator tracks content, not representation.
func etagOf(payload any) string {
	raw, err := json.Marshal(payload)
	if err != nil {
		return ""
	}
	sum := md5.Sum(raw)
	return hex.EncodeToString(sum[:])
}

func getPrincipal(c *gin.Context) (entity.Principal, bool) {
	value, exists := c.Get(middleware.PrincipalKey)
	if !exists {
		return entity.Principal{}, false
	}
	principal, ok := value.(entity.Principal)
	return principal, ok
}

func validSort(sort string) bool {
	switch sort {
	case "id", "result", "user":
		return true
	}
	return false
}

// ListResults handles GET on the collection: admins see every record,
// everyone else only their own, ordered ascending by the sort key.
func (h *ResultHandler) ListResults(c *gin.Context) {
	format := formatOf(c)

	principal, ok := getPrincipal(c)
	if !ok {
		respondError(c, format, http.StatusUnauthorized)
		return
	}

	sort := c.Param("sort")
	if sort == "" {
		sort = "id"
	}
	if !validSort(sort) {
		respondError(c, format, http.StatusNotFound)
		return
	}

	results, err := h.resultService.ListResults(c.Request.Context(), principal, sort)
	if err != nil {
		if errors.Is(err, repo.ErrResultNotFound) {
			respondError(c, format, http.StatusNotFound)
			return
		}
		respondError(c, format, http.StatusInternalServerError)
		return
	}

	body := resultsBody{Results: make([]resultWrap, 0, len(results))}
	for _, result := range results {
		body.Results = append(body.Results, resultWrap{Result: result})
	}

	c.Header(headerCacheControl, "must-revalidate")
	c.Header(headerETag, etagOf(results))
	respond(c, http.StatusOK, format, body)
}

// GetResult handles GET on an item.
func (h *ResultHandler) GetResult(c *gin.Context) {
	format := formatOf(c)

	principal, ok := getPrincipal(c)
	if !ok {
		respondError(c, format, http.StatusUnauthorized)
		return
	}

	id, err := strconv.ParseInt(trimFormat(c.Param("id")), 10, 64)
	if err != nil {
		respondError(c, format, http.StatusNotFound)
		return
	}

	result, err := h.resultService.GetResult(c.Request.Context(), principal, id)
	if err != nil {
		switch {
		case errors.Is(err, repo.ErrResultNotFound):
			respondError(c, format, http.StatusNotFound)
		case errors.Is(err, services.ErrPermissionDenied):
			respondForbidden(c, format)
		default:
			respondError(c, format, http.StatusInternalServerError)
		}
		return
	}

	c.Header(headerCacheControl, "must-revalidate")
	c.Header(headerETag, etagOf(result))
	respond(c, http.StatusOK, format, resultBody{Result: result})
}

// CreateResult handles POST on the collection. An unreadable body is
// treated as an empty payload, which the incompleteness check turns
// into a 422.
func (h *ResultHandler) CreateResult(c *gin.Context) {
	format := formatOf(c)

	principal, ok := getPrincipal(c)
	if !ok {
		respondError(c, format, http.StatusUnauthorized)
		return
	}

	var req resultRequest
	_ = c.ShouldBindJSON(&req)

	// An incomplete payload is reported before a malformed time, so the
	// format is only checked once the required fields are present.
	var resultTime *time.Time
	if req.Result != nil && req.User != nil {
		t, err := parseTime(req.Time)
		if err != nil {
			respondError(c, format, http.StatusBadRequest)
			return
		}
		resultTime = t
	}

	result, err := h.resultService.CreateResult(c.Request.Context(), principal, req.Result, req.User, resultTime)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrIncompletePayload):
			respondError(c, format, http.StatusUnprocessableEntity)
		case errors.Is(err, repo.ErrResultExists), errors.Is(err, repo.ErrUserNotFound):
			respondError(c, format, http.StatusBadRequest)
		default:
			respondError(c, format, http.StatusInternalServerError)
		}
		return
	}

	c.Header("Location", RutaAPI+"/"+strconv.FormatInt(result.ID, 10))
	respond(c, http.StatusCreated, format, resultBody{Result: result})
}

// UpdateResult handles PUT on an item with merge semantics: absent
// fields keep their stored value.
func (h *ResultHandler) UpdateResult(c *gin.Context) {
	format := formatOf(c)

	principal, ok := getPrincipal(c)
	if !ok {
		respondError(c, format, http.StatusUnauthorized)
		return
	}

	id, err := strconv.ParseInt(trimFormat(c.Param("id")), 10, 64)
	if err != nil {
		respondError(c, format, http.StatusNotFound)
		return
	}

	var req resultRequest
	_ = c.ShouldBindJSON(&req)

	resultTime, err := parseTime(req.Time)
	if err != nil {
		respondError(c, format, http.StatusBadRequest)
		return
	}

	upd := services.ResultUpdate{
		Result: req.Result,
		UserID: req.User,
		Time:   resultTime,
	}

	result, err := h.resultService.UpdateResult(c.Request.Context(), principal, id, upd)
	if err != nil {
		switch {
		case errors.Is(err, repo.ErrResultNotFound):
			respondError(c, format, http.StatusNotFound)
		case errors.Is(err, services.ErrPermissionDenied):
			respondForbidden(c, format)
		case errors.Is(err, repo.ErrResultExists), errors.Is(err, repo.ErrUserNotFound):
			respondError(c, format, http.StatusBadRequest)
		default:
			respondError(c, format, http.StatusInternalServerError)
		}
		return
	}

	respond(c, StatusContentReturned, format, resultBody{Result: result})
}

// DeleteResult handles DELETE on an item.
func (h *ResultHandler) DeleteResult(c *gin.Context) {
	format := formatOf(c)

	principal, ok := getPrincipal(c)
	if !ok {
		respondError(c, format, http.StatusUnauthorized)
		return
	}

	id, err := strconv.ParseInt(trimFormat(c.Param("id")), 10, 64)
	if err != nil {
		respondError(c, format, http.StatusNotFound)
		return
	}

	err = h.resultService.DeleteResult(c.Request.Context(), principal, id)
	if err != nil {
		switch {
		case errors.Is(err, repo.ErrResultNotFound):
			respondError(c, format, http.StatusNotFound)
		case errors.Is(err, services.ErrPermissionDenied):
			respondForbidden(c, format)
		default:
			respondError(c, format, http.StatusInternalServerError)
		}
		return
	}

	c.Status(http.StatusNoContent)
}

// Options advertises the methods allowed at collection or item scope.
// No authentication required.
func (h *ResultHandler) Options(c *gin.Context) {
	var id int64
	if raw := trimFormat(c.Param("id")); raw != "" {
		var err error
		id, err = strconv.ParseInt(raw, 10, 64)
		if err != nil {
			respondError(c, formatOf(c), http.StatusNotFound)
			return
		}
	}

	methods := []string{http.MethodGet, http.MethodPost}
	if id != 0 {
		methods = []string{http.MethodGet, http.MethodPut, http.MethodDelete}
	}
	methods = append(methods, http.MethodOptions)

	c.Header(headerAllow, strings.Join(methods, ", "))
	c.Header(headerCacheControl, "public, immutable")
	c.Status(http.StatusNoContent)
}

func parseTime(raw *string) (*time.Time, error) {
	if raw == nil {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, *raw)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
