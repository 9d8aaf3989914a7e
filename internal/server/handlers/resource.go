// Package handlers holds the HTTP controllers of the API.
package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/leafline/internal/repository"
)

// Creator is a create payload that builds a new entity.
type Creator[E any] interface {
	Entity() E
}

// Patcher is an update payload that writes its present fields onto an entity.
type Patcher[E any] interface {
	Apply(*E)
}

// KeyParser converts the :id path segment into a key.
type KeyParser[K comparable] func(string) (K, error)

// IntKey parses integer identifiers.
func IntKey(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, invalidField("id", "type")
	}
	return id, nil
}

// StringKey accepts any non-blank identifier.
func StringKey(raw string) (string, error) {
	if strings.TrimSpace(raw) == "" {
		return "", invalidField("id", "required")
	}
	return raw, nil
}

// Resource serves the uniform CRUD routes of one entity. Each handler makes a
// single gateway call.
type Resource[E any, K comparable, C Creator[E], U Patcher[E]] struct {
	name    string
	store   repository.Store[E, K]
	key     KeyParser[K]
	filters []string
	logger  *zap.Logger
}

// NewResource builds the controller for one entity. name is used in messages.
func NewResource[E any, K comparable, C Creator[E], U Patcher[E]](name string, store repository.Store[E, K], key KeyParser[K], logger *zap.Logger) *Resource[E, K, C, U] {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Resource[E, K, C, U]{name: name, store: store, key: key, logger: logger}
}

// FilterBy lets List narrow results with ?field=value on the given text fields.
func (r *Resource[E, K, C, U]) FilterBy(fields ...string) *Resource[E, K, C, U] {
	r.filters = append(r.filters, fields...)
	return r
}

// Register mounts POST/GET on the collection and GET/PUT/DELETE on /:id.
func (r *Resource[E, K, C, U]) Register(g *gin.RouterGroup) {
	g.POST("", r.Create)
	g.GET("", r.List)
	g.GET("/:id", r.Get)
	g.PUT("/:id", r.Update)
	g.DELETE("/:id", r.Delete)
}

// Create responds to POST with the stored entity and its assigned key.
func (r *Resource[E, K, C, U]) Create(c *gin.Context) {
	var payload C
	if err := bindJSON(c, &payload); err != nil {
		r.logger.Warn("invalid create payload", zap.String("resource", r.name), zap.Error(err))
		respondError(c, r.logger, r.name, err)
		return
	}

	entity := payload.Entity()
	if err := r.store.Create(c.Request.Context(), &entity); err != nil {
		respondError(c, r.logger, r.name, err)
		return
	}
	c.JSON(http.StatusCreated, entity)
}

// List responds with one page of entities, narrowed by the first filter
// present in the query.
func (r *Resource[E, K, C, U]) List(c *gin.Context) {
	page, err := pageFrom(c)
	if err != nil {
		respondError(c, r.logger, r.name, err)
		return
	}

	for _, field := range r.filters {
		if value, ok := c.GetQuery(field); ok {
			rows, err := r.store.Find(c.Request.Context(), field, value, page)
			if err != nil {
				respondError(c, r.logger, r.name, err)
				return
			}
			c.JSON(http.StatusOK, rows)
			return
		}
	}

	rows, err := r.store.List(c.Request.Context(), page)
	if err != nil {
		respondError(c, r.logger, r.name, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

// Get responds with the entity named by :id.
func (r *Resource[E, K, C, U]) Get(c *gin.Context) {
	key, err := r.key(c.Param("id"))
	if err != nil {
		respondError(c, r.logger, r.name, err)
		return
	}

	entity, err := r.store.Get(c.Request.Context(), key)
	if err != nil {
		respondError(c, r.logger, r.name, err)
		return
	}
	c.JSON(http.StatusOK, entity)
}

// Update applies the fields present in the body and responds with the result.
func (r *Resource[E, K, C, U]) Update(c *gin.Context) {
	key, err := r.key(c.Param("id"))
	if err != nil {
		respondError(c, r.logger, r.name, err)
		return
	}

	var patch U
	if err := bindJSON(c, &patch); err != nil {
		r.logger.Warn("invalid update payload", zap.String("resource", r.name), zap.Error(err))
		respondError(c, r.logger, r.name, err)
		return
	}

	entity, err := r.store.Update(c.Request.Context(), key, func(e *E) error {
		patch.Apply(e)
		return nil
	})
	if err != nil {
		respondError(c, r.logger, r.name, err)
		return
	}
	c.JSON(http.StatusOK, entity)
}

// Delete removes the entity named by :id and responds with its last state.
func (r *Resource[E, K, C, U]) Delete(c *gin.Context) {
	key, err := r.key(c.Param("id"))
	if err != nil {
		respondError(c, r.logger, r.name, err)
		return
	}

	entity, err := r.store.Delete(c.Request.Context(), key)
	if err != nil {
		respondError(c, r.logger, r.name, err)
		return
	}
	c.JSON(http.StatusOK, entity)
}

// pageFrom reads ?skip and ?limit, defaulting to 0 and repository.DefaultLimit.
func pageFrom(c *gin.Context) (repository.Page, error) {
	skip, err := queryInt(c, "skip", 0)
	if err != nil {
		return repository.Page{}, err
	}
	limit, err := queryInt(c, "limit", repository.DefaultLimit)
	if err != nil {
		return repository.Page{}, err
	}
	return repository.Page{Skip: skip, Limit: limit}, nil
}

func queryInt(c *gin.Context, name string, fallback int) (int, error) {
	raw, ok := c.GetQuery(name)
	if !ok || raw == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, invalidField(name, "type")
	}
	if v < 0 {
		return 0, invalidField(name, "min")
	}
	return v, nil
}
