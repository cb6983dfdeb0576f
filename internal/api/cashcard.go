package api

import (
	"context"  // Context for cache operations
	"errors"   // Sentinel error checks
	"fmt"      // Key and Location formatting
	"net/http" // HTTP status codes
	"strconv"  // String conversion
	"strings"  // Query parameter handling
	"time"     // Timestamps for log fields

	"cashcard_system/internal/cache"      // Redis read cache
	"cashcard_system/internal/domain"     // Importing domain models
	"cashcard_system/internal/middleware" // Context keys
	"cashcard_system/internal/store"      // Cash card store

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
)

// principalName returns the authenticated principal from the context, if any.
func principalName(c *gin.Context) (string, bool) {
	v, exists := c.Get(middleware.PrincipalKey)
	if !exists {
		return "", false
	}
	name, ok := v.(string)
	return name, ok && name != ""
}

// cardLocation builds the canonical URI of a cash card.
func cardLocation(id int64) string {
	return fmt.Sprintf("/cashcards/%d", id)
}

// cardCacheKey is the read-cache key for a single card. Scoped and unscoped
// lookups can differ per principal, so the key carries the viewer.
func cardCacheKey(id int64, owner string, authed bool) string {
	if !authed {
		return fmt.Sprintf("cashcard:%d:anon", id)
	}
	return fmt.Sprintf("cashcard:%d:owner:%s", id, owner)
}

// listCacheKey is the read-cache key for one page of an owner's listing.
func listCacheKey(owner string, page store.Page) string {
	order := "asc"
	if page.Desc {
		order = "desc"
	}
	return fmt.Sprintf("cashcards:owner:%s:page:%d:size:%d:sort:%s:%s",
		owner, page.Number, page.Size, page.Sort, order)
}

// invalidateCard drops the cached reads a mutation of the card touches: both
// single-card views plus the first pages of the owner's default listing
// (simple version: only the default page size and sort are tracked).
func invalidateCard(rdb *cache.Cache, id int64, owner *string) {
	ctx := context.Background()
	keys := []string{cardCacheKey(id, "", false)}
	if owner != nil {
		keys = append(keys, cardCacheKey(id, *owner, true))
		page := store.DefaultPage()
		for i := 1; i <= 5; i++ {
			page.Number = i
			keys = append(keys, listCacheKey(*owner, page))
		}
	}
	_ = rdb.Delete(ctx, keys...)
}

// pageFromQuery reads page, page_size, sort and order from the query string,
// falling back to the defaults (first page of 20, amount ascending).
func pageFromQuery(c *gin.Context) store.Page {
	page := store.DefaultPage()
	// If page exists in query
	if p := c.Query("page"); p != "" {
		if v, err := strconv.Atoi(p); err == nil && v > 0 {
			page.Number = v // Set page if valid
		}
	}
	// If page_size exists in query
	if ps := c.Query("page_size"); ps != "" {
		if v, err := strconv.Atoi(ps); err == nil && v > 0 && v <= store.MaxPageSize {
			page.Size = v // Set page size if valid
		}
	}
	// Sort field must be whitelisted
	if s := c.Query("sort"); s != "" && store.ValidSortField(s) {
		page.Sort = s
	}
	if strings.EqualFold(c.Query("order"), "desc") {
		page.Desc = true
	}
	return page
}

// GetCashCardHandler returns a single cash card. Authenticated callers only
// see their own cards; anonymous callers get the unscoped lookup.
func GetCashCardHandler(cards store.CashCardStore, rdb *cache.Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil {
			// A non-numeric id can never name a card
			c.Status(http.StatusNotFound)
			return
		}
		owner, authed := principalName(c)

		ctx := context.Background()
		cacheKey := cardCacheKey(id, owner, authed)
		var cached domain.CashCard
		if found, err := rdb.Get(ctx, cacheKey, &cached); err == nil && found {
			c.JSON(http.StatusOK, cached) // Return cached card
			return
		}

		var card *domain.CashCard
		if authed {
			card, err = cards.FindByIDAndOwner(id, owner) // Owner-scoped lookup
		} else {
			card, err = cards.FindByID(id) // Unscoped anonymous lookup
		}
		if errors.Is(err, store.ErrNotFound) {
			c.Status(http.StatusNotFound)
			return
		}
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"card_id": id,
				"error":   err.Error(),
			}).Error("Cash card lookup failed")
			c.Status(http.StatusInternalServerError)
			return
		}
		_ = rdb.Set(ctx, cacheKey, card) // Cache the card
		c.JSON(http.StatusOK, card)
	}
}

// CreateCashCardHandler persists a new cash card. A client-supplied id that
// already exists, whoever owns that card, is a conflict pointing at the
// existing resource.
func CreateCashCardHandler(cards store.CashCardStore, rdb *cache.Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		var card domain.CashCard // Bind JSON request to struct
		if err := c.ShouldBindJSON(&card); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		// Duplicate id detection, regardless of owner
		if card.ID != nil {
			exists, err := cards.ExistsByID(*card.ID)
			if err != nil {
				logrus.WithFields(logrus.Fields{
					"card_id": *card.ID,
					"error":   err.Error(),
				}).Error("Cash card existence check failed")
				c.Status(http.StatusInternalServerError)
				return
			}
			if exists {
				c.Header("Location", cardLocation(*card.ID)) // Point at the existing card
				c.Status(http.StatusConflict)
				return
			}
		}
		// Owner attribution trusts the request body; an omitted owner falls
		// back to the creating principal, or stays null under anonymous
		// creation.
		if card.Owner == nil {
			if name, ok := principalName(c); ok {
				card.Owner = &name
			}
		}
		if err := cards.Save(&card); err != nil {
			logrus.WithFields(logrus.Fields{
				"error": err.Error(),
			}).Error("Failed to create cash card")
			c.Status(http.StatusInternalServerError)
			return
		}
		// Log successful creation
		logrus.WithFields(logrus.Fields{
			"card_id":   *card.ID,
			"amount":    card.Amount,
			"type":      "create_card",
			"timestamp": time.Now().Format(time.RFC3339),
		}).Info("Cash card created")
		invalidateCard(rdb, *card.ID, card.Owner)
		c.Header("Location", cardLocation(*card.ID))
		c.Status(http.StatusCreated)
	}
}

// ListCashCardsHandler returns one page of the authenticated principal's
// cards, ordered by the requested sort.
func ListCashCardsHandler(cards store.CashCardStore, rdb *cache.Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		owner, authed := principalName(c)
		if !authed {
			// The route guard admits credential-less GETs; with no principal
			// there is nothing to list.
			c.JSON(http.StatusOK, []domain.CashCard{})
			return
		}
		page := pageFromQuery(c)

		ctx := context.Background()
		cacheKey := listCacheKey(owner, page)
		var cached []domain.CashCard
		if found, err := rdb.Get(ctx, cacheKey, &cached); err == nil && found {
			c.JSON(http.StatusOK, cached) // Return cached page
			return
		}

		result, err := cards.FindByOwner(owner, page)
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"owner": owner,
				"error": err.Error(),
			}).Error("Cash card listing failed")
			c.Status(http.StatusInternalServerError)
			return
		}
		if result == nil {
			result = []domain.CashCard{} // An empty page is still an array
		}
		_ = rdb.Set(ctx, cacheKey, result) // Cache the page
		c.JSON(http.StatusOK, result)
	}
}

// UpdateCashCardHandler replaces the amount of a card the principal owns. The
// stored id and owner always survive the update, whatever the body says.
func UpdateCashCardHandler(cards store.CashCardStore, rdb *cache.Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		owner, authed := principalName(c)
		if !authed {
			c.Status(http.StatusUnauthorized)
			return
		}
		id, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil {
			c.Status(http.StatusNotFound)
			return
		}
		var update domain.CashCard // Bind JSON request to struct
		if err := c.ShouldBindJSON(&update); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		existing, err := cards.FindByIDAndOwner(id, owner) // Owner-scoped lookup
		if errors.Is(err, store.ErrNotFound) {
			c.Status(http.StatusNotFound)
			return
		}
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"card_id": id,
				"owner":   owner,
				"error":   err.Error(),
			}).Error("Cash card lookup failed")
			c.Status(http.StatusInternalServerError)
			return
		}
		existing.Amount = update.Amount // Only the amount is replaced
		if err := cards.Save(existing); err != nil {
			logrus.WithFields(logrus.Fields{
				"card_id": id,
				"owner":   owner,
				"error":   err.Error(),
			}).Error("Failed to update cash card")
			c.Status(http.StatusInternalServerError)
			return
		}
		// Log successful update
		logrus.WithFields(logrus.Fields{
			"card_id":   id,
			"owner":     owner,
			"amount":    existing.Amount,
			"type":      "update_card",
			"timestamp": time.Now().Format(time.RFC3339),
		}).Info("Cash card updated")
		invalidateCard(rdb, id, existing.Owner)
		c.Status(http.StatusNoContent)
	}
}

// DeleteCashCardHandler removes a card the principal owns. Deleting a card
// twice yields 404 the second time.
func DeleteCashCardHandler(cards store.CashCardStore, rdb *cache.Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		owner, authed := principalName(c)
		if !authed {
			c.Status(http.StatusUnauthorized)
			return
		}
		id, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil {
			c.Status(http.StatusNotFound)
			return
		}
		exists, err := cards.ExistsByIDAndOwner(id, owner) // Owner-scoped existence check
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"card_id": id,
				"owner":   owner,
				"error":   err.Error(),
			}).Error("Cash card existence check failed")
			c.Status(http.StatusInternalServerError)
			return
		}
		if !exists {
			c.Status(http.StatusNotFound)
			return
		}
		if err := cards.DeleteByID(id); err != nil {
			logrus.WithFields(logrus.Fields{
				"card_id": id,
				"owner":   owner,
				"error":   err.Error(),
			}).Error("Failed to delete cash card")
			c.Status(http.StatusInternalServerError)
			return
		}
		// Log successful deletion
		logrus.WithFields(logrus.Fields{
			"card_id":   id,
			"owner":     owner,
			"type":      "delete_card",
			"timestamp": time.Now().Format(time.RFC3339),
		}).Info("Cash card deleted")
		invalidateCard(rdb, id, &owner)
		c.Status(http.StatusNoContent)
	}
}
