package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/zulandar/prodline/internal/lifecycle"
	"gorm.io/gorm"
)

// Actor headers. Authentication is an external concern; the server trusts
// the values placed on the request by the deployment's auth boundary.
const (
	headerActor = "X-Prodline-Actor"
	headerRole  = "X-Prodline-Role"
)

// registerRoutes sets up all API routes on the Gin router.
func registerRoutes(router *gin.Engine, db *gorm.DB) {
	items := router.Group("/api/items")

	items.POST("", handleCreate(db))
	items.GET("", handleList(db))
	items.GET("/:id", handleGet(db))
	items.PATCH("/:id", handleUpdateFields(db))

	items.POST("/:id/transition", handleTransition(db))
	items.POST("/:id/upgrade", handleAutoUpgrade(db))
	items.GET("/:id/readiness", handleReadiness(db))

	items.POST("/:id/review/request", handleReviewAction(db, "request"))
	items.POST("/:id/review/approve", handleReviewAction(db, "approve"))
	items.POST("/:id/review/reject", handleReviewAction(db, "reject"))
	items.POST("/:id/review/cancel", handleReviewAction(db, "cancel"))
	items.GET("/:id/review/log", handleReviewLog(db))

	items.POST("/:id/enhance", handleEnhance(db))
	items.GET("/:id/chain", handleChain(db))
	items.POST("/:id/promote", handlePromote(db))
	items.POST("/:id/reject", handleRejectConcept(db))

	items.POST("/:id/timeline", handleAddTimeline(db))
	items.GET("/:id/timeline", handleListTimeline(db))
}

func actorFrom(c *gin.Context) lifecycle.Actor {
	return lifecycle.Actor{
		ID:   c.GetHeader(headerActor),
		Role: c.GetHeader(headerRole),
	}
}

// writeError maps engine error kinds to HTTP statuses and renders the typed
// payload so callers can show a specific message.
func writeError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch lifecycle.KindOf(err) {
	case lifecycle.KindValidation:
		status = http.StatusBadRequest
	case lifecycle.KindIncompleteData:
		status = http.StatusUnprocessableEntity
	case lifecycle.KindPermission:
		status = http.StatusForbidden
	case lifecycle.KindNotFound:
		status = http.StatusNotFound
	case lifecycle.KindConflict:
		status = http.StatusConflict
	}

	body := gin.H{"kind": string(lifecycle.KindOf(err)), "message": err.Error()}
	if e, ok := err.(*lifecycle.Error); ok && len(e.Fields) > 0 {
		body["fields"] = e.Fields
	}
	c.JSON(status, body)
}

func handleCreate(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Name          string `json:"name"`
			Description   string `json:"description"`
			Type          string `json:"type"`
			Owner         string `json:"owner"`
			ReviewEnabled bool   `json:"review_enabled"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"kind": "validation", "message": err.Error()})
			return
		}
		item, err := lifecycle.Create(db, lifecycle.CreateOpts{
			Name:          req.Name,
			Description:   req.Description,
			Type:          req.Type,
			Owner:         req.Owner,
			ReviewEnabled: req.ReviewEnabled,
		})
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusCreated, item)
	}
}

func handleList(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		items, err := lifecycle.List(db, lifecycle.ListFilters{
			Owner: c.Query("owner"),
			Type:  c.Query("type"),
			Phase: c.Query("phase"),
		})
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, items)
	}
}

func handleGet(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		item, err := lifecycle.Get(db, c.Param("id"))
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, item)
	}
}

func handleUpdateFields(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var updates map[string]interface{}
		if err := c.ShouldBindJSON(&updates); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"kind": "validation", "message": err.Error()})
			return
		}
		item, err := lifecycle.UpdateFields(db, c.Param("id"), updates)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, item)
	}
}

func handleTransition(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			TargetPhase   string `json:"target_phase"`
			ExpectedPhase string `json:"expected_phase"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"kind": "validation", "message": err.Error()})
			return
		}
		item, err := lifecycle.TransitionPhase(db, c.Param("id"), req.TargetPhase, req.ExpectedPhase)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, item)
	}
}

func handleAutoUpgrade(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		item, err := lifecycle.AutoUpgrade(db, c.Param("id"))
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, item)
	}
}

func handleReadiness(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		report, err := lifecycle.Readiness(db, c.Param("id"))
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, report)
	}
}

func handleReviewAction(db *gorm.DB, action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor := actorFrom(c)
		id := c.Param("id")

		var item interface{}
		var err error
		switch action {
		case "request":
			item, err = lifecycle.RequestReview(db, id, actor)
		case "approve":
			item, err = lifecycle.ApproveReview(db, id, actor)
		case "reject":
			var req struct {
				Reason string `json:"reason"`
			}
			if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
				c.JSON(http.StatusBadRequest, gin.H{"kind": "validation", "message": bindErr.Error()})
				return
			}
			item, err = lifecycle.RejectReview(db, id, actor, req.Reason)
		case "cancel":
			item, err = lifecycle.CancelReview(db, id, actor)
		}
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, item)
	}
}

func handleReviewLog(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		events, err := lifecycle.ReviewLog(db, c.Param("id"))
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, events)
	}
}

func handleEnhance(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			VersionNotes string `json:"version_notes"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"kind": "validation", "message": err.Error()})
			return
		}
		item, err := lifecycle.Enhance(db, c.Param("id"), req.VersionNotes)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusCreated, item)
	}
}

func handleChain(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		chain, err := lifecycle.Chain(db, c.Param("id"))
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, chain)
	}
}

func handlePromote(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Name        string `json:"name"`
			Description string `json:"description"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"kind": "validation", "message": err.Error()})
			return
		}
		item, err := lifecycle.PromoteConcept(db, c.Param("id"), req.Name, req.Description)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusCreated, item)
	}
}

func handleRejectConcept(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Reason  string `json:"reason"`
			Archive bool   `json:"archive"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"kind": "validation", "message": err.Error()})
			return
		}
		item, err := lifecycle.RejectConcept(db, c.Param("id"), req.Reason, req.Archive)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, item)
	}
}

func handleAddTimeline(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Horizon    string `json:"horizon"`
			Title      string `json:"title"`
			Status     string `json:"status"`
			Difficulty int    `json:"difficulty"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"kind": "validation", "message": err.Error()})
			return
		}
		item, err := lifecycle.AddTimelineItem(db, c.Param("id"), lifecycle.TimelineOpts{
			Horizon:    req.Horizon,
			Title:      req.Title,
			Status:     req.Status,
			Difficulty: req.Difficulty,
		})
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusCreated, item)
	}
}

func handleListTimeline(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		items, err := lifecycle.ListTimelineItems(db, c.Param("id"))
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, items)
	}
}
