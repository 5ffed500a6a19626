package api

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/RadyaI/learning-tracker-journal/internal/service"
	"github.com/RadyaI/learning-tracker-journal/internal/storage"
)

func PostResource(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := currentUser(c)

		var body service.ResourceRequest
		if err := c.ShouldBindJSON(&body); err != nil {
			HandleError(c, app.Logger(), err, 400, "Invalid request: title, url and type required")
			return
		}

		if err := service.ValidateResourceRequest(&body); err != nil {
			HandleError(c, app.Logger(), err, 400, "Validation failed")
			return
		}

		res, err := service.CreateResource(c.Request.Context(), app.Resources(), user, &body)
		if err != nil {
			HandleError(c, app.Logger(), err, 500, "Failed to save resource")
			return
		}

		HandleSuccess(c, app.Logger(), 201, res, nil)
	}
}

func GetResources(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := currentUser(c)

		resources, err := app.Resources().ListResources(c.Request.Context(), user.ID)
		if err != nil {
			HandleError(c, app.Logger(), err, 500, "Failed to fetch resources")
			return
		}

		HandleSuccess(c, app.Logger(), 200, resources, map[string]any{"count": len(resources)})
	}
}

func DeleteResource(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := currentUser(c)

		err := service.DeleteResource(c.Request.Context(), app.Resources(), user, c.Param("id"))
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				HandleError(c, app.Logger(), err, 404, "Resource not found")
				return
			}
			HandleError(c, app.Logger(), err, 500, "Failed to delete resource")
			return
		}

		HandleSuccess(c, app.Logger(), 200, nil, map[string]any{"deleted": c.Param("id")})
	}
}
