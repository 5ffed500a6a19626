package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/RadyaI/learning-tracker-journal/internal"
	"github.com/RadyaI/learning-tracker-journal/internal/storage"
)

type ResourceRequest struct {
	Title string `json:"title" validate:"required"`
	URL   string `json:"url" validate:"required,url"`
	Type  string `json:"type" validate:"required,oneof=video article tool"`
}

func ValidateResourceRequest(req *ResourceRequest) error {
	return validate.Struct(req)
}

func CreateResource(ctx context.Context, repo storage.ResourceRepository, user *internal.User, req *ResourceRequest) (*internal.Resource, error) {
	res := &internal.Resource{
		ID:        uuid.NewString(),
		OwnerID:   user.ID,
		Title:     req.Title,
		URL:       req.URL,
		Type:      req.Type,
		CreatedAt: time.Now(),
	}
	if err := repo.SaveResource(ctx, res); err != nil {
		return nil, err
	}
	return res, nil
}

// DeleteResource removes an owner's saved link. Ownership is checked
// through the list because resources have no point lookup.
func DeleteResource(ctx context.Context, repo storage.ResourceRepository, user *internal.User, id string) error {
	resources, err := repo.ListResources(ctx, user.ID)
	if err != nil {
		return err
	}
	for _, r := range resources {
		if r.ID == id {
			return repo.DeleteResource(ctx, id)
		}
	}
	return storage.ErrNotFound
}
