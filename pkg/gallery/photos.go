package gallery

import (
	"context"
	"encoding/json"
	"errors"
	"net/url"
	"strconv"
	"strings"

	"github.com/samvad-hq/gallery-client/pkg/apiclient"
)

const (
	pathPhotos     = "/photos"
	pathCategories = "/categories"
	pathTags       = "/tags"

	defaultPage  = 1
	defaultLimit = 10
)

var errEmptyID = errors.New("photo id is empty")

// Service covers photos, categories and tags.
type Service struct {
	c *apiclient.Client
}

// NewService returns a Service using c.
func NewService(c *apiclient.Client) *Service {
	return &Service{c: c}
}

// ListPhotos returns one page of photos matching q.
func (s *Service) ListPhotos(ctx context.Context, q PhotoQuery, opts ...apiclient.RequestOption) (PhotoPage, error) {
	page, err := apiclient.Get[PhotoPage](ctx, s.c, pathPhotos, q.values(), opts...)
	if err != nil {
		return PhotoPage{}, err
	}
	if page.Photos == nil {
		page.Photos = []Photo{}
	}
	return page, nil
}

func (q PhotoQuery) values() url.Values {
	page, limit := q.Page, q.Limit
	if page < 1 {
		page = defaultPage
	}
	if limit < 1 {
		limit = defaultLimit
	}
	v := url.Values{}
	v.Set("page", strconv.Itoa(page))
	v.Set("limit", strconv.Itoa(limit))
	if id := strings.TrimSpace(q.CategoryID); id != "" {
		v.Set("categoryId", id)
	}
	for _, tag := range q.Tags {
		if tag = strings.TrimSpace(tag); tag != "" {
			v.Add("tags", tag)
		}
	}
	return v
}

// UpdatePhoto applies u and returns the updated photo.
func (s *Service) UpdatePhoto(ctx context.Context, id string, u PhotoUpdate, opts ...apiclient.RequestOption) (Photo, error) {
	p, err := photoPath(id)
	if err != nil {
		return Photo{}, err
	}
	return apiclient.Put[Photo](ctx, s.c, p, u, opts...)
}

// DeletePhoto removes a photo.
func (s *Service) DeletePhoto(ctx context.Context, id string, opts ...apiclient.RequestOption) error {
	p, err := photoPath(id)
	if err != nil {
		return err
	}
	_, err = apiclient.Delete[json.RawMessage](ctx, s.c, p, nil, opts...)
	return err
}

func photoPath(id string) (string, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return "", errEmptyID
	}
	return pathPhotos + "/" + url.PathEscape(id), nil
}

// Categories lists every category.
func (s *Service) Categories(ctx context.Context, opts ...apiclient.RequestOption) ([]Category, error) {
	return apiclient.Get[[]Category](ctx, s.c, pathCategories, nil, opts...)
}

// CreateCategory adds a category and returns it.
func (s *Service) CreateCategory(ctx context.Context, name string, opts ...apiclient.RequestOption) (Category, error) {
	return apiclient.Post[Category](ctx, s.c, pathCategories, map[string]string{"name": strings.TrimSpace(name)}, opts...)
}

// PopularTags lists the suggested tags.
func (s *Service) PopularTags(ctx context.Context, opts ...apiclient.RequestOption) ([]string, error) {
	return apiclient.Get[[]string](ctx, s.c, pathTags, nil, opts...)
}

// AddPopularTag adds tag to the suggested tags. Adding a known tag is not an error.
func (s *Service) AddPopularTag(ctx context.Context, tag string, opts ...apiclient.RequestOption) error {
	_, err := apiclient.Post[json.RawMessage](ctx, s.c, pathTags, map[string]string{"tag": strings.TrimSpace(tag)}, opts...)
	return err
}
