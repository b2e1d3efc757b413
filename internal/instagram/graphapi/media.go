package graphapi

import (
	"context"

	"github.com/orgball2608/insta-dashboard/internal/domain"
	"github.com/orgball2608/insta-dashboard/internal/instagram"
)

func (c *Client) ListMedia(ctx context.Context, cursor string) (domain.Page, error) {
	req := c.http.R().
		SetQueryParam("fields", mediaFields).
		SetQueryParam("limit", c.perPageParam())
	if cursor != "" {
		req.SetQueryParam("after", cursor)
	}

	var resp mediaResponse
	if err := c.get(ctx, "list_media", "/me/media", req, &resp); err != nil {
		return domain.Page{}, err
	}

	posts := make([]domain.Post, 0, len(resp.Data))
	for _, item := range resp.Data {
		if item.ID == "" {
			continue
		}
		posts = append(posts, item.toDomain())
	}

	return domain.Page{Posts: posts, Next: resp.Paging.nextCursor()}, nil
}

func (c *Client) GetComments(ctx context.Context, mediaID string) ([]domain.Comment, error) {
	req := c.http.R().
		SetPathParam("mediaId", mediaID).
		SetQueryParam("fields", commentFields)

	var resp commentsResponse
	if err := c.get(ctx, "get_comments", "/{mediaId}/comments", req, &resp); err != nil {
		return nil, err
	}

	comments := make([]domain.Comment, 0, len(resp.Data))
	for _, item := range resp.Data {
		comments = append(comments, domain.Comment{
			ID:       item.ID,
			Username: item.Username,
			Text:     item.Text,
		})
	}
	return comments, nil
}

func (c *Client) CreateContainer(ctx context.Context, container domain.Container) (string, error) {
	urlParam := "image_url"
	if container.Kind == domain.MediaKindVideo {
		urlParam = "video_url"
	}

	req := c.http.R().SetFormData(map[string]string{
		urlParam:  container.MediaURL,
		"caption": container.Caption,
	})

	var resp idResponse
	if err := c.post(ctx, "create_container", "/me/media", req, &resp); err != nil {
		return "", err
	}
	if resp.ID == "" {
		return "", instagram.ErrEmptyID
	}
	return resp.ID, nil
}

func (c *Client) PublishContainer(ctx context.Context, creationID string) (string, error) {
	req := c.http.R().SetFormData(map[string]string{
		"creation_id": creationID,
	})

	var resp idResponse
	if err := c.post(ctx, "publish_container", "/me/media_publish", req, &resp); err != nil {
		return "", err
	}
	if resp.ID == "" {
		return "", instagram.ErrEmptyID
	}
	return resp.ID, nil
}

func (c *Client) GetProfile(ctx context.Context) (*domain.Profile, error) {
	req := c.http.R().SetQueryParam("fields", profileFields)

	var resp profileResponse
	if err := c.get(ctx, "get_profile", "/me", req, &resp); err != nil {
		return nil, err
	}

	return &domain.Profile{
		ID:         resp.ID,
		Username:   resp.Username,
		MediaCount: resp.MediaCount,
	}, nil
}
