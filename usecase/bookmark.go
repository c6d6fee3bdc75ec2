package usecase

import (
	"context"

	"github.com/kabang/kabang/core/database"
	domainBookmark "github.com/kabang/kabang/domains/bookmark"
	"github.com/kabang/kabang/validations"
)

type bookmarkService struct {
	repo     domainBookmark.IBookmarkRepository
	failover database.Failover
}

func NewBookmarkService(repo domainBookmark.IBookmarkRepository, failover database.Failover) domainBookmark.IBookmarkUsecase {
	return &bookmarkService{repo: repo, failover: failover}
}

func (s *bookmarkService) List(ctx context.Context) ([]domainBookmark.Bookmark, error) {
	bookmarks, err := database.WithFallback(ctx, s.failover, s.repo.List, []domainBookmark.Bookmark{})
	if err != nil {
		return nil, err
	}
	if bookmarks == nil {
		bookmarks = []domainBookmark.Bookmark{}
	}
	return bookmarks, nil
}

func (s *bookmarkService) Get(ctx context.Context, id int64) (domainBookmark.Bookmark, error) {
	if err := database.RequireConnection(ctx, s.failover); err != nil {
		return domainBookmark.Bookmark{}, err
	}
	bookmark, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return domainBookmark.Bookmark{}, database.WriteError(s.failover, err)
	}
	return bookmark, nil
}

func (s *bookmarkService) Create(ctx context.Context, request domainBookmark.CreateBookmarkRequest) (domainBookmark.Bookmark, error) {
	if err := validations.ValidateCreateBookmark(ctx, request); err != nil {
		return domainBookmark.Bookmark{}, err
	}
	if err := database.RequireConnection(ctx, s.failover); err != nil {
		return domainBookmark.Bookmark{}, err
	}

	bookmark := domainBookmark.Bookmark{
		URL:      request.URL,
		Notes:    normalizeCategory(request.Notes),
		Category: normalizeCategory(request.Category),
	}
	if err := s.repo.Create(ctx, &bookmark); err != nil {
		return domainBookmark.Bookmark{}, database.WriteError(s.failover, err)
	}
	return bookmark, nil
}

func (s *bookmarkService) Update(ctx context.Context, id int64, request domainBookmark.UpdateBookmarkRequest) (domainBookmark.Bookmark, error) {
	if err := validations.ValidateUpdateBookmark(ctx, request); err != nil {
		return domainBookmark.Bookmark{}, err
	}
	if err := database.RequireConnection(ctx, s.failover); err != nil {
		return domainBookmark.Bookmark{}, err
	}

	bookmark, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return domainBookmark.Bookmark{}, database.WriteError(s.failover, err)
	}
	if request.URL != nil {
		bookmark.URL = *request.URL
	}
	if request.Notes != nil {
		bookmark.Notes = normalizeCategory(request.Notes)
	}
	if request.Category != nil {
		bookmark.Category = normalizeCategory(request.Category)
	}

	if err := s.repo.Update(ctx, &bookmark); err != nil {
		return domainBookmark.Bookmark{}, database.WriteError(s.failover, err)
	}
	return bookmark, nil
}

func (s *bookmarkService) Delete(ctx context.Context, id int64) (domainBookmark.Bookmark, error) {
	if err := database.RequireConnection(ctx, s.failover); err != nil {
		return domainBookmark.Bookmark{}, err
	}
	bookmark, err := s.repo.Delete(ctx, id)
	if err != nil {
		return domainBookmark.Bookmark{}, database.WriteError(s.failover, err)
	}
	return bookmark, nil
}
