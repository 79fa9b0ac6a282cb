package service

import (
	"context"
	"strings"

	"github.com/rs/zerolog/log"

	"book-inventory/internal/domains/search/model"
	"book-inventory/internal/domains/search/repository"
	"book-inventory/internal/shared/utils"
)

type Service interface {
	// Search returns ok=false when term is blank and the caller should redirect
	Search(ctx context.Context, term string) (results model.Results, ok bool, err error)
}

type searchService struct {
	repo repository.Repository
}

func NewSearchService(repo repository.Repository) Service {
	return &searchService{repo: repo}
}

func (s *searchService) Search(ctx context.Context, term string) (model.Results, bool, error) {
	if strings.TrimSpace(term) == "" {
		return nil, false, nil
	}

	hits, err := s.repo.Search(ctx, utils.LikePattern(term))
	if err != nil {
		return nil, true, err
	}

	log.Debug().Str("term", term).Int("hits", len(hits)).Msg("[SearchService] search")
	return model.Group(hits), true, nil
}
