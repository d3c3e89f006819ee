package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/errgroup"

	"github.com/blogem/weblog/models"
	"github.com/blogem/weblog/repositories"
)

var (
	// ErrInvalidID is returned for ids that can never exist
	ErrInvalidID = errors.New("invalid web log ID")
	// ErrActorRequired is returned when an actor lookup has no actor
	ErrActorRequired = errors.New("actor is required")
)

// WebLogService interface defines web log query logic
type WebLogService interface {
	Save(ctx context.Context, entry models.WebLog) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.WebLog, error)
	List(ctx context.Context, pageNum, pageSize int) ([]models.WebLog, error)
	ListByActor(ctx context.Context, actor string) ([]models.WebLog, error)
	ListByCondition(ctx context.Context, filter models.WebLogFilter, pageNum, pageSize int) (*models.Page[models.WebLog], error)
}

// webLogService implements WebLogService interface
type webLogService struct {
	repo  repositories.WebLogRepository
	cache *lru.Cache[int64, models.WebLog]
}

// NewWebLogService creates a new web log service.
// Records never change once written, so lookups by id are cached; a
// cacheSize of zero disables the cache.
func NewWebLogService(repo repositories.WebLogRepository, cacheSize int) (WebLogService, error) {
	s := &webLogService{repo: repo}
	if cacheSize > 0 {
		cache, err := lru.New[int64, models.WebLog](cacheSize)
		if err != nil {
			return nil, fmt.Errorf("failed to create web log cache: %w", err)
		}
		s.cache = cache
	}
	return s, nil
}

// Save persists a web log synchronously
func (s *webLogService) Save(ctx context.Context, entry models.WebLog) (int64, error) {
	id, err := s.repo.Create(ctx, entry)
	if err != nil {
		return 0, fmt.Errorf("failed to save web log: %w", err)
	}
	return id, nil
}

// GetByID retrieves a web log by ID
func (s *webLogService) GetByID(ctx context.Context, id int64) (*models.WebLog, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidID, id)
	}

	if s.cache != nil {
		if cached, ok := s.cache.Get(id); ok {
			return &cached, nil
		}
	}

	entry, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		s.cache.Add(id, *entry)
	}
	return entry, nil
}

// List retrieves one page of web logs, newest first
func (s *webLogService) List(ctx context.Context, pageNum, pageSize int) ([]models.WebLog, error) {
	pageNum, pageSize = models.NormalizePaging(pageNum, pageSize)
	return s.repo.ListPage(ctx, models.Offset(pageNum, pageSize), pageSize)
}

// ListByActor retrieves every web log of one actor
func (s *webLogService) ListByActor(ctx context.Context, actor string) ([]models.WebLog, error) {
	actor = strings.TrimSpace(actor)
	if actor == "" {
		return nil, ErrActorRequired
	}
	return s.repo.ListByActor(ctx, actor)
}

// ListByCondition retrieves a filtered page together with its totals
func (s *webLogService) ListByCondition(ctx context.Context, filter models.WebLogFilter, pageNum, pageSize int) (*models.Page[models.WebLog], error) {
	pageNum, pageSize = models.NormalizePaging(pageNum, pageSize)
	filter.Actor = strings.TrimSpace(filter.Actor)
	filter.Operation = strings.TrimSpace(filter.Operation)

	var (
		list  []models.WebLog
		total int64
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		list, err = s.repo.ListByFilter(gctx, filter, models.Offset(pageNum, pageSize), pageSize)
		if err != nil {
			return fmt.Errorf("failed to list web logs: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		total, err = s.repo.CountByFilter(gctx, filter)
		if err != nil {
			return fmt.Errorf("failed to count web logs: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return models.NewPage(pageNum, pageSize, total, list), nil
}
