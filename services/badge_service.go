package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/Dosada05/tournament-badges/models"
	"github.com/Dosada05/tournament-badges/repositories"
	"github.com/Dosada05/tournament-badges/roster"
	"github.com/Dosada05/tournament-badges/storage"
	"golang.org/x/sync/errgroup"
)

var (
	ErrBadgeUpdateFailed = errors.New("failed to update badge")
	ErrBadgeImageUpload  = errors.New("failed to upload badge image")
)

type BadgeService interface {
	ListBadges(ctx context.Context) ([]models.Badge, error)
	ListManagedBadges(ctx context.Context, userID int) ([]models.Badge, error)
	GetBadge(ctx context.Context, badgeID int) (*models.Badge, error)
	// PreviewChanges считает изменения черновика относительно сохраненного состава.
	PreviewChanges(ctx context.Context, badgeID int, draft roster.Draft) (*roster.Summary, error)
	EditManagers(ctx context.Context, actorID, badgeID int, managerIDs []int) (*models.Badge, error)
	// EditOwners принимает плоский список ID, где повтор ID означает количество.
	EditOwners(ctx context.Context, actorID, badgeID int, ownerIDs []int) (*models.Badge, error)
	UploadImage(ctx context.Context, actorID, badgeID int, contentType string, reader io.Reader) (*models.Badge, error)
}

type badgeService struct {
	badgeRepo repositories.BadgeRepository
	userRepo  repositories.UserRepository
	uploader  storage.FileUploader
	events    EventPublisher
	logger    *slog.Logger
}

func NewBadgeService(
	badgeRepo repositories.BadgeRepository,
	userRepo repositories.UserRepository,
	uploader storage.FileUploader,
	events EventPublisher,
	logger *slog.Logger,
) BadgeService {
	if logger == nil {
		logger = slog.Default()
	}
	return &badgeService{
		badgeRepo: badgeRepo,
		userRepo:  userRepo,
		uploader:  uploader,
		events:    events,
		logger:    logger,
	}
}

func (s *badgeService) ListBadges(ctx context.Context) ([]models.Badge, error) {
	badges, err := s.badgeRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list badges: %w", err)
	}
	for i := range badges {
		s.populateImageURL(&badges[i])
	}
	return badges, nil
}

func (s *badgeService) ListManagedBadges(ctx context.Context, userID int) ([]models.Badge, error) {
	badges, err := s.badgeRepo.ListManagedBy(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list badges managed by user %d: %w", userID, err)
	}
	for i := range badges {
		s.populateImageURL(&badges[i])
	}
	return badges, nil
}

func (s *badgeService) GetBadge(ctx context.Context, badgeID int) (*models.Badge, error) {
	badge, err := s.badgeRepo.GetByID(ctx, badgeID)
	if err != nil {
		if errors.Is(err, repositories.ErrBadgeNotFound) {
			return nil, ErrBadgeNotFound
		}
		return nil, fmt.Errorf("failed to get badge %d: %w", badgeID, err)
	}

	var managers []models.BadgeManager
	var owners []models.BadgeOwner

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		managers, err = s.badgeRepo.ListManagers(gCtx, badgeID)
		return err
	})
	g.Go(func() error {
		var err error
		owners, err = s.badgeRepo.ListOwners(gCtx, badgeID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to load roster of badge %d: %w", badgeID, err)
	}

	badge.Managers = managers
	badge.Owners = owners
	s.populateImageURL(badge)
	return badge, nil
}

func (s *badgeService) PreviewChanges(ctx context.Context, badgeID int, draft roster.Draft) (*roster.Summary, error) {
	badge, err := s.GetBadge(ctx, badgeID)
	if err != nil {
		return nil, err
	}
	summary := draft.Summary(committedDraft(badge))
	return &summary, nil
}

func (s *badgeService) EditManagers(ctx context.Context, actorID, badgeID int, managerIDs []int) (*models.Badge, error) {
	actor, err := s.getActor(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if !CanEditBadgeManagers(actor) {
		return nil, ErrForbiddenOperation
	}

	if roster.ContainsDuplicates(managerIDs) {
		return nil, ErrDuplicateIDs
	}

	if err := s.badgeRepo.ReplaceManagers(ctx, badgeID, managerIDs); err != nil {
		return nil, mapBadgeWriteError(err, badgeID)
	}

	s.logger.InfoContext(ctx, "badge managers replaced",
		slog.Int("badge_id", badgeID),
		slog.Int("actor_id", actorID),
		slog.Int("managers", len(managerIDs)))

	return s.afterWrite(ctx, badgeID)
}

func (s *badgeService) EditOwners(ctx context.Context, actorID, badgeID int, ownerIDs []int) (*models.Badge, error) {
	actor, err := s.getActor(ctx, actorID)
	if err != nil {
		return nil, err
	}

	if _, err := s.badgeRepo.GetByID(ctx, badgeID); err != nil {
		if errors.Is(err, repositories.ErrBadgeNotFound) {
			return nil, ErrBadgeNotFound
		}
		return nil, fmt.Errorf("failed to get badge %d: %w", badgeID, err)
	}

	managers, err := s.badgeRepo.ListManagers(ctx, badgeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list managers of badge %d: %w", badgeID, err)
	}
	if !CanEditBadgeOwners(actor, managers) {
		return nil, ErrForbiddenOperation
	}

	decoded := roster.DecodeOwners(ownerIDs)
	owners := make([]models.BadgeOwner, 0, len(decoded))
	for _, o := range decoded {
		if o.Count < 1 || o.Count > roster.MaxOwnerCount {
			return nil, fmt.Errorf("%w: user %d has count %d", ErrOwnerCountOutOfRange, o.ID, o.Count)
		}
		owners = append(owners, models.BadgeOwner{BadgeID: badgeID, UserID: o.ID, Count: o.Count})
	}

	if err := s.badgeRepo.ReplaceOwners(ctx, badgeID, owners); err != nil {
		return nil, mapBadgeWriteError(err, badgeID)
	}

	s.logger.InfoContext(ctx, "badge owners replaced",
		slog.Int("badge_id", badgeID),
		slog.Int("actor_id", actorID),
		slog.Int("owners", len(owners)))

	return s.afterWrite(ctx, badgeID)
}

func (s *badgeService) UploadImage(ctx context.Context, actorID, badgeID int, contentType string, reader io.Reader) (*models.Badge, error) {
	if s.uploader == nil {
		return nil, ErrStorageDisabled
	}

	ext, err := imageExtension(contentType)
	if err != nil {
		return nil, err
	}

	actor, err := s.getActor(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if !CanEditBadgeManagers(actor) {
		return nil, ErrForbiddenOperation
	}

	badge, err := s.badgeRepo.GetByID(ctx, badgeID)
	if err != nil {
		if errors.Is(err, repositories.ErrBadgeNotFound) {
			return nil, ErrBadgeNotFound
		}
		return nil, fmt.Errorf("failed to get badge %d: %w", badgeID, err)
	}

	key := storage.BadgeImageKey(badgeID, time.Now(), ext)
	if _, err := s.uploader.Upload(ctx, key, contentType, reader); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBadgeImageUpload, err)
	}

	if err := s.badgeRepo.UpdateImageKey(ctx, badgeID, &key); err != nil {
		// Не оставляем "сиротский" файл в бакете
		if delErr := s.uploader.Delete(ctx, key); delErr != nil {
			s.logger.WarnContext(ctx, "failed to delete orphaned badge image", slog.String("key", key), slog.Any("error", delErr))
		}
		return nil, mapBadgeWriteError(err, badgeID)
	}

	if badge.ImageKey != nil && *badge.ImageKey != "" {
		if err := s.uploader.Delete(ctx, *badge.ImageKey); err != nil {
			s.logger.WarnContext(ctx, "failed to delete previous badge image", slog.String("key", *badge.ImageKey), slog.Any("error", err))
		}
	}

	return s.afterWrite(ctx, badgeID)
}

func (s *badgeService) afterWrite(ctx context.Context, badgeID int) (*models.Badge, error) {
	badge, err := s.GetBadge(ctx, badgeID)
	if err != nil {
		return nil, err
	}
	publish(s.events, BadgeRoom(badgeID), EventBadgeUpdated, badge)
	return badge, nil
}

func (s *badgeService) getActor(ctx context.Context, actorID int) (*models.User, error) {
	actor, err := s.userRepo.GetByID(ctx, actorID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, ErrAuthenticationFailed
		}
		return nil, fmt.Errorf("failed to get user %d: %w", actorID, err)
	}
	return actor, nil
}

func (s *badgeService) populateImageURL(badge *models.Badge) {
	if badge == nil || badge.ImageKey == nil || *badge.ImageKey == "" || s.uploader == nil {
		return
	}
	if url := s.uploader.GetPublicURL(*badge.ImageKey); url != "" {
		badge.ImageURL = &url
	}
}

func mapBadgeWriteError(err error, badgeID int) error {
	switch {
	case errors.Is(err, repositories.ErrBadgeNotFound):
		return ErrBadgeNotFound
	case errors.Is(err, repositories.ErrBadgeUserInvalid):
		return ErrUnknownUser
	case errors.Is(err, repositories.ErrBadgeOwnerCountInvalid):
		return ErrOwnerCountOutOfRange
	case errors.Is(err, repositories.ErrBadgeAssignmentDup):
		return ErrDuplicateIDs
	default:
		return fmt.Errorf("%w (id: %d): %w", ErrBadgeUpdateFailed, badgeID, err)
	}
}

// committedDraft - сохраненный состав бейджа в виде черновика.
func committedDraft(badge *models.Badge) roster.Draft {
	d := roster.Draft{
		Managers: make([]roster.Assignee, 0, len(badge.Managers)),
		Owners:   make([]roster.OwnerCount, 0, len(badge.Owners)),
	}
	for _, m := range badge.Managers {
		d.Managers = append(d.Managers, roster.Assignee{ID: m.UserID, Name: m.Username})
	}
	for _, o := range badge.Owners {
		d.Owners = append(d.Owners, roster.OwnerCount{ID: o.UserID, Name: o.Username, Count: o.Count})
	}
	return d
}
