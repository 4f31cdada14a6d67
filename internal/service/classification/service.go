package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/you-humble/supplement-inventory/internal/model"
	"github.com/you-humble/supplement-inventory/platform/logger"
)

const MaxNameLength = 120

type ClassificationRepository interface {
	ByID(ctx context.Context, kind model.EntityKind, id string) (*model.Entity, error)
	ByNormalizedName(ctx context.Context, kind model.EntityKind, normalized string) (*model.Entity, error)
	List(ctx context.Context, kind model.EntityKind, filter model.EntityFilter) ([]*model.Entity, error)
	Create(ctx context.Context, e *model.Entity) error
	Update(ctx context.Context, e *model.Entity) error
	UpdateMetrics(ctx context.Context, kind model.EntityKind, id string, m model.EntityMetrics) error
	Delete(ctx context.Context, kind model.EntityKind, id string) error
	CountChildren(ctx context.Context, id string) (int, error)
	Codes(ctx context.Context, kind model.EntityKind) ([]string, error)
}

type SequenceRepository interface {
	Seed(ctx context.Context, kind model.EntityKind, floor int64) error
	Next(ctx context.Context, kind model.EntityKind) (int64, error)
}

type ProductRepository interface {
	ListByReference(ctx context.Context, kind model.EntityKind, id string) ([]*model.Product, error)
}

type Propagator interface {
	Propagate(ctx context.Context, kind model.EntityKind, entityID string) (*model.PropagationResult, error)
}

type service struct {
	repo       ClassificationRepository
	sequences  SequenceRepository
	products   ProductRepository
	propagator Propagator
	now        func() time.Time

	readDBTimeout  time.Duration
	writeDBTimeout time.Duration
}

func NewClassificationService(
	repo ClassificationRepository,
	sequences SequenceRepository,
	products ProductRepository,
	propagator Propagator,
	readDBTimeout time.Duration,
	writeDBTimeout time.Duration,
) *service {
	return &service{
		repo:           repo,
		sequences:      sequences,
		products:       products,
		propagator:     propagator,
		now:            time.Now,
		readDBTimeout:  readDBTimeout,
		writeDBTimeout: writeDBTimeout,
	}
}

// SeedSequences raises every code sequence to the highest code already issued,
// so codes never go backwards after a restore or a migration.
func (s *service) SeedSequences(ctx context.Context) error {
	const op = "classification.service.SeedSequences"

	for _, kind := range model.Kinds {
		readCtx, cancel := context.WithTimeout(ctx, s.readDBTimeout)
		codes, err := s.repo.Codes(readCtx, kind)
		cancel()
		if err != nil {
			return fmt.Errorf("%s %s: %w", op, kind, err)
		}

		floor := model.MaxCodeSuffix(codes)

		writeCtx, cancel := context.WithTimeout(ctx, s.writeDBTimeout)
		err = s.sequences.Seed(writeCtx, kind, floor)
		cancel()
		if err != nil {
			return fmt.Errorf("%s %s: %w", op, kind, err)
		}

		logger.Info(ctx, "code sequence seeded",
			logger.String("kind", string(kind)),
			logger.Int64("floor", floor),
		)
	}
	return nil
}

func (s *service) Get(ctx context.Context, kind model.EntityKind, id string) (*model.Entity, error) {
	const op = "classification.service.Get"

	id = strings.TrimSpace(id)
	if err := validateRef(kind, id); err != nil {
		return nil, err
	}

	e, err := s.byID(ctx, kind, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return e, nil
}

func (s *service) List(ctx context.Context, kind model.EntityKind, filter model.EntityFilter) ([]*model.Entity, error) {
	const op = "classification.service.List"

	if !kind.Valid() {
		return nil, errors.Join(model.ErrInvalidArgument, fmt.Errorf("unknown kind %q", kind))
	}

	ctx, cancel := context.WithTimeout(ctx, s.readDBTimeout)
	defer cancel()

	out, err := s.repo.List(ctx, kind, filter)
	if err != nil {
		logger.Error(ctx, "repository list entities", logger.String("kind", string(kind)), logger.ErrorF(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return out, nil
}

// FindByNormalizedName normalizes name and looks it up.
func (s *service) FindByNormalizedName(ctx context.Context, kind model.EntityKind, name string) (*model.Entity, error) {
	const op = "classification.service.FindByNormalizedName"

	if !kind.Valid() {
		return nil, errors.Join(model.ErrInvalidArgument, fmt.Errorf("unknown kind %q", kind))
	}
	normalized := model.NormalizeName(name)
	if normalized == "" {
		return nil, errors.Join(model.ErrInvalidArgument, errors.New("name must be non-empty"))
	}

	ctx, cancel := context.WithTimeout(ctx, s.readDBTimeout)
	defer cancel()

	e, err := s.repo.ByNormalizedName(ctx, kind, normalized)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return e, nil
}

func (s *service) Create(ctx context.Context, params model.CreateEntityParams) (*model.Entity, error) {
	const op = "classification.service.Create"
	log := logger.With(
		logger.String("kind", string(params.Kind)),
		logger.String("name", params.Name),
	)

	params.Name = strings.TrimSpace(params.Name)
	params.ParentID = strings.TrimSpace(params.ParentID)
	if err := validateName(params.Kind, params.Name); err != nil {
		log.Error(ctx, "validation: name", logger.ErrorF(err))
		return nil, err
	}
	if params.Kind == model.KindCategory && params.Level == 0 {
		params.Level = model.CategoryLevelRoot
		if params.ParentID != "" {
			params.Level = model.CategoryLevelChild
		}
	}
	if err := s.validateHierarchy(ctx, params.Kind, "", params.Level, params.ParentID, params.Order); err != nil {
		log.Error(ctx, "validation: hierarchy", logger.ErrorF(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	normalized := model.NormalizeName(params.Name)
	if err := s.ensureUnique(ctx, params.Kind, normalized, ""); err != nil {
		log.Warn(ctx, "name already taken", logger.ErrorF(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	writeCtx, cancel := context.WithTimeout(ctx, s.writeDBTimeout)
	defer cancel()

	n, err := s.sequences.Next(writeCtx, params.Kind)
	if err != nil {
		log.Error(ctx, "sequence next", logger.ErrorF(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	now := s.now().UTC()
	e := &model.Entity{
		ID:             uuid.NewString(),
		Kind:           params.Kind,
		Code:           model.FormatCode(params.Kind.CodePrefix(), n),
		Name:           params.Name,
		NormalizedName: normalized,
		Slug:           model.Slugify(params.Name),
		Description:    strings.TrimSpace(params.Description),
		Icon:           strings.TrimSpace(params.Icon),
		Color:          strings.TrimSpace(params.Color),
		Active:         true,
		Level:          params.Level,
		ParentID:       params.ParentID,
		Order:          params.Order,
		CreatedAt:      lo.ToPtr(now),
		UpdatedAt:      lo.ToPtr(now),
	}

	if err := s.repo.Create(writeCtx, e); err != nil {
		log.Error(ctx, "repository create", logger.ErrorF(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	log.Info(ctx, "entity created", logger.String("id", e.ID), logger.String("code", e.Code))
	return e, nil
}

// QuickCreate returns the entity already using name, or creates a minimal
// one. created reports which happened.
func (s *service) QuickCreate(ctx context.Context, kind model.EntityKind, name string) (*model.Entity, bool, error) {
	const op = "classification.service.QuickCreate"

	name = strings.TrimSpace(name)
	if err := validateName(kind, name); err != nil {
		return nil, false, err
	}

	existing, err := s.FindByNormalizedName(ctx, kind, name)
	switch {
	case err == nil:
		return existing, false, nil
	case !errors.Is(err, model.ErrNotFound):
		return nil, false, fmt.Errorf("%s: %w", op, err)
	}

	e, err := s.Create(ctx, model.CreateEntityParams{Kind: kind, Name: name})
	if errors.Is(err, model.ErrDuplicateName) {
		// Lost a race with a concurrent create of the same name.
		existing, ferr := s.FindByNormalizedName(ctx, kind, name)
		if ferr != nil {
			return nil, false, fmt.Errorf("%s: %w", op, ferr)
		}
		return existing, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("%s: %w", op, err)
	}
	return e, true, nil
}

// Update applies params and propagates the new snapshot. For a root category
// its children are propagated too, since they embed the parent name. A
// propagation failure is reported next to the updated entity and wraps
// ErrPropagationPartialFailure.
func (s *service) Update(ctx context.Context, kind model.EntityKind, id string, params model.UpdateEntityParams) (*model.UpdateEntityResult, error) {
	const op = "classification.service.Update"
	log := logger.With(
		logger.String("kind", string(kind)),
		logger.String("entity_id", id),
	)

	id = strings.TrimSpace(id)
	if err := validateRef(kind, id); err != nil {
		return nil, err
	}
	if params.Empty() {
		return nil, errors.Join(model.ErrInvalidArgument, errors.New("nothing to update"))
	}

	e, err := s.byID(ctx, kind, id)
	if err != nil {
		log.Error(ctx, "load entity", logger.ErrorF(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	next := *e
	if params.Name != nil {
		name := strings.TrimSpace(*params.Name)
		if err := validateName(kind, name); err != nil {
			return nil, err
		}
		normalized := model.NormalizeName(name)
		if normalized != e.NormalizedName {
			if err := s.ensureUnique(ctx, kind, normalized, id); err != nil {
				log.Warn(ctx, "name already taken", logger.ErrorF(err))
				return nil, fmt.Errorf("%s: %w", op, err)
			}
		}
		next.Name = name
		next.NormalizedName = normalized
		next.Slug = model.Slugify(name)
	}
	if params.Description != nil {
		next.Description = strings.TrimSpace(*params.Description)
	}
	if params.Icon != nil {
		next.Icon = strings.TrimSpace(*params.Icon)
	}
	if params.Color != nil {
		next.Color = strings.TrimSpace(*params.Color)
	}
	if params.ParentID != nil || params.Order != nil {
		if params.ParentID != nil {
			next.ParentID = strings.TrimSpace(*params.ParentID)
		}
		if params.Order != nil {
			next.Order = *params.Order
		}
		if err := s.validateHierarchy(ctx, kind, id, next.Level, next.ParentID, next.Order); err != nil {
			log.Error(ctx, "validation: hierarchy", logger.ErrorF(err))
			return nil, fmt.Errorf("%s: %w", op, err)
		}
	}
	next.UpdatedAt = lo.ToPtr(s.now().UTC())

	writeCtx, cancel := context.WithTimeout(ctx, s.writeDBTimeout)
	err = s.repo.Update(writeCtx, &next)
	cancel()
	if err != nil {
		log.Error(ctx, "repository update", logger.ErrorF(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	log.Info(ctx, "entity updated")

	res := &model.UpdateEntityResult{Entity: &next}
	res.Propagation, err = s.propagate(ctx, &next)
	if err != nil {
		return res, fmt.Errorf("%s: %w", op, err)
	}
	return res, nil
}

// Deactivate hides the entity from pickers. It is refused while active
// products reference it or, for categories, while it has children.
func (s *service) Deactivate(ctx context.Context, kind model.EntityKind, id string) (*model.UpdateEntityResult, error) {
	const op = "classification.service.Deactivate"

	e, err := s.guarded(ctx, kind, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if !e.Active {
		return &model.UpdateEntityResult{Entity: e}, nil
	}

	res, err := s.setActive(ctx, e, false)
	if err != nil {
		return res, fmt.Errorf("%s: %w", op, err)
	}
	return res, nil
}

// Activate re-enables the entity. A child category needs an active parent.
func (s *service) Activate(ctx context.Context, kind model.EntityKind, id string) (*model.UpdateEntityResult, error) {
	const op = "classification.service.Activate"

	id = strings.TrimSpace(id)
	if err := validateRef(kind, id); err != nil {
		return nil, err
	}

	e, err := s.byID(ctx, kind, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if e.Active {
		return &model.UpdateEntityResult{Entity: e}, nil
	}
	if kind == model.KindCategory && e.ParentID != "" {
		parent, err := s.byID(ctx, model.KindCategory, e.ParentID)
		if err != nil {
			return nil, fmt.Errorf("%s: parent: %w", op, err)
		}
		if !parent.Active {
			return nil, errors.Join(model.ErrInvalidArgument,
				fmt.Errorf("parent category %s is inactive", parent.Code))
		}
	}

	res, err := s.setActive(ctx, e, true)
	if err != nil {
		return res, fmt.Errorf("%s: %w", op, err)
	}
	return res, nil
}

func (s *service) setActive(ctx context.Context, e *model.Entity, active bool) (*model.UpdateEntityResult, error) {
	next := *e
	next.Active = active
	next.UpdatedAt = lo.ToPtr(s.now().UTC())

	writeCtx, cancel := context.WithTimeout(ctx, s.writeDBTimeout)
	err := s.repo.Update(writeCtx, &next)
	cancel()
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "entity activation changed",
		logger.String("kind", string(e.Kind)),
		logger.String("entity_id", e.ID),
		logger.Bool("active", active),
	)

	res := &model.UpdateEntityResult{Entity: &next}
	if active {
		return res, nil
	}
	res.Propagation, err = s.propagate(ctx, &next)
	return res, err
}

func (s *service) Delete(ctx context.Context, kind model.EntityKind, id string) error {
	const op = "classification.service.Delete"

	e, err := s.guarded(ctx, kind, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	writeCtx, cancel := context.WithTimeout(ctx, s.writeDBTimeout)
	defer cancel()

	if err := s.repo.Delete(writeCtx, kind, e.ID); err != nil {
		logger.Error(ctx, "repository delete", logger.String("entity_id", e.ID), logger.ErrorF(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	logger.Info(ctx, "entity deleted",
		logger.String("kind", string(kind)),
		logger.String("entity_id", e.ID),
		logger.String("code", e.Code),
	)
	return nil
}

// RefreshMetrics recounts the products referencing the entity.
func (s *service) RefreshMetrics(ctx context.Context, kind model.EntityKind, id string) (*model.Entity, error) {
	const op = "classification.service.RefreshMetrics"

	id = strings.TrimSpace(id)
	if err := validateRef(kind, id); err != nil {
		return nil, err
	}

	e, err := s.byID(ctx, kind, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := s.refreshMetrics(ctx, e); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return e, nil
}

func (s *service) refreshMetrics(ctx context.Context, e *model.Entity) error {
	readCtx, cancel := context.WithTimeout(ctx, s.readDBTimeout)
	products, err := s.products.ListByReference(readCtx, e.Kind, e.ID)
	cancel()
	if err != nil {
		return err
	}

	m := model.CountMetrics(products)

	writeCtx, cancel := context.WithTimeout(ctx, s.writeDBTimeout)
	defer cancel()

	if err := s.repo.UpdateMetrics(writeCtx, e.Kind, e.ID, m); err != nil {
		return err
	}
	e.Metrics = m
	return nil
}

// guarded loads the entity with fresh metrics and refuses it while it is
// still referenced.
func (s *service) guarded(ctx context.Context, kind model.EntityKind, id string) (*model.Entity, error) {
	id = strings.TrimSpace(id)
	if err := validateRef(kind, id); err != nil {
		return nil, err
	}

	e, err := s.byID(ctx, kind, id)
	if err != nil {
		return nil, err
	}
	if err := s.refreshMetrics(ctx, e); err != nil {
		return nil, err
	}

	if e.Metrics.ActiveProducts > 0 {
		return nil, errors.Join(model.ErrReferentialIntegrity,
			fmt.Errorf("%s is used by %d active products", e.Code, e.Metrics.ActiveProducts))
	}
	if kind == model.KindCategory {
		readCtx, cancel := context.WithTimeout(ctx, s.readDBTimeout)
		n, err := s.repo.CountChildren(readCtx, e.ID)
		cancel()
		if err != nil {
			return nil, err
		}
		if n > 0 {
			return nil, errors.Join(model.ErrReferentialIntegrity,
				fmt.Errorf("%s has %d child categories", e.Code, n))
		}
	}
	return e, nil
}

// propagate runs the propagator for e and, for a root category, for each
// child.
func (s *service) propagate(ctx context.Context, e *model.Entity) ([]*model.PropagationResult, error) {
	targets := []*model.Entity{e}
	if e.Kind == model.KindCategory && e.Level == model.CategoryLevelRoot {
		readCtx, cancel := context.WithTimeout(ctx, s.readDBTimeout)
		children, err := s.repo.List(readCtx, model.KindCategory, model.EntityFilter{ParentID: e.ID})
		cancel()
		if err != nil {
			return nil, errors.Join(model.ErrPropagationPartialFailure, fmt.Errorf("list children: %w", err))
		}
		targets = append(targets, children...)
	}

	results := make([]*model.PropagationResult, 0, len(targets))
	var errs []error
	for _, t := range targets {
		res, err := s.propagator.Propagate(ctx, t.Kind, t.ID)
		if res != nil {
			results = append(results, res)
		}
		if err != nil {
			logger.Warn(ctx, "propagation failed",
				logger.String("kind", string(t.Kind)),
				logger.String("entity_id", t.ID),
				logger.ErrorF(err),
			)
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return results, errors.Join(append([]error{model.ErrPropagationPartialFailure}, errs...)...)
	}
	return results, nil
}

func (s *service) byID(ctx context.Context, kind model.EntityKind, id string) (*model.Entity, error) {
	ctx, cancel := context.WithTimeout(ctx, s.readDBTimeout)
	defer cancel()

	return s.repo.ByID(ctx, kind, id)
}

// ensureUnique fails with ErrDuplicateName when another entity than self
// already uses normalized.
func (s *service) ensureUnique(ctx context.Context, kind model.EntityKind, normalized, self string) error {
	ctx, cancel := context.WithTimeout(ctx, s.readDBTimeout)
	defer cancel()

	other, err := s.repo.ByNormalizedName(ctx, kind, normalized)
	switch {
	case errors.Is(err, model.ErrNotFound):
		return nil
	case err != nil:
		return err
	case other.ID == self:
		return nil
	default:
		return errors.Join(model.ErrDuplicateName,
			fmt.Errorf("%s %q already exists as %s", kind, other.Name, other.Code))
	}
}

// validateHierarchy checks level, parent and order. self is empty on create.
func (s *service) validateHierarchy(ctx context.Context, kind model.EntityKind, self string, level int, parentID string, order int) error {
	if kind != model.KindCategory {
		if level != 0 || parentID != "" || order != 0 {
			return errors.Join(model.ErrInvalidArgument,
				fmt.Errorf("level, parent and order only apply to categories, not %s", kind))
		}
		return nil
	}

	switch level {
	case model.CategoryLevelRoot:
		if parentID != "" {
			return errors.Join(model.ErrInvalidArgument, errors.New("a level-1 category cannot have a parent"))
		}
		return nil
	case model.CategoryLevelChild:
	default:
		return errors.Join(model.ErrInvalidArgument, fmt.Errorf("category level must be 1 or 2, got %d", level))
	}

	if parentID == "" {
		return errors.Join(model.ErrInvalidArgument, errors.New("a level-2 category needs a parent"))
	}
	if parentID == self {
		return errors.Join(model.ErrInvalidArgument, errors.New("a category cannot be its own parent"))
	}

	parent, err := s.byID(ctx, model.KindCategory, parentID)
	if errors.Is(err, model.ErrNotFound) {
		return errors.Join(model.ErrInvalidArgument, fmt.Errorf("parent category %s does not exist", parentID))
	}
	if err != nil {
		return err
	}
	if parent.Level != model.CategoryLevelRoot {
		return errors.Join(model.ErrInvalidArgument, fmt.Errorf("parent %s is not a level-1 category", parent.Code))
	}
	return nil
}

func validateRef(kind model.EntityKind, id string) error {
	if !kind.Valid() {
		return errors.Join(model.ErrInvalidArgument, fmt.Errorf("unknown kind %q", kind))
	}
	if id == "" {
		return errors.Join(model.ErrInvalidArgument, errors.New("id must be non-empty"))
	}
	return nil
}

func validateName(kind model.EntityKind, name string) error {
	switch {
	case !kind.Valid():
		return errors.Join(model.ErrInvalidArgument, fmt.Errorf("unknown kind %q", kind))
	case model.NormalizeName(name) == "":
		return errors.Join(model.ErrInvalidArgument, errors.New("name must be non-empty"))
	case len([]rune(name)) > MaxNameLength:
		return errors.Join(model.ErrInvalidArgument, fmt.Errorf("name must not exceed %d characters", MaxNameLength))
	}
	return nil
}
