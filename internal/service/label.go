package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"groupapi/internal/model"
	"groupapi/internal/repository"
)

// LabelInput is the payload of label creation.
type LabelInput struct {
	Name            string
	TextColor       string
	BackgroundColor string
}

// LabelPatch holds the editable fields of a label. Name is stored lower-cased.
type LabelPatch struct {
	Name            *string
	TextColor       *string
	BackgroundColor *string
}

func (p LabelPatch) normalized() LabelPatch {
	if p.Name != nil {
		name := strings.ToLower(*p.Name)
		p.Name = &name
	}
	return p
}

func (p LabelPatch) Apply(l *model.Label) {
	if p.Name != nil {
		l.Name = *p.Name
	}
	if p.TextColor != nil {
		l.TextColor = *p.TextColor
	}
	if p.BackgroundColor != nil {
		l.BackgroundColor = *p.BackgroundColor
	}
}

// LabelService manages global labels.
type LabelService interface {
	Create(ctx context.Context, in LabelInput) (*model.Label, error)
	FindAll(ctx context.Context, page PageRequest) (*Page[model.Label], error)
	FindOne(ctx context.Context, uid string) (*model.Label, error)
	Update(ctx context.Context, uid string, patch LabelPatch) (*model.Label, error)
	Delete(ctx context.Context, uid string) (*model.Label, error)
}

type labelService struct {
	base *Base[model.Label]
}

func NewLabelService(store repository.Store[model.Label], limits Limits, log *zap.Logger) LabelService {
	return &labelService{
		base: NewBase(store, func(l *model.Label) int64 { return l.ID }, limits, log),
	}
}

func (s *labelService) Create(ctx context.Context, in LabelInput) (*model.Label, error) {
	name := strings.ToLower(in.Name)
	return s.base.Create(ctx, &model.Label{
		UID:             uuid.NewString(),
		Name:            name,
		TextColor:       in.TextColor,
		BackgroundColor: in.BackgroundColor,
	}, Options{Unique: []Constraint{{Fields: repository.Where{"name": name}}}})
}

func (s *labelService) FindAll(ctx context.Context, page PageRequest) (*Page[model.Label], error) {
	return s.base.FindPage(ctx, FindOptions{
		PageRequest:  page,
		SearchFields: []string{"name"},
		Order:        []string{"id DESC"},
	})
}

func (s *labelService) FindOne(ctx context.Context, uid string) (*model.Label, error) {
	return s.base.GetOne(ctx, GetOptions{Where: repository.Where{"uid": uid}, CheckIfExists: true})
}

func (s *labelService) Update(ctx context.Context, uid string, patch LabelPatch) (*model.Label, error) {
	patch = patch.normalized()
	return s.base.GetOneAndUpdate(ctx, repository.Where{"uid": uid}, patch, Options{Unique: []Constraint{
		{Fields: repository.Where{"name": patch.Name}},
	}})
}

func (s *labelService) Delete(ctx context.Context, uid string) (*model.Label, error) {
	return s.base.GetOneAndRemove(ctx, repository.Where{"uid": uid})
}
