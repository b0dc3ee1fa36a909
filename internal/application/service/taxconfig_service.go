package service

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/aduanafuel/invoice-workflow/internal/application/port"
	"github.com/aduanafuel/invoice-workflow/internal/domain/entity"
)

// RatesInput carries a new tax configuration version
type RatesInput struct {
	IEPS             decimal.Decimal `json:"ieps"`
	IVA              decimal.Decimal `json:"iva"`
	PVR              decimal.Decimal `json:"pvr"`
	IVAPVR           decimal.Decimal `json:"iva_pvr"`
	ConversionFactor decimal.Decimal `json:"conversion_factor"`
}

// TaxConfigService manages the versioned tax configuration. Updates insert a
// new record; the most recently created one is the active configuration.
type TaxConfigService interface {
	Current(ctx context.Context) (*entity.TaxConfiguration, error)
	Update(ctx context.Context, actorID int64, in RatesInput) (*entity.TaxConfiguration, error)
	History(ctx context.Context, limit int) ([]*entity.TaxConfiguration, error)
}

type taxConfigServiceImpl struct {
	taxRepo  port.TaxConfigRepository
	userRepo port.UserRepository
	logger   Logger
}

// NewTaxConfigService creates a new TaxConfigService
func NewTaxConfigService(taxRepo port.TaxConfigRepository, userRepo port.UserRepository, logger Logger) TaxConfigService {
	return &taxConfigServiceImpl{
		taxRepo:  taxRepo,
		userRepo: userRepo,
		logger:   logger,
	}
}

// Current resolves the active configuration
func (s *taxConfigServiceImpl) Current(ctx context.Context) (*entity.TaxConfiguration, error) {
	cfg, err := s.taxRepo.Current(ctx)
	if err != nil {
		return nil, err
	}
	if cfg == nil {
		return nil, ErrConfigurationMissing
	}
	return cfg, nil
}

// Update inserts a new configuration version (admin only)
func (s *taxConfigServiceImpl) Update(ctx context.Context, actorID int64, in RatesInput) (*entity.TaxConfiguration, error) {
	actor, err := s.userRepo.GetByID(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if actor == nil {
		return nil, fmt.Errorf("%w: user %d", ErrNotFound, actorID)
	}
	if !actor.IsAdmin() {
		return nil, fmt.Errorf("%w: tax configuration is admin-only", ErrPermissionDenied)
	}

	if err := validateRates(in); err != nil {
		return nil, err
	}

	cfg := &entity.TaxConfiguration{
		IEPS:             in.IEPS,
		IVA:              in.IVA,
		PVR:              in.PVR,
		IVAPVR:           in.IVAPVR,
		ConversionFactor: in.ConversionFactor,
		UpdatedBy:        &actorID,
		CreatedAt:        time.Now(),
	}

	if err := s.taxRepo.Insert(ctx, cfg); err != nil {
		s.logger.Error("Failed to insert tax configuration", "error", err, "actor_id", actorID)
		return nil, err
	}

	s.logger.Info("Tax configuration updated", "id", cfg.ID, "actor_id", actorID)
	return cfg, nil
}

// History returns the most recent configuration versions, newest first
func (s *taxConfigServiceImpl) History(ctx context.Context, limit int) ([]*entity.TaxConfiguration, error) {
	return s.taxRepo.History(ctx, limit)
}

func validateRates(in RatesInput) error {
	one := decimal.NewFromInt(1)

	if in.IEPS.IsNegative() {
		return fmt.Errorf("%w: ieps must not be negative", ErrValidation)
	}
	if in.IVA.IsNegative() || in.IVA.GreaterThan(one) {
		return fmt.Errorf("%w: iva must be between 0 and 1", ErrValidation)
	}
	if in.PVR.IsNegative() {
		return fmt.Errorf("%w: pvr must not be negative", ErrValidation)
	}
	if in.IVAPVR.IsNegative() || in.IVAPVR.GreaterThan(one) {
		return fmt.Errorf("%w: iva_pvr must be between 0 and 1", ErrValidation)
	}
	if !in.ConversionFactor.IsPositive() {
		return fmt.Errorf("%w: conversion_factor must be positive", ErrValidation)
	}
	return nil
}
