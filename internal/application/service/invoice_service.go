package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/aduanafuel/invoice-workflow/internal/application/port"
	"github.com/aduanafuel/invoice-workflow/internal/domain/entity"
	"github.com/aduanafuel/invoice-workflow/internal/domain/tax"
	"github.com/aduanafuel/invoice-workflow/internal/domain/workflow"
	"github.com/aduanafuel/invoice-workflow/pkg/utils"
)

// InvoiceInput carries the owner-editable fields of an invoice. Volume slots
// left at zero mean "slot not used"; at least one must be positive.
type InvoiceInput struct {
	Importer       string `json:"importer"`
	TaxID          string `json:"tax_id"`
	EntryNumber    string `json:"entry_number"`
	CustomsOffice  string `json:"customs_office"`
	CustomsLicense string `json:"customs_license"`
	CargoType      string `json:"cargo_type"`

	LitersTrailerOne  decimal.Decimal `json:"liters_trailer1"`
	LitersTrailerTwo  decimal.Decimal `json:"liters_trailer2"`
	LitersTankerTruck decimal.Decimal `json:"liters_tanker_truck"`
	LitersBarge       decimal.Decimal `json:"liters_barge"`

	UnitPricePerGallon decimal.Decimal `json:"unit_price_per_gallon"`
	Density            decimal.Decimal `json:"density"`
	GrossWeight        decimal.Decimal `json:"gross_weight"`
	ExchangeRate       decimal.Decimal `json:"exchange_rate"`

	// SaveAsDraft keeps the invoice editable without consuming a credit;
	// the credit is taken when the draft is submitted.
	SaveAsDraft bool `json:"save_as_draft"`
}

// InvoiceStats aggregates workflow counters for dashboards
type InvoiceStats struct {
	ByStatus               map[string]int  `json:"by_status"`
	ApprovedThisMonth      int             `json:"approved_this_month"`
	ApprovedValueThisMonth decimal.Decimal `json:"approved_value_this_month"`
}

// InvoiceService drives the invoice approval workflow. Every mutating
// operation runs in one transaction: status change, credit movement, history
// append and notifications persist together or not at all.
type InvoiceService interface {
	Submit(ctx context.Context, actorID int64, in InvoiceInput) (*entity.Invoice, error)
	Edit(ctx context.Context, actorID, id int64, in InvoiceInput) (*entity.Invoice, error)
	ApplyAction(ctx context.Context, id int64, action workflow.Trigger, actorID int64, comment string) (*entity.Invoice, error)
	Get(ctx context.Context, actorID, id int64) (*entity.Invoice, error)
	List(ctx context.Context, actorID int64, filter port.InvoiceFilter) ([]*entity.Invoice, error)
	History(ctx context.Context, actorID, invoiceID int64) ([]*entity.HistoryEntry, error)
	SetPaymentStatus(ctx context.Context, actorID, id int64, status, captureLine string) (*entity.Invoice, error)
	Delete(ctx context.Context, actorID, id int64) error
	Stats(ctx context.Context) (*InvoiceStats, error)
}

type invoiceServiceImpl struct {
	invoiceRepo port.InvoiceRepository
	userRepo    port.UserRepository
	taxRepo     port.TaxConfigRepository
	historyRepo port.HistoryRepository
	notifier    NotificationService
	txManager   port.TransactionManager
	logger      Logger
}

// NewInvoiceService creates a new InvoiceService
func NewInvoiceService(
	invoiceRepo port.InvoiceRepository,
	userRepo port.UserRepository,
	taxRepo port.TaxConfigRepository,
	historyRepo port.HistoryRepository,
	notifier NotificationService,
	txManager port.TransactionManager,
	logger Logger,
) InvoiceService {
	return &invoiceServiceImpl{
		invoiceRepo: invoiceRepo,
		userRepo:    userRepo,
		taxRepo:     taxRepo,
		historyRepo: historyRepo,
		notifier:    notifier,
		txManager:   txManager,
		logger:      logger,
	}
}

// Submit validates the inputs, computes totals against the current tax
// configuration and persists a new invoice. Unless SaveAsDraft is set the
// invoice enters pending_supervisor and one credit is consumed atomically
// with the insert.
func (s *invoiceServiceImpl) Submit(ctx context.Context, actorID int64, in InvoiceInput) (*entity.Invoice, error) {
	actor, err := s.userRepo.GetByID(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if actor == nil {
		return nil, fmt.Errorf("%w: user %d", ErrNotFound, actorID)
	}

	if err := validateInvoiceInput(in); err != nil {
		return nil, err
	}

	cfg, err := s.currentRates(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	invoice := &entity.Invoice{
		OwnerID:       actorID,
		Status:        workflow.StatePendingSupervisor.String(),
		PaymentStatus: entity.PaymentUnpaid,
		IssuedAt:      now,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if in.SaveAsDraft {
		invoice.Status = workflow.StateDraft.String()
	}
	applyInput(invoice, in)
	applyTotals(invoice, tax.Compute(calcInputs(in), cfg))

	err = s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		if !in.SaveAsDraft {
			debited, err := s.userRepo.DebitCredit(txCtx, actorID)
			if err != nil {
				return fmt.Errorf("debit credit: %w", err)
			}
			if !debited {
				return fmt.Errorf("%w: user %d", ErrInsufficientCredits, actorID)
			}
		}

		if err := s.invoiceRepo.Create(txCtx, invoice); err != nil {
			return fmt.Errorf("create invoice: %w", err)
		}

		action := workflow.TriggerSubmit.String()
		if in.SaveAsDraft {
			action = "create"
		}
		entry := &entity.HistoryEntry{
			InvoiceID:      invoice.ID,
			ActorID:        actorID,
			Action:         action,
			PreviousStatus: "",
			NewStatus:      invoice.Status,
			Timestamp:      now,
		}
		if err := s.historyRepo.Create(txCtx, entry); err != nil {
			return fmt.Errorf("create history: %w", err)
		}

		if !in.SaveAsDraft {
			title := "New invoice to review"
			msg := fmt.Sprintf("%s submitted invoice #%d for review.", actor.Name, invoice.ID)
			if err := s.notifier.NotifyRole(txCtx, entity.RoleSupervisor, &invoice.ID, title, msg, entity.SeverityInfo); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		s.logger.Error("Failed to submit invoice", "error", err, "actor_id", actorID)
		return nil, err
	}

	s.logger.Info("Invoice submitted", "id", invoice.ID, "owner_id", actorID, "status", invoice.Status)
	return invoice, nil
}

// Edit updates the inputs of a draft or suspended invoice and recomputes its
// totals. Editing a suspended invoice resubmits it to the supervisor queue.
func (s *invoiceServiceImpl) Edit(ctx context.Context, actorID, id int64, in InvoiceInput) (*entity.Invoice, error) {
	actor, err := s.userRepo.GetByID(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if actor == nil {
		return nil, fmt.Errorf("%w: user %d", ErrNotFound, actorID)
	}

	if err := validateInvoiceInput(in); err != nil {
		return nil, err
	}

	cfg, err := s.currentRates(ctx)
	if err != nil {
		return nil, err
	}

	var invoice *entity.Invoice
	err = s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		invoice, err = s.invoiceRepo.GetByID(txCtx, id)
		if err != nil {
			return err
		}
		if invoice == nil {
			return fmt.Errorf("%w: invoice %d", ErrNotFound, id)
		}

		if !canEdit(actor, invoice) {
			return fmt.Errorf("%w: invoice %d is not editable by user %d in state %s",
				ErrPermissionDenied, id, actorID, invoice.Status)
		}

		previous := workflow.State(invoice.Status)
		now := time.Now()

		applyInput(invoice, in)
		applyTotals(invoice, tax.Compute(calcInputs(in), cfg))
		invoice.UpdatedAt = now

		action := "edit"
		if previous == workflow.StateSuspended {
			machine := workflow.NewInvoiceMachine(previous)
			if err := machine.Fire(workflow.TriggerResubmit, effectiveRole(actor, invoice)); err != nil {
				return mapWorkflowErr(err)
			}
			invoice.Status = machine.State().String()
			invoice.SuspensionMessage = ""
			action = workflow.TriggerResubmit.String()
		}

		entry := &entity.HistoryEntry{
			InvoiceID:      invoice.ID,
			ActorID:        actorID,
			Action:         action,
			PreviousStatus: previous.String(),
			NewStatus:      invoice.Status,
			Timestamp:      now,
		}
		if err := s.historyRepo.Create(txCtx, entry); err != nil {
			return fmt.Errorf("create history: %w", err)
		}

		if previous == workflow.StateSuspended {
			title := fmt.Sprintf("Invoice #%d resubmitted", invoice.ID)
			msg := fmt.Sprintf("Invoice #%d was corrected and returned to the review queue.", invoice.ID)
			if err := s.notifier.Notify(txCtx, invoice.OwnerID, &invoice.ID, title, msg, entity.SeverityInfo); err != nil {
				return err
			}
		}

		if err := s.invoiceRepo.Update(txCtx, invoice); err != nil {
			return fmt.Errorf("update invoice: %w", err)
		}
		return nil
	})
	if err != nil {
		s.logger.Error("Failed to edit invoice", "error", err, "id", id, "actor_id", actorID)
		return nil, err
	}

	s.logger.Info("Invoice edited", "id", id, "actor_id", actorID, "status", invoice.Status)
	return invoice, nil
}

// ApplyAction drives a role-gated workflow action against an invoice. The
// transition table decides legality; side effects (reviewer stamps, credit
// movement, suspension message, approval time) follow the fired trigger.
func (s *invoiceServiceImpl) ApplyAction(ctx context.Context, id int64, action workflow.Trigger, actorID int64, comment string) (*entity.Invoice, error) {
	comment = strings.TrimSpace(comment)
	if workflow.RequiresComment(action) && comment == "" {
		return nil, fmt.Errorf("%w: action %s requires a comment", ErrValidation, action)
	}

	var invoice *entity.Invoice
	err := s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		var err error
		invoice, err = s.invoiceRepo.GetByID(txCtx, id)
		if err != nil {
			return err
		}
		if invoice == nil {
			return fmt.Errorf("%w: invoice %d", ErrNotFound, id)
		}

		actor, err := s.userRepo.GetByID(txCtx, actorID)
		if err != nil {
			return err
		}
		if actor == nil {
			return fmt.Errorf("%w: user %d", ErrNotFound, actorID)
		}

		role := effectiveRole(actor, invoice)
		if role == "" {
			return fmt.Errorf("%w: user %d has no role on invoice %d", ErrPermissionDenied, actorID, id)
		}

		previous := workflow.State(invoice.Status)
		machine := workflow.NewInvoiceMachine(previous)
		if err := machine.Fire(action, role); err != nil {
			return mapWorkflowErr(err)
		}

		now := time.Now()
		invoice.Status = machine.State().String()
		invoice.UpdatedAt = now

		ownerTitle := fmt.Sprintf("Invoice #%d update", invoice.ID)
		ownerMsg := ""
		ownerSeverity := entity.SeverityInfo

		switch action {
		case workflow.TriggerSubmit:
			debited, err := s.userRepo.DebitCredit(txCtx, invoice.OwnerID)
			if err != nil {
				return fmt.Errorf("debit credit: %w", err)
			}
			if !debited {
				return fmt.Errorf("%w: user %d", ErrInsufficientCredits, invoice.OwnerID)
			}
			ownerMsg = fmt.Sprintf("Invoice #%d was submitted for review.", invoice.ID)

			reviewMsg := fmt.Sprintf("Invoice #%d requires review.", invoice.ID)
			if err := s.notifier.NotifyRole(txCtx, entity.RoleSupervisor, &invoice.ID, "New invoice to review", reviewMsg, entity.SeverityInfo); err != nil {
				return err
			}

		case workflow.TriggerResubmit:
			invoice.SuspensionMessage = ""
			ownerMsg = fmt.Sprintf("Invoice #%d was returned to the review queue.", invoice.ID)

		case workflow.TriggerApprove:
			invoice.SupervisorID = &actor.ID
			ownerMsg = fmt.Sprintf("Invoice #%d was approved by the supervisor and sent for final approval.", invoice.ID)

			adminMsg := fmt.Sprintf("Invoice #%d was reviewed by %s and requires final approval.", invoice.ID, actor.Name)
			if err := s.notifier.NotifyRole(txCtx, entity.RoleAdmin, &invoice.ID, "Invoice pending final approval", adminMsg, entity.SeverityInfo); err != nil {
				return err
			}

		case workflow.TriggerSuspend:
			stampReviewer(invoice, actor)
			invoice.SuspensionMessage = comment
			ownerMsg = fmt.Sprintf("Invoice #%d was suspended. Review the comments and correct it.", invoice.ID)
			ownerSeverity = entity.SeverityWarning

		case workflow.TriggerReject:
			stampReviewer(invoice, actor)
			invoice.SuspensionMessage = comment
			if err := s.userRepo.AddCredits(txCtx, invoice.OwnerID, 1); err != nil {
				return fmt.Errorf("refund credit: %w", err)
			}
			ownerMsg = fmt.Sprintf("Invoice #%d was rejected. The submission credit was returned.", invoice.ID)
			ownerSeverity = entity.SeverityWarning

		case workflow.TriggerFinalApprove:
			invoice.AdminID = &actor.ID
			invoice.ApprovedAt = &now
			ownerMsg = fmt.Sprintf("Invoice #%d received final approval.", invoice.ID)
			ownerSeverity = entity.SeveritySuccess

		case workflow.TriggerCancel:
			ownerMsg = fmt.Sprintf("Invoice #%d was cancelled.", invoice.ID)
			ownerSeverity = entity.SeverityWarning

		default:
			return fmt.Errorf("%w: unknown action %s", ErrValidation, action)
		}

		if err := s.invoiceRepo.Update(txCtx, invoice); err != nil {
			return fmt.Errorf("update invoice: %w", err)
		}

		entry := &entity.HistoryEntry{
			InvoiceID:      invoice.ID,
			ActorID:        actorID,
			Action:         action.String(),
			Comment:        comment,
			PreviousStatus: previous.String(),
			NewStatus:      invoice.Status,
			Timestamp:      now,
		}
		if err := s.historyRepo.Create(txCtx, entry); err != nil {
			return fmt.Errorf("create history: %w", err)
		}

		if err := s.notifier.Notify(txCtx, invoice.OwnerID, &invoice.ID, ownerTitle, ownerMsg, ownerSeverity); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		s.logger.Error("Failed to apply action", "error", err, "id", id, "action", action.String(), "actor_id", actorID)
		return nil, err
	}

	s.logger.Info("Action applied", "id", id, "action", action.String(), "actor_id", actorID, "status", invoice.Status)
	return invoice, nil
}

// Get retrieves an invoice; owners see their own, supervisors and admins see all
func (s *invoiceServiceImpl) Get(ctx context.Context, actorID, id int64) (*entity.Invoice, error) {
	actor, invoice, err := s.loadActorAndInvoice(ctx, actorID, id)
	if err != nil {
		return nil, err
	}
	if invoice.OwnerID != actorID && !actor.IsSupervisor() && !actor.IsAdmin() {
		return nil, fmt.Errorf("%w: invoice %d", ErrPermissionDenied, id)
	}
	return invoice, nil
}

// List retrieves invoices matching the filter. Plain users are always scoped
// to their own invoices regardless of the filter.
func (s *invoiceServiceImpl) List(ctx context.Context, actorID int64, filter port.InvoiceFilter) ([]*entity.Invoice, error) {
	actor, err := s.userRepo.GetByID(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if actor == nil {
		return nil, fmt.Errorf("%w: user %d", ErrNotFound, actorID)
	}

	if !actor.IsSupervisor() && !actor.IsAdmin() {
		filter.OwnerID = actorID
	}

	invoices, err := s.invoiceRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("Failed to list invoices", "error", err, "actor_id", actorID)
		return nil, err
	}
	return invoices, nil
}

// History returns the invoice audit trail, newest first
func (s *invoiceServiceImpl) History(ctx context.Context, actorID, invoiceID int64) ([]*entity.HistoryEntry, error) {
	if _, err := s.Get(ctx, actorID, invoiceID); err != nil {
		return nil, err
	}

	entries, err := s.historyRepo.ListByInvoice(ctx, invoiceID)
	if err != nil {
		s.logger.Error("Failed to load history", "error", err, "invoice_id", invoiceID)
		return nil, err
	}
	return entries, nil
}

// SetPaymentStatus records payment progress on an approved invoice (admin only)
func (s *invoiceServiceImpl) SetPaymentStatus(ctx context.Context, actorID, id int64, status, captureLine string) (*entity.Invoice, error) {
	if !entity.ValidPaymentStatus(status) {
		return nil, fmt.Errorf("%w: unknown payment status %q", ErrValidation, status)
	}

	actor, invoice, err := s.loadActorAndInvoice(ctx, actorID, id)
	if err != nil {
		return nil, err
	}
	if !actor.IsAdmin() {
		return nil, fmt.Errorf("%w: payment status is admin-only", ErrPermissionDenied)
	}
	if invoice.Status != workflow.StateApproved.String() {
		return nil, fmt.Errorf("%w: invoice %d is not approved", ErrValidation, id)
	}

	invoice.PaymentStatus = status
	if captureLine != "" {
		invoice.CaptureLine = captureLine
	}
	invoice.UpdatedAt = time.Now()

	if err := s.invoiceRepo.Update(ctx, invoice); err != nil {
		s.logger.Error("Failed to update payment status", "error", err, "id", id)
		return nil, err
	}

	s.logger.Info("Payment status updated", "id", id, "payment_status", status)
	return invoice, nil
}

// Delete removes an invoice and its history (admin only)
func (s *invoiceServiceImpl) Delete(ctx context.Context, actorID, id int64) error {
	actor, invoice, err := s.loadActorAndInvoice(ctx, actorID, id)
	if err != nil {
		return err
	}
	if !actor.IsAdmin() {
		return fmt.Errorf("%w: delete is admin-only", ErrPermissionDenied)
	}

	if err := s.invoiceRepo.Delete(ctx, invoice.ID); err != nil {
		s.logger.Error("Failed to delete invoice", "error", err, "id", id)
		return err
	}

	s.logger.Info("Invoice deleted", "id", id, "actor_id", actorID)
	return nil
}

// Stats aggregates workflow counters for dashboards
func (s *invoiceServiceImpl) Stats(ctx context.Context) (*InvoiceStats, error) {
	byStatus, err := s.invoiceRepo.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	count, total, err := s.invoiceRepo.ApprovedTotalSince(ctx, monthStart)
	if err != nil {
		return nil, err
	}

	return &InvoiceStats{
		ByStatus:               byStatus,
		ApprovedThisMonth:      count,
		ApprovedValueThisMonth: total,
	}, nil
}

func (s *invoiceServiceImpl) loadActorAndInvoice(ctx context.Context, actorID, id int64) (*entity.User, *entity.Invoice, error) {
	actor, err := s.userRepo.GetByID(ctx, actorID)
	if err != nil {
		return nil, nil, err
	}
	if actor == nil {
		return nil, nil, fmt.Errorf("%w: user %d", ErrNotFound, actorID)
	}

	invoice, err := s.invoiceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if invoice == nil {
		return nil, nil, fmt.Errorf("%w: invoice %d", ErrNotFound, id)
	}
	return actor, invoice, nil
}

func (s *invoiceServiceImpl) currentRates(ctx context.Context) (tax.Rates, error) {
	cfg, err := s.taxRepo.Current(ctx)
	if err != nil {
		return tax.Rates{}, err
	}
	if cfg == nil {
		return tax.Rates{}, ErrConfigurationMissing
	}
	return tax.Rates{
		IEPS:             cfg.IEPS,
		IVA:              cfg.IVA,
		PVR:              cfg.PVR,
		IVAPVR:           cfg.IVAPVR,
		ConversionFactor: cfg.ConversionFactor,
	}, nil
}

// effectiveRole resolves the capacity in which the actor touches the invoice.
// Ownership wins over role so a supervisor cannot review their own invoice.
func effectiveRole(actor *entity.User, invoice *entity.Invoice) workflow.Role {
	switch {
	case invoice.OwnerID == actor.ID:
		return workflow.RoleOwner
	case actor.IsAdmin():
		return workflow.RoleAdmin
	case actor.IsSupervisor():
		return workflow.RoleSupervisor
	}
	return ""
}

// canEdit mirrors the ownership rule: owners edit drafts and suspended
// invoices, admins edit anything not yet terminal.
func canEdit(actor *entity.User, invoice *entity.Invoice) bool {
	state := workflow.State(invoice.Status)
	if state.IsTerminal() {
		return false
	}
	if actor.IsAdmin() {
		return true
	}
	return invoice.OwnerID == actor.ID &&
		(state == workflow.StateDraft || state == workflow.StateSuspended)
}

func stampReviewer(invoice *entity.Invoice, actor *entity.User) {
	if actor.IsAdmin() {
		invoice.AdminID = &actor.ID
		return
	}
	invoice.SupervisorID = &actor.ID
}

func mapWorkflowErr(err error) error {
	if errors.Is(err, workflow.ErrRoleNotAllowed) {
		return fmt.Errorf("%w: %v", ErrPermissionDenied, err)
	}
	return err
}

func validateInvoiceInput(in InvoiceInput) error {
	required := map[string]string{
		"importer":        in.Importer,
		"tax_id":          in.TaxID,
		"entry_number":    in.EntryNumber,
		"customs_office":  in.CustomsOffice,
		"customs_license": in.CustomsLicense,
	}
	for field, value := range required {
		if strings.TrimSpace(value) == "" {
			return fmt.Errorf("%w: %s is required", ErrValidation, field)
		}
	}

	if err := utils.ValidateRFC(strings.ToUpper(strings.TrimSpace(in.TaxID))); err != nil {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}

	if !entity.ValidCargoType(in.CargoType) {
		return fmt.Errorf("%w: unknown cargo type %q", ErrValidation, in.CargoType)
	}

	volumes := map[string]decimal.Decimal{
		"liters_trailer1":     in.LitersTrailerOne,
		"liters_trailer2":     in.LitersTrailerTwo,
		"liters_tanker_truck": in.LitersTankerTruck,
		"liters_barge":        in.LitersBarge,
	}
	for field, v := range volumes {
		if v.IsNegative() {
			return fmt.Errorf("%w: %s must not be negative", ErrValidation, field)
		}
	}

	if !calcInputs(in).HasVolume() {
		return fmt.Errorf("%w: at least one volume must be positive", ErrValidation)
	}

	if in.UnitPricePerGallon.IsNegative() {
		return fmt.Errorf("%w: unit_price_per_gallon must not be negative", ErrValidation)
	}
	return nil
}

func calcInputs(in InvoiceInput) tax.Inputs {
	return tax.Inputs{
		LitersTrailerOne:   in.LitersTrailerOne,
		LitersTrailerTwo:   in.LitersTrailerTwo,
		LitersTankerTruck:  in.LitersTankerTruck,
		LitersBarge:        in.LitersBarge,
		UnitPricePerGallon: in.UnitPricePerGallon,
	}
}

func applyInput(invoice *entity.Invoice, in InvoiceInput) {
	invoice.Importer = in.Importer
	invoice.TaxID = in.TaxID
	invoice.EntryNumber = in.EntryNumber
	invoice.CustomsOffice = in.CustomsOffice
	invoice.CustomsLicense = in.CustomsLicense
	invoice.CargoType = in.CargoType
	invoice.LitersTrailerOne = in.LitersTrailerOne
	invoice.LitersTrailerTwo = in.LitersTrailerTwo
	invoice.LitersTankerTruck = in.LitersTankerTruck
	invoice.LitersBarge = in.LitersBarge
	invoice.UnitPricePerGallon = in.UnitPricePerGallon
	invoice.Density = in.Density
	invoice.GrossWeight = in.GrossWeight
	invoice.ExchangeRate = in.ExchangeRate
}

func applyTotals(invoice *entity.Invoice, t tax.Totals) {
	invoice.GallonsTrailerOne = t.GallonsTrailerOne
	invoice.GallonsTrailerTwo = t.GallonsTrailerTwo
	invoice.GallonsTankerTruck = t.GallonsTankerTruck
	invoice.GallonsBarge = t.GallonsBarge
	invoice.TotalGallons = t.TotalGallons
	invoice.InvoiceValue = t.InvoiceValue
	invoice.IEPS = t.IEPS
	invoice.IVA = t.IVA
	invoice.PVR = t.PVR
	invoice.IVAPVR = t.IVAPVR
	invoice.TotalTaxes = t.TotalTaxes
	invoice.TotalDue = t.TotalDue
	// Customs value in local currency follows the declared exchange rate.
	invoice.CustomsValue = t.InvoiceValue.Mul(invoice.ExchangeRate).Round(2)
}
