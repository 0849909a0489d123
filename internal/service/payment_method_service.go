package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/digkill/cinexa/internal/models"
)

const defaultPaymentIcon = "💳"

type PaymentMethodService struct {
	methods PaymentMethodRepository
	ids     IDGenerator
	log     *slog.Logger

	mu     sync.Mutex
	drafts map[string]*draft
}

// draft holds the edits an admin has staged but not saved yet, in the order
// the methods were first touched. Only the changed fields are kept so that a
// save never rewrites fields the admin did not touch.
type draft struct {
	staged map[string]*stagedChange
	order  []string
}

// stagedChange is the diff staged for one method. active is the target
// value of the active flag, nil when the flag is unchanged.
type stagedChange struct {
	patch  PaymentMethodPatch
	active *bool
}

type CreatePaymentMethodInput struct {
	Name          string
	Detail        string
	Icon          string
	BankName      string
	AccountNumber string
	Beneficiary   string
}

type PaymentMethodPatch struct {
	Name          *string
	Detail        *string
	Icon          *string
	BankName      *string
	AccountNumber *string
	Beneficiary   *string
}

// Confirmer approves a bulk save. It receives the methods about to be written.
type Confirmer interface {
	Confirm(changes []models.PaymentMethod) bool
}

type ConfirmFunc func(changes []models.PaymentMethod) bool

func (f ConfirmFunc) Confirm(changes []models.PaymentMethod) bool { return f(changes) }

func NewPaymentMethodService(methods PaymentMethodRepository, ids IDGenerator, log *slog.Logger) *PaymentMethodService {
	return &PaymentMethodService{
		methods: methods,
		ids:     ids,
		log:     log,
		drafts:  make(map[string]*draft),
	}
}

// EnsureDefaults seeds the registry when it is empty.
func (s *PaymentMethodService) EnsureDefaults(ctx context.Context) error {
	existing, err := s.methods.List(ctx)
	if err != nil {
		return fmt.Errorf("list payment methods: %w", err)
	}
	if len(existing) > 0 {
		return nil
	}
	for _, m := range defaultPaymentMethods() {
		if err := s.methods.Upsert(ctx, &m); err != nil {
			return fmt.Errorf("seed payment method %s: %w", m.ID, err)
		}
	}
	return nil
}

func (s *PaymentMethodService) List(ctx context.Context) ([]models.PaymentMethod, error) {
	methods, err := s.methods.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list payment methods: %w", err)
	}
	return methods, nil
}

func (s *PaymentMethodService) ListActive(ctx context.Context) ([]models.PaymentMethod, error) {
	methods, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	active := methods[:0:0]
	for _, m := range methods {
		if m.IsActive {
			active = append(active, m)
		}
	}
	return active, nil
}

func (s *PaymentMethodService) Get(ctx context.Context, id string) (*models.PaymentMethod, error) {
	m, err := s.methods.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get payment method: %w", err)
	}
	if m == nil {
		return nil, fmt.Errorf("%w: payment method %s", ErrNotFound, id)
	}
	return m, nil
}

// Create stores a new active method immediately, bypassing staging.
func (s *PaymentMethodService) Create(ctx context.Context, input CreatePaymentMethodInput) (*models.PaymentMethod, error) {
	name := strings.TrimSpace(input.Name)
	detail := strings.TrimSpace(input.Detail)
	if name == "" || detail == "" {
		return nil, fmt.Errorf("%w: name and detail are required", ErrValidation)
	}
	icon := strings.TrimSpace(input.Icon)
	if icon == "" {
		icon = defaultPaymentIcon
	}
	method := &models.PaymentMethod{
		ID:            s.ids.NewID(),
		Name:          name,
		Detail:        detail,
		Icon:          icon,
		IsActive:      true,
		BankName:      strings.TrimSpace(input.BankName),
		AccountNumber: strings.TrimSpace(input.AccountNumber),
		Beneficiary:   strings.TrimSpace(input.Beneficiary),
	}
	if err := s.methods.Upsert(ctx, method); err != nil {
		return nil, fmt.Errorf("create payment method: %w", err)
	}
	s.log.Info("payment method created", "method_id", method.ID)
	return method, nil
}

// Delete removes a method immediately and drops any staged edits for it.
func (s *PaymentMethodService) Delete(ctx context.Context, id string) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.methods.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete payment method: %w", err)
	}

	s.mu.Lock()
	for _, d := range s.drafts {
		d.drop(id)
	}
	s.mu.Unlock()

	s.log.Info("payment method deleted", "method_id", id)
	return nil
}

// Toggle stages a flip of the active flag as ownerID currently sees it.
func (s *PaymentMethodService) Toggle(ctx context.Context, ownerID, id string) (*models.PaymentMethod, error) {
	return s.stage(ctx, ownerID, id, func(stored models.PaymentMethod, c *stagedChange) {
		current := stored.IsActive
		if c.active != nil {
			current = *c.active
		}
		next := !current
		if next == stored.IsActive {
			c.active = nil
			return
		}
		c.active = &next
	})
}

// Edit stages field changes. Name and detail cannot be blanked.
func (s *PaymentMethodService) Edit(ctx context.Context, ownerID, id string, patch PaymentMethodPatch) (*models.PaymentMethod, error) {
	if patch.Name != nil && strings.TrimSpace(*patch.Name) == "" {
		return nil, fmt.Errorf("%w: name cannot be empty", ErrValidation)
	}
	if patch.Detail != nil && strings.TrimSpace(*patch.Detail) == "" {
		return nil, fmt.Errorf("%w: detail cannot be empty", ErrValidation)
	}
	return s.stage(ctx, ownerID, id, func(_ models.PaymentMethod, c *stagedChange) {
		merge := func(dst **string, v *string) {
			if v != nil {
				trimmed := strings.TrimSpace(*v)
				*dst = &trimmed
			}
		}
		merge(&c.patch.Name, patch.Name)
		merge(&c.patch.Detail, patch.Detail)
		merge(&c.patch.Icon, patch.Icon)
		merge(&c.patch.BankName, patch.BankName)
		merge(&c.patch.AccountNumber, patch.AccountNumber)
		merge(&c.patch.Beneficiary, patch.Beneficiary)
	})
}

// View returns the registry as ownerID currently sees it: stored methods with
// that owner's staged edits applied.
func (s *PaymentMethodService) View(ctx context.Context, ownerID string) ([]models.PaymentMethod, error) {
	methods, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.drafts[ownerID]
	if !ok {
		return methods, nil
	}
	for i, m := range methods {
		if c, ok := d.staged[m.ID]; ok {
			methods[i] = c.apply(m)
		}
	}
	return methods, nil
}

// Staged lists the methods ownerID has changed since the last save, as they
// would be stored after saving.
func (s *PaymentMethodService) Staged(ctx context.Context, ownerID string) ([]models.PaymentMethod, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.preview(ctx, ownerID)
}

func (s *PaymentMethodService) HasChanges(ownerID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.drafts[ownerID]
	return ok && len(d.order) > 0
}

func (s *PaymentMethodService) Discard(ownerID string) {
	s.mu.Lock()
	delete(s.drafts, ownerID)
	s.mu.Unlock()
}

// Save writes the staged edits of ownerID. Without staged edits it returns
// false and never consults confirm. Otherwise confirm must approve the exact
// list of changed methods; when it declines nothing is written, the edits stay
// staged and ErrConfirmationRequired is returned.
//
// Each method is re-read and only its staged fields are applied, so changes
// saved by other admins in the meantime are kept. Writes are not atomic: if
// one fails, the methods written before it stay saved and the rest stay staged.
func (s *PaymentMethodService) Save(ctx context.Context, ownerID string, confirm Confirmer) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	changes, err := s.preview(ctx, ownerID)
	if err != nil {
		return false, err
	}
	if len(changes) == 0 {
		return false, nil
	}
	if confirm == nil || !confirm.Confirm(changes) {
		return false, ErrConfirmationRequired
	}

	d := s.drafts[ownerID]
	for _, m := range changes {
		if err := s.methods.Upsert(ctx, &m); err != nil {
			return false, fmt.Errorf("save payment method %s: %w", m.ID, err)
		}
		d.drop(m.ID)
	}
	delete(s.drafts, ownerID)

	s.log.Info("payment methods saved", "owner_id", ownerID, "changed", len(changes))
	return true, nil
}

// preview applies the owner's staged changes to the current rows. Methods
// deleted since staging are dropped from the draft. Callers hold s.mu.
func (s *PaymentMethodService) preview(ctx context.Context, ownerID string) ([]models.PaymentMethod, error) {
	d, ok := s.drafts[ownerID]
	if !ok {
		return nil, nil
	}
	out := make([]models.PaymentMethod, 0, len(d.order))
	for _, id := range append([]string(nil), d.order...) {
		current, err := s.methods.Get(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("get payment method: %w", err)
		}
		if current == nil {
			d.drop(id)
			continue
		}
		out = append(out, d.staged[id].apply(*current))
	}
	if len(d.order) == 0 {
		delete(s.drafts, ownerID)
	}
	return out, nil
}

func (s *PaymentMethodService) stage(ctx context.Context, ownerID, id string, mutate func(stored models.PaymentMethod, c *stagedChange)) (*models.PaymentMethod, error) {
	stored, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.drafts[ownerID]
	if !ok {
		d = &draft{staged: make(map[string]*stagedChange)}
		s.drafts[ownerID] = d
	}
	c, ok := d.staged[id]
	if !ok {
		c = &stagedChange{}
		d.staged[id] = c
		d.order = append(d.order, id)
	}
	mutate(*stored, c)

	out := c.apply(*stored)
	if c.empty() {
		d.drop(id)
		if len(d.order) == 0 {
			delete(s.drafts, ownerID)
		}
	}
	return &out, nil
}

func (c *stagedChange) apply(m models.PaymentMethod) models.PaymentMethod {
	set := func(dst *string, v *string) {
		if v != nil {
			*dst = *v
		}
	}
	set(&m.Name, c.patch.Name)
	set(&m.Detail, c.patch.Detail)
	set(&m.Icon, c.patch.Icon)
	set(&m.BankName, c.patch.BankName)
	set(&m.AccountNumber, c.patch.AccountNumber)
	set(&m.Beneficiary, c.patch.Beneficiary)
	if m.Icon == "" {
		m.Icon = defaultPaymentIcon
	}
	if c.active != nil {
		m.IsActive = *c.active
	}
	return m
}

func (c *stagedChange) empty() bool {
	p := c.patch
	return c.active == nil && p.Name == nil && p.Detail == nil && p.Icon == nil &&
		p.BankName == nil && p.AccountNumber == nil && p.Beneficiary == nil
}

func (d *draft) drop(id string) {
	if _, ok := d.staged[id]; !ok {
		return
	}
	delete(d.staged, id)
	for i, existing := range d.order {
		if existing == id {
			d.order = append(d.order[:i], d.order[i+1:]...)
			break
		}
	}
}

func defaultPaymentMethods() []models.PaymentMethod {
	return []models.PaymentMethod{
		{ID: "card", Name: "Credit/Debit Card", Detail: "Visa, Mastercard, Amex", Icon: "💳", IsActive: true,
			BankName: "Stripe Secure", AccountNumber: "Automatic", Beneficiary: "Cinexa Inc."},
		{ID: "wise", Name: "Wise (TransferWise)", Detail: "International (USD/EUR/GBP)", Icon: "🌏", IsActive: true,
			BankName: "Wise Payments", AccountNumber: "billing@cinexa.local", Beneficiary: "Cinexa Global"},
		{ID: "multicaixa", Name: "Multicaixa / BAI", Detail: "Angola (IBAN transfer)", Icon: "🇦🇴", IsActive: true,
			BankName: "Banco BAI", AccountNumber: "AO06.0040.0000.1234.5678.9012.3", Beneficiary: "Cinexa Angola"},
		{ID: "bfa", Name: "Banco BFA", Detail: "Angola (IBAN transfer)", Icon: "🇦🇴", IsActive: true,
			BankName: "Banco de Fomento Angola", AccountNumber: "AO06.0006.0000.8888.7777.6666.5", Beneficiary: "Cinexa Angola"},
		{ID: "atlantico", Name: "Banco Atlântico", Detail: "Angola (IBAN transfer)", Icon: "🇦🇴", IsActive: true,
			BankName: "Banco Millennium Atlântico", AccountNumber: "AO06.0055.0000.9999.8888.7777.1", Beneficiary: "Cinexa Angola"},
		{ID: "pix", Name: "Pix", Detail: "Brazil (instant payment)", Icon: "💠", IsActive: true,
			BankName: "Nubank", AccountNumber: "pix@cinexa.local (email key)", Beneficiary: "Cinexa Latam"},
		{ID: "paypal", Name: "PayPal", Detail: "International / balance", Icon: "🅿️", IsActive: true,
			BankName: "PayPal", AccountNumber: "paypal@cinexa.local", Beneficiary: "Cinexa Admin"},
		{ID: "crypto", Name: "Crypto (USDT)", Detail: "TRC20 / ERC20 network", Icon: "₿", IsActive: true,
			BankName: "Binance / Trust Wallet", AccountNumber: "T9y7...Kj8L (USDT TRC20)", Beneficiary: "Cinexa Crypto Fund"},
	}
}
