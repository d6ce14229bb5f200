// Package store owns the synchronized in-memory view of one user's
// financial records. Mutations apply locally first, then confirm
// against the remote backend, then reconcile (replace the provisional
// record with the stored one, or roll the local change back on
// failure).
package store

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/lfarias/grana/internal/models"
	"github.com/lfarias/grana/internal/remote"
	"github.com/lfarias/grana/internal/rules"
	"github.com/lfarias/grana/pkg/logger"
)

const (
	tempIDPrefix = "temp-"
	dateLayout   = "2006-01-02"
	monthLayout  = "2006-01"
)

// Store holds the three collections for the currently bound user.
// Consumers read snapshots and mutate only through its methods.
type Store struct {
	backend remote.Backend
	now     func() time.Time

	mu           sync.Mutex
	userID       string
	epoch        uint64
	loading      bool
	transactions []models.Transaction
	bills        []models.Bill
	goals        []models.Goal

	// goalLocks serializes deposits per goal id so two concurrent
	// deposits cannot both read the same stale CurrentAmount.
	goalMu    sync.Mutex
	goalLocks map[string]*sync.Mutex
}

func New(backend remote.Backend) *Store {
	return &Store{
		backend:   backend,
		now:       time.Now,
		goalLocks: make(map[string]*sync.Mutex),
	}
}

// --- Binding ---

// Bind scopes the store to userID and reloads all three collections.
// An empty id clears everything. The three reads run concurrently;
// the loading flag drops only after all of them settle, and a Bind
// issued later always wins over slower loads from an earlier one.
func (s *Store) Bind(ctx context.Context, userID string) error {
	s.mu.Lock()
	s.epoch++
	epoch := s.epoch
	s.userID = userID
	if userID == "" {
		s.transactions, s.bills, s.goals = nil, nil, nil
		s.loading = false
		s.mu.Unlock()
		return nil
	}
	s.loading = true
	s.mu.Unlock()

	var wg sync.WaitGroup
	loadErrs := make([]error, 3)
	wg.Add(3)
	go func() {
		defer wg.Done()
		loadErrs[0] = s.loadTransactions(ctx, userID, epoch)
	}()
	go func() {
		defer wg.Done()
		loadErrs[1] = s.loadBills(ctx, userID, epoch)
	}()
	go func() {
		defer wg.Done()
		loadErrs[2] = s.loadGoals(ctx, userID, epoch)
	}()
	wg.Wait()

	s.mu.Lock()
	if s.epoch == epoch {
		s.loading = false
	}
	s.mu.Unlock()

	if err := errors.Join(loadErrs...); err != nil {
		logger.FromContext(ctx).Error("load failed", "user_id", userID, "error", err)
		return err
	}
	return nil
}

func (s *Store) loadTransactions(ctx context.Context, userID string, epoch uint64) error {
	rows, err := s.backend.Transactions().List(ctx, userID, remote.Order{Field: "date", Desc: true})
	txs := make([]models.Transaction, 0, len(rows))
	for _, row := range rows {
		txs = append(txs, remote.DecodeTransaction(row))
	}
	if err != nil {
		txs = nil
	}

	s.mu.Lock()
	if s.epoch == epoch {
		s.transactions = txs
	}
	s.mu.Unlock()
	return err
}

func (s *Store) loadBills(ctx context.Context, userID string, epoch uint64) error {
	rows, err := s.backend.Bills().List(ctx, userID, remote.Order{Field: "due_date"})
	bills := make([]models.Bill, 0, len(rows))
	for _, row := range rows {
		bills = append(bills, remote.DecodeBill(row))
	}
	if err != nil {
		bills = nil
	}

	s.mu.Lock()
	if s.epoch == epoch {
		s.bills = bills
	}
	s.mu.Unlock()
	return err
}

func (s *Store) loadGoals(ctx context.Context, userID string, epoch uint64) error {
	rows, err := s.backend.Goals().List(ctx, userID, remote.Order{Field: "created_at"})
	goals := make([]models.Goal, 0, len(rows))
	for _, row := range rows {
		goals = append(goals, remote.DecodeGoal(row))
	}
	if err != nil {
		goals = nil
	}

	s.mu.Lock()
	if s.epoch == epoch {
		s.goals = goals
	}
	s.mu.Unlock()
	return err
}

// --- Snapshots ---

func (s *Store) Transactions() []models.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Transaction(nil), s.transactions...)
}

func (s *Store) Bills() []models.Bill {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Bill(nil), s.bills...)
}

func (s *Store) Goals() []models.Goal {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Goal(nil), s.goals...)
}

func (s *Store) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

func (s *Store) UserID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.userID
}

// --- Transactions ---

// AddTransaction prepends a provisional record immediately, then
// confirms it against the backend. On success the provisional record
// is replaced in place by the stored one; on failure it is removed.
// If the record was deleted before confirmation arrives, confirmation
// is a no-op rather than a resurrection.
func (s *Store) AddTransaction(ctx context.Context, draft models.TransactionDraft) (models.Transaction, error) {
	tempID := tempIDPrefix + uuid.NewString()
	provisional := models.Transaction{
		ID:            tempID,
		Type:          draft.Type,
		Amount:        draft.Amount,
		Date:          draft.Date,
		Category:      draft.Category,
		PaymentMethod: draft.PaymentMethod,
		Description:   draft.Description,
	}

	s.mu.Lock()
	owner := s.userID
	epoch := s.epoch
	s.transactions = append([]models.Transaction{provisional}, s.transactions...)
	s.mu.Unlock()

	stored, err := s.backend.Transactions().Insert(ctx, remote.EncodeTransaction(owner, draft))

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		if s.epoch == epoch {
			if i := s.transactionIndexLocked(tempID); i >= 0 {
				s.transactions = append(s.transactions[:i:i], s.transactions[i+1:]...)
			}
		}
		logger.FromContext(ctx).Error("transaction insert failed", "error", err)
		return models.Transaction{}, err
	}

	confirmed := remote.DecodeTransaction(stored)
	if s.epoch == epoch {
		if i := s.transactionIndexLocked(tempID); i >= 0 {
			s.transactions[i] = confirmed
		}
	}
	return confirmed, nil
}

// DeleteTransaction removes the record locally right away and then
// deletes it remotely. If the remote delete fails the record is
// restored and the error returned.
func (s *Store) DeleteTransaction(ctx context.Context, id string) error {
	s.mu.Lock()
	epoch := s.epoch
	i := s.transactionIndexLocked(id)
	if i < 0 {
		s.mu.Unlock()
		return nil
	}
	removed := s.transactions[i]
	s.transactions = append(s.transactions[:i:i], s.transactions[i+1:]...)
	s.mu.Unlock()

	// A provisional record has no authoritative id yet; dropping it
	// locally is enough, the pending confirmation will find it gone.
	if strings.HasPrefix(id, tempIDPrefix) {
		return nil
	}

	if err := s.backend.Transactions().Delete(ctx, id); err != nil {
		s.mu.Lock()
		if s.epoch == epoch {
			if i > len(s.transactions) {
				i = len(s.transactions)
			}
			s.transactions = append(s.transactions[:i:i], append([]models.Transaction{removed}, s.transactions[i:]...)...)
		}
		s.mu.Unlock()
		logger.FromContext(ctx).Error("transaction delete failed", "id", id, "error", err)
		return err
	}
	return nil
}

func (s *Store) transactionIndexLocked(id string) int {
	for i, t := range s.transactions {
		if t.ID == id {
			return i
		}
	}
	return -1
}

// --- Bills ---

// AddBill appends a provisional bill (always unpaid) and confirms it
// the same way AddTransaction does.
func (s *Store) AddBill(ctx context.Context, draft models.BillDraft) (models.Bill, error) {
	tempID := tempIDPrefix + uuid.NewString()
	provisional := models.Bill{
		ID:          tempID,
		Name:        draft.Name,
		Amount:      draft.Amount,
		DueDate:     draft.DueDate,
		IsRecurring: draft.IsRecurring,
		IsPaid:      false,
	}

	s.mu.Lock()
	owner := s.userID
	epoch := s.epoch
	s.bills = append(s.bills, provisional)
	s.mu.Unlock()

	stored, err := s.backend.Bills().Insert(ctx, remote.EncodeBill(owner, draft))

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		if s.epoch == epoch {
			if i := s.billIndexLocked(tempID); i >= 0 {
				s.bills = append(s.bills[:i:i], s.bills[i+1:]...)
			}
		}
		logger.FromContext(ctx).Error("bill insert failed", "error", err)
		return models.Bill{}, err
	}

	confirmed := remote.DecodeBill(stored)
	if s.epoch == epoch {
		if i := s.billIndexLocked(tempID); i >= 0 {
			s.bills[i] = confirmed
		}
	}
	return confirmed, nil
}

// ToggleBillPaid flips IsPaid in place and persists the new value. An
// unknown id is a silent no-op. A pay transition additionally records
// the payment month and synthesizes the matching expense transaction
// through AddTransaction; an un-pay transition never reverses that
// transaction.
func (s *Store) ToggleBillPaid(ctx context.Context, id string) error {
	s.mu.Lock()
	epoch := s.epoch
	i := s.billIndexLocked(id)
	if i < 0 {
		s.mu.Unlock()
		return nil
	}
	bill := s.bills[i]
	nowPaid := !bill.IsPaid
	prevPaidDate := bill.PaidDate

	fields := remote.Row{"is_paid": nowPaid}
	s.bills[i].IsPaid = nowPaid
	if nowPaid {
		month := s.now().Format(monthLayout)
		s.bills[i].PaidDate = month
		fields["paid_date"] = month
	}
	s.mu.Unlock()

	if err := s.backend.Bills().Update(ctx, id, fields); err != nil {
		s.mu.Lock()
		if s.epoch == epoch {
			if j := s.billIndexLocked(id); j >= 0 {
				s.bills[j].IsPaid = !nowPaid
				s.bills[j].PaidDate = prevPaidDate
			}
		}
		s.mu.Unlock()
		logger.FromContext(ctx).Error("bill update failed", "id", id, "error", err)
		return err
	}

	if nowPaid {
		today := s.now().Format(dateLayout)
		_, err := s.AddTransaction(ctx, rules.BillPaymentTransaction(bill, today))
		return err
	}
	return nil
}

// ResetRecurringBills flips recurring bills back to unpaid once the
// calendar month has moved past their recorded payment month. Bills
// paid before payment months were tracked (empty PaidDate) are left
// alone.
func (s *Store) ResetRecurringBills(ctx context.Context) error {
	month := s.now().Format(monthLayout)

	s.mu.Lock()
	epoch := s.epoch
	var due []string
	for _, b := range s.bills {
		if b.IsRecurring && b.IsPaid && b.PaidDate != "" && b.PaidDate < month {
			due = append(due, b.ID)
		}
	}
	s.mu.Unlock()

	var resetErrs []error
	for _, id := range due {
		s.mu.Lock()
		if s.epoch == epoch {
			if i := s.billIndexLocked(id); i >= 0 {
				s.bills[i].IsPaid = false
			}
		}
		s.mu.Unlock()

		if err := s.backend.Bills().Update(ctx, id, remote.Row{"is_paid": false}); err != nil {
			s.mu.Lock()
			if s.epoch == epoch {
				if i := s.billIndexLocked(id); i >= 0 {
					s.bills[i].IsPaid = true
				}
			}
			s.mu.Unlock()
			logger.FromContext(ctx).Error("recurring bill reset failed", "id", id, "error", err)
			resetErrs = append(resetErrs, err)
		}
	}
	return errors.Join(resetErrs...)
}

func (s *Store) billIndexLocked(id string) int {
	for i, b := range s.bills {
		if b.ID == id {
			return i
		}
	}
	return -1
}

// --- Goals ---

func (s *Store) AddGoal(ctx context.Context, draft models.GoalDraft, initialDeposit decimal.Decimal) (models.Goal, error) {
	tempID := tempIDPrefix + uuid.NewString()
	provisional := models.Goal{
		ID:            tempID,
		Name:          draft.Name,
		TargetAmount:  draft.TargetAmount,
		CurrentAmount: initialDeposit,
		Deadline:      draft.Deadline,
	}

	s.mu.Lock()
	owner := s.userID
	epoch := s.epoch
	s.goals = append(s.goals, provisional)
	s.mu.Unlock()

	stored, err := s.backend.Goals().Insert(ctx, remote.EncodeGoal(owner, draft, initialDeposit))

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		if s.epoch == epoch {
			if i := s.goalIndexLocked(tempID); i >= 0 {
				s.goals = append(s.goals[:i:i], s.goals[i+1:]...)
			}
		}
		logger.FromContext(ctx).Error("goal insert failed", "error", err)
		return models.Goal{}, err
	}

	confirmed := remote.DecodeGoal(stored)
	if s.epoch == epoch {
		if i := s.goalIndexLocked(tempID); i >= 0 {
			s.goals[i] = confirmed
		}
	}
	return confirmed, nil
}

// UpdateGoalProgress adds amountToAdd to the goal's current amount and
// persists the new absolute value. The addition is unconditional: no
// clamping to the target and no sign check, matching the deposit form
// which only ever submits positive amounts. Deposits for the same goal
// are serialized so each one reads the amount the previous one wrote.
func (s *Store) UpdateGoalProgress(ctx context.Context, id string, amountToAdd decimal.Decimal) error {
	lock := s.goalLock(id)
	lock.Lock()
	defer lock.Unlock()

	s.mu.Lock()
	epoch := s.epoch
	i := s.goalIndexLocked(id)
	if i < 0 {
		s.mu.Unlock()
		return nil
	}
	newAmount := s.goals[i].CurrentAmount.Add(amountToAdd)
	s.goals[i].CurrentAmount = newAmount
	s.mu.Unlock()

	err := s.backend.Goals().Update(ctx, id, remote.Row{"current_amount": newAmount.InexactFloat64()})
	if err != nil {
		s.mu.Lock()
		if s.epoch == epoch {
			if j := s.goalIndexLocked(id); j >= 0 {
				s.goals[j].CurrentAmount = s.goals[j].CurrentAmount.Sub(amountToAdd)
			}
		}
		s.mu.Unlock()
		logger.FromContext(ctx).Error("goal update failed", "id", id, "error", err)
		return err
	}
	return nil
}

func (s *Store) goalLock(id string) *sync.Mutex {
	s.goalMu.Lock()
	defer s.goalMu.Unlock()
	lock, ok := s.goalLocks[id]
	if !ok {
		lock = &sync.Mutex{}
		s.goalLocks[id] = lock
	}
	return lock
}

func (s *Store) goalIndexLocked(id string) int {
	for i, g := range s.goals {
		if g.ID == id {
			return i
		}
	}
	return -1
}
