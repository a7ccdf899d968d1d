package services

import (
	"errors"
	"sort"

	"github.com/Adithyan-707/CampusRide/models"
)

var errDuplicateKey = errors.New(`duplicate key value violates unique constraint "idx_transactions_idempotency_key"`)

// fakeTransactionRepo is an in-memory TransactionRepository. Rows are stored
// by value so callers mutating returned transactions must Save them back,
// mirroring the real store.
type fakeTransactionRepo struct {
	nextID      uint
	rows        []models.Transaction
	sumCalls    int
	hideKeyOnce bool
}

func newFakeTransactionRepo() *fakeTransactionRepo {
	return &fakeTransactionRepo{}
}

func (f *fakeTransactionRepo) insert(txn *models.Transaction) {
	f.nextID++
	txn.ID = f.nextID
	f.rows = append(f.rows, *txn)
}

func (f *fakeTransactionRepo) FindByIdempotencyKey(key string) (*models.Transaction, error) {
	if f.hideKeyOnce {
		// Simulates the race window where the pre-check misses a concurrent
		// writer whose commit lands before ours.
		f.hideKeyOnce = false
		return nil, nil
	}
	for i := range f.rows {
		if f.rows[i].IdempotencyKey != nil && *f.rows[i].IdempotencyKey == key {
			row := f.rows[i]
			return &row, nil
		}
	}
	return nil, nil
}

func (f *fakeTransactionRepo) FindByGroupID(groupID string) ([]models.Transaction, error) {
	var out []models.Transaction
	for i := range f.rows {
		if f.rows[i].GroupID == groupID {
			out = append(out, f.rows[i])
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeTransactionRepo) FindByPspRefAndStatus(pspRef, status string) ([]models.Transaction, error) {
	var out []models.Transaction
	for i := range f.rows {
		if f.rows[i].PspRef == pspRef && f.rows[i].Status == status {
			out = append(out, f.rows[i])
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeTransactionRepo) FindByWalletID(walletID uint, limit, offset int) ([]models.Transaction, int64, error) {
	var out []models.Transaction
	for i := range f.rows {
		if f.rows[i].WalletID != nil && *f.rows[i].WalletID == walletID {
			out = append(out, f.rows[i])
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	total := int64(len(out))
	if offset >= len(out) {
		return nil, total, nil
	}
	out = out[offset:]
	if limit < len(out) {
		out = out[:limit]
	}
	return out, total, nil
}

func (f *fakeTransactionRepo) SumAmountByStatus(walletID uint, status string) (float64, error) {
	f.sumCalls++
	var total float64
	for i := range f.rows {
		row := f.rows[i]
		if row.WalletID == nil || *row.WalletID != walletID || row.Status != status {
			continue
		}
		if row.Direction == models.TransactionDirectionIn {
			total += row.Amount
		} else {
			total -= row.Amount
		}
	}
	return total, nil
}

func (f *fakeTransactionRepo) SumAmountByStatusAndDirection(walletID uint, status, direction string) (float64, error) {
	var total float64
	for i := range f.rows {
		row := f.rows[i]
		if row.WalletID != nil && *row.WalletID == walletID && row.Status == status && row.Direction == direction {
			total += row.Amount
		}
	}
	return total, nil
}

func (f *fakeTransactionRepo) Save(txn *models.Transaction) error {
	for i := range f.rows {
		if f.rows[i].ID == txn.ID {
			f.rows[i] = *txn
			return nil
		}
	}
	f.insert(txn)
	return nil
}

func (f *fakeTransactionRepo) CreatePair(system, user *models.Transaction) error {
	if user.IdempotencyKey != nil {
		if existing, _ := f.FindByIdempotencyKey(*user.IdempotencyKey); existing != nil {
			return errDuplicateKey
		}
	}
	f.insert(system)
	f.insert(user)
	return nil
}

func (f *fakeTransactionRepo) SaveGroup(txns []*models.Transaction) error {
	for _, txn := range txns {
		if err := f.Save(txn); err != nil {
			return err
		}
	}
	return nil
}

func (f *fakeTransactionRepo) IsDuplicateKeyError(err error) bool {
	return errors.Is(err, errDuplicateKey)
}

// fakeWalletRepo is an in-memory WalletRepository.
type fakeWalletRepo struct {
	wallets []models.Wallet
}

func (f *fakeWalletRepo) FindByUserID(userID uint) (*models.Wallet, error) {
	for i := range f.wallets {
		if f.wallets[i].UserID == userID {
			w := f.wallets[i]
			return &w, nil
		}
	}
	return nil, nil
}

func (f *fakeWalletRepo) FindByID(id uint) (*models.Wallet, error) {
	for i := range f.wallets {
		if f.wallets[i].ID == id {
			w := f.wallets[i]
			return &w, nil
		}
	}
	return nil, nil
}

func (f *fakeWalletRepo) Save(wallet *models.Wallet) error {
	for i := range f.wallets {
		if f.wallets[i].ID == wallet.ID {
			f.wallets[i] = *wallet
			return nil
		}
	}
	f.wallets = append(f.wallets, *wallet)
	return nil
}

// fakeUserRepo is an in-memory UserRepository.
type fakeUserRepo struct {
	users []models.User
}

func (f *fakeUserRepo) FindByID(id uint) (*models.User, error) {
	for i := range f.users {
		if f.users[i].ID == id {
			u := f.users[i]
			return &u, nil
		}
	}
	return nil, nil
}

// fakeKeyRepo is an in-memory IdempotencyKeyRepository.
type fakeKeyRepo struct {
	records []models.IdempotencyKey
}

func (f *fakeKeyRepo) FindByKeyHash(hash string) (*models.IdempotencyKey, error) {
	for i := range f.records {
		if f.records[i].KeyHash == hash {
			r := f.records[i]
			return &r, nil
		}
	}
	return nil, nil
}

func (f *fakeKeyRepo) Save(record *models.IdempotencyKey) error {
	record.ID = uint(len(f.records) + 1)
	f.records = append(f.records, *record)
	return nil
}

// notification captures one outbound email.
type notification struct {
	Email      string
	Name       string
	Amount     float64
	Ref        string
	NewBalance float64
	Reason     string
}

// fakeNotifier records settlement emails.
type fakeNotifier struct {
	successes []notification
	failures  []notification
	err       error
}

func (f *fakeNotifier) SendTopUpSuccessEmail(email, name string, amount float64, ref string, newBalance float64) error {
	if f.err != nil {
		return f.err
	}
	f.successes = append(f.successes, notification{Email: email, Name: name, Amount: amount, Ref: ref, NewBalance: newBalance})
	return nil
}

func (f *fakeNotifier) SendPaymentFailedEmail(email, name string, amount float64, ref, reason string) error {
	if f.err != nil {
		return f.err
	}
	f.failures = append(f.failures, notification{Email: email, Name: name, Amount: amount, Ref: ref, Reason: reason})
	return nil
}

// providerCall captures one outbound payment link creation.
type providerCall struct {
	OrderCode   string
	Amount      float64
	Description string
	ReturnURL   string
	CancelURL   string
}

// fakeProvider records payment link creations.
type fakeProvider struct {
	calls []providerCall
	err   error
}

func (f *fakeProvider) CreatePaymentLink(orderCode string, amount float64, description, returnURL, cancelURL string) (*CheckoutHandle, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.calls = append(f.calls, providerCall{
		OrderCode:   orderCode,
		Amount:      amount,
		Description: description,
		ReturnURL:   returnURL,
		CancelURL:   cancelURL,
	})
	return &CheckoutHandle{
		ProviderLinkID: "plink_" + orderCode,
		CheckoutURL:    "https://checkout.test/" + orderCode,
	}, nil
}

// fixedCodeGenerator always generates the same order code.
type fixedCodeGenerator struct {
	code string
}

func (f fixedCodeGenerator) Generate(userID uint) string {
	return f.code
}
