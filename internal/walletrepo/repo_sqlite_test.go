package walletrepo

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/thewallet/wallet-bot/internal/domain"
	"github.com/thewallet/wallet-bot/internal/schema"
	"github.com/thewallet/wallet-bot/internal/userrepo"
	"github.com/thewallet/wallet-bot/pkg/randompkg"

	_ "github.com/mattn/go-sqlite3"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite3", "file::memory:?_foreign_keys=on")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)

	require.NoError(t, schema.Init(context.Background(), db))

	t.Cleanup(func() {
		require.NoError(t, db.Close())
	})

	return db
}

func createRandomUser(t *testing.T, db *sql.DB) domain.User {
	t.Helper()

	user, err := userrepo.NewRepoSQLite(db).Ensure(context.Background(), randompkg.TelegramID(), randompkg.Username())
	require.NoError(t, err)

	return user
}

func createRandomWallet(t *testing.T, repo *RepoSQLite, userID int64) domain.Wallet {
	t.Helper()

	name := randompkg.WalletName()
	currency := randompkg.Currency()

	wallet, err := repo.Create(context.Background(), userID, name, currency)
	require.NoError(t, err)
	require.NotZero(t, wallet.ID)
	require.Equal(t, userID, wallet.UserID)
	require.Equal(t, name, wallet.Name)
	require.Equal(t, currency, wallet.Currency)
	require.Equal(t, "0", wallet.Balance)
	require.NotZero(t, wallet.CreatedAt)

	return wallet
}

func TestCreate(t *testing.T) {
	db := newTestDB(t)
	repo := NewRepoSQLite(db)
	user := createRandomUser(t, db)

	createRandomWallet(t, repo, user.ID)
}

func TestCreateDuplicateName(t *testing.T) {
	db := newTestDB(t)
	repo := NewRepoSQLite(db)
	user := createRandomUser(t, db)

	wallet := createRandomWallet(t, repo, user.ID)

	_, err := repo.Create(context.Background(), user.ID, wallet.Name, wallet.Currency)
	require.ErrorIs(t, err, domain.ErrWalletAlreadyExists)
}

func TestCreateSameNameDifferentOwners(t *testing.T) {
	db := newTestDB(t)
	repo := NewRepoSQLite(db)
	user1 := createRandomUser(t, db)
	user2 := createRandomUser(t, db)

	wallet := createRandomWallet(t, repo, user1.ID)

	_, err := repo.Create(context.Background(), user2.ID, wallet.Name, wallet.Currency)
	require.NoError(t, err)
}

func TestCreateUnknownOwner(t *testing.T) {
	repo := NewRepoSQLite(newTestDB(t))

	_, err := repo.Create(context.Background(), 42, randompkg.WalletName(), randompkg.Currency())
	require.ErrorIs(t, err, domain.ErrOwnerNotFound)
}

func TestGetByName(t *testing.T) {
	db := newTestDB(t)
	repo := NewRepoSQLite(db)
	user := createRandomUser(t, db)

	wallet := createRandomWallet(t, repo, user.ID)

	got, err := repo.GetByName(context.Background(), user.ID, wallet.Name)
	require.NoError(t, err)
	require.Equal(t, wallet, got)
}

func TestGetByNameScopedToOwner(t *testing.T) {
	db := newTestDB(t)
	repo := NewRepoSQLite(db)
	user1 := createRandomUser(t, db)
	user2 := createRandomUser(t, db)

	wallet := createRandomWallet(t, repo, user1.ID)

	_, err := repo.GetByName(context.Background(), user2.ID, wallet.Name)
	require.ErrorIs(t, err, domain.ErrWalletNotFound)
}

func TestGetByNameNotFound(t *testing.T) {
	db := newTestDB(t)
	repo := NewRepoSQLite(db)
	user := createRandomUser(t, db)

	_, err := repo.GetByName(context.Background(), user.ID, randompkg.WalletName())
	require.ErrorIs(t, err, domain.ErrWalletNotFound)
}

func TestList(t *testing.T) {
	db := newTestDB(t)
	repo := NewRepoSQLite(db)
	user := createRandomUser(t, db)

	want := []domain.Wallet{
		createRandomWallet(t, repo, user.ID),
		createRandomWallet(t, repo, user.ID),
		createRandomWallet(t, repo, user.ID),
	}

	got, err := repo.List(context.Background(), user.ID)
	require.NoError(t, err)
	require.Equal(t, want, got)
}

func TestListEmpty(t *testing.T) {
	db := newTestDB(t)
	repo := NewRepoSQLite(db)
	user := createRandomUser(t, db)

	wallets, err := repo.List(context.Background(), user.ID)
	require.NoError(t, err)
	require.Empty(t, wallets)
}

func TestSetBalance(t *testing.T) {
	db := newTestDB(t)
	repo := NewRepoSQLite(db)
	user := createRandomUser(t, db)

	wallet := createRandomWallet(t, repo, user.ID)

	got, err := repo.SetBalance(context.Background(), "150.75", wallet.ID)
	require.NoError(t, err)
	require.Equal(t, "150.75", got.Balance)

	got, err = repo.Get(context.Background(), wallet.ID)
	require.NoError(t, err)
	require.Equal(t, "150.75", got.Balance)
}

func TestSetBalanceNotFound(t *testing.T) {
	repo := NewRepoSQLite(newTestDB(t))

	_, err := repo.SetBalance(context.Background(), "10", 42)
	require.ErrorIs(t, err, domain.ErrWalletNotFound)
}
